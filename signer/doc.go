// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package signer - signing capability consumed by the signature file writer
//
// the writer only needs Sign, key management stays outside; an
// Ed25519 implementation is provided for nodes and tools
package signer
