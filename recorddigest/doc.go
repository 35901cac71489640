// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package recorddigest - SHA-384 digests used by the record stream
//
// running hashes, whole file hashes and sidecar hashes are all of
// this type
package recorddigest
