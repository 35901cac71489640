// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package sidecar - size bounded auxiliary files attached to a record file
//
// a sidecar file is a sequence of delimited field 1 entries, one per
// sidecar record, framed exactly like the items of a record file
//
// the size budget counts only the uncompressed record bytes and a
// record that does not fit is refused without writing anything
package sidecar
