// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package recordindex - leveldb index of closed record files
//
// one entry per block, keyed by the big endian block number, so a
// restarted node can recover the start running hash and the next
// block number from the last entry
//
// key:    'B' ++ uint64 block number
// value:  uint64 item count ++ start hash ++ end hash ++ file hash ++ name
package recordindex
