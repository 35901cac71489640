// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package recordfile - writer and reader for one block's record file
//
// record file layout (version 6):
//
//   int32 version (big endian)
//   1: hapi proto version   SemanticVersion
//   2: start running hash   HashObject
//   3: record stream item   repeated, one per transaction
//   4: end running hash     HashObject
//   5: block number         varint, absent when zero
//   6: sidecar metadata     repeated
//
// a writer moves through uninitialised -> open -> closed and each
// operation is only accepted in its own state
//
// the writer does not advance the running hash, the caller computes it
// from the same items with recorditem.RunningHash and passes the result
// to Close
package recordfile
