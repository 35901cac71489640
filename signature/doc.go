// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package signature - detached signature files for closed record files
//
// file layout:
//
//   byte 6
//   SignatureFile message
//     1: file signature      (over the SHA-384 of the record file)
//     2: metadata signature  (optional, over the metadata digest)
//
// metadata digest input, all big endian:
//
//   int32 format version
//   int32 hapi major, int32 hapi minor, int32 hapi patch
//   48 bytes start running hash
//   48 bytes end running hash
//   int64 block number
package signature
