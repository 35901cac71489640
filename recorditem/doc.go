// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package recorditem - the two encodings of a finalised transaction
//
// the hashing encoding is a fixed layout shared by every node
// implementation:
//
//   class id      int64   0xe370929ba5429d8b
//   class version int32   1
//   record        int32 length + bytes
//   transaction   int32 length + bytes
//
// the canonical encoding is the RecordStreamItem protobuf message
// stored in the record file
//
// the running hash advances one item at a time:
//
//   next = SHA384(HashHeader || previous || HashHeader || SHA384(hashable))
package recorditem
