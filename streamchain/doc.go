// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package streamchain - layered output and input streams for stream files
//
// output layers, outermost first:
//
//   buffer -> SHA-384 digest -> gzip (optional) -> file
//
// the digest sees the uncompressed bytes so a compressed and an
// uncompressed copy of a file have the same hash
//
// closing does not cascade, each layer is finished explicitly in
// the order: flush buffer, close gzip, sync file, close file
package streamchain
