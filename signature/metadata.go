// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package signature

import (
	"encoding/binary"

	"github.com/bitmark-inc/recordstream/recorddigest"
	"github.com/bitmark-inc/recordstream/recordformat"
)

// Metadata - block values covered by the metadata signature
type Metadata struct {
	FormatVersion    int32
	HapiProtoVersion recordformat.SemanticVersion
	BlockNumber      int64
	StartRunningHash recorddigest.Digest
	EndRunningHash   recorddigest.Digest
}

// size of the fixed metadata layout
const metadataLength = 4*4 + 2*recorddigest.Length + 8

// MetadataDigest - SHA-384 of the fixed metadata layout
func MetadataDigest(m Metadata) recorddigest.Digest {
	buffer := make([]byte, 0, metadataLength)
	buffer = appendInt32(buffer, m.FormatVersion)
	buffer = appendInt32(buffer, m.HapiProtoVersion.Major)
	buffer = appendInt32(buffer, m.HapiProtoVersion.Minor)
	buffer = appendInt32(buffer, m.HapiProtoVersion.Patch)
	buffer = append(buffer, m.StartRunningHash[:]...)
	buffer = append(buffer, m.EndRunningHash[:]...)

	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(m.BlockNumber))
	buffer = append(buffer, b[:]...)

	return recorddigest.NewDigest(buffer)
}

func appendInt32(buffer []byte, value int32) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(value))
	return append(buffer, b[:]...)
}
