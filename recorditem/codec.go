// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package recorditem

import (
	"bytes"
	"encoding/binary"

	"github.com/bitmark-inc/recordstream/recorddigest"
	"github.com/bitmark-inc/recordstream/recordformat"
)

// header of the hashing encoding: class id and class version
var itemHeader = [12]byte{0xe3, 0x70, 0x92, 0x9b, 0xa5, 0x42, 0x9d, 0x8b, 0x00, 0x00, 0x00, 0x01}

// HashHeader - mixed into every running hash step
var HashHeader = [12]byte{0x1e, 0x74, 0x51, 0xa2, 0x83, 0xda, 0x22, 0xf4, 0x01, 0x00, 0x00, 0x00}

// SidecarRecord - one sidecar payload produced with a transaction
type SidecarRecord struct {
	Type  recordformat.SidecarType
	Bytes []byte
}

// Serialized - both encodings of a transaction and its sidecars
type Serialized struct {
	HashableBytes  []byte
	CanonicalBytes []byte
	Sidecars       []SidecarRecord
}

// EncodeForHashing - the fixed hashing layout
//
// the record comes before the transaction and no field tags are written
func EncodeForHashing(transaction []byte, transactionRecord []byte) []byte {
	buffer := make([]byte, 0, len(itemHeader)+8+len(transaction)+len(transactionRecord))
	buffer = append(buffer, itemHeader[:]...)
	buffer = appendLengthPrefixed(buffer, transactionRecord)
	buffer = appendLengthPrefixed(buffer, transaction)
	return buffer
}

func appendLengthPrefixed(buffer []byte, data []byte) []byte {
	var length [4]byte
	binary.BigEndian.PutUint32(length[:], uint32(len(data)))
	buffer = append(buffer, length[:]...)
	return append(buffer, data...)
}

// EncodeCanonical - RecordStreamItem message bytes
func EncodeCanonical(transaction []byte, transactionRecord []byte) []byte {
	size := recordformat.DelimitedFieldSize(recordformat.FieldItemTransaction, len(transaction)) +
		recordformat.DelimitedFieldSize(recordformat.FieldItemRecord, len(transactionRecord))
	buffer := bytes.NewBuffer(make([]byte, 0, size))

	e := recordformat.NewEncoder()

	// writes to a bytes.Buffer cannot fail
	_, _ = e.WriteDelimitedField(buffer, recordformat.FieldItemTransaction, transaction)
	_, _ = e.WriteDelimitedField(buffer, recordformat.FieldItemRecord, transactionRecord)
	return buffer.Bytes()
}

// Serialize - produce both encodings together
func Serialize(transaction []byte, transactionRecord []byte, sidecars []SidecarRecord) *Serialized {
	return &Serialized{
		HashableBytes:  EncodeForHashing(transaction, transactionRecord),
		CanonicalBytes: EncodeCanonical(transaction, transactionRecord),
		Sidecars:       sidecars,
	}
}

// NextRunningHash - advance the running hash by one item
func NextRunningHash(previous recorddigest.Digest, hashable []byte) recorddigest.Digest {
	itemDigest := recorddigest.NewDigest(hashable)

	h := recorddigest.New()
	h.Write(HashHeader[:])
	h.Write(previous[:])
	h.Write(HashHeader[:])
	h.Write(itemDigest[:])
	return recorddigest.Sum(h)
}
