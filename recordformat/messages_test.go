// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package recordformat_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/recordstream/fault"
	"github.com/bitmark-inc/recordstream/recorddigest"
	"github.com/bitmark-inc/recordstream/recordformat"
)

func TestSemanticVersionMarshal(t *testing.T) {
	v := recordformat.SemanticVersion{Major: 0, Minor: 30, Patch: 1}
	assert.Equal(t, []byte{0x10, 0x1e, 0x18, 0x01}, v.Marshal(), "zero major must be omitted")

	empty := recordformat.SemanticVersion{}
	assert.Equal(t, 0, len(empty.Marshal()), "empty version")

	negative := recordformat.SemanticVersion{Major: -1}
	expected := []byte{0x08, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01}
	assert.Equal(t, expected, negative.Marshal(), "negative int32 must be sign extended")

	decoded, err := recordformat.UnmarshalSemanticVersion(negative.Marshal())
	assert.Nil(t, err, "decode error")
	assert.Equal(t, negative, decoded, "wrong negative decode")
}

func TestHashObjectMarshal(t *testing.T) {
	digest := recorddigest.NewDigest([]byte("abc"))
	h := recordformat.NewHashObject(digest)
	buffer := h.Marshal()

	assert.Equal(t, 54, len(buffer), "wrong length")
	assert.Equal(t, []byte{0x08, 0x01, 0x10, 0x30, 0x1a, 0x30}, buffer[:6], "wrong header")
	assert.Equal(t, digest[:], buffer[6:], "wrong hash bytes")

	decoded, err := recordformat.UnmarshalHashObject(buffer)
	assert.Nil(t, err, "decode error")
	assert.Equal(t, h, decoded, "wrong decode")

	d, err := decoded.Digest()
	assert.Nil(t, err, "digest error")
	assert.Equal(t, digest, d, "wrong digest")
}

func TestHashObjectDigestErrors(t *testing.T) {
	h := recordformat.NewHashObject(recorddigest.Digest{})

	wrongAlgorithm := h
	wrongAlgorithm.Algorithm = recordformat.HashAlgorithmUnknown
	_, err := wrongAlgorithm.Digest()
	assert.Equal(t, fault.ErrHashAlgorithmMismatch, err, "algorithm not checked")

	wrongLength := h
	wrongLength.Length = 32
	_, err = wrongLength.Digest()
	assert.Equal(t, fault.ErrInvalidHashLength, err, "length not checked")

	short := h
	short.Hash = short.Hash[:10]
	_, err = short.Digest()
	assert.Equal(t, fault.ErrInvalidHashLength, err, "hash bytes not checked")
}

func TestSidecarMetadataMarshal(t *testing.T) {
	m := recordformat.SidecarMetadata{
		Hash:  recordformat.NewHashObject(recorddigest.NewDigest([]byte("sidecar"))),
		ID:    2,
		Types: []recordformat.SidecarType{recordformat.ContractStateChange, recordformat.ContractBytecode},
	}
	buffer := m.Marshal()

	tail := []byte{0x10, 0x02, 0x1a, 0x02, 0x01, 0x03}
	assert.True(t, bytes.HasSuffix(buffer, tail), "wrong id and packed types: %x", buffer)

	decoded, err := recordformat.UnmarshalSidecarMetadata(buffer)
	assert.Nil(t, err, "decode error")
	assert.Equal(t, m, decoded, "wrong decode")
}

func TestSidecarMetadataUnpacked(t *testing.T) {
	buffer := []byte{0x10, 0x01, 0x18, 0x02, 0x18, 0x01}
	decoded, err := recordformat.UnmarshalSidecarMetadata(buffer)
	assert.Nil(t, err, "decode error")
	assert.Equal(t, int32(1), decoded.ID, "wrong id")
	assert.Equal(t, []recordformat.SidecarType{recordformat.ContractAction, recordformat.ContractStateChange}, decoded.Types, "wrong types")
}

func TestSignatureFileMarshal(t *testing.T) {
	file := recordformat.SignatureObject{
		Type:       recordformat.SignatureTypeSHA384WithRSA,
		Length:     3,
		Checksum:   98,
		Signature:  []byte{7, 8, 9},
		HashObject: recordformat.NewHashObject(recorddigest.NewDigest([]byte("file"))),
	}
	metadata := file
	metadata.HashObject = recordformat.NewHashObject(recorddigest.NewDigest([]byte("metadata")))

	for i, item := range []recordformat.SignatureFile{
		{FileSignature: &file},
		{FileSignature: &file, MetadataSignature: &metadata},
	} {
		buffer := item.Marshal()
		assert.Equal(t, byte(0x0a), buffer[0], "%d: first field must be the file signature", i)

		decoded, err := recordformat.UnmarshalSignatureFile(buffer)
		assert.Nil(t, err, "%d: decode error", i)
		assert.Equal(t, item, decoded, "%d: wrong decode", i)
	}
}

func TestSortedTypes(t *testing.T) {
	in := []recordformat.SidecarType{
		recordformat.ContractBytecode,
		recordformat.ContractStateChange,
		recordformat.ContractBytecode,
		recordformat.ContractAction,
	}
	expected := []recordformat.SidecarType{
		recordformat.ContractStateChange,
		recordformat.ContractAction,
		recordformat.ContractBytecode,
	}
	assert.Equal(t, expected, recordformat.SortedTypes(in), "wrong order")
	assert.Equal(t, recordformat.ContractBytecode, in[0], "input modified")
}

func TestSidecarTypeText(t *testing.T) {
	text, err := recordformat.ContractAction.MarshalText()
	assert.Nil(t, err, "marshal error")
	assert.Equal(t, "CONTRACT_ACTION", string(text), "wrong name")
	assert.False(t, recordformat.SidecarTypeUnknown.Valid(), "unknown is valid")
	assert.False(t, recordformat.SidecarType(4).Valid(), "out of range is valid")
	assert.True(t, recordformat.ContractBytecode.Valid(), "bytecode is invalid")
}
