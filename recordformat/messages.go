// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package recordformat

import (
	"sort"

	"github.com/gogo/protobuf/proto"

	"github.com/bitmark-inc/recordstream/fault"
	"github.com/bitmark-inc/recordstream/recorddigest"
)

// SemanticVersion - HAPI protobuf version
type SemanticVersion struct {
	Major int32  `json:"major"`
	Minor int32  `json:"minor"`
	Patch int32  `json:"patch"`
	Pre   string `json:"pre,omitempty"`
	Build string `json:"build,omitempty"`
}

// HashObject - a digest tagged with its algorithm and length
type HashObject struct {
	Algorithm HashAlgorithm `json:"algorithm"`
	Length    int32         `json:"length"`
	Hash      []byte        `json:"hash"`
}

// SidecarMetadata - footer entry describing one sidecar file
type SidecarMetadata struct {
	Hash  HashObject    `json:"hash"`
	ID    int32         `json:"id"`
	Types []SidecarType `json:"types"`
}

// SignatureObject - one detached signature
type SignatureObject struct {
	Type       SignatureType `json:"type"`
	Length     int32         `json:"length"`
	Checksum   int32         `json:"checksum"`
	Signature  []byte        `json:"signature"`
	HashObject HashObject    `json:"hashObject"`
}

// SignatureFile - contents of a signature file after the version byte
type SignatureFile struct {
	FileSignature     *SignatureObject `json:"fileSignature"`
	MetadataSignature *SignatureObject `json:"metadataSignature,omitempty"`
}

// NewHashObject - SHA-384 hash object from a digest
func NewHashObject(digest recorddigest.Digest) HashObject {
	return HashObject{
		Algorithm: HashAlgorithmSHA384,
		Length:    recorddigest.Length,
		Hash:      digest.Bytes(),
	}
}

// Digest - convert back to a digest, checking the algorithm and length
func (h HashObject) Digest() (recorddigest.Digest, error) {
	var digest recorddigest.Digest
	if HashAlgorithmSHA384 != h.Algorithm {
		return digest, fault.ErrHashAlgorithmMismatch
	}
	if recorddigest.Length != h.Length {
		return digest, fault.ErrInvalidHashLength
	}
	err := recorddigest.DigestFromBytes(&digest, h.Hash)
	return digest, err
}

// builder - proto3 field writer, zero values are omitted
type builder struct {
	buffer *proto.Buffer
}

func newBuilder() *builder {
	return &builder{buffer: proto.NewBuffer(nil)}
}

func (b *builder) varint(fieldNumber int, value uint64) {
	if 0 == value {
		return
	}
	b.buffer.EncodeVarint(Tag(fieldNumber, WireVarint))
	b.buffer.EncodeVarint(value)
}

// int32 fields are sign extended to 64 bits as protobuf requires
func (b *builder) int32(fieldNumber int, value int32) {
	b.varint(fieldNumber, uint64(int64(value)))
}

func (b *builder) bytes(fieldNumber int, value []byte) {
	if 0 == len(value) {
		return
	}
	b.message(fieldNumber, value)
}

// embedded messages are written even when empty
func (b *builder) message(fieldNumber int, value []byte) {
	b.buffer.EncodeVarint(Tag(fieldNumber, WireDelimited))
	b.buffer.EncodeRawBytes(value)
}

func (b *builder) result() []byte {
	return b.buffer.Bytes()
}

// Marshal - protobuf encoding
func (v SemanticVersion) Marshal() []byte {
	b := newBuilder()
	b.int32(1, v.Major)
	b.int32(2, v.Minor)
	b.int32(3, v.Patch)
	b.bytes(4, []byte(v.Pre))
	b.bytes(5, []byte(v.Build))
	return b.result()
}

// Marshal - protobuf encoding
func (h HashObject) Marshal() []byte {
	b := newBuilder()
	b.int32(1, int32(h.Algorithm))
	b.int32(2, h.Length)
	b.bytes(3, h.Hash)
	return b.result()
}

// Marshal - protobuf encoding, types are a packed repeated enum
func (m SidecarMetadata) Marshal() []byte {
	b := newBuilder()
	b.message(1, m.Hash.Marshal())
	b.int32(2, m.ID)
	if len(m.Types) > 0 {
		packed := proto.NewBuffer(nil)
		for _, t := range m.Types {
			packed.EncodeVarint(uint64(int64(t)))
		}
		b.message(3, packed.Bytes())
	}
	return b.result()
}

// Marshal - protobuf encoding
func (s SignatureObject) Marshal() []byte {
	b := newBuilder()
	b.int32(1, int32(s.Type))
	b.int32(2, s.Length)
	b.int32(3, s.Checksum)
	b.bytes(4, s.Signature)
	b.message(5, s.HashObject.Marshal())
	return b.result()
}

// Marshal - protobuf encoding
func (f SignatureFile) Marshal() []byte {
	b := newBuilder()
	if nil != f.FileSignature {
		b.message(FieldFileSignature, f.FileSignature.Marshal())
	}
	if nil != f.MetadataSignature {
		b.message(FieldMetadataSignature, f.MetadataSignature.Marshal())
	}
	return b.result()
}

// SortedTypes - a sorted copy without duplicates
func SortedTypes(types []SidecarType) []SidecarType {
	seen := make(map[SidecarType]struct{}, len(types))
	result := make([]SidecarType, 0, len(types))
	for _, t := range types {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}
