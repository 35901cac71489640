// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package recordformat

import (
	"encoding/binary"

	"github.com/gogo/protobuf/proto"

	"github.com/bitmark-inc/recordstream/fault"
)

// Field - one decoded protobuf field
//
// Bytes refers into the source buffer for delimited fields
type Field struct {
	Number   int
	WireType int
	Varint   uint64
	Bytes    []byte
}

// ConsumeVarint - decode a varint from the start of buffer
func ConsumeVarint(buffer []byte) (uint64, int, error) {
	value, n := proto.DecodeVarint(buffer)
	if 0 == n {
		return 0, 0, fault.ErrTruncatedRecord
	}
	return value, n, nil
}

// ConsumeField - decode the field at the start of buffer
//
// returns the field and the number of bytes it occupied
func ConsumeField(buffer []byte) (Field, int, error) {
	tag, n, err := ConsumeVarint(buffer)
	if nil != err {
		return Field{}, 0, err
	}
	field := Field{
		Number:   int(tag >> tagTypeBits),
		WireType: int(tag & (1<<tagTypeBits - 1)),
	}
	if field.Number <= 0 {
		return Field{}, 0, fault.ErrInvalidFieldTag
	}

	switch field.WireType {
	case WireVarint:
		value, m, err := ConsumeVarint(buffer[n:])
		if nil != err {
			return Field{}, 0, err
		}
		field.Varint = value
		return field, n + m, nil

	case WireDelimited:
		length, m, err := ConsumeVarint(buffer[n:])
		if nil != err {
			return Field{}, 0, err
		}
		start := n + m
		if length > uint64(len(buffer)-start) {
			return Field{}, 0, fault.ErrTruncatedRecord
		}
		end := start + int(length)
		field.Bytes = buffer[start:end]
		return field, end, nil

	case WireFixed64:
		if len(buffer)-n < 8 {
			return Field{}, 0, fault.ErrTruncatedRecord
		}
		field.Varint = binary.LittleEndian.Uint64(buffer[n:])
		return field, n + 8, nil

	case WireFixed32:
		if len(buffer)-n < 4 {
			return Field{}, 0, fault.ErrTruncatedRecord
		}
		field.Varint = uint64(binary.LittleEndian.Uint32(buffer[n:]))
		return field, n + 4, nil

	default:
		return Field{}, 0, fault.ErrUnexpectedWireType
	}
}

// ForEachField - call fn for every field in a message
func ForEachField(buffer []byte, fn func(field Field) error) error {
	for len(buffer) > 0 {
		field, n, err := ConsumeField(buffer)
		if nil != err {
			return err
		}
		if err := fn(field); nil != err {
			return err
		}
		buffer = buffer[n:]
	}
	return nil
}

// check the wire type of a known field
func expect(field Field, wireType int) error {
	if wireType != field.WireType {
		return fault.ErrUnexpectedWireType
	}
	return nil
}

// UnmarshalSemanticVersion - decode a SemanticVersion message
func UnmarshalSemanticVersion(buffer []byte) (SemanticVersion, error) {
	v := SemanticVersion{}
	err := ForEachField(buffer, func(field Field) error {
		switch field.Number {
		case 1, 2, 3:
			if err := expect(field, WireVarint); nil != err {
				return err
			}
			value := int32(field.Varint)
			switch field.Number {
			case 1:
				v.Major = value
			case 2:
				v.Minor = value
			case 3:
				v.Patch = value
			}
		case 4:
			v.Pre = string(field.Bytes)
		case 5:
			v.Build = string(field.Bytes)
		}
		return nil
	})
	return v, err
}

// UnmarshalHashObject - decode a HashObject message
func UnmarshalHashObject(buffer []byte) (HashObject, error) {
	h := HashObject{}
	err := ForEachField(buffer, func(field Field) error {
		switch field.Number {
		case 1:
			if err := expect(field, WireVarint); nil != err {
				return err
			}
			h.Algorithm = HashAlgorithm(field.Varint)
		case 2:
			if err := expect(field, WireVarint); nil != err {
				return err
			}
			h.Length = int32(field.Varint)
		case 3:
			if err := expect(field, WireDelimited); nil != err {
				return err
			}
			h.Hash = copyBytes(field.Bytes)
		}
		return nil
	})
	return h, err
}

// UnmarshalSidecarMetadata - decode a SidecarMetadata message
//
// accepts types in both packed and unpacked form
func UnmarshalSidecarMetadata(buffer []byte) (SidecarMetadata, error) {
	m := SidecarMetadata{}
	err := ForEachField(buffer, func(field Field) error {
		switch field.Number {
		case 1:
			if err := expect(field, WireDelimited); nil != err {
				return err
			}
			h, err := UnmarshalHashObject(field.Bytes)
			if nil != err {
				return err
			}
			m.Hash = h
		case 2:
			if err := expect(field, WireVarint); nil != err {
				return err
			}
			m.ID = int32(field.Varint)
		case 3:
			switch field.WireType {
			case WireVarint:
				m.Types = append(m.Types, SidecarType(field.Varint))
			case WireDelimited:
				packed := field.Bytes
				for len(packed) > 0 {
					value, n, err := ConsumeVarint(packed)
					if nil != err {
						return err
					}
					m.Types = append(m.Types, SidecarType(value))
					packed = packed[n:]
				}
			default:
				return fault.ErrUnexpectedWireType
			}
		}
		return nil
	})
	return m, err
}

// UnmarshalSignatureObject - decode a SignatureObject message
func UnmarshalSignatureObject(buffer []byte) (SignatureObject, error) {
	s := SignatureObject{}
	err := ForEachField(buffer, func(field Field) error {
		switch field.Number {
		case 1, 2, 3:
			if err := expect(field, WireVarint); nil != err {
				return err
			}
			value := int32(field.Varint)
			switch field.Number {
			case 1:
				s.Type = SignatureType(value)
			case 2:
				s.Length = value
			case 3:
				s.Checksum = value
			}
		case 4:
			if err := expect(field, WireDelimited); nil != err {
				return err
			}
			s.Signature = copyBytes(field.Bytes)
		case 5:
			if err := expect(field, WireDelimited); nil != err {
				return err
			}
			h, err := UnmarshalHashObject(field.Bytes)
			if nil != err {
				return err
			}
			s.HashObject = h
		}
		return nil
	})
	return s, err
}

// UnmarshalSignatureFile - decode a SignatureFile message
func UnmarshalSignatureFile(buffer []byte) (SignatureFile, error) {
	f := SignatureFile{}
	err := ForEachField(buffer, func(field Field) error {
		switch field.Number {
		case FieldFileSignature, FieldMetadataSignature:
			if err := expect(field, WireDelimited); nil != err {
				return err
			}
			s, err := UnmarshalSignatureObject(field.Bytes)
			if nil != err {
				return err
			}
			if FieldFileSignature == field.Number {
				f.FileSignature = &s
			} else {
				f.MetadataSignature = &s
			}
		}
		return nil
	})
	return f, err
}

func copyBytes(b []byte) []byte {
	result := make([]byte, len(b))
	copy(result, b)
	return result
}
