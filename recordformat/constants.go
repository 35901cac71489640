// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package recordformat

// file format versions
const (
	Version          = 6 // int32 at the start of a record file
	SignatureVersion = 6 // single byte at the start of a signature file
)

// file name parts
const (
	RecordExtension      = ".rcd"
	CompressionExtension = ".gz"
	SignatureSuffix      = "_sig"
	NodeDirectoryPrefix  = "record"
)

// protobuf wire types
const (
	WireVarint    = 0
	WireFixed64   = 1
	WireDelimited = 2
	WireFixed32   = 5
)

// number of low bits of a field tag holding the wire type
const tagTypeBits = 3

// RecordStreamFile fields
const (
	FieldHapiProtoVersion       = 1
	FieldStartObjectRunningHash = 2
	FieldRecordStreamItems      = 3
	FieldEndObjectRunningHash   = 4
	FieldBlockNumber            = 5
	FieldSidecars               = 6
)

// RecordStreamItem fields
const (
	FieldItemTransaction = 1
	FieldItemRecord      = 2
)

// SidecarFile fields
const (
	FieldSidecarRecords = 1
)

// SignatureFile fields
const (
	FieldFileSignature     = 1
	FieldMetadataSignature = 2
)

// HashAlgorithm - enumeration from the stream protobuf
type HashAlgorithm int32

// hash algorithms
const (
	HashAlgorithmUnknown HashAlgorithm = 0
	HashAlgorithmSHA384  HashAlgorithm = 1
)

// SignatureType - enumeration from the stream protobuf
type SignatureType int32

// signature types
const (
	SignatureTypeUnknown       SignatureType = 0
	SignatureTypeSHA384WithRSA SignatureType = 1
)

// SidecarType - kind of data held in a sidecar record
type SidecarType int32

// sidecar types
const (
	SidecarTypeUnknown      SidecarType = 0
	ContractStateChange     SidecarType = 1
	ContractAction          SidecarType = 2
	ContractBytecode        SidecarType = 3
	maximumSidecarTypeValue             = ContractBytecode
)

// Valid - true for the known non-zero sidecar types
func (t SidecarType) Valid() bool {
	return t > SidecarTypeUnknown && t <= maximumSidecarTypeValue
}

// String - name as used in the protobuf definition
func (t SidecarType) String() string {
	switch t {
	case SidecarTypeUnknown:
		return "SIDECAR_TYPE_UNKNOWN"
	case ContractStateChange:
		return "CONTRACT_STATE_CHANGE"
	case ContractAction:
		return "CONTRACT_ACTION"
	case ContractBytecode:
		return "CONTRACT_BYTECODE"
	default:
		return "*unknown*"
	}
}

// MarshalText - for JSON output
func (t SidecarType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}
