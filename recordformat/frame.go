// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package recordformat

import (
	"io"

	"github.com/gogo/protobuf/proto"
)

// Tag - the protobuf key for a field: number<<3 | wire type
func Tag(fieldNumber int, wireType int) uint64 {
	return uint64(fieldNumber)<<tagTypeBits | uint64(wireType)
}

// Encoder - holds a scratch buffer for field headers
//
// each file writer owns one, nothing is shared between writers
type Encoder struct {
	header *proto.Buffer
}

// NewEncoder - create an encoder with its own scratch buffer
func NewEncoder() *Encoder {
	return &Encoder{
		header: proto.NewBuffer(make([]byte, 0, 2*maximumVarintLength)),
	}
}

// maximum bytes in a protobuf varint
const maximumVarintLength = 10

// WriteDelimitedField - write tag(fieldNumber, delimited), varint length, data
//
// returns the total number of bytes written
func (e *Encoder) WriteDelimitedField(w io.Writer, fieldNumber int, data []byte) (int, error) {
	e.header.Reset()
	e.header.EncodeVarint(Tag(fieldNumber, WireDelimited))
	e.header.EncodeVarint(uint64(len(data)))

	n, err := w.Write(e.header.Bytes())
	if nil != err {
		return n, err
	}
	m, err := w.Write(data)
	return n + m, err
}

// WriteVarintField - write tag(fieldNumber, varint), value
func (e *Encoder) WriteVarintField(w io.Writer, fieldNumber int, value uint64) (int, error) {
	e.header.Reset()
	e.header.EncodeVarint(Tag(fieldNumber, WireVarint))
	e.header.EncodeVarint(value)
	return w.Write(e.header.Bytes())
}

// WriteDelimitedField - one-off form using a per-call buffer
func WriteDelimitedField(w io.Writer, fieldNumber int, data []byte) (int, error) {
	return NewEncoder().WriteDelimitedField(w, fieldNumber, data)
}

// DelimitedFieldSize - number of bytes WriteDelimitedField produces
func DelimitedFieldSize(fieldNumber int, dataLength int) int {
	return proto.SizeVarint(Tag(fieldNumber, WireDelimited)) + proto.SizeVarint(uint64(dataLength)) + dataLength
}
