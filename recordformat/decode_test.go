// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package recordformat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/recordstream/fault"
	"github.com/bitmark-inc/recordstream/recordformat"
)

func TestConsumeField(t *testing.T) {
	buffer := []byte{0x1a, 0x02, 0xaa, 0xbb, 0x28, 0x96, 0x01}

	field, n, err := recordformat.ConsumeField(buffer)
	assert.Nil(t, err, "first field error")
	assert.Equal(t, 4, n, "wrong first size")
	assert.Equal(t, 3, field.Number, "wrong first number")
	assert.Equal(t, recordformat.WireDelimited, field.WireType, "wrong first wire type")
	assert.Equal(t, []byte{0xaa, 0xbb}, field.Bytes, "wrong first bytes")

	field, n, err = recordformat.ConsumeField(buffer[n:])
	assert.Nil(t, err, "second field error")
	assert.Equal(t, 3, n, "wrong second size")
	assert.Equal(t, recordformat.FieldBlockNumber, field.Number, "wrong second number")
	assert.Equal(t, uint64(150), field.Varint, "wrong second value")
}

func TestConsumeFieldFixed(t *testing.T) {
	field, n, err := recordformat.ConsumeField([]byte{0x0d, 1, 0, 0, 0})
	assert.Nil(t, err, "fixed32 error")
	assert.Equal(t, 5, n, "wrong fixed32 size")
	assert.Equal(t, uint64(1), field.Varint, "wrong fixed32 value")

	field, n, err = recordformat.ConsumeField([]byte{0x09, 2, 0, 0, 0, 0, 0, 0, 0})
	assert.Nil(t, err, "fixed64 error")
	assert.Equal(t, 9, n, "wrong fixed64 size")
	assert.Equal(t, uint64(2), field.Varint, "wrong fixed64 value")
}

func TestConsumeFieldErrors(t *testing.T) {
	tests := []struct {
		buffer []byte
		err    error
	}{
		{[]byte{}, fault.ErrTruncatedRecord},
		{[]byte{0x80}, fault.ErrTruncatedRecord},
		{[]byte{0x00}, fault.ErrInvalidFieldTag},
		{[]byte{0x0b}, fault.ErrUnexpectedWireType},
		{[]byte{0x1a, 0x05, 0x01}, fault.ErrTruncatedRecord},
		{[]byte{0x1a}, fault.ErrTruncatedRecord},
		{[]byte{0x0d, 1, 0}, fault.ErrTruncatedRecord},
		{[]byte{0x09, 1, 0, 0}, fault.ErrTruncatedRecord},
	}

	for i, item := range tests {
		_, _, err := recordformat.ConsumeField(item.buffer)
		assert.Equal(t, item.err, err, "%d: wrong error for %x", i, item.buffer)
	}
}

func TestForEachFieldStopsOnError(t *testing.T) {
	buffer := []byte{0x08, 0x01, 0x10, 0x02, 0x18, 0x03}
	count := 0
	err := recordformat.ForEachField(buffer, func(field recordformat.Field) error {
		count += 1
		if 2 == field.Number {
			return assert.AnError
		}
		return nil
	})
	assert.Equal(t, assert.AnError, err, "error not returned")
	assert.Equal(t, 2, count, "iteration did not stop")
}

func TestUnmarshalWrongWireType(t *testing.T) {
	// algorithm sent as a delimited field
	_, err := recordformat.UnmarshalHashObject([]byte{0x0a, 0x00})
	assert.Equal(t, fault.ErrUnexpectedWireType, err, "wire type not checked")
}

func TestUnmarshalSkipsUnknownFields(t *testing.T) {
	buffer := []byte{0x08, 0x01, 0x7a, 0x01, 0xff, 0x10, 0x30}
	h, err := recordformat.UnmarshalHashObject(buffer)
	assert.Nil(t, err, "decode error")
	assert.Equal(t, recordformat.HashAlgorithmSHA384, h.Algorithm, "wrong algorithm")
	assert.Equal(t, int32(48), h.Length, "wrong length")
}
