// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package recordfile

import (
	"encoding/binary"
	"io"
	"io/ioutil"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/multierr"

	"github.com/bitmark-inc/recordstream/fault"
	"github.com/bitmark-inc/recordstream/recorddigest"
	"github.com/bitmark-inc/recordstream/recordformat"
	"github.com/bitmark-inc/recordstream/streamchain"
)

// Item - one transaction as stored in a record file
type Item struct {
	Transaction []byte `json:"-"`
	Record      []byte `json:"-"`
}

// File - parsed record file
type File struct {
	Version          int32                          `json:"version"`
	HapiProtoVersion recordformat.SemanticVersion   `json:"hapiProtoVersion"`
	StartRunningHash recorddigest.Digest            `json:"startRunningHash"`
	EndRunningHash   recorddigest.Digest            `json:"endRunningHash"`
	BlockNumber      int64                          `json:"blockNumber"`
	Items            []Item                         `json:"-"`
	ItemCount        int                            `json:"itemCount"`
	Sidecars         []recordformat.SidecarMetadata `json:"sidecars,omitempty"`
	FileHash         recorddigest.Digest            `json:"fileHash"`
	Length           int                            `json:"length"`
}

// ReadFile - parse a record file, decompressing by file name
func ReadFile(fs afero.Fs, path string) (file *File, err error) {
	r, err := streamchain.Open(fs, path, recordformat.IsCompressed(path))
	if nil != err {
		return nil, errors.Wrapf(err, "open record file: %s", path)
	}
	defer func() {
		err = multierr.Append(err, r.Close())
	}()

	file, err = Read(r)
	if nil != err {
		return nil, errors.Wrapf(err, "read record file: %s", path)
	}
	return file, nil
}

// Read - parse uncompressed record file bytes
func Read(r io.Reader) (*File, error) {
	buffer, err := ioutil.ReadAll(r)
	if nil != err {
		return nil, err
	}
	if len(buffer) < 4 {
		return nil, fault.ErrTruncatedRecord
	}

	file := &File{
		Version:  int32(binary.BigEndian.Uint32(buffer)),
		FileHash: recorddigest.NewDigest(buffer),
		Length:   len(buffer),
	}
	if recordformat.Version != file.Version {
		return nil, fault.ErrInvalidFormatVersion
	}

	haveStart := false
	haveEnd := false
	err = recordformat.ForEachField(buffer[4:], func(field recordformat.Field) error {
		switch field.Number {
		case recordformat.FieldHapiProtoVersion:
			if recordformat.WireDelimited != field.WireType {
				return fault.ErrUnexpectedWireType
			}
			v, err := recordformat.UnmarshalSemanticVersion(field.Bytes)
			if nil != err {
				return err
			}
			file.HapiProtoVersion = v

		case recordformat.FieldStartObjectRunningHash:
			digest, err := hashField(field)
			if nil != err {
				return err
			}
			file.StartRunningHash = digest
			haveStart = true

		case recordformat.FieldRecordStreamItems:
			item, err := itemField(field)
			if nil != err {
				return err
			}
			file.Items = append(file.Items, item)

		case recordformat.FieldEndObjectRunningHash:
			digest, err := hashField(field)
			if nil != err {
				return err
			}
			file.EndRunningHash = digest
			haveEnd = true

		case recordformat.FieldBlockNumber:
			if recordformat.WireVarint != field.WireType {
				return fault.ErrUnexpectedWireType
			}
			file.BlockNumber = int64(field.Varint)

		case recordformat.FieldSidecars:
			if recordformat.WireDelimited != field.WireType {
				return fault.ErrUnexpectedWireType
			}
			m, err := recordformat.UnmarshalSidecarMetadata(field.Bytes)
			if nil != err {
				return err
			}
			file.Sidecars = append(file.Sidecars, m)
		}
		return nil
	})
	if nil != err {
		return nil, err
	}

	// a file without both running hashes was not closed
	if !haveStart || !haveEnd {
		return nil, fault.ErrTruncatedRecord
	}

	file.ItemCount = len(file.Items)
	return file, nil
}

func hashField(field recordformat.Field) (recorddigest.Digest, error) {
	if recordformat.WireDelimited != field.WireType {
		return recorddigest.Digest{}, fault.ErrUnexpectedWireType
	}
	h, err := recordformat.UnmarshalHashObject(field.Bytes)
	if nil != err {
		return recorddigest.Digest{}, err
	}
	return h.Digest()
}

func itemField(field recordformat.Field) (Item, error) {
	if recordformat.WireDelimited != field.WireType {
		return Item{}, fault.ErrUnexpectedWireType
	}
	item := Item{}
	err := recordformat.ForEachField(field.Bytes, func(f recordformat.Field) error {
		if recordformat.WireDelimited != f.WireType {
			return nil
		}
		switch f.Number {
		case recordformat.FieldItemTransaction:
			item.Transaction = f.Bytes
		case recordformat.FieldItemRecord:
			item.Record = f.Bytes
		}
		return nil
	})
	return item, err
}
