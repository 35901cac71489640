// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package sidecar

import (
	"io/ioutil"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/multierr"

	"github.com/bitmark-inc/recordstream/fault"
	"github.com/bitmark-inc/recordstream/recorddigest"
	"github.com/bitmark-inc/recordstream/recordformat"
	"github.com/bitmark-inc/recordstream/streamchain"
)

// File - contents of a sidecar file
type File struct {
	Records  [][]byte            `json:"-"`
	Count    int                 `json:"count"`
	Bytes    int64               `json:"bytes"`
	FileHash recorddigest.Digest `json:"fileHash"`
}

// Read - parse a sidecar file, decompressing by file name
func Read(fs afero.Fs, path string) (file *File, err error) {
	r, err := streamchain.Open(fs, path, recordformat.IsCompressed(path))
	if nil != err {
		return nil, errors.Wrapf(err, "open sidecar: %s", path)
	}
	defer func() {
		err = multierr.Append(err, r.Close())
	}()

	buffer, err := ioutil.ReadAll(r)
	if nil != err {
		return nil, errors.Wrapf(err, "read sidecar: %s", path)
	}

	file = &File{}
	err = recordformat.ForEachField(buffer, func(field recordformat.Field) error {
		if recordformat.FieldSidecarRecords != field.Number {
			return nil
		}
		if recordformat.WireDelimited != field.WireType {
			return fault.ErrUnexpectedWireType
		}
		file.Records = append(file.Records, field.Bytes)
		file.Count += 1
		file.Bytes += int64(len(field.Bytes))
		return nil
	})
	if nil != err {
		return nil, errors.Wrapf(err, "parse sidecar: %s", path)
	}

	file.FileHash = r.Digest()
	return file, nil
}
