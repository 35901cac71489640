// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package streamchain

import (
	"bufio"
	"hash"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/multierr"

	"github.com/bitmark-inc/recordstream/recorddigest"
)

// Reader - input side of a chain, hashes the uncompressed bytes read
type Reader struct {
	name   string
	file   afero.File
	gzip   *gzip.Reader
	digest hash.Hash
	reader io.Reader
}

// Open - open a file for reading, decompressing if required
func Open(fs afero.Fs, name string, compressed bool) (*Reader, error) {
	file, err := fs.Open(name)
	if nil != err {
		return nil, err
	}

	r := &Reader{
		name:   name,
		file:   file,
		digest: recorddigest.New(),
	}

	var upstream io.Reader = bufio.NewReaderSize(file, bufferSize)
	if compressed {
		r.gzip, err = gzip.NewReader(upstream)
		if nil != err {
			file.Close()
			return nil, errors.Wrapf(err, "decompress: %s", name)
		}
		upstream = r.gzip
	}
	r.reader = io.TeeReader(upstream, r.digest)

	return r, nil
}

// Name - path of the underlying file
func (r *Reader) Name() string {
	return r.name
}

// Read - uncompressed bytes
func (r *Reader) Read(p []byte) (int, error) {
	return r.reader.Read(p)
}

// Digest - SHA-384 of everything read so far
func (r *Reader) Digest() recorddigest.Digest {
	return recorddigest.Sum(r.digest)
}

// Close - close the layers in order
func (r *Reader) Close() error {
	var err error
	if nil != r.gzip {
		err = multierr.Append(err, r.gzip.Close())
	}
	return multierr.Append(err, r.file.Close())
}
