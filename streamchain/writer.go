// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package streamchain

import (
	"bufio"
	"hash"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/multierr"

	"github.com/bitmark-inc/recordstream/fault"
	"github.com/bitmark-inc/recordstream/recorddigest"
)

const (
	bufferSize      = 64 * 1024
	filePermissions = 0644
)

// Chain - an open output file with all of its layers
type Chain struct {
	name   string
	file   afero.File
	gzip   *gzip.Writer
	digest hash.Hash
	buffer *bufio.Writer
	closed bool
	sum    recorddigest.Digest
}

// Create - create a file and stack the layers on it
//
// exclusive creation fails with an error satisfying os.IsExist if
// the file is already present
func Create(fs afero.Fs, name string, compress bool, exclusive bool) (*Chain, error) {
	flags := os.O_WRONLY | os.O_CREATE
	if exclusive {
		flags |= os.O_EXCL
	} else {
		flags |= os.O_TRUNC
	}

	file, err := fs.OpenFile(name, flags, filePermissions)
	if nil != err {
		return nil, err
	}

	c := &Chain{
		name:   name,
		file:   file,
		digest: recorddigest.New(),
	}

	var downstream io.Writer = file
	if compress {
		c.gzip = gzip.NewWriter(file)
		downstream = c.gzip
	}
	c.buffer = bufio.NewWriterSize(io.MultiWriter(c.digest, downstream), bufferSize)

	return c, nil
}

// Name - path of the underlying file
func (c *Chain) Name() string {
	return c.name
}

// Write - append to the outermost layer
func (c *Chain) Write(p []byte) (int, error) {
	if c.closed {
		return 0, fault.ErrAlreadyClosed
	}
	return c.buffer.Write(p)
}

// Close - finish every layer in order
//
// every step is attempted even after an earlier one fails, the
// errors are combined
func (c *Chain) Close() error {
	if c.closed {
		return fault.ErrAlreadyClosed
	}
	c.closed = true

	var err error
	if e := c.buffer.Flush(); nil != e {
		err = multierr.Append(err, errors.Wrapf(e, "flush: %s", c.name))
	}
	c.sum = recorddigest.Sum(c.digest)

	if nil != c.gzip {
		if e := c.gzip.Close(); nil != e {
			err = multierr.Append(err, errors.Wrapf(e, "compress: %s", c.name))
		}
	}
	if e := c.file.Sync(); nil != e {
		err = multierr.Append(err, errors.Wrapf(e, "sync: %s", c.name))
	}
	if e := c.file.Close(); nil != e {
		err = multierr.Append(err, errors.Wrapf(e, "close: %s", c.name))
	}
	return err
}

// Digest - SHA-384 of the uncompressed bytes, only valid after Close
func (c *Chain) Digest() (recorddigest.Digest, bool) {
	return c.sum, c.closed
}
