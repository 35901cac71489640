// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package sidecar

import (
	"github.com/bitmark-inc/logger"
	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/bitmark-inc/recordstream/fault"
	"github.com/bitmark-inc/recordstream/recorddigest"
	"github.com/bitmark-inc/recordstream/recordformat"
	"github.com/bitmark-inc/recordstream/streamchain"
)

// Writer - one open sidecar file
type Writer struct {
	log          *logger.L
	chain        *streamchain.Chain
	encoder      *recordformat.Encoder
	id           int32
	maxSize      int64
	bytesWritten int64
	recordCount  int
	types        map[recordformat.SidecarType]struct{}
	fileHash     *recorddigest.Digest
	closed       bool
}

// New - create the sidecar file and open it for writing
func New(fs afero.Fs, path string, compress bool, maxSize int64, id int32, log *logger.L) (*Writer, error) {
	if nil == log {
		return nil, fault.ErrInvalidLoggerChannel
	}
	if maxSize <= 0 {
		return nil, fault.ErrInvalidSidecarSize
	}
	if id < 1 {
		return nil, fault.ErrInvalidSidecarID
	}

	chain, err := streamchain.Create(fs, path, compress, false)
	if nil != err {
		return nil, errors.Wrapf(err, "create sidecar: %s", path)
	}

	log.Debugf("sidecar: %d  opened: %q", id, path)

	return &Writer{
		log:     log,
		chain:   chain,
		encoder: recordformat.NewEncoder(),
		id:      id,
		maxSize: maxSize,
		types:   make(map[recordformat.SidecarType]struct{}),
	}, nil
}

// WriteRecord - append one record if it fits in the remaining budget
//
// false with a nil error means the record was refused and nothing
// was written
func (w *Writer) WriteRecord(kind recordformat.SidecarType, record []byte) (bool, error) {
	if w.closed {
		return false, fault.ErrSidecarClosed
	}
	if !kind.Valid() {
		return false, fault.ErrInvalidSidecarType
	}

	size := int64(len(record))
	if w.bytesWritten+size > w.maxSize {
		w.log.Debugf("sidecar: %d  refused: %d bytes  written: %d  maximum: %d", w.id, size, w.bytesWritten, w.maxSize)
		return false, nil
	}

	_, err := w.encoder.WriteDelimitedField(w.chain, recordformat.FieldSidecarRecords, record)
	if nil != err {
		return false, errors.Wrapf(err, "write sidecar: %s", w.chain.Name())
	}

	w.bytesWritten += size
	w.recordCount += 1
	w.types[kind] = struct{}{}
	return true, nil
}

// Close - finish the file and keep its hash
func (w *Writer) Close() error {
	if w.closed {
		return fault.ErrSidecarClosed
	}
	w.closed = true

	err := w.chain.Close()
	if nil != err {
		return errors.Wrapf(err, "close sidecar: %s", w.chain.Name())
	}

	digest, _ := w.chain.Digest()
	w.fileHash = &digest

	w.log.Infof("sidecar: %d  closed: %q  bytes: %d  hash: %s", w.id, w.chain.Name(), w.bytesWritten, digest)
	return nil
}

// ID - position of this file in the block's sidecar sequence
func (w *Writer) ID() int32 {
	return w.id
}

// Path - file name
func (w *Writer) Path() string {
	return w.chain.Name()
}

// BytesWritten - uncompressed record bytes accepted so far
func (w *Writer) BytesWritten() int64 {
	return w.bytesWritten
}

// RecordCount - records accepted so far
func (w *Writer) RecordCount() int {
	return w.recordCount
}

// Types - sorted copy of the kinds written
func (w *Writer) Types() []recordformat.SidecarType {
	types := make([]recordformat.SidecarType, 0, len(w.types))
	for t := range w.types {
		types = append(types, t)
	}
	return recordformat.SortedTypes(types)
}

// FileHash - nil until the file has been closed successfully
func (w *Writer) FileHash() *recorddigest.Digest {
	if nil == w.fileHash {
		return nil
	}
	digest := *w.fileHash
	return &digest
}

// Metadata - record file footer entry for this sidecar
func (w *Writer) Metadata() (recordformat.SidecarMetadata, error) {
	if nil == w.fileHash {
		return recordformat.SidecarMetadata{}, fault.ErrNotOpen
	}
	return recordformat.SidecarMetadata{
		Hash:  recordformat.NewHashObject(*w.fileHash),
		ID:    w.id,
		Types: w.Types(),
	}, nil
}
