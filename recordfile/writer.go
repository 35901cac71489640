// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package recordfile

import (
	"encoding/binary"
	"path/filepath"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/multierr"

	"github.com/bitmark-inc/recordstream/fault"
	"github.com/bitmark-inc/recordstream/nodeinfo"
	"github.com/bitmark-inc/recordstream/recorddigest"
	"github.com/bitmark-inc/recordstream/recordformat"
	"github.com/bitmark-inc/recordstream/recordindex"
	"github.com/bitmark-inc/recordstream/recorditem"
	"github.com/bitmark-inc/recordstream/sidecar"
	"github.com/bitmark-inc/recordstream/signature"
	"github.com/bitmark-inc/recordstream/signer"
	"github.com/bitmark-inc/recordstream/streamchain"
)

type state int

const (
	stateUninitialised state = iota
	stateOpen
	stateClosed
)

const directoryPermissions = 0755

// Writer - writes the record file of a single block
//
// not safe for concurrent use, items must arrive in consensus order
type Writer struct {
	fs       afero.Fs
	log      *logger.L
	options  Options
	signer   signer.Signer
	nodeDir  string
	encoder  *recordformat.Encoder
	state    state
	chain    *streamchain.Chain
	path     string
	fileHash recorddigest.Digest
	signed   bool

	// fixed by Init
	hapiProtoVersion   recordformat.SemanticVersion
	startRunningHash   recorddigest.Digest
	startConsensusTime time.Time
	blockNumber        int64

	endRunningHash recorddigest.Digest
	itemCount      uint64

	sidecar               *sidecar.Writer
	nextSidecarID         int32
	sidecarMetadata       []recordformat.SidecarMetadata
	droppedSidecarRecords int
}

// New - create a writer, nothing is written until Init
func New(fs afero.Fs, node nodeinfo.NodeInfo, options Options, s signer.Signer, log *logger.L) (*Writer, error) {
	if nil == log {
		return nil, fault.ErrInvalidLoggerChannel
	}
	if !recorddigest.Available() {
		log.Criticalf("SHA-384 is not available")
		return nil, fault.ErrDigestUnavailable
	}
	if err := options.Validate(); nil != err {
		return nil, err
	}
	if nil == s {
		return nil, fault.ErrMissingSigner
	}
	if nil == node || "" == node.AccountMemo() {
		return nil, fault.ErrInvalidNodeAccount
	}

	return &Writer{
		fs:            fs,
		log:           log,
		options:       options,
		signer:        s,
		nodeDir:       recordformat.NodeDirectory(options.RecordDirectory, node.AccountMemo()),
		encoder:       recordformat.NewEncoder(),
		state:         stateUninitialised,
		nextSidecarID: 1,
	}, nil
}

// check the writer is in the expected state
func (w *Writer) expect(s state) error {
	if s == w.state {
		return nil
	}
	switch w.state {
	case stateUninitialised:
		return fault.ErrNotInitialised
	case stateOpen:
		return fault.ErrAlreadyInitialised
	default:
		return fault.ErrAlreadyClosed
	}
}

// Init - create the record file and write its header
//
// an I/O failure leaves the writer closed, a new writer is needed to
// retry the block
func (w *Writer) Init(hapiProtoVersion recordformat.SemanticVersion, startRunningHash recorddigest.Digest, startConsensusTime time.Time, blockNumber int64) error {
	if err := w.expect(stateUninitialised); nil != err {
		return err
	}
	if blockNumber < 0 {
		return fault.ErrInvalidBlockNumber
	}

	w.hapiProtoVersion = hapiProtoVersion
	w.startRunningHash = startRunningHash
	w.startConsensusTime = startConsensusTime
	w.blockNumber = blockNumber

	w.path = filepath.Join(w.nodeDir, recordformat.RecordFileName(startConsensusTime, w.options.Compress))

	if err := w.open(); nil != err {
		w.state = stateClosed
		w.log.Criticalf("block: %d  init failed: %s", blockNumber, err)
		return err
	}

	w.state = stateOpen
	w.log.Debugf("block: %d  opened: %q", blockNumber, w.path)
	return nil
}

func (w *Writer) open() error {
	err := w.fs.MkdirAll(w.nodeDir, directoryPermissions)
	if nil != err {
		return errors.Wrapf(err, "create directory: %s", w.nodeDir)
	}

	w.chain, err = streamchain.Create(w.fs, w.path, w.options.Compress, false)
	if nil != err {
		return errors.Wrapf(err, "create record file: %s", w.path)
	}

	err = w.writeHeader()
	if nil != err {
		err = multierr.Append(err, w.chain.Close())
		return errors.Wrapf(err, "write header: %s", w.path)
	}
	return nil
}

func (w *Writer) writeHeader() error {
	var version [4]byte
	binary.BigEndian.PutUint32(version[:], uint32(w.options.FormatVersion))
	if _, err := w.chain.Write(version[:]); nil != err {
		return err
	}
	if _, err := w.encoder.WriteDelimitedField(w.chain, recordformat.FieldHapiProtoVersion, w.hapiProtoVersion.Marshal()); nil != err {
		return err
	}
	start := recordformat.NewHashObject(w.startRunningHash)
	_, err := w.encoder.WriteDelimitedField(w.chain, recordformat.FieldStartObjectRunningHash, start.Marshal())
	return err
}

// WriteItem - append one transaction and hand its sidecars on
//
// sidecar problems are logged and never fail the item
func (w *Writer) WriteItem(item *recorditem.Serialized) error {
	if err := w.expect(stateOpen); nil != err {
		return err
	}
	if nil == item {
		return fault.ErrInvalidItem
	}

	_, err := w.encoder.WriteDelimitedField(w.chain, recordformat.FieldRecordStreamItems, item.CanonicalBytes)
	if nil != err {
		w.log.Criticalf("block: %d  item: %d  write failed: %s", w.blockNumber, w.itemCount, err)
		return errors.Wrapf(err, "write item: %d to: %s", w.itemCount, w.path)
	}
	w.itemCount += 1

	for _, record := range item.Sidecars {
		w.writeSidecar(record)
	}
	return nil
}

// Close - write the footer, finish the file and sign it
//
// the writer is closed afterwards whatever the outcome
func (w *Writer) Close(endRunningHash recorddigest.Digest) error {
	if err := w.expect(stateOpen); nil != err {
		return err
	}
	w.state = stateClosed
	w.endRunningHash = endRunningHash

	if nil != w.sidecar {
		w.closeSidecar()
	}

	err := w.writeFooter()
	if nil != err {
		err = errors.Wrapf(err, "write footer: %s", w.path)
	}
	err = multierr.Append(err, w.chain.Close())
	if nil != err {
		w.log.Criticalf("block: %d  close failed: %s", w.blockNumber, err)
		return err
	}

	w.fileHash, _ = w.chain.Digest()

	metadata := signature.Metadata{
		FormatVersion:    w.options.FormatVersion,
		HapiProtoVersion: w.hapiProtoVersion,
		BlockNumber:      w.blockNumber,
		StartRunningHash: w.startRunningHash,
		EndRunningHash:   endRunningHash,
	}
	err = signature.WriteFile(w.fs, w.log, w.path, w.fileHash, w.signer, w.options.MetadataSignature, metadata)
	if nil != err {
		w.log.Criticalf("block: %d  signature failed: %s", w.blockNumber, err)
		return err
	}
	w.signed = true

	w.log.Infof("block: %d  closed: %q  items: %d  sidecars: %d  hash: %s", w.blockNumber, w.path, w.itemCount, len(w.sidecarMetadata), w.fileHash)
	return nil
}

func (w *Writer) writeFooter() error {
	end := recordformat.NewHashObject(w.endRunningHash)
	if _, err := w.encoder.WriteDelimitedField(w.chain, recordformat.FieldEndObjectRunningHash, end.Marshal()); nil != err {
		return err
	}

	// proto3 omits a zero block number
	if 0 != w.blockNumber {
		if _, err := w.encoder.WriteVarintField(w.chain, recordformat.FieldBlockNumber, uint64(w.blockNumber)); nil != err {
			return err
		}
	}

	for _, m := range w.sidecarMetadata {
		if _, err := w.encoder.WriteDelimitedField(w.chain, recordformat.FieldSidecars, m.Marshal()); nil != err {
			return err
		}
	}
	return nil
}

// Path - record file name, empty before Init
func (w *Writer) Path() string {
	return w.path
}

// BlockNumber - block set by Init
func (w *Writer) BlockNumber() int64 {
	return w.blockNumber
}

// ItemCount - number of items written
func (w *Writer) ItemCount() uint64 {
	return w.itemCount
}

// SidecarMetadata - copy of the footer entries for closed sidecars
func (w *Writer) SidecarMetadata() []recordformat.SidecarMetadata {
	m := make([]recordformat.SidecarMetadata, len(w.sidecarMetadata))
	copy(m, w.sidecarMetadata)
	return m
}

// DroppedSidecarRecords - sidecar records not held by any sidecar in the footer
func (w *Writer) DroppedSidecarRecords() int {
	return w.droppedSidecarRecords
}

// Summary - index entry for a writer whose file was closed and signed
func (w *Writer) Summary() (recordindex.Entry, error) {
	if stateClosed != w.state || !w.signed {
		return recordindex.Entry{}, fault.ErrNotOpen
	}
	return recordindex.Entry{
		BlockNumber:      w.blockNumber,
		Name:             filepath.Base(w.path),
		StartRunningHash: w.startRunningHash,
		EndRunningHash:   w.endRunningHash,
		FileHash:         w.fileHash,
		ItemCount:        w.itemCount,
	}, nil
}
