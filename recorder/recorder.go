// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package recorder - writes consecutive blocks of the record stream
//
// the caller decides where blocks begin and end; the recorder carries
// the running hash and block number from one block to the next, takes
// a fresh configuration snapshot for each block and records every
// closed file in the index so a restarted node continues the chain.
package recorder

import (
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/spf13/afero"

	"github.com/bitmark-inc/recordstream/configuration"
	"github.com/bitmark-inc/recordstream/fault"
	"github.com/bitmark-inc/recordstream/recorddigest"
	"github.com/bitmark-inc/recordstream/recordfile"
	"github.com/bitmark-inc/recordstream/recordformat"
	"github.com/bitmark-inc/recordstream/recordindex"
	"github.com/bitmark-inc/recordstream/recorditem"
	"github.com/bitmark-inc/recordstream/signer"
)

// ConfigurationSource - supplies the settings for the next block
type ConfigurationSource interface {
	Current() *configuration.Configuration
}

// Recorder - drives one record file writer at a time
type Recorder struct {
	fs      afero.Fs
	log     *logger.L
	config  ConfigurationSource
	signer  signer.Signer
	index   *recordindex.Index
	writer  *recordfile.Writer
	running *recorditem.RunningHash

	nextBlock    int64
	previousHash recorddigest.Digest
}

// New - resume from the last block recorded in the index, an empty
// index starts at block zero from the zero hash
func New(fs afero.Fs, config ConfigurationSource, s signer.Signer, index *recordindex.Index, log *logger.L) (*Recorder, error) {
	if nil == log {
		return nil, fault.ErrInvalidLoggerChannel
	}
	if nil == s {
		return nil, fault.ErrMissingSigner
	}
	if nil == index {
		return nil, fault.ErrMissingIndex
	}

	r := &Recorder{
		fs:     fs,
		log:    log,
		config: config,
		signer: s,
		index:  index,
	}

	last, found, err := index.Last()
	if nil != err {
		return nil, err
	}
	if found {
		r.nextBlock = last.BlockNumber + 1
		r.previousHash = last.EndRunningHash
		log.Infof("resume after block: %d  file: %s", last.BlockNumber, last.Name)
	} else {
		log.Info("empty index, start at block zero")
	}
	return r, nil
}

// NextBlock - number the next Begin will use
func (r *Recorder) NextBlock() int64 {
	return r.nextBlock
}

// RunningHash - end hash of the last completed block, or the running
// hash so far of the open one
func (r *Recorder) RunningHash() recorddigest.Digest {
	if nil != r.running {
		return r.running.Current()
	}
	return r.previousHash
}

// Begin - open the record file for the next block
func (r *Recorder) Begin(hapiProtoVersion recordformat.SemanticVersion, startConsensusTime time.Time) error {
	if nil != r.writer {
		return fault.ErrAlreadyInitialised
	}

	c := r.config.Current()
	node, err := c.NodeInfo()
	if nil != err {
		return err
	}

	w, err := recordfile.New(r.fs, node, c.WriterOptions(), r.signer, r.log)
	if nil != err {
		return err
	}
	if err := w.Init(hapiProtoVersion, r.previousHash, startConsensusTime, r.nextBlock); nil != err {
		return err
	}

	r.writer = w
	r.running = recorditem.NewRunningHash(r.previousHash)
	return nil
}

// Write - append one item and advance the running hash
func (r *Recorder) Write(item *recorditem.Serialized) error {
	if nil == r.writer {
		return fault.ErrNotInitialised
	}
	if nil == item {
		return fault.ErrInvalidItem
	}
	if err := r.writer.WriteItem(item); nil != err {
		// the partial file is closed but never indexed
		if closeErr := r.writer.Close(r.running.Current()); nil != closeErr {
			r.log.Errorf("block: %d  close after failed write: %s", r.nextBlock, closeErr)
		}
		r.abandon()
		return err
	}
	r.running.Add(item.HashableBytes)
	return nil
}

// End - close the block and index it; on failure the same block
// number and start hash are used by the next Begin
func (r *Recorder) End() (recordindex.Entry, error) {
	if nil == r.writer {
		return recordindex.Entry{}, fault.ErrNotInitialised
	}

	w := r.writer
	end := r.running.Current()
	r.abandon()

	if err := w.Close(end); nil != err {
		return recordindex.Entry{}, err
	}

	if dropped := w.DroppedSidecarRecords(); 0 != dropped {
		r.log.Warnf("block: %d  dropped sidecar records: %d", w.BlockNumber(), dropped)
	}

	entry, err := w.Summary()
	if nil != err {
		return recordindex.Entry{}, err
	}
	if err := r.index.Put(entry); nil != err {
		return recordindex.Entry{}, err
	}

	r.nextBlock = entry.BlockNumber + 1
	r.previousHash = entry.EndRunningHash
	r.log.Debugf("indexed block: %d  items: %d", entry.BlockNumber, entry.ItemCount)
	return entry, nil
}

func (r *Recorder) abandon() {
	r.writer = nil
	r.running = nil
}
