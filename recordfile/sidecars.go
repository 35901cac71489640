// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package recordfile

import (
	"path/filepath"

	"github.com/bitmark-inc/recordstream/recordformat"
	"github.com/bitmark-inc/recordstream/recorditem"
	"github.com/bitmark-inc/recordstream/sidecar"
)

// store one sidecar record, rotating to a new file once if it does not fit
func (w *Writer) writeSidecar(record recorditem.SidecarRecord) {
	if !record.Type.Valid() {
		w.log.Warnf("block: %d  sidecar record type: %d  dropped", w.blockNumber, record.Type)
		w.droppedSidecarRecords += 1
		return
	}

	for attempt := 0; attempt < 2; attempt += 1 {
		if nil == w.sidecar && !w.openSidecar() {
			w.droppedSidecarRecords += 1
			return
		}

		ok, err := w.sidecar.WriteRecord(record.Type, record.Bytes)
		if nil != err {
			w.log.Errorf("block: %d  sidecar: %d  write failed: %s", w.blockNumber, w.sidecar.ID(), err)
			w.droppedSidecarRecords += 1
			w.abandonSidecar()
			return
		}
		if ok {
			return
		}

		// an empty sidecar only rejects a record larger than the budget
		if 0 == w.sidecar.RecordCount() {
			break
		}
		w.closeSidecar()
	}

	w.log.Warnf("block: %d  sidecar record: %d bytes  exceeds maximum: %d  dropped", w.blockNumber, len(record.Bytes), w.options.SidecarMaxSize)
	w.droppedSidecarRecords += 1
}

// the file may hold a partial record, it is closed without metadata
func (w *Writer) abandonSidecar() {
	s := w.sidecar
	w.sidecar = nil

	w.droppedSidecarRecords += s.RecordCount()
	if err := s.Close(); nil != err {
		w.log.Errorf("block: %d  sidecar: %d  close after failed write: %s", w.blockNumber, s.ID(), err)
	}
}

// the id is consumed even if the open fails so no file name is reused
func (w *Writer) openSidecar() bool {
	id := w.nextSidecarID
	w.nextSidecarID += 1

	dir := filepath.Join(w.nodeDir, w.options.SidecarDirectory)
	if err := w.fs.MkdirAll(dir, directoryPermissions); nil != err {
		w.log.Errorf("block: %d  sidecar directory: %q  error: %s", w.blockNumber, dir, err)
		return false
	}

	path := filepath.Join(dir, recordformat.SidecarFileName(w.startConsensusTime, id, w.options.Compress))
	s, err := sidecar.New(w.fs, path, w.options.Compress, w.options.SidecarMaxSize, id, w.log)
	if nil != err {
		w.log.Errorf("block: %d  sidecar: %d  open failed: %s", w.blockNumber, id, err)
		return false
	}
	w.sidecar = s
	return true
}

// close the current sidecar and keep its footer entry, a sidecar
// holding no records is removed and not listed
func (w *Writer) closeSidecar() {
	s := w.sidecar
	w.sidecar = nil

	if err := s.Close(); nil != err {
		w.log.Errorf("block: %d  sidecar: %d  close failed: %s", w.blockNumber, s.ID(), err)
		w.droppedSidecarRecords += s.RecordCount()
		return
	}
	if 0 == s.RecordCount() {
		if err := w.fs.Remove(s.Path()); nil != err {
			w.log.Errorf("block: %d  sidecar: %d  remove empty: %s", w.blockNumber, s.ID(), err)
		}
		w.log.Debugf("block: %d  sidecar: %d  empty, discarded", w.blockNumber, s.ID())
		return
	}
	m, err := s.Metadata()
	if nil != err {
		w.log.Errorf("block: %d  sidecar: %d  metadata: %s", w.blockNumber, s.ID(), err)
		w.droppedSidecarRecords += s.RecordCount()
		return
	}
	w.sidecarMetadata = append(w.sidecarMetadata, m)
}
