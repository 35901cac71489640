// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package recordindex

import (
	"encoding/binary"
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/recordstream/fault"
	"github.com/bitmark-inc/recordstream/recorddigest"
)

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const (
	currentIndexVersion = 0x100
	blockPrefix         = 'B'
	blockKeyLength      = 1 + 8
	fixedValueLength    = 8 + 3*recorddigest.Length
)

// pool access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// Entry - summary of one closed record file
type Entry struct {
	BlockNumber      int64               `json:"blockNumber"`
	Name             string              `json:"name"`
	StartRunningHash recorddigest.Digest `json:"startRunningHash"`
	EndRunningHash   recorddigest.Digest `json:"endRunningHash"`
	FileHash         recorddigest.Digest `json:"fileHash"`
	ItemCount        uint64              `json:"itemCount"`
}

// Index - an open index database
type Index struct {
	sync.RWMutex
	log      *logger.L
	db       *leveldb.DB
	readOnly bool
}

// Open - open or create the index database
func Open(directory string, readOnly bool, log *logger.L) (*Index, error) {
	if nil == log {
		return nil, fault.ErrInvalidLoggerChannel
	}
	if "" == directory {
		return nil, fault.ErrInvalidDirectory
	}

	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(directory, opt)
	if nil != err {
		return nil, errors.Wrapf(err, "open index: %s", directory)
	}

	version, err := getVersion(db)
	if nil != err {
		db.Close()
		return nil, err
	}

	switch {
	case 0 == version && !readOnly:
		// database was empty so tag as current version
		if err := putVersion(db, currentIndexVersion); nil != err {
			db.Close()
			return nil, err
		}
	case currentIndexVersion != version:
		log.Criticalf("index database version: %d  current version: %d", version, currentIndexVersion)
		db.Close()
		return nil, fault.ErrIndexVersionMismatch
	}

	log.Infof("opened: %q  read only: %t", directory, readOnly)

	return &Index{
		log:      log,
		db:       db,
		readOnly: readOnly,
	}, nil
}

func getVersion(db *leveldb.DB) (int, error) {
	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return 0, nil
	} else if nil != err {
		return 0, err
	}

	if 4 != len(versionValue) {
		return 0, fault.ErrIndexVersionMismatch
	}
	return int(binary.BigEndian.Uint32(versionValue)), nil
}

func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	return db.Put(versionKey, currentVersion, nil)
}

// Close - close the database
func (x *Index) Close() error {
	x.Lock()
	defer x.Unlock()

	if nil == x.db {
		return fault.ErrAlreadyClosed
	}
	err := x.db.Close()
	x.db = nil
	x.log.Info("closed")
	return err
}

// Put - store the entry for the next block
//
// block numbers must strictly increase
func (x *Index) Put(entry Entry) error {
	if entry.BlockNumber < 0 {
		return fault.ErrInvalidBlockNumber
	}

	x.Lock()
	defer x.Unlock()

	if nil == x.db {
		return fault.ErrAlreadyClosed
	}
	if x.readOnly {
		return fault.ErrReadOnlyIndex
	}

	last, found, err := x.last()
	if nil != err {
		return err
	}
	if found && entry.BlockNumber <= last.BlockNumber {
		x.log.Warnf("block: %d  not after last block: %d", entry.BlockNumber, last.BlockNumber)
		return fault.ErrBlockNumberNotIncreasing
	}

	err = x.db.Put(blockKey(entry.BlockNumber), packEntry(entry), &ldb_opt.WriteOptions{Sync: true})
	if nil != err {
		return errors.Wrapf(err, "put block: %d", entry.BlockNumber)
	}

	x.log.Debugf("block: %d  name: %q  items: %d", entry.BlockNumber, entry.Name, entry.ItemCount)
	return nil
}

// Get - entry for a block
func (x *Index) Get(blockNumber int64) (Entry, bool, error) {
	x.RLock()
	defer x.RUnlock()

	if nil == x.db {
		return Entry{}, false, fault.ErrAlreadyClosed
	}
	if blockNumber < 0 {
		return Entry{}, false, nil
	}

	value, err := x.db.Get(blockKey(blockNumber), nil)
	if leveldb.ErrNotFound == err {
		return Entry{}, false, nil
	} else if nil != err {
		return Entry{}, false, err
	}

	entry, err := unpackEntry(blockNumber, value)
	if nil != err {
		return Entry{}, false, err
	}
	return entry, true, nil
}

// Last - entry with the highest block number
func (x *Index) Last() (Entry, bool, error) {
	x.RLock()
	defer x.RUnlock()

	if nil == x.db {
		return Entry{}, false, fault.ErrAlreadyClosed
	}
	return x.last()
}

func (x *Index) last() (Entry, bool, error) {
	r := &ldb_util.Range{
		Start: []byte{blockPrefix},
		Limit: []byte{blockPrefix + 1},
	}
	iter := x.db.NewIterator(r, nil)
	defer iter.Release()

	if !iter.Last() {
		return Entry{}, false, iter.Error()
	}

	key := iter.Key()
	if blockKeyLength != len(key) {
		return Entry{}, false, fault.ErrTruncatedRecord
	}
	blockNumber := int64(binary.BigEndian.Uint64(key[1:]))

	entry, err := unpackEntry(blockNumber, iter.Value())
	if nil != err {
		return Entry{}, false, err
	}
	return entry, true, nil
}

func blockKey(blockNumber int64) []byte {
	key := make([]byte, blockKeyLength)
	key[0] = blockPrefix
	binary.BigEndian.PutUint64(key[1:], uint64(blockNumber))
	return key
}

func packEntry(entry Entry) []byte {
	buffer := make([]byte, 8, fixedValueLength+len(entry.Name))
	binary.BigEndian.PutUint64(buffer, entry.ItemCount)
	buffer = append(buffer, entry.StartRunningHash[:]...)
	buffer = append(buffer, entry.EndRunningHash[:]...)
	buffer = append(buffer, entry.FileHash[:]...)
	return append(buffer, entry.Name...)
}

// leveldb values are only valid until the next iterator step so copy
func unpackEntry(blockNumber int64, value []byte) (Entry, error) {
	if len(value) < fixedValueLength {
		return Entry{}, fault.ErrTruncatedRecord
	}

	entry := Entry{
		BlockNumber: blockNumber,
		ItemCount:   binary.BigEndian.Uint64(value),
	}
	n := 8
	n += copy(entry.StartRunningHash[:], value[n:])
	n += copy(entry.EndRunningHash[:], value[n:])
	n += copy(entry.FileHash[:], value[n:])
	entry.Name = string(value[n:])
	return entry, nil
}
