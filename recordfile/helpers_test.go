// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package recordfile_test

import (
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/spf13/afero"

	"github.com/bitmark-inc/recordstream/nodeinfo"
	"github.com/bitmark-inc/recordstream/recorddigest"
	"github.com/bitmark-inc/recordstream/recordfile"
	"github.com/bitmark-inc/recordstream/recordformat"
	"github.com/bitmark-inc/recordstream/recorditem"
	"github.com/bitmark-inc/recordstream/signer"
)

const (
	recordDirectory = "/data/records"
	nodeDirectory   = "/data/records/record0.0.3"
	recordName      = "2022-01-02T03_04_05.000000006Z.rcd"
)

var (
	consensusTime    = time.Date(2022, time.January, 2, 3, 4, 5, 6, time.UTC)
	hapiProtoVersion = recordformat.SemanticVersion{Major: 0, Minor: 30, Patch: 0}
	startHash        = recorddigest.NewDigest([]byte("previous block"))
)

func testOptions() recordfile.Options {
	return recordfile.Options{
		FormatVersion:        6,
		SignatureFileVersion: 6,
		Compress:             false,
		MetadataSignature:    true,
		RecordDirectory:      recordDirectory,
		SidecarDirectory:     "sidecar",
		SidecarMaxSize:       100,
	}
}

func testNode(t *testing.T) nodeinfo.NodeInfo {
	n, err := nodeinfo.New("0.0.3")
	if nil != err {
		t.Fatalf("node info error: %s", err)
	}
	return n
}

func testSigner(t *testing.T) *signer.Ed25519 {
	s, err := signer.GenerateEd25519()
	if nil != err {
		t.Fatalf("generate key error: %s", err)
	}
	return s
}

func newTestWriter(t *testing.T, fs afero.Fs, options recordfile.Options, s signer.Signer) *recordfile.Writer {
	w, err := recordfile.New(fs, testNode(t), options, s, logger.New("recordfile"))
	if nil != err {
		t.Fatalf("new writer error: %s", err)
	}
	return w
}

func makeItem(i int, sidecars ...recorditem.SidecarRecord) *recorditem.Serialized {
	return recorditem.Serialize(
		[]byte(fmt.Sprintf("transaction %d", i)),
		[]byte(fmt.Sprintf("transaction record %d", i)),
		sidecars,
	)
}

func makeSidecar(kind recordformat.SidecarType, size int) recorditem.SidecarRecord {
	return recorditem.SidecarRecord{
		Type:  kind,
		Bytes: []byte(strings.Repeat("s", size)),
	}
}

// filesystem that fails selected operations
type failingFs struct {
	afero.Fs
	failOpen    func(name string) bool
	failWrite   bool
	failWriteTo func(name string) bool
	failClose   func(name string) bool
}

func (f *failingFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if nil != f.failOpen && f.failOpen(name) {
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrPermission}
	}
	file, err := f.Fs.OpenFile(name, flag, perm)
	if nil != err {
		return nil, err
	}
	return &failingFile{File: file, fs: f}, nil
}

type failingFile struct {
	afero.File
	fs *failingFs
}

func (f *failingFile) Write(p []byte) (int, error) {
	if f.fs.failWrite || (nil != f.fs.failWriteTo && f.fs.failWriteTo(f.Name())) {
		return 0, os.ErrClosed
	}
	return f.File.Write(p)
}

func (f *failingFile) Close() error {
	err := f.File.Close()
	if nil != f.fs.failClose && f.fs.failClose(f.Name()) {
		return &os.PathError{Op: "close", Path: f.Name(), Err: os.ErrInvalid}
	}
	return err
}
