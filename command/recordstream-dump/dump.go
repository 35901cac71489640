// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/bitmark-inc/recordstream/recordfile"
	"github.com/bitmark-inc/recordstream/recordformat"
	"github.com/bitmark-inc/recordstream/sidecar"
	"github.com/bitmark-inc/recordstream/signature"
	"github.com/bitmark-inc/recordstream/signer"
)

const passed = "ok"

type dumper struct {
	fs               afero.Fs
	verify           bool
	sidecars         bool
	sidecarDirectory string
	verifier         signer.Verifier
}

type sidecarReport struct {
	ID      int32         `json:"id"`
	File    string        `json:"file"`
	Sidecar *sidecar.File `json:"sidecar,omitempty"`
	Status  string        `json:"status"`
}

type report struct {
	File        string           `json:"file"`
	Record      *recordfile.File `json:"record"`
	RunningHash string           `json:"runningHash,omitempty"`
	Sidecars    []sidecarReport  `json:"sidecarFiles,omitempty"`
	Signature   string           `json:"signature,omitempty"`
}

// ok - false if any requested check did not pass
func (r *report) ok() bool {
	if "" != r.RunningHash && passed != r.RunningHash {
		return false
	}
	if "" != r.Signature && passed != r.Signature {
		return false
	}
	for _, s := range r.Sidecars {
		if passed != s.Status {
			return false
		}
	}
	return true
}

// dump - parse one record file and run the requested checks, only a
// record file that cannot be read is an error
func (d *dumper) dump(fileName string) (*report, error) {
	file, err := recordfile.ReadFile(d.fs, fileName)
	if nil != err {
		return nil, err
	}

	r := &report{
		File:   fileName,
		Record: file,
	}

	if d.verify {
		r.RunningHash = status(recordfile.VerifyRunningHash(file))
	}

	if d.sidecars {
		for _, metadata := range file.Sidecars {
			r.Sidecars = append(r.Sidecars, d.checkSidecar(fileName, metadata))
		}
	}

	if nil != d.verifier {
		r.Signature = status(d.checkSignature(fileName, file))
	}

	return r, nil
}

func (d *dumper) checkSidecar(fileName string, metadata recordformat.SidecarMetadata) sidecarReport {
	s := sidecarReport{
		ID: metadata.ID,
	}

	path, err := sidecarPath(fileName, d.sidecarDirectory, metadata.ID)
	if nil != err {
		s.Status = err.Error()
		return s
	}
	s.File = path

	expected, err := metadata.Hash.Digest()
	if nil != err {
		s.Status = err.Error()
		return s
	}

	s.Sidecar, err = sidecar.Read(d.fs, path)
	if nil != err {
		s.Status = err.Error()
		return s
	}

	if expected != s.Sidecar.FileHash {
		s.Status = "hash mismatch"
		return s
	}
	s.Status = passed
	return s
}

func (d *dumper) checkSignature(fileName string, file *recordfile.File) error {
	sig, err := signature.Read(d.fs, signature.FilePath(fileName))
	if nil != err {
		return err
	}

	var metadata *signature.Metadata
	if nil != sig.MetadataSignature {
		metadata = &signature.Metadata{
			FormatVersion:    file.Version,
			HapiProtoVersion: file.HapiProtoVersion,
			BlockNumber:      file.BlockNumber,
			StartRunningHash: file.StartRunningHash,
			EndRunningHash:   file.EndRunningHash,
		}
	}
	return signature.Verify(sig, file.FileHash, metadata, d.verifier)
}

// sidecarPath - sidecars share the record file's timestamp and
// compression and live in a directory next to it
func sidecarPath(fileName string, directory string, id int32) (string, error) {
	base := filepath.Base(fileName)
	compress := recordformat.IsCompressed(base)
	stem := strings.TrimSuffix(strings.TrimSuffix(base, recordformat.CompressionExtension), recordformat.RecordExtension)

	t, err := recordformat.ParseTimestamp(stem)
	if nil != err {
		return "", err
	}
	name := recordformat.SidecarFileName(t, id, compress)
	return filepath.Join(filepath.Dir(fileName), directory, name), nil
}

func status(err error) string {
	if nil == err {
		return passed
	}
	return err.Error()
}
