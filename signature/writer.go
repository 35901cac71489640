// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package signature

import (
	"os"

	"github.com/bitmark-inc/logger"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/multierr"

	"github.com/bitmark-inc/recordstream/fault"
	"github.com/bitmark-inc/recordstream/recorddigest"
	"github.com/bitmark-inc/recordstream/recordformat"
	"github.com/bitmark-inc/recordstream/signer"
)

// checksum field is this constant minus the signature length
const checksumBase = 101

// FilePath - signature file name for a record file
func FilePath(recordFilePath string) string {
	return recordformat.SignatureFilePath(recordFilePath)
}

// WriteFile - sign a closed record file and write its signature file
//
// an existing signature file is left untouched and nil is returned
func WriteFile(fs afero.Fs, log *logger.L, recordFilePath string, fileHash recorddigest.Digest, s signer.Signer, includeMetadata bool, metadata Metadata) error {
	if nil == log {
		return fault.ErrInvalidLoggerChannel
	}
	if nil == s {
		return fault.ErrMissingSigner
	}

	path := FilePath(recordFilePath)

	fileSignature, err := sign(s, fileHash)
	if nil != err {
		return errors.Wrapf(err, "sign file hash: %s", path)
	}
	content := recordformat.SignatureFile{
		FileSignature: fileSignature,
	}

	if includeMetadata {
		content.MetadataSignature, err = sign(s, MetadataDigest(metadata))
		if nil != err {
			return errors.Wrapf(err, "sign metadata: %s", path)
		}
	}

	err = create(fs, path, content)
	if fault.IsErrExists(err) {
		log.Debugf("signature file: %q already exists", path)
		return nil
	}
	if nil != err {
		return errors.Wrapf(err, "write signature file: %s", path)
	}

	log.Debugf("signature file: %q written  metadata: %t", path, includeMetadata)
	return nil
}

// one signature over one digest
func sign(s signer.Signer, digest recorddigest.Digest) (*recordformat.SignatureObject, error) {
	signature, err := s.Sign(digest[:])
	if nil != err {
		return nil, err
	}
	length := int32(len(signature))
	return &recordformat.SignatureObject{
		Type:       recordformat.SignatureTypeSHA384WithRSA,
		Length:     length,
		Checksum:   checksumBase - length,
		Signature:  signature,
		HashObject: recordformat.NewHashObject(digest),
	}, nil
}

// exclusive create, the version byte then the message
func create(fs afero.Fs, path string, content recordformat.SignatureFile) (err error) {
	file, err := fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if os.IsExist(err) {
		return fault.ErrSignatureFileExists
	}
	if nil != err {
		return err
	}
	defer func() {
		err = multierr.Append(err, file.Close())
	}()

	buffer := make([]byte, 0, 1024)
	buffer = append(buffer, byte(recordformat.SignatureVersion))
	buffer = append(buffer, content.Marshal()...)

	if _, err := file.Write(buffer); nil != err {
		return err
	}
	return file.Sync()
}
