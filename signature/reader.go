// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package signature

import (
	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/bitmark-inc/recordstream/fault"
	"github.com/bitmark-inc/recordstream/recorddigest"
	"github.com/bitmark-inc/recordstream/recordformat"
	"github.com/bitmark-inc/recordstream/signer"
)

// Read - parse a signature file
func Read(fs afero.Fs, path string) (*recordformat.SignatureFile, error) {
	buffer, err := afero.ReadFile(fs, path)
	if nil != err {
		return nil, err
	}
	if 0 == len(buffer) {
		return nil, fault.ErrTruncatedRecord
	}
	if recordformat.SignatureVersion != buffer[0] {
		return nil, fault.ErrInvalidSignatureVersion
	}

	file, err := recordformat.UnmarshalSignatureFile(buffer[1:])
	if nil != err {
		return nil, errors.Wrapf(err, "parse signature file: %s", path)
	}
	if nil == file.FileSignature {
		return nil, fault.ErrMissingFileSignature
	}
	return &file, nil
}

// Verify - check the signatures against recomputed digests
//
// the metadata signature is only checked when metadata is given
func Verify(file *recordformat.SignatureFile, fileHash recorddigest.Digest, metadata *Metadata, verifier signer.Verifier) error {
	if nil == file.FileSignature {
		return fault.ErrMissingFileSignature
	}
	if err := verifyObject(file.FileSignature, fileHash, verifier); nil != err {
		return err
	}

	if nil == metadata {
		return nil
	}
	if nil == file.MetadataSignature {
		return fault.ErrMissingMetadataSignature
	}
	return verifyObject(file.MetadataSignature, MetadataDigest(*metadata), verifier)
}

func verifyObject(object *recordformat.SignatureObject, expected recorddigest.Digest, verifier signer.Verifier) error {
	digest, err := object.HashObject.Digest()
	if nil != err {
		return err
	}
	if expected != digest {
		return fault.ErrHashMismatch
	}
	if int32(len(object.Signature)) != object.Length || checksumBase-object.Length != object.Checksum {
		return fault.ErrChecksumMismatch
	}
	if !verifier.Verify(digest[:], object.Signature) {
		return fault.ErrInvalidSignature
	}
	return nil
}
