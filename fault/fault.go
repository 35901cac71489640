// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"github.com/pkg/errors"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RecordError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyClosed            = ProcessError("already closed")
	ErrAlreadyInitialised       = ProcessError("already initialised")
	ErrBlockNumberNotIncreasing = InvalidError("block number is not increasing")
	ErrChecksumMismatch         = RecordError("signature checksum mismatch")
	ErrDigestUnavailable        = ProcessError("SHA-384 digest is unavailable")
	ErrHashAlgorithmMismatch    = RecordError("hash algorithm mismatch")
	ErrHashMismatch             = RecordError("hash mismatch")
	ErrIndexVersionMismatch     = InvalidError("record index version mismatch")
	ErrInvalidBlockNumber       = InvalidError("block number is negative")
	ErrInvalidDirectory         = InvalidError("directory is invalid")
	ErrInvalidFieldTag          = RecordError("invalid protobuf field tag")
	ErrInvalidFormatVersion     = InvalidError("record format version is not supported")
	ErrInvalidHashLength        = LengthError("hash length is invalid")
	ErrInvalidItem              = InvalidError("record item is missing")
	ErrInvalidKeyLength         = LengthError("key length is invalid")
	ErrInvalidLoggerChannel     = InvalidError("invalid logger channel")
	ErrInvalidNodeAccount       = InvalidError("node account memo is empty")
	ErrInvalidSidecarID         = InvalidError("sidecar id must be positive")
	ErrInvalidSidecarSize       = InvalidError("sidecar maximum size must be positive")
	ErrInvalidSidecarType       = InvalidError("sidecar type is invalid")
	ErrInvalidSignature         = RecordError("invalid signature")
	ErrInvalidSignatureVersion  = InvalidError("signature file version is not supported")
	ErrInvalidStructPointer     = InvalidError("invalid struct pointer")
	ErrKeyPairMismatch          = InvalidError("public key does not match private key")
	ErrMissingFileSignature     = RecordError("signature file has no file signature")
	ErrMissingIndex             = InvalidError("record index is required")
	ErrMissingMetadataSignature = RecordError("signature file has no metadata signature")
	ErrMissingSigner            = InvalidError("signer is required")
	ErrNotFoundConfigFile       = NotFoundError("configuration file is not found")
	ErrNotInitialised           = ProcessError("not initialised")
	ErrNotOpen                  = ProcessError("not open")
	ErrReadOnlyIndex            = ProcessError("record index is read only")
	ErrRunningHashMismatch      = RecordError("running hash mismatch")
	ErrSidecarClosed            = ProcessError("sidecar file is closed")
	ErrSignatureFileExists      = ExistsError("signature file already exists")
	ErrTruncatedRecord          = RecordError("record is truncated")
	ErrUnexpectedWireType       = RecordError("unexpected protobuf wire type")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RecordError) Error() string   { return string(e) }

// determine the class of an error
//
// wrapped errors are unwrapped to their cause first
func IsErrExists(e error) bool   { _, ok := errors.Cause(e).(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := errors.Cause(e).(InvalidError); return ok }
func IsErrLength(e error) bool   { _, ok := errors.Cause(e).(LengthError); return ok }
func IsErrNotFound(e error) bool { _, ok := errors.Cause(e).(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := errors.Cause(e).(ProcessError); return ok }
func IsErrRecord(e error) bool   { _, ok := errors.Cause(e).(RecordError); return ok }
