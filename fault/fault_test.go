// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"os"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/recordstream/fault"
)

type class int

const (
	none class = iota
	exists
	invalid
	length
	notFound
	process
	record
)

// each error must belong to exactly one class, also when wrapped
func TestClasses(t *testing.T) {
	errorList := []struct {
		err   error
		class class
	}{
		{fault.ErrSignatureFileExists, exists},
		{fault.ErrInvalidFormatVersion, invalid},
		{fault.ErrBlockNumberNotIncreasing, invalid},
		{fault.ErrInvalidHashLength, length},
		{fault.ErrInvalidKeyLength, length},
		{fault.ErrNotFoundConfigFile, notFound},
		{fault.ErrAlreadyClosed, process},
		{fault.ErrNotInitialised, process},
		{fault.ErrTruncatedRecord, record},
		{fault.ErrRunningHashMismatch, record},
		{errors.Wrap(fault.ErrSignatureFileExists, "create"), exists},
		{errors.Wrapf(fault.ErrTruncatedRecord, "file: %s", "x.rcd"), record},
		{errors.WithMessage(errors.Wrap(fault.ErrAlreadyClosed, "inner"), "outer"), process},
		{errors.New("plain"), none},
		{os.ErrExist, none},
	}

	for i, e := range errorList {
		assert.Equal(t, exists == e.class, fault.IsErrExists(e.err), "%d: exists: %v", i, e.err)
		assert.Equal(t, invalid == e.class, fault.IsErrInvalid(e.err), "%d: invalid: %v", i, e.err)
		assert.Equal(t, length == e.class, fault.IsErrLength(e.err), "%d: length: %v", i, e.err)
		assert.Equal(t, notFound == e.class, fault.IsErrNotFound(e.err), "%d: not found: %v", i, e.err)
		assert.Equal(t, process == e.class, fault.IsErrProcess(e.err), "%d: process: %v", i, e.err)
		assert.Equal(t, record == e.class, fault.IsErrRecord(e.err), "%d: record: %v", i, e.err)
	}
}

func TestErrorText(t *testing.T) {
	err := errors.Wrapf(fault.ErrInvalidSidecarSize, "sidecar: %d", 3)
	assert.Equal(t, "sidecar: 3: sidecar maximum size must be positive", err.Error(), "wrong wrapped text")
	assert.Equal(t, fault.ErrInvalidSidecarSize, errors.Cause(err), "wrong cause")
}
