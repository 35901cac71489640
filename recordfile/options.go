// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package recordfile

import (
	"github.com/bitmark-inc/recordstream/fault"
	"github.com/bitmark-inc/recordstream/recordformat"
)

// Options - per block settings taken from the configuration
type Options struct {
	FormatVersion        int32
	SignatureFileVersion int32
	Compress             bool
	MetadataSignature    bool
	RecordDirectory      string
	SidecarDirectory     string
	SidecarMaxSize       int64
}

// Validate - reject settings this writer cannot produce
func (o Options) Validate() error {
	if recordformat.Version != o.FormatVersion {
		return fault.ErrInvalidFormatVersion
	}
	if recordformat.SignatureVersion != o.SignatureFileVersion {
		return fault.ErrInvalidSignatureVersion
	}
	if "" == o.RecordDirectory {
		return fault.ErrInvalidDirectory
	}
	if o.SidecarMaxSize <= 0 {
		return fault.ErrInvalidSidecarSize
	}
	return nil
}
