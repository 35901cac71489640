// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package recordformat

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// consensus times in file names use '_' in place of ':'
const timestampLayout = "2006-01-02T15_04_05.000000000Z"

// PaddedTimestamp - UTC consensus time with fixed nanosecond width
func PaddedTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// ParseTimestamp - inverse of PaddedTimestamp
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(timestampLayout, s)
}

func extension(compress bool) string {
	if compress {
		return RecordExtension + CompressionExtension
	}
	return RecordExtension
}

// RecordFileName - base name of the record file for a block
func RecordFileName(startConsensusTime time.Time, compress bool) string {
	return PaddedTimestamp(startConsensusTime) + extension(compress)
}

// SidecarFileName - base name of a sidecar file, id is two digits
func SidecarFileName(startConsensusTime time.Time, id int32, compress bool) string {
	return fmt.Sprintf("%s_%02d%s", PaddedTimestamp(startConsensusTime), id, extension(compress))
}

// NodeDirectory - node scoped directory below the record directory
func NodeDirectory(recordDirectory string, accountMemo string) string {
	return filepath.Join(recordDirectory, NodeDirectoryPrefix+accountMemo)
}

// SignatureFilePath - record file path without compression suffix plus "_sig"
func SignatureFilePath(recordFilePath string) string {
	return strings.TrimSuffix(recordFilePath, CompressionExtension) + SignatureSuffix
}

// IsCompressed - true if the file name carries the compression suffix
func IsCompressed(path string) bool {
	return strings.HasSuffix(path, CompressionExtension)
}
