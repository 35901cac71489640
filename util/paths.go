// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// EnsureAbsolute - ensure the path is absolute
// if not, prepend the directory to make absolute path
func EnsureAbsolute(directory string, filePath string) string {
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(directory, filePath)
	}
	return filepath.Clean(filePath)
}

// EnsureFileExists - check if file exists
func EnsureFileExists(name string) bool {
	_, err := os.Stat(name)
	return nil == err
}

// EnsurePlainName - fail if the name carries any directory component
func EnsurePlainName(name string) error {
	if "" == name {
		return errors.New("empty name")
	}
	switch filepath.Dir(name) {
	case "", ".":
		return nil
	default:
		return errors.Errorf("%q is not plain name", name)
	}
}

// EnsureDirectory - make the directory absolute and create it if missing
func EnsureDirectory(base string, directory string) (string, error) {
	d := EnsureAbsolute(base, directory)
	if err := os.MkdirAll(d, 0700); nil != err {
		return "", errors.Wrapf(err, "create directory: %q", d)
	}
	return d, nil
}
