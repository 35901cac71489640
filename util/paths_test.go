// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/recordstream/util"
)

func TestEnsureAbsolute(t *testing.T) {
	assert.Equal(t, "/data/records", util.EnsureAbsolute("/data", "records"), "relative")
	assert.Equal(t, "/var/records", util.EnsureAbsolute("/data", "/var/records"), "absolute")
	assert.Equal(t, "/data/records", util.EnsureAbsolute("/data", "./x/../records"), "cleaned")
}

func TestEnsurePlainName(t *testing.T) {
	assert.Nil(t, util.EnsurePlainName("sidecar"), "plain")
	assert.NotNil(t, util.EnsurePlainName(""), "empty")
	assert.NotNil(t, util.EnsurePlainName("a/sidecar"), "nested")
	assert.NotNil(t, util.EnsurePlainName("/sidecar"), "absolute")
}

func TestEnsureDirectory(t *testing.T) {
	base, err := os.MkdirTemp("", "paths")
	assert.Nil(t, err, "temp dir")
	defer os.RemoveAll(base)

	d, err := util.EnsureDirectory(base, "a/b")
	assert.Nil(t, err, "wrong ensure directory")
	assert.Equal(t, filepath.Join(base, "a", "b"), d, "wrong directory")
	assert.True(t, util.EnsureFileExists(d), "directory not created")

	// existing is fine
	_, err = util.EnsureDirectory(base, "a/b")
	assert.Nil(t, err, "existing directory")
}
