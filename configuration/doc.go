// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - Lua configuration for the record stream writer
//
// the configuration file is a Lua script returning a table; most of
// base Lua is available so items may be computed, read from files or
// taken from the environment with os.getenv.  The table is mapped
// onto Configuration and then checked and expanded by Load.
//
// A Watcher reloads the file when it changes so that the next block
// opened picks up the new settings.
package configuration
