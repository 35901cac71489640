// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package nodeinfo - identity of the node writing the stream
package nodeinfo

import (
	"strings"

	"github.com/bitmark-inc/recordstream/fault"
)

// NodeInfo - supplies the token naming the node's record directory
type NodeInfo interface {
	AccountMemo() string
}

// Static - fixed account memo taken from configuration
type Static struct {
	memo string
}

// New - check that the memo is usable as part of a directory name
func New(accountMemo string) (*Static, error) {
	if "" == accountMemo || strings.ContainsAny(accountMemo, `/\`) || ".." == accountMemo {
		return nil, fault.ErrInvalidNodeAccount
	}
	return &Static{memo: accountMemo}, nil
}

// AccountMemo - the node's account memo, e.g. "0.0.3"
func (s *Static) AccountMemo() string {
	return s.memo
}
