// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package recorditem

import (
	"github.com/bitmark-inc/recordstream/recorddigest"
)

// RunningHash - accumulates the hash chain over items in consensus order
type RunningHash struct {
	current recorddigest.Digest
	count   uint64
}

// NewRunningHash - start a chain from the previous block's end hash
func NewRunningHash(start recorddigest.Digest) *RunningHash {
	return &RunningHash{
		current: start,
	}
}

// Add - advance the chain with the hashing encoding of one item
func (r *RunningHash) Add(hashable []byte) recorddigest.Digest {
	r.current = NextRunningHash(r.current, hashable)
	r.count += 1
	return r.current
}

// Current - hash after the last added item
func (r *RunningHash) Current() recorddigest.Digest {
	return r.current
}

// Count - number of items added
func (r *RunningHash) Count() uint64 {
	return r.count
}
