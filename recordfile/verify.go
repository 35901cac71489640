// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package recordfile

import (
	"github.com/bitmark-inc/recordstream/fault"
	"github.com/bitmark-inc/recordstream/recorddigest"
	"github.com/bitmark-inc/recordstream/recorditem"
)

// RunningHash - replay the hash chain over the items of a file
func RunningHash(file *File) recorddigest.Digest {
	r := recorditem.NewRunningHash(file.StartRunningHash)
	for _, item := range file.Items {
		r.Add(recorditem.EncodeForHashing(item.Transaction, item.Record))
	}
	return r.Current()
}

// VerifyRunningHash - check the stored end hash against the replayed chain
func VerifyRunningHash(file *File) error {
	if RunningHash(file) != file.EndRunningHash {
		return fault.ErrRunningHashMismatch
	}
	return nil
}
