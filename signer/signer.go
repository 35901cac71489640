// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package signer

//go:generate mockgen -package=mocks -destination=mocks/signer.go -source=signer.go

// Signer - produce a signature over a digest
type Signer interface {
	Sign(data []byte) ([]byte, error)
}

// Verifier - check a signature produced by the matching Signer
type Verifier interface {
	Verify(data []byte, signature []byte) bool
}
