// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package recorddigest

import (
	"crypto"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"

	"github.com/bitmark-inc/recordstream/fault"
)

// Length - number of bytes in the digest
const Length = sha512.Size384

// Digest - type for a SHA-384 digest
//
// stored and printed in the byte order produced by the hash
type Digest [Length]byte

// Available - check that the SHA-384 implementation is linked in
func Available() bool {
	return crypto.SHA384.Available()
}

// New - create a hash.Hash that produces a Digest
func New() hash.Hash {
	return sha512.New384()
}

// NewDigest - create a digest from a byte slice
func NewDigest(record []byte) Digest {
	return Digest(sha512.Sum384(record))
}

// Sum - finalise a hash created by New into a digest
func Sum(h hash.Hash) Digest {
	var digest Digest
	copy(digest[:], h.Sum(nil))
	return digest
}

// IsZero - true if every byte is zero
func (digest Digest) IsZero() bool {
	return digest == Digest{}
}

// Bytes - a copy of the digest as a slice
func (digest Digest) Bytes() []byte {
	b := make([]byte, Length)
	copy(b, digest[:])
	return b
}

// convert a binary digest to hex string for use by the fmt package (for %s)
func (digest Digest) String() string {
	return hex.EncodeToString(digest[:])
}

// convert a binary digest to hex string for use by the fmt package (for %#v)
func (digest Digest) GoString() string {
	return "<SHA-384:" + hex.EncodeToString(digest[:]) + ">"
}

// convert a hex representation to a digest for use by the format package scan routines
func (digest *Digest) Scan(state fmt.ScanState, verb rune) error {
	token, err := state.Token(true, func(c rune) bool {
		if c >= '0' && c <= '9' {
			return true
		}
		if c >= 'A' && c <= 'F' {
			return true
		}
		if c >= 'a' && c <= 'f' {
			return true
		}
		return false
	})
	if nil != err {
		return err
	}
	return digest.UnmarshalText(token)
}

// MarshalText - convert digest to hex text
func (digest Digest) MarshalText() ([]byte, error) {
	size := hex.EncodedLen(len(digest))
	buffer := make([]byte, size)
	hex.Encode(buffer, digest[:])
	return buffer, nil
}

// UnmarshalText - convert hex text into a digest
func (digest *Digest) UnmarshalText(s []byte) error {
	buffer := make([]byte, hex.DecodedLen(len(s)))
	byteCount, err := hex.Decode(buffer, s)
	if nil != err {
		return err
	}
	return DigestFromBytes(digest, buffer[:byteCount])
}

// DigestFromBytes - convert and validate a binary byte slice to a digest
func DigestFromBytes(digest *Digest, buffer []byte) error {
	if Length != len(buffer) {
		return fault.ErrInvalidHashLength
	}
	copy(digest[:], buffer)
	return nil
}
