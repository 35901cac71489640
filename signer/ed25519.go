// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package signer

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"io/ioutil"

	"github.com/pkg/errors"
	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/recordstream/fault"
)

// Ed25519 - signer holding a node private key
type Ed25519 struct {
	privateKey ed25519.PrivateKey
}

// Ed25519Verifier - verifier holding a node public key
type Ed25519Verifier struct {
	publicKey ed25519.PublicKey
}

// RawKeyPair - text form of a key pair as stored in a key file
type RawKeyPair struct {
	PublicKey  string `json:"public_key"`
	PrivateKey string `json:"private_key"`
}

// GenerateEd25519 - new random key pair
func GenerateEd25519() (*Ed25519, error) {
	_, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if nil != err {
		return nil, err
	}
	return &Ed25519{privateKey: privateKey}, nil
}

// NewEd25519 - signer from a 64 byte private key
func NewEd25519(privateKey []byte) (*Ed25519, error) {
	if ed25519.PrivateKeySize != len(privateKey) {
		return nil, fault.ErrInvalidKeyLength
	}
	k := make(ed25519.PrivateKey, ed25519.PrivateKeySize)
	copy(k, privateKey)
	return &Ed25519{privateKey: k}, nil
}

// LoadEd25519 - read a JSON key file with hex encoded keys
//
// the public key, if present, must match the private key
func LoadEd25519(fileName string) (*Ed25519, error) {
	data, err := ioutil.ReadFile(fileName)
	if nil != err {
		return nil, err
	}

	var raw RawKeyPair
	if err := json.Unmarshal(data, &raw); nil != err {
		return nil, errors.Wrapf(err, "key file: %s", fileName)
	}

	privateKey, err := hex.DecodeString(raw.PrivateKey)
	if nil != err {
		return nil, errors.Wrapf(err, "private key: %s", fileName)
	}
	s, err := NewEd25519(privateKey)
	if nil != err {
		return nil, err
	}

	if "" != raw.PublicKey && hex.EncodeToString(s.PublicKey()) != raw.PublicKey {
		return nil, fault.ErrKeyPairMismatch
	}
	return s, nil
}

// Raw - text form for writing a key file
func (s *Ed25519) Raw() RawKeyPair {
	return RawKeyPair{
		PublicKey:  hex.EncodeToString(s.PublicKey()),
		PrivateKey: hex.EncodeToString(s.privateKey),
	}
}

// Sign - detached Ed25519 signature
func (s *Ed25519) Sign(data []byte) ([]byte, error) {
	return ed25519.Sign(s.privateKey, data), nil
}

// PublicKey - copy of the public half
func (s *Ed25519) PublicKey() []byte {
	publicKey := s.privateKey.Public().(ed25519.PublicKey)
	b := make([]byte, len(publicKey))
	copy(b, publicKey)
	return b
}

// Verifier - verifier for this key
func (s *Ed25519) Verifier() *Ed25519Verifier {
	return &Ed25519Verifier{publicKey: s.PublicKey()}
}

// NewEd25519Verifier - verifier from a 32 byte public key
func NewEd25519Verifier(publicKey []byte) (*Ed25519Verifier, error) {
	if ed25519.PublicKeySize != len(publicKey) {
		return nil, fault.ErrInvalidKeyLength
	}
	k := make(ed25519.PublicKey, ed25519.PublicKeySize)
	copy(k, publicKey)
	return &Ed25519Verifier{publicKey: k}, nil
}

// NewEd25519VerifierFromHex - verifier from a hex public key
func NewEd25519VerifierFromHex(publicKey string) (*Ed25519Verifier, error) {
	k, err := hex.DecodeString(publicKey)
	if nil != err {
		return nil, err
	}
	return NewEd25519Verifier(k)
}

// Verify - check an Ed25519 signature
func (v *Ed25519Verifier) Verify(data []byte, signature []byte) bool {
	if ed25519.SignatureSize != len(signature) {
		return false
	}
	return ed25519.Verify(v.publicKey, data, signature)
}
