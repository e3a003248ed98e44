// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"github.com/mr-tron/base58"

	"github.com/rush-ecs/rush/fault"
)

// SignatureLength - bytes in an ed25519 signature
const SignatureLength = 64

// Signature - an ed25519 signature, also the identifier of the
// transaction it is the first signature of
type Signature [SignatureLength]byte

// SignatureFromBase58 - decode the text form of a signature
func SignatureFromBase58(s string) (Signature, error) {
	signature := Signature{}
	b, err := base58.Decode(s)
	if nil != err || SignatureLength != len(b) {
		return signature, fault.ErrInvalidSignature
	}
	copy(signature[:], b)
	return signature, nil
}

// String - base58 text form
func (signature Signature) String() string {
	return base58.Encode(signature[:])
}

// GoString - for %#v
func (signature Signature) GoString() string {
	return "<signature:" + signature.String() + ">"
}

// MarshalText - base58 text form for JSON
func (signature Signature) MarshalText() ([]byte, error) {
	return []byte(signature.String()), nil
}

// UnmarshalText - decode base58 text
func (signature *Signature) UnmarshalText(s []byte) error {
	decoded, err := SignatureFromBase58(string(s))
	if nil != err {
		return err
	}
	*signature = decoded
	return nil
}
