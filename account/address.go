// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"

	"github.com/rush-ecs/rush/fault"
)

// AddressLength - bytes in an address
const AddressLength = 32

// Address - a ledger address, either an ed25519 public key or a
// program derived address
type Address [AddressLength]byte

// SystemProgram - address of the builtin system program
var SystemProgram = Address{}

// AddressFromBytes - copy a 32 byte slice into an address
func AddressFromBytes(b []byte) (Address, error) {
	a := Address{}
	if AddressLength != len(b) {
		return a, fault.ErrInvalidAddress
	}
	copy(a[:], b)
	return a, nil
}

// AddressFromBase58 - decode the text form of an address
func AddressFromBase58(s string) (Address, error) {
	b, err := base58.Decode(s)
	if nil != err {
		return Address{}, fault.ErrInvalidAddress
	}
	return AddressFromBytes(b)
}

// MustAddressFromBase58 - decode a constant address, panics on error
func MustAddressFromBase58(s string) Address {
	a, err := AddressFromBase58(s)
	if nil != err {
		panic("invalid address constant: " + s)
	}
	return a
}

// Bytes - the address as a byte slice
func (a Address) Bytes() []byte {
	return a[:]
}

// IsZero - true for the all-zero address
func (a Address) IsZero() bool {
	return a == Address{}
}

// Less - byte order comparison
func (a Address) Less(b Address) bool {
	return bytes.Compare(a[:], b[:]) < 0
}

// String - base58 text form
func (a Address) String() string {
	return base58.Encode(a[:])
}

// GoString - for %#v
func (a Address) GoString() string {
	return "<address:" + a.String() + ">"
}

// MarshalText - base58 text form for JSON
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText - decode base58 text
func (a *Address) UnmarshalText(s []byte) error {
	decoded, err := AddressFromBase58(string(s))
	if nil != err {
		return err
	}
	*a = decoded
	return nil
}

// CheckSignature - verify an ed25519 signature made by the address's key
func (a Address) CheckSignature(message []byte, signature Signature) error {
	if !ed25519.Verify(ed25519.PublicKey(a[:]), message, signature[:]) {
		return fault.ErrInvalidSignature
	}
	return nil
}
