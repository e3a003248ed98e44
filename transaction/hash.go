// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"github.com/mr-tron/base58"

	"github.com/rush-ecs/rush/fault"
)

// HashLength - bytes in a blockhash
const HashLength = 32

// Hash - a ledger blockhash
type Hash [HashLength]byte

// HashFromBase58 - decode the text form
func HashFromBase58(s string) (Hash, error) {
	h := Hash{}
	b, err := base58.Decode(s)
	if nil != err || HashLength != len(b) {
		return h, fault.ErrBlockhashNotFound
	}
	copy(h[:], b)
	return h, nil
}

// String - base58 text form
func (h Hash) String() string {
	return base58.Encode(h[:])
}

// MarshalText - base58 text form for JSON
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText - decode base58 text
func (h *Hash) UnmarshalText(s []byte) error {
	decoded, err := HashFromBase58(string(s))
	if nil != err {
		return err
	}
	*h = decoded
	return nil
}
