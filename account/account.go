// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package account - ledger addresses, signatures and account records
package account

import (
	"bytes"

	"github.com/rush-ecs/rush/codec"
	"github.com/rush-ecs/rush/fault"
)

// MaximumDataIncrease - growth allowed to one account within a single
// instruction
const MaximumDataIncrease = 10240

// Account - the state held at an address
//
// an address that was never written reads as the zero account: no
// lamports, owned by the system program, no data
type Account struct {
	Lamports   uint64
	Owner      Address
	Executable bool
	Data       []byte
}

// Clone - deep copy
func (a *Account) Clone() *Account {
	return &Account{
		Lamports:   a.Lamports,
		Owner:      a.Owner,
		Executable: a.Executable,
		Data:       append([]byte{}, a.Data...),
	}
}

// Equal - same balance, owner and data
func (a *Account) Equal(b *Account) bool {
	return a.Lamports == b.Lamports &&
		a.Owner == b.Owner &&
		a.Executable == b.Executable &&
		bytes.Equal(a.Data, b.Data)
}

// IsEmpty - no lamports and no data
func (a *Account) IsEmpty() bool {
	return 0 == a.Lamports && 0 == len(a.Data)
}

// Pack - storage form of an account
func (a *Account) Pack() codec.Packed {
	p := codec.Packed{}
	p.Uint64(a.Lamports)
	p.Fixed(a.Owner[:])
	p.Bool(a.Executable)
	p.Bytes(a.Data)
	return p
}

// Unpack - decode the storage form
func Unpack(buffer []byte) (*Account, error) {
	r := codec.NewReader(buffer)
	a := &Account{}
	a.Lamports = r.Uint64()
	copy(a.Owner[:], r.Fixed(AddressLength))
	a.Executable = r.Bool()
	a.Data = r.Bytes()
	if err := r.Err(); nil != err {
		return nil, err
	}
	if 0 != r.Remaining() {
		return nil, fault.ErrInvalidAccountData
	}
	if nil == a.Data {
		a.Data = []byte{}
	}
	return a, nil
}

// Info - an account as seen by a program during one instruction
type Info struct {
	Key        Address
	IsSigner   bool
	IsWritable bool
	*Account

	originalLength int
}

// NewInfo - wrap an account for one instruction
func NewInfo(key Address, isSigner bool, isWritable bool, a *Account) *Info {
	return &Info{
		Key:            key,
		IsSigner:       isSigner,
		IsWritable:     isWritable,
		Account:        a,
		originalLength: len(a.Data),
	}
}

// Realloc - resize the data, new bytes are zero
func (i *Info) Realloc(size int) error {
	if size < 0 || size > i.originalLength+MaximumDataIncrease {
		return fault.ErrReallocTooLarge
	}
	if size <= len(i.Data) {
		i.Data = i.Data[:size]
		return nil
	}
	i.Data = append(i.Data, make([]byte, size-len(i.Data))...)
	return nil
}
