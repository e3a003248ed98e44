// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package instruction - operation descriptors for ledger programs and
// the payloads of the store program
package instruction

import (
	"github.com/rush-ecs/rush/account"
	"github.com/rush-ecs/rush/codec"
)

// Meta - an account taking part in an instruction and its role
type Meta struct {
	Address    account.Address `json:"address"`
	IsSigner   bool            `json:"is_signer"`
	IsWritable bool            `json:"is_writable"`
}

// Instruction - one call to a program
type Instruction struct {
	ProgramID account.Address `json:"program_id"`
	Accounts  []Meta          `json:"accounts"`
	Data      []byte          `json:"data"`
}

// Signer - writable signing account
func Signer(a account.Address) Meta {
	return Meta{Address: a, IsSigner: true, IsWritable: true}
}

// ReadonlySigner - signing account that is not modified
func ReadonlySigner(a account.Address) Meta {
	return Meta{Address: a, IsSigner: true}
}

// Writable - account modified by the instruction
func Writable(a account.Address) Meta {
	return Meta{Address: a, IsWritable: true}
}

// Readonly - account only read by the instruction
func Readonly(a account.Address) Meta {
	return Meta{Address: a}
}

// Pack - append the binary form of the instruction
func (ix *Instruction) Pack(p *codec.Packed) {
	p.Fixed(ix.ProgramID[:])
	p.Varint(uint64(len(ix.Accounts)))
	for _, m := range ix.Accounts {
		p.Fixed(m.Address[:])
		flags := byte(0)
		if m.IsSigner {
			flags |= 0x01
		}
		if m.IsWritable {
			flags |= 0x02
		}
		p.Byte(flags)
	}
	p.Bytes(ix.Data)
}

// UnpackInstruction - read an instruction written by Pack
func UnpackInstruction(r *codec.Reader) Instruction {
	ix := Instruction{}
	copy(ix.ProgramID[:], r.Fixed(account.AddressLength))
	count := r.Count(codec.MaximumCount)
	ix.Accounts = make([]Meta, 0, count)
	for i := 0; i < count && nil == r.Err(); i += 1 {
		m := Meta{}
		copy(m.Address[:], r.Fixed(account.AddressLength))
		flags := r.Byte()
		m.IsSigner = 0 != flags&0x01
		m.IsWritable = 0 != flags&0x02
		ix.Accounts = append(ix.Accounts, m)
	}
	ix.Data = r.Bytes()
	return ix
}
