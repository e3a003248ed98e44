// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/rush-ecs/rush/account"
	"github.com/rush-ecs/rush/codec"
	"github.com/rush-ecs/rush/fault"
	"github.com/rush-ecs/rush/instruction"
	"github.com/rush-ecs/rush/program"
)

// system program instructions
const (
	systemTransferTag = 2
)

// NewTransfer - move lamports between two accounts:
//  0. source, signer
//  1. destination
func NewTransfer(from account.Address, to account.Address, lamports uint64) instruction.Instruction {
	p := codec.Packed{systemTransferTag}
	p.Uint64(lamports)
	return instruction.Instruction{
		ProgramID: account.SystemProgram,
		Accounts: []instruction.Meta{
			instruction.Signer(from),
			instruction.Writable(to),
		},
		Data: p,
	}
}

func processSystem(ctx program.Context, programID account.Address, accounts []*account.Info, data []byte) error {
	if 0 == len(data) {
		return fault.ErrInvalidInstruction
	}

	switch data[0] {
	case systemTransferTag:
		r := codec.NewReader(data[1:])
		lamports := r.Uint64()
		if nil != r.Err() || 0 != r.Remaining() {
			return fault.ErrInvalidInstruction
		}
		if err := program.CheckAccounts(accounts, 2); nil != err {
			return err
		}
		return ctx.Transfer(accounts[0], accounts[1], lamports)

	default:
		return fault.ErrInvalidInstruction
	}
}
