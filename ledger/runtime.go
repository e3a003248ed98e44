// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/rush-ecs/rush/account"
	"github.com/rush-ecs/rush/fault"
	"github.com/rush-ecs/rush/pda"
)

// runtime - services for the program of one instruction
//
// calls into the system program on behalf of the running program are
// applied to the pre-instruction snapshot as well, so the ownership
// checks after the instruction only see what the program did itself
type runtime struct {
	rent      account.Rent
	programID account.Address
	pre       map[account.Address]*account.Account
}

func (rt *runtime) Rent() account.Rent {
	return rt.rent
}

func (rt *runtime) CreateAccount(payer *account.Info, target *account.Info, lamports uint64, space uint64, owner account.Address, seeds [][]byte) error {
	if !payer.IsSigner {
		return fault.ErrMissingRequiredSignature
	}
	if !payer.IsWritable || !target.IsWritable {
		return fault.ErrAccountNotWritable
	}
	if payer.Owner != account.SystemProgram {
		return fault.ErrInvalidAccountOwner
	}

	address, err := pda.Create(seeds, rt.programID)
	if nil != err || address != target.Key {
		return fault.ErrAddressMismatch
	}

	if 0 != target.Lamports || 0 != len(target.Data) || target.Owner != account.SystemProgram {
		return fault.ErrAccountAlreadyInitialised
	}
	if space > MaximumAccountLength {
		return fault.ErrReallocTooLarge
	}
	if payer.Lamports < lamports {
		return fault.ErrInsufficientFunds
	}

	payer.Lamports -= lamports
	target.Lamports += lamports
	target.Owner = owner
	target.Data = make([]byte, space)

	if p, ok := rt.pre[payer.Key]; ok {
		p.Lamports -= lamports
	}
	if p, ok := rt.pre[target.Key]; ok {
		p.Lamports += lamports
		p.Owner = owner
		p.Data = make([]byte, space)
	}
	return nil
}

func (rt *runtime) Transfer(from *account.Info, to *account.Info, lamports uint64) error {
	if !from.IsSigner {
		return fault.ErrMissingRequiredSignature
	}
	if !from.IsWritable || !to.IsWritable {
		return fault.ErrAccountNotWritable
	}
	if from.Owner != account.SystemProgram {
		return fault.ErrInvalidAccountOwner
	}
	if from.Lamports < lamports {
		return fault.ErrInsufficientFunds
	}

	from.Lamports -= lamports
	to.Lamports += lamports

	if p, ok := rt.pre[from.Key]; ok {
		p.Lamports -= lamports
	}
	if p, ok := rt.pre[to.Key]; ok {
		p.Lamports += lamports
	}
	return nil
}
