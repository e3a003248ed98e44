// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package program - the store program: world and instance records
// owned by the program and mutated only by their authorities
package program

import (
	"github.com/rush-ecs/rush/account"
	"github.com/rush-ecs/rush/fault"
	"github.com/rush-ecs/rush/instruction"
)

// Context - services the ledger runtime provides to a running program
type Context interface {
	Rent() account.Rent

	// CreateAccount - fund, allocate and assign an empty account at a
	// derived address; the seeds (bump included) must derive target
	// under owner
	CreateAccount(payer *account.Info, target *account.Info, lamports uint64, space uint64, owner account.Address, seeds [][]byte) error

	// Transfer - move lamports out of a system owned signer
	Transfer(from *account.Info, to *account.Info, lamports uint64) error
}

// Process - run one store instruction
func Process(ctx Context, programID account.Address, accounts []*account.Info, data []byte) error {
	payload, err := instruction.UnpackPayload(data)
	if nil != err {
		return err
	}

	switch p := payload.(type) {
	case instruction.CreateWorld:
		return createWorld(ctx, programID, accounts, p)
	case instruction.UpdateWorld:
		return updateWorld(ctx, programID, accounts, p)
	case instruction.DeleteWorld:
		return deleteWorld(programID, accounts)
	case instruction.SpawnEntity:
		return spawnEntity(ctx, programID, accounts, p)
	case instruction.UpdateEntity:
		return updateEntity(ctx, programID, accounts, p)
	case instruction.DespawnEntity:
		return despawnEntity(programID, accounts)
	default:
		return fault.ErrInvalidInstruction
	}
}
