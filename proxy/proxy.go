// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package proxy - user records that tie a signing key to a world under
// a client chosen salt
package proxy

import (
	"github.com/rush-ecs/rush/account"
	"github.com/rush-ecs/rush/codec"
	"github.com/rush-ecs/rush/fault"
	"github.com/rush-ecs/rush/instruction"
	"github.com/rush-ecs/rush/pda"
	"github.com/rush-ecs/rush/program"
	"github.com/rush-ecs/rush/state"
)

// payload tags
const (
	RegisterTag   = 0
	DeregisterTag = 1
)

// Register - create the user record of the signer
type Register struct {
	Salt string
	Bump uint8
}

// Deregister - drain and clear a user record
type Deregister struct{}

// NewRegister - accounts:
//  0. user authority, signer and payer
//  1. user record
//  2. world record
//  3. system program
func NewRegister(programID account.Address, userAuthority account.Address, user account.Address, world account.Address, salt string, bump uint8) instruction.Instruction {
	p := codec.Packed{RegisterTag}
	p.String(salt)
	p.Byte(bump)
	return instruction.Instruction{
		ProgramID: programID,
		Accounts: []instruction.Meta{
			instruction.Signer(userAuthority),
			instruction.Writable(user),
			instruction.Readonly(world),
			instruction.Readonly(account.SystemProgram),
		},
		Data: p,
	}
}

// NewDeregister - accounts:
//  0. user authority, signer, receives the lamports
//  1. user record
func NewDeregister(programID account.Address, userAuthority account.Address, user account.Address) instruction.Instruction {
	return instruction.Instruction{
		ProgramID: programID,
		Accounts: []instruction.Meta{
			instruction.Signer(userAuthority),
			instruction.Writable(user),
		},
		Data: []byte{DeregisterTag},
	}
}

// Process - run one proxy instruction
func Process(ctx program.Context, programID account.Address, accounts []*account.Info, data []byte) error {
	if 0 == len(data) {
		return fault.ErrInvalidInstruction
	}

	switch data[0] {
	case RegisterTag:
		r := codec.NewReader(data[1:])
		p := Register{
			Salt: r.String(),
			Bump: r.Byte(),
		}
		if nil != r.Err() || 0 != r.Remaining() {
			return fault.ErrInvalidInstruction
		}
		return register(ctx, programID, accounts, p)

	case DeregisterTag:
		if 1 != len(data) {
			return fault.ErrInvalidInstruction
		}
		return deregister(programID, accounts)

	default:
		return fault.ErrInvalidInstruction
	}
}

func register(ctx program.Context, programID account.Address, accounts []*account.Info, p Register) error {
	if err := program.CheckAccounts(accounts, 4); nil != err {
		return err
	}
	authority := accounts[0]
	record := accounts[1]
	world := accounts[2]

	if err := program.CheckSigner(authority); nil != err {
		return err
	}
	if !state.IsInitialised(world.Data, state.WorldDiscriminator) {
		return fault.ErrWorldNotFound
	}

	seeds := pda.WithBump(pda.UserSeeds(world.Key, authority.Key, p.Salt), p.Bump)
	address, err := pda.Create(seeds, programID)
	if nil != err || address != record.Key {
		return fault.ErrAddressMismatch
	}
	if state.IsInitialised(record.Data, state.UserDiscriminator) {
		return fault.ErrAccountAlreadyInitialised
	}

	u := &state.User{
		UserAuthority: authority.Key,
		Bump:          p.Bump,
	}
	lamports := ctx.Rent().MinimumBalance(state.UserSize)
	err = ctx.CreateAccount(authority, record, lamports, state.UserSize, programID, seeds)
	if nil != err {
		return err
	}
	copy(record.Data, u.Pack())
	return nil
}

func deregister(programID account.Address, accounts []*account.Info) error {
	if err := program.CheckAccounts(accounts, 2); nil != err {
		return err
	}
	authority := accounts[0]
	record := accounts[1]

	if err := program.CheckSigner(authority); nil != err {
		return err
	}
	if err := program.CheckOwned(record, programID); nil != err {
		return err
	}
	u, err := state.UnpackUser(record.Data)
	if nil != err {
		return err
	}
	if u.UserAuthority != authority.Key {
		return fault.ErrUnauthorised
	}
	return program.Close(record, authority)
}
