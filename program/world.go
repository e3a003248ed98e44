// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package program

import (
	"github.com/rush-ecs/rush/account"
	"github.com/rush-ecs/rush/fault"
	"github.com/rush-ecs/rush/instruction"
	"github.com/rush-ecs/rush/pda"
	"github.com/rush-ecs/rush/state"
)

// accounts: authority, world, system
func createWorld(ctx Context, programID account.Address, accounts []*account.Info, p instruction.CreateWorld) error {
	if err := CheckAccounts(accounts, 3); nil != err {
		return err
	}
	authority := accounts[0]
	record := accounts[1]

	if err := CheckSigner(authority); nil != err {
		return err
	}

	seeds := pda.WithBump(pda.WorldSeeds(p.Name, p.Description), p.Bump)
	address, err := pda.Create(seeds, programID)
	if nil != err || address != record.Key {
		return fault.ErrAddressMismatch
	}

	if state.IsInitialised(record.Data, state.WorldDiscriminator) {
		return fault.ErrAccountAlreadyInitialised
	}

	w := state.NewWorld(p.Name, p.Description, p.Regions, p.Entities, authority.Key, p.Bump, true)
	packed := w.Pack()
	lamports := ctx.Rent().MinimumBalance(len(packed))

	err = ctx.CreateAccount(authority, record, lamports, uint64(len(packed)), programID, seeds)
	if nil != err {
		return err
	}
	copy(record.Data, packed)
	return nil
}

// accounts: authority, world, system
func updateWorld(ctx Context, programID account.Address, accounts []*account.Info, p instruction.UpdateWorld) error {
	if err := CheckAccounts(accounts, 3); nil != err {
		return err
	}
	authority := accounts[0]
	record := accounts[1]

	w, err := loadWorld(programID, authority, record)
	if nil != err {
		return err
	}

	w.Regions = append([]string{}, p.Regions...)
	w.Entities = append([]string{}, p.Entities...)
	w.Preload()

	return Write(ctx, authority, record, w.Pack())
}

// accounts: authority, world
func deleteWorld(programID account.Address, accounts []*account.Info) error {
	if err := CheckAccounts(accounts, 2); nil != err {
		return err
	}
	authority := accounts[0]
	record := accounts[1]

	_, err := loadWorld(programID, authority, record)
	if nil != err {
		return err
	}
	return Close(record, authority)
}

// a world record that authority may change
func loadWorld(programID account.Address, authority *account.Info, record *account.Info) (*state.World, error) {
	if err := CheckSigner(authority); nil != err {
		return nil, err
	}
	if Absent(record) {
		return nil, fault.ErrWorldNotFound
	}
	if err := CheckOwned(record, programID); nil != err {
		return nil, err
	}

	w, err := state.UnpackWorldUnchecked(record.Data)
	if nil != err {
		return nil, err
	}
	if w.WorldAuthority != authority.Key {
		return nil, fault.ErrUnauthorised
	}

	address, err := pda.Create(pda.WithBump(pda.WorldSeeds(w.Name, w.Description), w.Bump), programID)
	if nil != err || address != record.Key {
		return nil, fault.ErrAddressMismatch
	}
	return w, nil
}
