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

// accounts: authority, instance, world, system
//
// the authority signing the spawn becomes the instance authority
func spawnEntity(ctx Context, programID account.Address, accounts []*account.Info, p instruction.SpawnEntity) error {
	if err := CheckAccounts(accounts, 4); nil != err {
		return err
	}
	authority := accounts[0]
	record := accounts[1]
	worldRecord := accounts[2]

	if err := CheckSigner(authority); nil != err {
		return err
	}
	if Absent(worldRecord) {
		return fault.ErrWorldNotFound
	}
	if err := CheckOwned(worldRecord, programID); nil != err {
		return err
	}

	w, err := state.UnpackWorldUnchecked(worldRecord.Data)
	if nil != err {
		return err
	}
	if !w.HasRegion(p.Region) {
		return fault.ErrRegionNotFound
	}
	if !w.HasEntity(p.Entity) {
		return fault.ErrEntityNotFound
	}
	if p.Nonce != w.Nonce(p.Region, p.Entity)+1 {
		return fault.ErrInvalidNonce
	}

	seeds := pda.WithBump(pda.InstanceSeeds(worldRecord.Key, p.Region, p.Entity, p.Nonce), p.Bump)
	address, err := pda.Create(seeds, programID)
	if nil != err || address != record.Key {
		return fault.ErrAddressMismatch
	}

	if state.IsInitialised(record.Data, state.InstanceDiscriminator) {
		return fault.ErrAccountAlreadyInitialised
	}

	instance := &state.Instance{
		Components:        p.Components,
		Nonce:             p.Nonce,
		InstanceAuthority: authority.Key,
		Bump:              p.Bump,
	}
	packed := instance.Pack()
	lamports := ctx.Rent().MinimumBalance(len(packed))

	err = ctx.CreateAccount(authority, record, lamports, uint64(len(packed)), programID, seeds)
	if nil != err {
		return err
	}
	copy(record.Data, packed)

	w.SetNonce(p.Region, p.Entity, p.Nonce)
	return Write(ctx, authority, worldRecord, w.Pack())
}

// accounts: authority, instance
func updateEntity(ctx Context, programID account.Address, accounts []*account.Info, p instruction.UpdateEntity) error {
	if err := CheckAccounts(accounts, 2); nil != err {
		return err
	}
	authority := accounts[0]
	record := accounts[1]

	instance, err := loadInstance(programID, authority, record)
	if nil != err {
		return err
	}

	current, ok := instance.Components[p.Component]
	if !ok {
		return fault.ErrComponentNotFound
	}
	if !current.SameKind(p.Value) {
		return fault.ErrMismatchedDataType
	}
	instance.Components[p.Component] = p.Value

	return Write(ctx, authority, record, instance.Pack())
}

// accounts: authority, instance
//
// the world counter is left alone so the nonce is never reused
func despawnEntity(programID account.Address, accounts []*account.Info) error {
	if err := CheckAccounts(accounts, 2); nil != err {
		return err
	}
	authority := accounts[0]
	record := accounts[1]

	_, err := loadInstance(programID, authority, record)
	if nil != err {
		return err
	}
	return Close(record, authority)
}

func loadInstance(programID account.Address, authority *account.Info, record *account.Info) (*state.Instance, error) {
	if err := CheckSigner(authority); nil != err {
		return nil, err
	}
	if Absent(record) {
		return nil, fault.ErrInstanceNotFound
	}
	if err := CheckOwned(record, programID); nil != err {
		return nil, err
	}

	instance, err := state.UnpackInstanceUnchecked(record.Data)
	if nil != err {
		return nil, err
	}
	if instance.InstanceAuthority != authority.Key {
		return nil, fault.ErrUnauthorised
	}
	return instance, nil
}
