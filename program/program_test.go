// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package program_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rush-ecs/rush/account"
	"github.com/rush-ecs/rush/blueprint"
	"github.com/rush-ecs/rush/fault"
	"github.com/rush-ecs/rush/instruction"
	"github.com/rush-ecs/rush/pda"
	"github.com/rush-ecs/rush/program"
	"github.com/rush-ecs/rush/state"
)

const funds = 1000000000

var programID = account.Address{0x5a, 0x01}

// minimal runtime, the ledger one also checks ownership and balances
// across the whole transaction
type runtime struct{}

func (runtime) Rent() account.Rent {
	return account.DefaultRent
}

func (runtime) CreateAccount(payer *account.Info, target *account.Info, lamports uint64, space uint64, owner account.Address, seeds [][]byte) error {
	address, err := pda.Create(seeds, owner)
	if nil != err || address != target.Key {
		return fault.ErrAddressMismatch
	}
	if 0 != target.Lamports || 0 != len(target.Data) {
		return fault.ErrAccountAlreadyInitialised
	}
	if payer.Lamports < lamports {
		return fault.ErrInsufficientFunds
	}
	payer.Lamports -= lamports
	target.Lamports += lamports
	target.Data = make([]byte, space)
	target.Owner = owner
	return nil
}

func (runtime) Transfer(from *account.Info, to *account.Info, lamports uint64) error {
	if !from.IsSigner {
		return fault.ErrMissingRequiredSignature
	}
	if from.Lamports < lamports {
		return fault.ErrInsufficientFunds
	}
	from.Lamports -= lamports
	to.Lamports += lamports
	return nil
}

type fixture struct {
	authority *account.Info
	world     *account.Info
	system    *account.Info
	bump      uint8
}

func wallet(key account.Address, lamports uint64) *account.Info {
	return account.NewInfo(key, true, true, &account.Account{Lamports: lamports, Data: []byte{}})
}

func empty(key account.Address) *account.Info {
	return account.NewInfo(key, false, true, &account.Account{Data: []byte{}})
}

func (f *fixture) run(t *testing.T, ix instruction.Instruction, accounts ...*account.Info) error {
	t.Helper()
	return program.Process(runtime{}, programID, accounts, ix.Data)
}

func newWorld(t *testing.T) *fixture {
	address, bump, err := pda.FindWorld(programID, "W", "D")
	require.NoError(t, err)

	f := &fixture{
		authority: wallet(account.Address{0x01}, funds),
		world:     empty(address),
		system:    account.NewInfo(account.SystemProgram, false, false, &account.Account{Data: []byte{}}),
		bump:      bump,
	}
	ix := instruction.NewCreateWorld(programID, f.authority.Key, address, "W", "D", []string{"farm"}, []string{"apple"}, bump)
	require.NoError(t, f.run(t, ix, f.authority, f.world, f.system))
	return f
}

func (f *fixture) spawn(t *testing.T, nonce uint64) (*account.Info, error) {
	address, bump, err := pda.FindInstance(programID, f.world.Key, "farm", "apple", nonce)
	require.NoError(t, err)
	record := empty(address)
	tree := blueprint.ComponentTree{"x": blueprint.Integer(0), "y": blueprint.Integer(0)}
	ix := instruction.NewSpawnEntity(programID, f.authority.Key, address, f.world.Key, "farm", "apple", tree, nonce, bump)
	return record, f.run(t, ix, f.authority, record, f.world, f.system)
}

func TestCreateWorld(t *testing.T) {
	f := newWorld(t)

	w, err := state.UnpackWorld(f.world.Data)
	require.NoError(t, err)
	assert.Equal(t, "W", w.Name)
	assert.Equal(t, "D", w.Description)
	assert.Equal(t, f.authority.Key, w.WorldAuthority)
	assert.Equal(t, f.bump, w.Bump)
	assert.Equal(t, uint64(0), w.Nonce("farm", "apple"))
	assert.Contains(t, w.Instances["farm"], "apple")

	assert.Equal(t, programID, f.world.Owner)
	minimum := account.DefaultRent.MinimumBalance(len(f.world.Data))
	assert.Equal(t, minimum, f.world.Lamports)
	assert.Equal(t, uint64(funds)-minimum, f.authority.Lamports)
}

func TestCreateWorldFailures(t *testing.T) {
	address, bump, err := pda.FindWorld(programID, "W", "D")
	require.NoError(t, err)
	system := account.NewInfo(account.SystemProgram, false, false, &account.Account{Data: []byte{}})

	// a bump other than the canonical one gives another address
	authority := wallet(account.Address{0x01}, funds)
	ix := instruction.NewCreateWorld(programID, authority.Key, address, "W", "D", []string{"farm"}, []string{"apple"}, bump-1)
	err = program.Process(runtime{}, programID, []*account.Info{authority, empty(address), system}, ix.Data)
	assert.Equal(t, fault.ErrAddressMismatch, err)

	ix = instruction.NewCreateWorld(programID, authority.Key, address, "W", "D", []string{"farm"}, []string{"apple"}, bump)

	poor := wallet(account.Address{0x02}, 10)
	err = program.Process(runtime{}, programID, []*account.Info{poor, empty(address), system}, ix.Data)
	assert.Equal(t, fault.ErrInsufficientFunds, err)

	unsigned := account.NewInfo(authority.Key, false, true, authority.Account)
	err = program.Process(runtime{}, programID, []*account.Info{unsigned, empty(address), system}, ix.Data)
	assert.Equal(t, fault.ErrMissingRequiredSignature, err)

	err = program.Process(runtime{}, programID, []*account.Info{authority, empty(address)}, ix.Data)
	assert.Equal(t, fault.ErrNotEnoughAccountKeys, err)

	record := empty(address)
	err = program.Process(runtime{}, programID, []*account.Info{authority, record, system}, ix.Data)
	require.NoError(t, err)
	err = program.Process(runtime{}, programID, []*account.Info{authority, record, system}, ix.Data)
	assert.Equal(t, fault.ErrAccountAlreadyInitialised, err)
}

func TestSpawnEntity(t *testing.T) {
	f := newWorld(t)

	record, err := f.spawn(t, 1)
	require.NoError(t, err)

	instance, err := state.UnpackInstance(record.Data)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), instance.Nonce)
	assert.Equal(t, f.authority.Key, instance.InstanceAuthority)
	assert.Equal(t, blueprint.Integer(0), instance.Components["x"])

	w, err := state.UnpackWorld(f.world.Data)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), w.Nonce("farm", "apple"))

	_, err = f.spawn(t, 3)
	assert.Equal(t, fault.ErrInvalidNonce, err)

	_, err = f.spawn(t, 1)
	assert.Equal(t, fault.ErrInvalidNonce, err)

	_, err = f.spawn(t, 2)
	assert.NoError(t, err)
}

func TestSpawnEntityUnknownRegion(t *testing.T) {
	f := newWorld(t)

	address, bump, err := pda.FindInstance(programID, f.world.Key, "woods", "apple", 1)
	require.NoError(t, err)
	ix := instruction.NewSpawnEntity(programID, f.authority.Key, address, f.world.Key, "woods", "apple", blueprint.ComponentTree{}, 1, bump)
	err = f.run(t, ix, f.authority, empty(address), f.world, f.system)
	assert.Equal(t, fault.ErrRegionNotFound, err)

	address, bump, err = pda.FindInstance(programID, f.world.Key, "farm", "pear", 1)
	require.NoError(t, err)
	ix = instruction.NewSpawnEntity(programID, f.authority.Key, address, f.world.Key, "farm", "pear", blueprint.ComponentTree{}, 1, bump)
	err = f.run(t, ix, f.authority, empty(address), f.world, f.system)
	assert.Equal(t, fault.ErrEntityNotFound, err)
}

func TestSpawnEntityWrongAddress(t *testing.T) {
	f := newWorld(t)

	// address derived for nonce 2 but nonce 1 submitted
	address, bump, err := pda.FindInstance(programID, f.world.Key, "farm", "apple", 2)
	require.NoError(t, err)
	ix := instruction.NewSpawnEntity(programID, f.authority.Key, address, f.world.Key, "farm", "apple", blueprint.ComponentTree{}, 1, bump)
	err = f.run(t, ix, f.authority, empty(address), f.world, f.system)
	assert.Equal(t, fault.ErrAddressMismatch, err)
}

func TestUpdateEntity(t *testing.T) {
	f := newWorld(t)
	record, err := f.spawn(t, 1)
	require.NoError(t, err)

	ix := instruction.NewUpdateEntity(programID, f.authority.Key, record.Key, "x", blueprint.Integer(42))
	require.NoError(t, f.run(t, ix, f.authority, record))

	instance, err := state.UnpackInstance(record.Data)
	require.NoError(t, err)
	assert.Equal(t, blueprint.Integer(42), instance.Components["x"])

	ix = instruction.NewUpdateEntity(programID, f.authority.Key, record.Key, "x", blueprint.String("oops"))
	assert.Equal(t, fault.ErrMismatchedDataType, f.run(t, ix, f.authority, record))

	ix = instruction.NewUpdateEntity(programID, f.authority.Key, record.Key, "z", blueprint.Integer(1))
	assert.Equal(t, fault.ErrComponentNotFound, f.run(t, ix, f.authority, record))

	intruder := wallet(account.Address{0x09}, funds)
	ix = instruction.NewUpdateEntity(programID, intruder.Key, record.Key, "x", blueprint.Integer(1))
	assert.Equal(t, fault.ErrUnauthorised, f.run(t, ix, intruder, record))

	instance, err = state.UnpackInstance(record.Data)
	require.NoError(t, err)
	assert.Equal(t, blueprint.Integer(42), instance.Components["x"])
}

func TestUpdateEntityGrowsRecord(t *testing.T) {
	f := newWorld(t)

	address, bump, err := pda.FindInstance(programID, f.world.Key, "farm", "apple", 1)
	require.NoError(t, err)
	record := empty(address)
	ix := instruction.NewSpawnEntity(programID, f.authority.Key, address, f.world.Key, "farm", "apple",
		blueprint.ComponentTree{"label": blueprint.String("")}, 1, bump)
	require.NoError(t, f.run(t, ix, f.authority, record, f.world, f.system))

	before := len(record.Data)
	ix = instruction.NewUpdateEntity(programID, f.authority.Key, record.Key, "label", blueprint.String("a much longer label"))
	require.NoError(t, f.run(t, ix, f.authority, record))

	assert.True(t, len(record.Data) > before)
	assert.True(t, account.DefaultRent.IsExempt(record.Lamports, len(record.Data)))

	instance, err := state.UnpackInstance(record.Data)
	require.NoError(t, err)
	assert.Equal(t, blueprint.String("a much longer label"), instance.Components["label"])
}

func TestDespawnEntity(t *testing.T) {
	f := newWorld(t)
	record, err := f.spawn(t, 1)
	require.NoError(t, err)

	held := record.Lamports
	balance := f.authority.Lamports

	ix := instruction.NewDespawnEntity(programID, f.authority.Key, record.Key)
	require.NoError(t, f.run(t, ix, f.authority, record))

	assert.Equal(t, uint64(0), record.Lamports)
	assert.Equal(t, balance+held, f.authority.Lamports)
	assert.False(t, state.IsInitialised(record.Data, state.InstanceDiscriminator))
	for _, b := range record.Data {
		assert.Equal(t, byte(0), b)
	}

	w, err := state.UnpackWorld(f.world.Data)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), w.Nonce("farm", "apple"))

	_, err = f.spawn(t, 1)
	assert.Equal(t, fault.ErrInvalidNonce, err)
}

func TestUpdateWorld(t *testing.T) {
	f := newWorld(t)
	_, err := f.spawn(t, 1)
	require.NoError(t, err)

	ix := instruction.NewUpdateWorld(programID, f.authority.Key, f.world.Key, []string{"farm", "woods"}, []string{"apple", "pear"})
	require.NoError(t, f.run(t, ix, f.authority, f.world, f.system))

	w, err := state.UnpackWorld(f.world.Data)
	require.NoError(t, err)
	assert.Equal(t, []string{"farm", "woods"}, w.Regions)
	assert.Equal(t, []string{"apple", "pear"}, w.Entities)
	assert.Equal(t, uint64(1), w.Nonce("farm", "apple"))
	assert.Contains(t, w.Instances["woods"], "pear")
	assert.True(t, account.DefaultRent.IsExempt(f.world.Lamports, len(f.world.Data)))

	intruder := wallet(account.Address{0x09}, funds)
	ix = instruction.NewUpdateWorld(programID, intruder.Key, f.world.Key, []string{"farm"}, []string{"apple"})
	assert.Equal(t, fault.ErrUnauthorised, f.run(t, ix, intruder, f.world, f.system))
}

func TestDeleteWorld(t *testing.T) {
	f := newWorld(t)
	held := f.world.Lamports
	balance := f.authority.Lamports

	ix := instruction.NewDeleteWorld(programID, f.authority.Key, f.world.Key)
	require.NoError(t, f.run(t, ix, f.authority, f.world))

	assert.Equal(t, uint64(0), f.world.Lamports)
	assert.Equal(t, balance+held, f.authority.Lamports)
	_, err := state.UnpackWorld(f.world.Data)
	assert.Equal(t, fault.ErrNotInitialised, err)
}

func TestForeignRecord(t *testing.T) {
	f := newWorld(t)
	record, err := f.spawn(t, 1)
	require.NoError(t, err)

	record.Owner = account.Address{0x77}
	ix := instruction.NewUpdateEntity(programID, f.authority.Key, record.Key, "x", blueprint.Integer(1))
	assert.Equal(t, fault.ErrInvalidAccountOwner, f.run(t, ix, f.authority, record))
}

func TestInvalidData(t *testing.T) {
	err := program.Process(runtime{}, programID, nil, []byte{0x42})
	assert.Equal(t, fault.ErrInvalidInstruction, err)
}

func TestAbsentRecords(t *testing.T) {
	f := newWorld(t)

	address, _, err := pda.FindInstance(programID, f.world.Key, "farm", "apple", 9)
	require.NoError(t, err)
	missing := empty(address)

	ix := instruction.NewUpdateEntity(programID, f.authority.Key, address, "x", blueprint.Integer(1))
	assert.Equal(t, fault.ErrInstanceNotFound, f.run(t, ix, f.authority, missing), "update never spawned")
	ix = instruction.NewDespawnEntity(programID, f.authority.Key, address)
	assert.Equal(t, fault.ErrInstanceNotFound, f.run(t, ix, f.authority, missing), "despawn never spawned")

	record, err := f.spawn(t, 1)
	require.NoError(t, err)
	ix = instruction.NewDespawnEntity(programID, f.authority.Key, record.Key)
	require.NoError(t, f.run(t, ix, f.authority, record))
	ix = instruction.NewUpdateEntity(programID, f.authority.Key, record.Key, "x", blueprint.Integer(1))
	assert.Equal(t, fault.ErrInstanceNotFound, f.run(t, ix, f.authority, record), "update after despawn")

	noWorld := empty(account.Address{0x66})
	ix = instruction.NewDeleteWorld(programID, f.authority.Key, noWorld.Key)
	assert.Equal(t, fault.ErrWorldNotFound, f.run(t, ix, f.authority, noWorld), "delete missing world")
}
