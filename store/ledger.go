// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package store

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/patrickmn/go-cache"

	"github.com/rush-ecs/rush/account"
	"github.com/rush-ecs/rush/blueprint"
	"github.com/rush-ecs/rush/fault"
	"github.com/rush-ecs/rush/instruction"
	"github.com/rush-ecs/rush/keypair"
	"github.com/rush-ecs/rush/loader"
	"github.com/rush-ecs/rush/parser"
	"github.com/rush-ecs/rush/pda"
	"github.com/rush-ecs/rush/state"
	"github.com/rush-ecs/rush/transaction"
)

// interval between blockhash checks while waiting to resend
const blockhashPoll = 50 * time.Millisecond

// Client - the ledger node operations the backend needs; every call may
// block on the network
type Client interface {
	GetLatestBlockhash(ctx context.Context) (transaction.Hash, error)
	SendTransaction(ctx context.Context, tx *transaction.Transaction) (account.Signature, error)
	GetAccount(ctx context.Context, address account.Address) (*account.Account, error)
}

// Ledger - a world deployed to the store program
//
// every mutation is one signed transaction that has been committed by
// the time the call returns
type Ledger struct {
	sync.Mutex
	log       *logger.L
	programID account.Address
	signer    *keypair.KeyPair
	client    Client
	blueprint *blueprint.Blueprint
	world     account.Address
	worldBump uint8
	migrated  bool

	// derived instance addresses
	addresses *cache.Cache
}

type derived struct {
	address account.Address
	bump    uint8
}

// ensure Ledger is a Storage
var _ Storage = (*Ledger)(nil)

// NewLedger - load the blueprint at path and derive its world address
func NewLedger(programID account.Address, signer *keypair.KeyPair, client Client, path string) (*Ledger, error) {
	if nil == signer {
		return nil, fault.ErrUnauthenticated
	}
	if nil == client {
		return nil, fault.ErrInvalidEndpoint
	}

	b, err := loader.New(parser.TOML{}).LoadBlueprint(path)
	if nil != err {
		return nil, err
	}

	world, bump, err := pda.FindWorld(programID, b.Name, b.Description)
	if nil != err {
		return nil, err
	}

	return &Ledger{
		log:       logger.New("store"),
		programID: programID,
		signer:    signer,
		client:    client,
		blueprint: b,
		world:     world,
		worldBump: bump,
		addresses: cache.New(cache.NoExpiration, 0),
	}, nil
}

// WorldAddress - derived address of the World record
func (l *Ledger) WorldAddress() account.Address {
	return l.world
}

// Blueprint - the local blueprint
func (l *Ledger) Blueprint() *blueprint.Blueprint {
	return l.blueprint
}

// Migrate - create the World record, then spawn every blueprint
// instance in region, entity, sequence order, each confirmed before
// the next is sent
//
// an interrupted migration leaves the instances sent so far in place
func (l *Ledger) Migrate(ctx context.Context) error {
	l.Lock()
	defer l.Unlock()

	if l.migrated {
		return fault.ErrAlreadyMigrated
	}

	_, err := l.client.GetAccount(ctx, l.world)
	if nil == err {
		return fault.ErrWorldAlreadyExists
	}
	if fault.ErrAccountNotFound != err {
		return l.transport(err)
	}

	b := l.blueprint
	regions := b.SortedRegions()
	entities := b.SortedEntities()

	ix := instruction.NewCreateWorld(l.programID, l.signer.Address(), l.world, b.Name, b.Description, regions, entities, l.worldBump)
	err = l.send(ctx, ix)
	if nil != err {
		return err
	}
	l.log.Infof("created world: %q at: %s", b.Name, l.world)

	for _, region := range regions {
		for _, entity := range sortedKeys(b.Instances[region]) {
			for i, components := range b.Instances[region][entity] {
				nonce := uint64(i + 1)
				err := l.spawn(ctx, region, entity, components, nonce)
				if nil != err {
					return err
				}
			}
		}
	}

	l.migrated = true
	return nil
}

// Connect - attach to a world deployed earlier instead of migrating
func (l *Ledger) Connect(ctx context.Context) error {
	l.Lock()
	defer l.Unlock()

	_, err := l.fetchWorld(ctx)
	if nil != err {
		return err
	}
	l.migrated = true
	return nil
}

// World - current World record
func (l *Ledger) World(ctx context.Context) (*state.World, error) {
	l.Lock()
	defer l.Unlock()

	if !l.migrated {
		return nil, fault.ErrNotMigrated
	}
	return l.fetchWorld(ctx)
}

// Create - spawn an instance with zero values under the next nonce
func (l *Ledger) Create(ctx context.Context, region string, entity string) (uint64, error) {
	l.Lock()
	defer l.Unlock()

	if !l.migrated {
		return 0, fault.ErrNotMigrated
	}

	allowed, ok := l.blueprint.Regions[region]
	if !ok {
		return 0, fault.ErrRegionNotFound
	}
	if !contains(allowed, entity) {
		return 0, fault.ErrEntityNotFound
	}
	components, err := l.blueprint.GetDefaultComponents(entity)
	if nil != err {
		return 0, err
	}

	w, err := l.fetchWorld(ctx)
	if nil != err {
		return 0, err
	}
	if !w.HasRegion(region) {
		return 0, fault.ErrRegionNotFound
	}
	if !w.HasEntity(entity) {
		return 0, fault.ErrEntityNotFound
	}

	nonce := w.Nonce(region, entity) + 1
	err = l.spawn(ctx, region, entity, components, nonce)
	if nil != err {
		return 0, err
	}
	return nonce, nil
}

// Delete - despawn an instance, its nonce is not reused
func (l *Ledger) Delete(ctx context.Context, region string, entity string, nonce uint64) error {
	l.Lock()
	defer l.Unlock()

	if !l.migrated {
		return fault.ErrNotMigrated
	}

	d, err := l.instance(region, entity, nonce)
	if nil != err {
		return err
	}
	err = l.send(ctx, instruction.NewDespawnEntity(l.programID, l.signer.Address(), d.address))
	if nil != err {
		return err
	}
	l.log.Infof("despawned %s/%s #%d at %s", region, entity, nonce, d.address)
	return nil
}

// Get - one component of an instance record
func (l *Ledger) Get(ctx context.Context, region string, entity string, nonce uint64, component string) (blueprint.Value, error) {
	l.Lock()
	defer l.Unlock()

	if !l.migrated {
		return blueprint.Value{}, fault.ErrNotMigrated
	}

	d, err := l.instance(region, entity, nonce)
	if nil != err {
		return blueprint.Value{}, err
	}

	a, err := l.client.GetAccount(ctx, d.address)
	if fault.ErrAccountNotFound == err {
		return blueprint.Value{}, fault.ErrInstanceNotFound
	}
	if nil != err {
		return blueprint.Value{}, l.transport(err)
	}
	if a.Owner != l.programID {
		return blueprint.Value{}, fault.ErrInvalidAccountOwner
	}

	i, err := state.UnpackInstance(a.Data)
	if nil != err {
		return blueprint.Value{}, err
	}
	v, ok := i.Components[component]
	if !ok {
		return blueprint.Value{}, fault.ErrComponentNotFound
	}
	return v, nil
}

// Set - overwrite one component, the program rejects a change of arm
func (l *Ledger) Set(ctx context.Context, region string, entity string, nonce uint64, component string, value blueprint.Value) error {
	l.Lock()
	defer l.Unlock()

	if !l.migrated {
		return fault.ErrNotMigrated
	}

	d, err := l.instance(region, entity, nonce)
	if nil != err {
		return err
	}
	err = l.send(ctx, instruction.NewUpdateEntity(l.programID, l.signer.Address(), d.address, component, value))
	if nil != err {
		return err
	}
	l.log.Debugf("set %s/%s #%d %s = %s", region, entity, nonce, component, value)
	return nil
}

func (l *Ledger) spawn(ctx context.Context, region string, entity string, components blueprint.ComponentTree, nonce uint64) error {
	d, err := l.instance(region, entity, nonce)
	if nil != err {
		return err
	}
	ix := instruction.NewSpawnEntity(l.programID, l.signer.Address(), d.address, l.world, region, entity, components, nonce, d.bump)
	err = l.send(ctx, ix)
	if nil != err {
		return err
	}
	l.log.Infof("spawned %s/%s #%d at %s", region, entity, nonce, d.address)
	return nil
}

func (l *Ledger) fetchWorld(ctx context.Context) (*state.World, error) {
	a, err := l.client.GetAccount(ctx, l.world)
	if fault.ErrAccountNotFound == err {
		return nil, fault.ErrWorldNotFound
	}
	if nil != err {
		return nil, l.transport(err)
	}
	if a.Owner != l.programID {
		return nil, fault.ErrInvalidAccountOwner
	}
	return state.UnpackWorld(a.Data)
}

// derived address of an instance, cached
func (l *Ledger) instance(region string, entity string, nonce uint64) (derived, error) {
	key := region + "\x00" + entity + "\x00" + strconv.FormatUint(nonce, 10)
	if v, found := l.addresses.Get(key); found {
		return v.(derived), nil
	}

	address, bump, err := pda.FindInstance(l.programID, l.world, region, entity, nonce)
	if nil != err {
		return derived{}, err
	}
	d := derived{address: address, bump: bump}
	l.addresses.Set(key, d, cache.NoExpiration)
	return d, nil
}

// sign and submit, returns once committed
//
// an identical message sent earlier in the same slot has the same
// transaction id and is refused as already processed, so it is signed
// again under the next blockhash
func (l *Ledger) send(ctx context.Context, instructions ...instruction.Instruction) error {
	h, err := l.client.GetLatestBlockhash(ctx)
	if nil != err {
		return l.transport(err)
	}

	for {
		tx := transaction.New(l.signer.Address(), h, instructions...)
		err = tx.Sign(l.signer)
		if nil != err {
			return err
		}

		id, err := l.client.SendTransaction(ctx, tx)
		if nil == err {
			return nil
		}
		if fault.ErrAlreadyProcessed != err {
			l.log.Debugf("transaction: %s  error: %s", id, err)
			return l.transport(err)
		}

		l.log.Debugf("transaction: %s  repeated, waiting for blockhash after: %s", id, h)
		h, err = l.nextBlockhash(ctx, h)
		if nil != err {
			return err
		}
	}
}

// poll until the node has moved past previous
func (l *Ledger) nextBlockhash(ctx context.Context, previous transaction.Hash) (transaction.Hash, error) {
	ticker := time.NewTicker(blockhashPoll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return transaction.Hash{}, ctx.Err()
		case <-ticker.C:
		}

		h, err := l.client.GetLatestBlockhash(ctx)
		if nil != err {
			return transaction.Hash{}, l.transport(err)
		}
		if h != previous {
			return h, nil
		}
	}
}

// log transport failures, every error is returned unchanged
func (l *Ledger) transport(err error) error {
	if errors.Is(err, fault.ErrTransportFailed) {
		l.log.Warnf("transport: %s", err)
	}
	return err
}

func contains(list []string, s string) bool {
	for _, e := range list {
		if e == s {
			return true
		}
	}
	return false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
