// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package store

import (
	"context"
	"sync"

	"github.com/rush-ecs/rush/blueprint"
	"github.com/rush-ecs/rush/fault"
	"github.com/rush-ecs/rush/loader"
	"github.com/rush-ecs/rush/parser"
)

// Memory - a world held in a local blueprint
//
// instances cannot be deleted since that would renumber the nonces of
// every later instance
type Memory struct {
	sync.Mutex
	path      string
	loader    *loader.Loader
	migrated  bool
	blueprint *blueprint.Blueprint
}

// ensure Memory is a Storage
var _ Storage = (*Memory)(nil)

// NewMemory - a backend that will load the blueprint at path on Migrate
func NewMemory(path string) *Memory {
	return &Memory{
		path:      path,
		loader:    loader.New(parser.TOML{}),
		blueprint: blueprint.New("In Memory Storage", ""),
	}
}

// Migrate - parse the blueprint
func (m *Memory) Migrate(ctx context.Context) error {
	if err := ctx.Err(); nil != err {
		return err
	}

	m.Lock()
	defer m.Unlock()

	if m.migrated {
		return fault.ErrAlreadyMigrated
	}

	b, err := m.loader.LoadBlueprint(m.path)
	if nil != err {
		return err
	}
	m.blueprint = b
	m.migrated = true
	return nil
}

// Create - append an instance holding zero values
func (m *Memory) Create(_ context.Context, region string, entity string) (uint64, error) {
	m.Lock()
	defer m.Unlock()

	if !m.migrated {
		return 0, fault.ErrNotMigrated
	}
	return m.blueprint.AddDefaultInstance(region, entity)
}

// Delete - not supported
func (m *Memory) Delete(_ context.Context, _ string, _ string, _ uint64) error {
	m.Lock()
	defer m.Unlock()

	if !m.migrated {
		return fault.ErrNotMigrated
	}
	return fault.ErrDeleteNotSupported
}

// Get - one component of an instance
func (m *Memory) Get(_ context.Context, region string, entity string, nonce uint64, component string) (blueprint.Value, error) {
	m.Lock()
	defer m.Unlock()

	if !m.migrated {
		return blueprint.Value{}, fault.ErrNotMigrated
	}
	return m.blueprint.GetComponentValue(region, entity, nonce, component)
}

// Set - overwrite one component of an instance
func (m *Memory) Set(_ context.Context, region string, entity string, nonce uint64, component string, value blueprint.Value) error {
	m.Lock()
	defer m.Unlock()

	if !m.migrated {
		return fault.ErrNotMigrated
	}
	return m.blueprint.SetComponentValue(region, entity, nonce, component, value)
}

// Blueprint - the loaded blueprint, empty before Migrate
func (m *Memory) Blueprint() *blueprint.Blueprint {
	m.Lock()
	defer m.Unlock()
	return m.blueprint
}
