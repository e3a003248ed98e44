// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package store - uniform access to the instances of a world, either
// held in memory or deployed to a ledger
//
// instances are addressed by region, entity and nonce; the nonce is the
// 1-based position of the instance in its region/entity sequence and is
// never reused
package store

import (
	"context"

	"github.com/rush-ecs/rush/blueprint"
)

// Storage - the capability every backend offers
//
// Migrate must run (or the backend be attached to an existing world)
// before any other operation, otherwise they fail with
// fault.ErrNotMigrated; running Migrate against a world that already
// exists is an error, never a silent no-op
type Storage interface {
	Migrate(ctx context.Context) error
	Create(ctx context.Context, region string, entity string) (uint64, error)
	Delete(ctx context.Context, region string, entity string, nonce uint64) error
	Get(ctx context.Context, region string, entity string, nonce uint64, component string) (blueprint.Value, error)
	Set(ctx context.Context, region string, entity string, nonce uint64, component string, value blueprint.Value) error

	// the local blueprint the backend was created from
	Blueprint() *blueprint.Blueprint
}
