// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package instruction

import (
	"github.com/rush-ecs/rush/account"
	"github.com/rush-ecs/rush/blueprint"
)

// NewCreateWorld - accounts:
//  0. world authority, signer and payer
//  1. world record
//  2. system program
func NewCreateWorld(programID account.Address, authority account.Address, world account.Address, name string, description string, regions []string, entities []string, bump uint8) Instruction {
	return Instruction{
		ProgramID: programID,
		Accounts: []Meta{
			Signer(authority),
			Writable(world),
			Readonly(account.SystemProgram),
		},
		Data: PackPayload(CreateWorld{
			Name:        name,
			Description: description,
			Regions:     regions,
			Entities:    entities,
			Bump:        bump,
		}),
	}
}

// NewUpdateWorld - accounts:
//  0. world authority, signer and payer of any extra rent
//  1. world record
//  2. system program
func NewUpdateWorld(programID account.Address, authority account.Address, world account.Address, regions []string, entities []string) Instruction {
	return Instruction{
		ProgramID: programID,
		Accounts: []Meta{
			Signer(authority),
			Writable(world),
			Readonly(account.SystemProgram),
		},
		Data: PackPayload(UpdateWorld{Regions: regions, Entities: entities}),
	}
}

// NewDeleteWorld - accounts:
//  0. world authority, signer, receives the lamports
//  1. world record
func NewDeleteWorld(programID account.Address, authority account.Address, world account.Address) Instruction {
	return Instruction{
		ProgramID: programID,
		Accounts: []Meta{
			Signer(authority),
			Writable(world),
		},
		Data: PackPayload(DeleteWorld{}),
	}
}

// NewSpawnEntity - accounts:
//  0. instance authority, signer and payer
//  1. instance record
//  2. world record
//  3. system program
func NewSpawnEntity(programID account.Address, authority account.Address, instance account.Address, world account.Address, region string, entity string, components blueprint.ComponentTree, nonce uint64, bump uint8) Instruction {
	return Instruction{
		ProgramID: programID,
		Accounts: []Meta{
			Signer(authority),
			Writable(instance),
			Writable(world),
			Readonly(account.SystemProgram),
		},
		Data: PackPayload(SpawnEntity{
			Region:     region,
			Entity:     entity,
			Components: components,
			Nonce:      nonce,
			Bump:       bump,
		}),
	}
}

// NewUpdateEntity - accounts:
//  0. instance authority, signer and payer of any extra rent
//  1. instance record
func NewUpdateEntity(programID account.Address, authority account.Address, instance account.Address, component string, value blueprint.Value) Instruction {
	return Instruction{
		ProgramID: programID,
		Accounts: []Meta{
			Signer(authority),
			Writable(instance),
		},
		Data: PackPayload(UpdateEntity{Component: component, Value: value}),
	}
}

// NewDespawnEntity - accounts:
//  0. instance authority, signer, receives the lamports
//  1. instance record
func NewDespawnEntity(programID account.Address, authority account.Address, instance account.Address) Instruction {
	return Instruction{
		ProgramID: programID,
		Accounts: []Meta{
			Signer(authority),
			Writable(instance),
		},
		Data: PackPayload(DespawnEntity{}),
	}
}
