// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package instruction

import (
	"github.com/rush-ecs/rush/blueprint"
	"github.com/rush-ecs/rush/codec"
	"github.com/rush-ecs/rush/fault"
)

// Tag - leading byte of a store payload
type Tag uint8

// store program operations
const (
	CreateWorldTag   Tag = 0
	UpdateWorldTag   Tag = 1
	DeleteWorldTag   Tag = 2
	SpawnEntityTag   Tag = 3
	UpdateEntityTag  Tag = 4
	DespawnEntityTag Tag = 5
)

// Payload - the operation specific data of a store instruction
type Payload interface {
	Tag() Tag
	pack(p *codec.Packed)
}

// CreateWorld - allocate and write a new world record
type CreateWorld struct {
	Name        string
	Description string
	Regions     []string
	Entities    []string
	Bump        uint8
}

// UpdateWorld - replace the regions and entities of a world
type UpdateWorld struct {
	Regions  []string
	Entities []string
}

// DeleteWorld - drain and clear a world record
type DeleteWorld struct{}

// SpawnEntity - allocate and write a new instance record
type SpawnEntity struct {
	Region     string
	Entity     string
	Components blueprint.ComponentTree
	Nonce      uint64
	Bump       uint8
}

// UpdateEntity - overwrite one component of an instance
type UpdateEntity struct {
	Component string
	Value     blueprint.Value
}

// DespawnEntity - drain and clear an instance record
type DespawnEntity struct{}

func (CreateWorld) Tag() Tag   { return CreateWorldTag }
func (UpdateWorld) Tag() Tag   { return UpdateWorldTag }
func (DeleteWorld) Tag() Tag   { return DeleteWorldTag }
func (SpawnEntity) Tag() Tag   { return SpawnEntityTag }
func (UpdateEntity) Tag() Tag  { return UpdateEntityTag }
func (DespawnEntity) Tag() Tag { return DespawnEntityTag }

func (c CreateWorld) pack(p *codec.Packed) {
	p.String(c.Name)
	p.String(c.Description)
	p.Strings(c.Regions)
	p.Strings(c.Entities)
	p.Byte(c.Bump)
}

func (u UpdateWorld) pack(p *codec.Packed) {
	p.Strings(u.Regions)
	p.Strings(u.Entities)
}

func (DeleteWorld) pack(p *codec.Packed) {}

func (s SpawnEntity) pack(p *codec.Packed) {
	p.String(s.Region)
	p.String(s.Entity)
	s.Components.Pack(p)
	p.Uint64(s.Nonce)
	p.Byte(s.Bump)
}

func (u UpdateEntity) pack(p *codec.Packed) {
	p.String(u.Component)
	u.Value.Pack(p)
}

func (DespawnEntity) pack(p *codec.Packed) {}

// PackPayload - tag byte followed by the fields
func PackPayload(payload Payload) []byte {
	p := codec.Packed{byte(payload.Tag())}
	payload.pack(&p)
	return p
}

// UnpackPayload - decode store instruction data, trailing bytes are an
// error
func UnpackPayload(data []byte) (Payload, error) {
	if 0 == len(data) {
		return nil, fault.ErrInvalidInstruction
	}

	r := codec.NewReader(data[1:])
	var payload Payload

	switch Tag(data[0]) {
	case CreateWorldTag:
		payload = CreateWorld{
			Name:        r.String(),
			Description: r.String(),
			Regions:     r.Strings(),
			Entities:    r.Strings(),
			Bump:        r.Byte(),
		}

	case UpdateWorldTag:
		payload = UpdateWorld{
			Regions:  r.Strings(),
			Entities: r.Strings(),
		}

	case DeleteWorldTag:
		payload = DeleteWorld{}

	case SpawnEntityTag:
		s := SpawnEntity{
			Region: r.String(),
			Entity: r.String(),
		}
		components, err := blueprint.UnpackComponentTree(r)
		if nil != err {
			return nil, fault.ErrInvalidInstruction
		}
		s.Components = components
		s.Nonce = r.Uint64()
		s.Bump = r.Byte()
		payload = s

	case UpdateEntityTag:
		u := UpdateEntity{
			Component: r.String(),
		}
		v, err := blueprint.UnpackValue(r)
		if nil != err {
			return nil, fault.ErrInvalidInstruction
		}
		u.Value = v
		payload = u

	case DespawnEntityTag:
		payload = DespawnEntity{}

	default:
		return nil, fault.ErrInvalidInstruction
	}

	if nil != r.Err() || 0 != r.Remaining() {
		return nil, fault.ErrInvalidInstruction
	}
	return payload, nil
}
