// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state

import (
	"sort"

	"github.com/rush-ecs/rush/account"
	"github.com/rush-ecs/rush/codec"
	"github.com/rush-ecs/rush/fault"
)

// World - the top level record of a deployed blueprint
//
// Instances holds, per region and entity, the highest nonce spawned so
// far; the instances themselves are separate records
type World struct {
	Name           string
	Description    string
	Entities       []string
	Regions        []string
	Instances      map[string]map[string]uint64
	IsLaunched     bool
	WorldAuthority account.Address
	Bump           uint8
}

// NewWorld - a world record; with preload every region and entity pair
// starts with a zero counter
func NewWorld(name string, description string, regions []string, entities []string, authority account.Address, bump uint8, preload bool) *World {
	w := &World{
		Name:           name,
		Description:    description,
		Entities:       append([]string{}, entities...),
		Regions:        append([]string{}, regions...),
		Instances:      make(map[string]map[string]uint64),
		WorldAuthority: authority,
		Bump:           bump,
	}
	if preload {
		w.Preload()
	}
	return w
}

// Preload - add zero counters for every region and entity pair that has
// none, existing counters are kept
func (w *World) Preload() {
	for _, r := range w.Regions {
		m, ok := w.Instances[r]
		if !ok {
			m = make(map[string]uint64)
			w.Instances[r] = m
		}
		for _, e := range w.Entities {
			if _, ok := m[e]; !ok {
				m[e] = 0
			}
		}
	}
}

// HasRegion - region is part of the world
func (w *World) HasRegion(region string) bool {
	return contains(w.Regions, region)
}

// HasEntity - entity is part of the world
func (w *World) HasEntity(entity string) bool {
	return contains(w.Entities, entity)
}

// Nonce - the counter of a region and entity, zero if none spawned
func (w *World) Nonce(region string, entity string) uint64 {
	return w.Instances[region][entity]
}

// SetNonce - update the counter of a region and entity
func (w *World) SetNonce(region string, entity string, nonce uint64) {
	m, ok := w.Instances[region]
	if !ok {
		m = make(map[string]uint64)
		w.Instances[region] = m
	}
	m[entity] = nonce
}

// Pack - binary form of the record
func (w *World) Pack() codec.Packed {
	p := codec.Packed{}
	p.Fixed(WorldDiscriminator[:])
	p.String(w.Name)
	p.String(w.Description)
	p.Strings(w.Entities)
	p.Strings(w.Regions)

	regions := sortedKeys(w.Instances)
	p.Varint(uint64(len(regions)))
	for _, r := range regions {
		p.String(r)
		entities := sortedKeys(w.Instances[r])
		p.Varint(uint64(len(entities)))
		for _, e := range entities {
			p.String(e)
			p.Uint64(w.Instances[r][e])
		}
	}

	p.Bool(w.IsLaunched)
	p.Fixed(w.WorldAuthority[:])
	p.Byte(w.Bump)
	return p
}

// PackedSize - exact number of bytes Pack produces
func (w *World) PackedSize() int {
	return len(w.Pack())
}

// UnpackWorld - decode a record that fills the whole buffer
func UnpackWorld(data []byte) (*World, error) {
	w, n, err := unpackWorld(data)
	if nil != err {
		return nil, err
	}
	if n != len(data) {
		return nil, fault.ErrInvalidAccountData
	}
	return w, nil
}

// UnpackWorldUnchecked - decode a record, bytes after it are ignored
func UnpackWorldUnchecked(data []byte) (*World, error) {
	w, _, err := unpackWorld(data)
	return w, err
}

func unpackWorld(data []byte) (*World, int, error) {
	err := checkDiscriminator(data, WorldDiscriminator)
	if nil != err {
		return nil, 0, err
	}

	r := codec.NewReader(data[DiscriminatorLength:])
	w := &World{}
	w.Name = r.String()
	w.Description = r.String()
	w.Entities = r.Strings()
	w.Regions = r.Strings()

	regionCount := r.Count(codec.MaximumCount)
	w.Instances = make(map[string]map[string]uint64, regionCount)
	for i := 0; i < regionCount && nil == r.Err(); i += 1 {
		region := r.String()
		entityCount := r.Count(codec.MaximumCount)
		m := make(map[string]uint64, entityCount)
		for j := 0; j < entityCount && nil == r.Err(); j += 1 {
			entity := r.String()
			m[entity] = r.Uint64()
		}
		w.Instances[region] = m
	}

	w.IsLaunched = r.Bool()
	copy(w.WorldAuthority[:], r.Fixed(account.AddressLength))
	w.Bump = r.Byte()

	if err := r.Err(); nil != err {
		return nil, 0, fault.ErrInvalidAccountData
	}
	return w, DiscriminatorLength + r.Offset(), nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
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
