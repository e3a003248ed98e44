// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blueprint

import (
	"github.com/rush-ecs/rush/codec"
	"github.com/rush-ecs/rush/fault"
)

// ComponentTypeTree - schema of an entity, component name to type name
type ComponentTypeTree map[string]string

// ComponentTree - the components of one instance
type ComponentTree map[string]Value

// Blueprint - declarative description of a world
//
// Regions maps a region to the entity types allowed in it, Entities
// maps an entity type to its schema and Instances holds the initial
// population per region and entity; an instance's 1-based position in
// its sequence is its nonce
type Blueprint struct {
	Name        string
	Description string
	Regions     map[string][]string
	Entities    map[string]ComponentTypeTree
	Instances   map[string]map[string][]ComponentTree
}

// Tuple - one component of one instance
type Tuple struct {
	Region    string
	Entity    string
	Nonce     uint64
	Component string
	Value     Value
}

// New - an empty blueprint
func New(name string, description string) *Blueprint {
	return &Blueprint{
		Name:        name,
		Description: description,
		Regions:     make(map[string][]string),
		Entities:    make(map[string]ComponentTypeTree),
		Instances:   make(map[string]map[string][]ComponentTree),
	}
}

// Preload - create empty instance sequences for every region and
// entity pair, existing sequences are kept
func (b *Blueprint) Preload(regions []string, entities []string) {
	for _, r := range regions {
		m, ok := b.Instances[r]
		if !ok {
			m = make(map[string][]ComponentTree)
			b.Instances[r] = m
		}
		for _, e := range entities {
			if _, ok := m[e]; !ok {
				m[e] = []ComponentTree{}
			}
		}
	}
}

// AddRegion - insert or overwrite the entity types allowed in a region
func (b *Blueprint) AddRegion(name string, entities []string) {
	b.Regions[name] = append([]string{}, entities...)
}

// AddEntity - insert or overwrite an entity schema
func (b *Blueprint) AddEntity(name string, tree ComponentTypeTree) {
	schema := make(ComponentTypeTree, len(tree))
	for k, v := range tree {
		schema[k] = v
	}
	b.Entities[name] = schema
}

// AddInstance - append an instance to a region/entity sequence
//
// every component of the entity schema must be present with the
// declared type and no others
func (b *Blueprint) AddInstance(region string, entity string, tree ComponentTree) error {
	sequence, err := b.sequence(region, entity)
	if nil != err {
		return err
	}
	err = b.conform(entity, tree)
	if nil != err {
		return err
	}
	b.Instances[region][entity] = append(sequence, tree.clone())
	return nil
}

// AddDefaultInstance - append an instance holding zero values and
// return its nonce
func (b *Blueprint) AddDefaultInstance(region string, entity string) (uint64, error) {
	tree, err := b.GetDefaultComponents(entity)
	if nil != err {
		return 0, err
	}
	err = b.AddInstance(region, entity, tree)
	if nil != err {
		return 0, err
	}
	return uint64(len(b.Instances[region][entity])), nil
}

// GetInstance - copy of the components of an instance, nonce is 1-based
func (b *Blueprint) GetInstance(region string, entity string, nonce uint64) (ComponentTree, error) {
	tree, err := b.instance(region, entity, nonce)
	if nil != err {
		return nil, err
	}
	return tree.clone(), nil
}

// GetComponentValue - a single component of an instance
func (b *Blueprint) GetComponentValue(region string, entity string, nonce uint64, component string) (Value, error) {
	tree, err := b.instance(region, entity, nonce)
	if nil != err {
		return Value{}, err
	}
	v, ok := tree[component]
	if !ok {
		return Value{}, fault.ErrComponentNotFound
	}
	return v, nil
}

// SetComponentValue - overwrite a component, the new value must hold the
// same arm as the stored one
func (b *Blueprint) SetComponentValue(region string, entity string, nonce uint64, component string, value Value) error {
	tree, err := b.instance(region, entity, nonce)
	if nil != err {
		return err
	}
	current, ok := tree[component]
	if !ok {
		return fault.ErrComponentNotFound
	}
	if !current.SameKind(value) {
		return fault.ErrMismatchedDataType
	}
	tree[component] = value
	return nil
}

// GetDefaultComponents - zero value of every component in an entity schema
func (b *Blueprint) GetDefaultComponents(entity string) (ComponentTree, error) {
	schema, ok := b.Entities[entity]
	if !ok {
		return nil, fault.ErrEntityNotFound
	}
	tree := make(ComponentTree, len(schema))
	for component, typeName := range schema {
		kind, err := KindOf(typeName)
		if nil != err {
			return nil, err
		}
		tree[component] = Zero(kind)
	}
	return tree, nil
}

// SortedRegions - region names in ascending order
func (b *Blueprint) SortedRegions() []string {
	return sortedKeys(b.Regions)
}

// SortedEntities - entity names in ascending order
func (b *Blueprint) SortedEntities() []string {
	return sortedKeys(b.Entities)
}

// Tuples - every component of every instance in region, entity, nonce
// and component order
func (b *Blueprint) Tuples() []Tuple {
	tuples := []Tuple{}
	for _, region := range sortedKeys(b.Instances) {
		for _, entity := range sortedKeys(b.Instances[region]) {
			for i, tree := range b.Instances[region][entity] {
				for _, component := range tree.Components() {
					tuples = append(tuples, Tuple{
						Region:    region,
						Entity:    entity,
						Nonce:     uint64(i + 1),
						Component: component,
						Value:     tree[component],
					})
				}
			}
		}
	}
	return tuples
}

// Components - component names in ascending order
func (t ComponentTree) Components() []string {
	return sortedKeys(t)
}

// Pack - counted component, value pairs in component order
func (t ComponentTree) Pack(p *codec.Packed) {
	p.Varint(uint64(len(t)))
	for _, component := range t.Components() {
		p.String(component)
		t[component].Pack(p)
	}
}

// UnpackComponentTree - read a tree written by Pack
func UnpackComponentTree(r *codec.Reader) (ComponentTree, error) {
	count := r.Count(codec.MaximumCount)
	tree := make(ComponentTree, count)
	for i := 0; i < count; i += 1 {
		component := r.String()
		v, err := UnpackValue(r)
		if nil != err {
			return nil, err
		}
		tree[component] = v
	}
	if err := r.Err(); nil != err {
		return nil, err
	}
	return tree, nil
}

func (t ComponentTree) clone() ComponentTree {
	c := make(ComponentTree, len(t))
	for k, v := range t {
		c[k] = v
	}
	return c
}

// the sequence for a region and entity, checking both exist and the
// entity is allowed in the region
func (b *Blueprint) sequence(region string, entity string) ([]ComponentTree, error) {
	entities, ok := b.Instances[region]
	if !ok {
		return nil, fault.ErrRegionNotFound
	}
	if _, ok := b.Regions[region]; !ok {
		return nil, fault.ErrRegionNotFound
	}
	if _, ok := b.Entities[entity]; !ok {
		return nil, fault.ErrEntityNotFound
	}
	if !contains(b.Regions[region], entity) {
		return nil, fault.ErrEntityNotFound
	}
	sequence, ok := entities[entity]
	if !ok {
		return nil, fault.ErrEntityNotFound
	}
	return sequence, nil
}

func (b *Blueprint) instance(region string, entity string, nonce uint64) (ComponentTree, error) {
	sequence, err := b.sequence(region, entity)
	if nil != err {
		return nil, err
	}
	if 0 == nonce || nonce > uint64(len(sequence)) {
		return nil, fault.ErrInstanceNotFound
	}
	return sequence[nonce-1], nil
}

func (b *Blueprint) conform(entity string, tree ComponentTree) error {
	schema := b.Entities[entity]
	for _, component := range sortedKeys(schema) {
		kind, err := KindOf(schema[component])
		if nil != err {
			return err
		}
		v, ok := tree[component]
		if !ok {
			return fault.ErrComponentNotFound
		}
		if kind != v.Kind() {
			return fault.ErrMismatchedDataType
		}
	}
	if len(tree) != len(schema) {
		return fault.ErrComponentNotFound
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
