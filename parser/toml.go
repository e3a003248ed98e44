// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package parser

import (
	"fmt"
	"sort"

	"github.com/pelletier/go-toml"

	"github.com/rush-ecs/rush/blueprint"
	"github.com/rush-ecs/rush/fault"
)

// TOML - blueprint documents in TOML
//
//	[world]
//	name = "Sonic's World"
//	description = "This is Sonic's world"
//	regions = ["farm", "house"]
//
//	[entity]
//	player = { name = "String", x = "f64", y = "f64" }
//	apple = { x = "i64", y = "i64" }
//
//	[farm]
//	player = [{ name = "npc", x = 0.0, y = 0.0 }]
//	apple = [{ x = 0, y = 0 }]
//
//	[house]
//	player = []
type TOML struct{}

// Parse - validate then compile a TOML document
func (TOML) Parse(document string) (*blueprint.Blueprint, error) {
	tree, err := toml.Load(document)
	if nil != err {
		return nil, fault.SyntaxError(err.Error())
	}

	name, description, regions, err := validateWorld(tree)
	if nil != err {
		return nil, err
	}

	// every region named by the world must have a table of instances
	for _, region := range regions {
		if !tree.HasPath([]string{region}) {
			return nil, fault.SyntaxError(fmt.Sprintf("Region %s table must exist", region))
		}
		if _, ok := tree.GetPath([]string{region}).(*toml.Tree); !ok {
			return nil, fault.SyntaxError(fmt.Sprintf("Region %s must be a table", region))
		}
	}

	entityTable, entities, err := validateEntities(tree)
	if nil != err {
		return nil, err
	}

	b := blueprint.New(name, description)
	b.Preload(regions, entities)

	for _, region := range regions {
		regionTable := tree.GetPath([]string{region}).(*toml.Tree)
		b.AddRegion(region, orderedKeys(regionTable))
	}

	for _, entity := range entities {
		schema := blueprint.ComponentTypeTree{}
		components := entityTable.GetPath([]string{entity}).(*toml.Tree)
		for _, component := range components.Keys() {
			typeName, ok := components.GetPath([]string{component}).(string)
			if !ok {
				return nil, fault.SyntaxError(fmt.Sprintf("Entity %s component %s type must be a string", entity, component))
			}
			schema[component] = typeName
		}
		b.AddEntity(entity, schema)
	}

	for _, region := range regions {
		regionTable := tree.GetPath([]string{region}).(*toml.Tree)
		for _, entity := range b.Regions[region] {
			instances, err := instanceTables(regionTable.GetPath([]string{entity}))
			if nil != err {
				return nil, fault.SyntaxError(fmt.Sprintf("Region %s entity %s must be an array of tables", region, entity))
			}
			for _, instance := range instances {
				componentTree, err := components(instance)
				if nil != err {
					return nil, err
				}
				err = b.AddInstance(region, entity, componentTree)
				if nil != err {
					return nil, err
				}
			}
		}
	}

	return b, nil
}

func validateWorld(tree *toml.Tree) (string, string, []string, error) {
	if !tree.HasPath([]string{"world"}) {
		return "", "", nil, fault.SyntaxError("World table must exist")
	}
	world, ok := tree.GetPath([]string{"world"}).(*toml.Tree)
	if !ok {
		return "", "", nil, fault.SyntaxError("World table must be a table")
	}

	if !world.HasPath([]string{"name"}) {
		return "", "", nil, fault.SyntaxError("World must have a name")
	}
	name, ok := world.GetPath([]string{"name"}).(string)
	if !ok {
		return "", "", nil, fault.SyntaxError("World name must be a string")
	}

	if !world.HasPath([]string{"description"}) {
		return "", "", nil, fault.SyntaxError("World must have a description")
	}
	description, ok := world.GetPath([]string{"description"}).(string)
	if !ok {
		return "", "", nil, fault.SyntaxError("World description must be a string")
	}

	if !world.HasPath([]string{"regions"}) {
		return "", "", nil, fault.SyntaxError("World must have a regions property")
	}
	list, ok := world.GetPath([]string{"regions"}).([]interface{})
	if !ok {
		if _, tables := world.GetPath([]string{"regions"}).([]*toml.Tree); tables {
			return "", "", nil, fault.SyntaxError("World regions property must be an array of strings")
		}
		return "", "", nil, fault.SyntaxError("World regions property must be an array")
	}
	if 0 == len(list) {
		return "", "", nil, fault.SyntaxError("World must have at least 1 region")
	}
	regions := make([]string, 0, len(list))
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			return "", "", nil, fault.SyntaxError("World regions property must be an array of strings")
		}
		regions = append(regions, s)
	}

	return name, description, regions, nil
}

func validateEntities(tree *toml.Tree) (*toml.Tree, []string, error) {
	if !tree.HasPath([]string{"entity"}) {
		return nil, nil, fault.SyntaxError("Entity table must exist")
	}
	table, ok := tree.GetPath([]string{"entity"}).(*toml.Tree)
	if !ok {
		return nil, nil, fault.SyntaxError("Entity table must be a table")
	}

	entities := orderedKeys(table)
	if 0 == len(entities) {
		return nil, nil, fault.SyntaxError("Entity table must have at least 1 entity properties")
	}
	for _, entity := range entities {
		if _, ok := table.GetPath([]string{entity}).(*toml.Tree); !ok {
			return nil, nil, fault.SyntaxError("Entity table must have at least 1 entity properties")
		}
	}
	return table, entities, nil
}

// an entity's value in a region table: inline tables, a table array or
// an empty array
func instanceTables(value interface{}) ([]*toml.Tree, error) {
	switch v := value.(type) {
	case []*toml.Tree:
		return v, nil
	case []interface{}:
		instances := make([]*toml.Tree, 0, len(v))
		for _, item := range v {
			t, ok := item.(*toml.Tree)
			if !ok {
				return nil, fault.ErrInvalidValue
			}
			instances = append(instances, t)
		}
		return instances, nil
	default:
		return nil, fault.ErrInvalidValue
	}
}

func components(instance *toml.Tree) (blueprint.ComponentTree, error) {
	tree := blueprint.ComponentTree{}
	for _, component := range instance.Keys() {
		switch v := instance.GetPath([]string{component}).(type) {
		case string:
			tree[component] = blueprint.String(v)
		case int64:
			tree[component] = blueprint.Integer(v)
		case float64:
			tree[component] = blueprint.Float(v)
		case bool:
			tree[component] = blueprint.Boolean(v)
		default:
			return nil, fault.ErrUnsupportedDataType
		}
	}
	return tree, nil
}

// keys of a table in document order
func orderedKeys(tree *toml.Tree) []string {
	keys := tree.Keys()
	sort.SliceStable(keys, func(i, j int) bool {
		a := tree.GetPositionPath([]string{keys[i]})
		b := tree.GetPositionPath([]string{keys[j]})
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Col != b.Col {
			return a.Col < b.Col
		}
		return keys[i] < keys[j]
	})
	return keys
}
