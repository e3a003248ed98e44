// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blueprint_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rush-ecs/rush/blueprint"
	"github.com/rush-ecs/rush/codec"
	"github.com/rush-ecs/rush/fault"
)

// the farm world: one region holding two apples
func farm(t *testing.T) *blueprint.Blueprint {
	b := blueprint.New("W", "D")
	b.Preload([]string{"farm"}, []string{"apple"})
	b.AddRegion("farm", []string{"apple"})
	b.AddEntity("apple", blueprint.ComponentTypeTree{"x": "i64", "y": "i64"})

	require.NoError(t, b.AddInstance("farm", "apple", blueprint.ComponentTree{
		"x": blueprint.Integer(0),
		"y": blueprint.Integer(0),
	}))
	require.NoError(t, b.AddInstance("farm", "apple", blueprint.ComponentTree{
		"x": blueprint.Integer(1),
		"y": blueprint.Integer(2),
	}))
	return b
}

func TestGetComponentValue(t *testing.T) {
	b := farm(t)

	assert.Len(t, b.Instances["farm"]["apple"], 2)

	v, err := b.GetComponentValue("farm", "apple", 2, "x")
	require.NoError(t, err)
	assert.True(t, blueprint.Integer(1).Equal(v))

	_, err = b.GetComponentValue("farm", "apple", 2, "z")
	assert.Equal(t, fault.ErrComponentNotFound, err)

	_, err = b.GetComponentValue("farm", "apple", 3, "x")
	assert.Equal(t, fault.ErrInstanceNotFound, err)

	_, err = b.GetComponentValue("farm", "apple", 0, "x")
	assert.Equal(t, fault.ErrInstanceNotFound, err)
}

func TestAddDefaultInstance(t *testing.T) {
	b := farm(t)

	nonce, err := b.AddDefaultInstance("farm", "apple")
	require.NoError(t, err)
	assert.Equal(t, uint64(3), nonce)

	tree, err := b.GetInstance("farm", "apple", 3)
	require.NoError(t, err)
	assert.Equal(t, blueprint.ComponentTree{
		"x": blueprint.Integer(0),
		"y": blueprint.Integer(0),
	}, tree)
}

func TestSetMismatchedType(t *testing.T) {
	b := farm(t)

	err := b.SetComponentValue("farm", "apple", 1, "x", blueprint.String("oops"))
	assert.Equal(t, fault.ErrMismatchedDataType, err)

	v, err := b.GetComponentValue("farm", "apple", 1, "x")
	require.NoError(t, err)
	assert.Equal(t, blueprint.Integer(0), v)

	err = b.SetComponentValue("farm", "apple", 1, "x", blueprint.Integer(9))
	require.NoError(t, err)
	v, _ = b.GetComponentValue("farm", "apple", 1, "x")
	assert.Equal(t, blueprint.Integer(9), v)
}

func TestAddInstanceUnknownRegion(t *testing.T) {
	b := farm(t)

	err := b.AddInstance("woods", "apple", blueprint.ComponentTree{
		"x": blueprint.Integer(0),
		"y": blueprint.Integer(0),
	})
	assert.Equal(t, fault.ErrRegionNotFound, err)
}

func TestAddInstanceSchema(t *testing.T) {
	b := farm(t)
	b.AddEntity("pear", blueprint.ComponentTypeTree{"ripe": "bool"})
	b.Preload([]string{"farm"}, []string{"pear"})

	// pear is not an allowed entity for farm
	err := b.AddInstance("farm", "pear", blueprint.ComponentTree{"ripe": blueprint.Boolean(true)})
	assert.Equal(t, fault.ErrEntityNotFound, err)

	err = b.AddInstance("farm", "plum", blueprint.ComponentTree{})
	assert.Equal(t, fault.ErrEntityNotFound, err)

	err = b.AddInstance("farm", "apple", blueprint.ComponentTree{"x": blueprint.Integer(0)})
	assert.Equal(t, fault.ErrComponentNotFound, err)

	err = b.AddInstance("farm", "apple", blueprint.ComponentTree{
		"x": blueprint.Integer(0),
		"y": blueprint.Integer(0),
		"z": blueprint.Integer(0),
	})
	assert.Equal(t, fault.ErrComponentNotFound, err)

	err = b.AddInstance("farm", "apple", blueprint.ComponentTree{
		"x": blueprint.Float(0),
		"y": blueprint.Integer(0),
	})
	assert.Equal(t, fault.ErrMismatchedDataType, err)

	assert.Len(t, b.Instances["farm"]["apple"], 2)
}

func TestUnsupportedType(t *testing.T) {
	b := blueprint.New("W", "D")
	b.Preload([]string{"farm"}, []string{"apple"})
	b.AddRegion("farm", []string{"apple"})
	b.AddEntity("apple", blueprint.ComponentTypeTree{"when": "datetime"})

	_, err := b.AddDefaultInstance("farm", "apple")
	assert.Equal(t, fault.ErrUnsupportedDataType, err)

	_, err = b.GetDefaultComponents("plum")
	assert.Equal(t, fault.ErrEntityNotFound, err)
}

func TestPreloadIdempotent(t *testing.T) {
	b := farm(t)
	b.Preload([]string{"farm", "woods"}, []string{"apple"})

	assert.Len(t, b.Instances["farm"]["apple"], 2)
	assert.Len(t, b.Instances["woods"]["apple"], 0)
}

func TestGetInstanceIsCopy(t *testing.T) {
	b := farm(t)

	tree, err := b.GetInstance("farm", "apple", 1)
	require.NoError(t, err)
	tree["x"] = blueprint.Integer(100)

	v, _ := b.GetComponentValue("farm", "apple", 1, "x")
	assert.Equal(t, blueprint.Integer(0), v)
}

func TestTuples(t *testing.T) {
	b := farm(t)

	expected := []blueprint.Tuple{
		{"farm", "apple", 1, "x", blueprint.Integer(0)},
		{"farm", "apple", 1, "y", blueprint.Integer(0)},
		{"farm", "apple", 2, "x", blueprint.Integer(1)},
		{"farm", "apple", 2, "y", blueprint.Integer(2)},
	}
	assert.Equal(t, expected, b.Tuples())
}

func TestComponentTreePack(t *testing.T) {
	tree := blueprint.ComponentTree{
		"name":  blueprint.String("Ωmega"),
		"hp":    blueprint.Integer(-7),
		"speed": blueprint.Float(2.25),
		"alive": blueprint.Boolean(true),
	}

	p := codec.Packed{}
	tree.Pack(&p)

	other := codec.Packed{}
	tree.Pack(&other)
	assert.Equal(t, p, other, "packing is deterministic")

	actual, err := blueprint.UnpackComponentTree(codec.NewReader(p))
	require.NoError(t, err)
	assert.Equal(t, tree, actual)

	_, err = blueprint.UnpackComponentTree(codec.NewReader(p[:len(p)-1]))
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	b := farm(t)

	buffer := &bytes.Buffer{}
	require.NoError(t, b.Render(buffer))

	s := buffer.String()
	assert.Contains(t, s, "World:")
	assert.Contains(t, s, "Instances:    2")
	assert.Contains(t, s, "x = 1, y = 2")
	assert.Contains(t, s, "apple   x          i64")
}

func TestDocument(t *testing.T) {
	d := farm(t).Document()

	assert.Equal(t, "W", d["name"])
	instances := d["instances"].(map[string]interface{})
	apples := instances["farm"].(map[string]interface{})["apple"].([]map[string]interface{})
	assert.Equal(t, int64(2), apples[1]["y"])
}
