// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blueprint_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rush-ecs/rush/blueprint"
	"github.com/rush-ecs/rush/codec"
	"github.com/rush-ecs/rush/fault"
)

func TestValueEqual(t *testing.T) {
	assert.True(t, blueprint.Integer(1).Equal(blueprint.Integer(1)))
	assert.False(t, blueprint.Integer(1).Equal(blueprint.Integer(2)))
	assert.False(t, blueprint.Integer(1).Equal(blueprint.Float(1)))
	assert.False(t, blueprint.String("true").Equal(blueprint.Boolean(true)))
	assert.False(t, blueprint.Float(math.NaN()).Equal(blueprint.Float(math.NaN())))
	assert.True(t, blueprint.Zero(blueprint.KindString).Equal(blueprint.String("")))
}

func TestValueUnwrap(t *testing.T) {
	s, err := blueprint.String("a").UnwrapString()
	require.NoError(t, err)
	assert.Equal(t, "a", s)

	_, err = blueprint.String("a").UnwrapInteger()
	assert.Equal(t, fault.ErrMismatchedDataType, err)

	f, err := blueprint.Float(0.5).UnwrapFloat()
	require.NoError(t, err)
	assert.Equal(t, 0.5, f)

	_, err = blueprint.Boolean(true).UnwrapFloat()
	assert.Equal(t, fault.ErrMismatchedDataType, err)

	b, err := blueprint.Boolean(true).UnwrapBoolean()
	require.NoError(t, err)
	assert.True(t, b)

	i, err := blueprint.Integer(-3).UnwrapInteger()
	require.NoError(t, err)
	assert.Equal(t, int64(-3), i)
}

func TestValueString(t *testing.T) {
	assert.Equal(t, `"farm"`, blueprint.String("farm").String())
	assert.Equal(t, "-12", blueprint.Integer(-12).String())
	assert.Equal(t, "3.0", blueprint.Float(3).String())
	assert.Equal(t, "0.25", blueprint.Float(0.25).String())
	assert.Equal(t, "false", blueprint.Boolean(false).String())
}

func TestKindOf(t *testing.T) {
	for _, k := range []blueprint.Kind{blueprint.KindString, blueprint.KindInteger, blueprint.KindFloat, blueprint.KindBoolean} {
		actual, err := blueprint.KindOf(k.TypeName())
		require.NoError(t, err)
		assert.Equal(t, k, actual)
	}

	_, err := blueprint.KindOf("u8")
	assert.Equal(t, fault.ErrUnsupportedDataType, err)
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		typeName string
		text     string
		expected blueprint.Value
		err      error
	}{
		{"String", "hello", blueprint.String("hello"), nil},
		{"i64", "42", blueprint.Integer(42), nil},
		{"i64", "4.2", blueprint.Value{}, fault.ErrMismatchedDataType},
		{"f64", "4.5", blueprint.Float(4.5), nil},
		{"bool", "true", blueprint.Boolean(true), nil},
		{"bool", "yes", blueprint.Value{}, fault.ErrMismatchedDataType},
		{"u32", "1", blueprint.Value{}, fault.ErrUnsupportedDataType},
	}

	for i, item := range tests {
		v, err := blueprint.ParseValue(item.typeName, item.text)
		assert.Equal(t, item.err, err, "%d: error", i)
		assert.Equal(t, item.expected, v, "%d: value", i)
	}
}

func TestValuePackLayout(t *testing.T) {
	p := codec.Packed{}
	blueprint.Integer(1).Pack(&p)
	assert.Equal(t, codec.Packed{1, 1, 0, 0, 0, 0, 0, 0, 0}, p)

	p = codec.Packed{}
	blueprint.String("ab").Pack(&p)
	assert.Equal(t, codec.Packed{0, 2, 'a', 'b'}, p)

	p = codec.Packed{}
	blueprint.Boolean(true).Pack(&p)
	assert.Equal(t, codec.Packed{3, 1}, p)

	_, err := blueprint.UnpackValue(codec.NewReader([]byte{9}))
	assert.Equal(t, fault.ErrUnsupportedDataType, err)
}
