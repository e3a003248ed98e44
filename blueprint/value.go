// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blueprint

import (
	"strconv"
	"strings"

	"github.com/rush-ecs/rush/codec"
	"github.com/rush-ecs/rush/fault"
)

// Kind - the arm of a component value
//
// the numeric values are the tags written by Pack
type Kind uint8

// value arms
const (
	KindString  Kind = 0
	KindInteger Kind = 1
	KindFloat   Kind = 2
	KindBoolean Kind = 3
)

// component type names accepted in entity schemas
const (
	TypeString  = "String"
	TypeInteger = "i64"
	TypeFloat   = "f64"
	TypeBoolean = "bool"
)

// TypeName - the schema type name of the arm
func (k Kind) TypeName() string {
	switch k {
	case KindString:
		return TypeString
	case KindInteger:
		return TypeInteger
	case KindFloat:
		return TypeFloat
	case KindBoolean:
		return TypeBoolean
	default:
		return "unknown"
	}
}

// KindOf - the arm declared by a schema type name
func KindOf(typeName string) (Kind, error) {
	switch typeName {
	case TypeString:
		return KindString, nil
	case TypeInteger:
		return KindInteger, nil
	case TypeFloat:
		return KindFloat, nil
	case TypeBoolean:
		return KindBoolean, nil
	default:
		return 0, fault.ErrUnsupportedDataType
	}
}

// Value - a tagged scalar held by a component
type Value struct {
	kind Kind
	s    string
	i    int64
	f    float64
	b    bool
}

// String - construct a string value
func String(s string) Value { return Value{kind: KindString, s: s} }

// Integer - construct a 64 bit integer value
func Integer(i int64) Value { return Value{kind: KindInteger, i: i} }

// Float - construct a 64 bit float value
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Boolean - construct a boolean value
func Boolean(b bool) Value { return Value{kind: KindBoolean, b: b} }

// Zero - the zero value of an arm
func Zero(k Kind) Value { return Value{kind: k} }

// Kind - which arm the value holds
func (v Value) Kind() Kind { return v.kind }

// SameKind - true if both values hold the same arm
func (v Value) SameKind(other Value) bool { return v.kind == other.kind }

// Equal - same arm and same payload
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.s == other.s
	case KindInteger:
		return v.i == other.i
	case KindFloat:
		return v.f == other.f
	case KindBoolean:
		return v.b == other.b
	}
	return false
}

// UnwrapString - the payload of a String value
func (v Value) UnwrapString() (string, error) {
	if KindString != v.kind {
		return "", fault.ErrMismatchedDataType
	}
	return v.s, nil
}

// UnwrapInteger - the payload of an Integer value
func (v Value) UnwrapInteger() (int64, error) {
	if KindInteger != v.kind {
		return 0, fault.ErrMismatchedDataType
	}
	return v.i, nil
}

// UnwrapFloat - the payload of a Float value
func (v Value) UnwrapFloat() (float64, error) {
	if KindFloat != v.kind {
		return 0, fault.ErrMismatchedDataType
	}
	return v.f, nil
}

// UnwrapBoolean - the payload of a Boolean value
func (v Value) UnwrapBoolean() (bool, error) {
	if KindBoolean != v.kind {
		return false, fault.ErrMismatchedDataType
	}
	return v.b, nil
}

// Interface - the payload as a plain Go value
func (v Value) Interface() interface{} {
	switch v.kind {
	case KindString:
		return v.s
	case KindInteger:
		return v.i
	case KindFloat:
		return v.f
	default:
		return v.b
	}
}

// String - literal form of the value, strings are quoted
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return strconv.Quote(v.s)
	case KindInteger:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		s := strconv.FormatFloat(v.f, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eEnN") {
			s += ".0"
		}
		return s
	default:
		return strconv.FormatBool(v.b)
	}
}

// ParseValue - convert command line text to a value of a schema type
func ParseValue(typeName string, text string) (Value, error) {
	kind, err := KindOf(typeName)
	if nil != err {
		return Value{}, err
	}
	switch kind {
	case KindString:
		return String(text), nil
	case KindInteger:
		i, err := strconv.ParseInt(text, 10, 64)
		if nil != err {
			return Value{}, fault.ErrMismatchedDataType
		}
		return Integer(i), nil
	case KindFloat:
		f, err := strconv.ParseFloat(text, 64)
		if nil != err {
			return Value{}, fault.ErrMismatchedDataType
		}
		return Float(f), nil
	default:
		b, err := strconv.ParseBool(text)
		if nil != err {
			return Value{}, fault.ErrMismatchedDataType
		}
		return Boolean(b), nil
	}
}

// Pack - append arm tag and payload
func (v Value) Pack(p *codec.Packed) {
	p.Byte(byte(v.kind))
	switch v.kind {
	case KindString:
		p.String(v.s)
	case KindInteger:
		p.Int64(v.i)
	case KindFloat:
		p.Float64(v.f)
	case KindBoolean:
		p.Bool(v.b)
	}
}

// UnpackValue - read arm tag and payload
func UnpackValue(r *codec.Reader) (Value, error) {
	tag := Kind(r.Byte())
	var v Value
	switch tag {
	case KindString:
		v = String(r.String())
	case KindInteger:
		v = Integer(r.Int64())
	case KindFloat:
		v = Float(r.Float64())
	case KindBoolean:
		v = Boolean(r.Bool())
	default:
		if nil == r.Err() {
			return Value{}, fault.ErrUnsupportedDataType
		}
	}
	if err := r.Err(); nil != err {
		return Value{}, err
	}
	return v, nil
}
