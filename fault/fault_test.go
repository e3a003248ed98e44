// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rush-ecs/rush/fault"
)

var (
	ErrExistsOne   = fault.ExistsError("exists one ")
	ErrExistsTwo   = fault.ExistsError("exists two")
	ErrInvalidOne  = fault.InvalidError("invalid one")
	ErrInvalidTwo  = fault.InvalidError("invalid two")
	ErrNotFoundOne = fault.NotFoundError("not found one")
	ErrNotFoundTwo = fault.NotFoundError("not found two")
	ErrProcessOne  = fault.ProcessError("process one")
	ErrProcessTwo  = fault.ProcessError("process two")
	ErrSyntaxOne   = fault.SyntaxError("syntax one")
)

// test that various errors can be classified
func TestClassification(t *testing.T) {
	errorList := []struct {
		err      error
		exists   bool
		invalid  bool
		notFound bool
		process  bool
		syntax   bool
	}{
		{ErrExistsOne, true, false, false, false, false},
		{ErrExistsTwo, true, false, false, false, false},
		{ErrInvalidOne, false, true, false, false, false},
		{ErrInvalidTwo, false, true, false, false, false},
		{ErrNotFoundOne, false, false, true, false, false},
		{ErrNotFoundTwo, false, false, true, false, false},
		{ErrProcessOne, false, false, false, true, false},
		{ErrProcessTwo, false, false, false, true, false},
		{ErrSyntaxOne, false, false, false, false, true},
		{fmt.Errorf("wrapped: %w", ErrNotFoundOne), false, false, true, false, false},
		{fault.MissingTable("world"), false, false, true, false, false},
	}

	for i, e := range errorList {
		err := e.err
		assert.Equal(t, e.exists, fault.IsErrExists(err), "%d: exists for: %v", i, err)
		assert.Equal(t, e.invalid, fault.IsErrInvalid(err), "%d: invalid for: %v", i, err)
		assert.Equal(t, e.notFound, fault.IsErrNotFound(err), "%d: not found for: %v", i, err)
		assert.Equal(t, e.process, fault.IsErrProcess(err), "%d: process for: %v", i, err)
		assert.Equal(t, e.syntax, fault.IsErrSyntax(err), "%d: syntax for: %v", i, err)
	}
}

func TestParameterised(t *testing.T) {
	err := fault.MissingTable("entity")
	assert.True(t, errors.Is(err, fault.ErrMissingTable))
	assert.Equal(t, "expected table: entity", err.Error())

	err = fault.UnsupportedRepo("postgres")
	assert.True(t, errors.Is(err, fault.ErrUnsupportedRepo))
	assert.Equal(t, "unsupported repository: postgres", err.Error())

	err = fault.KeypairNotFound("/tmp/id.json")
	assert.True(t, errors.Is(err, fault.ErrKeypairNotFound))

	err = fault.MissingArgument("NAME")
	assert.Equal(t, "expected argument: NAME", err.Error())
}

func TestSyntaxMessage(t *testing.T) {
	err := fault.SyntaxError("World must have a name")
	assert.Equal(t, "Error parsing: World must have a name", err.Error())
}

func TestFind(t *testing.T) {
	assert.Equal(t, fault.ErrMismatchedDataType, fault.Find("mismatched data type"))
	assert.Equal(t, fault.ErrAddressMismatch, fault.Find("derived address mismatch: world"))
	assert.Equal(t, fault.ProcessError("connection reset"), fault.Find("connection reset"))
	assert.True(t, fault.IsErrProcess(fault.Find("something odd")))
}
