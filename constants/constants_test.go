// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package constants_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rush-ecs/rush/constants"
)

func TestProgramIDs(t *testing.T) {
	assert.Equal(t, "RushStore1111111111111111111111111111111111", constants.StoreProgram.String())
	assert.Equal(t, "RushProxy1111111111111111111111111111111111", constants.ProxyProgram.String())
	assert.NotEqual(t, constants.StoreProgram, constants.ProxyProgram)
	assert.False(t, constants.StoreProgram.IsZero())
}
