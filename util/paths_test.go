// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rush-ecs/rush/util"
)

func TestEnsureAbsolute(t *testing.T) {
	assert.Equal(t, "/data/log", util.EnsureAbsolute("/data", "log"))
	assert.Equal(t, "/var/log", util.EnsureAbsolute("/data", "/var/log"))
	assert.Equal(t, "/data/x", util.EnsureAbsolute("/data", "./y/../x"))
}

func TestCanonicalize(t *testing.T) {
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	target := filepath.Join(dir, "world.toml")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0600))

	link := filepath.Join(dir, "link.toml")
	require.NoError(t, os.Symlink(target, link))

	p, err := util.Canonicalize(link)
	require.NoError(t, err)
	assert.Equal(t, target, p)

	assert.True(t, util.EnsureFileExists(target))

	_, err = util.Canonicalize(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
