// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/rush-ecs/rush/constants"
	"github.com/rush-ecs/rush/fault"
	"github.com/rush-ecs/rush/keypair"
	"github.com/rush-ecs/rush/manifest"
	"github.com/rush-ecs/rush/pda"
)

func TestNew(t *testing.T) {
	root := newWorkspace(t)

	for _, name := range []string{"Rush.toml", "blueprint/world.toml", ".gitignore"} {
		_, err := os.Stat(filepath.Join(root, name))
		assert.NoError(t, err, name)
	}

	_, err := run(t, "new", "--path", root, "sonic")
	assert.Equal(t, fault.ErrWorkspaceAlreadyExists, err)

	_, err = run(t, "new")
	assert.ErrorIs(t, err, fault.ErrMissingArgument)
}

func TestNewInDirectory(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, "--directory", dir, "new", "tails")
	require.NoError(t, err)
	assert.Contains(t, out, "tails")

	_, err = os.Stat(filepath.Join(dir, "tails", manifest.Filename))
	assert.NoError(t, err)
}

func TestNotWorkspace(t *testing.T) {
	_, err := run(t, "--directory", t.TempDir(), "view")
	assert.Equal(t, fault.ErrNotRushWorkspace, err)
}

func TestView(t *testing.T) {
	root := newWorkspace(t)

	// found from a nested directory
	nested := filepath.Join(root, "blueprint")
	out, err := run(t, "-C", nested, "view")
	require.NoError(t, err)
	assert.Contains(t, out, "sonic")
	assert.Contains(t, out, "This is sonic's world")
	assert.Contains(t, out, "REGION")
	assert.Contains(t, out, "speed")

	out, err = run(t, "-C", root, "view", "--format", "yaml")
	require.NoError(t, err)

	document := map[string]interface{}{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &document))
	assert.Equal(t, "sonic", document["name"])
	assert.Len(t, document["regions"], 2)

	_, err = run(t, "-C", root, "view", "--format", "xml")
	assert.ErrorIs(t, err, fault.ErrMissingArgument)
}

func TestDeployMemory(t *testing.T) {
	root := newWorkspace(t)

	out, err := run(t, "-C", root, "deploy")
	require.NoError(t, err)

	var result deployResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, manifest.Memory, result.Repository)
	assert.Equal(t, "sonic", result.World)
	assert.Equal(t, 2, result.Instances)
	assert.Nil(t, result.Address)
}

func TestDeployDryRun(t *testing.T) {
	root := newWorkspace(t)

	out, err := run(t, "-C", root, "deploy", "--dry-run")
	require.NoError(t, err)

	var plan deployPlan
	require.NoError(t, json.Unmarshal([]byte(out), &plan))

	world, _, err := pda.FindWorld(constants.StoreProgram, "sonic", "This is sonic's world")
	require.NoError(t, err)
	assert.Equal(t, world, plan.Address)
	assert.Equal(t, constants.StoreProgram, plan.Program)
	assert.Equal(t, []string{"farm", "house"}, plan.Regions)
	assert.Equal(t, []string{"apple", "player"}, plan.Entities)

	require.Len(t, plan.Instances, 2)
	assert.Equal(t, "apple", plan.Instances[0].Entity)
	assert.Equal(t, "player", plan.Instances[1].Entity)
	assert.Equal(t, "npc", plan.Instances[1].Components["name"])

	player, _, err := pda.FindInstance(constants.StoreProgram, world, "farm", "player", 1)
	require.NoError(t, err)
	assert.Equal(t, player, plan.Instances[1].Address)
}

func TestConfig(t *testing.T) {
	root := newWorkspace(t)

	out, err := run(t, "-C", root, "config", "get", "repository")
	require.NoError(t, err)
	assert.Equal(t, "memory\n", out)

	_, err = run(t, "-C", root, "config", "set", "rpc", "tls://10.1.1.1:2130")
	require.NoError(t, err)
	out, err = run(t, "-C", root, "config", "get", "rpc")
	require.NoError(t, err)
	assert.Equal(t, "tls://10.1.1.1:2130\n", out)

	out, err = run(t, "-C", root, "config", "get")
	require.NoError(t, err)
	settings := map[string]string{}
	require.NoError(t, json.Unmarshal([]byte(out), &settings))
	assert.Equal(t, "sonic", settings["name"])
	assert.Equal(t, constants.LocalWebsocket, settings["ws"])

	_, err = run(t, "-C", root, "config", "set", "repository", "redis")
	assert.ErrorIs(t, err, fault.ErrUnsupportedRepo)
	_, err = run(t, "-C", root, "config", "set", "rpc", "http://nowhere")
	assert.True(t, fault.IsErrSyntax(err))
	_, err = run(t, "-C", root, "config", "set", "colour")
	assert.ErrorIs(t, err, fault.ErrMissingArgument)
	_, err = run(t, "-C", root, "config", "get", "colour")
	assert.ErrorIs(t, err, fault.ErrMissingArgument)

	// rejected settings leave the file alone
	m, err := manifest.Load(filepath.Join(root, manifest.Filename))
	require.NoError(t, err)
	assert.Equal(t, "tls://10.1.1.1:2130", m.Solana.RPC)
	assert.Equal(t, manifest.Memory, m.Storage.Repository)
}

func TestConfigOverridesNotSaved(t *testing.T) {
	root := newWorkspace(t)
	t.Setenv(manifest.EnvRPC, "tcp://10.9.9.9:2130")

	out, err := run(t, "-C", root, "config", "get", "rpc")
	require.NoError(t, err)
	assert.Equal(t, "tcp://10.9.9.9:2130\n", out)

	_, err = run(t, "-C", root, "config", "set", "keypair", "keys/id.json")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(root, manifest.Filename))
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(data), "10.9.9.9"))
	assert.Contains(t, string(data), "keys/id.json")
}

func TestKeygen(t *testing.T) {
	file := filepath.Join(t.TempDir(), "keys", "id.json")

	out, err := run(t, "keygen", "--outfile", file)
	require.NoError(t, err)

	var result keygenResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))

	kp, err := keypair.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, kp.Address(), result.Address)

	_, err = run(t, "keygen", "--outfile", file)
	assert.ErrorIs(t, err, fault.ErrKeyFileAlreadyExists)
}

func TestMemoryData(t *testing.T) {
	root := newWorkspace(t)

	out, err := run(t, "-C", root, "create", "farm", "player")
	require.NoError(t, err)
	var created instanceResult
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	assert.Equal(t, uint64(2), created.Nonce)

	out, err = run(t, "-C", root, "get", "farm", "player", "1", "name")
	require.NoError(t, err)
	var got instanceResult
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "npc", got.Value)

	out, err = run(t, "-C", root, "set", "farm", "player", "1", "speed", "2.5")
	require.NoError(t, err)
	var set instanceResult
	require.NoError(t, json.Unmarshal([]byte(out), &set))
	assert.Equal(t, 2.5, set.Value)

	_, err = run(t, "-C", root, "set", "farm", "player", "1", "speed", "fast")
	assert.Equal(t, fault.ErrMismatchedDataType, err)
	_, err = run(t, "-C", root, "set", "farm", "player", "1", "colour", "red")
	assert.Equal(t, fault.ErrComponentNotFound, err)
	_, err = run(t, "-C", root, "set", "farm", "player", "1", "name")
	assert.ErrorIs(t, err, fault.ErrMissingArgument)
	_, err = run(t, "-C", root, "get", "farm", "player", "9", "name")
	assert.Equal(t, fault.ErrInstanceNotFound, err)
	_, err = run(t, "-C", root, "get", "farm", "player", "zero", "name")
	assert.Equal(t, fault.ErrInstanceNotFound, err)
	_, err = run(t, "-C", root, "create", "barn", "player")
	assert.Equal(t, fault.ErrRegionNotFound, err)
	_, err = run(t, "-C", root, "delete", "farm", "player", "1")
	assert.Equal(t, fault.ErrDeleteNotSupported, err)
}

func TestCheckLamports(t *testing.T) {
	n, err := checkLamports("1_000_000")
	require.NoError(t, err)
	assert.Equal(t, uint64(1000000), n)

	for _, bad := range []string{"0", "-1", "lots"} {
		_, err := checkLamports(bad)
		assert.ErrorIs(t, err, fault.ErrMissingArgument, bad)
	}
}
