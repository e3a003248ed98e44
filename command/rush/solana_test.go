// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rush-ecs/rush/account"
	"github.com/rush-ecs/rush/constants"
	"github.com/rush-ecs/rush/counter"
	"github.com/rush-ecs/rush/fault"
	"github.com/rush-ecs/rush/ledger"
	"github.com/rush-ecs/rush/manifest"
	"github.com/rush-ecs/rush/rpc/listeners"
	"github.com/rush-ecs/rush/rpc/pubsub"
	"github.com/rush-ecs/rush/rpc/server"
	"github.com/rush-ecs/rush/storage"
)

// start a node on loopback ports, returns the RPC endpoint and the
// subscription URL
func startNode(t *testing.T) (string, string) {
	database, err := storage.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(database.Close)

	b, err := ledger.New(database, ledger.Configuration{
		StoreProgram: constants.StoreProgram,
		ProxyProgram: constants.ProxyProgram,
	})
	require.NoError(t, err)

	log := logger.New("test")
	count := counter.Counter(0)
	l, err := listeners.NewRPC(&listeners.RPCConfiguration{
		MaximumConnections: 20,
		Listen:             []string{"127.0.0.1:0"},
	}, log, &count, server.Create(log, b, nil, "test", &count), nil)
	require.NoError(t, err)
	require.NoError(t, l.Serve())
	t.Cleanup(func() { _ = l.Close() })

	hub := pubsub.New(log)
	b.AddObserver(hub)
	h := httptest.NewServer(hub.Handler())
	t.Cleanup(h.Close)
	t.Cleanup(hub.Close)

	ws := "ws" + strings.TrimPrefix(h.URL, "http") + pubsub.Path
	return "tcp://" + l.Addresses()[0].String(), ws
}

// a workspace using the solana repository of a local node
func solanaWorkspace(t *testing.T) string {
	rpc, ws := startNode(t)
	root := newWorkspace(t)

	t.Setenv(manifest.EnvRPC, rpc)
	t.Setenv(manifest.EnvWebsocket, ws)
	t.Setenv(manifest.EnvKeypair, filepath.Join(root, "id.json"))

	_, err := run(t, "-C", root, "config", "set", "repository", "solana")
	require.NoError(t, err)
	_, err = run(t, "-C", root, "keygen")
	require.NoError(t, err)
	return root
}

func TestSolanaRoundTrip(t *testing.T) {
	root := solanaWorkspace(t)

	// nothing to pay with yet
	_, err := run(t, "-C", root, "deploy")
	assert.Equal(t, fault.ErrInsufficientFundsForFee, err)

	out, err := run(t, "-C", root, "airdrop", "2_000_000_000")
	require.NoError(t, err)
	var drop airdropResult
	require.NoError(t, json.Unmarshal([]byte(out), &drop))
	assert.Equal(t, uint64(2*ledger.LamportsPerSol), drop.Balance)

	// data commands need a deployed world
	_, err = run(t, "-C", root, "create", "farm", "player")
	assert.Equal(t, fault.ErrWorldNotFound, err)

	out, err = run(t, "-C", root, "deploy")
	require.NoError(t, err)
	var result deployResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, manifest.Solana, result.Repository)
	assert.Equal(t, 2, result.Instances)
	require.NotNil(t, result.Address)

	out, err = run(t, "-C", root, "deploy", "--dry-run")
	require.NoError(t, err)
	var plan deployPlan
	require.NoError(t, json.Unmarshal([]byte(out), &plan))
	assert.Equal(t, *result.Address, plan.Address)

	_, err = run(t, "-C", root, "deploy")
	assert.Equal(t, fault.ErrWorldAlreadyExists, err)

	out, err = run(t, "-C", root, "create", "farm", "player")
	require.NoError(t, err)
	var created instanceResult
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	assert.Equal(t, uint64(2), created.Nonce)

	out, err = run(t, "-C", root, "get", "farm", "player", "1", "name")
	require.NoError(t, err)
	var got instanceResult
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "npc", got.Value)

	_, err = run(t, "-C", root, "set", "farm", "player", "2", "speed", "1.5")
	require.NoError(t, err)
	out, err = run(t, "-C", root, "get", "farm", "player", "2", "speed")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 1.5, got.Value)

	_, err = run(t, "-C", root, "delete", "farm", "player", "2")
	require.NoError(t, err)
	_, err = run(t, "-C", root, "get", "farm", "player", "2", "speed")
	assert.Equal(t, fault.ErrInstanceNotFound, err)
}

func TestSolanaWatch(t *testing.T) {
	root := solanaWorkspace(t)

	_, err := run(t, "-C", root, "airdrop", "1000000000")
	require.NoError(t, err)
	_, err = run(t, "-C", root, "deploy")
	require.NoError(t, err)

	type outcome struct {
		out string
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		out, err := run(t, "-C", root, "watch", "--count", "1", "farm", "player", "1")
		done <- outcome{out, err}
	}()

	// keep changing the instance until the watcher has seen one change
	var o outcome
	timeout := time.After(10 * time.Second)
wait:
	for i := 1; ; i += 1 {
		_, err := run(t, "-C", root, "set", "farm", "player", "1", "x", fmt.Sprintf("%d.5", i))
		require.NoError(t, err)
		select {
		case o = <-done:
			break wait
		case <-timeout:
			t.Fatal("no change seen")
		case <-time.After(50 * time.Millisecond):
		}
	}

	require.NoError(t, o.err)
	var c accountChange
	require.NoError(t, json.Unmarshal([]byte(o.out), &c))
	assert.Equal(t, "instance", c.Record)
	assert.Equal(t, uint64(1), c.Nonce)
	assert.Equal(t, "npc", c.Values["name"])
}

func TestDescribe(t *testing.T) {
	n := &pubsub.Notification{
		Address: account.Address{1},
		Slot:    7,
	}
	assert.Equal(t, "closed", describe(constants.StoreProgram, n).Record)

	n.Data = []byte{1, 2, 3}
	n.Owner = account.SystemProgram
	assert.Equal(t, "unknown", describe(constants.StoreProgram, n).Record)

	n.Owner = constants.StoreProgram
	assert.Equal(t, "unknown", describe(constants.StoreProgram, n).Record)
}
