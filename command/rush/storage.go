// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rush-ecs/rush/account"
	"github.com/rush-ecs/rush/constants"
	"github.com/rush-ecs/rush/fault"
	"github.com/rush-ecs/rush/keypair"
	"github.com/rush-ecs/rush/manifest"
	"github.com/rush-ecs/rush/rpc/client"
	"github.com/rush-ecs/rush/store"
	"github.com/rush-ecs/rush/workspace"
)

// bound on a whole command talking to a node
const commandTimeout = 5 * time.Minute

// how a backend is made ready
type readiness int

const (
	attach readiness = iota
	migrate
)

// backend - an open storage and the connection it holds
type backend struct {
	storage store.Storage
	client  *client.Client
}

func (b *backend) Close() {
	if nil != b.client {
		b.client.Close()
	}
}

// openStorage - the storage selected by Rush.toml, made ready
//
// the memory repository always migrates the local blueprint; a solana
// repository either migrates or attaches to the deployed world
func openStorage(ctx context.Context, ws *workspace.Workspace, ready readiness) (*backend, error) {
	switch ws.Manifest.Storage.Repository {
	case manifest.Memory:
		m := store.NewMemory(ws.BlueprintPath())
		err := m.Migrate(ctx)
		if nil != err {
			return nil, err
		}
		return &backend{storage: m}, nil

	case manifest.Solana:
		programID, err := storeProgram(ws)
		if nil != err {
			return nil, err
		}
		signer, err := keypair.ReadFile(ws.KeypairPath())
		if nil != err {
			return nil, err
		}
		cl, err := dial(ctx, ws)
		if nil != err {
			return nil, err
		}
		l, err := store.NewLedger(programID, signer, cl, ws.BlueprintPath())
		if nil != err {
			cl.Close()
			return nil, err
		}
		if migrate == ready {
			err = l.Migrate(ctx)
		} else {
			err = l.Connect(ctx)
		}
		if nil != err {
			cl.Close()
			return nil, err
		}
		return &backend{storage: l, client: cl}, nil

	default:
		return nil, fault.UnsupportedRepo(ws.Manifest.Storage.Repository)
	}
}

// dial - RPC connection to the node of the solana section
func dial(ctx context.Context, ws *workspace.Workspace) (*client.Client, error) {
	chain := ws.Manifest.Solana
	if nil == chain {
		return nil, fault.MissingTable("solana")
	}
	return client.Dial(ctx, chain.RPC, nil)
}

// store program id, the development node's when not configured
func storeProgram(ws *workspace.Workspace) (account.Address, error) {
	chain := ws.Manifest.Solana
	if nil == chain || "" == chain.Store {
		return constants.StoreProgram, nil
	}
	address, err := account.AddressFromBase58(chain.Store)
	if nil != err {
		return account.Address{}, fmt.Errorf("%w: store: %s", fault.ErrInvalidAddress, chain.Store)
	}
	return address, nil
}

func websocketURL(ws *workspace.Workspace) string {
	chain := ws.Manifest.Solana
	if nil == chain || "" == chain.Websocket {
		return constants.LocalWebsocket
	}
	return chain.Websocket
}
