// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package manifest

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/rush-ecs/rush/fault"
)

// EnvironmentFile - optional overrides next to the manifest
const EnvironmentFile = ".env"

// environment keys that override [solana]
const (
	EnvRPC       = "RUSH_RPC"
	EnvWebsocket = "RUSH_WEBSOCKET"
	EnvKeypair   = "RUSH_KEYPAIR"
	EnvStore     = "RUSH_STORE"
)

// LoadWorkspace - the manifest in a workspace root with environment
// overrides applied
//
// the process environment wins over the workspace .env file which wins
// over Rush.toml
func LoadWorkspace(root string) (*Manifest, error) {
	m, err := Load(filepath.Join(root, Filename))
	if nil != err {
		return nil, err
	}

	dotenv, err := godotenv.Read(filepath.Join(root, EnvironmentFile))
	if nil != err && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	m.Override(func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	})
	return m, nil
}

// Override - replace [solana] values by those lookup finds
func (m *Manifest) Override(lookup func(key string) (string, bool)) {
	if nil == m.Solana {
		return
	}
	for key, field := range map[string]*string{
		EnvRPC:       &m.Solana.RPC,
		EnvWebsocket: &m.Solana.Websocket,
		EnvKeypair:   &m.Solana.Keypair,
		EnvStore:     &m.Solana.Store,
	} {
		if v, ok := lookup(key); ok && "" != v {
			*field = v
		}
	}
}

// Set - change one setting by its command line name
func (m *Manifest) Set(key string, value string) error {
	if "" == value {
		return fault.MissingArgument(key)
	}

	switch key {
	case "blueprint":
		m.Workspace.Blueprint = value
		return nil
	case "repository":
		if Memory != value && Solana != value {
			return fault.UnsupportedRepo(value)
		}
		m.Storage.Repository = value
		return nil
	}

	if nil == m.Solana {
		return fault.MissingTable("solana")
	}
	switch key {
	case "rpc":
		m.Solana.RPC = value
	case "ws", "websocket":
		m.Solana.Websocket = value
	case "keypair":
		m.Solana.Keypair = value
	case "store":
		m.Solana.Store = value
	case "proxy":
		m.Solana.Proxy = value
	default:
		return fault.MissingArgument(key)
	}
	return nil
}

// Settings - every setting by its command line name
func (m *Manifest) Settings() map[string]string {
	s := map[string]string{
		"name":       m.Workspace.Name,
		"blueprint":  m.BlueprintPath(),
		"repository": m.Storage.Repository,
	}
	if nil != m.Solana {
		s["store"] = m.Solana.Store
		s["proxy"] = m.Solana.Proxy
		s["rpc"] = m.Solana.RPC
		s["ws"] = m.Solana.Websocket
		s["keypair"] = m.Solana.Keypair
	}
	return s
}
