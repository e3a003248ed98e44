// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package manifest - the Rush.toml workspace manifest
//
//	[workspace]
//	name = "sonic"
//
//	[storage]
//	repository = "solana"
//
//	[solana]
//	store = "<base58 program id>"
//	rpc = "tcp://127.0.0.1:2130"
//	websocket = "ws://127.0.0.1:2140/subscribe"
//	keypair = "~/.config/solana/id.json"
package manifest

import (
	"bytes"
	"os"

	"github.com/pelletier/go-toml"

	"github.com/rush-ecs/rush/fault"
)

// Filename - name of the manifest in a workspace root
const Filename = "Rush.toml"

// DefaultBlueprint - blueprint directory when the manifest names none
const DefaultBlueprint = "blueprint"

// repositories
const (
	Memory = "memory"
	Solana = "solana"
)

// Workspace - [workspace] table
type Workspace struct {
	Name      string `toml:"name"`
	Blueprint string `toml:"blueprint,omitempty"`
}

// Storage - [storage] table
type Storage struct {
	Repository string `toml:"repository"`
}

// Chain - [solana] table
type Chain struct {
	Store     string `toml:"store"`
	Proxy     string `toml:"proxy,omitempty"`
	RPC       string `toml:"rpc"`
	Websocket string `toml:"websocket,omitempty"`
	Keypair   string `toml:"keypair"`
}

// Manifest - a parsed Rush.toml
type Manifest struct {
	Workspace Workspace `toml:"workspace"`
	Storage   Storage   `toml:"storage"`
	Solana    *Chain    `toml:"solana,omitempty"`
}

// New - manifest of a fresh workspace
func New(name string, repository string, chain *Chain) *Manifest {
	return &Manifest{
		Workspace: Workspace{Name: name},
		Storage:   Storage{Repository: repository},
		Solana:    chain,
	}
}

// Load - read and parse a manifest file
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if nil != err {
		return nil, err
	}
	return Parse(string(data))
}

// Parse - check the tables a manifest must have, validate against
// the schema then decode
func Parse(document string) (*Manifest, error) {
	tree, err := toml.Load(document)
	if nil != err {
		return nil, fault.SyntaxError(err.Error())
	}

	workspace, ok := tree.Get("workspace").(*toml.Tree)
	if !ok {
		return nil, fault.MissingTable("workspace")
	}
	if !workspace.Has("name") {
		return nil, fault.SyntaxError("Workspace must have a name")
	}

	storage, ok := tree.Get("storage").(*toml.Tree)
	if !ok {
		return nil, fault.MissingTable("storage")
	}
	label, _ := storage.Get("repository").(string)
	switch label {
	case Memory:
	case Solana:
		if _, ok := tree.Get("solana").(*toml.Tree); !ok {
			return nil, fault.MissingTable("solana")
		}
	default:
		return nil, fault.UnsupportedRepo(label)
	}

	err = Validate(tree.ToMap())
	if nil != err {
		return nil, err
	}

	m := &Manifest{}
	err = tree.Unmarshal(m)
	if nil != err {
		return nil, fault.SyntaxError(err.Error())
	}
	return m, nil
}

// BlueprintPath - blueprint directory relative to the workspace root
func (m *Manifest) BlueprintPath() string {
	if "" == m.Workspace.Blueprint {
		return DefaultBlueprint
	}
	return m.Workspace.Blueprint
}

// Bytes - TOML text of the manifest
func (m *Manifest) Bytes() ([]byte, error) {
	var buffer bytes.Buffer
	err := toml.NewEncoder(&buffer).Order(toml.OrderPreserve).Encode(m)
	if nil != err {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// Save - write the manifest, replacing any existing file
func (m *Manifest) Save(path string) error {
	data, err := m.Bytes()
	if nil != err {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
