// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package workspace - create and locate Rush workspaces
//
// a workspace is a directory holding Rush.toml and a blueprint
// directory, by default "blueprint/world.toml"
package workspace

import (
	"os"
	"path/filepath"
	"text/template"

	"github.com/rush-ecs/rush/blueprint"
	"github.com/rush-ecs/rush/constants"
	"github.com/rush-ecs/rush/fault"
	"github.com/rush-ecs/rush/loader"
	"github.com/rush-ecs/rush/manifest"
	"github.com/rush-ecs/rush/parser"
	"github.com/rush-ecs/rush/templates"
	"github.com/rush-ecs/rush/util"
)

// file names inside a workspace
const (
	WorldFile  = "world.toml"
	IgnoreFile = ".gitignore"
)

// Workspace - a located workspace
type Workspace struct {
	Root     string
	Manifest *manifest.Manifest
}

type sample struct {
	Name        string
	Description string
}

// New - write the skeleton of a workspace into root, creating it if
// needed
//
// the manifest selects the memory repository with the solana section
// filled in for a local node
func New(name string, root string) (*Workspace, error) {
	if "" == name {
		return nil, fault.MissingArgument("NAME")
	}

	manifestPath := filepath.Join(root, manifest.Filename)
	if util.EnsureFileExists(manifestPath) {
		return nil, fault.ErrWorkspaceAlreadyExists
	}

	blueprintDirectory := filepath.Join(root, manifest.DefaultBlueprint)
	err := os.MkdirAll(blueprintDirectory, 0o755)
	if nil != err {
		return nil, err
	}

	m := manifest.New(name, manifest.Memory, &manifest.Chain{
		Store:     constants.StoreProgram.String(),
		Proxy:     constants.ProxyProgram.String(),
		RPC:       constants.LocalRPC,
		Websocket: constants.LocalWebsocket,
		Keypair:   constants.DefaultKeypair,
	})
	err = m.Save(manifestPath)
	if nil != err {
		return nil, err
	}

	err = render(filepath.Join(blueprintDirectory, WorldFile), templates.WorldTemplate, sample{
		Name:        name,
		Description: "This is " + name + "'s world",
	})
	if nil != err {
		return nil, err
	}
	err = render(filepath.Join(root, IgnoreFile), templates.IgnoreTemplate, nil)
	if nil != err {
		return nil, err
	}

	absolute, err := filepath.Abs(root)
	if nil != err {
		return nil, fault.ErrInvalidPathConversion
	}
	return &Workspace{Root: absolute, Manifest: m}, nil
}

// Find - the workspace containing dir, searching upwards
//
// fails with NotRushWorkspace when no parent holds Rush.toml and with
// MissingBlueprint when the blueprint directory is absent or empty
func Find(dir string) (*Workspace, error) {
	current, err := filepath.Abs(dir)
	if nil != err {
		return nil, fault.ErrInvalidPathConversion
	}

	for !util.EnsureFileExists(filepath.Join(current, manifest.Filename)) {
		parent := filepath.Dir(current)
		if parent == current {
			return nil, fault.ErrNotRushWorkspace
		}
		current = parent
	}

	m, err := manifest.LoadWorkspace(current)
	if nil != err {
		return nil, err
	}
	w := &Workspace{Root: current, Manifest: m}

	entries, err := os.ReadDir(w.BlueprintPath())
	if nil != err {
		info, serr := os.Stat(w.BlueprintPath())
		if nil == serr && !info.IsDir() {
			return w, nil
		}
		return nil, fault.ErrMissingBlueprint
	}
	if 0 == len(entries) {
		return nil, fault.ErrMissingBlueprint
	}
	return w, nil
}

// BlueprintPath - absolute path of the blueprint file or directory
func (w *Workspace) BlueprintPath() string {
	return util.EnsureAbsolute(w.Root, w.Manifest.BlueprintPath())
}

// KeypairPath - keypair file of the solana section, relative paths are
// taken from the workspace root
func (w *Workspace) KeypairPath() string {
	if nil == w.Manifest.Solana || "" == w.Manifest.Solana.Keypair {
		return constants.DefaultKeypair
	}
	k := w.Manifest.Solana.Keypair
	if len(k) >= 2 && "~/" == k[:2] {
		return k
	}
	return util.EnsureAbsolute(w.Root, k)
}

// LoadBlueprint - parse the workspace blueprint
func (w *Workspace) LoadBlueprint() (*blueprint.Blueprint, error) {
	return loader.New(parser.TOML{}).LoadBlueprint(w.BlueprintPath())
}

// ManifestPath - absolute path of Rush.toml
func (w *Workspace) ManifestPath() string {
	return filepath.Join(w.Root, manifest.Filename)
}

func render(path string, text string, data interface{}) error {
	t, err := template.New(filepath.Base(path)).Parse(text)
	if nil != err {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if nil != err {
		return err
	}
	err = t.Execute(f, data)
	if nil != err {
		f.Close()
		return err
	}
	return f.Close()
}
