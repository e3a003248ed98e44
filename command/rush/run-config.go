// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli"

	"github.com/rush-ecs/rush/fault"
	"github.com/rush-ecs/rush/manifest"
)

func runConfigGet(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)
	settings := m.workspace.Manifest.Settings()

	key := strings.TrimSpace(c.Args().Get(0))
	if "" == key {
		return printJson(m.w, settings)
	}
	if "websocket" == key {
		key = "ws"
	}
	value, ok := settings[key]
	if !ok {
		return fault.MissingArgument(key)
	}
	fmt.Fprintln(m.w, value)
	return nil
}

func runConfigSet(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	arguments, err := checkArguments(c, "KEY", "VALUE")
	if nil != err {
		return err
	}
	key := arguments[0]
	value := arguments[1]

	// the file as written, environment overrides must not be saved
	path := m.workspace.ManifestPath()
	mf, err := manifest.Load(path)
	if nil != err {
		return err
	}
	err = mf.Set(key, value)
	if nil != err {
		return err
	}

	// reject what the next load would refuse
	b, err := mf.Bytes()
	if nil != err {
		return err
	}
	_, err = manifest.Parse(string(b))
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "updating config file: %s\n", path)
	}
	err = mf.Save(path)
	if nil != err {
		return err
	}
	fmt.Fprintf(m.w, "%s = %s\n", key, value)
	return nil
}
