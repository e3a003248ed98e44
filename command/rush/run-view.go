// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli"
	"gopkg.in/yaml.v3"

	"github.com/rush-ecs/rush/blueprint"
)

func runView(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	format, err := checkFormat(c.String("format"))
	if nil != err {
		return err
	}

	ws := m.workspace
	b, err := ws.LoadBlueprint()
	if nil != err {
		return err
	}
	err = display(m.w, b, format)
	if nil != err {
		return err
	}

	if !c.Bool("watch") {
		return nil
	}

	change := make(chan struct{}, 1)
	remove := make(chan struct{}, 1)
	watcher, err := newBlueprintWatcher(ws.BlueprintPath(), change, remove)
	if nil != err {
		return err
	}
	defer watcher.Close()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(ch)

	if m.verbose {
		fmt.Fprintf(m.e, "watching: %s\n", ws.BlueprintPath())
	}

	for {
		select {
		case <-ch:
			return nil
		case <-remove:
			return fmt.Errorf("blueprint removed: %s", ws.BlueprintPath())
		case <-change:
			b, err := ws.LoadBlueprint()
			if nil != err {
				// keep watching, the file may be half written
				fmt.Fprintf(m.e, "error: %s\n", err)
				continue
			}
			fmt.Fprintln(m.w)
			err = display(m.w, b, format)
			if nil != err {
				return err
			}
		}
	}
}

func display(w io.Writer, b *blueprint.Blueprint, format string) error {
	if "yaml" != format {
		return b.Render(w)
	}
	e := yaml.NewEncoder(w)
	e.SetIndent(2)
	err := e.Encode(b.Document())
	if nil != err {
		return err
	}
	return e.Close()
}
