// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"strconv"
	"strings"

	"github.com/urfave/cli"

	"github.com/rush-ecs/rush/blueprint"
	"github.com/rush-ecs/rush/fault"
)

// positional arguments in order, every one must be present and non-blank
func checkArguments(c *cli.Context, names ...string) ([]string, error) {
	values := make([]string, len(names))
	for i, name := range names {
		v := strings.TrimSpace(c.Args().Get(i))
		if "" == v {
			return nil, fault.MissingArgument(name)
		}
		values[i] = v
	}
	return values, nil
}

func checkNonce(nonce string) (uint64, error) {
	n, err := strconv.ParseUint(nonce, 10, 64)
	if nil != err || 0 == n {
		return 0, fault.ErrInstanceNotFound
	}
	return n, nil
}

func checkLamports(lamports string) (uint64, error) {
	n, err := strconv.ParseUint(strings.Replace(lamports, "_", "", -1), 10, 64)
	if nil != err || 0 == n {
		return 0, fault.MissingArgument("LAMPORTS")
	}
	return n, nil
}

// text to a value of the component's declared type
func checkValue(b *blueprint.Blueprint, entity string, component string, text string) (blueprint.Value, error) {
	schema, ok := b.Entities[entity]
	if !ok {
		return blueprint.Value{}, fault.ErrEntityNotFound
	}
	typeName, ok := schema[component]
	if !ok {
		return blueprint.Value{}, fault.ErrComponentNotFound
	}
	return blueprint.ParseValue(typeName, text)
}

func checkFormat(format string) (string, error) {
	switch format {
	case "", "table":
		return "table", nil
	case "yaml", "yml":
		return "yaml", nil
	default:
		return "", fault.MissingArgument("FORMAT")
	}
}
