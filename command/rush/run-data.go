// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli"

	"github.com/rush-ecs/rush/fault"
)

type instanceResult struct {
	Region    string      `json:"region"`
	Entity    string      `json:"entity"`
	Nonce     uint64      `json:"nonce"`
	Component string      `json:"component,omitempty"`
	Value     interface{} `json:"value,omitempty"`
}

func runCreate(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	arguments, err := checkArguments(c, "REGION", "ENTITY")
	if nil != err {
		return err
	}
	region, entity := arguments[0], arguments[1]

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	b, err := openStorage(ctx, m.workspace, attach)
	if nil != err {
		return err
	}
	defer b.Close()

	nonce, err := b.storage.Create(ctx, region, entity)
	if nil != err {
		return err
	}
	return printJson(m.w, instanceResult{
		Region: region,
		Entity: entity,
		Nonce:  nonce,
	})
}

func runGet(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	arguments, err := checkArguments(c, "REGION", "ENTITY", "NONCE", "COMPONENT")
	if nil != err {
		return err
	}
	region, entity, component := arguments[0], arguments[1], arguments[3]
	nonce, err := checkNonce(arguments[2])
	if nil != err {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	b, err := openStorage(ctx, m.workspace, attach)
	if nil != err {
		return err
	}
	defer b.Close()

	v, err := b.storage.Get(ctx, region, entity, nonce, component)
	if nil != err {
		return err
	}
	if m.verbose {
		fmt.Fprintf(m.e, "type: %s\n", v.Kind().TypeName())
	}
	return printJson(m.w, instanceResult{
		Region:    region,
		Entity:    entity,
		Nonce:     nonce,
		Component: component,
		Value:     v.Interface(),
	})
}

func runSet(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	arguments, err := checkArguments(c, "REGION", "ENTITY", "NONCE", "COMPONENT")
	if nil != err {
		return err
	}
	if c.NArg() < 5 {
		return fault.MissingArgument("VALUE")
	}
	region, entity, component := arguments[0], arguments[1], arguments[3]
	nonce, err := checkNonce(arguments[2])
	if nil != err {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	b, err := openStorage(ctx, m.workspace, attach)
	if nil != err {
		return err
	}
	defer b.Close()

	// blank strings are allowed, so take VALUE untrimmed
	v, err := checkValue(b.storage.Blueprint(), entity, component, c.Args().Get(4))
	if nil != err {
		return err
	}
	err = b.storage.Set(ctx, region, entity, nonce, component, v)
	if nil != err {
		return err
	}
	return printJson(m.w, instanceResult{
		Region:    region,
		Entity:    entity,
		Nonce:     nonce,
		Component: component,
		Value:     v.Interface(),
	})
}

func runDelete(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	arguments, err := checkArguments(c, "REGION", "ENTITY", "NONCE")
	if nil != err {
		return err
	}
	region, entity := arguments[0], arguments[1]
	nonce, err := checkNonce(arguments[2])
	if nil != err {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	b, err := openStorage(ctx, m.workspace, attach)
	if nil != err {
		return err
	}
	defer b.Close()

	err = b.storage.Delete(ctx, region, entity, nonce)
	if nil != err {
		return err
	}
	return printJson(m.w, instanceResult{
		Region: region,
		Entity: entity,
		Nonce:  nonce,
	})
}
