// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"sort"

	"github.com/urfave/cli"

	"github.com/rush-ecs/rush/account"
	"github.com/rush-ecs/rush/blueprint"
	"github.com/rush-ecs/rush/pda"
	"github.com/rush-ecs/rush/store"
	"github.com/rush-ecs/rush/workspace"
)

type plannedInstance struct {
	Region     string                 `json:"region"`
	Entity     string                 `json:"entity"`
	Nonce      uint64                 `json:"nonce"`
	Address    account.Address        `json:"address"`
	Components map[string]interface{} `json:"components"`
}

type deployPlan struct {
	Repository string            `json:"repository"`
	Program    account.Address   `json:"program"`
	World      string            `json:"world"`
	Address    account.Address   `json:"address"`
	Regions    []string          `json:"regions"`
	Entities   []string          `json:"entities"`
	Instances  []plannedInstance `json:"instances"`
}

type deployResult struct {
	Repository string           `json:"repository"`
	World      string           `json:"world"`
	Address    *account.Address `json:"address,omitempty"`
	Instances  int              `json:"instances"`
}

func runDeploy(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)
	ws := m.workspace

	if c.Bool("dry-run") {
		plan, err := makePlan(ws)
		if nil != err {
			return err
		}
		return printJson(m.w, plan)
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	b, err := openStorage(ctx, ws, migrate)
	if nil != err {
		return err
	}
	defer b.Close()

	bp := b.storage.Blueprint()
	result := deployResult{
		Repository: ws.Manifest.Storage.Repository,
		World:      bp.Name,
		Instances:  countInstances(bp),
	}
	if l, ok := b.storage.(*store.Ledger); ok {
		address := l.WorldAddress()
		result.Address = &address
	}
	return printJson(m.w, result)
}

// makePlan - every record a migration would create, in creation order
func makePlan(ws *workspace.Workspace) (*deployPlan, error) {
	programID, err := storeProgram(ws)
	if nil != err {
		return nil, err
	}
	bp, err := ws.LoadBlueprint()
	if nil != err {
		return nil, err
	}
	world, _, err := pda.FindWorld(programID, bp.Name, bp.Description)
	if nil != err {
		return nil, err
	}

	plan := &deployPlan{
		Repository: ws.Manifest.Storage.Repository,
		Program:    programID,
		World:      bp.Name,
		Address:    world,
		Regions:    bp.SortedRegions(),
		Entities:   bp.SortedEntities(),
		Instances:  []plannedInstance{},
	}
	for _, region := range plan.Regions {
		byEntity := bp.Instances[region]
		entities := make([]string, 0, len(byEntity))
		for entity := range byEntity {
			entities = append(entities, entity)
		}
		sort.Strings(entities)

		for _, entity := range entities {
			for i, tree := range byEntity[entity] {
				nonce := uint64(i + 1)
				address, _, err := pda.FindInstance(programID, world, region, entity, nonce)
				if nil != err {
					return nil, err
				}
				plan.Instances = append(plan.Instances, plannedInstance{
					Region:     region,
					Entity:     entity,
					Nonce:      nonce,
					Address:    address,
					Components: components(tree),
				})
			}
		}
	}
	return plan, nil
}

func countInstances(bp *blueprint.Blueprint) int {
	n := 0
	for _, byEntity := range bp.Instances {
		for _, sequence := range byEntity {
			n += len(sequence)
		}
	}
	return n
}

func components(tree blueprint.ComponentTree) map[string]interface{} {
	m := make(map[string]interface{}, len(tree))
	for k, v := range tree {
		m[k] = v.Interface()
	}
	return m
}
