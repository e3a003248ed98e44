// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blueprint

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Render - print the blueprint as a set of tables
func (b *Blueprint) Render(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	instances := 0
	for _, entities := range b.Instances {
		for _, sequence := range entities {
			instances += len(sequence)
		}
	}

	fmt.Fprintf(tw, "World:\t%s\n", b.Name)
	fmt.Fprintf(tw, "Description:\t%s\n", b.Description)
	fmt.Fprintf(tw, "Regions:\t%d\n", len(b.Regions))
	fmt.Fprintf(tw, "Entities:\t%d\n", len(b.Entities))
	fmt.Fprintf(tw, "Instances:\t%d\n", instances)
	fmt.Fprintf(tw, "\n")

	fmt.Fprintf(tw, "REGION\tENTITIES\n")
	for _, region := range b.SortedRegions() {
		fmt.Fprintf(tw, "%s\t%s\n", region, strings.Join(b.Regions[region], ", "))
	}
	fmt.Fprintf(tw, "\n")

	fmt.Fprintf(tw, "ENTITY\tCOMPONENT\tTYPE\n")
	for _, entity := range b.SortedEntities() {
		schema := b.Entities[entity]
		for _, component := range sortedKeys(schema) {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", entity, component, schema[component])
		}
	}
	fmt.Fprintf(tw, "\n")

	fmt.Fprintf(tw, "REGION\tENTITY\tNONCE\tCOMPONENTS\n")
	for _, region := range sortedKeys(b.Instances) {
		for _, entity := range sortedKeys(b.Instances[region]) {
			for i, tree := range b.Instances[region][entity] {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", region, entity, i+1, tree.Format())
			}
		}
	}

	return tw.Flush()
}

// Format - "k = v" pairs in component order
func (t ComponentTree) Format() string {
	pairs := make([]string, 0, len(t))
	for _, component := range t.Components() {
		pairs = append(pairs, component+" = "+t[component].String())
	}
	return strings.Join(pairs, ", ")
}

// Document - plain map form of the blueprint for generic encoders
func (b *Blueprint) Document() map[string]interface{} {
	regions := make(map[string]interface{}, len(b.Regions))
	for region, entities := range b.Regions {
		regions[region] = append([]string{}, entities...)
	}

	entities := make(map[string]interface{}, len(b.Entities))
	for entity, schema := range b.Entities {
		m := make(map[string]string, len(schema))
		for k, v := range schema {
			m[k] = v
		}
		entities[entity] = m
	}

	instances := make(map[string]interface{}, len(b.Instances))
	for region, byEntity := range b.Instances {
		r := make(map[string]interface{}, len(byEntity))
		for entity, sequence := range byEntity {
			list := make([]map[string]interface{}, 0, len(sequence))
			for _, tree := range sequence {
				m := make(map[string]interface{}, len(tree))
				for k, v := range tree {
					m[k] = v.Interface()
				}
				list = append(list, m)
			}
			r[entity] = list
		}
		instances[region] = r
	}

	return map[string]interface{}{
		"name":        b.Name,
		"description": b.Description,
		"regions":     regions,
		"entities":    entities,
		"instances":   instances,
	}
}
