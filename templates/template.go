// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package templates - text written into a new workspace
package templates

const (
	/**** Blueprint template ****/
	WorldTemplate = `# {{.Name}} blueprint -*- mode: toml -*-

[world]
name = "{{.Name}}"
description = "{{.Description}}"
regions = ["farm", "house"]

[entity]
player = { name = "String", x = "f64", y = "f64", w = "f64", h = "f64", speed = "f64" }
apple = { x = "f64", y = "f64", w = "f64", h = "f64" }

[farm]
player = [{ name = "npc", x = 0.0, y = 0.0, w = 0.0, h = 0.0, speed = 0.0 }]
apple = [{ x = 0.0, y = 0.0, w = 0.0, h = 0.0 }]

[house]
player = []
`

	/**** Ignore template ****/
	IgnoreTemplate = `# local overrides of Rush.toml
.env
`
)
