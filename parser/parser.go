// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package parser - compile a blueprint document into a Blueprint
//
// the document is validated first, the first unmet precondition is
// reported as a fault.SyntaxError naming it
package parser

import (
	"github.com/rush-ecs/rush/blueprint"
)

// Parser - converts one document format to a Blueprint
type Parser interface {
	Parse(document string) (*blueprint.Blueprint, error)
}
