// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package loader - read a blueprint from a file or a directory of files
package loader

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rush-ecs/rush/blueprint"
	"github.com/rush-ecs/rush/parser"
	"github.com/rush-ecs/rush/util"
)

// Loader - reads a path and hands the text to a parser
type Loader struct {
	parser parser.Parser
}

// New - create a loader for a document format
func New(p parser.Parser) *Loader {
	return &Loader{parser: p}
}

// LoadBlueprint - read and parse a file or directory
func (l *Loader) LoadBlueprint(path string) (*blueprint.Blueprint, error) {
	document, err := ReadDocument(path)
	if nil != err {
		return nil, err
	}
	return l.parser.Parse(document)
}

// ReadDocument - the text of a file, or of every regular file in a
// directory in name order, each followed by two newlines
func ReadDocument(path string) (string, error) {
	canonical, err := util.Canonicalize(path)
	if nil != err {
		return "", err
	}

	info, err := os.Stat(canonical)
	if nil != err {
		return "", err
	}

	if !info.IsDir() {
		data, err := os.ReadFile(canonical)
		if nil != err {
			return "", err
		}
		return string(data), nil
	}

	entries, err := os.ReadDir(canonical)
	if nil != err {
		return "", err
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	var document strings.Builder
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(canonical, entry.Name()))
		if nil != err {
			return "", err
		}
		document.Write(data)
		document.WriteString("\n\n")
	}
	return document.String(), nil
}
