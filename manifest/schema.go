// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package manifest

import (
	_ "embed"
	"encoding/json"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/rush-ecs/rush/fault"
)

const schemaURL = "manifest.json"

//go:embed schema.json
var schemaText string

var compiled struct {
	once   sync.Once
	schema *jsonschema.Schema
	err    error
}

func schema() (*jsonschema.Schema, error) {
	compiled.once.Do(func() {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020
		compiled.err = c.AddResource(schemaURL, strings.NewReader(schemaText))
		if nil != compiled.err {
			return
		}
		compiled.schema, compiled.err = c.Compile(schemaURL)
	})
	return compiled.schema, compiled.err
}

// Validate - check a decoded manifest document against the schema
func Validate(document map[string]interface{}) error {
	s, err := schema()
	if nil != err {
		return err
	}

	// the validator expects the types encoding/json produces
	buffer, err := json.Marshal(document)
	if nil != err {
		return err
	}
	var v interface{}
	err = json.Unmarshal(buffer, &v)
	if nil != err {
		return err
	}

	err = s.Validate(v)
	if nil != err {
		if ve, ok := err.(*jsonschema.ValidationError); ok {
			return fault.SyntaxError(leaf(ve).Error())
		}
		return fault.SyntaxError(err.Error())
	}
	return nil
}

// innermost cause, it names the offending key
func leaf(ve *jsonschema.ValidationError) *jsonschema.ValidationError {
	for 0 != len(ve.Causes) {
		ve = ve.Causes[0]
	}
	return ve
}
