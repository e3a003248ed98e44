// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - parse the Lua configuration file of rushd
//
// the file is a Lua chunk that returns a table; most of base Lua is
// available so values may be computed, read from files or taken from
// the environment with os.getenv
//
// paths are relative to data_directory; "." is the directory holding
// the configuration file
package configuration
