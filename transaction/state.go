// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

// State - outcome of a submitted transaction
type State byte

// possible states for a transaction
const (
	UnknownTransaction   = State(0)
	ConfirmedTransaction = State('C')
	FailedTransaction    = State('F')
)

// Status - the recorded outcome of a processed transaction
type Status struct {
	State State  `json:"state"`
	Slot  uint64 `json:"slot"`
	Error string `json:"error,omitempty"`
}

func (state State) String() string {
	switch state {
	case ConfirmedTransaction:
		return "Confirmed"
	case FailedTransaction:
		return "Failed"
	default:
		return "Unknown"
	}
}

// MarshalText - state as text for JSON
//
// Note: each string _MUST_ start with a unique capital letter so a
// client only needs to test the first character
func (state State) MarshalText() ([]byte, error) {
	return []byte(state.String()), nil
}

// UnmarshalText - parse the text form
func (state *State) UnmarshalText(s []byte) error {
	*state = UnknownTransaction
	if 0 == len(s) {
		return nil
	}
	switch s[0] {
	case 'C':
		*state = ConfirmedTransaction
	case 'F':
		*state = FailedTransaction
	}
	return nil
}
