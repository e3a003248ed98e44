// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"strings"
)

// every sentinel that may cross the RPC boundary
var known = []error{
	ErrAccountAlreadyInitialised,
	ErrAccountNotFound,
	ErrAccountNotWritable,
	ErrAddressMismatch,
	ErrAlreadyProcessed,
	ErrBlockhashNotFound,
	ErrComponentNotFound,
	ErrDatabaseIsNotSet,
	ErrEntityNotFound,
	ErrExternalAccountDataChanged,
	ErrExternalLamportsSpent,
	ErrFaucetLimitExceeded,
	ErrIncorrectProgramID,
	ErrInstanceNotFound,
	ErrWorldNotFound,
	ErrInsufficientFunds,
	ErrInsufficientFundsForFee,
	ErrInsufficientFundsForRent,
	ErrInvalidAccountData,
	ErrInvalidAccountOwner,
	ErrInvalidAddress,
	ErrInvalidBump,
	ErrInvalidCount,
	ErrInvalidInstruction,
	ErrInvalidNonce,
	ErrInvalidSeeds,
	ErrInvalidSignature,
	ErrLamportsNotConserved,
	ErrMismatchedDataType,
	ErrMissingParameters,
	ErrMissingRequiredSignature,
	ErrNotEnoughAccountKeys,
	ErrNotInitialised,
	ErrNotMigrated,
	ErrNotTransactionPack,
	ErrRateLimiting,
	ErrReadonlyAccountModified,
	ErrReallocTooLarge,
	ErrRegionNotFound,
	ErrTransactionNotFound,
	ErrUnauthenticated,
	ErrUnauthorised,
	ErrUnknownProgram,
	ErrUnsupportedDataType,
}

// Find - map an error message received from a remote peer back to the
// sentinel with that text
//
// a message may carry a context suffix ("<sentinel>: detail"), the
// detail is dropped; unknown messages become a ProcessError
func Find(message string) error {
	for _, e := range known {
		s := e.Error()
		if message == s || strings.HasPrefix(message, s+": ") {
			return e
		}
	}
	return ProcessError(message)
}
