// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"errors"
	"fmt"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// SyntaxError - a blueprint or manifest precondition that was not met,
// the message names the first failing condition
type SyntaxError GenericError

// common errors - keep in alphabetic order
var (
	ErrAccountAlreadyInitialised    = ExistsError("account already initialised")
	ErrAccountNotFound              = NotFoundError("account not found")
	ErrAccountNotWritable           = InvalidError("account not writable")
	ErrAddressMismatch              = InvalidError("derived address mismatch")
	ErrAlreadyInitialised           = ExistsError("already initialised")
	ErrAlreadyMigrated              = ExistsError("storage already migrated")
	ErrAlreadyProcessed             = ExistsError("transaction already processed")
	ErrBlockhashNotFound            = NotFoundError("blockhash not found")
	ErrCertificateFileAlreadyExists = ExistsError("certificate file already exists")
	ErrComponentNotFound            = NotFoundError("component not found")
	ErrConfigurationNotTable        = InvalidError("configuration must return a table")
	ErrDatabaseIsNotSet             = ProcessError("database is not set")
	ErrDatabaseNotEmpty             = ExistsError("not overwriting existing accounts")
	ErrDeleteNotSupported           = ProcessError("delete is not supported by this storage")
	ErrEntityNotFound               = NotFoundError("entity not found")
	ErrExternalAccountDataChanged   = InvalidError("data of an account not owned by the program was changed")
	ErrExternalLamportsSpent        = InvalidError("lamports of an account not owned by the program were spent")
	ErrFaucetLimitExceeded          = InvalidError("airdrop exceeds faucet limit")
	ErrIncorrectProgramID           = InvalidError("incorrect program id")
	ErrInstanceNotFound             = NotFoundError("instance not found")
	ErrInsufficientFunds            = InvalidError("insufficient funds")
	ErrInsufficientFundsForFee      = InvalidError("insufficient funds for fee")
	ErrInsufficientFundsForRent     = InvalidError("insufficient funds for rent")
	ErrInvalidAccountData           = InvalidError("invalid account data")
	ErrInvalidAccountOwner          = InvalidError("invalid account owner")
	ErrInvalidAddress               = InvalidError("invalid address")
	ErrInvalidBump                  = InvalidError("invalid bump seed")
	ErrInvalidCount                 = InvalidError("invalid count")
	ErrInvalidEndpoint              = InvalidError("invalid endpoint")
	ErrInvalidInstruction           = InvalidError("invalid instruction data")
	ErrInvalidIPAddress             = InvalidError("invalid IP address")
	ErrInvalidKeypair               = InvalidError("invalid keypair")
	ErrInvalidLength                = InvalidError("invalid length")
	ErrInvalidNonce                 = InvalidError("nonce is not the next free slot")
	ErrInvalidPathConversion        = InvalidError("error converting path to string")
	ErrInvalidSeeds                 = InvalidError("invalid seeds")
	ErrInvalidSignature             = InvalidError("invalid signature")
	ErrInvalidSnapshot              = InvalidError("invalid snapshot")
	ErrInvalidValue                 = InvalidError("invalid component value")
	ErrKeyFileAlreadyExists         = ExistsError("key file already exists")
	ErrKeypairNotFound              = NotFoundError("keypair not found")
	ErrLamportsNotConserved         = InvalidError("sum of account lamports changed")
	ErrMismatchedDataType           = InvalidError("mismatched data type")
	ErrMissingArgument              = InvalidError("expected argument")
	ErrMissingBlueprint             = NotFoundError("can't find Blueprint")
	ErrMissingParameters            = InvalidError("missing parameters")
	ErrMissingRequiredSignature     = InvalidError("missing required signature")
	ErrMissingTable                 = NotFoundError("expected table")
	ErrNotEnoughAccountKeys         = InvalidError("not enough account keys")
	ErrNotInitialised               = NotFoundError("account not initialised")
	ErrNotMigrated                  = ProcessError("storage is not migrated")
	ErrNotRushWorkspace             = NotFoundError("not in a Rush workspace")
	ErrNotTransactionPack           = InvalidError("not transaction pack")
	ErrRateLimiting                 = InvalidError("rate limiting")
	ErrReadonlyAccountModified      = InvalidError("read only account modified")
	ErrReallocTooLarge              = InvalidError("account data increase too large")
	ErrRegionNotFound               = NotFoundError("region not found")
	ErrTransactionDone              = ProcessError("batch already finished")
	ErrTransactionInUse             = ProcessError("batch already in use")
	ErrTransactionNotFound          = NotFoundError("transaction not found")
	ErrTransportFailed              = ProcessError("remote transport failed")
	ErrUnauthenticated              = InvalidError("unauthenticated")
	ErrUnauthorised                 = InvalidError("signer is not the authority")
	ErrUnknownProgram               = NotFoundError("unknown program")
	ErrUnsupportedDataType          = InvalidError("unsupported data type")
	ErrUnsupportedRepo              = InvalidError("unsupported repository")
	ErrWorldAlreadyExists           = ExistsError("world already exists")
	ErrWorldNotFound                = NotFoundError("world not found")
	ErrWorkspaceAlreadyExists       = ExistsError("workspace already exists")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e SyntaxError) Error() string   { return "Error parsing: " + string(e) }

// determine the class of an error, wrapped errors are unwrapped
func IsErrExists(e error) bool   { var x ExistsError; return errors.As(e, &x) }
func IsErrInvalid(e error) bool  { var x InvalidError; return errors.As(e, &x) }
func IsErrNotFound(e error) bool { var x NotFoundError; return errors.As(e, &x) }
func IsErrProcess(e error) bool  { var x ProcessError; return errors.As(e, &x) }
func IsErrSyntax(e error) bool   { var x SyntaxError; return errors.As(e, &x) }

// MissingTable - a required table is absent from a document
func MissingTable(name string) error {
	return fmt.Errorf("%w: %s", ErrMissingTable, name)
}

// UnsupportedRepo - the manifest names an unknown storage repository
func UnsupportedRepo(label string) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedRepo, label)
}

// MissingArgument - a required command argument was not supplied
func MissingArgument(name string) error {
	return fmt.Errorf("%w: %s", ErrMissingArgument, name)
}

// KeypairNotFound - no keypair file at the path
func KeypairNotFound(path string) error {
	return fmt.Errorf("%w: %s", ErrKeypairNotFound, path)
}
