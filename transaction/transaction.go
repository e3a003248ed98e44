// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"github.com/rush-ecs/rush/account"
	"github.com/rush-ecs/rush/codec"
	"github.com/rush-ecs/rush/fault"
	"github.com/rush-ecs/rush/instruction"
	"github.com/rush-ecs/rush/keypair"
)

// limits on a single transaction
const (
	MaximumInstructions = 64
	MaximumSignatures   = 16
)

// Message - the signed part of a transaction
type Message struct {
	FeePayer        account.Address           `json:"fee_payer"`
	RecentBlockhash Hash                      `json:"recent_blockhash"`
	Instructions    []instruction.Instruction `json:"instructions"`
}

// Transaction - a message and its signatures
type Transaction struct {
	Signatures []account.Signature `json:"signatures"`
	Message    Message             `json:"message"`
}

// New - unsigned transaction paid for by feePayer
func New(feePayer account.Address, blockhash Hash, instructions ...instruction.Instruction) *Transaction {
	return &Transaction{
		Message: Message{
			FeePayer:        feePayer,
			RecentBlockhash: blockhash,
			Instructions:    instructions,
		},
	}
}

// Pack - the bytes that are signed
func (m *Message) Pack() codec.Packed {
	p := codec.Packed{}
	p.Fixed(m.FeePayer[:])
	p.Fixed(m.RecentBlockhash[:])
	p.Varint(uint64(len(m.Instructions)))
	for i := range m.Instructions {
		m.Instructions[i].Pack(&p)
	}
	return p
}

// Signers - the fee payer followed by every signing account in order
// of first appearance
func (m *Message) Signers() []account.Address {
	signers := []account.Address{m.FeePayer}
	seen := map[account.Address]struct{}{m.FeePayer: {}}
	for _, ix := range m.Instructions {
		for _, meta := range ix.Accounts {
			if !meta.IsSigner {
				continue
			}
			if _, ok := seen[meta.Address]; ok {
				continue
			}
			seen[meta.Address] = struct{}{}
			signers = append(signers, meta.Address)
		}
	}
	return signers
}

// AccountKeys - every account the message touches with the union of
// its roles, fee payer first then order of first appearance; program
// ids are not included
func (m *Message) AccountKeys() []instruction.Meta {
	keys := []instruction.Meta{instruction.Signer(m.FeePayer)}
	index := map[account.Address]int{m.FeePayer: 0}
	for _, ix := range m.Instructions {
		for _, meta := range ix.Accounts {
			i, ok := index[meta.Address]
			if !ok {
				index[meta.Address] = len(keys)
				keys = append(keys, meta)
				continue
			}
			keys[i].IsSigner = keys[i].IsSigner || meta.IsSigner
			keys[i].IsWritable = keys[i].IsWritable || meta.IsWritable
		}
	}
	return keys
}

// Sign - add signatures from the given keys; every required signer
// must be covered once all keys have been applied
func (tx *Transaction) Sign(keys ...*keypair.KeyPair) error {
	signers := tx.Message.Signers()
	if len(tx.Signatures) != len(signers) {
		tx.Signatures = make([]account.Signature, len(signers))
	}

	message := tx.Message.Pack()
	for _, kp := range keys {
		found := false
		for i, s := range signers {
			if s == kp.Address() {
				tx.Signatures[i] = kp.Sign(message)
				found = true
			}
		}
		if !found {
			return fault.ErrInvalidKeypair
		}
	}

	for i := range tx.Signatures {
		if (account.Signature{}) == tx.Signatures[i] {
			return fault.ErrMissingRequiredSignature
		}
	}
	return nil
}

// Verify - one valid signature per required signer
func (tx *Transaction) Verify() error {
	signers := tx.Message.Signers()
	if len(tx.Signatures) != len(signers) {
		return fault.ErrMissingRequiredSignature
	}
	message := tx.Message.Pack()
	for i, s := range signers {
		err := s.CheckSignature(message, tx.Signatures[i])
		if nil != err {
			return err
		}
	}
	return nil
}

// ID - the first signature
func (tx *Transaction) ID() account.Signature {
	if 0 == len(tx.Signatures) {
		return account.Signature{}
	}
	return tx.Signatures[0]
}

// Pack - signatures followed by the message
func (tx *Transaction) Pack() codec.Packed {
	p := codec.Packed{}
	p.Varint(uint64(len(tx.Signatures)))
	for _, s := range tx.Signatures {
		p.Fixed(s[:])
	}
	return append(p, tx.Message.Pack()...)
}

// Unpack - decode a packed transaction, trailing bytes are an error
func Unpack(buffer []byte) (*Transaction, error) {
	r := codec.NewReader(buffer)

	tx := &Transaction{}
	n := r.Count(MaximumSignatures)
	tx.Signatures = make([]account.Signature, n)
	for i := 0; i < n && nil == r.Err(); i += 1 {
		copy(tx.Signatures[i][:], r.Fixed(account.SignatureLength))
	}

	copy(tx.Message.FeePayer[:], r.Fixed(account.AddressLength))
	copy(tx.Message.RecentBlockhash[:], r.Fixed(HashLength))

	n = r.Count(MaximumInstructions)
	tx.Message.Instructions = make([]instruction.Instruction, 0, n)
	for i := 0; i < n && nil == r.Err(); i += 1 {
		tx.Message.Instructions = append(tx.Message.Instructions, instruction.UnpackInstruction(r))
	}

	if nil != r.Err() || 0 != r.Remaining() {
		return nil, fault.ErrNotTransactionPack
	}
	return tx, nil
}
