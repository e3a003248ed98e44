// SPDX-License-Identifier: ISC
// Copyright (c) 2026 The Rush ECS Authors
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

// StorageOverhead - bytes charged for every account on top of its data
const StorageOverhead = 128

// Rent - parameters of the rent exemption rule
type Rent struct {
	LamportsPerByteYear uint64 `gluamapper:"lamports_per_byte_year" json:"lamports_per_byte_year"`
	ExemptionThreshold  uint64 `gluamapper:"exemption_threshold" json:"exemption_threshold"`
}

// DefaultRent - the usual ledger rent parameters
var DefaultRent = Rent{
	LamportsPerByteYear: 3480,
	ExemptionThreshold:  2,
}

// MinimumBalance - lamports an account holding size bytes of data needs
// to be exempt from rent
func (r Rent) MinimumBalance(size int) uint64 {
	return (StorageOverhead + uint64(size)) * r.LamportsPerByteYear * r.ExemptionThreshold
}

// IsExempt - true if the balance covers the data size
func (r Rent) IsExempt(lamports uint64, size int) bool {
	return lamports >= r.MinimumBalance(size)
}
