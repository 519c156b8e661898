// Copyright (c) 2025 The Keel developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metadata

import (
	"github.com/gagliardetto/solana-go"
)

// Key discriminates the kind of a stored record. The zero value means absent.
type Key uint8

const (
	KeyUninitialized Key = iota
	KeyMetadata
	KeyMasterEdition
)

// Data is the descriptive part of a metadata record.
type Data struct {
	Name                 string
	Symbol               string
	URI                  string
	SellerFeeBasisPoints uint16
}

// Record is the metadata record tying descriptive data to a mint.
type Record struct {
	Key             Key
	Mint            solana.PublicKey
	UpdateAuthority solana.PublicKey
	Data            Data
}

// MasterEdition marks a mint as a unique, non-reissuable token.
type MasterEdition struct {
	Key       Key
	Mint      solana.PublicKey
	Supply    uint64
	MaxSupply uint64
	// Bounded reports whether MaxSupply applies.
	Bounded bool
}

// Max returns the max supply of prints, false if unbounded.
func (e *MasterEdition) Max() (uint64, bool) {
	return e.MaxSupply, e.Bounded
}
