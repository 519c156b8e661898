// Copyright (c) 2025 The Keel developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/gagliardetto/solana-go"
)

// InitializePoolArgs arguments of initializePool.
type InitializePoolArgs struct {
	Authority      solana.PublicKey
	LockingPeriods []uint64
}

// StakeArgs arguments of stake.
type StakeArgs struct {
	Owner           solana.PublicKey
	TokenAccount    solana.PublicKey
	Mint            solana.PublicKey
	Edition         solana.PublicKey
	MetadataService solana.PublicKey
	LockingPeriod   uint64
}

// UnstakeArgs arguments of unstake.
type UnstakeArgs struct {
	Owner           solana.PublicKey
	TokenAccount    solana.PublicKey
	Mint            solana.PublicKey
	Edition         solana.PublicKey
	MetadataService solana.PublicKey
}
