// Copyright (c) 2025 The Keel developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package keel

import "github.com/gagliardetto/solana-go"

// Builtin program identities.
var (
	StakingProgramID         = solana.MustPublicKeyFromBase58("3pERDFaDc3R6JedwSdd2mSvrNFjJGrXvfszwYvdmTeqJ")
	TokenProgramID           = solana.TokenProgramID
	MetadataProgramID        = solana.TokenMetadataProgramID
	AssociatedTokenProgramID = solana.SPLAssociatedTokenAccountProgramID
)

// Seeds of the program-derived addresses.
var (
	SeedAuthority = []byte("authority")
	SeedPool      = []byte("staking_pool")
	SeedMetadata  = []byte("metadata")
	SeedEdition   = []byte("edition")
)

const (
	// MaxSeeds is the max number of seeds accepted by an address derivation.
	MaxSeeds = 16
	// MaxSeedLength is the max length in bytes of a single seed.
	MaxSeedLength = 32

	// NFTSupply is the supply of a non-fungible mint.
	NFTSupply = uint64(1)
)
