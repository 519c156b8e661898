// Copyright (c) 2025 The Keel developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/gagliardetto/solana-go"

	"github.com/keelstake/keel/builtin/metadata"
)

type (
	InitializeMintArgs struct {
		Mint            solana.PublicKey
		Decimals        uint8
		MintAuthority   solana.PublicKey
		FreezeAuthority *solana.PublicKey `rlp:"nil"`
	}

	CreateAssociatedAccountArgs struct {
		Owner solana.PublicKey
		Mint  solana.PublicKey
	}

	MintToArgs struct {
		Mint    solana.PublicKey
		Account solana.PublicKey
		Amount  uint64
	}

	TransferArgs struct {
		From   solana.PublicKey
		To     solana.PublicKey
		Amount uint64
	}

	ApproveArgs struct {
		Account  solana.PublicKey
		Delegate solana.PublicKey
		Amount   uint64
	}

	CreateMetadataArgs struct {
		Mint            solana.PublicKey
		UpdateAuthority solana.PublicKey
		Data            metadata.Data
	}

	CreateMasterEditionArgs struct {
		Mint      solana.PublicKey
		MaxSupply uint64
		Unbounded bool
	}
)
