// Copyright (c) 2025 The Keel developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package testnft mints unique tokens with metadata directly into a state, for tests.
package testnft

import (
	"github.com/gagliardetto/solana-go"

	"github.com/keelstake/keel/builtin/metadata"
	"github.com/keelstake/keel/builtin/token"
	"github.com/keelstake/keel/keel"
	"github.com/keelstake/keel/lvldb"
	"github.com/keelstake/keel/state"
	"github.com/keelstake/keel/test/datagen"
	"github.com/keelstake/keel/xenv"
)

// NFT references the accounts of a minted unique token.
type NFT struct {
	Owner        solana.PublicKey
	Mint         solana.PublicKey
	TokenAccount solana.PublicKey
	Metadata     solana.PublicKey
	Edition      solana.PublicKey
}

// NewState returns a state over an empty in-memory store.
func NewState() (*state.State, error) {
	db, err := lvldb.NewMem()
	if err != nil {
		return nil, err
	}
	return state.New(db), nil
}

// Env returns an env signed by signer.
func Env(st *state.State, program, signer solana.PublicKey, now uint64) *xenv.Environment {
	return xenv.New(program, nil, st, &xenv.BlockContext{Number: 1, Time: now}, &xenv.TransactionContext{
		ID:     datagen.RandomHash(),
		Origin: signer,
	})
}

// Mint creates a mint with zero decimals, mints one token into the associated
// account of owner, and creates its metadata and master edition.
func Mint(st *state.State, owner solana.PublicKey) (*NFT, error) {
	mint := datagen.RandPublicKey()
	env := Env(st, keel.TokenProgramID, owner, 0)

	tk := token.New(keel.TokenProgramID, st)
	if err := tk.InitializeMint(env, mint, 0, owner, &owner); err != nil {
		return nil, err
	}
	account, err := tk.CreateAssociatedAccount(owner, mint)
	if err != nil {
		return nil, err
	}
	if err := tk.MintTo(env, mint, account, keel.NFTSupply); err != nil {
		return nil, err
	}

	md := metadata.New(keel.MetadataProgramID, st)
	mdEnv := env.Invoke(keel.MetadataProgramID)
	record, err := md.CreateMetadata(mdEnv, mint, owner, metadata.Data{
		Name:   "Keel Test NFT",
		Symbol: "KEEL",
		URI:    "https://example.com/nft.json",
	})
	if err != nil {
		return nil, err
	}
	edition, err := md.CreateMasterEdition(mdEnv, mint, new(uint64))
	if err != nil {
		return nil, err
	}

	return &NFT{
		Owner:        owner,
		Mint:         mint,
		TokenAccount: account,
		Metadata:     record,
		Edition:      edition,
	}, nil
}
