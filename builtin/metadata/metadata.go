// Copyright (c) 2025 The Keel developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package metadata implements the metadata service: descriptive records and
// master editions of mints, addressed by derivation from the mint, and the
// delegated freeze/thaw of token accounts performed through the edition.
package metadata

import (
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github.com/keelstake/keel/builtin/reverts"
	"github.com/keelstake/keel/builtin/solidity"
	"github.com/keelstake/keel/builtin/token"
	"github.com/keelstake/keel/keel"
	"github.com/keelstake/keel/log"
	"github.com/keelstake/keel/state"
	"github.com/keelstake/keel/xenv"
)

var (
	logger = log.WithContext("pkg", "metadata")

	slotRecords  = keel.BytesToBytes32([]byte("metadata"))
	slotEditions = keel.BytesToBytes32([]byte("editions"))
)

var (
	ErrAlreadyInitialized      = reverts.New("metadata: already initialized")
	ErrUninitialized           = reverts.New("metadata: uninitialized")
	ErrMintAuthorityMismatch   = reverts.New("metadata: mint authority does not match")
	ErrUpdateAuthorityMismatch = reverts.New("metadata: update authority does not match")
	ErrNotUnique               = reverts.New("metadata: mint must have zero decimals and a supply of one")
	ErrDerivedKeyInvalid       = reverts.New("metadata: derived key invalid")
	ErrInvalidDelegate         = reverts.New("metadata: invalid delegate")
	ErrNotEnoughTokens         = reverts.New("metadata: account must hold exactly one token")
)

// Metadata implements the metadata service.
type Metadata struct {
	program  solana.PublicKey
	state    *state.State
	records  *solidity.Mapping[solana.PublicKey, *Record]
	editions *solidity.Mapping[solana.PublicKey, *MasterEdition]
}

// New create a new instance.
func New(addr solana.PublicKey, state *state.State) *Metadata {
	sctx := solidity.NewContext(addr, state)
	return &Metadata{
		program:  addr,
		state:    state,
		records:  solidity.NewMapping[solana.PublicKey, *Record](sctx, slotRecords),
		editions: solidity.NewMapping[solana.PublicKey, *MasterEdition](sctx, slotEditions),
	}
}

// RecordAddress derives the metadata record address of mint under program.
func RecordAddress(program, mint solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := keel.FindProgramAddress(program, keel.SeedMetadata, program[:], mint[:])
	return addr, err
}

// EditionSeeds returns the seeds of the master edition address of mint.
func EditionSeeds(program, mint solana.PublicKey) [][]byte {
	return [][]byte{keel.SeedMetadata, program[:], mint[:], keel.SeedEdition}
}

// EditionAddress derives the master edition address of mint under program.
func EditionAddress(program, mint solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := keel.FindProgramAddress(program, EditionSeeds(program, mint)...)
	return addr, err
}

//
// Getters - no state change
//

// Resolve returns the metadata record and master edition addresses of mint.
// It is a pure derivation and performs no lookup.
func (m *Metadata) Resolve(mint solana.PublicKey) (record solana.PublicKey, edition solana.PublicKey, err error) {
	if record, err = RecordAddress(m.program, mint); err != nil {
		return
	}
	edition, err = EditionAddress(m.program, mint)
	return
}

// GetRecord returns the metadata record stored at addr, nil if absent.
func (m *Metadata) GetRecord(addr solana.PublicKey) (*Record, error) {
	r, err := m.records.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get metadata")
	}
	if r == nil || r.Key != KeyMetadata {
		return nil, nil
	}
	return r, nil
}

// GetEdition returns the master edition stored at addr, nil if absent.
func (m *Metadata) GetEdition(addr solana.PublicKey) (*MasterEdition, error) {
	e, err := m.editions.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get edition")
	}
	if e == nil || e.Key != KeyMasterEdition {
		return nil, nil
	}
	return e, nil
}

func (m *Metadata) token() *token.Token {
	return token.New(keel.TokenProgramID, m.state)
}

//
// Setters - state change
//

// CreateMetadata creates the metadata record of mint. The mint authority must sign.
func (m *Metadata) CreateMetadata(env *xenv.Environment, mint, updateAuthority solana.PublicKey, data Data) (solana.PublicKey, error) {
	mintAcc, err := m.token().GetMint(mint)
	if err != nil {
		return solana.PublicKey{}, err
	}
	if mintAcc == nil {
		return solana.PublicKey{}, token.ErrUninitializedAccount
	}
	if mintAcc.MintAuthority == nil || !env.IsSigner(*mintAcc.MintAuthority) {
		return solana.PublicKey{}, ErrMintAuthorityMismatch
	}

	addr, err := RecordAddress(m.program, mint)
	if err != nil {
		return solana.PublicKey{}, errors.Wrap(err, "derive metadata address")
	}
	existing, err := m.GetRecord(addr)
	if err != nil {
		return solana.PublicKey{}, err
	}
	if existing != nil {
		return solana.PublicKey{}, ErrAlreadyInitialized
	}

	logger.Debug("create metadata", "mint", mint, "name", data.Name)
	return addr, m.records.Upsert(addr, &Record{
		Key:             KeyMetadata,
		Mint:            mint,
		UpdateAuthority: updateAuthority,
		Data:            data,
	})
}

// CreateMasterEdition makes mint a unique token. The update authority and the mint
// authority must sign. The mint and freeze authorities of mint move to the edition.
func (m *Metadata) CreateMasterEdition(env *xenv.Environment, mint solana.PublicKey, maxSupply *uint64) (solana.PublicKey, error) {
	recordAddr, editionAddr, err := m.Resolve(mint)
	if err != nil {
		return solana.PublicKey{}, errors.Wrap(err, "derive edition address")
	}
	record, err := m.GetRecord(recordAddr)
	if err != nil {
		return solana.PublicKey{}, err
	}
	if record == nil {
		return solana.PublicKey{}, ErrUninitialized
	}
	if !env.IsSigner(record.UpdateAuthority) {
		return solana.PublicKey{}, ErrUpdateAuthorityMismatch
	}
	existing, err := m.GetEdition(editionAddr)
	if err != nil {
		return solana.PublicKey{}, err
	}
	if existing != nil {
		return solana.PublicKey{}, ErrAlreadyInitialized
	}

	tk := m.token()
	mintAcc, err := tk.GetMint(mint)
	if err != nil {
		return solana.PublicKey{}, err
	}
	if mintAcc == nil {
		return solana.PublicKey{}, token.ErrUninitializedAccount
	}
	if mintAcc.MintAuthority == nil || !env.IsSigner(*mintAcc.MintAuthority) {
		return solana.PublicKey{}, ErrMintAuthorityMismatch
	}
	if mintAcc.Decimals != 0 || mintAcc.Supply != keel.NFTSupply {
		return solana.PublicKey{}, ErrNotUnique
	}

	tokenEnv := env.Invoke(keel.TokenProgramID)
	if err := tk.SetAuthority(tokenEnv, mint, token.MintTokens, &editionAddr); err != nil {
		return solana.PublicKey{}, err
	}
	if mintAcc.FreezeAuthority != nil {
		if err := tk.SetAuthority(tokenEnv, mint, token.FreezeAccount, &editionAddr); err != nil {
			return solana.PublicKey{}, err
		}
	}

	logger.Debug("create master edition", "mint", mint, "edition", editionAddr)
	edition := &MasterEdition{
		Key:  KeyMasterEdition,
		Mint: mint,
	}
	if maxSupply != nil {
		edition.MaxSupply, edition.Bounded = *maxSupply, true
	}
	return editionAddr, m.editions.Upsert(editionAddr, edition)
}

// FreezeDelegatedAccount freezes tokenAccount on behalf of its delegate, which must sign.
// The metadata service acts as the freeze authority of mint through edition.
func (m *Metadata) FreezeDelegatedAccount(env *xenv.Environment, delegate, tokenAccount, edition, mint solana.PublicKey) error {
	tokenEnv, err := m.delegated(env, delegate, tokenAccount, edition, mint)
	if err != nil {
		return err
	}
	return m.token().FreezeAccount(tokenEnv, tokenAccount, mint)
}

// ThawDelegatedAccount is the inverse of FreezeDelegatedAccount.
func (m *Metadata) ThawDelegatedAccount(env *xenv.Environment, delegate, tokenAccount, edition, mint solana.PublicKey) error {
	tokenEnv, err := m.delegated(env, delegate, tokenAccount, edition, mint)
	if err != nil {
		return err
	}
	return m.token().ThawAccount(tokenEnv, tokenAccount, mint)
}

// delegated validates a delegated freeze/thaw request and returns the env to
// call the token program with, signed by the edition.
func (m *Metadata) delegated(env *xenv.Environment, delegate, tokenAccount, edition, mint solana.PublicKey) (*xenv.Environment, error) {
	if !env.IsSigner(delegate) {
		return nil, ErrInvalidDelegate
	}
	expected, err := EditionAddress(m.program, mint)
	if err != nil {
		return nil, errors.Wrap(err, "derive edition address")
	}
	if edition != expected {
		return nil, ErrDerivedKeyInvalid
	}
	ed, err := m.GetEdition(edition)
	if err != nil {
		return nil, err
	}
	if ed == nil || ed.Mint != mint {
		return nil, ErrUninitialized
	}

	acc, err := m.token().GetAccount(tokenAccount)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, token.ErrUninitializedAccount
	}
	if acc.Mint != mint {
		return nil, token.ErrMintMismatch
	}
	if !acc.IsDelegate(delegate) {
		return nil, ErrInvalidDelegate
	}
	if acc.Amount != keel.NFTSupply {
		return nil, ErrNotEnoughTokens
	}

	// the metadata program signs for the edition derived under its own id
	signer := env
	if env.Program() != m.program {
		signer = env.Invoke(m.program)
	}
	return signer.InvokeSigned(keel.TokenProgramID, EditionSeeds(m.program, mint)...)
}
