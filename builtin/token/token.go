// Copyright (c) 2025 The Keel developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github.com/keelstake/keel/builtin/solidity"
	"github.com/keelstake/keel/keel"
	"github.com/keelstake/keel/log"
	"github.com/keelstake/keel/state"
	"github.com/keelstake/keel/xenv"
)

var (
	logger = log.WithContext("pkg", "token")

	slotMints    = keel.BytesToBytes32([]byte("mints"))
	slotAccounts = keel.BytesToBytes32([]byte("accounts"))
)

// Token implements the token program: mints and token accounts.
type Token struct {
	mints    *solidity.Mapping[solana.PublicKey, *Mint]
	accounts *solidity.Mapping[solana.PublicKey, *Account]
}

// New create a new instance.
func New(addr solana.PublicKey, state *state.State) *Token {
	sctx := solidity.NewContext(addr, state)
	return &Token{
		mints:    solidity.NewMapping[solana.PublicKey, *Mint](sctx, slotMints),
		accounts: solidity.NewMapping[solana.PublicKey, *Account](sctx, slotAccounts),
	}
}

// AssociatedAccount returns the canonical token account of owner for mint.
func AssociatedAccount(owner, mint solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	return addr, err
}

//
// Getters - no state change
//

// GetMint returns the mint, nil if not initialized.
func (t *Token) GetMint(mint solana.PublicKey) (*Mint, error) {
	m, err := t.mints.Get(mint)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get mint")
	}
	if m == nil || !m.IsInitialized {
		return nil, nil
	}
	return m, nil
}

// GetAccount returns the token account, nil if not initialized.
func (t *Token) GetAccount(account solana.PublicKey) (*Account, error) {
	a, err := t.accounts.Get(account)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get token account")
	}
	if a == nil || a.State == Uninitialized {
		return nil, nil
	}
	return a, nil
}

func (t *Token) mustMint(mint solana.PublicKey) (*Mint, error) {
	m, err := t.GetMint(mint)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrUninitializedAccount
	}
	return m, nil
}

func (t *Token) mustAccount(account solana.PublicKey) (*Account, error) {
	a, err := t.GetAccount(account)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrUninitializedAccount
	}
	return a, nil
}

func requireSigner(env *xenv.Environment, identity *solana.PublicKey) error {
	if identity == nil {
		return ErrAuthorityMismatch
	}
	if !env.IsSigner(*identity) {
		return ErrMissingSignature
	}
	return nil
}

//
// Setters - state change
//

// InitializeMint creates a mint. The mint authority must sign.
func (t *Token) InitializeMint(
	env *xenv.Environment,
	mint solana.PublicKey,
	decimals uint8,
	mintAuthority solana.PublicKey,
	freezeAuthority *solana.PublicKey,
) error {
	if err := requireSigner(env, &mintAuthority); err != nil {
		return err
	}
	existing, err := t.GetMint(mint)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrAlreadyInitialized
	}
	logger.Debug("initialize mint", "mint", mint, "decimals", decimals)
	return t.mints.Upsert(mint, &Mint{
		Decimals:        decimals,
		MintAuthority:   &mintAuthority,
		FreezeAuthority: freezeAuthority,
		IsInitialized:   true,
	})
}

// InitializeAccount creates an empty token account of mint held by owner.
func (t *Token) InitializeAccount(account, mint, owner solana.PublicKey) error {
	if _, err := t.mustMint(mint); err != nil {
		return err
	}
	existing, err := t.GetAccount(account)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrAlreadyInitialized
	}
	return t.accounts.Upsert(account, &Account{
		Mint:  mint,
		Owner: owner,
		State: Initialized,
	})
}

// CreateAssociatedAccount initializes the associated token account of owner for mint.
func (t *Token) CreateAssociatedAccount(owner, mint solana.PublicKey) (solana.PublicKey, error) {
	account, err := AssociatedAccount(owner, mint)
	if err != nil {
		return solana.PublicKey{}, errors.Wrap(err, "derive associated account")
	}
	if err := t.InitializeAccount(account, mint, owner); err != nil {
		return solana.PublicKey{}, err
	}
	return account, nil
}

// MintTo mints amount into account. The mint authority must sign.
func (t *Token) MintTo(env *xenv.Environment, mint, account solana.PublicKey, amount uint64) error {
	m, err := t.mustMint(mint)
	if err != nil {
		return err
	}
	if err := requireSigner(env, m.MintAuthority); err != nil {
		return err
	}
	acc, err := t.mustAccount(account)
	if err != nil {
		return err
	}
	if acc.Mint != mint {
		return ErrMintMismatch
	}
	if acc.IsFrozen() {
		return ErrAccountFrozen
	}
	if m.Supply+amount < m.Supply {
		return ErrSupplyOverflow
	}

	m.Supply += amount
	acc.Amount += amount
	if err := t.mints.Update(mint, m); err != nil {
		return err
	}
	return t.accounts.Update(account, acc)
}

// Transfer moves amount between two accounts of the same mint.
// The owner, or the delegate within its allowance, must sign.
func (t *Token) Transfer(env *xenv.Environment, from, to solana.PublicKey, amount uint64) error {
	src, err := t.mustAccount(from)
	if err != nil {
		return err
	}
	dst, err := t.mustAccount(to)
	if err != nil {
		return err
	}
	if src.Mint != dst.Mint {
		return ErrMintMismatch
	}
	if src.IsFrozen() || dst.IsFrozen() {
		return ErrAccountFrozen
	}
	if src.Amount < amount {
		return ErrInsufficientFunds
	}

	switch {
	case env.IsSigner(src.Owner):
	case src.Delegate != nil && env.IsSigner(*src.Delegate):
		if src.DelegatedAmount < amount {
			return ErrInsufficientFunds
		}
		src.DelegatedAmount -= amount
		if src.DelegatedAmount == 0 {
			src.Delegate = nil
		}
	default:
		return ErrOwnerMismatch
	}

	if from == to {
		return t.accounts.Update(from, src)
	}
	src.Amount -= amount
	dst.Amount += amount
	if err := t.accounts.Update(from, src); err != nil {
		return err
	}
	return t.accounts.Update(to, dst)
}

// Approve lets delegate move up to amount out of account. The owner must sign.
func (t *Token) Approve(env *xenv.Environment, account, delegate solana.PublicKey, amount uint64) error {
	acc, err := t.mustAccount(account)
	if err != nil {
		return err
	}
	if !env.IsSigner(acc.Owner) {
		return ErrOwnerMismatch
	}
	if acc.IsFrozen() {
		return ErrAccountFrozen
	}
	acc.Delegate = &delegate
	acc.DelegatedAmount = amount
	return t.accounts.Update(account, acc)
}

// Revoke clears the delegate of account. The owner must sign.
func (t *Token) Revoke(env *xenv.Environment, account solana.PublicKey) error {
	acc, err := t.mustAccount(account)
	if err != nil {
		return err
	}
	if !env.IsSigner(acc.Owner) {
		return ErrOwnerMismatch
	}
	if acc.IsFrozen() {
		return ErrAccountFrozen
	}
	acc.Delegate = nil
	acc.DelegatedAmount = 0
	return t.accounts.Update(account, acc)
}

// FreezeAccount freezes account. The freeze authority of mint must sign.
func (t *Token) FreezeAccount(env *xenv.Environment, account, mint solana.PublicKey) error {
	acc, err := t.freezable(env, account, mint)
	if err != nil {
		return err
	}
	if acc.IsFrozen() {
		return ErrAccountFrozen
	}
	acc.State = Frozen
	return t.accounts.Update(account, acc)
}

// ThawAccount thaws a frozen account. The freeze authority of mint must sign.
func (t *Token) ThawAccount(env *xenv.Environment, account, mint solana.PublicKey) error {
	acc, err := t.freezable(env, account, mint)
	if err != nil {
		return err
	}
	if !acc.IsFrozen() {
		return ErrAccountNotFrozen
	}
	acc.State = Initialized
	return t.accounts.Update(account, acc)
}

func (t *Token) freezable(env *xenv.Environment, account, mint solana.PublicKey) (*Account, error) {
	acc, err := t.mustAccount(account)
	if err != nil {
		return nil, err
	}
	if acc.Mint != mint {
		return nil, ErrMintMismatch
	}
	m, err := t.mustMint(mint)
	if err != nil {
		return nil, err
	}
	if err := requireSigner(env, m.FreezeAuthority); err != nil {
		return nil, err
	}
	return acc, nil
}

// SetAuthority replaces an authority of mint. The current authority must sign.
// A nil newAuthority disables the authority for good.
func (t *Token) SetAuthority(env *xenv.Environment, mint solana.PublicKey, kind AuthorityType, newAuthority *solana.PublicKey) error {
	m, err := t.mustMint(mint)
	if err != nil {
		return err
	}
	var target **solana.PublicKey
	switch kind {
	case MintTokens:
		target = &m.MintAuthority
	case FreezeAccount:
		target = &m.FreezeAuthority
	default:
		return ErrInvalidAuthorityType
	}
	if err := requireSigner(env, *target); err != nil {
		return err
	}
	*target = newAuthority
	return t.mints.Update(mint, m)
}
