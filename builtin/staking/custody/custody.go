// Copyright (c) 2025 The Keel developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package custody locks a unique token into program custody and releases it.
// The owner keeps the token in its own account; the program authority becomes
// its delegate and freezes the account through the metadata service.
package custody

import (
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github.com/keelstake/keel/builtin/metadata"
	"github.com/keelstake/keel/builtin/token"
	"github.com/keelstake/keel/keel"
	"github.com/keelstake/keel/xenv"
)

// Authority returns the custody authority of program.
func Authority(program solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := keel.FindProgramAddress(program, keel.SeedAuthority)
	return addr, err
}

// Target references the accounts of the token under custody.
type Target struct {
	TokenAccount solana.PublicKey
	Mint         solana.PublicKey
	Edition      solana.PublicKey
}

// Adapter performs custody operations on behalf of the program executing in env.
type Adapter struct {
	env       *xenv.Environment
	authority solana.PublicKey
	token     *token.Token
	metadata  *metadata.Metadata
}

func New(env *xenv.Environment) (*Adapter, error) {
	authority, err := Authority(env.Program())
	if err != nil {
		return nil, errors.Wrap(err, "derive custody authority")
	}
	return &Adapter{
		env:       env,
		authority: authority,
		token:     token.New(keel.TokenProgramID, env.State()),
		metadata:  metadata.New(keel.MetadataProgramID, env.State()),
	}, nil
}

func (a *Adapter) Authority() solana.PublicKey {
	return a.authority
}

// Inspect returns the token account, nil if absent.
func (a *Adapter) Inspect(tokenAccount solana.PublicKey) (*token.Account, error) {
	return a.token.GetAccount(tokenAccount)
}

// IsLocked returns whether the account is in this program's custody.
func (a *Adapter) IsLocked(acc *token.Account) bool {
	return acc.IsFrozen() && acc.IsDelegate(a.authority)
}

// Lock approves the program authority as delegate of the token and freezes
// the account. It applies fully or not at all.
func (a *Adapter) Lock(target Target) error {
	return a.atomic(func() error {
		if err := a.token.Approve(a.env.Invoke(keel.TokenProgramID), target.TokenAccount, a.authority, keel.NFTSupply); err != nil {
			return errors.WithMessage(err, "approve")
		}
		signed, err := a.env.InvokeSigned(keel.MetadataProgramID, keel.SeedAuthority)
		if err != nil {
			return err
		}
		if err := a.metadata.FreezeDelegatedAccount(signed, a.authority, target.TokenAccount, target.Edition, target.Mint); err != nil {
			return errors.WithMessage(err, "freeze")
		}
		return nil
	})
}

// Release thaws the account and revokes the program authority. It is the
// inverse of Lock and applies fully or not at all.
func (a *Adapter) Release(target Target) error {
	return a.atomic(func() error {
		signed, err := a.env.InvokeSigned(keel.MetadataProgramID, keel.SeedAuthority)
		if err != nil {
			return err
		}
		if err := a.metadata.ThawDelegatedAccount(signed, a.authority, target.TokenAccount, target.Edition, target.Mint); err != nil {
			return errors.WithMessage(err, "thaw")
		}
		if err := a.token.Revoke(a.env.Invoke(keel.TokenProgramID), target.TokenAccount); err != nil {
			return errors.WithMessage(err, "revoke")
		}
		return nil
	})
}

func (a *Adapter) atomic(fn func() error) error {
	st := a.env.State()
	rev := st.NewCheckpoint()
	if err := fn(); err != nil {
		st.RevertTo(rev)
		return err
	}
	return nil
}
