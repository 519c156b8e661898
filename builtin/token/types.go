// Copyright (c) 2025 The Keel developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"github.com/gagliardetto/solana-go"
)

// AccountState is the lifecycle state of a token account.
type AccountState uint8

const (
	Uninitialized AccountState = iota
	Initialized
	Frozen
)

func (s AccountState) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initialized:
		return "initialized"
	case Frozen:
		return "frozen"
	default:
		return "unknown"
	}
}

// AuthorityType selects which authority of a mint SetAuthority changes.
type AuthorityType uint8

const (
	MintTokens AuthorityType = iota
	FreezeAccount
)

// Mint describes a token type.
type Mint struct {
	Supply          uint64
	Decimals        uint8
	MintAuthority   *solana.PublicKey `rlp:"nil"`
	FreezeAuthority *solana.PublicKey `rlp:"nil"`
	IsInitialized   bool
}

// Account holds an amount of one mint for an owner.
type Account struct {
	Mint            solana.PublicKey
	Owner           solana.PublicKey
	Amount          uint64
	Delegate        *solana.PublicKey `rlp:"nil"`
	DelegatedAmount uint64
	State           AccountState
}

func (a *Account) IsFrozen() bool {
	return a.State == Frozen
}

// IsDelegate returns whether identity is the account's delegate.
func (a *Account) IsDelegate(identity solana.PublicKey) bool {
	return a.Delegate != nil && *a.Delegate == identity
}
