// Copyright (c) 2025 The Keel developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import "github.com/keelstake/keel/builtin/reverts"

// Rejection kinds of staking requests. A rejected request has no effect.
var (
	ErrUnauthorized            = reverts.New("staking: unauthorized")
	ErrAlreadyStaked           = reverts.New("staking: already staked")
	ErrNotStaked               = reverts.New("staking: not staked")
	ErrNotOwner                = reverts.New("staking: caller does not control the token account")
	ErrInvalidMetadata         = reverts.New("staking: invalid metadata")
	ErrCustodyTransferFailed   = reverts.New("staking: custody transfer failed")
	ErrCustodyReleaseFailed    = reverts.New("staking: custody release failed")
	ErrNotInitializedPool      = reverts.New("staking: pool not initialized")
	ErrAlreadyInitializedPool  = reverts.New("staking: pool already initialized")
	ErrUnexpectedLockingPeriod = reverts.New("staking: unexpected locking period")
	ErrEndTimeNotOver          = reverts.New("staking: locking period not over")
)
