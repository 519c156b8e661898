// Copyright (c) 2025 The Keel developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import "github.com/keelstake/keel/builtin/reverts"

var (
	ErrOwnerMismatch        = reverts.New("token: owner does not match")
	ErrMintMismatch         = reverts.New("token: account not associated with this mint")
	ErrAccountFrozen        = reverts.New("token: account is frozen")
	ErrAccountNotFrozen     = reverts.New("token: account is not frozen")
	ErrInsufficientFunds    = reverts.New("token: insufficient funds")
	ErrAuthorityMismatch    = reverts.New("token: authority does not match")
	ErrUninitializedAccount = reverts.New("token: uninitialized account")
	ErrAlreadyInitialized   = reverts.New("token: already initialized")
	ErrMissingSignature     = reverts.New("token: missing required signature")
	ErrSupplyOverflow       = reverts.New("token: supply overflow")
	ErrInvalidAuthorityType = reverts.New("token: invalid authority type")
)
