// Copyright (c) 2025 The Keel developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"github.com/keelstake/keel/keel"
)

// Receipt represents the results of a transaction.
type Receipt struct {
	// id of the tx
	TxID keel.Bytes32
	// position of the tx in the ledger
	Number uint32
	// time the tx was applied at
	Time uint64
	// whether the tx was rejected
	Reverted bool
	// which clause caused tx failure
	BadClauseIndex uint32
	// the rejection reason
	RevertReason string
	// digest of the state changes
	StateRoot keel.Bytes32

	// the rejection error, not persisted
	Err error `rlp:"-"`
}
