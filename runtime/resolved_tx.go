// Copyright (c) 2025 The Keel developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"github.com/gagliardetto/solana-go"

	"github.com/keelstake/keel/builtin/reverts"
	"github.com/keelstake/keel/builtin/staking"
	"github.com/keelstake/keel/tx"
)

// ErrNoClauses is returned for a transaction without any clause.
var ErrNoClauses = reverts.New("tx has no clauses")

// ResolvedTransaction resolve the transaction according to given state.
type ResolvedTransaction struct {
	tx      *tx.Transaction
	Origin  solana.PublicKey
	Clauses []*tx.Clause
}

// ResolveTransaction resolves the transaction and performs basic validation.
// A transaction not signed by its origin is unauthorized.
func ResolveTransaction(trx *tx.Transaction) (*ResolvedTransaction, error) {
	origin, err := trx.Signer()
	if err != nil {
		return nil, reverts.Wrap(staking.ErrUnauthorized, err)
	}
	clauses := trx.Clauses()
	if len(clauses) == 0 {
		return nil, ErrNoClauses
	}
	return &ResolvedTransaction{
		trx,
		origin,
		clauses,
	}, nil
}
