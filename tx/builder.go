// Copyright (c) 2025 The Keel developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"github.com/gagliardetto/solana-go"
)

// Builder to make it easy to build transaction.
type Builder struct {
	body body
}

// Origin set the account signing the tx.
func (b *Builder) Origin(origin solana.PublicKey) *Builder {
	b.body.Origin = origin
	return b
}

// Clause add a clause.
func (b *Builder) Clause(c *Clause) *Builder {
	b.body.Clauses = append(b.body.Clauses, c)
	return b
}

// Nonce set nonce.
func (b *Builder) Nonce(nonce uint64) *Builder {
	b.body.Nonce = nonce
	return b
}

// Build build tx object.
func (b *Builder) Build() *Transaction {
	tx := Transaction{body: b.body}
	tx.body.Clauses = append([]*Clause(nil), b.body.Clauses...)
	return &tx
}
