// Copyright (c) 2025 The Keel developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
)

// MustSign signs a transaction using the provided private key.
// It panics if the signing process fails, returning a signed transaction upon success.
func MustSign(tx *Transaction, pk solana.PrivateKey) *Transaction {
	trx, err := Sign(tx, pk)
	if err != nil {
		panic(err)
	}
	return trx
}

// Sign signs a transaction using the provided private key, which must be the
// key of the tx origin.
func Sign(tx *Transaction, pk solana.PrivateKey) (*Transaction, error) {
	if pk.PublicKey() != tx.Origin() {
		return nil, errors.New("private key does not match tx origin")
	}
	hash := tx.SigningHash()
	sig, err := pk.Sign(hash[:])
	if err != nil {
		return nil, fmt.Errorf("unable to sign transaction: %w", err)
	}
	return tx.WithSignature(sig[:]), nil
}
