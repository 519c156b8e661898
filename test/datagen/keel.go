// Copyright (c) 2025 The Keel developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package datagen

import (
	"github.com/gagliardetto/solana-go"
)

// RandPublicKey returns the public key of a fresh random keypair.
func RandPublicKey() solana.PublicKey {
	return RandKey().PublicKey()
}

// RandKey returns a fresh random keypair.
func RandKey() solana.PrivateKey {
	return solana.NewWallet().PrivateKey
}
