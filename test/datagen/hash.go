// Copyright (c) 2025 The Keel developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package datagen

import (
	"crypto/rand"

	"github.com/keelstake/keel/keel"
)

func RandomHash() keel.Bytes32 {
	var b32 keel.Bytes32

	rand.Read(b32[:])
	return b32
}
