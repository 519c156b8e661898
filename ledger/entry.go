// Copyright (c) 2025 The Keel developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"encoding/binary"

	"github.com/keelstake/keel/keel"
)

// Entry is one accepted transaction in ledger order.
type Entry struct {
	Number    uint32
	Time      uint64
	TxID      keel.Bytes32
	StateRoot keel.Bytes32
}

var (
	headKey       = []byte("h")
	entryPrefix   = []byte("e")
	receiptPrefix = []byte("r")
)

func entryKey(n uint32) []byte {
	k := make([]byte, len(entryPrefix)+4)
	copy(k, entryPrefix)
	binary.BigEndian.PutUint32(k[len(entryPrefix):], n)
	return k
}

func receiptKey(id keel.Bytes32) []byte {
	return append(append([]byte(nil), receiptPrefix...), id[:]...)
}
