// Copyright (c) 2025 The Keel developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"sort"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/keelstake/keel/keel"
	"github.com/keelstake/keel/kv"
)

type change struct {
	key   []byte
	value []byte
}

// Stage abstracts pending changes of a state.
type Stage struct {
	changes []change
}

func newStage(m map[storageKey]rlp.RawValue) *Stage {
	changes := make([]change, 0, len(m))
	for k, v := range m {
		changes = append(changes, change{StorageKey(k.program, k.key), v})
	}
	sort.Slice(changes, func(i, j int) bool {
		return bytes.Compare(changes[i].key, changes[j].key) < 0
	})
	return &Stage{changes}
}

// Len returns count of changed slots.
func (s *Stage) Len() int {
	return len(s.changes)
}

// Hash computes the digest of all changes, in key order.
func (s *Stage) Hash() keel.Bytes32 {
	hasher := keel.NewBlake2b()
	for _, c := range s.changes {
		hasher.Write(c.key)
		hasher.Write(c.value)
	}
	var h keel.Bytes32
	hasher.Sum(h[:0])
	return h
}

// Commit writes all changes into putter.
func (s *Stage) Commit(putter kv.Putter) error {
	for _, c := range s.changes {
		if len(c.value) == 0 {
			if err := putter.Delete(c.key); err != nil {
				return err
			}
		} else {
			if err := putter.Put(c.key, c.value); err != nil {
				return err
			}
		}
		metricStorageCounter().AddWithLabel(1, map[string]string{"type": "write"})
	}
	return nil
}
