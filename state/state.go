// Copyright (c) 2025 The Keel developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/gagliardetto/solana-go"

	"github.com/keelstake/keel/keel"
	"github.com/keelstake/keel/kv"
	"github.com/keelstake/keel/stackedmap"
)

// StoragePrefix prefixes every storage slot in the kv store.
const StoragePrefix = "s"

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.cause
}

type storageKey struct {
	program solana.PublicKey
	key     keel.Bytes32
}

// StorageKey returns the kv key of the slot.
func StorageKey(program solana.PublicKey, key keel.Bytes32) []byte {
	k := make([]byte, 0, len(StoragePrefix)+len(program)+len(key))
	k = append(k, StoragePrefix...)
	k = append(k, program[:]...)
	return append(k, key[:]...)
}

// State manages program storage on top of a read-only kv source.
type State struct {
	db kv.Getter
	sm *stackedmap.StackedMap[storageKey, rlp.RawValue]
}

// New create state object.
func New(db kv.Getter) *State {
	state := State{db: db}
	state.sm = stackedmap.New(state.getter)
	return &state
}

// getter implements stackedmap.MapGetter.
func (s *State) getter(key storageKey) (rlp.RawValue, bool, error) {
	metricStorageCounter().AddWithLabel(1, map[string]string{"type": "read"})
	v, err := s.db.Get(StorageKey(key.program, key.key))
	if err != nil {
		if s.db.IsNotFound(err) {
			return nil, true, nil
		}
		return nil, false, err
	}
	return v, true, nil
}

// GetRawStorage returns storage value in rlp raw for given program and key.
func (s *State) GetRawStorage(program solana.PublicKey, key keel.Bytes32) (rlp.RawValue, error) {
	data, _, err := s.sm.Get(storageKey{program, key})
	if err != nil {
		return nil, &Error{err}
	}
	return data, nil
}

// SetRawStorage set storage value in rlp raw.
// An empty raw value deletes the slot.
func (s *State) SetRawStorage(program solana.PublicKey, key keel.Bytes32, raw rlp.RawValue) {
	s.sm.Put(storageKey{program, key}, raw)
}

// EncodeStorage set storage value encoded by given enc method.
// Error returned by end will be absorbed by State instance.
func (s *State) EncodeStorage(program solana.PublicKey, key keel.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(program, key, raw)
	return nil
}

// DecodeStorage get and decode storage value.
// Error returned by dec will be absorbed by State instance.
func (s *State) DecodeStorage(program solana.PublicKey, key keel.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(program, key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// Exists returns whether the slot holds a value.
func (s *State) Exists(program solana.PublicKey, key keel.Bytes32) (bool, error) {
	raw, err := s.GetRawStorage(program, key)
	if err != nil {
		return false, err
	}
	return len(raw) > 0, nil
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
}

// Stage makes a stage object to compute the change digest or commit state changes.
func (s *State) Stage() *Stage {
	changes := make(map[storageKey]rlp.RawValue)
	s.sm.Journal(func(k storageKey, v rlp.RawValue) bool {
		changes[k] = v
		return true
	})
	return newStage(changes)
}
