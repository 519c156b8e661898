// Copyright (c) 2025 The Keel developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/keelstake/keel/keel"
)

var (
	ErrKeyExists   = errors.New("solidity: key already exists")
	ErrKeyNotFound = errors.New("solidity: key not found")
)

type Key interface {
	Bytes() []byte
}

// Mapping is a key/value storage abstraction for built-in programs, similar to the mapping in Solidity.
// Each value is rlp encoded into the slot at blake2b(key, basePos).
type Mapping[K Key, V any] struct {
	context *Context
	basePos keel.Bytes32
}

func NewMapping[K Key, V any](context *Context, pos keel.Bytes32) *Mapping[K, V] {
	return &Mapping[K, V]{context: context, basePos: pos}
}

func (m *Mapping[K, V]) position(key K) keel.Bytes32 {
	return keel.Blake2b(key.Bytes(), m.basePos.Bytes())
}

// Get returns the value of key, or the zero value (nil for pointers) when absent.
func (m *Mapping[K, V]) Get(key K) (value V, err error) {
	err = m.context.state.DecodeStorage(m.context.address, m.position(key), func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, &value)
	})
	return
}

func (m *Mapping[K, V]) Exists(key K) (bool, error) {
	return m.context.state.Exists(m.context.address, m.position(key))
}

// Insert stores a value for a key not yet present.
func (m *Mapping[K, V]) Insert(key K, value V) error {
	exists, err := m.Exists(key)
	if err != nil {
		return err
	}
	if exists {
		return ErrKeyExists
	}
	return m.set(key, value)
}

// Update overwrites the value of an existing key.
func (m *Mapping[K, V]) Update(key K, value V) error {
	exists, err := m.Exists(key)
	if err != nil {
		return err
	}
	if !exists {
		return ErrKeyNotFound
	}
	return m.set(key, value)
}

// Upsert stores the value regardless of the key's presence.
func (m *Mapping[K, V]) Upsert(key K, value V) error {
	return m.set(key, value)
}

func (m *Mapping[K, V]) Delete(key K) {
	m.context.state.SetRawStorage(m.context.address, m.position(key), nil)
}

func (m *Mapping[K, V]) set(key K, value V) error {
	return m.context.state.EncodeStorage(m.context.address, m.position(key), func() ([]byte, error) {
		return rlp.EncodeToBytes(value)
	})
}
