// Copyright (c) 2025 The Keel developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keelstake/keel/keel"
	"github.com/keelstake/keel/lvldb"
	"github.com/keelstake/keel/test/datagen"
)

func newDB(t *testing.T) *lvldb.LevelDB {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestStateReadWrite(t *testing.T) {
	st := New(newDB(t))

	program := datagen.RandPublicKey()
	key := keel.BytesToBytes32([]byte("key"))

	raw, err := st.GetRawStorage(program, key)
	assert.NoError(t, err)
	assert.Empty(t, raw)

	exists, err := st.Exists(program, key)
	assert.NoError(t, err)
	assert.False(t, exists)

	assert.NoError(t, st.EncodeStorage(program, key, func() ([]byte, error) {
		return rlp.EncodeToBytes(uint64(42))
	}))

	var v uint64
	assert.NoError(t, st.DecodeStorage(program, key, func(b []byte) error {
		return rlp.DecodeBytes(b, &v)
	}))
	assert.Equal(t, uint64(42), v)

	exists, err = st.Exists(program, key)
	assert.NoError(t, err)
	assert.True(t, exists)

	// same key under another program is a different slot
	exists, err = st.Exists(datagen.RandPublicKey(), key)
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestStateCodecErrors(t *testing.T) {
	st := New(newDB(t))
	program := datagen.RandPublicKey()
	key := datagen.RandomHash()

	cause := errors.New("boom")
	err := st.EncodeStorage(program, key, func() ([]byte, error) { return nil, cause })
	var serr *Error
	assert.ErrorAs(t, err, &serr)
	assert.ErrorIs(t, err, cause)

	err = st.DecodeStorage(program, key, func([]byte) error { return cause })
	assert.ErrorAs(t, err, &serr)
}

func TestStateRevert(t *testing.T) {
	st := New(newDB(t))
	program := datagen.RandPublicKey()
	key := datagen.RandomHash()

	st.SetRawStorage(program, key, rlp.RawValue{0x01})
	rev := st.NewCheckpoint()
	st.SetRawStorage(program, key, rlp.RawValue{0x02})

	raw, err := st.GetRawStorage(program, key)
	assert.NoError(t, err)
	assert.Equal(t, rlp.RawValue{0x02}, raw)

	st.RevertTo(rev)
	raw, err = st.GetRawStorage(program, key)
	assert.NoError(t, err)
	assert.Equal(t, rlp.RawValue{0x01}, raw)
}

func TestStateReadsThroughToStore(t *testing.T) {
	db := newDB(t)
	program := datagen.RandPublicKey()
	key := datagen.RandomHash()

	require.NoError(t, db.Put(StorageKey(program, key), []byte{0x07}))

	st := NewStater(db).NewState()
	raw, err := st.GetRawStorage(program, key)
	assert.NoError(t, err)
	assert.Equal(t, rlp.RawValue{0x07}, raw)
}
