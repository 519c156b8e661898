// Copyright (c) 2025 The Keel developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package record

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keelstake/keel/builtin/solidity"
	"github.com/keelstake/keel/keel"
	"github.com/keelstake/keel/lvldb"
	"github.com/keelstake/keel/state"
)

func newService(t *testing.T) (*Service, *state.State) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	st := state.New(db)
	return New(solidity.NewContext(keel.StakingProgramID, st)), st
}

func TestDerive(t *testing.T) {
	f := fuzz.New().NilChance(0)
	for range 20 {
		var owner, mint solana.PublicKey
		f.Fuzz(&owner)
		f.Fuzz(&mint)

		a1, err := Derive(keel.StakingProgramID, owner, mint)
		require.NoError(t, err)
		a2, err := Derive(keel.StakingProgramID, owner, mint)
		require.NoError(t, err)
		assert.Equal(t, a1, a2)

		expected, _, err := solana.FindProgramAddress([][]byte{owner[:], mint[:]}, keel.StakingProgramID)
		require.NoError(t, err)
		assert.Equal(t, expected, a1)

		if owner != mint {
			swapped, err := Derive(keel.StakingProgramID, mint, owner)
			require.NoError(t, err)
			assert.NotEqual(t, a1, swapped)
		}
	}
}

func TestTransitions(t *testing.T) {
	rec := &Record{body: &body{}}
	assert.False(t, rec.IsStaked())

	assert.ErrorIs(t, rec.Unstake(5), ErrInvalidTransition)

	require.NoError(t, rec.Stake(10, 120))
	assert.True(t, rec.IsStaked())
	assert.Equal(t, uint64(10), rec.StakeStartTime())
	assert.Equal(t, uint64(120), rec.LockingPeriod())
	assert.Equal(t, uint64(130), rec.LockEnd())
	assert.False(t, rec.Unlocked(129))
	assert.True(t, rec.Unlocked(130))

	assert.ErrorIs(t, rec.Stake(11, 0), ErrInvalidTransition)
	assert.Equal(t, uint64(10), rec.StakeStartTime())

	require.NoError(t, rec.Unstake(200))
	assert.Equal(t, StatusUnstaked, rec.Status())
	assert.Equal(t, uint64(200), rec.UnstakedAt())

	rec.body.StakeStartTime = ^uint64(0) - 1
	rec.body.LockingPeriod = 10
	assert.Equal(t, ^uint64(0), rec.LockEnd())
}

func TestCreateOrLoadAndCommit(t *testing.T) {
	svc, st := newService(t)
	owner := solana.PublicKey{1}
	mint := solana.PublicKey{2}

	addr, err := svc.Derive(owner, mint)
	require.NoError(t, err)

	loaded, err := svc.Load(addr)
	require.NoError(t, err)
	assert.Nil(t, loaded)

	rec, err := svc.CreateOrLoad(owner, mint)
	require.NoError(t, err)
	assert.Equal(t, addr, rec.Address())
	assert.Equal(t, owner, rec.Owner())
	assert.Equal(t, mint, rec.Mint())
	assert.False(t, rec.IsStaked())

	// not persisted until commit
	loaded, err = svc.Load(addr)
	require.NoError(t, err)
	assert.Nil(t, loaded)

	rev := st.NewCheckpoint()
	require.NoError(t, rec.Stake(7, 0))
	require.NoError(t, svc.Commit(rec))

	loaded, err = svc.Load(addr)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.True(t, loaded.IsStaked())
	assert.Equal(t, uint64(7), loaded.StakeStartTime())

	st.RevertTo(rev)
	loaded, err = svc.Load(addr)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}
