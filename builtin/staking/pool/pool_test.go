// Copyright (c) 2025 The Keel developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keelstake/keel/builtin/solidity"
	"github.com/keelstake/keel/keel"
	"github.com/keelstake/keel/lvldb"
	"github.com/keelstake/keel/state"
)

func newService(t *testing.T) (*Service, *solidity.Context) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	sctx := solidity.NewContext(keel.StakingProgramID, state.New(db))
	return New(sctx), sctx
}

func TestAddress(t *testing.T) {
	addr, err := Address(keel.StakingProgramID)
	require.NoError(t, err)
	expected, _, err := solana.FindProgramAddress([][]byte{[]byte("staking_pool")}, keel.StakingProgramID)
	require.NoError(t, err)
	assert.Equal(t, expected, addr)
}

func TestInitialize(t *testing.T) {
	svc, _ := newService(t)

	p, err := svc.Get()
	require.NoError(t, err)
	assert.Nil(t, p)

	p, err = svc.Initialize(solana.PublicKey{1}, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultLockingPeriods, p.LockingPeriods)
	assert.True(t, p.AllowsPeriod(120))
	assert.False(t, p.AllowsPeriod(121))

	_, err = svc.Initialize(solana.PublicKey{1}, nil)
	assert.ErrorIs(t, err, ErrAlreadyInitialized)

	got, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestInitialize_Periods(t *testing.T) {
	svc, sctx := newService(t)

	_, err := svc.Initialize(solana.PublicKey{1}, []uint64{10, 365*24*3600 + 1})
	assert.ErrorIs(t, err, ErrPeriodTooLong)

	require.NoError(t, MaxLockingPeriod.Override(sctx, 100))
	_, err = svc.Initialize(solana.PublicKey{1}, []uint64{101})
	assert.ErrorIs(t, err, ErrPeriodTooLong)

	p, err := svc.Initialize(solana.PublicKey{1}, []uint64{60, 10, 60})
	require.NoError(t, err)
	assert.Equal(t, []uint64{10, 60}, p.LockingPeriods)
}

func TestAddStaked(t *testing.T) {
	svc, _ := newService(t)
	p, err := svc.Initialize(solana.PublicKey{1}, nil)
	require.NoError(t, err)

	require.NoError(t, svc.AddStaked(p, 1))
	require.NoError(t, svc.AddStaked(p, 1))
	require.NoError(t, svc.AddStaked(p, -1))
	assert.ErrorIs(t, svc.AddStaked(p, -2), ErrCountUnderflow)

	got, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), got.StakedCount)
}
