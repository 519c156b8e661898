// Copyright (c) 2025 The Keel developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package custody_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keelstake/keel/builtin/metadata"
	"github.com/keelstake/keel/builtin/staking/custody"
	"github.com/keelstake/keel/builtin/token"
	"github.com/keelstake/keel/keel"
	"github.com/keelstake/keel/test/datagen"
	"github.com/keelstake/keel/test/testnft"
)

func TestLockRelease(t *testing.T) {
	st, err := testnft.NewState()
	require.NoError(t, err)
	owner := datagen.RandPublicKey()
	nft, err := testnft.Mint(st, owner)
	require.NoError(t, err)

	adapter, err := custody.New(testnft.Env(st, keel.StakingProgramID, owner, 0))
	require.NoError(t, err)

	authority, err := custody.Authority(keel.StakingProgramID)
	require.NoError(t, err)
	assert.Equal(t, authority, adapter.Authority())

	before, err := adapter.Inspect(nft.TokenAccount)
	require.NoError(t, err)
	assert.False(t, adapter.IsLocked(before))

	target := custody.Target{TokenAccount: nft.TokenAccount, Mint: nft.Mint, Edition: nft.Edition}
	require.NoError(t, adapter.Lock(target))

	locked, err := adapter.Inspect(nft.TokenAccount)
	require.NoError(t, err)
	assert.True(t, adapter.IsLocked(locked))
	assert.Equal(t, owner, locked.Owner)
	assert.Equal(t, keel.NFTSupply, locked.Amount)

	// the owner cannot move the token while locked
	other, err := token.New(keel.TokenProgramID, st).CreateAssociatedAccount(datagen.RandPublicKey(), nft.Mint)
	require.NoError(t, err)
	ownerEnv := testnft.Env(st, keel.TokenProgramID, owner, 0)
	assert.ErrorIs(t, token.New(keel.TokenProgramID, st).Transfer(ownerEnv, nft.TokenAccount, other, 1), token.ErrAccountFrozen)

	// locking twice fails without effect
	assert.ErrorIs(t, adapter.Lock(target), token.ErrAccountFrozen)

	require.NoError(t, adapter.Release(target))
	after, err := adapter.Inspect(nft.TokenAccount)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestLock_NoPartialEffect(t *testing.T) {
	st, err := testnft.NewState()
	require.NoError(t, err)
	owner := datagen.RandPublicKey()
	nft, err := testnft.Mint(st, owner)
	require.NoError(t, err)
	other, err := testnft.Mint(st, owner)
	require.NoError(t, err)

	adapter, err := custody.New(testnft.Env(st, keel.StakingProgramID, owner, 0))
	require.NoError(t, err)

	before, err := adapter.Inspect(nft.TokenAccount)
	require.NoError(t, err)

	// approve succeeds, freeze fails on the substituted edition: the approve is rolled back
	err = adapter.Lock(custody.Target{TokenAccount: nft.TokenAccount, Mint: nft.Mint, Edition: other.Edition})
	assert.ErrorIs(t, err, metadata.ErrDerivedKeyInvalid)

	after, err := adapter.Inspect(nft.TokenAccount)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Nil(t, after.Delegate)
}

func TestLock_RequiresOwner(t *testing.T) {
	st, err := testnft.NewState()
	require.NoError(t, err)
	owner := datagen.RandPublicKey()
	nft, err := testnft.Mint(st, owner)
	require.NoError(t, err)

	adapter, err := custody.New(testnft.Env(st, keel.StakingProgramID, datagen.RandPublicKey(), 0))
	require.NoError(t, err)
	err = adapter.Lock(custody.Target{TokenAccount: nft.TokenAccount, Mint: nft.Mint, Edition: nft.Edition})
	assert.ErrorIs(t, err, token.ErrOwnerMismatch)
}

func TestRelease_NotLocked(t *testing.T) {
	st, err := testnft.NewState()
	require.NoError(t, err)
	owner := datagen.RandPublicKey()
	nft, err := testnft.Mint(st, owner)
	require.NoError(t, err)

	adapter, err := custody.New(testnft.Env(st, keel.StakingProgramID, owner, 0))
	require.NoError(t, err)
	err = adapter.Release(custody.Target{TokenAccount: nft.TokenAccount, Mint: nft.Mint, Edition: nft.Edition})
	assert.ErrorIs(t, err, metadata.ErrInvalidDelegate)
}
