// Copyright (c) 2025 The Keel developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keelstake/keel/builtin/staking/record"
	"github.com/keelstake/keel/builtin/token"
	"github.com/keelstake/keel/keel"
	"github.com/keelstake/keel/state"
	"github.com/keelstake/keel/test/datagen"
	"github.com/keelstake/keel/test/testnft"
	"github.com/keelstake/keel/xenv"
)

type StakingTest struct {
	*Staking
	t   *testing.T
	st  *state.State
	now uint64
}

func newTest(t *testing.T) *StakingTest {
	st, err := testnft.NewState()
	require.NoError(t, err)
	return &StakingTest{
		Staking: New(keel.StakingProgramID, st),
		t:       t,
		st:      st,
		now:     1000,
	}
}

func (ts *StakingTest) env(signer solana.PublicKey) *xenv.Environment {
	return testnft.Env(ts.st, keel.StakingProgramID, signer, ts.now)
}

// InitPool initializes the pool with the default locking periods.
func (ts *StakingTest) InitPool() *StakingTest {
	authority := datagen.RandPublicKey()
	require.NoError(ts.t, ts.InitializePool(ts.env(authority), &InitializePoolArgs{Authority: authority}))
	return ts
}

// Advance moves the ledger clock forward.
func (ts *StakingTest) Advance(seconds uint64) *StakingTest {
	ts.now += seconds
	return ts
}

// Mint mints a new NFT to owner.
func (ts *StakingTest) Mint(owner solana.PublicKey) *testnft.NFT {
	nft, err := testnft.Mint(ts.st, owner)
	require.NoError(ts.t, err)
	return nft
}

func stakeArgs(nft *testnft.NFT, period uint64) *StakeArgs {
	return &StakeArgs{
		Owner:           nft.Owner,
		TokenAccount:    nft.TokenAccount,
		Mint:            nft.Mint,
		Edition:         nft.Edition,
		MetadataService: keel.MetadataProgramID,
		LockingPeriod:   period,
	}
}

func unstakeArgs(nft *testnft.NFT) *UnstakeArgs {
	return &UnstakeArgs{
		Owner:           nft.Owner,
		TokenAccount:    nft.TokenAccount,
		Mint:            nft.Mint,
		Edition:         nft.Edition,
		MetadataService: keel.MetadataProgramID,
	}
}

// StakeAs submits stake of nft signed by signer and checks the outcome.
func (ts *StakingTest) StakeAs(signer solana.PublicKey, args *StakeArgs, expected error) *StakingTest {
	err := ts.Stake(ts.env(signer), args)
	ts.checkErr(err, expected)
	return ts
}

// UnstakeAs submits unstake of nft signed by signer and checks the outcome.
func (ts *StakingTest) UnstakeAs(signer solana.PublicKey, args *UnstakeArgs, expected error) *StakingTest {
	err := ts.Unstake(ts.env(signer), args)
	ts.checkErr(err, expected)
	return ts
}

func (ts *StakingTest) checkErr(err, expected error) {
	if expected == nil {
		require.NoError(ts.t, err)
	} else {
		require.ErrorIs(ts.t, err, expected)
	}
}

// AssertStatus checks the record status of nft.
func (ts *StakingTest) AssertStatus(nft *testnft.NFT, status record.Status) *StakingTest {
	rec, err := ts.Record(nft.Owner, nft.Mint)
	require.NoError(ts.t, err)
	if rec == nil {
		assert.Equal(ts.t, record.StatusUnstaked, status, "absent record reads as unstaked")
		return ts
	}
	assert.Equal(ts.t, status, rec.Status())
	return ts
}

// AssertCustody checks whether the token account of nft is held by the program.
func (ts *StakingTest) AssertCustody(nft *testnft.NFT, locked bool) *StakingTest {
	acc := ts.Account(nft)
	authority := ts.authority()
	assert.Equal(ts.t, locked, acc.IsFrozen() && acc.IsDelegate(authority))
	assert.Equal(ts.t, nft.Owner, acc.Owner)
	assert.Equal(ts.t, keel.NFTSupply, acc.Amount)
	return ts
}

// AssertStakedCount checks the staked count of the pool.
func (ts *StakingTest) AssertStakedCount(count uint64) *StakingTest {
	p, err := ts.Pool()
	require.NoError(ts.t, err)
	require.NotNil(ts.t, p)
	assert.Equal(ts.t, count, p.StakedCount)
	return ts
}

func (ts *StakingTest) Account(nft *testnft.NFT) *token.Account {
	acc, err := token.New(keel.TokenProgramID, ts.st).GetAccount(nft.TokenAccount)
	require.NoError(ts.t, err)
	require.NotNil(ts.t, acc)
	return acc
}

func (ts *StakingTest) authority() solana.PublicKey {
	return keel.MustFindProgramAddress(keel.StakingProgramID, keel.SeedAuthority)
}
