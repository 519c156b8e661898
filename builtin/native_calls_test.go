// Copyright (c) 2025 The Keel developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keelstake/keel/builtin/metadata"
	"github.com/keelstake/keel/builtin/staking"
	"github.com/keelstake/keel/builtin/staking/record"
	"github.com/keelstake/keel/builtin/token"
	"github.com/keelstake/keel/keel"
	"github.com/keelstake/keel/state"
	"github.com/keelstake/keel/test/datagen"
	"github.com/keelstake/keel/test/testnft"
	"github.com/keelstake/keel/xenv"
)

type caller struct {
	t      *testing.T
	st     *state.State
	origin solana.PublicKey
	now    uint64
}

func (c *caller) call(program solana.PublicKey, method string, args any) error {
	input, err := rlp.EncodeToBytes(args)
	require.NoError(c.t, err)
	fn := HandleNativeCall(c.st, &xenv.BlockContext{Number: 1, Time: c.now}, &xenv.TransactionContext{
		ID:     datagen.RandomHash(),
		Origin: c.origin,
	}, program, method, input)
	require.NotNil(c.t, fn, "%s not found", method)
	return fn()
}

func TestNativeCallsUnknownMethod(t *testing.T) {
	st, err := testnft.NewState()
	require.NoError(t, err)
	assert.Nil(t, HandleNativeCall(st, &xenv.BlockContext{}, &xenv.TransactionContext{}, keel.StakingProgramID, "burn", nil))
	assert.Nil(t, HandleNativeCall(st, &xenv.BlockContext{}, &xenv.TransactionContext{}, datagen.RandPublicKey(), "stake", nil))
}

func TestNativeCallsBadInput(t *testing.T) {
	st, err := testnft.NewState()
	require.NoError(t, err)
	fn := HandleNativeCall(st, &xenv.BlockContext{}, &xenv.TransactionContext{}, keel.StakingProgramID, "stake", []byte{0xff, 0x01})
	require.NotNil(t, fn)
	assert.ErrorIs(t, fn(), xenv.ErrDecodeInput)
}

func TestNativeCallsMintAndStake(t *testing.T) {
	st, err := testnft.NewState()
	require.NoError(t, err)
	owner := datagen.RandPublicKey()
	c := &caller{t: t, st: st, origin: owner, now: 100}

	mint := datagen.RandPublicKey()
	require.NoError(t, c.call(Token.Address, "initializeMint", &InitializeMintArgs{
		Mint:            mint,
		MintAuthority:   owner,
		FreezeAuthority: &owner,
	}))
	require.NoError(t, c.call(Token.Address, "createAssociatedAccount", &CreateAssociatedAccountArgs{Owner: owner, Mint: mint}))
	tokenAccount, err := token.AssociatedAccount(owner, mint)
	require.NoError(t, err)
	require.NoError(t, c.call(Token.Address, "mintTo", &MintToArgs{Mint: mint, Account: tokenAccount, Amount: 1}))
	require.NoError(t, c.call(Metadata.Address, "createMetadata", &CreateMetadataArgs{
		Mint:            mint,
		UpdateAuthority: owner,
		Data:            metadata.Data{Name: "n", Symbol: "S", URI: "u"},
	}))
	require.NoError(t, c.call(Metadata.Address, "createMasterEdition", &CreateMasterEditionArgs{Mint: mint}))

	edition, err := metadata.EditionAddress(Metadata.Address, mint)
	require.NoError(t, err)

	require.NoError(t, c.call(Staking.Address, "initializePool", &staking.InitializePoolArgs{Authority: owner}))
	stake := &staking.StakeArgs{
		Owner:           owner,
		TokenAccount:    tokenAccount,
		Mint:            mint,
		Edition:         edition,
		MetadataService: Metadata.Address,
	}
	require.NoError(t, c.call(Staking.Address, "stake", stake))
	assert.ErrorIs(t, c.call(Staking.Address, "stake", stake), staking.ErrAlreadyStaked)

	rec, err := Staking.WithState(st).Record(owner, mint)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, record.StatusStaked, rec.Status())
	assert.Equal(t, uint64(100), rec.StakeStartTime())

	// another origin cannot unstake
	other := &caller{t: t, st: st, origin: datagen.RandPublicKey(), now: 200}
	assert.ErrorIs(t, other.call(Staking.Address, "unstake", &staking.UnstakeArgs{
		Owner:           owner,
		TokenAccount:    tokenAccount,
		Mint:            mint,
		Edition:         edition,
		MetadataService: Metadata.Address,
	}), staking.ErrUnauthorized)

	require.NoError(t, c.call(Staking.Address, "unstake", &staking.UnstakeArgs{
		Owner:           owner,
		TokenAccount:    tokenAccount,
		Mint:            mint,
		Edition:         edition,
		MetadataService: Metadata.Address,
	}))
}

func TestClause(t *testing.T) {
	_, err := Staking.Clause("burn", nil)
	assert.Error(t, err)

	c, err := Staking.Clause("unstake", &staking.UnstakeArgs{Owner: datagen.RandPublicKey()})
	require.NoError(t, err)
	assert.Equal(t, keel.StakingProgramID, c.Program())
	assert.Equal(t, "unstake", c.Method())

	clauses, err := MintNFTClauses(datagen.RandPublicKey(), datagen.RandPublicKey(), metadata.Data{Name: "n"})
	require.NoError(t, err)
	assert.Len(t, clauses, 5)
}
