// Copyright (c) 2025 The Keel developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keelstake/keel/keel"
)

func newTx(t *testing.T, nonce uint64) (*Transaction, solana.PrivateKey) {
	pk, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)

	clause, err := NewClause(keel.StakingProgramID, "stake").WithArgs([]any{uint64(1), "x"})
	require.NoError(t, err)

	trx := new(Builder).
		Origin(pk.PublicKey()).
		Nonce(nonce).
		Clause(clause).
		Build()
	return trx, pk
}

func TestSignAndVerify(t *testing.T) {
	trx, pk := newTx(t, 1)
	assert.ErrorIs(t, trx.VerifySignature(), ErrInvalidSignature)

	signed, err := Sign(trx, pk)
	require.NoError(t, err)
	assert.NoError(t, signed.VerifySignature())
	signer, err := signed.Signer()
	assert.NoError(t, err)
	assert.Equal(t, pk.PublicKey(), signer)

	// signature does not change identity
	assert.Equal(t, trx.ID(), signed.ID())
	assert.Equal(t, trx.SigningHash(), signed.SigningHash())

	other, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	_, err = Sign(trx, other)
	assert.Error(t, err)
}

func TestTamperedSignature(t *testing.T) {
	trx, pk := newTx(t, 1)
	signed := MustSign(trx, pk)

	sig := signed.Signature()
	sig[0] ^= 0xff
	assert.ErrorIs(t, signed.WithSignature(sig).VerifySignature(), ErrInvalidSignature)
	assert.ErrorIs(t, signed.WithSignature(sig[:10]).VerifySignature(), ErrInvalidSignature)

	// another origin with the same signature
	forged := new(Builder).Origin(keel.MetadataProgramID).Nonce(1).Build().WithSignature(signed.Signature())
	assert.ErrorIs(t, forged.VerifySignature(), ErrInvalidSignature)
}

func TestIDDependsOnContent(t *testing.T) {
	a, pk := newTx(t, 1)
	b := new(Builder).Origin(pk.PublicKey()).Nonce(2).Clause(a.Clauses()[0]).Build()
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestEncodeDecode(t *testing.T) {
	trx, pk := newTx(t, 7)
	signed := MustSign(trx, pk)

	data, err := rlp.EncodeToBytes(signed)
	require.NoError(t, err)

	var decoded Transaction
	require.NoError(t, rlp.DecodeBytes(data, &decoded))

	assert.Equal(t, signed.ID(), decoded.ID())
	assert.Equal(t, uint64(7), decoded.Nonce())
	assert.Equal(t, pk.PublicKey(), decoded.Origin())
	assert.NoError(t, decoded.VerifySignature())

	require.Len(t, decoded.Clauses(), 1)
	c := decoded.Clauses()[0]
	assert.Equal(t, keel.StakingProgramID, c.Program())
	assert.Equal(t, "stake", c.Method())

	var args struct {
		N uint64
		S string
	}
	require.NoError(t, rlp.DecodeBytes(c.Data(), &args))
	assert.Equal(t, uint64(1), args.N)
	assert.Equal(t, "x", args.S)
}
