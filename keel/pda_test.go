// Copyright (c) 2025 The Keel developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package keel

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindProgramAddress_MatchesSolana(t *testing.T) {
	owner := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()

	want, wantBump, err := solana.FindProgramAddress([][]byte{owner[:], mint[:]}, StakingProgramID)
	require.NoError(t, err)

	got, bump, err := FindProgramAddress(StakingProgramID, owner[:], mint[:])
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, wantBump, bump)
}

func TestFindProgramAddress_Deterministic(t *testing.T) {
	f := fuzz.New().NilChance(0)
	for range 50 {
		var a, b [32]byte
		f.Fuzz(&a)
		f.Fuzz(&b)

		first, _, err := FindProgramAddress(StakingProgramID, a[:], b[:])
		require.NoError(t, err)
		second, _, err := FindProgramAddress(StakingProgramID, a[:], b[:])
		require.NoError(t, err)
		assert.Equal(t, first, second)

		swapped, _, err := FindProgramAddress(StakingProgramID, b[:], a[:])
		require.NoError(t, err)
		if a != b {
			assert.NotEqual(t, first, swapped)
		}
	}
}

func TestFindProgramAddress_ScopedToProgram(t *testing.T) {
	seed := []byte("authority")
	a := MustFindProgramAddress(StakingProgramID, seed)
	b := MustFindProgramAddress(MetadataProgramID, seed)
	assert.NotEqual(t, a, b)
}

func TestFindProgramAddress_SeedSplitsDiffer(t *testing.T) {
	assert.NotEqual(t, pdaCacheKey(StakingProgramID, [][]byte{[]byte("ab"), []byte("c")}),
		pdaCacheKey(StakingProgramID, [][]byte{[]byte("a"), []byte("bc")}))
}

func TestFindProgramAddress_InvalidSeeds(t *testing.T) {
	_, _, err := FindProgramAddress(StakingProgramID, make([]byte, MaxSeedLength+1))
	assert.Error(t, err)

	seeds := make([][]byte, MaxSeeds+1)
	_, _, err = FindProgramAddress(StakingProgramID, seeds...)
	assert.Error(t, err)
}

func TestBlake2b(t *testing.T) {
	assert.Equal(t, Blake2b([]byte("ab")), Blake2b([]byte("a"), []byte("b")))
	assert.NotEqual(t, Blake2b([]byte("a")), Blake2b([]byte("b")))
}

func TestParseBytes32(t *testing.T) {
	b := Blake2b([]byte("keel"))
	parsed, err := ParseBytes32(b.String())
	require.NoError(t, err)
	assert.Equal(t, b, parsed)

	_, err = ParseBytes32("0x1234")
	assert.Error(t, err)
}
