// Copyright (c) 2025 The Keel developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"path/filepath"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriods(t *testing.T) {
	periods, err := parsePeriods("0, 120,300,")
	require.NoError(t, err)
	assert.Equal(t, []uint64{0, 120, 300}, periods)

	periods, err = parsePeriods("")
	require.NoError(t, err)
	assert.Empty(t, periods)

	_, err = parsePeriods("10,-1")
	assert.Error(t, err)
}

func TestSaveLoadKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys", "id.json")
	key, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)

	require.NoError(t, saveKey(path, key))
	loaded, err := loadKey(path)
	require.NoError(t, err)
	assert.Equal(t, key.PublicKey(), loaded.PublicKey())

	assert.Error(t, saveKey(path, key), "existing key file must not be overwritten")

	_, err = loadKey(filepath.Join(t.TempDir(), "none.json"))
	assert.Error(t, err)
}

func TestClockWithoutServer(t *testing.T) {
	clock := clockOf("")
	a := clock()
	b := clock()
	assert.NotZero(t, a)
	assert.GreaterOrEqual(t, b, a)
}
