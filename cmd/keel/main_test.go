// Copyright (c) 2025 The Keel developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keelstake/keel/builtin"
	"github.com/keelstake/keel/state"
)

func run(t *testing.T, dir string, args ...string) error {
	base := []string{"keel", "--data-dir", dir, "--keyfile", filepath.Join(dir, "id.json"), "--verbosity", "0"}
	return newApp().Run(append(base, args...))
}

func TestCommands(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, run(t, dir, "keygen", "--out", filepath.Join(dir, "id.json")))
	require.NoError(t, run(t, dir, "init-pool", "--periods", "0,60"))
	assert.ErrorContains(t, run(t, dir, "init-pool"), "pool already initialized")
	require.NoError(t, run(t, dir, "verify"))
	assert.Error(t, run(t, dir, "stake"), "mint is required")
	assert.Error(t, run(t, dir, "derive", "--mint", "not-base58"))

	cfg := defaultConfig()
	cfg.DataDir = dir
	l, closeLedger, err := openLedger(cfg)
	require.NoError(t, err)
	defer closeLedger()

	assert.Equal(t, uint32(1), l.Head().Number)
	require.NoError(t, l.View(func(st *state.State) error {
		p, err := builtin.Staking.WithState(st).Pool()
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, []uint64{0, 60}, p.LockingPeriods)
		return nil
	}))
}
