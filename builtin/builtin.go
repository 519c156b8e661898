// Copyright (c) 2025 The Keel developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/keelstake/keel/builtin/metadata"
	"github.com/keelstake/keel/builtin/staking"
	"github.com/keelstake/keel/builtin/token"
	"github.com/keelstake/keel/keel"
	"github.com/keelstake/keel/state"
)

// Builtin programs binding.
var (
	Token    = &tokenProgram{newProgram("token", keel.TokenProgramID)}
	Metadata = &metadataProgram{newProgram("metadata", keel.MetadataProgramID)}
	Staking  = &stakingProgram{newProgram("staking", keel.StakingProgramID)}
)

type (
	tokenProgram    struct{ *program }
	metadataProgram struct{ *program }
	stakingProgram  struct{ *program }
)

func (p *tokenProgram) WithState(state *state.State) *token.Token {
	return token.New(p.Address, state)
}

func (p *metadataProgram) WithState(state *state.State) *metadata.Metadata {
	return metadata.New(p.Address, state)
}

func (p *stakingProgram) WithState(state *state.State) *staking.Staking {
	return staking.New(p.Address, state)
}
