// Copyright (c) 2025 The Keel developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/gagliardetto/solana-go"

	"github.com/keelstake/keel/state"
)

// Context binds typed storage to the storage space of one program.
type Context struct {
	address solana.PublicKey
	state   *state.State
}

func NewContext(address solana.PublicKey, state *state.State) *Context {
	return &Context{
		address: address,
		state:   state,
	}
}

func (c *Context) Address() solana.PublicKey {
	return c.address
}

func (c *Context) State() *state.State {
	return c.state
}
