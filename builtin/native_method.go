// Copyright (c) 2025 The Keel developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/gagliardetto/solana-go"

	"github.com/keelstake/keel/state"
	"github.com/keelstake/keel/xenv"
)

// nativeMethod describes a native call.
type nativeMethod struct {
	program *program
	name    string
	run     func(env *xenv.Environment) error
}

func (n *nativeMethod) String() string {
	return n.program.name + "." + n.name
}

// Call runs the method with the given input. Argument decoding failures are
// returned as reverts.
func (n *nativeMethod) Call(
	state *state.State,
	blockCtx *xenv.BlockContext,
	txCtx *xenv.TransactionContext,
	input []byte,
) error {
	env := xenv.New(n.program.Address, input, state, blockCtx, txCtx)
	return env.Call(n.run)()
}

type programAndMethod struct {
	program solana.PublicKey
	method  string
}
