// Copyright (c) 2025 The Keel developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package xenv

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github.com/keelstake/keel/builtin/reverts"
	"github.com/keelstake/keel/keel"
	"github.com/keelstake/keel/state"
)

// ErrDecodeInput is returned when the clause data does not decode into the method's arguments.
var ErrDecodeInput = reverts.New("decode native input")

// BlockContext context of the ledger entry being produced.
type BlockContext struct {
	Number uint32
	Time   uint64
}

// TransactionContext transaction context.
type TransactionContext struct {
	ID     keel.Bytes32
	Origin solana.PublicKey
}

type vmError struct {
	cause error
}

// Environment an env to execute native method.
type Environment struct {
	program  solana.PublicKey
	input    []byte
	state    *state.State
	blockCtx *BlockContext
	txCtx    *TransactionContext
	signers  map[solana.PublicKey]struct{}
}

// New create a new env for program. The transaction origin is the only signer.
func New(
	program solana.PublicKey,
	input []byte,
	state *state.State,
	blockCtx *BlockContext,
	txCtx *TransactionContext,
) *Environment {
	return &Environment{
		program:  program,
		input:    input,
		state:    state,
		blockCtx: blockCtx,
		txCtx:    txCtx,
		signers:  map[solana.PublicKey]struct{}{txCtx.Origin: {}},
	}
}

func (env *Environment) Program() solana.PublicKey                { return env.program }
func (env *Environment) State() *state.State                     { return env.state }
func (env *Environment) TransactionContext() *TransactionContext { return env.txCtx }
func (env *Environment) BlockContext() *BlockContext             { return env.blockCtx }

// IsSigner returns whether the request carries the authorization of identity.
func (env *Environment) IsSigner(identity solana.PublicKey) bool {
	_, ok := env.signers[identity]
	return ok
}

// Invoke returns an env for calling into program, carrying the current signers.
func (env *Environment) Invoke(program solana.PublicKey) *Environment {
	return &Environment{
		program:  program,
		state:    env.state,
		blockCtx: env.blockCtx,
		txCtx:    env.txCtx,
		signers:  env.signers,
	}
}

// InvokeSigned is Invoke with the address derived from seeds under the
// current program added as a signer.
func (env *Environment) InvokeSigned(program solana.PublicKey, seeds ...[]byte) (*Environment, error) {
	pda, _, err := keel.FindProgramAddress(env.program, seeds...)
	if err != nil {
		return nil, errors.Wrap(err, "derive signer")
	}
	signers := make(map[solana.PublicKey]struct{}, len(env.signers)+1)
	for k := range env.signers {
		signers[k] = struct{}{}
	}
	signers[pda] = struct{}{}

	child := env.Invoke(program)
	child.signers = signers
	return child, nil
}

// ParseArgs decodes the input into val, and stops the execution on failure.
func (env *Environment) ParseArgs(val any) {
	if err := rlp.DecodeBytes(env.input, val); err != nil {
		panic(&vmError{reverts.Wrap(ErrDecodeInput, err)})
	}
}

// Stop aborts the execution with err.
func (env *Environment) Stop(err error) {
	panic(&vmError{err})
}

// Call wraps proc, turning Stop and ParseArgs failures into the returned error.
func (env *Environment) Call(proc func(env *Environment) error) func() error {
	return func() (err error) {
		defer func() {
			if e := recover(); e != nil {
				if rec, ok := e.(*vmError); ok {
					err = rec.cause
				} else {
					panic(e)
				}
			}
		}()
		return proc(env)
	}
}
