// Copyright (c) 2025 The Keel developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"github.com/pkg/errors"

	"github.com/keelstake/keel/builtin"
	"github.com/keelstake/keel/builtin/reverts"
	"github.com/keelstake/keel/log"
	"github.com/keelstake/keel/state"
	Tx "github.com/keelstake/keel/tx"
	"github.com/keelstake/keel/xenv"
)

var logger = log.WithContext("pkg", "runtime")

// ErrUnknownMethod is returned for a clause calling a method no program implements.
var ErrUnknownMethod = reverts.New("unknown method")

// Runtime is to support transaction execution.
type Runtime struct {
	state *state.State

	// ledger env
	number uint32
	time   uint64
}

// New create a Runtime object.
func New(state *state.State, number uint32, time uint64) *Runtime {
	return &Runtime{
		state:  state,
		number: number,
		time:   time,
	}
}

func (rt *Runtime) State() *state.State { return rt.state }
func (rt *Runtime) Number() uint32      { return rt.number }
func (rt *Runtime) Time() uint64        { return rt.time }

func (rt *Runtime) execute(clause *Tx.Clause, txCtx *xenv.TransactionContext) error {
	call := builtin.HandleNativeCall(
		rt.state,
		&xenv.BlockContext{Number: rt.number, Time: rt.time},
		txCtx,
		clause.Program(),
		clause.Method(),
		clause.Data(),
	)
	if call == nil {
		return reverts.Wrap(ErrUnknownMethod, errors.Errorf("%v.%v", clause.Program(), clause.Method()))
	}
	return call()
}

// ExecuteTransaction executes a transaction.
// A rejected transaction yields a reverted receipt and leaves the state untouched.
// The returned error is only set on infrastructure failure.
func (rt *Runtime) ExecuteTransaction(tx *Tx.Transaction) (*Tx.Receipt, error) {
	receipt := &Tx.Receipt{
		TxID:   tx.ID(),
		Number: rt.number,
		Time:   rt.time,
	}
	reject := func(index int, err error) (*Tx.Receipt, error) {
		if !reverts.IsRevertErr(err) {
			return nil, err
		}
		receipt.Reverted = true
		receipt.BadClauseIndex = uint32(index)
		receipt.RevertReason = err.Error()
		receipt.Err = err
		logger.Debug("tx reverted", "id", receipt.TxID, "clause", index, "err", err)
		return receipt, nil
	}

	resolvedTx, err := ResolveTransaction(tx)
	if err != nil {
		return reject(0, err)
	}
	txCtx := &xenv.TransactionContext{
		ID:     receipt.TxID,
		Origin: resolvedTx.Origin,
	}

	// checkpoint to be reverted when clause failure.
	checkpoint := rt.state.NewCheckpoint()
	for i, clause := range resolvedTx.Clauses {
		if err := rt.execute(clause, txCtx); err != nil {
			// revert all executed clauses
			rt.state.RevertTo(checkpoint)
			return reject(i, err)
		}
	}
	return receipt, nil
}
