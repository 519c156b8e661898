// Copyright (c) 2025 The Keel developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package ledger orders signed transactions into an append-only log, applying
// each one atomically to the program state.
package ledger

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/keelstake/keel/keel"
	"github.com/keelstake/keel/kv"
	"github.com/keelstake/keel/log"
	keelrt "github.com/keelstake/keel/runtime"
	"github.com/keelstake/keel/state"
	"github.com/keelstake/keel/tx"
)

var logger = log.WithContext("pkg", "ledger")

// ErrDuplicateTx is returned when a transaction with the same id was already accepted.
var ErrDuplicateTx = errors.New("ledger: duplicate tx")

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock sets the source of entry timestamps, in unix seconds.
func WithClock(clock func() uint64) Option {
	return func(l *Ledger) {
		l.clock = clock
	}
}

// Ledger serializes transactions over a kv store. Accepted transactions get
// consecutive numbers and non-decreasing timestamps.
type Ledger struct {
	db     kv.Store
	stater *state.Stater
	clock  func() uint64

	rw   sync.RWMutex
	head Entry
}

// New opens the ledger stored in db.
func New(db kv.Store, opts ...Option) (*Ledger, error) {
	l := &Ledger{
		db:     db,
		stater: state.NewStater(db),
		clock:  func() uint64 { return uint64(time.Now().Unix()) },
	}
	for _, opt := range opts {
		opt(l)
	}

	data, err := db.Get(headKey)
	if err != nil {
		if !db.IsNotFound(err) {
			return nil, errors.Wrap(err, "load head")
		}
	} else if err := rlp.DecodeBytes(data, &l.head); err != nil {
		return nil, errors.Wrap(err, "decode head")
	}
	logger.Debug("ledger opened", "head", l.head.Number)
	return l, nil
}

// Head returns the latest entry. The zero entry is returned for an empty ledger.
func (l *Ledger) Head() Entry {
	l.rw.RLock()
	defer l.rw.RUnlock()
	return l.head
}

// Entry returns the n-th entry, nil if absent.
func (l *Ledger) Entry(n uint32) (*Entry, error) {
	data, err := l.db.Get(entryKey(n))
	if err != nil {
		if l.db.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	var entry Entry
	if err := rlp.DecodeBytes(data, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Receipt returns the receipt of an accepted transaction, nil if absent.
func (l *Ledger) Receipt(id keel.Bytes32) (*tx.Receipt, error) {
	data, err := l.db.Get(receiptKey(id))
	if err != nil {
		if l.db.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	var receipt tx.Receipt
	if err := rlp.DecodeBytes(data, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

// Entries calls fn on each entry in ledger order until fn returns an error.
func (l *Ledger) Entries(fn func(*Entry) error) error {
	it := l.db.Iterate(kv.PrefixRange(entryPrefix))
	defer it.Release()

	for it.Next() {
		var entry Entry
		if err := rlp.DecodeBytes(it.Value(), &entry); err != nil {
			return errors.Wrap(err, "decode entry")
		}
		if err := fn(&entry); err != nil {
			return err
		}
	}
	return it.Error()
}

// View runs fn over the committed state. Changes made by fn are discarded.
func (l *Ledger) View(fn func(st *state.State) error) error {
	l.rw.RLock()
	defer l.rw.RUnlock()
	return fn(l.stater.NewState())
}

// Submit orders trx after every previously submitted transaction and applies it.
// A rejected transaction returns a reverted receipt and changes nothing.
// ctx is only honoured until the transaction is ordered.
func (l *Ledger) Submit(ctx context.Context, trx *tx.Transaction) (*tx.Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.rw.Lock()
	defer l.rw.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return l.apply(trx)
}

// SubmitBatch submits txs in order. Signatures are verified up front in parallel.
func (l *Ledger) SubmitBatch(ctx context.Context, txs []*tx.Transaction) ([]*tx.Receipt, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, trx := range txs {
		g.Go(func() error {
			// the outcome is cached in trx and acted upon when applied
			_ = trx.VerifySignature()
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.rw.Lock()
	defer l.rw.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	receipts := make([]*tx.Receipt, 0, len(txs))
	for _, trx := range txs {
		receipt, err := l.apply(trx)
		if err != nil {
			return receipts, err
		}
		receipts = append(receipts, receipt)
	}
	return receipts, nil
}

func (l *Ledger) apply(trx *tx.Transaction) (receipt *tx.Receipt, err error) {
	start := time.Now()
	defer func() {
		outcome := "accepted"
		switch {
		case err != nil:
			outcome = "error"
		case receipt.Reverted:
			outcome = "reverted"
		}
		metricTxCounter().AddWithLabel(1, map[string]string{"outcome": outcome})
		metricTxDuration().Observe(time.Since(start).Milliseconds())
	}()

	id := trx.ID()
	exists, err := l.db.Has(receiptKey(id))
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateTx
	}

	number := l.head.Number + 1
	now := l.clock()
	if now < l.head.Time {
		now = l.head.Time
	}

	st := l.stater.NewState()
	receipt, err = keelrt.New(st, number, now).ExecuteTransaction(trx)
	if err != nil {
		return nil, err
	}
	if receipt.Reverted {
		return receipt, nil
	}

	stage := st.Stage()
	receipt.StateRoot = stage.Hash()
	entry := Entry{
		Number:    number,
		Time:      now,
		TxID:      id,
		StateRoot: receipt.StateRoot,
	}

	batch := l.db.NewBatch()
	if err := stage.Commit(batch); err != nil {
		return nil, err
	}
	if err := putRLP(batch, receiptKey(id), receipt); err != nil {
		return nil, err
	}
	if err := putRLP(batch, entryKey(number), &entry); err != nil {
		return nil, err
	}
	if err := putRLP(batch, headKey, &entry); err != nil {
		return nil, err
	}
	if err := batch.Write(); err != nil {
		return nil, errors.Wrap(err, "write batch")
	}

	l.head = entry
	metricHead().Set(int64(number))
	logger.Debug("tx accepted", "number", number, "id", id, "changes", stage.Len())
	return receipt, nil
}

func putRLP(putter kv.Putter, key []byte, val any) error {
	data, err := rlp.EncodeToBytes(val)
	if err != nil {
		return err
	}
	return putter.Put(key, data)
}
