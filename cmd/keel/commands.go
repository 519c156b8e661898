// Copyright (c) 2025 The Keel developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"
	"gopkg.in/cheggaaa/pb.v1"

	"github.com/keelstake/keel/builtin"
	"github.com/keelstake/keel/builtin/metadata"
	"github.com/keelstake/keel/builtin/staking"
	"github.com/keelstake/keel/builtin/staking/record"
	"github.com/keelstake/keel/builtin/token"
	"github.com/keelstake/keel/ledger"
	"github.com/keelstake/keel/state"
	"github.com/keelstake/keel/tx"
)

type ledgerAction func(ctx *cli.Context, l *ledger.Ledger) error

// withLedger opens the ledger and the metrics server around action.
func withLedger(action ledgerAction) func(ctx *cli.Context) error {
	return func(ctx *cli.Context) error {
		cfg, err := makeConfig(ctx)
		if err != nil {
			return err
		}
		stopMetrics, err := startMetrics(ctx, cfg)
		if err != nil {
			return err
		}
		defer stopMetrics()

		l, closeLedger, err := openLedger(cfg)
		if err != nil {
			return err
		}
		defer closeLedger()
		return action(ctx, l)
	}
}

func keygenAction(ctx *cli.Context) error {
	key, err := solana.NewRandomPrivateKey()
	if err != nil {
		return err
	}
	path := ctx.String(outFlag.Name)
	if err := saveKey(path, key); err != nil {
		return errors.Wrap(err, "save key")
	}
	fmt.Println(key.PublicKey())
	return nil
}

// submit signs clauses with the keyfile identity and submits them as one tx.
func submit(ctx *cli.Context, l *ledger.Ledger, clauses ...*tx.Clause) (*tx.Receipt, error) {
	key, err := loadKey(ctx.GlobalString(keyFileFlag.Name))
	if err != nil {
		return nil, err
	}
	b := new(tx.Builder).
		Origin(key.PublicKey()).
		Nonce(uint64(time.Now().UnixNano()))
	for _, c := range clauses {
		b.Clause(c)
	}
	trx, err := tx.Sign(b.Build(), key)
	if err != nil {
		return nil, err
	}
	receipt, err := l.Submit(context.Background(), trx)
	if err != nil {
		return nil, err
	}
	if receipt.Reverted {
		return nil, errors.Errorf("tx %v rejected: %v", receipt.TxID, receipt.RevertReason)
	}
	logger.Info("tx accepted", "id", receipt.TxID, "number", receipt.Number)
	return receipt, nil
}

func keyfileIdentity(ctx *cli.Context) (solana.PublicKey, error) {
	key, err := loadKey(ctx.GlobalString(keyFileFlag.Name))
	if err != nil {
		return solana.PublicKey{}, err
	}
	return key.PublicKey(), nil
}

func mintNFTAction(ctx *cli.Context, l *ledger.Ledger) error {
	owner, err := keyfileIdentity(ctx)
	if err != nil {
		return err
	}
	mintKey, err := solana.NewRandomPrivateKey()
	if err != nil {
		return err
	}
	mint := mintKey.PublicKey()

	clauses, err := builtin.MintNFTClauses(owner, mint, metadata.Data{
		Name:   ctx.String(nameFlag.Name),
		Symbol: ctx.String(symbolFlag.Name),
		URI:    ctx.String(uriFlag.Name),
	})
	if err != nil {
		return err
	}
	if _, err := submit(ctx, l, clauses...); err != nil {
		return err
	}

	account, err := token.AssociatedAccount(owner, mint)
	if err != nil {
		return err
	}
	mdAddr, err := metadata.RecordAddress(builtin.Metadata.Address, mint)
	if err != nil {
		return err
	}
	edition, err := metadata.EditionAddress(builtin.Metadata.Address, mint)
	if err != nil {
		return err
	}
	fmt.Printf("mint:          %v\n", mint)
	fmt.Printf("token account: %v\n", account)
	fmt.Printf("metadata:      %v\n", mdAddr)
	fmt.Printf("edition:       %v\n", edition)
	return nil
}

func initPoolAction(ctx *cli.Context, l *ledger.Ledger) error {
	authority, err := keyfileIdentity(ctx)
	if err != nil {
		return err
	}
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	periods := cfg.LockingPeriods
	if ctx.IsSet(periodsFlag.Name) {
		if periods, err = parsePeriods(ctx.String(periodsFlag.Name)); err != nil {
			return err
		}
	}
	clause, err := builtin.Staking.Clause("initializePool", &staking.InitializePoolArgs{
		Authority:      authority,
		LockingPeriods: periods,
	})
	if err != nil {
		return err
	}
	_, err = submit(ctx, l, clause)
	return err
}

// stakeRefs resolves the accounts referenced by stake and unstake.
func stakeRefs(ctx *cli.Context) (owner, mint, account, edition solana.PublicKey, err error) {
	if owner, err = keyfileIdentity(ctx); err != nil {
		return
	}
	if mint, err = parsePublicKey(ctx, mintFlag); err != nil {
		return
	}
	if account, err = token.AssociatedAccount(owner, mint); err != nil {
		return
	}
	edition, err = metadata.EditionAddress(builtin.Metadata.Address, mint)
	return
}

func stakeAction(ctx *cli.Context, l *ledger.Ledger) error {
	owner, mint, account, edition, err := stakeRefs(ctx)
	if err != nil {
		return err
	}
	clause, err := builtin.Staking.Clause("stake", &staking.StakeArgs{
		Owner:           owner,
		TokenAccount:    account,
		Mint:            mint,
		Edition:         edition,
		MetadataService: builtin.Metadata.Address,
		LockingPeriod:   ctx.Uint64(periodFlag.Name),
	})
	if err != nil {
		return err
	}
	_, err = submit(ctx, l, clause)
	return err
}

func unstakeAction(ctx *cli.Context, l *ledger.Ledger) error {
	owner, mint, account, edition, err := stakeRefs(ctx)
	if err != nil {
		return err
	}
	clause, err := builtin.Staking.Clause("unstake", &staking.UnstakeArgs{
		Owner:           owner,
		TokenAccount:    account,
		Mint:            mint,
		Edition:         edition,
		MetadataService: builtin.Metadata.Address,
	})
	if err != nil {
		return err
	}
	_, err = submit(ctx, l, clause)
	return err
}

func ownerAndMint(ctx *cli.Context) (owner, mint solana.PublicKey, err error) {
	if ctx.String(ownerFlag.Name) != "" {
		owner, err = parsePublicKey(ctx, ownerFlag)
	} else {
		owner, err = keyfileIdentity(ctx)
	}
	if err != nil {
		return
	}
	mint, err = parsePublicKey(ctx, mintFlag)
	return
}

func deriveAction(ctx *cli.Context) error {
	owner, mint, err := ownerAndMint(ctx)
	if err != nil {
		return err
	}
	addr, err := record.Derive(builtin.Staking.Address, owner, mint)
	if err != nil {
		return err
	}
	fmt.Println(addr)
	return nil
}

func recordAction(ctx *cli.Context, l *ledger.Ledger) error {
	owner, mint, err := ownerAndMint(ctx)
	if err != nil {
		return err
	}
	return l.View(func(st *state.State) error {
		s := builtin.Staking.WithState(st)
		addr, err := s.RecordAddress(owner, mint)
		if err != nil {
			return err
		}
		rec, err := s.Record(owner, mint)
		if err != nil {
			return err
		}
		fmt.Printf("address: %v\n", addr)
		if rec == nil {
			fmt.Println("state:   unstaked (absent)")
			return nil
		}
		status := "unstaked"
		if rec.IsStaked() {
			status = "staked"
		}
		fmt.Printf("state:   %v\n", status)
		fmt.Printf("since:   %v\n", time.Unix(int64(rec.StakeStartTime()), 0).UTC())
		fmt.Printf("lock:    %vs\n", rec.LockingPeriod())
		if ctx.Bool(dumpFlag.Name) {
			spew.Dump(rec)
		}
		return nil
	})
}

func verifyAction(_ *cli.Context, l *ledger.Ledger) error {
	head := l.Head()
	bar := pb.New64(int64(head.Number)).SetMaxWidth(90).Start()
	defer bar.Finish()

	next := uint32(1)
	err := l.Entries(func(entry *ledger.Entry) error {
		if entry.Number != next {
			return errors.Errorf("entry %v missing", next)
		}
		receipt, err := l.Receipt(entry.TxID)
		if err != nil {
			return err
		}
		if receipt == nil || receipt.Number != entry.Number || receipt.StateRoot != entry.StateRoot {
			return errors.Errorf("entry %v does not match its receipt", entry.Number)
		}
		next++
		bar.Increment()
		return nil
	})
	if err != nil {
		return err
	}
	if next-1 != head.Number {
		return errors.Errorf("head %v ahead of entries %v", head.Number, next-1)
	}
	return nil
}
