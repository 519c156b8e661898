// Copyright (c) 2025 The Keel developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"errors"

	"github.com/gagliardetto/solana-go"

	"github.com/keelstake/keel/builtin/reverts"
	"github.com/keelstake/keel/builtin/solidity"
	"github.com/keelstake/keel/builtin/staking/custody"
	"github.com/keelstake/keel/builtin/staking/pool"
	"github.com/keelstake/keel/builtin/staking/record"
	"github.com/keelstake/keel/builtin/staking/verifier"
	"github.com/keelstake/keel/keel"
	"github.com/keelstake/keel/log"
	"github.com/keelstake/keel/state"
	"github.com/keelstake/keel/xenv"
)

var logger = log.WithContext("pkg", "staking")

// Staking implements native methods of the staking program.
type Staking struct {
	address solana.PublicKey
	state   *state.State

	recordService *record.Service
	poolService   *pool.Service
	verifier      *verifier.Verifier
}

// New create a new instance.
func New(addr solana.PublicKey, state *state.State) *Staking {
	sctx := solidity.NewContext(addr, state)
	return &Staking{
		address:       addr,
		state:         state,
		recordService: record.New(sctx),
		poolService:   pool.New(sctx),
		verifier:      verifier.New(keel.MetadataProgramID, state),
	}
}

//
// Getters - no state change
//

// Pool returns the staking pool, nil if not initialized.
func (s *Staking) Pool() (*pool.Pool, error) {
	return s.poolService.Get()
}

// RecordAddress derives the stake record address of (owner, mint).
func (s *Staking) RecordAddress(owner, mint solana.PublicKey) (solana.PublicKey, error) {
	return s.recordService.Derive(owner, mint)
}

// Record returns the stake record of (owner, mint), nil if absent.
func (s *Staking) Record(owner, mint solana.PublicKey) (*record.Record, error) {
	addr, err := s.recordService.Derive(owner, mint)
	if err != nil {
		return nil, err
	}
	return s.recordService.Load(addr)
}

//
// Setters - state change
//

// InitializePool creates the staking pool. The authority must sign.
func (s *Staking) InitializePool(env *xenv.Environment, args *InitializePoolArgs) (err error) {
	defer func() { observe("initializePool", err) }()
	logger.Debug("initialize pool", "authority", args.Authority, "periods", args.LockingPeriods)

	if err := requireSigner(env, args.Authority); err != nil {
		return err
	}
	return s.atomic(func() error {
		if _, err := s.poolService.Initialize(args.Authority, args.LockingPeriods); err != nil {
			switch {
			case errors.Is(err, pool.ErrAlreadyInitialized):
				return ErrAlreadyInitializedPool
			case errors.Is(err, pool.ErrPeriodTooLong):
				return reverts.Wrap(ErrUnexpectedLockingPeriod, err)
			}
			return err
		}
		logger.Info("pool initialized", "authority", args.Authority)
		return nil
	})
}

// Stake locks the token into program custody and marks its record staked.
func (s *Staking) Stake(env *xenv.Environment, args *StakeArgs) (err error) {
	defer func() { observe("stake", err) }()
	logger.Debug("stake", "owner", args.Owner, "mint", args.Mint, "period", args.LockingPeriod)

	if err := requireSigner(env, args.Owner); err != nil {
		return err
	}
	return s.atomic(func() error {
		p, err := s.requirePool()
		if err != nil {
			return err
		}
		adapter, err := custody.New(env)
		if err != nil {
			return err
		}
		if err := s.requireHolder(adapter, args.Owner, args.TokenAccount, args.Mint); err != nil {
			return err
		}

		rec, err := s.recordService.CreateOrLoad(args.Owner, args.Mint)
		if err != nil {
			return err
		}
		if rec.IsStaked() {
			return ErrAlreadyStaked
		}
		if !p.AllowsPeriod(args.LockingPeriod) {
			return ErrUnexpectedLockingPeriod
		}
		if err := s.verify(args.Mint, args.MetadataService, args.Edition); err != nil {
			return err
		}

		if err := adapter.Lock(custody.Target{
			TokenAccount: args.TokenAccount,
			Mint:         args.Mint,
			Edition:      args.Edition,
		}); err != nil {
			return custodyError(ErrCustodyTransferFailed, err)
		}

		if err := rec.Stake(env.BlockContext().Time, args.LockingPeriod); err != nil {
			return err
		}
		if err := s.recordService.Commit(rec); err != nil {
			return err
		}
		if err := s.poolService.AddStaked(p, 1); err != nil {
			return err
		}
		metricStaked().Set(int64(p.StakedCount))
		logger.Info("staked", "owner", args.Owner, "mint", args.Mint, "record", rec.Address())
		return nil
	})
}

// Unstake releases the token back to the owner and marks its record unstaked.
func (s *Staking) Unstake(env *xenv.Environment, args *UnstakeArgs) (err error) {
	defer func() { observe("unstake", err) }()
	logger.Debug("unstake", "owner", args.Owner, "mint", args.Mint)

	if err := requireSigner(env, args.Owner); err != nil {
		return err
	}
	return s.atomic(func() error {
		p, err := s.requirePool()
		if err != nil {
			return err
		}
		adapter, err := custody.New(env)
		if err != nil {
			return err
		}
		if err := s.requireHolder(adapter, args.Owner, args.TokenAccount, args.Mint); err != nil {
			return err
		}

		addr, err := s.recordService.Derive(args.Owner, args.Mint)
		if err != nil {
			return err
		}
		rec, err := s.recordService.Load(addr)
		if err != nil {
			return err
		}
		if rec == nil || !rec.IsStaked() {
			return ErrNotStaked
		}
		now := env.BlockContext().Time
		if !rec.Unlocked(now) {
			return ErrEndTimeNotOver
		}
		if err := s.verify(args.Mint, args.MetadataService, args.Edition); err != nil {
			return err
		}

		if err := adapter.Release(custody.Target{
			TokenAccount: args.TokenAccount,
			Mint:         args.Mint,
			Edition:      args.Edition,
		}); err != nil {
			return custodyError(ErrCustodyReleaseFailed, err)
		}

		if err := rec.Unstake(now); err != nil {
			return err
		}
		if err := s.recordService.Commit(rec); err != nil {
			return err
		}
		if err := s.poolService.AddStaked(p, -1); err != nil {
			return err
		}
		metricStaked().Set(int64(p.StakedCount))
		logger.Info("unstaked", "owner", args.Owner, "mint", args.Mint, "record", rec.Address())
		return nil
	})
}

// requireSigner is the request authorization check: the request must carry
// the signature of identity.
func requireSigner(env *xenv.Environment, identity solana.PublicKey) error {
	if !env.IsSigner(identity) {
		return ErrUnauthorized
	}
	return nil
}

func (s *Staking) requirePool() (*pool.Pool, error) {
	p, err := s.poolService.Get()
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotInitializedPool
	}
	return p, nil
}

// requireHolder checks that owner holds the single unit of mint in tokenAccount.
func (s *Staking) requireHolder(adapter *custody.Adapter, owner, tokenAccount, mint solana.PublicKey) error {
	acc, err := adapter.Inspect(tokenAccount)
	if err != nil {
		return err
	}
	if acc == nil || acc.Owner != owner || acc.Mint != mint || acc.Amount != keel.NFTSupply {
		return ErrNotOwner
	}
	return nil
}

func (s *Staking) verify(mint, service, edition solana.PublicKey) error {
	if err := s.verifier.Verify(mint, service, edition); err != nil {
		var serr *state.Error
		if errors.As(err, &serr) {
			return err
		}
		return reverts.Wrap(ErrInvalidMetadata, err)
	}
	return nil
}

// custodyError maps a rejected custody step to kind. Storage failures pass through.
func custodyError(kind *reverts.ErrRevert, err error) error {
	if reverts.IsRevertErr(err) {
		return reverts.Wrap(kind, err)
	}
	return err
}

// atomic runs fn, reverting its state changes when it fails.
func (s *Staking) atomic(fn func() error) error {
	rev := s.state.NewCheckpoint()
	if err := fn(); err != nil {
		s.state.RevertTo(rev)
		logger.Info("request rejected", "err", err)
		return err
	}
	return nil
}
