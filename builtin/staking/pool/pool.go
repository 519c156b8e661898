// Copyright (c) 2025 The Keel developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"slices"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github.com/keelstake/keel/builtin/solidity"
	"github.com/keelstake/keel/keel"
)

var (
	slotPools = keel.BytesToBytes32([]byte("staking-pools"))

	// DefaultLockingPeriods are the periods, in seconds, allowed when none are given.
	DefaultLockingPeriods = []uint64{0, 120, 300}

	// MaxLockingPeriod bounds every allowed period.
	MaxLockingPeriod = solidity.NewConfigVariable("staking-max-locking-period", 365*24*3600)

	ErrAlreadyInitialized = errors.New("pool: already initialized")
	ErrPeriodTooLong      = errors.New("pool: locking period too long")
	ErrCountUnderflow     = errors.New("pool: staked count underflow")
)

// Pool is the singleton staking pool.
type Pool struct {
	Authority      solana.PublicKey
	StakedCount    uint64
	IsInitialized  bool
	LockingPeriods []uint64
}

// AllowsPeriod returns whether period is one of the allowed locking periods.
func (p *Pool) AllowsPeriod(period uint64) bool {
	return slices.Contains(p.LockingPeriods, period)
}

// Address returns the pool address under program.
func Address(program solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := keel.FindProgramAddress(program, keel.SeedPool)
	return addr, err
}

type Service struct {
	sctx  *solidity.Context
	pools *solidity.Mapping[solana.PublicKey, *Pool]
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		sctx:  sctx,
		pools: solidity.NewMapping[solana.PublicKey, *Pool](sctx, slotPools),
	}
}

func (s *Service) address() (solana.PublicKey, error) {
	addr, err := Address(s.sctx.Address())
	if err != nil {
		return solana.PublicKey{}, errors.Wrap(err, "failed to derive pool address")
	}
	return addr, nil
}

// Get returns the pool, nil if not initialized.
func (s *Service) Get() (*Pool, error) {
	addr, err := s.address()
	if err != nil {
		return nil, err
	}
	p, err := s.pools.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get pool")
	}
	if p == nil || !p.IsInitialized {
		return nil, nil
	}
	return p, nil
}

// Initialize creates the pool. Empty periods select DefaultLockingPeriods.
func (s *Service) Initialize(authority solana.PublicKey, periods []uint64) (*Pool, error) {
	existing, err := s.Get()
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyInitialized
	}
	if len(periods) == 0 {
		periods = DefaultLockingPeriods
	}
	limit := MaxLockingPeriod.Get(s.sctx)
	for _, p := range periods {
		if p > limit {
			return nil, errors.Wrapf(ErrPeriodTooLong, "%d > %d", p, limit)
		}
	}
	periods = slices.Clone(periods)
	slices.Sort(periods)

	p := &Pool{
		Authority:      authority,
		IsInitialized:  true,
		LockingPeriods: slices.Compact(periods),
	}
	return p, s.save(p)
}

// AddStaked adjusts the staked count by delta.
func (s *Service) AddStaked(p *Pool, delta int64) error {
	if delta < 0 && p.StakedCount < uint64(-delta) {
		return ErrCountUnderflow
	}
	p.StakedCount = uint64(int64(p.StakedCount) + delta)
	return s.save(p)
}

func (s *Service) save(p *Pool) error {
	addr, err := s.address()
	if err != nil {
		return err
	}
	if err := s.pools.Upsert(addr, p); err != nil {
		return errors.Wrap(err, "failed to save pool")
	}
	return nil
}
