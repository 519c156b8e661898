// Copyright (c) 2025 The Keel developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package record

import (
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
)

type Status = uint8

const (
	StatusUnstaked = Status(iota) // 0 -> default value, an absent record reads as unstaked
	StatusStaked
)

// transitions lists the statuses reachable from each status.
var transitions = map[Status][]Status{
	StatusUnstaked: {StatusStaked},
	StatusStaked:   {StatusUnstaked},
}

var ErrInvalidTransition = errors.New("record: invalid status transition")

// Record is the stake record of one (owner, mint) pair.
type Record struct {
	address solana.PublicKey
	body    *body
}

type body struct {
	Owner          solana.PublicKey // the holder of the token, immutable
	Mint           solana.PublicKey // the mint of the staked token, immutable
	Status         Status
	StakeStartTime uint64 // ledger time of the last stake
	LockingPeriod  uint64 // seconds the token stays locked after StakeStartTime
	UnstakedAt     uint64 // ledger time of the last unstake
}

func (r *Record) Address() solana.PublicKey { return r.address }
func (r *Record) Owner() solana.PublicKey   { return r.body.Owner }
func (r *Record) Mint() solana.PublicKey    { return r.body.Mint }
func (r *Record) Status() Status            { return r.body.Status }
func (r *Record) IsStaked() bool            { return r.body.Status == StatusStaked }
func (r *Record) StakeStartTime() uint64    { return r.body.StakeStartTime }
func (r *Record) LockingPeriod() uint64     { return r.body.LockingPeriod }
func (r *Record) UnstakedAt() uint64        { return r.body.UnstakedAt }

// LockEnd returns the earliest time the record can be unstaked.
func (r *Record) LockEnd() uint64 {
	end := r.body.StakeStartTime + r.body.LockingPeriod
	if end < r.body.StakeStartTime {
		return ^uint64(0)
	}
	return end
}

// Unlocked returns whether the locking period is over at now.
func (r *Record) Unlocked(now uint64) bool {
	return now >= r.LockEnd()
}

func (r *Record) transit(to Status) error {
	for _, next := range transitions[r.body.Status] {
		if next == to {
			r.body.Status = to
			return nil
		}
	}
	return errors.Wrapf(ErrInvalidTransition, "%d -> %d", r.body.Status, to)
}

// Stake moves the record to staked, starting a lock of period seconds at now.
func (r *Record) Stake(now, period uint64) error {
	if err := r.transit(StatusStaked); err != nil {
		return err
	}
	r.body.StakeStartTime = now
	r.body.LockingPeriod = period
	return nil
}

// Unstake moves the record back to unstaked at now.
func (r *Record) Unstake(now uint64) error {
	if err := r.transit(StatusUnstaked); err != nil {
		return err
	}
	r.body.UnstakedAt = now
	return nil
}
