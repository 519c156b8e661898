// Copyright (c) 2025 The Keel developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package record

import (
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github.com/keelstake/keel/builtin/solidity"
	"github.com/keelstake/keel/keel"
)

var slotRecords = keel.BytesToBytes32([]byte("stake-records"))

// Derive returns the record address of (owner, mint) under program.
// It is pure and any party can recompute it.
func Derive(program, owner, mint solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := keel.FindProgramAddress(program, owner[:], mint[:])
	return addr, err
}

// Service is the stake record store.
type Service struct {
	program solana.PublicKey
	records *solidity.Mapping[solana.PublicKey, *body]
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		program: sctx.Address(),
		records: solidity.NewMapping[solana.PublicKey, *body](sctx, slotRecords),
	}
}

// Derive returns the record address of (owner, mint).
func (s *Service) Derive(owner, mint solana.PublicKey) (solana.PublicKey, error) {
	return Derive(s.program, owner, mint)
}

// Load returns the record at address, nil if absent.
func (s *Service) Load(address solana.PublicKey) (*Record, error) {
	b, err := s.records.Get(address)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get stake record")
	}
	if b == nil {
		return nil, nil
	}
	return &Record{address: address, body: b}, nil
}

// CreateOrLoad returns the record of (owner, mint), or a new unstaked one when absent.
// A new record is not persisted until committed.
func (s *Service) CreateOrLoad(owner, mint solana.PublicKey) (*Record, error) {
	address, err := s.Derive(owner, mint)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive stake record")
	}
	rec, err := s.Load(address)
	if err != nil {
		return nil, err
	}
	if rec != nil {
		return rec, nil
	}
	return &Record{
		address: address,
		body: &body{
			Owner:  owner,
			Mint:   mint,
			Status: StatusUnstaked,
		},
	}, nil
}

// Commit persists the record.
func (s *Service) Commit(rec *Record) error {
	if err := s.records.Upsert(rec.address, rec.body); err != nil {
		return errors.Wrap(err, "failed to commit stake record")
	}
	return nil
}
