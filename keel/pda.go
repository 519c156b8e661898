// Copyright (c) 2025 The Keel developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package keel

import (
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/keelstake/keel/cache"
)

// ProgramAddress is a program-derived address with the bump seed that pushed it off the curve.
type ProgramAddress struct {
	Address solana.PublicKey
	Bump    uint8
}

var pdaCache = func() *cache.LRU[string, ProgramAddress] {
	c, err := cache.NewLRU[string, ProgramAddress](4096)
	if err != nil {
		panic(err)
	}
	return c
}()

// FindProgramAddress derives the address owned by program for the given seeds.
// The derivation is pure: same program and seeds always give the same address.
func FindProgramAddress(program solana.PublicKey, seeds ...[]byte) (solana.PublicKey, uint8, error) {
	if len(seeds) > MaxSeeds {
		return solana.PublicKey{}, 0, fmt.Errorf("too many seeds: %d", len(seeds))
	}
	for i, seed := range seeds {
		if len(seed) > MaxSeedLength {
			return solana.PublicKey{}, 0, fmt.Errorf("seed %d exceeds %d bytes", i, MaxSeedLength)
		}
	}

	pda, err := pdaCache.GetOrLoad(pdaCacheKey(program, seeds), func(string) (ProgramAddress, error) {
		addr, bump, err := solana.FindProgramAddress(seeds, program)
		if err != nil {
			return ProgramAddress{}, err
		}
		return ProgramAddress{addr, bump}, nil
	})
	if err != nil {
		return solana.PublicKey{}, 0, err
	}
	return pda.Address, pda.Bump, nil
}

// MustFindProgramAddress is FindProgramAddress that panics on error.
func MustFindProgramAddress(program solana.PublicKey, seeds ...[]byte) solana.PublicKey {
	addr, _, err := FindProgramAddress(program, seeds...)
	if err != nil {
		panic(err)
	}
	return addr
}

// pdaCacheKey length-prefixes every seed so that different seed splits never share a key.
func pdaCacheKey(program solana.PublicKey, seeds [][]byte) string {
	size := len(program)
	for _, seed := range seeds {
		size += 1 + len(seed)
	}
	buf := make([]byte, 0, size)
	buf = append(buf, program[:]...)
	for _, seed := range seeds {
		buf = binary.AppendUvarint(buf, uint64(len(seed)))
		buf = append(buf, seed...)
	}
	return string(buf)
}
