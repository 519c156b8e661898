// Copyright (c) 2025 The Keel developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/gagliardetto/solana-go"

	"github.com/keelstake/keel/xenv"
)

type program struct {
	name    string
	Address solana.PublicKey
}

func newProgram(name string, addr solana.PublicKey) *program {
	return &program{name, addr}
}

// Name returns the name of the program.
func (p *program) Name() string {
	return p.name
}

func (p *program) impl(name string, run func(env *xenv.Environment) error) *nativeMethod {
	return &nativeMethod{
		program: p,
		name:    name,
		run:     run,
	}
}
