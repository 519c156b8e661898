// Copyright (c) 2025 The Keel developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github.com/keelstake/keel/builtin/metadata"
	"github.com/keelstake/keel/builtin/token"
	"github.com/keelstake/keel/keel"
	"github.com/keelstake/keel/tx"
)

// Clause builds a clause calling method of the program with args.
func (p *program) Clause(method string, args any) (*tx.Clause, error) {
	if _, ok := nativeMethods[programAndMethod{p.Address, method}]; !ok {
		return nil, errors.Errorf("unknown method %v.%v", p.name, method)
	}
	return tx.NewClause(p.Address, method).WithArgs(args)
}

// MintNFTClauses returns the clauses minting a unique token of mint to the
// associated account of owner, with its metadata and master edition. Owner
// keeps the authorities until the edition takes them over.
func MintNFTClauses(owner, mint solana.PublicKey, data metadata.Data) ([]*tx.Clause, error) {
	account, err := token.AssociatedAccount(owner, mint)
	if err != nil {
		return nil, err
	}

	var clauses []*tx.Clause
	for _, step := range []struct {
		p      *program
		method string
		args   any
	}{
		{Token.program, "initializeMint", &InitializeMintArgs{Mint: mint, MintAuthority: owner, FreezeAuthority: &owner}},
		{Token.program, "createAssociatedAccount", &CreateAssociatedAccountArgs{Owner: owner, Mint: mint}},
		{Token.program, "mintTo", &MintToArgs{Mint: mint, Account: account, Amount: keel.NFTSupply}},
		{Metadata.program, "createMetadata", &CreateMetadataArgs{Mint: mint, UpdateAuthority: owner, Data: data}},
		{Metadata.program, "createMasterEdition", &CreateMasterEditionArgs{Mint: mint}},
	} {
		c, err := step.p.Clause(step.method, step.args)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, c)
	}
	return clauses, nil
}
