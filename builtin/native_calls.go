// Copyright (c) 2025 The Keel developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/keelstake/keel/builtin/staking"
	"github.com/keelstake/keel/state"
	"github.com/keelstake/keel/xenv"
)

var nativeMethods = make(map[programAndMethod]*nativeMethod)

func init() {
	defines := []*nativeMethod{
		Token.impl("initializeMint", func(env *xenv.Environment) error {
			var args InitializeMintArgs
			env.ParseArgs(&args)
			return Token.WithState(env.State()).InitializeMint(env, args.Mint, args.Decimals, args.MintAuthority, args.FreezeAuthority)
		}),
		Token.impl("createAssociatedAccount", func(env *xenv.Environment) error {
			var args CreateAssociatedAccountArgs
			env.ParseArgs(&args)
			_, err := Token.WithState(env.State()).CreateAssociatedAccount(args.Owner, args.Mint)
			return err
		}),
		Token.impl("mintTo", func(env *xenv.Environment) error {
			var args MintToArgs
			env.ParseArgs(&args)
			return Token.WithState(env.State()).MintTo(env, args.Mint, args.Account, args.Amount)
		}),
		Token.impl("transfer", func(env *xenv.Environment) error {
			var args TransferArgs
			env.ParseArgs(&args)
			return Token.WithState(env.State()).Transfer(env, args.From, args.To, args.Amount)
		}),
		Token.impl("approve", func(env *xenv.Environment) error {
			var args ApproveArgs
			env.ParseArgs(&args)
			return Token.WithState(env.State()).Approve(env, args.Account, args.Delegate, args.Amount)
		}),
		Token.impl("revoke", func(env *xenv.Environment) error {
			var account solana.PublicKey
			env.ParseArgs(&account)
			return Token.WithState(env.State()).Revoke(env, account)
		}),

		Metadata.impl("createMetadata", func(env *xenv.Environment) error {
			var args CreateMetadataArgs
			env.ParseArgs(&args)
			_, err := Metadata.WithState(env.State()).CreateMetadata(env, args.Mint, args.UpdateAuthority, args.Data)
			return err
		}),
		Metadata.impl("createMasterEdition", func(env *xenv.Environment) error {
			var args CreateMasterEditionArgs
			env.ParseArgs(&args)
			var maxSupply *uint64
			if !args.Unbounded {
				maxSupply = &args.MaxSupply
			}
			_, err := Metadata.WithState(env.State()).CreateMasterEdition(env, args.Mint, maxSupply)
			return err
		}),

		Staking.impl("initializePool", func(env *xenv.Environment) error {
			var args staking.InitializePoolArgs
			env.ParseArgs(&args)
			return Staking.WithState(env.State()).InitializePool(env, &args)
		}),
		Staking.impl("stake", func(env *xenv.Environment) error {
			var args staking.StakeArgs
			env.ParseArgs(&args)
			return Staking.WithState(env.State()).Stake(env, &args)
		}),
		Staking.impl("unstake", func(env *xenv.Environment) error {
			var args staking.UnstakeArgs
			env.ParseArgs(&args)
			return Staking.WithState(env.State()).Unstake(env, &args)
		}),
	}

	for _, m := range defines {
		key := programAndMethod{m.program.Address, m.name}
		if _, dup := nativeMethods[key]; dup {
			panic(fmt.Sprintf("duplicated native method %v", m))
		}
		nativeMethods[key] = m
	}
}

// HandleNativeCall entry of native methods implementation.
// It returns nil if the method is not found.
func HandleNativeCall(
	state *state.State,
	blockCtx *xenv.BlockContext,
	txCtx *xenv.TransactionContext,
	program solana.PublicKey,
	method string,
	input []byte,
) func() error {
	m := nativeMethods[programAndMethod{program, method}]
	if m == nil {
		return nil
	}
	return func() error {
		return m.Call(state, blockCtx, txCtx, input)
	}
}
