// Copyright (c) 2025 The Keel developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/gagliardetto/solana-go"
)

type clauseBody struct {
	Program solana.PublicKey
	Method  string
	Data    []byte
}

// Clause is the basic execution unit of a transaction. It calls one method of
// a builtin program.
type Clause struct {
	body clauseBody
}

// NewClause create a new clause instance.
func NewClause(program solana.PublicKey, method string) *Clause {
	return &Clause{
		clauseBody{
			Program: program,
			Method:  method,
		},
	}
}

// WithData create a new clause copy with data changed.
func (c *Clause) WithData(data []byte) *Clause {
	newClause := *c
	newClause.body.Data = append([]byte(nil), data...)
	return &newClause
}

// WithArgs create a new clause copy with data set to the rlp encoding of args.
func (c *Clause) WithArgs(args any) (*Clause, error) {
	data, err := rlp.EncodeToBytes(args)
	if err != nil {
		return nil, err
	}
	newClause := *c
	newClause.body.Data = data
	return &newClause, nil
}

// Program returns the called program.
func (c *Clause) Program() solana.PublicKey {
	return c.body.Program
}

// Method returns the called method.
func (c *Clause) Method() string {
	return c.body.Method
}

// Data returns 'Data'.
func (c *Clause) Data() []byte {
	return append([]byte(nil), c.body.Data...)
}

// EncodeRLP implements rlp.Encoder
func (c *Clause) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &c.body)
}

// DecodeRLP implements rlp.Decoder
func (c *Clause) DecodeRLP(s *rlp.Stream) error {
	var body clauseBody
	if err := s.Decode(&body); err != nil {
		return err
	}
	*c = Clause{body}
	return nil
}

func (c *Clause) String() string {
	return fmt.Sprintf(`
		(Program:	%v
		 Method:	%v
		 Data:	0x%x)`, c.body.Program, c.body.Method, c.body.Data)
}
