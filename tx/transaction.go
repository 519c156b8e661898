// Copyright (c) 2025 The Keel developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github.com/keelstake/keel/keel"
)

// ErrInvalidSignature is returned when a transaction is not signed by its origin.
var ErrInvalidSignature = errors.New("tx: invalid signature")

// Transaction is an immutable tx type.
type Transaction struct {
	body body

	cache struct {
		signingHash atomic.Pointer[keel.Bytes32]
		id          atomic.Pointer[keel.Bytes32]
		signerOK    atomic.Pointer[bool]
	}
}

// body describes details of a tx.
type body struct {
	Nonce     uint64
	Origin    solana.PublicKey
	Clauses   []*Clause
	Signature []byte
}

// SigningHash returns hash of tx excludes signature.
func (t *Transaction) SigningHash() keel.Bytes32 {
	if cached := t.cache.signingHash.Load(); cached != nil {
		return *cached
	}
	h := keel.Blake2bFn(func(w io.Writer) {
		rlp.Encode(w, []any{
			t.body.Nonce,
			t.body.Origin,
			t.body.Clauses,
		})
	})
	t.cache.signingHash.Store(&h)
	return h
}

// ID returns the id of tx, unique per (signing hash, origin).
func (t *Transaction) ID() keel.Bytes32 {
	if cached := t.cache.id.Load(); cached != nil {
		return *cached
	}
	signingHash := t.SigningHash()
	id := keel.Blake2b(signingHash[:], t.body.Origin[:])
	t.cache.id.Store(&id)
	return id
}

// Nonce returns nonce value.
func (t *Transaction) Nonce() uint64 {
	return t.body.Nonce
}

// Origin returns the account which signs the tx.
func (t *Transaction) Origin() solana.PublicKey {
	return t.body.Origin
}

// Clauses returns clauses in tx.
func (t *Transaction) Clauses() []*Clause {
	return append([]*Clause(nil), t.body.Clauses...)
}

// Signature returns signature.
func (t *Transaction) Signature() []byte {
	return append([]byte(nil), t.body.Signature...)
}

// WithSignature create a new tx with signature set.
func (t *Transaction) WithSignature(sig []byte) *Transaction {
	newTx := Transaction{
		body: t.body,
	}
	// copy sig
	newTx.body.Signature = append([]byte(nil), sig...)
	return &newTx
}

// VerifySignature checks that the signature is made by the origin over the signing hash.
// The outcome is cached.
func (t *Transaction) VerifySignature() error {
	ok := t.cache.signerOK.Load()
	if ok == nil {
		var valid bool
		if len(t.body.Signature) == len(solana.Signature{}) {
			sig := solana.SignatureFromBytes(t.body.Signature)
			hash := t.SigningHash()
			valid = sig.Verify(t.body.Origin, hash[:])
		}
		ok = &valid
		t.cache.signerOK.Store(ok)
	}
	if !*ok {
		return ErrInvalidSignature
	}
	return nil
}

// Signer verifies the signature and returns the origin.
func (t *Transaction) Signer() (solana.PublicKey, error) {
	if err := t.VerifySignature(); err != nil {
		return solana.PublicKey{}, err
	}
	return t.body.Origin, nil
}

// EncodeRLP implements rlp.Encoder
func (t *Transaction) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &t.body)
}

// DecodeRLP implements rlp.Decoder
func (t *Transaction) DecodeRLP(s *rlp.Stream) error {
	var body body
	if err := s.Decode(&body); err != nil {
		return err
	}
	*t = Transaction{
		body: body,
	}
	return nil
}

func (t *Transaction) String() string {
	return fmt.Sprintf(`
	Tx(%v)
	Origin:   %v
	Nonce:    %v
	Clauses:  %v
	Signature: 0x%x`, t.ID(), t.body.Origin, t.body.Nonce, t.body.Clauses, t.body.Signature)
}
