// Copyright (c) 2025 The Keel developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package verifier

import (
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github.com/keelstake/keel/builtin/metadata"
	"github.com/keelstake/keel/state"
)

var (
	ErrUnknownService  = errors.New("verifier: unknown metadata service")
	ErrEditionMismatch = errors.New("verifier: edition is not derived from mint")
	ErrMissingEdition  = errors.New("verifier: master edition not found")
	ErrMissingMetadata = errors.New("verifier: metadata not found")
	ErrMintMismatch    = errors.New("verifier: record bound to another mint")
)

// Verifier checks a token's metadata records through the metadata service's
// addressing scheme only.
type Verifier struct {
	service  solana.PublicKey
	metadata *metadata.Metadata
}

// New creates a verifier trusting the metadata service at service.
func New(service solana.PublicKey, st *state.State) *Verifier {
	return &Verifier{
		service:  service,
		metadata: metadata.New(service, st),
	}
}

// Verify checks that edition is the master edition derived for mint by the
// metadata service named by serviceRef, and that both the edition and the
// metadata record exist and are bound to mint.
func (v *Verifier) Verify(mint, serviceRef, edition solana.PublicKey) error {
	if serviceRef != v.service {
		return ErrUnknownService
	}
	recordAddr, editionAddr, err := v.metadata.Resolve(mint)
	if err != nil {
		return errors.Wrap(err, "resolve metadata")
	}
	if edition != editionAddr {
		return ErrEditionMismatch
	}

	ed, err := v.metadata.GetEdition(editionAddr)
	if err != nil {
		return err
	}
	if ed == nil {
		return ErrMissingEdition
	}
	if ed.Mint != mint {
		return ErrMintMismatch
	}

	rec, err := v.metadata.GetRecord(recordAddr)
	if err != nil {
		return err
	}
	if rec == nil {
		return ErrMissingMetadata
	}
	if rec.Mint != mint {
		return ErrMintMismatch
	}
	return nil
}
