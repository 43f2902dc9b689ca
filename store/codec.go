package store

import (
	"encoding/binary"

	"github.com/fxamacker/cbor/v2"

	vault "github.com/utilityjnr/VaultDAO"
	"github.com/utilityjnr/VaultDAO/errors"
)

// encMode is the deterministic CBOR encoder used for persisted records.
// Canonical field ordering keeps the stored representation stable across
// process restarts.
var encMode cbor.EncMode

func init() {
	var err error
	encMode, err = cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
}

func marshalProposal(p *vault.Proposal) ([]byte, error) {
	raw, err := encMode.Marshal(p)
	if err != nil {
		return nil, errors.Wrap(errors.ErrModel, err.Error())
	}
	return raw, nil
}

func unmarshalProposal(raw []byte) (*vault.Proposal, error) {
	var p vault.Proposal
	if err := cbor.Unmarshal(raw, &p); err != nil {
		return nil, errors.Wrap(errors.ErrModel, err.Error())
	}
	return &p, nil
}

// idKey returns the big endian key representation of a proposal id.
// Big endian keeps bbolt's key order equal to the numeric id order.
func idKey(id uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, id)
	return key
}
