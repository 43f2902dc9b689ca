package vault

import (
	"context"

	"github.com/utilityjnr/VaultDAO/errors"
)

// maxSigners bounds the signer set size. The registry is iterated on
// every vote so an unbounded set is not acceptable.
const maxSigners = 100

// SignerSnapshot is a versioned, read-only view of the signer registry.
// The engine reads one snapshot per proposal creation and copies its
// thresholds into the new proposal. Registry changes made afterwards
// never affect proposals that are already in flight.
type SignerSnapshot struct {
	Version            uint64    `json:"version"`
	Signers            []Address `json:"signers"`
	ApprovalThreshold  uint32    `json:"approval_threshold"`
	RejectionThreshold uint32    `json:"rejection_threshold"`
}

// Validate returns an error if the snapshot cannot be used to govern
// proposals.
func (s SignerSnapshot) Validate() error {
	switch n := len(s.Signers); {
	case n == 0:
		return errors.Wrap(errors.ErrEmpty, "signers")
	case n > maxSigners:
		return errors.Wrapf(errors.ErrInput, "signers must not exceed %d", maxSigners)
	}
	index := make(map[Address]struct{}, len(s.Signers))
	for _, a := range s.Signers {
		if err := a.Validate(); err != nil {
			return errors.Wrapf(err, "signer %q", a)
		}
		if _, exists := index[a]; exists {
			return errors.Wrapf(errors.ErrInput, "duplicate signer %q", a)
		}
		index[a] = struct{}{}
	}
	if s.ApprovalThreshold == 0 || int(s.ApprovalThreshold) > len(s.Signers) {
		return errors.Wrapf(errors.ErrInput, "approval threshold %d outside of 1..%d", s.ApprovalThreshold, len(s.Signers))
	}
	if s.RejectionThreshold == 0 || int(s.RejectionThreshold) > len(s.Signers) {
		return errors.Wrapf(errors.ErrInput, "rejection threshold %d outside of 1..%d", s.RejectionThreshold, len(s.Signers))
	}
	return nil
}

// Contains returns true if the given identity is part of this signer set.
func (s SignerSnapshot) Contains(a Address) bool {
	return containsAddress(s.Signers, a)
}

// Copy returns a deep copy of this snapshot.
func (s SignerSnapshot) Copy() SignerSnapshot {
	c := s
	c.Signers = append([]Address(nil), s.Signers...)
	return c
}

// SignerSource provides the current signer registry snapshot. The
// registry itself is maintained by an external governance process, the
// engine only ever reads from it.
type SignerSource interface {
	CurrentSigners(ctx context.Context) (SignerSnapshot, error)
}

// StaticSource is a SignerSource that always returns the same snapshot.
type StaticSource struct {
	snapshot SignerSnapshot
}

var _ SignerSource = (*StaticSource)(nil)

// NewStaticSource returns a signer source serving the given snapshot.
// The snapshot is validated once, on creation.
func NewStaticSource(s SignerSnapshot) (*StaticSource, error) {
	if err := s.Validate(); err != nil {
		return nil, errors.Wrap(err, "snapshot")
	}
	return &StaticSource{snapshot: s.Copy()}, nil
}

// CurrentSigners implements the SignerSource interface.
func (s *StaticSource) CurrentSigners(context.Context) (SignerSnapshot, error) {
	return s.snapshot.Copy(), nil
}
