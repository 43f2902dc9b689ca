package vault

import (
	"github.com/utilityjnr/VaultDAO/coin"
	"github.com/utilityjnr/VaultDAO/errors"
)

// MaxMemoSize is the upper bound for the length of a proposal memo.
const MaxMemoSize = 128

// Status describes where in its lifecycle a proposal is.
type Status int8

const (
	StatusInvalid Status = iota
	StatusPending
	StatusApproved
	StatusRejected
	StatusExecuted
	StatusExpired
)

var statusNames = map[Status]string{
	StatusPending:  "pending",
	StatusApproved: "approved",
	StatusRejected: "rejected",
	StatusExecuted: "executed",
	StatusExpired:  "expired",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "invalid"
}

// Validate returns an error if this is not a known status value.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errors.Wrapf(errors.ErrState, "unknown status %d", s)
	}
	return nil
}

// Terminal returns true for statuses that permit no further transition.
func (s Status) Terminal() bool {
	switch s {
	case StatusRejected, StatusExecuted, StatusExpired:
		return true
	}
	return false
}

// ParseStatus maps a human readable status name to its value.
func ParseStatus(raw string) (Status, error) {
	for s, name := range statusNames {
		if name == raw {
			return s, nil
		}
	}
	return StatusInvalid, errors.Wrapf(errors.ErrInput, "unknown status %q", raw)
}

// Proposal is a single proposed transfer awaiting multisig resolution.
//
// All fields set at creation time are immutable. Vote sets, status and
// the timestamps derived from status changes are the only mutable state
// and must only be modified through the gov.Engine transitions. The
// Version field is maintained by the proposal store and guards every
// write with optimistic concurrency.
type Proposal struct {
	ID      uint64 `json:"id"`
	Version uint32 `json:"version"`

	Proposer  Address     `json:"proposer"`
	Recipient Address     `json:"recipient"`
	Token     Token       `json:"token"`
	Amount    coin.Amount `json:"amount"`
	Memo      string      `json:"memo,omitempty"`

	Status     Status    `json:"status"`
	Approvals  []Address `json:"approvals,omitempty"`
	Rejections []Address `json:"rejections,omitempty"`

	// Thresholds are captured from the signer registry snapshot at
	// creation time. Later registry updates never alter them.
	ApprovalThreshold  uint32 `json:"approval_threshold"`
	RejectionThreshold uint32 `json:"rejection_threshold"`
	SnapshotVersion    uint64 `json:"snapshot_version"`

	CreatedAt         UnixTime `json:"created_at"`
	TimelockExpiresAt UnixTime `json:"timelock_expires_at,omitempty"`
	ExecutedAt        UnixTime `json:"executed_at,omitempty"`

	// TxRef is the transaction reference returned by the execution
	// collaborator once the transfer was submitted.
	TxRef string `json:"tx_ref,omitempty"`
}

// Validate returns an error if the proposal is not consistent enough to
// be persisted.
func (p *Proposal) Validate() error {
	var err error
	err = errors.AppendField(err, "Proposer", p.Proposer.Validate())
	err = errors.AppendField(err, "Recipient", p.Recipient.Validate())
	err = errors.AppendField(err, "Token", p.Token.Validate())
	if p.Amount <= 0 {
		err = errors.AppendField(err, "Amount", errors.Wrap(errors.ErrAmount, "must be positive"))
	}
	if len(p.Memo) > MaxMemoSize {
		err = errors.AppendField(err, "Memo", errors.Wrapf(errors.ErrMemo, "longer than %d", MaxMemoSize))
	}
	if serr := p.Status.Validate(); serr != nil {
		err = errors.AppendField(err, "Status", serr)
	}
	if p.ApprovalThreshold == 0 {
		err = errors.AppendField(err, "ApprovalThreshold", errors.Wrap(errors.ErrModel, "must not be zero"))
	}
	if p.RejectionThreshold == 0 {
		err = errors.AppendField(err, "RejectionThreshold", errors.Wrap(errors.ErrModel, "must not be zero"))
	}
	if p.CreatedAt.IsZero() {
		err = errors.AppendField(err, "CreatedAt", errors.Wrap(errors.ErrEmpty, "required"))
	}
	for _, a := range p.Approvals {
		if p.hasRejected(a) {
			err = errors.Append(err, errors.Wrapf(errors.ErrModel, "%s voted both ways", a))
		}
	}
	return err
}

// Copy returns a deep copy of this proposal. The store hands out and
// accepts only copies so that callers can never mutate canonical state.
func (p *Proposal) Copy() *Proposal {
	c := *p
	c.Approvals = append([]Address(nil), p.Approvals...)
	c.Rejections = append([]Address(nil), p.Rejections...)
	return &c
}

// HasApproved returns true if the given signer's current vote is an
// approval.
func (p *Proposal) HasApproved(signer Address) bool {
	return containsAddress(p.Approvals, signer)
}

// HasRejected returns true if the given signer's current vote is a
// rejection.
func (p *Proposal) HasRejected(signer Address) bool {
	return p.hasRejected(signer)
}

func (p *Proposal) hasRejected(signer Address) bool {
	return containsAddress(p.Rejections, signer)
}

// SetApproval records an approval vote for the given signer. A previous
// rejection by the same signer is withdrawn, a vote always counts once.
// It returns false if the signer already approved and nothing changed.
func (p *Proposal) SetApproval(signer Address) bool {
	if p.HasApproved(signer) {
		return false
	}
	p.Rejections = removeAddress(p.Rejections, signer)
	p.Approvals = append(p.Approvals, signer)
	return true
}

// SetRejection records a rejection vote for the given signer, replacing
// a previous approval. It returns false if the signer already rejected
// and nothing changed.
func (p *Proposal) SetRejection(signer Address) bool {
	if p.hasRejected(signer) {
		return false
	}
	p.Approvals = removeAddress(p.Approvals, signer)
	p.Rejections = append(p.Rejections, signer)
	return true
}

func containsAddress(list []Address, a Address) bool {
	for _, item := range list {
		if item.Equals(a) {
			return true
		}
	}
	return false
}

func removeAddress(list []Address, a Address) []Address {
	for i, item := range list {
		if item.Equals(a) {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
