package gov

import (
	"time"

	"github.com/utilityjnr/VaultDAO/coin"
	"github.com/utilityjnr/VaultDAO/errors"
)

// Options are the policy knobs of the lifecycle engine. They are fixed
// for the lifetime of an engine instance.
type Options struct {
	// TimelockDuration is the mandatory delay between reaching the
	// approval threshold and becoming executable.
	TimelockDuration time.Duration `json:"timelock_duration"`

	// MaxPendingAge is how long a proposal may stay pending before it
	// can be expired.
	MaxPendingAge time.Duration `json:"max_pending_age"`

	// ExecutionGracePeriod is how long after the timelock elapsed an
	// approved proposal remains executable before it can be expired.
	ExecutionGracePeriod time.Duration `json:"execution_grace_period"`

	// UpdateRetries bounds how often a vote application is retried on
	// version conflicts before giving up with ErrBusy.
	UpdateRetries int `json:"update_retries"`

	// MaxProposalAmount is an optional per proposal spending limit in
	// smallest token units. Zero means no limit.
	MaxProposalAmount coin.Amount `json:"max_proposal_amount,omitempty"`
}

// DefaultOptions returns the engine policy used unless a deployment
// configures otherwise.
func DefaultOptions() Options {
	return Options{
		TimelockDuration:     24 * time.Hour,
		MaxPendingAge:        7 * 24 * time.Hour,
		ExecutionGracePeriod: 7 * 24 * time.Hour,
		UpdateRetries:        5,
	}
}

// Validate returns an error if any option value is outside of its
// allowed range.
func (o Options) Validate() error {
	var err error
	if o.TimelockDuration < 0 {
		err = errors.AppendField(err, "TimelockDuration", errors.Wrap(errors.ErrInput, "must not be negative"))
	}
	if o.MaxPendingAge <= 0 {
		err = errors.AppendField(err, "MaxPendingAge", errors.Wrap(errors.ErrInput, "must be positive"))
	}
	if o.ExecutionGracePeriod <= 0 {
		err = errors.AppendField(err, "ExecutionGracePeriod", errors.Wrap(errors.ErrInput, "must be positive"))
	}
	if o.UpdateRetries < 1 {
		err = errors.AppendField(err, "UpdateRetries", errors.Wrap(errors.ErrInput, "at least one attempt required"))
	}
	if o.MaxProposalAmount < 0 {
		err = errors.AppendField(err, "MaxProposalAmount", errors.Wrap(errors.ErrInput, "must not be negative"))
	}
	return err
}
