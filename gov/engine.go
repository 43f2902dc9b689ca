package gov

import (
	"context"
	"time"

	"github.com/tendermint/tendermint/libs/log"

	vault "github.com/utilityjnr/VaultDAO"
	"github.com/utilityjnr/VaultDAO/coin"
	"github.com/utilityjnr/VaultDAO/errors"
	"github.com/utilityjnr/VaultDAO/store"
)

// Executor is the external collaborator that moves tokens once a
// proposal became executable. A failure never corrupts proposal state,
// the engine keeps the proposal approved so the call can be retried.
type Executor interface {
	// SubmitTransfer performs the transfer and returns a transaction
	// reference. It must honor the context deadline.
	SubmitTransfer(ctx context.Context, recipient vault.Address, token vault.Token, amount coin.Amount, memo string) (string, error)
}

// EngineConfig collects everything an engine needs. Store, Signers and
// Executor are required, the rest is optional.
type EngineConfig struct {
	Store    store.ProposalStore
	Signers  vault.SignerSource
	Executor Executor
	Options  Options

	// Logger defaults to a nop logger.
	Logger log.Logger
	// Listener receives transition events, may be nil.
	Listener Listener
	// Now defaults to time.Now. Tests inject their own clock.
	Now func() time.Time
}

// Engine applies lifecycle transitions to proposals. It never caches a
// proposal across calls: every transition re-reads, validates, mutates
// and writes back through a compare-and-swap.
type Engine struct {
	store    store.ProposalStore
	signers  vault.SignerSource
	executor Executor
	opts     Options
	logger   log.Logger
	listener Listener
	now      func() time.Time
}

// NewEngine validates the configuration and returns a ready engine.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	if cfg.Store == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "store")
	}
	if cfg.Signers == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "signer source")
	}
	if cfg.Executor == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "executor")
	}
	if err := cfg.Options.Validate(); err != nil {
		return nil, errors.Wrap(err, "options")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Engine{
		store:    cfg.Store,
		signers:  cfg.Signers,
		executor: cfg.Executor,
		opts:     cfg.Options,
		logger:   logger,
		listener: cfg.Listener,
		now:      now,
	}, nil
}

// Create validates the transfer request, snapshots the signer registry
// and persists a new pending proposal. The proposer is not auto added
// to the approvals, an explicit approval call is required even from the
// creator.
func (e *Engine) Create(ctx context.Context, proposer vault.Address, recipient, token, rawAmount, memo string) (uint64, error) {
	rcpt, err := vault.ParseAddress(recipient)
	if err != nil {
		return 0, errors.Field("Recipient", err, "")
	}
	tok := vault.Token(token)
	if err := tok.Validate(); err != nil {
		return 0, errors.Field("Token", err, "")
	}
	amount, err := coin.ParseAmount(rawAmount, coin.StellarDecimals)
	if err != nil {
		return 0, errors.Field("Amount", err, "")
	}
	if e.opts.MaxProposalAmount > 0 && amount > e.opts.MaxProposalAmount {
		return 0, errors.Field("Amount", errors.Wrapf(errors.ErrAmount, "above the proposal limit of %d", e.opts.MaxProposalAmount), "")
	}
	if len(memo) > vault.MaxMemoSize {
		return 0, errors.Field("Memo", errors.Wrapf(errors.ErrMemo, "longer than %d", vault.MaxMemoSize), "")
	}

	snapshot, err := e.signers.CurrentSigners(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "signer registry")
	}
	if err := snapshot.Validate(); err != nil {
		return 0, errors.Wrap(err, "signer registry")
	}
	if !snapshot.Contains(proposer) {
		return 0, errors.Wrapf(errors.ErrUnauthorized, "proposer %q is not a signer", proposer)
	}

	p := &vault.Proposal{
		Proposer:           proposer,
		Recipient:          rcpt,
		Token:              tok,
		Amount:             amount,
		Memo:               memo,
		Status:             vault.StatusPending,
		ApprovalThreshold:  snapshot.ApprovalThreshold,
		RejectionThreshold: snapshot.RejectionThreshold,
		SnapshotVersion:    snapshot.Version,
		CreatedAt:          vault.AsUnixTime(e.now()),
	}
	id, err := e.store.Create(p)
	if err != nil {
		return 0, errors.Wrap(err, "persist proposal")
	}
	e.logger.Info("proposal created", "proposal", id, "proposer", proposer, "amount", amount, "token", tok)
	e.emit(ActionCreate, proposer, p)
	return id, nil
}

// Approve records an approval vote. When the approval threshold is
// reached the proposal moves to approved and the timelock starts.
// Re-approving is a no-op that returns the current state.
func (e *Engine) Approve(ctx context.Context, id uint64, signer vault.Address) (*vault.Proposal, error) {
	snapshot, err := e.signers.CurrentSigners(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "signer registry")
	}
	if !snapshot.Contains(signer) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "%q is not a signer", signer)
	}

	for attempt := 0; attempt < e.opts.UpdateRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "context")
		}
		p, err := e.store.Get(id)
		if err != nil {
			return nil, err
		}
		// Identical vote replay is harmless, duplicate network
		// deliveries must not fail.
		if p.HasApproved(signer) {
			return p, nil
		}
		if p.Status != vault.StatusPending {
			return nil, errors.Wrapf(errors.ErrState, "cannot approve a %s proposal", p.Status)
		}

		p.SetApproval(signer)
		if uint32(len(p.Approvals)) >= p.ApprovalThreshold {
			p.Status = vault.StatusApproved
			p.TimelockExpiresAt = vault.AsUnixTime(e.now()).Add(e.opts.TimelockDuration)
		}

		switch err := e.store.Update(id, p.Version, p); {
		case err == nil:
			e.logger.Info("proposal approved by signer", "proposal", id, "signer", signer, "status", p.Status)
			e.emit(ActionApprove, signer, p)
			return p, nil
		case errors.ErrConflict.Is(err):
			e.logger.Debug("approve lost the version race, retrying", "proposal", id, "attempt", attempt)
			continue
		default:
			return nil, err
		}
	}
	return nil, errors.Wrapf(errors.ErrBusy, "proposal %d", id)
}

// Reject records a rejection vote. A proposal can also be rejected
// while approved and waiting out its timelock. Once the rejection
// threshold is met the proposal is rejected regardless of how many
// approvals it collected.
func (e *Engine) Reject(ctx context.Context, id uint64, signer vault.Address) (*vault.Proposal, error) {
	snapshot, err := e.signers.CurrentSigners(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "signer registry")
	}
	if !snapshot.Contains(signer) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "%q is not a signer", signer)
	}

	for attempt := 0; attempt < e.opts.UpdateRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "context")
		}
		p, err := e.store.Get(id)
		if err != nil {
			return nil, err
		}
		if p.HasRejected(signer) {
			return p, nil
		}
		if p.Status != vault.StatusPending && p.Status != vault.StatusApproved {
			return nil, errors.Wrapf(errors.ErrState, "cannot reject a %s proposal", p.Status)
		}

		p.SetRejection(signer)
		if uint32(len(p.Rejections)) >= p.RejectionThreshold {
			p.Status = vault.StatusRejected
		}

		switch err := e.store.Update(id, p.Version, p); {
		case err == nil:
			e.logger.Info("proposal rejected by signer", "proposal", id, "signer", signer, "status", p.Status)
			e.emit(ActionReject, signer, p)
			return p, nil
		case errors.ErrConflict.Is(err):
			e.logger.Debug("reject lost the version race, retrying", "proposal", id, "attempt", attempt)
			continue
		default:
			return nil, err
		}
	}
	return nil, errors.Wrapf(errors.ErrBusy, "proposal %d", id)
}

// Execute submits the transfer of an approved proposal whose timelock
// elapsed. On collaborator failure the proposal stays approved and the
// call can be repeated. On success the proposal is marked executed with
// the collaborator's transaction reference.
func (e *Engine) Execute(ctx context.Context, id uint64) (*vault.Proposal, error) {
	p, err := e.store.Get(id)
	if err != nil {
		return nil, err
	}
	if p.Status != vault.StatusApproved {
		return nil, errors.Wrapf(errors.ErrState, "cannot execute a %s proposal", p.Status)
	}
	now := e.now()
	if now.Before(p.TimelockExpiresAt.Time()) {
		return nil, errors.Wrapf(errors.ErrState, "timelocked until %s", p.TimelockExpiresAt)
	}

	ref, err := e.executor.SubmitTransfer(ctx, p.Recipient, p.Token, p.Amount, p.Memo)
	if err != nil {
		e.logger.Error("transfer submission failed", "proposal", id, "err", err)
		return nil, errors.Wrapf(errors.ErrExecution, "proposal %d: %s", id, err)
	}

	// The transfer happened. Recording it must survive version races
	// with concurrent votes, so re-read and re-apply on conflict.
	for attempt := 0; attempt < e.opts.UpdateRetries; attempt++ {
		p.Status = vault.StatusExecuted
		p.ExecutedAt = vault.AsUnixTime(e.now())
		p.TxRef = ref

		switch err := e.store.Update(id, p.Version, p); {
		case err == nil:
			e.logger.Info("proposal executed", "proposal", id, "ref", ref)
			e.emit(ActionExecute, "", p)
			return p, nil
		case errors.ErrConflict.Is(err):
			if p, err = e.store.Get(id); err != nil {
				return nil, err
			}
			if p.Status != vault.StatusApproved {
				// A concurrent transition won after the transfer was
				// already submitted. Surface it, never drop it.
				return nil, errors.Wrapf(errors.ErrState,
					"transfer %s submitted but proposal %d meanwhile turned %s", ref, id, p.Status)
			}
			continue
		default:
			return nil, err
		}
	}
	return nil, errors.Wrapf(errors.ErrBusy, "transfer %s submitted, proposal %d not marked executed", ref, id)
}

// Expire moves stale proposals out of the way: pending ones that
// exceeded the maximum pending lifetime and approved ones that were not
// executed within the grace period after their timelock.
func (e *Engine) Expire(ctx context.Context, id uint64) (*vault.Proposal, error) {
	for attempt := 0; attempt < e.opts.UpdateRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "context")
		}
		p, err := e.store.Get(id)
		if err != nil {
			return nil, err
		}
		now := e.now()
		switch p.Status {
		case vault.StatusPending:
			deadline := p.CreatedAt.Add(e.opts.MaxPendingAge)
			if now.Before(deadline.Time()) {
				return nil, errors.Wrapf(errors.ErrState, "pending until %s", deadline)
			}
		case vault.StatusApproved:
			deadline := p.TimelockExpiresAt.Add(e.opts.ExecutionGracePeriod)
			if now.Before(deadline.Time()) {
				return nil, errors.Wrapf(errors.ErrState, "executable until %s", deadline)
			}
		default:
			return nil, errors.Wrapf(errors.ErrState, "cannot expire a %s proposal", p.Status)
		}

		p.Status = vault.StatusExpired
		switch err := e.store.Update(id, p.Version, p); {
		case err == nil:
			e.logger.Info("proposal expired", "proposal", id)
			e.emit(ActionExpire, "", p)
			return p, nil
		case errors.ErrConflict.Is(err):
			continue
		default:
			return nil, err
		}
	}
	return nil, errors.Wrapf(errors.ErrBusy, "proposal %d", id)
}
