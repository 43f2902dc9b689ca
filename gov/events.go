package gov

import (
	vault "github.com/utilityjnr/VaultDAO"
)

// Action names the operation that produced a transition event.
type Action string

const (
	ActionCreate  Action = "create"
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionExecute Action = "execute"
	ActionExpire  Action = "expire"
)

// TransitionEvent describes a successfully persisted proposal change.
// The embedded proposal is a detached copy taken after the write.
type TransitionEvent struct {
	Action   Action
	Signer   vault.Address
	Proposal vault.Proposal
}

// Listener consumes transition events. Implementations are external
// collaborators (notification fanout, read model refresh) and must not
// block; delivery is synchronous, post-commit and best effort. A
// listener can never influence the outcome of a transition.
type Listener interface {
	ProposalChanged(TransitionEvent)
}

// ListenerFunc adapts a plain function to the Listener interface.
type ListenerFunc func(TransitionEvent)

func (f ListenerFunc) ProposalChanged(e TransitionEvent) {
	f(e)
}

func (e *Engine) emit(action Action, signer vault.Address, p *vault.Proposal) {
	if e.listener == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("event listener panicked", "action", action, "proposal", p.ID, "panic", r)
		}
	}()
	e.listener.ProposalChanged(TransitionEvent{
		Action:   action,
		Signer:   signer,
		Proposal: *p.Copy(),
	})
}
