/*
Package store defines the persistence contract for proposals and ships
two implementations of it: an ordered in-memory store for tests and
tooling, and a bbolt backed store for durable single-node deployments.

Every proposal record carries a version counter. Writes go through
compare-and-swap: the caller states the version it based its mutation
on and the write fails with ErrConflict when the stored version moved.
This is the only synchronization primitive the engine relies on, there
is no cross proposal locking.
*/
package store

import (
	vault "github.com/utilityjnr/VaultDAO"
)

// Lister is the read-only subset of ProposalStore that the query service
// operates on.
type Lister interface {
	// List returns a snapshot of all proposals ordered by id ascending.
	// Returned values are detached copies.
	List() ([]*vault.Proposal, error)
}

// ProposalStore owns the canonical proposal records.
//
// Implementations hand out and accept only detached copies so callers
// can never reach the canonical state directly. Get on a missing id
// fails with ErrNotFound. Update fails with ErrConflict when the stored
// version differs from the expected one.
type ProposalStore interface {
	Lister

	// Create persists a new proposal. The store assigns a monotonically
	// increasing id and the initial version. Both are written back into
	// the given proposal.
	Create(p *vault.Proposal) (uint64, error)

	// Get returns the proposal with the given id.
	Get(id uint64) (*vault.Proposal, error)

	// Update replaces the stored proposal if its version still equals
	// expectedVersion. On success the incremented version is written
	// back into the given proposal.
	Update(id uint64, expectedVersion uint32, p *vault.Proposal) error

	// Close releases any resources held by the store.
	Close() error
}
