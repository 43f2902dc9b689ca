package store

import (
	"sync"

	"github.com/google/btree"

	vault "github.com/utilityjnr/VaultDAO"
	"github.com/utilityjnr/VaultDAO/errors"
)

// btreeDegree is the branching factor of the in-memory tree. Same low
// degree as used for transaction caches, proposal sets are small.
const btreeDegree = 2

// MemStore is an in-memory ProposalStore keeping records ordered by id
// in a btree. It is safe for concurrent use and meant for tests and
// short lived tooling, there is no persistence.
type MemStore struct {
	mu   sync.RWMutex
	tree *btree.BTreeG[*vault.Proposal]
	seq  uint64
}

var _ ProposalStore = (*MemStore)(nil)

// NewMemStore returns an empty in-memory proposal store.
func NewMemStore() *MemStore {
	return &MemStore{
		tree: btree.NewG(btreeDegree, func(a, b *vault.Proposal) bool {
			return a.ID < b.ID
		}),
	}
}

// Create implements the ProposalStore interface.
func (s *MemStore) Create(p *vault.Proposal) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	p.ID = s.seq
	p.Version = 1
	if err := p.Validate(); err != nil {
		return 0, errors.Wrap(err, "proposal")
	}
	s.tree.ReplaceOrInsert(p.Copy())
	return p.ID, nil
}

// Get implements the ProposalStore interface.
func (s *MemStore) Get(id uint64) (*vault.Proposal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.tree.Get(&vault.Proposal{ID: id})
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "proposal %d", id)
	}
	return p.Copy(), nil
}

// Update implements the ProposalStore interface.
func (s *MemStore) Update(id uint64, expectedVersion uint32, p *vault.Proposal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.tree.Get(&vault.Proposal{ID: id})
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "proposal %d", id)
	}
	if current.Version != expectedVersion {
		return errors.Wrapf(errors.ErrConflict, "version %d, expected %d", current.Version, expectedVersion)
	}
	p.ID = id
	p.Version = expectedVersion + 1
	if err := p.Validate(); err != nil {
		return errors.Wrap(err, "proposal")
	}
	s.tree.ReplaceOrInsert(p.Copy())
	return nil
}

// List implements the Lister interface.
func (s *MemStore) List() ([]*vault.Proposal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*vault.Proposal, 0, s.tree.Len())
	s.tree.Ascend(func(p *vault.Proposal) bool {
		out = append(out, p.Copy())
		return true
	})
	return out, nil
}

// Close implements the ProposalStore interface. It is a no-op for the
// in-memory store.
func (s *MemStore) Close() error {
	return nil
}
