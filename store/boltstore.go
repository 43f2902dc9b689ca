package store

import (
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	vault "github.com/utilityjnr/VaultDAO"
	"github.com/utilityjnr/VaultDAO/errors"
)

var proposalBucket = []byte("proposal")

// BoltStore is a bbolt backed ProposalStore. All compare-and-swap logic
// runs inside a single write transaction so a version check and the
// following write are atomic.
type BoltStore struct {
	db *bbolt.DB
}

var _ ProposalStore = (*BoltStore)(nil)

// OpenBolt opens (creating when missing) a bbolt database at the given
// path and ensures the proposal bucket exists.
func OpenBolt(path string) (*BoltStore, error) {
	if path == "" {
		return nil, errors.Wrap(errors.ErrEmpty, "path")
	}
	db, err := bbolt.Open(filepath.Clean(path), 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(proposalBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "create bucket")
	}
	return &BoltStore{db: db}, nil
}

// Create implements the ProposalStore interface.
func (s *BoltStore) Create(p *vault.Proposal) (uint64, error) {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(proposalBucket)

		id, err := bucket.NextSequence()
		if err != nil {
			return errors.Wrap(err, "next sequence")
		}
		p.ID = id
		p.Version = 1
		if err := p.Validate(); err != nil {
			return errors.Wrap(err, "proposal")
		}

		raw, err := marshalProposal(p)
		if err != nil {
			return err
		}
		return bucket.Put(idKey(id), raw)
	})
	if err != nil {
		return 0, err
	}
	return p.ID, nil
}

// Get implements the ProposalStore interface.
func (s *BoltStore) Get(id uint64) (*vault.Proposal, error) {
	var p *vault.Proposal
	err := s.db.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket(proposalBucket).Get(idKey(id))
		if raw == nil {
			return errors.Wrapf(errors.ErrNotFound, "proposal %d", id)
		}
		var err error
		p, err = unmarshalProposal(raw)
		return err
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Update implements the ProposalStore interface.
func (s *BoltStore) Update(id uint64, expectedVersion uint32, p *vault.Proposal) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(proposalBucket)

		raw := bucket.Get(idKey(id))
		if raw == nil {
			return errors.Wrapf(errors.ErrNotFound, "proposal %d", id)
		}
		current, err := unmarshalProposal(raw)
		if err != nil {
			return err
		}
		if current.Version != expectedVersion {
			return errors.Wrapf(errors.ErrConflict, "version %d, expected %d", current.Version, expectedVersion)
		}

		p.ID = id
		p.Version = expectedVersion + 1
		if err := p.Validate(); err != nil {
			return errors.Wrap(err, "proposal")
		}
		next, err := marshalProposal(p)
		if err != nil {
			return err
		}
		return bucket.Put(idKey(id), next)
	})
}

// List implements the Lister interface.
func (s *BoltStore) List() ([]*vault.Proposal, error) {
	var out []*vault.Proposal
	err := s.db.View(func(tx *bbolt.Tx) error {
		// Keys are big endian ids so a forward cursor walk returns
		// proposals ordered by id.
		return tx.Bucket(proposalBucket).ForEach(func(_, raw []byte) error {
			p, err := unmarshalProposal(raw)
			if err != nil {
				return err
			}
			out = append(out, p)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Close implements the ProposalStore interface.
func (s *BoltStore) Close() error {
	return s.db.Close()
}
