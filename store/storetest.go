package store

import (
	"testing"

	vault "github.com/utilityjnr/VaultDAO"
	"github.com/utilityjnr/VaultDAO/errors"
	"github.com/utilityjnr/VaultDAO/vaulttest"
	"github.com/utilityjnr/VaultDAO/vaulttest/assert"
)

// TestProposalStore runs the acceptance suite that every ProposalStore
// implementation must pass. This lets all backends share the exact same
// contract expectations.
func TestProposalStore(t *testing.T, s ProposalStore) {
	t.Run("create assigns ids and initial version", func(t *testing.T) {
		first := sampleProposal(1)
		id, err := s.Create(first)
		assert.Nil(t, err)
		assert.Equal(t, uint64(1), id)
		assert.Equal(t, uint32(1), first.Version)

		second := sampleProposal(2)
		id, err = s.Create(second)
		assert.Nil(t, err)
		assert.Equal(t, uint64(2), id)
	})

	t.Run("create rejects an invalid model", func(t *testing.T) {
		broken := sampleProposal(3)
		broken.Amount = 0
		if _, err := s.Create(broken); !errors.ErrAmount.Is(err) {
			t.Fatalf("want ErrAmount, got %+v", err)
		}
	})

	t.Run("get returns a detached copy", func(t *testing.T) {
		p, err := s.Get(1)
		assert.Nil(t, err)
		assert.Equal(t, uint64(1), p.ID)

		p.Memo = "mutated"
		again, err := s.Get(1)
		assert.Nil(t, err)
		if again.Memo == "mutated" {
			t.Fatal("store handed out canonical state")
		}
	})

	t.Run("get of unknown id", func(t *testing.T) {
		if _, err := s.Get(42); !errors.ErrNotFound.Is(err) {
			t.Fatalf("want ErrNotFound, got %+v", err)
		}
	})

	t.Run("update moves the version", func(t *testing.T) {
		p, err := s.Get(1)
		assert.Nil(t, err)

		p.SetApproval(vaulttest.AccountAddress(1))
		assert.Nil(t, s.Update(p.ID, p.Version, p))
		assert.Equal(t, uint32(2), p.Version)

		stored, err := s.Get(1)
		assert.Nil(t, err)
		assert.Equal(t, uint32(2), stored.Version)
		assert.Equal(t, 1, len(stored.Approvals))
	})

	t.Run("update with a stale version", func(t *testing.T) {
		p, err := s.Get(1)
		assert.Nil(t, err)
		if err := s.Update(p.ID, p.Version-1, p); !errors.ErrConflict.Is(err) {
			t.Fatalf("want ErrConflict, got %+v", err)
		}
	})

	t.Run("update of unknown id", func(t *testing.T) {
		p := sampleProposal(4)
		if err := s.Update(99, 1, p); !errors.ErrNotFound.Is(err) {
			t.Fatalf("want ErrNotFound, got %+v", err)
		}
	})

	t.Run("list is ordered by id", func(t *testing.T) {
		all, err := s.List()
		assert.Nil(t, err)
		assert.Equal(t, 2, len(all))
		assert.Equal(t, uint64(1), all[0].ID)
		assert.Equal(t, uint64(2), all[1].ID)
	})
}

func sampleProposal(seed byte) *vault.Proposal {
	return &vault.Proposal{
		Proposer:           vaulttest.AccountAddress(seed),
		Recipient:          vaulttest.AccountAddress(seed + 100),
		Token:              vault.NativeToken,
		Amount:             1000000,
		Memo:               "sample",
		Status:             vault.StatusPending,
		ApprovalThreshold:  2,
		RejectionThreshold: 1,
		SnapshotVersion:    1,
		CreatedAt:          1136214245,
	}
}
