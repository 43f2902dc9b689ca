package store

import (
	"path/filepath"
	"testing"

	"github.com/utilityjnr/VaultDAO/errors"
	"github.com/utilityjnr/VaultDAO/vaulttest/assert"
)

func TestBoltStore(t *testing.T) {
	s, err := OpenBolt(filepath.Join(t.TempDir(), "vault.db"))
	assert.Nil(t, err)
	defer s.Close()

	TestProposalStore(t, s)
}

func TestBoltStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault.db")

	s, err := OpenBolt(path)
	assert.Nil(t, err)

	p := sampleProposal(1)
	id, err := s.Create(p)
	assert.Nil(t, err)
	assert.Nil(t, s.Close())

	s, err = OpenBolt(path)
	assert.Nil(t, err)
	defer s.Close()

	stored, err := s.Get(id)
	assert.Nil(t, err)
	assert.Equal(t, p.Proposer, stored.Proposer)
	assert.Equal(t, p.Amount, stored.Amount)
	assert.Equal(t, uint32(1), stored.Version)

	// The id sequence must continue after the restart, never reissue.
	next := sampleProposal(2)
	nextID, err := s.Create(next)
	assert.Nil(t, err)
	assert.Equal(t, id+1, nextID)
}

func TestOpenBoltEmptyPath(t *testing.T) {
	if _, err := OpenBolt(""); !errors.ErrEmpty.Is(err) {
		t.Fatalf("want ErrEmpty, got %+v", err)
	}
}
