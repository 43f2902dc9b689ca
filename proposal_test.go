package vault_test

import (
	"testing"

	vault "github.com/utilityjnr/VaultDAO"
	"github.com/utilityjnr/VaultDAO/errors"
	"github.com/utilityjnr/VaultDAO/vaulttest"
	"github.com/utilityjnr/VaultDAO/vaulttest/assert"
)

func validProposal() *vault.Proposal {
	return &vault.Proposal{
		Proposer:           vaulttest.AccountAddress(1),
		Recipient:          vaulttest.AccountAddress(2),
		Token:              vault.NativeToken,
		Amount:             1000000000,
		Memo:               "ops budget",
		Status:             vault.StatusPending,
		ApprovalThreshold:  2,
		RejectionThreshold: 1,
		SnapshotVersion:    1,
		CreatedAt:          1136214245,
	}
}

func TestProposalValidate(t *testing.T) {
	cases := map[string]struct {
		mod       func(*vault.Proposal)
		wantField string
		wantErr   *errors.Error
	}{
		"valid": {
			mod: func(*vault.Proposal) {},
		},
		"missing proposer": {
			mod:       func(p *vault.Proposal) { p.Proposer = "" },
			wantField: "Proposer",
			wantErr:   errors.ErrEmpty,
		},
		"bad recipient": {
			mod:       func(p *vault.Proposal) { p.Recipient = "what" },
			wantField: "Recipient",
			wantErr:   errors.ErrAddress,
		},
		"bad token": {
			mod:       func(p *vault.Proposal) { p.Token = "DOGE" },
			wantField: "Token",
			wantErr:   errors.ErrToken,
		},
		"zero amount": {
			mod:       func(p *vault.Proposal) { p.Amount = 0 },
			wantField: "Amount",
			wantErr:   errors.ErrAmount,
		},
		"negative amount": {
			mod:       func(p *vault.Proposal) { p.Amount = -4 },
			wantField: "Amount",
			wantErr:   errors.ErrAmount,
		},
		"memo too long": {
			mod: func(p *vault.Proposal) {
				p.Memo = string(make([]byte, vault.MaxMemoSize+1))
			},
			wantField: "Memo",
			wantErr:   errors.ErrMemo,
		},
		"unknown status": {
			mod:       func(p *vault.Proposal) { p.Status = vault.StatusInvalid },
			wantField: "Status",
			wantErr:   errors.ErrState,
		},
		"zero approval threshold": {
			mod:       func(p *vault.Proposal) { p.ApprovalThreshold = 0 },
			wantField: "ApprovalThreshold",
			wantErr:   errors.ErrModel,
		},
		"missing creation time": {
			mod:       func(p *vault.Proposal) { p.CreatedAt = 0 },
			wantField: "CreatedAt",
			wantErr:   errors.ErrEmpty,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			p := validProposal()
			tc.mod(p)
			err := p.Validate()
			if tc.wantErr == nil {
				assert.Nil(t, err)
				return
			}
			assert.FieldError(t, err, tc.wantField, tc.wantErr)
		})
	}
}

func TestProposalVoteSets(t *testing.T) {
	a := vaulttest.AccountAddress(1)
	b := vaulttest.AccountAddress(2)

	p := validProposal()

	if !p.SetApproval(a) {
		t.Fatal("first approval must report a change")
	}
	if p.SetApproval(a) {
		t.Fatal("repeated approval must be a no-op")
	}
	assert.Equal(t, true, p.HasApproved(a))
	assert.Equal(t, 1, len(p.Approvals))

	// A rejection replaces the signer's previous approval.
	if !p.SetRejection(a) {
		t.Fatal("rejection must report a change")
	}
	assert.Equal(t, false, p.HasApproved(a))
	assert.Equal(t, true, p.HasRejected(a))
	assert.Equal(t, 0, len(p.Approvals))
	assert.Equal(t, 1, len(p.Rejections))

	// And an approval withdraws the rejection again.
	if !p.SetApproval(a) {
		t.Fatal("approval must report a change")
	}
	assert.Equal(t, false, p.HasRejected(a))

	p.SetApproval(b)
	assert.Equal(t, []vault.Address{a, b}, p.Approvals)
}

func TestProposalCopyIsDetached(t *testing.T) {
	p := validProposal()
	p.SetApproval(vaulttest.AccountAddress(1))

	c := p.Copy()
	c.SetApproval(vaulttest.AccountAddress(2))
	c.Status = vault.StatusApproved

	assert.Equal(t, 1, len(p.Approvals))
	assert.Equal(t, vault.StatusPending, p.Status)
}

func TestProposalVotedBothWaysIsInvalid(t *testing.T) {
	p := validProposal()
	a := vaulttest.AccountAddress(1)
	p.Approvals = []vault.Address{a}
	p.Rejections = []vault.Address{a}
	if err := p.Validate(); !errors.ErrModel.Is(err) {
		t.Fatalf("want ErrModel, got %+v", err)
	}
}

func TestStatusTerminal(t *testing.T) {
	cases := map[vault.Status]bool{
		vault.StatusPending:  false,
		vault.StatusApproved: false,
		vault.StatusRejected: true,
		vault.StatusExecuted: true,
		vault.StatusExpired:  true,
	}
	for status, want := range cases {
		if got := status.Terminal(); got != want {
			t.Errorf("%s: want %v, got %v", status, want, got)
		}
	}
}

func TestParseStatus(t *testing.T) {
	s, err := vault.ParseStatus("approved")
	assert.Nil(t, err)
	assert.Equal(t, vault.StatusApproved, s)

	if _, err := vault.ParseStatus("Approved"); !errors.ErrInput.Is(err) {
		t.Fatalf("want ErrInput, got %+v", err)
	}
}
