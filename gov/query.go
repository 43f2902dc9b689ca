package gov

import (
	"sort"
	"strings"
	"time"

	vault "github.com/utilityjnr/VaultDAO"
	"github.com/utilityjnr/VaultDAO/coin"
	"github.com/utilityjnr/VaultDAO/errors"
	"github.com/utilityjnr/VaultDAO/store"
)

// SortOrder determines how search results are ordered. Ties are always
// broken by id ascending so results are deterministic.
type SortOrder uint8

const (
	SortNewestFirst SortOrder = iota
	SortOldestFirst
	SortHighestAmount
	SortLowestAmount
)

// ParseSortOrder maps a human readable sort name to its value.
func ParseSortOrder(raw string) (SortOrder, error) {
	switch raw {
	case "", "newest":
		return SortNewestFirst, nil
	case "oldest":
		return SortOldestFirst, nil
	case "highest":
		return SortHighestAmount, nil
	case "lowest":
		return SortLowestAmount, nil
	}
	return SortNewestFirst, errors.Wrapf(errors.ErrInput, "unknown sort order %q", raw)
}

// Filter describes which proposals a search returns. All set conditions
// compose with AND semantics. Zero values leave a condition open.
type Filter struct {
	// Text is matched case insensitive against proposer, recipient and
	// memo.
	Text string
	// Statuses selects proposals in any of the given statuses. Empty
	// means no status filtering.
	Statuses []vault.Status
	// MinAmount and MaxAmount bound the amount, inclusive. Zero leaves
	// the bound open.
	MinAmount coin.Amount
	MaxAmount coin.Amount
	// CreatedFrom and CreatedTo bound the creation time, inclusive. The
	// upper bound is extended to the end of its day. Zero leaves the
	// bound open.
	CreatedFrom vault.UnixTime
	CreatedTo   vault.UnixTime
	// Token matches the raw token identifier or its display symbol
	// exactly. Empty means no token filtering.
	Token string
}

// Validate returns an error when the filter bounds contradict each
// other.
func (f Filter) Validate() error {
	var err error
	if f.MinAmount < 0 || f.MaxAmount < 0 {
		err = errors.AppendField(err, "Amount", errors.Wrap(errors.ErrInput, "bounds must not be negative"))
	}
	if f.MinAmount > 0 && f.MaxAmount > 0 && f.MinAmount > f.MaxAmount {
		err = errors.AppendField(err, "Amount", errors.Wrap(errors.ErrInput, "lower bound above upper bound"))
	}
	if !f.CreatedFrom.IsZero() && !f.CreatedTo.IsZero() && f.CreatedFrom > f.CreatedTo {
		err = errors.AppendField(err, "Created", errors.Wrap(errors.ErrInput, "lower bound above upper bound"))
	}
	return err
}

func (f Filter) matches(p *vault.Proposal) bool {
	if f.Text != "" {
		needle := strings.ToLower(f.Text)
		if !strings.Contains(strings.ToLower(string(p.Proposer)), needle) &&
			!strings.Contains(strings.ToLower(string(p.Recipient)), needle) &&
			!strings.Contains(strings.ToLower(p.Memo), needle) {
			return false
		}
	}
	if len(f.Statuses) > 0 {
		var found bool
		for _, s := range f.Statuses {
			if p.Status == s {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.MinAmount > 0 && p.Amount < f.MinAmount {
		return false
	}
	if f.MaxAmount > 0 && p.Amount > f.MaxAmount {
		return false
	}
	if !f.CreatedFrom.IsZero() && p.CreatedAt < f.CreatedFrom {
		return false
	}
	if !f.CreatedTo.IsZero() && p.CreatedAt > endOfDay(f.CreatedTo) {
		return false
	}
	if f.Token != "" && f.Token != p.Token.String() && f.Token != p.Token.Symbol() {
		return false
	}
	return true
}

// endOfDay extends a timestamp to the last second of its UTC day so an
// inclusive "to" date covers the whole day.
func endOfDay(t vault.UnixTime) vault.UnixTime {
	day := t.Time().UTC().Truncate(24 * time.Hour)
	return vault.AsUnixTime(day.Add(24*time.Hour - time.Second))
}

// QueryService is the stateless read path for dashboards. It operates
// on store snapshots and never blocks writers.
type QueryService struct {
	lister store.Lister
}

// NewQueryService returns a query service reading from the given store.
func NewQueryService(l store.Lister) *QueryService {
	return &QueryService{lister: l}
}

// Search returns all proposals matching the filter in the requested
// order.
func (q *QueryService) Search(f Filter, order SortOrder) ([]*vault.Proposal, error) {
	if err := f.Validate(); err != nil {
		return nil, errors.Wrap(err, "filter")
	}
	all, err := q.lister.List()
	if err != nil {
		return nil, errors.Wrap(err, "list proposals")
	}

	out := make([]*vault.Proposal, 0, len(all))
	for _, p := range all {
		if f.matches(p) {
			out = append(out, p)
		}
	}
	sortProposals(out, order)
	return out, nil
}

func sortProposals(list []*vault.Proposal, order SortOrder) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		switch order {
		case SortOldestFirst:
			if a.CreatedAt != b.CreatedAt {
				return a.CreatedAt < b.CreatedAt
			}
		case SortHighestAmount:
			if a.Amount != b.Amount {
				return a.Amount > b.Amount
			}
		case SortLowestAmount:
			if a.Amount != b.Amount {
				return a.Amount < b.Amount
			}
		default: // SortNewestFirst
			if a.CreatedAt != b.CreatedAt {
				return a.CreatedAt > b.CreatedAt
			}
		}
		return a.ID < b.ID
	})
}

// Summary aggregates the numbers the dashboard stat cards show.
type Summary struct {
	Total          int                  `json:"total"`
	ByStatus       map[vault.Status]int `json:"by_status"`
	PendingAmount  coin.Amount          `json:"pending_amount"`
	ExecutedAmount coin.Amount          `json:"executed_amount"`
}

// Summary returns per status counts and amount totals over the whole
// store.
func (q *QueryService) Summary() (Summary, error) {
	all, err := q.lister.List()
	if err != nil {
		return Summary{}, errors.Wrap(err, "list proposals")
	}

	s := Summary{
		Total:    len(all),
		ByStatus: make(map[vault.Status]int),
	}
	for _, p := range all {
		s.ByStatus[p.Status]++
		switch p.Status {
		case vault.StatusPending, vault.StatusApproved:
			if s.PendingAmount, err = s.PendingAmount.Add(p.Amount); err != nil {
				return Summary{}, errors.Wrap(err, "pending total")
			}
		case vault.StatusExecuted:
			if s.ExecutedAmount, err = s.ExecutedAmount.Add(p.Amount); err != nil {
				return Summary{}, errors.Wrap(err, "executed total")
			}
		}
	}
	return s, nil
}
