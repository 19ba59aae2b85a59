package memory

import (
	"context"

	"nft-royalty-vault/internal/core/domain"
	"nft-royalty-vault/internal/core/ports"

	"github.com/jackc/pgx/v5"
)

// EventRepo implements ports.EventRepository.
type EventRepo struct {
	store *Store
}

// NewEventRepo creates a new EventRepo.
func NewEventRepo(store *Store) *EventRepo {
	return &EventRepo{store: store}
}

// Create stages an event and assigns its sequence number.
func (r *EventRepo) Create(ctx context.Context, tx pgx.Tx, e *domain.RoyaltyEvent) error {
	t, err := r.store.txOf(tx)
	if err != nil {
		return err
	}
	r.store.mu.RLock()
	committed := len(r.store.events)
	r.store.mu.RUnlock()

	e.Sequence = int64(committed + len(t.events) + 1)
	t.events = append(t.events, *e)
	return nil
}

// LastHash returns the newest hash of programID's journal as seen by tx.
func (r *EventRepo) LastHash(ctx context.Context, tx pgx.Tx, programID domain.Identity) (string, error) {
	t, err := r.store.txOf(tx)
	if err != nil {
		return "", err
	}
	for i := len(t.events) - 1; i >= 0; i-- {
		if t.events[i].ProgramID.Equals(programID) {
			return t.events[i].Hash, nil
		}
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for i := len(r.store.events) - 1; i >= 0; i-- {
		if r.store.events[i].ProgramID.Equals(programID) {
			return r.store.events[i].Hash, nil
		}
	}
	return "", nil
}

// List returns committed events, oldest first.
func (r *EventRepo) List(ctx context.Context, params ports.EventListParams) ([]domain.RoyaltyEvent, int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var matched []domain.RoyaltyEvent
	for _, e := range r.store.events {
		if matchesEvent(e, params) {
			matched = append(matched, e)
		}
	}

	total := int64(len(matched))
	offset := (params.Page - 1) * params.PageSize
	if offset < 0 || offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + params.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

// GetStats aggregates programID's committed journal.
func (r *EventRepo) GetStats(ctx context.Context, programID domain.Identity) (*domain.EventStats, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	stats := &domain.EventStats{}
	for _, e := range r.store.events {
		if !e.ProgramID.Equals(programID) {
			continue
		}
		stats.TotalEvents++
		if e.Kind == domain.EventAddNft {
			stats.NftsRegistered++
		}
		switch {
		case e.Kind.IsDeposit():
			stats.TotalDeposited += e.Amount
		case e.Kind.IsWithdrawal():
			stats.TotalWithdrawn += e.Amount
		}
		stats.ArtistCredited += e.ArtistAmount
		stats.LabelCredited += e.LabelAmount
		stats.RoundingRetained += e.Retained
	}
	return stats, nil
}

func matchesEvent(e domain.RoyaltyEvent, p ports.EventListParams) bool {
	if !e.ProgramID.Equals(p.ProgramID) {
		return false
	}
	if p.Kind != nil && e.Kind != *p.Kind {
		return false
	}
	if p.Subject != nil && !e.Subject.Equals(*p.Subject) {
		return false
	}
	if p.From != nil && e.CreatedAt.Unix() < *p.From {
		return false
	}
	if p.To != nil && e.CreatedAt.Unix() > *p.To {
		return false
	}
	return true
}
