package memory

import (
	"context"

	"nft-royalty-vault/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// HoldingRepo implements ports.HoldingRepository.
type HoldingRepo struct {
	store *Store
}

// NewHoldingRepo creates a new HoldingRepo.
func NewHoldingRepo(store *Store) *HoldingRepo {
	return &HoldingRepo{store: store}
}

func (r *HoldingRepo) Get(ctx context.Context, address domain.Identity) (*domain.TokenHolding, error) {
	return r.lookup(nil, address), nil
}

func (r *HoldingRepo) GetForUpdate(ctx context.Context, tx pgx.Tx, address domain.Identity) (*domain.TokenHolding, error) {
	t, err := r.store.txOf(tx)
	if err != nil {
		return nil, err
	}
	return r.lookup(t, address), nil
}

func (r *HoldingRepo) Upsert(ctx context.Context, tx pgx.Tx, h *domain.TokenHolding) error {
	t, err := r.store.txOf(tx)
	if err != nil {
		return err
	}
	t.holdings[h.Address] = *h
	return nil
}

func (r *HoldingRepo) lookup(t *memTx, address domain.Identity) *domain.TokenHolding {
	if t != nil {
		if h, ok := t.holdings[address]; ok {
			return &h
		}
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	h, ok := r.store.holdings[address]
	if !ok {
		return nil
	}
	return &h
}
