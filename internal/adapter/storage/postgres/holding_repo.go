package postgres

import (
	"context"
	"errors"
	"fmt"

	"nft-royalty-vault/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

const holdingColumns = `address, mint, owner, amount, updated_at`

// HoldingRepo implements ports.HoldingRepository.
type HoldingRepo struct {
	pool Pool
}

// NewHoldingRepo creates a new HoldingRepo.
func NewHoldingRepo(pool Pool) *HoldingRepo {
	return &HoldingRepo{pool: pool}
}

// Get fetches a holding record by address (without locking).
func (r *HoldingRepo) Get(ctx context.Context, address domain.Identity) (*domain.TokenHolding, error) {
	query := `SELECT ` + holdingColumns + ` FROM token_holdings WHERE address = $1`

	h, err := scanHolding(r.pool.QueryRow(ctx, query, address.String()))
	if err != nil {
		return nil, fmt.Errorf("get holding: %w", err)
	}
	return h, nil
}

// GetForUpdate fetches a holding record with pessimistic locking.
// This MUST be called within a transaction.
func (r *HoldingRepo) GetForUpdate(ctx context.Context, tx pgx.Tx, address domain.Identity) (*domain.TokenHolding, error) {
	query := `SELECT ` + holdingColumns + ` FROM token_holdings WHERE address = $1 FOR UPDATE`

	h, err := scanHolding(tx.QueryRow(ctx, query, address.String()))
	if err != nil {
		return nil, fmt.Errorf("get holding for update: %w", err)
	}
	return h, nil
}

// Upsert inserts a holding record or replaces the existing one.
func (r *HoldingRepo) Upsert(ctx context.Context, tx pgx.Tx, h *domain.TokenHolding) error {
	amount, err := toBigint(h.Amount)
	if err != nil {
		return fmt.Errorf("upsert holding %s: %w", h.Address, err)
	}

	query := `INSERT INTO token_holdings (` + holdingColumns + `) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (address) DO UPDATE
		SET mint = EXCLUDED.mint, owner = EXCLUDED.owner, amount = EXCLUDED.amount, updated_at = EXCLUDED.updated_at`

	_, err = tx.Exec(ctx, query, h.Address.String(), h.Mint.String(), h.Owner.String(), amount, h.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert holding: %w", err)
	}
	return nil
}

func scanHolding(row pgx.Row) (*domain.TokenHolding, error) {
	var (
		address, mint, owner string
		amount               int64
	)
	h := &domain.TokenHolding{}
	if err := row.Scan(&address, &mint, &owner, &amount, &h.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := parseIdentities(
		identityColumn{address, &h.Address},
		identityColumn{mint, &h.Mint},
		identityColumn{owner, &h.Owner},
	); err != nil {
		return nil, err
	}
	var err error
	if h.Amount, err = fromBigint(amount); err != nil {
		return nil, err
	}
	return h, nil
}
