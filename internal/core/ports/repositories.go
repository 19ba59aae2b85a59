package ports

//go:generate mockgen -source=repositories.go -destination=mocks/mock_repositories.go -package=mocks

import (
	"context"

	"nft-royalty-vault/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// AccountRepository persists native-balance accounts, including the collection's
// derived config, ledger and vault accounts.
// Methods accepting pgx.Tx are used inside transaction blocks for pessimistic locking.
type AccountRepository interface {
	Get(ctx context.Context, address domain.Identity) (*domain.Account, error)
	GetForUpdate(ctx context.Context, tx pgx.Tx, address domain.Identity) (*domain.Account, error)
	Create(ctx context.Context, tx pgx.Tx, account *domain.Account) error
	Save(ctx context.Context, tx pgx.Tx, account *domain.Account) error
}

// HoldingRepository persists NFT holding records.
type HoldingRepository interface {
	Get(ctx context.Context, address domain.Identity) (*domain.TokenHolding, error)
	GetForUpdate(ctx context.Context, tx pgx.Tx, address domain.Identity) (*domain.TokenHolding, error)
	Upsert(ctx context.Context, tx pgx.Tx, holding *domain.TokenHolding) error
}

// EventRepository persists the hash-chained royalty journal.
type EventRepository interface {
	Create(ctx context.Context, tx pgx.Tx, event *domain.RoyaltyEvent) error
	// LastHash returns the newest event's hash for programID, or "" when the journal is empty.
	LastHash(ctx context.Context, tx pgx.Tx, programID domain.Identity) (string, error)
	List(ctx context.Context, params EventListParams) ([]domain.RoyaltyEvent, int64, error)
	GetStats(ctx context.Context, programID domain.Identity) (*domain.EventStats, error)
}

// EventListParams holds filter + pagination for listing events.
type EventListParams struct {
	ProgramID domain.Identity
	Kind      *domain.EventKind
	Subject   *domain.Identity
	From      *int64 // Unix timestamp
	To        *int64 // Unix timestamp
	Page      int
	PageSize  int
}

// IdempotencyRepository defines persistence for idempotency logs (DB backup).
type IdempotencyRepository interface {
	Create(ctx context.Context, tx pgx.Tx, log *domain.IdempotencyLog) error
	Get(ctx context.Context, key string) (*domain.IdempotencyLog, error)
}

// AuditRepository persists audit records.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
}

// WebhookRepository persists webhook delivery attempts.
type WebhookRepository interface {
	Create(ctx context.Context, log *domain.WebhookDeliveryLog) error
	Update(ctx context.Context, log *domain.WebhookDeliveryLog) error
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
