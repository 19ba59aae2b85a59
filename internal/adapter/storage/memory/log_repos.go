package memory

import (
	"context"
	"fmt"

	"nft-royalty-vault/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// IdempotencyRepo implements ports.IdempotencyRepository.
type IdempotencyRepo struct {
	store *Store
}

// NewIdempotencyRepo creates a new IdempotencyRepo.
func NewIdempotencyRepo(store *Store) *IdempotencyRepo {
	return &IdempotencyRepo{store: store}
}

// Create stages an idempotency log. A key committed by another transaction fails the commit.
func (r *IdempotencyRepo) Create(ctx context.Context, tx pgx.Tx, log *domain.IdempotencyLog) error {
	t, err := r.store.txOf(tx)
	if err != nil {
		return err
	}
	if existing, _ := r.Get(ctx, log.Key); existing != nil {
		return fmt.Errorf("insert idempotency log: duplicate key %q", log.Key)
	}
	t.idempotency = append(t.idempotency, *log)
	return nil
}

func (r *IdempotencyRepo) Get(ctx context.Context, key string) (*domain.IdempotencyLog, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	log, ok := r.store.idempotency[key]
	if !ok {
		return nil, nil
	}
	return &log, nil
}

// AuditRepo implements ports.AuditRepository.
type AuditRepo struct {
	store *Store
}

// NewAuditRepo creates a new AuditRepo.
func NewAuditRepo(store *Store) *AuditRepo {
	return &AuditRepo{store: store}
}

func (r *AuditRepo) Create(ctx context.Context, log *domain.AuditLog) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.audits = append(r.store.audits, *log)
	return nil
}

// List returns every audit record, oldest first.
func (r *AuditRepo) List() []domain.AuditLog {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return append([]domain.AuditLog(nil), r.store.audits...)
}

// WebhookRepo implements ports.WebhookRepository.
type WebhookRepo struct {
	store *Store
}

// NewWebhookRepo creates a new WebhookRepo.
func NewWebhookRepo(store *Store) *WebhookRepo {
	return &WebhookRepo{store: store}
}

func (r *WebhookRepo) Create(ctx context.Context, log *domain.WebhookDeliveryLog) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.webhooks[log.ID] = *log
	return nil
}

func (r *WebhookRepo) Update(ctx context.Context, log *domain.WebhookDeliveryLog) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.webhooks[log.ID]; !ok {
		return fmt.Errorf("webhook delivery log not found: %s", log.ID)
	}
	r.store.webhooks[log.ID] = *log
	return nil
}
