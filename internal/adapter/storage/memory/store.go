// Package memory holds the in-process storage driver. Writes made inside a
// transaction are staged and become visible only on Commit; one transaction
// runs at a time, which stands in for row locks.
package memory

import (
	"context"
	"errors"
	"sync"

	"nft-royalty-vault/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrForeignTx is returned when a repository receives a transaction it did not start.
var ErrForeignTx = errors.New("memory: transaction was not started by this store")

// Store is the shared state behind every memory repository.
type Store struct {
	mu          sync.RWMutex
	sem         chan struct{}
	accounts    map[domain.Identity]domain.Account
	holdings    map[domain.Identity]domain.TokenHolding
	events      []domain.RoyaltyEvent
	idempotency map[string]domain.IdempotencyLog
	audits      []domain.AuditLog
	webhooks    map[uuid.UUID]domain.WebhookDeliveryLog
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		sem:         make(chan struct{}, 1),
		accounts:    make(map[domain.Identity]domain.Account),
		holdings:    make(map[domain.Identity]domain.TokenHolding),
		idempotency: make(map[string]domain.IdempotencyLog),
		webhooks:    make(map[uuid.UUID]domain.WebhookDeliveryLog),
	}
}

// Begin implements ports.DBTransactor. It blocks until no other transaction is open.
func (s *Store) Begin(ctx context.Context) (pgx.Tx, error) {
	select {
	case s.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return &memTx{
		store:    s,
		accounts: make(map[domain.Identity]domain.Account),
		holdings: make(map[domain.Identity]domain.TokenHolding),
	}, nil
}

// memTx stages writes until Commit. Only Commit and Rollback are supported;
// the embedded pgx.Tx is nil and any other method panics.
type memTx struct {
	pgx.Tx

	store       *Store
	accounts    map[domain.Identity]domain.Account
	holdings    map[domain.Identity]domain.TokenHolding
	events      []domain.RoyaltyEvent
	idempotency []domain.IdempotencyLog
	closed      bool
}

func (t *memTx) Commit(ctx context.Context) error {
	if t.closed {
		return pgx.ErrTxClosed
	}
	t.closed = true
	defer t.release()

	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, log := range t.idempotency {
		if _, ok := s.idempotency[log.Key]; ok {
			return pgx.ErrTxCommitRollback
		}
	}
	for addr, acc := range t.accounts {
		s.accounts[addr] = acc
	}
	for addr, h := range t.holdings {
		s.holdings[addr] = h
	}
	s.events = append(s.events, t.events...)
	for _, log := range t.idempotency {
		s.idempotency[log.Key] = log
	}
	return nil
}

func (t *memTx) Rollback(ctx context.Context) error {
	if t.closed {
		return pgx.ErrTxClosed
	}
	t.closed = true
	t.release()
	return nil
}

func (t *memTx) release() {
	<-t.store.sem
}

func (s *Store) txOf(tx pgx.Tx) (*memTx, error) {
	t, ok := tx.(*memTx)
	if !ok || t.store != s {
		return nil, ErrForeignTx
	}
	if t.closed {
		return nil, pgx.ErrTxClosed
	}
	return t, nil
}

func (s *Store) account(t *memTx, addr domain.Identity) (*domain.Account, bool) {
	if t != nil {
		if acc, ok := t.accounts[addr]; ok {
			return cloneAccount(acc), true
		}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	acc, ok := s.accounts[addr]
	if !ok {
		return nil, false
	}
	return cloneAccount(acc), true
}

func cloneAccount(acc domain.Account) *domain.Account {
	if acc.Data != nil {
		acc.Data = append([]byte(nil), acc.Data...)
	}
	return &acc
}
