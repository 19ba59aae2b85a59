package memory

import (
	"context"
	"fmt"

	"nft-royalty-vault/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// AccountRepo implements ports.AccountRepository.
type AccountRepo struct {
	store *Store
}

// NewAccountRepo creates a new AccountRepo.
func NewAccountRepo(store *Store) *AccountRepo {
	return &AccountRepo{store: store}
}

// Get returns the committed account, or nil.
func (r *AccountRepo) Get(ctx context.Context, address domain.Identity) (*domain.Account, error) {
	acc, _ := r.store.account(nil, address)
	return acc, nil
}

// GetForUpdate returns the account as seen by tx, including its staged writes.
func (r *AccountRepo) GetForUpdate(ctx context.Context, tx pgx.Tx, address domain.Identity) (*domain.Account, error) {
	t, err := r.store.txOf(tx)
	if err != nil {
		return nil, err
	}
	acc, _ := r.store.account(t, address)
	return acc, nil
}

// Create stages a new account.
func (r *AccountRepo) Create(ctx context.Context, tx pgx.Tx, a *domain.Account) error {
	t, err := r.store.txOf(tx)
	if err != nil {
		return err
	}
	if _, exists := r.store.account(t, a.Address); exists {
		return fmt.Errorf("insert account: %s already exists", a.Address)
	}
	t.accounts[a.Address] = *cloneAccount(*a)
	return nil
}

// Save stages an update of an existing account.
func (r *AccountRepo) Save(ctx context.Context, tx pgx.Tx, a *domain.Account) error {
	t, err := r.store.txOf(tx)
	if err != nil {
		return err
	}
	if _, exists := r.store.account(t, a.Address); !exists {
		return fmt.Errorf("account not found: %s", a.Address)
	}
	t.accounts[a.Address] = *cloneAccount(*a)
	return nil
}
