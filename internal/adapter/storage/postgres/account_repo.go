package postgres

import (
	"context"
	"errors"
	"fmt"

	"nft-royalty-vault/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

const accountColumns = `address, owner, lamports, data, updated_at`

// AccountRepo implements ports.AccountRepository.
type AccountRepo struct {
	pool Pool
}

// NewAccountRepo creates a new AccountRepo.
func NewAccountRepo(pool Pool) *AccountRepo {
	return &AccountRepo{pool: pool}
}

// Get fetches an account by address (without locking).
func (r *AccountRepo) Get(ctx context.Context, address domain.Identity) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE address = $1`

	acc, err := scanAccount(r.pool.QueryRow(ctx, query, address.String()))
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	return acc, nil
}

// GetForUpdate fetches an account with pessimistic locking.
// This MUST be called within a transaction.
func (r *AccountRepo) GetForUpdate(ctx context.Context, tx pgx.Tx, address domain.Identity) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE address = $1 FOR UPDATE`

	acc, err := scanAccount(tx.QueryRow(ctx, query, address.String()))
	if err != nil {
		return nil, fmt.Errorf("get account for update: %w", err)
	}
	return acc, nil
}

// Create inserts a new account within a transaction.
func (r *AccountRepo) Create(ctx context.Context, tx pgx.Tx, a *domain.Account) error {
	lamports, err := toBigint(a.Lamports)
	if err != nil {
		return fmt.Errorf("insert account %s: %w", a.Address, err)
	}

	query := `INSERT INTO accounts (` + accountColumns + `) VALUES ($1, $2, $3, $4, $5)`
	_, err = tx.Exec(ctx, query, a.Address.String(), a.Owner.String(), lamports, a.Data, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// Save overwrites an existing account's owner, balance and data within a transaction.
func (r *AccountRepo) Save(ctx context.Context, tx pgx.Tx, a *domain.Account) error {
	lamports, err := toBigint(a.Lamports)
	if err != nil {
		return fmt.Errorf("update account %s: %w", a.Address, err)
	}

	query := `UPDATE accounts SET owner = $1, lamports = $2, data = $3, updated_at = $4 WHERE address = $5`
	tag, err := tx.Exec(ctx, query, a.Owner.String(), lamports, a.Data, a.UpdatedAt, a.Address.String())
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("account not found: %s", a.Address)
	}
	return nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		address, owner string
		lamports       int64
	)
	a := &domain.Account{}
	if err := row.Scan(&address, &owner, &lamports, &a.Data, &a.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := parseIdentities(
		identityColumn{address, &a.Address},
		identityColumn{owner, &a.Owner},
	); err != nil {
		return nil, err
	}
	var err error
	if a.Lamports, err = fromBigint(lamports); err != nil {
		return nil, err
	}
	return a, nil
}
