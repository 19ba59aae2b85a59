package service

import (
	"context"
	"fmt"

	"nft-royalty-vault/internal/codec"
	"nft-royalty-vault/internal/core/domain"
	"nft-royalty-vault/internal/core/ports"
	"nft-royalty-vault/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

// accountService implements ports.AccountService. It stands in for the host
// runtime: it credits wallet balances and records NFT holdings, both guarded
// by the collection authority.
type accountService struct {
	accounts   ports.AccountRepository
	holdings   ports.HoldingRepository
	transactor ports.DBTransactor
	addrs      domain.ProgramAddresses
	clock      clockwork.Clock
	log        zerolog.Logger
}

// NewAccountService creates a new account service.
func NewAccountService(
	accounts ports.AccountRepository,
	holdings ports.HoldingRepository,
	transactor ports.DBTransactor,
	addrs domain.ProgramAddresses,
	clock clockwork.Clock,
	log zerolog.Logger,
) ports.AccountService {
	return &accountService{
		accounts:   accounts,
		holdings:   holdings,
		transactor: transactor,
		addrs:      addrs,
		clock:      clock,
		log:        log,
	}
}

// FundAccount credits amount to a wallet account, creating it when missing.
func (s *accountService) FundAccount(ctx context.Context, req ports.FundAccountRequest) (*domain.Account, error) {
	if req.Amount == 0 {
		return nil, apperror.ErrInvalidAmount()
	}
	if s.addrs.IsProgramAddress(req.Address) {
		return nil, apperror.Validation("collection accounts cannot be funded directly")
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := s.authorize(ctx, dbTx, req.Authority, req.Signers); err != nil {
		return nil, err
	}

	acc, err := s.accounts.GetForUpdate(ctx, dbTx, req.Address)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock account: %w", err))
	}
	now := s.clock.Now().UTC()
	if acc == nil {
		acc = &domain.Account{Address: req.Address, Owner: domain.SystemOwner, Lamports: req.Amount, UpdatedAt: now}
		if err := s.accounts.Create(ctx, dbTx, acc); err != nil {
			return nil, apperror.InternalError(fmt.Errorf("create account: %w", err))
		}
	} else {
		if acc.Lamports > ^uint64(0)-req.Amount {
			return nil, apperror.ErrArithmeticOverflow()
		}
		acc.Lamports += req.Amount
		acc.UpdatedAt = now
		if err := s.accounts.Save(ctx, dbTx, acc); err != nil {
			return nil, apperror.InternalError(fmt.Errorf("save account: %w", err))
		}
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("address", req.Address.String()).
		Uint64("amount", req.Amount).
		Uint64("balance", acc.Lamports).
		Msg("account funded")

	return acc, nil
}

// RegisterHolding records which mint an address holds, its owner and amount.
func (s *accountService) RegisterHolding(ctx context.Context, req ports.RegisterHoldingRequest) (*domain.TokenHolding, error) {
	if s.addrs.IsProgramAddress(req.Address) {
		return nil, apperror.Validation("collection accounts cannot hold NFTs")
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := s.authorize(ctx, dbTx, req.Authority, req.Signers); err != nil {
		return nil, err
	}

	holding := &domain.TokenHolding{
		Address:   req.Address,
		Mint:      req.Mint,
		Owner:     req.Owner,
		Amount:    req.Amount,
		UpdatedAt: s.clock.Now().UTC(),
	}
	if err := s.holdings.Upsert(ctx, dbTx, holding); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("upsert holding: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("holding", req.Address.String()).
		Str("mint", req.Mint.String()).
		Str("owner", req.Owner.String()).
		Uint64("amount", req.Amount).
		Msg("holding registered")

	return holding, nil
}

// GetAccount returns a stored account.
func (s *accountService) GetAccount(ctx context.Context, address domain.Identity) (*domain.Account, error) {
	acc, err := s.accounts.Get(ctx, address)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if acc == nil {
		return nil, apperror.ErrNotFound("account")
	}
	return acc, nil
}

// authorize checks that authority is the collection authority and signed.
// The config row is locked so authority checks serialize with collection operations.
func (s *accountService) authorize(ctx context.Context, tx pgx.Tx, authority domain.Identity, signers []domain.Identity) error {
	cfgAcc, err := s.accounts.GetForUpdate(ctx, tx, s.addrs.Config)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("lock config: %w", err))
	}
	if cfgAcc == nil {
		return apperror.ErrCollectionNotInitialized()
	}
	cfg, err := codec.DecodeCollectionConfig(cfgAcc.Data)
	if err != nil {
		return apperror.ErrCorruptAccount(fmt.Errorf("config: %w", err))
	}
	if !authority.Equals(cfg.Authority) || !signedBy(signers, authority) {
		return apperror.ErrMissingCollectionAuthoritySignature()
	}
	return nil
}

func signedBy(signers []domain.Identity, id domain.Identity) bool {
	for _, s := range signers {
		if s.Equals(id) {
			return true
		}
	}
	return false
}
