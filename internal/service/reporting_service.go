package service

import (
	"context"
	"fmt"

	"nft-royalty-vault/internal/codec"
	"nft-royalty-vault/internal/core/domain"
	"nft-royalty-vault/internal/core/ports"
	"nft-royalty-vault/pkg/apperror"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
	verifyPageSize  = 500
)

// reportingService implements ports.ReportingService.
type reportingService struct {
	accounts ports.AccountRepository
	events   ports.EventRepository
	addrs    domain.ProgramAddresses
}

// NewReportingService creates a new reporting service.
func NewReportingService(
	accounts ports.AccountRepository,
	events ports.EventRepository,
	addrs domain.ProgramAddresses,
) ports.ReportingService {
	return &reportingService{
		accounts: accounts,
		events:   events,
		addrs:    addrs,
	}
}

// GetCollection returns the config, both ledgers and the vault balance.
func (s *reportingService) GetCollection(ctx context.Context) (*ports.CollectionState, error) {
	c, err := readCollection(ctx, s.accounts, s.addrs)
	if err != nil {
		return nil, err
	}
	return &ports.CollectionState{
		Addresses:    s.addrs,
		Config:       c.Config,
		Artists:      c.Artists,
		Nfts:         c.Nfts,
		VaultBalance: c.Vault.Balance(),
	}, nil
}

// GetArtistLedger returns the artist ledger.
func (s *reportingService) GetArtistLedger(ctx context.Context) (*domain.ArtistLedger, error) {
	c, err := readCollection(ctx, s.accounts, s.addrs)
	if err != nil {
		return nil, err
	}
	return c.Artists, nil
}

// GetNftLedger returns the NFT ledger.
func (s *reportingService) GetNftLedger(ctx context.Context) (*domain.NftLedger, error) {
	c, err := readCollection(ctx, s.accounts, s.addrs)
	if err != nil {
		return nil, err
	}
	return c.Nfts, nil
}

// GetVault returns the vault address and custodial balance.
func (s *reportingService) GetVault(ctx context.Context) (*ports.VaultState, error) {
	acc, err := s.accounts.Get(ctx, s.addrs.Vault)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get vault: %w", err))
	}
	if acc == nil {
		return nil, apperror.ErrCollectionNotInitialized()
	}
	return &ports.VaultState{Address: s.addrs.Vault, Balance: acc.Lamports}, nil
}

// Reconcile compares ledger obligations with the vault balance.
func (s *reportingService) Reconcile(ctx context.Context) (*domain.Reconciliation, error) {
	c, err := readCollection(ctx, s.accounts, s.addrs)
	if err != nil {
		return nil, err
	}
	rec, err := c.Reconcile()
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListEvents returns a page of journal entries, oldest first.
func (s *reportingService) ListEvents(ctx context.Context, params ports.EventListParams) ([]domain.RoyaltyEvent, int64, error) {
	params.ProgramID = s.addrs.ProgramID
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 {
		params.PageSize = defaultPageSize
	}
	if params.PageSize > maxPageSize {
		return nil, 0, apperror.Validation(fmt.Sprintf("page_size must be at most %d", maxPageSize))
	}
	if params.From != nil && params.To != nil && *params.From > *params.To {
		return nil, 0, apperror.Validation("from must not be after to")
	}

	events, total, err := s.events.List(ctx, params)
	if err != nil {
		return nil, 0, apperror.InternalError(err)
	}
	return events, total, nil
}

// GetStats aggregates the journal.
func (s *reportingService) GetStats(ctx context.Context) (*domain.EventStats, error) {
	stats, err := s.events.GetStats(ctx, s.addrs.ProgramID)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	return stats, nil
}

// VerifyJournal walks the whole journal and checks its hash chain.
func (s *reportingService) VerifyJournal(ctx context.Context) error {
	var all []domain.RoyaltyEvent
	for page := 1; ; page++ {
		events, total, err := s.events.List(ctx, ports.EventListParams{
			ProgramID: s.addrs.ProgramID,
			Page:      page,
			PageSize:  verifyPageSize,
		})
		if err != nil {
			return apperror.InternalError(err)
		}
		all = append(all, events...)
		if len(events) == 0 || int64(len(all)) >= total {
			break
		}
	}
	if err := domain.VerifyJournal(all); err != nil {
		return apperror.ErrCorruptAccount(fmt.Errorf("journal: %w", err))
	}
	return nil
}

// readCollection loads the collection without locking, for read paths.
func readCollection(ctx context.Context, accounts ports.AccountRepository, addrs domain.ProgramAddresses) (*domain.Collection, error) {
	load := func(addr domain.Identity, name string) (*domain.Account, error) {
		acc, err := accounts.Get(ctx, addr)
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("get %s: %w", name, err))
		}
		if acc == nil {
			return nil, apperror.ErrCollectionNotInitialized()
		}
		return acc, nil
	}

	cfgAcc, err := load(addrs.Config, "config")
	if err != nil {
		return nil, err
	}
	artistAcc, err := load(addrs.ArtistLedger, "artist ledger")
	if err != nil {
		return nil, err
	}
	nftAcc, err := load(addrs.NftLedger, "nft ledger")
	if err != nil {
		return nil, err
	}
	vaultAcc, err := load(addrs.Vault, "vault")
	if err != nil {
		return nil, err
	}

	cfg, err := codec.DecodeCollectionConfig(cfgAcc.Data)
	if err != nil {
		return nil, apperror.ErrCorruptAccount(fmt.Errorf("config: %w", err))
	}
	artists, err := codec.DecodeArtistLedger(artistAcc.Data)
	if err != nil {
		return nil, apperror.ErrCorruptAccount(fmt.Errorf("artist ledger: %w", err))
	}
	nfts, err := codec.DecodeNftLedger(nftAcc.Data)
	if err != nil {
		return nil, apperror.ErrCorruptAccount(fmt.Errorf("nft ledger: %w", err))
	}
	return domain.RestoreCollection(addrs, cfg, artists, nfts, vaultAcc.Lamports), nil
}
