package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"nft-royalty-vault/internal/codec"
	"nft-royalty-vault/internal/core/domain"
	"nft-royalty-vault/internal/core/ports"
	"nft-royalty-vault/internal/metrics"
	"nft-royalty-vault/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

const idempotencyTTL = 24 * time.Hour

// RoyaltyServiceImpl implements ports.RoyaltyService. Every operation locks the
// collection's accounts in a fixed order (config, artist ledger, nft ledger,
// vault, then the counterparty), runs the domain operation and writes the
// ledger change and the value transfer in the same database transaction.
type RoyaltyServiceImpl struct {
	accounts   ports.AccountRepository
	holdings   ports.HoldingRepository
	events     ports.EventRepository
	idempRepo  ports.IdempotencyRepository
	idempCache ports.IdempotencyCache
	transactor ports.DBTransactor
	addrs      domain.ProgramAddresses
	clock      clockwork.Clock
	log        zerolog.Logger
}

// NewRoyaltyService creates a new RoyaltyServiceImpl.
func NewRoyaltyService(
	accounts ports.AccountRepository,
	holdings ports.HoldingRepository,
	events ports.EventRepository,
	idempRepo ports.IdempotencyRepository,
	idempCache ports.IdempotencyCache,
	transactor ports.DBTransactor,
	addrs domain.ProgramAddresses,
	clock clockwork.Clock,
	log zerolog.Logger,
) *RoyaltyServiceImpl {
	return &RoyaltyServiceImpl{
		accounts:   accounts,
		holdings:   holdings,
		events:     events,
		idempRepo:  idempRepo,
		idempCache: idempCache,
		transactor: transactor,
		addrs:      addrs,
		clock:      clock,
		log:        log,
	}
}

// InitializeCollection creates the config, both ledgers and the vault account.
func (s *RoyaltyServiceImpl) InitializeCollection(ctx context.Context, req ports.InitializeCollectionRequest) (_ *ports.CollectionState, err error) {
	defer func() { metrics.RecordOperation(string(domain.EventInitializeCollection), err) }()

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	existing, err := s.accounts.GetForUpdate(ctx, dbTx, s.addrs.Config)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock config: %w", err))
	}
	if existing != nil {
		return nil, apperror.ErrCollectionAlreadyInitialized()
	}
	vaultAcc, err := s.accounts.GetForUpdate(ctx, dbTx, s.addrs.Vault)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock vault: %w", err))
	}
	var vaultBalance uint64
	if vaultAcc != nil {
		vaultBalance = vaultAcc.Lamports
	}

	coll, out, err := domain.InitializeCollection(s.addrs, vaultBalance, domain.InitializeCollectionParams{
		Authority:         req.Authority,
		ArtistMintBP:      req.ArtistMintBP,
		LabelMintBP:       req.LabelMintBP,
		ArtistSecondaryBP: req.ArtistSecondaryBP,
		LabelSecondaryBP:  req.LabelSecondaryBP,
		ArtistSplits:      req.ArtistSplits,
		Signers:           req.Signers,
	})
	if err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	cfgData, err := codec.EncodeCollectionConfig(coll.Config)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("encode config: %w", err))
	}
	artistData, err := codec.EncodeArtistLedger(coll.Artists)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("encode artist ledger: %w", err))
	}
	nftData, err := codec.EncodeNftLedger(coll.Nfts)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("encode nft ledger: %w", err))
	}
	for _, acc := range []*domain.Account{
		{Address: s.addrs.Config, Owner: s.addrs.ProgramID, Data: cfgData, UpdatedAt: now},
		{Address: s.addrs.ArtistLedger, Owner: s.addrs.ProgramID, Data: artistData, UpdatedAt: now},
		{Address: s.addrs.NftLedger, Owner: s.addrs.ProgramID, Data: nftData, UpdatedAt: now},
	} {
		if err := s.accounts.Create(ctx, dbTx, acc); err != nil {
			return nil, apperror.InternalError(fmt.Errorf("create account %s: %w", acc.Address, err))
		}
	}
	if vaultAcc == nil {
		vaultAcc = &domain.Account{Address: s.addrs.Vault, Owner: s.addrs.ProgramID, UpdatedAt: now}
		if err := s.accounts.Create(ctx, dbTx, vaultAcc); err != nil {
			return nil, apperror.InternalError(fmt.Errorf("create vault: %w", err))
		}
	} else {
		vaultAcc.Owner = s.addrs.ProgramID
		vaultAcc.UpdatedAt = now
		if err := s.accounts.Save(ctx, dbTx, vaultAcc); err != nil {
			return nil, apperror.InternalError(fmt.Errorf("save vault: %w", err))
		}
	}

	if _, err := s.appendEvent(ctx, dbTx, out, "", now); err != nil {
		return nil, err
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("collection", s.addrs.ProgramID.String()).
		Str("authority", req.Authority.String()).
		Int("artists", len(coll.Config.ArtistSplits)).
		Msg("collection initialized")

	return &ports.CollectionState{
		Addresses:    s.addrs,
		Config:       coll.Config,
		Artists:      coll.Artists,
		Nfts:         coll.Nfts,
		VaultBalance: coll.Vault.Balance(),
	}, nil
}

// AddNft registers a minted NFT and moves its mint proceeds into the vault.
func (s *RoyaltyServiceImpl) AddNft(ctx context.Context, req ports.AddNftRequest) (*domain.RoyaltyEvent, error) {
	params := domain.AddNftParams{
		Authority:  req.Authority,
		Payer:      req.Payer,
		Nft:        req.Nft,
		AmountPaid: req.AmountPaid,
		Signers:    req.Signers,
	}
	return s.execute(ctx, operation{
		kind:         domain.EventAddNft,
		referenceID:  req.ReferenceID,
		caller:       req.Authority,
		counterparty: req.Payer,
		precheck:     params.CheckSigners,
		apply: func(c *domain.Collection, _ *domain.TokenHolding) (*domain.Outcome, error) {
			return c.AddNft(params)
		},
	})
}

// PayLabel spreads a label payment evenly over the registered NFTs.
func (s *RoyaltyServiceImpl) PayLabel(ctx context.Context, req ports.DepositRequest) (*domain.RoyaltyEvent, error) {
	return s.execute(ctx, depositOperation(domain.EventPayLabel, req, (*domain.Collection).PayLabel))
}

// DistributeSecondaryPool settles resale earnings.
func (s *RoyaltyServiceImpl) DistributeSecondaryPool(ctx context.Context, req ports.DepositRequest) (*domain.RoyaltyEvent, error) {
	return s.execute(ctx, depositOperation(domain.EventDistributeSecondaryPool, req, (*domain.Collection).DistributeSecondaryPool))
}

// PayLicensingFee settles a licensing payment.
func (s *RoyaltyServiceImpl) PayLicensingFee(ctx context.Context, req ports.DepositRequest) (*domain.RoyaltyEvent, error) {
	return s.execute(ctx, depositOperation(domain.EventPayLicensingFee, req, (*domain.Collection).PayLicensingFee))
}

// MemberWithdraw pays an NFT holder the royalties accrued to the NFT.
func (s *RoyaltyServiceImpl) MemberWithdraw(ctx context.Context, req ports.MemberWithdrawRequest) (*domain.RoyaltyEvent, error) {
	holding := req.HoldingAccount
	return s.execute(ctx, operation{
		kind:         domain.EventMemberWithdraw,
		counterparty: req.Caller,
		holding:      &holding,
		apply: func(c *domain.Collection, h *domain.TokenHolding) (*domain.Outcome, error) {
			return c.MemberWithdraw(domain.MemberWithdrawParams{
				Caller:  req.Caller,
				Nft:     req.Nft,
				Holding: *h,
				Ledger:  req.Ledger,
				Signers: req.Signers,
			})
		},
	})
}

// ArtistWithdraw pays an artist the royalties accrued to the artist.
func (s *RoyaltyServiceImpl) ArtistWithdraw(ctx context.Context, req ports.ArtistWithdrawRequest) (*domain.RoyaltyEvent, error) {
	return s.execute(ctx, operation{
		kind:         domain.EventArtistWithdraw,
		counterparty: req.Artist,
		apply: func(c *domain.Collection, _ *domain.TokenHolding) (*domain.Outcome, error) {
			return c.ArtistWithdraw(domain.ArtistWithdrawParams{
				Caller:  req.Caller,
				Artist:  req.Artist,
				Ledger:  req.Ledger,
				Signers: req.Signers,
			})
		},
	})
}

// operation describes one state-mutating collection call.
type operation struct {
	kind        domain.EventKind
	referenceID string
	// caller scopes the idempotency key of a referenced operation.
	caller domain.Identity
	// precheck runs before any idempotent replay is served.
	precheck func() error
	// counterparty is the payer of a deposit or the recipient of a withdrawal.
	counterparty domain.Identity
	// holding is locked and passed to apply when set.
	holding *domain.Identity
	apply   func(c *domain.Collection, holding *domain.TokenHolding) (*domain.Outcome, error)
}

func depositOperation(kind domain.EventKind, req ports.DepositRequest, fn func(*domain.Collection, domain.DepositParams) (*domain.Outcome, error)) operation {
	params := domain.DepositParams{Payer: req.Payer, Amount: req.Amount, Signers: req.Signers}
	return operation{
		kind:         kind,
		referenceID:  req.ReferenceID,
		caller:       req.Payer,
		counterparty: req.Payer,
		precheck:     params.Check,
		apply: func(c *domain.Collection, _ *domain.TokenHolding) (*domain.Outcome, error) {
			return fn(c, params)
		},
	}
}

func (s *RoyaltyServiceImpl) execute(ctx context.Context, op operation) (_ *domain.RoyaltyEvent, err error) {
	defer func() { metrics.RecordOperation(string(op.kind), err) }()

	if s.addrs.IsProgramAddress(op.counterparty) {
		return nil, apperror.Validation("counterparty cannot be a collection account")
	}

	if op.precheck != nil {
		if err := op.precheck(); err != nil {
			return nil, err
		}
	}

	// Layer 1 + 2: idempotency checks for referenced deposits
	var idempKey string
	if op.referenceID != "" {
		idempKey = domain.BuildIdempotencyKey(s.addrs.ProgramID, op.caller, op.kind, op.referenceID)
		if evt, err := s.lookupIdempotent(ctx, idempKey); err != nil || evt != nil {
			return evt, err
		}
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	coll, locked, err := s.loadCollection(ctx, dbTx)
	if err != nil {
		return nil, err
	}

	party, err := s.accounts.GetForUpdate(ctx, dbTx, op.counterparty)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock counterparty: %w", err))
	}

	var holding *domain.TokenHolding
	if op.holding != nil {
		holding, err = s.holdings.GetForUpdate(ctx, dbTx, *op.holding)
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("lock holding: %w", err))
		}
		if holding == nil {
			return nil, apperror.ErrInvalidNftAssociatedAccount()
		}
	}

	out, err := op.apply(coll, holding)
	if err != nil {
		return nil, err
	}
	if len(out.Skipped) > 0 {
		metrics.SplitMismatchTotal.Add(float64(len(out.Skipped)))
		s.log.Warn().
			Str("collection", s.addrs.ProgramID.String()).
			Int("skipped", len(out.Skipped)).
			Msg("artist splits name artists missing from the ledger")
	}

	now := s.clock.Now().UTC()
	isNew := party == nil
	party, err = s.applyTransfer(out.Transfer, op.counterparty, party, now)
	if err != nil {
		return nil, err
	}
	if err := s.persistCollection(ctx, dbTx, coll, locked, now); err != nil {
		return nil, err
	}
	if party != nil {
		if err := s.saveCounterparty(ctx, dbTx, party, isNew); err != nil {
			return nil, err
		}
	}

	evt, err := s.appendEvent(ctx, dbTx, out, op.referenceID, now)
	if err != nil {
		return nil, err
	}

	var respJSON []byte
	if idempKey != "" {
		respJSON, err = json.Marshal(evt)
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("marshal response: %w", err))
		}
		if err := s.idempRepo.Create(ctx, dbTx, &domain.IdempotencyLog{
			Key:          idempKey,
			EventID:      evt.ID,
			ResponseJSON: respJSON,
			CreatedAt:    now,
		}); err != nil {
			if errors.Is(err, apperror.ErrDuplicateTransaction()) {
				return nil, err
			}
			return nil, apperror.InternalError(fmt.Errorf("save idempotency log: %w", err))
		}
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	// Post-process: cache in Redis (best-effort)
	if idempKey != "" {
		if err := s.idempCache.Set(ctx, idempKey, respJSON, idempotencyTTL); err != nil {
			s.log.Warn().Err(err).Str("key", idempKey).Msg("failed to cache idempotency in redis")
		}
	}

	metrics.RecordSettlement(string(out.Kind), out.Kind.IsDeposit(), out.Amount, out.Retained, coll.Vault.Balance())

	s.log.Info().
		Str("event_id", evt.ID.String()).
		Str("collection", s.addrs.ProgramID.String()).
		Str("kind", string(out.Kind)).
		Str("subject", out.Subject.String()).
		Uint64("amount", out.Amount).
		Uint64("retained", out.Retained).
		Msg("royalty operation committed")

	return evt, nil
}

func (s *RoyaltyServiceImpl) lookupIdempotent(ctx context.Context, key string) (*domain.RoyaltyEvent, error) {
	cached, err := s.idempCache.Get(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("redis idempotency check failed, falling through to DB")
	}
	if cached != nil {
		return unmarshalCachedEvent(cached)
	}

	idempLog, err := s.idempRepo.Get(ctx, key)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("db idempotency check: %w", err))
	}
	if idempLog != nil {
		return unmarshalCachedEvent(idempLog.ResponseJSON)
	}
	return nil, nil
}

// lockedAccounts are the collection accounts read under lock.
type lockedAccounts struct {
	artists *domain.Account
	nfts    *domain.Account
	vault   *domain.Account
}

func (s *RoyaltyServiceImpl) loadCollection(ctx context.Context, tx pgx.Tx) (*domain.Collection, lockedAccounts, error) {
	var locked lockedAccounts

	cfgAcc, err := s.lockProgramAccount(ctx, tx, s.addrs.Config, "config")
	if err != nil {
		return nil, locked, err
	}
	if locked.artists, err = s.lockProgramAccount(ctx, tx, s.addrs.ArtistLedger, "artist ledger"); err != nil {
		return nil, locked, err
	}
	if locked.nfts, err = s.lockProgramAccount(ctx, tx, s.addrs.NftLedger, "nft ledger"); err != nil {
		return nil, locked, err
	}
	if locked.vault, err = s.lockProgramAccount(ctx, tx, s.addrs.Vault, "vault"); err != nil {
		return nil, locked, err
	}

	cfg, err := codec.DecodeCollectionConfig(cfgAcc.Data)
	if err != nil {
		return nil, locked, apperror.ErrCorruptAccount(fmt.Errorf("config: %w", err))
	}
	artists, err := codec.DecodeArtistLedger(locked.artists.Data)
	if err != nil {
		return nil, locked, apperror.ErrCorruptAccount(fmt.Errorf("artist ledger: %w", err))
	}
	nfts, err := codec.DecodeNftLedger(locked.nfts.Data)
	if err != nil {
		return nil, locked, apperror.ErrCorruptAccount(fmt.Errorf("nft ledger: %w", err))
	}
	return domain.RestoreCollection(s.addrs, cfg, artists, nfts, locked.vault.Lamports), locked, nil
}

func (s *RoyaltyServiceImpl) lockProgramAccount(ctx context.Context, tx pgx.Tx, addr domain.Identity, name string) (*domain.Account, error) {
	acc, err := s.accounts.GetForUpdate(ctx, tx, addr)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock %s: %w", name, err))
	}
	if acc == nil {
		return nil, apperror.ErrCollectionNotInitialized()
	}
	if !acc.IsProgramOwned(s.addrs.ProgramID) {
		return nil, apperror.ErrCorruptAccount(fmt.Errorf("%s is not owned by %s", name, s.addrs.ProgramID))
	}
	return acc, nil
}

// applyTransfer moves the outcome's value between the counterparty and the
// vault. The vault side is already reflected in the collection.
func (s *RoyaltyServiceImpl) applyTransfer(t *domain.Transfer, counterparty domain.Identity, party *domain.Account, now time.Time) (*domain.Account, error) {
	if t == nil || t.Amount == 0 {
		return nil, nil
	}
	switch {
	case t.Authority == domain.AuthorityHolder && t.From.Equals(counterparty):
		if party == nil || party.Lamports < t.Amount {
			return nil, apperror.ErrInsufficientFunds()
		}
		party.Lamports -= t.Amount
	case t.Authority == domain.AuthorityProgram && t.To.Equals(counterparty):
		if party == nil {
			party = &domain.Account{Address: counterparty, Owner: domain.SystemOwner}
		}
		if party.Lamports > ^uint64(0)-t.Amount {
			return nil, apperror.ErrArithmeticOverflow()
		}
		party.Lamports += t.Amount
	default:
		return nil, apperror.InternalError(fmt.Errorf("transfer %s -> %s does not involve %s", t.From, t.To, counterparty))
	}
	party.UpdatedAt = now
	return party, nil
}

func (s *RoyaltyServiceImpl) persistCollection(ctx context.Context, tx pgx.Tx, c *domain.Collection, locked lockedAccounts, now time.Time) error {
	artistData, err := codec.EncodeArtistLedger(c.Artists)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("encode artist ledger: %w", err))
	}
	nftData, err := codec.EncodeNftLedger(c.Nfts)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("encode nft ledger: %w", err))
	}
	locked.artists.Data = artistData
	locked.nfts.Data = nftData
	locked.vault.Lamports = c.Vault.Balance()
	for _, acc := range []*domain.Account{locked.artists, locked.nfts, locked.vault} {
		acc.UpdatedAt = now
		if err := s.accounts.Save(ctx, tx, acc); err != nil {
			return apperror.InternalError(fmt.Errorf("save account %s: %w", acc.Address, err))
		}
	}
	return nil
}

func (s *RoyaltyServiceImpl) saveCounterparty(ctx context.Context, tx pgx.Tx, party *domain.Account, isNew bool) error {
	if isNew {
		if err := s.accounts.Create(ctx, tx, party); err != nil {
			return apperror.InternalError(fmt.Errorf("create account %s: %w", party.Address, err))
		}
		return nil
	}
	if err := s.accounts.Save(ctx, tx, party); err != nil {
		return apperror.InternalError(fmt.Errorf("save account %s: %w", party.Address, err))
	}
	return nil
}

func (s *RoyaltyServiceImpl) appendEvent(ctx context.Context, tx pgx.Tx, out *domain.Outcome, referenceID string, now time.Time) (*domain.RoyaltyEvent, error) {
	prev, err := s.events.LastHash(ctx, tx, s.addrs.ProgramID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("read journal head: %w", err))
	}
	evt, err := domain.NewRoyaltyEvent(s.addrs.ProgramID, out, referenceID, prev, now)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("seal event: %w", err))
	}
	if err := s.events.Create(ctx, tx, evt); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create event: %w", err))
	}
	return evt, nil
}

// unmarshalCachedEvent deserializes a cached event.
func unmarshalCachedEvent(data []byte) (*domain.RoyaltyEvent, error) {
	evt := &domain.RoyaltyEvent{}
	if err := json.Unmarshal(data, evt); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("unmarshal cached event: %w", err))
	}
	evt.Replayed = true
	return evt, nil
}
