package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nft-royalty-vault/config"
	httpHandler "nft-royalty-vault/internal/adapter/http/handler"
	"nft-royalty-vault/internal/adapter/http/middleware"
	memStorage "nft-royalty-vault/internal/adapter/storage/memory"
	pgStorage "nft-royalty-vault/internal/adapter/storage/postgres"
	redisStorage "nft-royalty-vault/internal/adapter/storage/redis"
	"nft-royalty-vault/internal/core/domain"
	"nft-royalty-vault/internal/core/ports"
	"nft-royalty-vault/internal/service"
	"nft-royalty-vault/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

// storage bundles the repositories and stores of one storage driver.
type storage struct {
	accounts    ports.AccountRepository
	holdings    ports.HoldingRepository
	events      ports.EventRepository
	idempotency ports.IdempotencyRepository
	audits      ports.AuditRepository
	webhooks    ports.WebhookRepository
	transactor  ports.DBTransactor
	idempCache  ports.IdempotencyCache
	nonces      ports.NonceStore
	rateLimits  ports.RateLimitStore
	health      []ports.HealthChecker
	close       func()
}

func main() {
	configPath := pflag.StringP("config", "c", "", "path to config file (default: ./config.yaml or ./config/config.yaml)")
	pflag.Parse()

	// A missing .env file is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("jwt.secret is required (set NRV_JWT_SECRET)")
	}

	programID, err := domain.ParseIdentity(cfg.Program.ID)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid program.id")
	}
	addrs, err := domain.DeriveProgramAddresses(programID)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to derive collection addresses")
	}

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Str("storage", cfg.Storage.Driver).
		Str("program_id", addrs.ProgramID.String()).
		Str("vault", addrs.Vault.String()).
		Msg("Starting NFT Royalty Vault")

	ctx := context.Background()
	clock := clockwork.NewRealClock()

	var store *storage
	switch cfg.Storage.Driver {
	case "postgres":
		store, err = openPostgres(ctx, cfg, clock, log)
	default:
		store = openMemory(clock)
		log.Warn().Msg("Using in-memory storage; state is lost on restart")
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize storage")
	}
	defer store.close()

	// Core services
	sigSvc := service.NewEd25519SignatureService()
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)

	// Business services
	royaltySvc := service.NewRoyaltyService(
		store.accounts,
		store.holdings,
		store.events,
		store.idempotency,
		store.idempCache,
		store.transactor,
		addrs,
		clock,
		logger.Component(log, "royalty"),
	)
	accountSvc := service.NewAccountService(store.accounts, store.holdings, store.transactor, addrs, clock, logger.Component(log, "accounts"))
	reportingSvc := service.NewReportingService(store.accounts, store.events, addrs)
	authSvc := service.NewAuthService(sigSvc, store.nonces, tokenSvc, clock, cfg.Auth.MaxTimestampDrift, cfg.Auth.NonceTTL)
	webhookSvc := service.NewWebhookService(
		cfg.Webhook.URL,
		cfg.Webhook.Secret,
		service.NewHMACSignatureService(),
		store.webhooks,
		&http.Client{Timeout: 10 * time.Second},
		clock,
		logger.Component(log, "webhook"),
	)
	auditSvc := service.NewAuditService(store.audits, logger.Component(log, "audit"))

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		Addresses:      addrs,
		RoyaltySvc:     royaltySvc,
		AccountSvc:     accountSvc,
		ReportingSvc:   reportingSvc,
		AuthSvc:        authSvc,
		LoginChallenge: service.BuildLoginMessage,
		WebhookSvc:     webhookSvc,
		AuditSvc:       auditSvc,
		SigSvc:         sigSvc,
		NonceStore:     store.nonces,
		TokenSvc:       tokenSvc,
		RateLimitStore: store.rateLimits,
		HealthCheckers: store.health,
		SignerAuth: middleware.SignerAuthConfig{
			MaxTimestampDrift: cfg.Auth.MaxTimestampDrift,
			NonceTTL:          cfg.Auth.NonceTTL,
		},
		Clock:  clock,
		Mode:   cfg.Server.Mode,
		Logger: log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// openPostgres connects PostgreSQL and Redis. Redis is optional: without it the
// caches, nonces and rate limits live in process memory.
func openPostgres(ctx context.Context, cfg *config.Config, clock clockwork.Clock, log zerolog.Logger) (*storage, error) {
	if cfg.Database.RunMigrations {
		if err := pgStorage.Migrate(cfg.Database, log); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	log.Info().Msg("PostgreSQL connected")

	s := &storage{
		accounts:    pgStorage.NewAccountRepo(pool),
		holdings:    pgStorage.NewHoldingRepo(pool),
		events:      pgStorage.NewEventRepo(pool),
		idempotency: pgStorage.NewIdempotencyRepo(pool),
		audits:      pgStorage.NewAuditRepo(pool),
		webhooks:    pgStorage.NewWebhookRepo(pool),
		transactor:  pgStorage.NewTransactor(pool, cfg.Database.LockTimeout),
		health:      []ports.HealthChecker{pgStorage.NewHealthCheck(pool)},
		close:       pool.Close,
	}

	localLimits := memStorage.NewRateLimitStore(clock)
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, using in-process caches")
		s.idempCache = memStorage.NewIdempotencyCache(clock)
		s.nonces = memStorage.NewNonceStore(clock)
		s.rateLimits = localLimits
		return s, nil
	}
	log.Info().Msg("Redis connected")

	s.idempCache = redisStorage.NewIdempotencyCache(rdb)
	s.nonces = redisStorage.NewNonceStore(rdb)
	s.rateLimits = redisStorage.NewRateLimitStore(rdb, localLimits, clock, logger.Component(log, "ratelimit"))
	s.health = append(s.health, redisStorage.NewHealthCheck(rdb))
	s.close = func() {
		_ = rdb.Close()
		pool.Close()
	}
	return s, nil
}

func openMemory(clock clockwork.Clock) *storage {
	db := memStorage.NewStore()
	return &storage{
		accounts:    memStorage.NewAccountRepo(db),
		holdings:    memStorage.NewHoldingRepo(db),
		events:      memStorage.NewEventRepo(db),
		idempotency: memStorage.NewIdempotencyRepo(db),
		audits:      memStorage.NewAuditRepo(db),
		webhooks:    memStorage.NewWebhookRepo(db),
		transactor:  db,
		idempCache:  memStorage.NewIdempotencyCache(clock),
		nonces:      memStorage.NewNonceStore(clock),
		rateLimits:  memStorage.NewRateLimitStore(clock),
		close:       func() {},
	}
}
