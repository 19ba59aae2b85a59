package ports

//go:generate mockgen -source=services.go -destination=mocks/mock_services.go -package=mocks

import (
	"context"
	"time"

	"nft-royalty-vault/internal/core/domain"
)

// SignatureService verifies ed25519 wallet signatures over canonical request strings.
type SignatureService interface {
	Verify(signer domain.Identity, message string, signature string) bool
	BuildCanonicalString(method, path string, timestamp int64, nonce string, body string) string
}

// PayloadSigner handles HMAC-SHA256 signing of outbound payloads.
type PayloadSigner interface {
	Sign(secretKey string, payload string) string
	Verify(secretKey string, payload string, signature string) bool
}

// TokenService handles JWT token operations.
type TokenService interface {
	Generate(identity domain.Identity) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	Identity domain.Identity
}

// IdempotencyCache is the Redis-layer idempotency check (fast path).
type IdempotencyCache interface {
	Get(ctx context.Context, key string) ([]byte, error) // Returns cached response JSON or nil
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// NonceStore manages nonce uniqueness for replay attack prevention.
type NonceStore interface {
	// CheckAndSet atomically checks if nonce exists, sets it if not.
	// Returns true if nonce is new (valid), false if already used.
	CheckAndSet(ctx context.Context, signer string, nonce string, ttl time.Duration) (bool, error)
}

// RateLimitStore counts requests per key.
type RateLimitStore interface {
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (*RateLimitResult, error)
}

// RateLimitResult holds the outcome of a rate limit check.
type RateLimitResult struct {
	Allowed   bool
	Limit     int64
	Remaining int64
	ResetAt   int64 // Unix timestamp
}

// --- Service Ports (Business Logic) ---

// RoyaltyService runs the collection operations. Each call is one atomic step.
type RoyaltyService interface {
	InitializeCollection(ctx context.Context, req InitializeCollectionRequest) (*CollectionState, error)
	AddNft(ctx context.Context, req AddNftRequest) (*domain.RoyaltyEvent, error)
	PayLabel(ctx context.Context, req DepositRequest) (*domain.RoyaltyEvent, error)
	DistributeSecondaryPool(ctx context.Context, req DepositRequest) (*domain.RoyaltyEvent, error)
	PayLicensingFee(ctx context.Context, req DepositRequest) (*domain.RoyaltyEvent, error)
	MemberWithdraw(ctx context.Context, req MemberWithdrawRequest) (*domain.RoyaltyEvent, error)
	ArtistWithdraw(ctx context.Context, req ArtistWithdrawRequest) (*domain.RoyaltyEvent, error)
}

// InitializeCollectionRequest holds validated input for collection setup.
type InitializeCollectionRequest struct {
	Authority         domain.Identity
	ArtistMintBP      uint64
	LabelMintBP       uint64
	ArtistSecondaryBP uint64
	LabelSecondaryBP  uint64
	ArtistSplits      []domain.PercentageSplit
	Signers           []domain.Identity
}

// AddNftRequest holds validated input for NFT registration.
type AddNftRequest struct {
	Authority   domain.Identity
	Payer       domain.Identity
	Nft         domain.Identity
	AmountPaid  uint64
	ReferenceID string
	Signers     []domain.Identity
}

// DepositRequest holds validated input for label, secondary and licensing payments.
type DepositRequest struct {
	Payer       domain.Identity
	Amount      uint64
	ReferenceID string
	Signers     []domain.Identity
}

// MemberWithdrawRequest holds validated input for an NFT holder's withdrawal.
type MemberWithdrawRequest struct {
	Caller         domain.Identity
	Nft            domain.Identity
	HoldingAccount domain.Identity
	Ledger         domain.Identity
	Signers        []domain.Identity
}

// ArtistWithdrawRequest holds validated input for an artist withdrawal.
type ArtistWithdrawRequest struct {
	Caller  domain.Identity
	Artist  domain.Identity
	Ledger  domain.Identity
	Signers []domain.Identity
}

// CollectionState is a read view of the whole collection.
type CollectionState struct {
	Addresses    domain.ProgramAddresses  `json:"addresses"`
	Config       *domain.CollectionConfig `json:"config"`
	Artists      *domain.ArtistLedger     `json:"artist_ledger"`
	Nfts         *domain.NftLedger        `json:"nft_ledger"`
	VaultBalance uint64                   `json:"vault_balance"`
}

// AccountService credits native balances and records NFT holdings for the host.
type AccountService interface {
	FundAccount(ctx context.Context, req FundAccountRequest) (*domain.Account, error)
	RegisterHolding(ctx context.Context, req RegisterHoldingRequest) (*domain.TokenHolding, error)
	GetAccount(ctx context.Context, address domain.Identity) (*domain.Account, error)
}

// FundAccountRequest holds input for crediting a wallet.
type FundAccountRequest struct {
	Authority domain.Identity
	Address   domain.Identity
	Amount    uint64
	Signers   []domain.Identity
}

// RegisterHoldingRequest holds input for recording an NFT holding.
type RegisterHoldingRequest struct {
	Authority domain.Identity
	Address   domain.Identity
	Mint      domain.Identity
	Owner     domain.Identity
	Amount    uint64
	Signers   []domain.Identity
}

// AuthService exchanges a signed login message for a session token.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (string, time.Time, error) // token, expiry, error
}

// LoginRequest carries a wallet-signed login message.
type LoginRequest struct {
	Identity  domain.Identity
	Message   string
	Signature string
}

// ReportingService defines read-only views over the collection and its journal.
type ReportingService interface {
	GetCollection(ctx context.Context) (*CollectionState, error)
	GetArtistLedger(ctx context.Context) (*domain.ArtistLedger, error)
	GetNftLedger(ctx context.Context) (*domain.NftLedger, error)
	GetVault(ctx context.Context) (*VaultState, error)
	Reconcile(ctx context.Context) (*domain.Reconciliation, error)
	ListEvents(ctx context.Context, params EventListParams) ([]domain.RoyaltyEvent, int64, error)
	GetStats(ctx context.Context) (*domain.EventStats, error)
	VerifyJournal(ctx context.Context) error
}

// VaultState is the vault's address and custodial balance.
type VaultState struct {
	Address domain.Identity `json:"address"`
	Balance uint64          `json:"balance"`
}

// WebhookService defines async settlement webhook delivery.
type WebhookService interface {
	EnqueueEvent(ctx context.Context, event *domain.RoyaltyEvent) error
}

// AuditService records audited actions.
type AuditService interface {
	Log(ctx context.Context, entry *domain.AuditLog)
}
