package handler

import (
	"nft-royalty-vault/internal/adapter/http/middleware"
	"nft-royalty-vault/internal/core/domain"
	"nft-royalty-vault/internal/core/ports"
	"nft-royalty-vault/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	Addresses      domain.ProgramAddresses
	RoyaltySvc     ports.RoyaltyService
	AccountSvc     ports.AccountService
	ReportingSvc   ports.ReportingService
	AuthSvc        ports.AuthService
	LoginChallenge func(timestamp int64, nonce string) string
	WebhookSvc     ports.WebhookService // nil = settlement webhooks disabled
	AuditSvc       ports.AuditService   // nil = audit logging disabled
	SigSvc         ports.SignatureService
	NonceStore     ports.NonceStore
	TokenSvc       ports.TokenService
	RateLimitStore ports.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	SignerAuth     middleware.SignerAuthConfig
	Clock          clockwork.Clock
	Mode           string // gin mode; defaults to release
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	mode := deps.Mode
	if mode == "" {
		mode = gin.ReleaseMode
	}
	gin.SetMode(mode)
	if deps.Clock == nil {
		deps.Clock = clockwork.NewRealClock()
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(metrics.Middleware())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Audit logging (after response)
	if deps.AuditSvc != nil {
		r.Use(middleware.AuditLog(deps.AuditSvc))
	}

	r.GET("/health", HealthCheck(deps.HealthCheckers...))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	swagger := r.Group("/swagger")
	{
		swagger.GET("", SwaggerUI)
		swagger.GET("/spec", SwaggerSpec)
	}

	rules := middleware.DefaultRateLimitRules()
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	v1 := r.Group("/api/v1")

	// --- Public routes (no auth) ---
	authHandler := NewAuthHandler(deps.AuthSvc, deps.LoginChallenge, deps.Clock)
	auth := v1.Group("/auth")
	{
		auth.GET("/challenge", rl("auth_login"), authHandler.Challenge)
		auth.POST("/login", rl("auth_login"), authHandler.Login)
	}

	// --- Signer-authenticated routes ---
	signerAuth := middleware.SignerAuth(deps.SigSvc, deps.NonceStore, deps.Clock, deps.SignerAuth, deps.Logger)
	royaltyHandler := NewRoyaltyHandler(deps.RoyaltySvc, deps.WebhookSvc, deps.Addresses, deps.Logger)
	accountHandler := NewAccountHandler(deps.AccountSvc)

	signed := v1.Group("", signerAuth)
	{
		signed.POST("/collection/initialize", rl("admin"), royaltyHandler.InitializeCollection)
		signed.POST("/nfts", rl("deposits"), royaltyHandler.AddNft)
		signed.POST("/deposits/label", rl("deposits"), royaltyHandler.PayLabel)
		signed.POST("/deposits/secondary", rl("deposits"), royaltyHandler.DistributeSecondaryPool)
		signed.POST("/deposits/licensing", rl("deposits"), royaltyHandler.PayLicensingFee)
		signed.POST("/withdrawals/member", rl("withdrawals"), royaltyHandler.MemberWithdraw)
		signed.POST("/withdrawals/artist", rl("withdrawals"), royaltyHandler.ArtistWithdraw)
		signed.POST("/accounts/fund", rl("admin"), accountHandler.FundAccount)
		signed.POST("/holdings", rl("admin"), accountHandler.RegisterHolding)
	}

	// --- JWT-authenticated read routes ---
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	reportingHandler := NewReportingHandler(deps.ReportingSvc)

	reads := v1.Group("", jwtAuth, rl("reads"))
	{
		reads.GET("/collection", reportingHandler.GetCollection)
		reads.GET("/ledgers/artists", reportingHandler.GetArtistLedger)
		reads.GET("/ledgers/nfts", reportingHandler.GetNftLedger)
		reads.GET("/vault", reportingHandler.GetVault)
		reads.GET("/reconcile", reportingHandler.Reconcile)
		reads.GET("/events", reportingHandler.ListEvents)
		reads.GET("/stats", reportingHandler.GetStats)
		reads.GET("/journal/verify", reportingHandler.VerifyJournal)
		reads.GET("/accounts/:address", accountHandler.GetAccount)
	}

	return r
}
