package handler

import (
	"net/http"
	"sync"

	"nft-royalty-vault/internal/adapter/http/dto"
	"nft-royalty-vault/internal/adapter/http/middleware"
	"nft-royalty-vault/internal/core/domain"
	"nft-royalty-vault/internal/core/ports"
	"nft-royalty-vault/pkg/apperror"
	"nft-royalty-vault/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"
)

// AuthHandler handles wallet login endpoints.
type AuthHandler struct {
	authSvc   ports.AuthService
	challenge func(timestamp int64, nonce string) string
	clock     clockwork.Clock
}

// NewAuthHandler creates a new AuthHandler. challenge renders the message a
// wallet signs for a given timestamp and nonce.
func NewAuthHandler(authSvc ports.AuthService, challenge func(timestamp int64, nonce string) string, clock clockwork.Clock) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, challenge: challenge, clock: clock}
}

// Challenge handles GET /api/v1/auth/challenge.
func (h *AuthHandler) Challenge(c *gin.Context) {
	ts := h.clock.Now().Unix()
	nonce := uuid.New().String()
	response.OK(c, dto.LoginChallengeResponse{
		Message:   h.challenge(ts, nonce),
		Timestamp: ts,
		Nonce:     nonce,
	})
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	identity, err := domain.ParseIdentity(req.Identity)
	if err != nil {
		response.Error(c, apperror.Validation("identity: invalid identity"))
		return
	}

	token, expiry, err := h.authSvc.Login(c.Request.Context(), ports.LoginRequest{
		Identity:  identity,
		Message:   req.Message,
		Signature: req.Signature,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Set(middleware.CtxIdentity, identity.String())
	response.OK(c, dto.LoginResponse{
		Token:  token,
		Expiry: expiry.Unix(),
	})
}

// HealthCheck handles GET /health, pinging every dependency concurrently.
func HealthCheck(checkers ...ports.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		type depStatus struct {
			Status string `json:"status"`
			Error  string `json:"error,omitempty"`
		}

		var mu sync.Mutex
		deps := make(map[string]depStatus, len(checkers))
		allHealthy := true

		g, ctx := errgroup.WithContext(c.Request.Context())
		for _, checker := range checkers {
			checker := checker
			g.Go(func() error {
				err := checker.Ping(ctx)
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					deps[checker.Name()] = depStatus{Status: "unhealthy", Error: err.Error()}
					allHealthy = false
				} else {
					deps[checker.Name()] = depStatus{Status: "healthy"}
				}
				return nil
			})
		}
		_ = g.Wait()

		status := "healthy"
		httpCode := http.StatusOK
		if !allHealthy {
			status = "degraded"
			httpCode = http.StatusServiceUnavailable
		}

		c.JSON(httpCode, gin.H{
			"status":       status,
			"dependencies": deps,
		})
	}
}
