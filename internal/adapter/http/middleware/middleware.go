package middleware

import (
	"bytes"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"nft-royalty-vault/internal/core/domain"
	"nft-royalty-vault/internal/core/ports"
	"nft-royalty-vault/pkg/apperror"
	"nft-royalty-vault/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

const (
	// Header names for signer authentication
	HeaderSigner    = "X-Signer"
	HeaderSignature = "X-Signature"
	HeaderTimestamp = "X-Timestamp"
	HeaderNonce     = "X-Nonce"
	// HeaderCosigner carries "<identity>:<signature>" over the same canonical
	// string. It may repeat, one per additional signer.
	HeaderCosigner = "X-Cosigner"

	HeaderRequestID = "X-Request-ID"

	// Context keys
	CtxSigner   = "signer"   // domain.Identity of the primary signer
	CtxSigners  = "signers"  // []domain.Identity, primary signer first
	CtxIdentity = "identity" // base58 caller identity, signer or session holder
)

// SignerAuthConfig bounds request freshness.
type SignerAuthConfig struct {
	MaxTimestampDrift time.Duration
	NonceTTL          time.Duration
}

// SignerAuth verifies ed25519 request signatures.
// Pipeline: check timestamp -> verify signer and co-signer signatures -> record nonce.
func SignerAuth(
	sigSvc ports.SignatureService,
	nonceStore ports.NonceStore,
	clock clockwork.Clock,
	cfg SignerAuthConfig,
	log zerolog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		signerStr := c.GetHeader(HeaderSigner)
		signature := c.GetHeader(HeaderSignature)
		timestampStr := c.GetHeader(HeaderTimestamp)
		nonce := c.GetHeader(HeaderNonce)

		if signerStr == "" || signature == "" || timestampStr == "" || nonce == "" {
			abort(c, apperror.ErrMissingSigner())
			return
		}
		signer, err := domain.ParseIdentity(signerStr)
		if err != nil {
			abort(c, apperror.ErrMissingSigner())
			return
		}

		// Step 1: Timestamp check
		timestamp, err := strconv.ParseInt(timestampStr, 10, 64)
		if err != nil {
			abort(c, apperror.ErrTimestampExpired())
			return
		}
		drift := clock.Now().Sub(time.Unix(timestamp, 0))
		if drift < 0 {
			drift = -drift
		}
		if drift > cfg.MaxTimestampDrift {
			abort(c, apperror.ErrTimestampExpired())
			return
		}

		// Step 2: Signature verification
		bodyBytes, err := io.ReadAll(c.Request.Body)
		if err != nil {
			abort(c, apperror.Validation("cannot read request body"))
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		canonical := sigSvc.BuildCanonicalString(
			c.Request.Method,
			c.Request.URL.Path,
			timestamp,
			nonce,
			string(bodyBytes),
		)
		if !sigSvc.Verify(signer, canonical, signature) {
			abort(c, apperror.ErrInvalidSignature())
			return
		}

		signers := []domain.Identity{signer}
		for _, header := range c.Request.Header.Values(HeaderCosigner) {
			cosigner, ok := verifyCosigner(sigSvc, canonical, header)
			if !ok {
				abort(c, apperror.ErrInvalidSignature())
				return
			}
			signers = append(signers, cosigner)
		}

		// Step 3: Nonce check, only for authentic requests
		isNew, err := nonceStore.CheckAndSet(c.Request.Context(), signer.String(), nonce, cfg.NonceTTL)
		if err != nil {
			log.Error().Err(err).Msg("nonce store unavailable")
			abort(c, apperror.InternalError(err))
			return
		}
		if !isNew {
			abort(c, apperror.ErrNonceUsed())
			return
		}

		c.Set(CtxSigner, signer)
		c.Set(CtxSigners, signers)
		c.Set(CtxIdentity, signer.String())

		c.Next()
	}
}

func verifyCosigner(sigSvc ports.SignatureService, canonical, header string) (domain.Identity, bool) {
	idStr, sig, found := strings.Cut(header, ":")
	if !found || sig == "" {
		return domain.Identity{}, false
	}
	id, err := domain.ParseIdentity(strings.TrimSpace(idStr))
	if err != nil {
		return domain.Identity{}, false
	}
	return id, sigSvc.Verify(id, canonical, strings.TrimSpace(sig))
}

// Signer returns the authenticated primary signer and every verified signer.
func Signer(c *gin.Context) (domain.Identity, []domain.Identity, bool) {
	v, ok := c.Get(CtxSigner)
	if !ok {
		return domain.Identity{}, nil, false
	}
	signer, ok := v.(domain.Identity)
	if !ok {
		return domain.Identity{}, nil, false
	}
	signers, _ := c.Get(CtxSigners)
	list, _ := signers.([]domain.Identity)
	return signer, list, true
}

// JWTAuth creates a middleware that validates session tokens for read routes.
func JWTAuth(tokenSvc ports.TokenService, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenStr, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || tokenStr == "" {
			abort(c, apperror.ErrInvalidToken())
			return
		}

		claims, err := tokenSvc.Validate(tokenStr)
		if err != nil {
			log.Debug().Err(err).Msg("rejected session token")
			abort(c, apperror.ErrInvalidToken())
			return
		}

		c.Set(CtxIdentity, claims.Identity.String())
		c.Next()
	}
}

// RequestID tags each request with an ID, reusing the caller's X-Request-ID when present.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > 64 {
			id = uuid.New().String()
		}
		c.Set(response.CtxRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// RequestLogger creates a middleware that logs every HTTP request.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		event := log.Info()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		} else if status >= http.StatusBadRequest {
			event = log.Warn()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", latency).
			Str("client_ip", c.ClientIP()).
			Str("request_id", c.GetString(response.CtxRequestID)).
			Str("identity", c.GetString(CtxIdentity)).
			Msg("http request")
	}
}

// Recovery creates a panic recovery middleware.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Str("path", c.Request.URL.Path).Msg("panic recovered")
				response.Error(c, apperror.InternalError(nil))
				c.Abort()
			}
		}()
		c.Next()
	}
}

func abort(c *gin.Context, err error) {
	response.Error(c, err)
	c.Abort()
}
