package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"nft-royalty-vault/internal/core/ports"
	"nft-royalty-vault/pkg/apperror"

	"github.com/jonboulle/clockwork"
)

const loginMessagePrefix = "Sign this message to authenticate with nft-royalty-vault."

// BuildLoginMessage returns the message a wallet signs to log in.
func BuildLoginMessage(timestamp int64, nonce string) string {
	return fmt.Sprintf("%s\n\nTimestamp: %d\nNonce: %s", loginMessagePrefix, timestamp, nonce)
}

// parseLoginMessage extracts the timestamp and nonce from a login message.
func parseLoginMessage(message string) (int64, string, error) {
	if !strings.HasPrefix(message, loginMessagePrefix) {
		return 0, "", fmt.Errorf("unexpected login message")
	}
	var (
		ts    int64
		nonce string
		err   error
	)
	for _, line := range strings.Split(message, "\n") {
		switch {
		case strings.HasPrefix(line, "Timestamp: "):
			ts, err = strconv.ParseInt(strings.TrimPrefix(line, "Timestamp: "), 10, 64)
			if err != nil {
				return 0, "", fmt.Errorf("invalid timestamp: %w", err)
			}
		case strings.HasPrefix(line, "Nonce: "):
			nonce = strings.TrimSpace(strings.TrimPrefix(line, "Nonce: "))
		}
	}
	if ts == 0 || nonce == "" {
		return 0, "", fmt.Errorf("login message missing timestamp or nonce")
	}
	return ts, nonce, nil
}

// AuthServiceImpl implements ports.AuthService with signed-message wallet login.
type AuthServiceImpl struct {
	sigSvc   ports.SignatureService
	nonces   ports.NonceStore
	tokenSvc ports.TokenService
	clock    clockwork.Clock
	maxDrift time.Duration
	nonceTTL time.Duration
}

// NewAuthService creates a new AuthServiceImpl.
func NewAuthService(
	sigSvc ports.SignatureService,
	nonces ports.NonceStore,
	tokenSvc ports.TokenService,
	clock clockwork.Clock,
	maxDrift time.Duration,
	nonceTTL time.Duration,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		sigSvc:   sigSvc,
		nonces:   nonces,
		tokenSvc: tokenSvc,
		clock:    clock,
		maxDrift: maxDrift,
		nonceTTL: nonceTTL,
	}
}

// Login verifies a wallet-signed login message and returns a JWT token.
// The nonce is consumed only after the signature checks out.
func (s *AuthServiceImpl) Login(ctx context.Context, req ports.LoginRequest) (string, time.Time, error) {
	ts, nonce, err := parseLoginMessage(req.Message)
	if err != nil {
		return "", time.Time{}, apperror.Validation(err.Error())
	}

	drift := s.clock.Now().Sub(time.Unix(ts, 0))
	if drift < 0 {
		drift = -drift
	}
	if drift > s.maxDrift {
		return "", time.Time{}, apperror.ErrTimestampExpired()
	}

	if !s.sigSvc.Verify(req.Identity, req.Message, req.Signature) {
		return "", time.Time{}, apperror.ErrInvalidSignature()
	}

	fresh, err := s.nonces.CheckAndSet(ctx, req.Identity.String(), nonce, s.nonceTTL)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("check nonce: %w", err))
	}
	if !fresh {
		return "", time.Time{}, apperror.ErrNonceUsed()
	}

	token, expiry, err := s.tokenSvc.Generate(req.Identity)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("generate token: %w", err))
	}

	return token, expiry, nil
}
