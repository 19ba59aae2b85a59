package service

import (
	"crypto/ed25519"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"nft-royalty-vault/internal/core/domain"

	"github.com/mr-tron/base58"
)

// HMACSignatureService implements ports.PayloadSigner using HMAC-SHA256.
type HMACSignatureService struct{}

// NewHMACSignatureService creates a new HMAC-SHA256 signature service.
func NewHMACSignatureService() *HMACSignatureService {
	return &HMACSignatureService{}
}

// Sign computes HMAC-SHA256 of payload using secretKey.
// Returns lowercase hex-encoded signature.
func (s *HMACSignatureService) Sign(secretKey string, payload string) string {
	mac := hmac.New(sha256.New, []byte(secretKey))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify checks if signature matches HMAC-SHA256(secretKey, payload).
// Uses constant-time comparison to prevent timing attacks.
func (s *HMACSignatureService) Verify(secretKey string, payload string, signature string) bool {
	expected := s.Sign(secretKey, payload)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// Ed25519SignatureService implements ports.SignatureService for wallet signers.
type Ed25519SignatureService struct{}

// NewEd25519SignatureService creates a new ed25519 signature service.
func NewEd25519SignatureService() *Ed25519SignatureService {
	return &Ed25519SignatureService{}
}

// Verify reports whether signature is signer's ed25519 signature of message.
// The signature may be base58 (wallet default) or base64.
func (s *Ed25519SignatureService) Verify(signer domain.Identity, message string, signature string) bool {
	sig, err := decodeSignature(signature)
	if err != nil {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(signer[:]), []byte(message), sig)
}

// BuildCanonicalString constructs the canonical payload for signing.
// Format: METHOD|PATH|TIMESTAMP|NONCE|BODY
func (s *Ed25519SignatureService) BuildCanonicalString(method, path string, timestamp int64, nonce string, body string) string {
	return fmt.Sprintf("%s|%s|%d|%s|%s", method, path, timestamp, nonce, body)
}

func decodeSignature(signature string) ([]byte, error) {
	if sig, err := base58.Decode(signature); err == nil && len(sig) == ed25519.SignatureSize {
		return sig, nil
	}
	for _, enc := range []*base64.Encoding{base64.StdEncoding, base64.URLEncoding, base64.RawStdEncoding} {
		if sig, err := enc.DecodeString(signature); err == nil {
			if len(sig) != ed25519.SignatureSize {
				return nil, fmt.Errorf("invalid signature size: expected %d, got %d", ed25519.SignatureSize, len(sig))
			}
			return sig, nil
		}
	}
	return nil, fmt.Errorf("failed to decode signature")
}
