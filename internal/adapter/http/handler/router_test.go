package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"nft-royalty-vault/internal/adapter/http/handler"
	"nft-royalty-vault/internal/adapter/http/middleware"
	"nft-royalty-vault/internal/adapter/storage/memory"
	"nft-royalty-vault/internal/core/domain"
	"nft-royalty-vault/internal/service"

	"github.com/gagliardetto/solana-go"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiHarness struct {
	t      *testing.T
	router *gin.Engine
	clock  *clockwork.FakeClock
	addrs  domain.ProgramAddresses
	audits *memory.AuditRepo
	sigSvc *service.Ed25519SignatureService
}

func newAPIHarness(t *testing.T) *apiHarness {
	t.Helper()
	clock := clockwork.NewFakeClockAt(time.Unix(1_708_092_000, 0))
	log := zerolog.Nop()

	addrs, err := domain.DeriveProgramAddresses(solana.NewWallet().PublicKey())
	require.NoError(t, err)

	store := memory.NewStore()
	accounts := memory.NewAccountRepo(store)
	holdings := memory.NewHoldingRepo(store)
	events := memory.NewEventRepo(store)
	audits := memory.NewAuditRepo(store)
	nonces := memory.NewNonceStore(clock)

	sigSvc := service.NewEd25519SignatureService()
	tokenSvc := service.NewJWTTokenService("router-test-secret-32-bytes-long!!", time.Hour, "nft-royalty-vault")

	router := handler.SetupRouter(handler.RouterDeps{
		Addresses: addrs,
		RoyaltySvc: service.NewRoyaltyService(accounts, holdings, events, memory.NewIdempotencyRepo(store),
			memory.NewIdempotencyCache(clock), store, addrs, clock, log),
		AccountSvc:     service.NewAccountService(accounts, holdings, store, addrs, clock, log),
		ReportingSvc:   service.NewReportingService(accounts, events, addrs),
		AuthSvc:        service.NewAuthService(sigSvc, nonces, tokenSvc, clock, 5*time.Minute, 10*time.Minute),
		LoginChallenge: service.BuildLoginMessage,
		AuditSvc:       service.NewAuditService(audits, log),
		SigSvc:         sigSvc,
		NonceStore:     nonces,
		TokenSvc:       tokenSvc,
		RateLimitStore: memory.NewRateLimitStore(clock),
		SignerAuth:     middleware.SignerAuthConfig{MaxTimestampDrift: 5 * time.Minute, NonceTTL: 10 * time.Minute},
		Clock:          clock,
		Mode:           gin.TestMode,
		Logger:         log,
	})

	return &apiHarness{t: t, router: router, clock: clock, addrs: addrs, audits: audits, sigSvc: sigSvc}
}

// signed sends a POST signed by signer, with cosigners attached.
func (h *apiHarness) signed(path string, body interface{}, signer *solana.Wallet, cosigners ...*solana.Wallet) *httptest.ResponseRecorder {
	h.t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(h.t, err)

	ts := h.clock.Now().Unix()
	nonce := uuid.New().String()
	canonical := h.sigSvc.BuildCanonicalString(http.MethodPost, path, ts, nonce, string(raw))

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.HeaderSigner, signer.PublicKey().String())
	req.Header.Set(middleware.HeaderSignature, sign(h.t, signer, canonical))
	req.Header.Set(middleware.HeaderTimestamp, strconv.FormatInt(ts, 10))
	req.Header.Set(middleware.HeaderNonce, nonce)
	for _, co := range cosigners {
		req.Header.Add(middleware.HeaderCosigner, co.PublicKey().String()+":"+sign(h.t, co, canonical))
	}

	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func (h *apiHarness) get(path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func (h *apiHarness) login(wallet *solana.Wallet) string {
	h.t.Helper()
	message := service.BuildLoginMessage(h.clock.Now().Unix(), uuid.New().String())
	body, _ := json.Marshal(map[string]string{
		"identity":  wallet.PublicKey().String(),
		"message":   message,
		"signature": sign(h.t, wallet, message),
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	require.Equal(h.t, http.StatusOK, w.Code, w.Body.String())
	return data(h.t, w)["token"].(string)
}

func sign(t *testing.T, wallet *solana.Wallet, message string) string {
	t.Helper()
	sig, err := wallet.PrivateKey.Sign([]byte(message))
	require.NoError(t, err)
	return sig.String()
}

func data(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	d, ok := resp["data"].(map[string]interface{})
	require.True(t, ok, w.Body.String())
	return d
}

func TestAPI_RoyaltyFlow(t *testing.T) {
	h := newAPIHarness(t)

	authority := solana.NewWallet()
	artist := solana.NewWallet()
	payer := solana.NewWallet()
	holder := solana.NewWallet()
	nft := solana.NewWallet().PublicKey()
	holding := solana.NewWallet().PublicKey()

	w := h.signed("/api/v1/collection/initialize", map[string]interface{}{
		"artist_mint_bp":      7000,
		"label_mint_bp":       3000,
		"artist_secondary_bp": 4000,
		"label_secondary_bp":  6000,
		"artist_splits":       []map[string]interface{}{{"beneficiary": artist.PublicKey().String(), "basis_points": 10000}},
	}, authority)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// A second initialize is rejected.
	w = h.signed("/api/v1/collection/initialize", map[string]interface{}{
		"artist_splits": []map[string]interface{}{{"beneficiary": artist.PublicKey().String(), "basis_points": 10000}},
	}, authority)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = h.signed("/api/v1/accounts/fund", map[string]interface{}{"address": payer.PublicKey().String(), "amount": 5000}, authority)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Only the authority may fund accounts.
	w = h.signed("/api/v1/accounts/fund", map[string]interface{}{"address": payer.PublicKey().String(), "amount": 5000}, payer)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = h.signed("/api/v1/nfts", map[string]interface{}{
		"nft":         nft.String(),
		"payer":       payer.PublicKey().String(),
		"amount_paid": 1000,
	}, authority, payer)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "ADD_NFT", data(t, w)["kind"])

	w = h.signed("/api/v1/deposits/label", map[string]interface{}{"amount": 100, "reference_id": "INV-1"}, payer)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	labelID := data(t, w)["id"]

	// Replaying the reference settles once.
	w = h.signed("/api/v1/deposits/label", map[string]interface{}{"amount": 100, "reference_id": "INV-1"}, payer)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, labelID, data(t, w)["id"])
	assert.Equal(t, true, data(t, w)["replayed"])

	w = h.signed("/api/v1/withdrawals/artist", map[string]interface{}{"artist": artist.PublicKey().String()}, artist)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.EqualValues(t, 1000, data(t, w)["amount"])

	w = h.signed("/api/v1/holdings", map[string]interface{}{
		"address": holding.String(),
		"mint":    nft.String(),
		"owner":   holder.PublicKey().String(),
		"amount":  1,
	}, authority)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Someone other than the holder cannot claim.
	w = h.signed("/api/v1/withdrawals/member", map[string]interface{}{
		"nft":             nft.String(),
		"holding_account": holding.String(),
	}, payer)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = h.signed("/api/v1/withdrawals/member", map[string]interface{}{
		"nft":             nft.String(),
		"holding_account": holding.String(),
	}, holder)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.EqualValues(t, 100, data(t, w)["amount"])

	// Read side.
	assert.Equal(t, http.StatusUnauthorized, h.get("/api/v1/vault", "").Code)
	token := h.login(holder)

	w = h.get("/api/v1/vault", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, data(t, w)["balance"])

	w = h.get("/api/v1/reconcile", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, data(t, w)["unassigned"])

	w = h.get("/api/v1/accounts/"+holder.PublicKey().String(), token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 100, data(t, w)["lamports"])

	w = h.get("/api/v1/events?kind=PAY_LABEL", token)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Data []map[string]interface{} `json:"data"`
		Page struct {
			Total int64 `json:"total"`
		} `json:"page"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.EqualValues(t, 1, page.Page.Total)
	require.Len(t, page.Data, 1)
	assert.Equal(t, labelID, page.Data[0]["id"])

	w = h.get("/api/v1/stats", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1100, data(t, w)["total_deposited"])
	assert.EqualValues(t, 1100, data(t, w)["total_withdrawn"])

	w = h.get("/api/v1/journal/verify", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, data(t, w)["valid"])

	// Every successful write lands in the audit log.
	assert.Eventually(t, func() bool {
		actions := map[domain.AuditAction]int{}
		for _, entry := range h.audits.List() {
			actions[entry.Action]++
		}
		return actions[domain.AuditActionInitialize] == 1 &&
			actions[domain.AuditActionFundAccount] == 1 &&
			actions[domain.AuditActionAddNft] == 1 &&
			actions[domain.AuditActionDeposit] == 2 &&
			actions[domain.AuditActionArtistWithdraw] == 1 &&
			actions[domain.AuditActionHolding] == 1 &&
			actions[domain.AuditActionMemberWithdraw] == 1 &&
			actions[domain.AuditActionLogin] == 1
	}, time.Second, 10*time.Millisecond)
}

func TestAPI_PublicRoutes(t *testing.T) {
	h := newAPIHarness(t)

	w := h.get("/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

	w = h.get("/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "royalty_vault_http_requests_total")

	w = h.get("/swagger/spec", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = h.get("/api/v1/auth/challenge", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, data(t, w)["message"], "Nonce: ")
}

func TestAPI_UninitializedCollection(t *testing.T) {
	h := newAPIHarness(t)
	payer := solana.NewWallet()

	w := h.signed("/api/v1/deposits/label", map[string]interface{}{"amount": 100}, payer)
	assert.Equal(t, http.StatusNotFound, w.Code)

	token := h.login(payer)
	w = h.get("/api/v1/collection", token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
