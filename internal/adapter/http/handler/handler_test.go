package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"nft-royalty-vault/internal/adapter/http/middleware"
	"nft-royalty-vault/internal/core/domain"
	"nft-royalty-vault/internal/core/ports"
	"nft-royalty-vault/internal/core/ports/mocks"
	"nft-royalty-vault/pkg/apperror"

	"github.com/gagliardetto/solana-go"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testAddresses(t *testing.T) domain.ProgramAddresses {
	t.Helper()
	addrs, err := domain.DeriveProgramAddresses(solana.NewWallet().PublicKey())
	require.NoError(t, err)
	return addrs
}

// newContext builds a test context carrying an authenticated signer set.
func newContext(method, path string, body interface{}, signers ...domain.Identity) (*gin.Context, *httptest.ResponseRecorder) {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	if len(signers) > 0 {
		c.Set(middleware.CtxSigner, signers[0])
		c.Set(middleware.CtxSigners, signers)
		c.Set(middleware.CtxIdentity, signers[0].String())
	}
	return c, w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func sampleEvent(kind domain.EventKind, actor, subject domain.Identity, amount uint64) *domain.RoyaltyEvent {
	return &domain.RoyaltyEvent{
		ID:        uuid.New(),
		Sequence:  3,
		Kind:      kind,
		Actor:     actor,
		Subject:   subject,
		Amount:    amount,
		PrevHash:  "aa",
		Hash:      "bb",
		CreatedAt: time.Date(2024, 2, 16, 12, 0, 0, 0, time.UTC),
	}
}

// --- Auth Handler Tests ---

func TestLogin_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth, nil, clockwork.NewFakeClock())

	wallet := solana.NewWallet().PublicKey()
	expiry := time.Unix(1_708_178_400, 0)
	mockAuth.EXPECT().Login(gomock.Any(), ports.LoginRequest{
		Identity:  wallet,
		Message:   "signed message",
		Signature: "sig",
	}).Return("jwt-token", expiry, nil)

	c, w := newContext(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"identity":  wallet.String(),
		"message":   "signed message",
		"signature": "sig",
	})
	h.Login(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "jwt-token", data["token"])
	assert.EqualValues(t, expiry.Unix(), data["expiry"])
	assert.Equal(t, wallet.String(), c.GetString(middleware.CtxIdentity))
}

func TestLogin_ValidationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewAuthHandler(mocks.NewMockAuthService(ctrl), nil, clockwork.NewFakeClock())

	c, w := newContext(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"identity":  "not-an-identity",
		"message":   "m",
		"signature": "s",
	})
	h.Login(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "PAY_002", decode(t, w)["error_code"])
}

func TestLogin_InvalidSignature(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth, nil, clockwork.NewFakeClock())
	mockAuth.EXPECT().Login(gomock.Any(), gomock.Any()).Return("", time.Time{}, apperror.ErrInvalidSignature())

	c, w := newContext(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"identity":  solana.NewWallet().PublicKey().String(),
		"message":   "m",
		"signature": "s",
	})
	h.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "SEC_002", decode(t, w)["error_code"])
}

func TestChallenge(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Unix(1_708_092_000, 0))
	h := NewAuthHandler(nil, func(ts int64, nonce string) string {
		return "login " + nonce
	}, clock)

	c, w := newContext(http.MethodGet, "/api/v1/auth/challenge", nil)
	h.Challenge(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]interface{})
	assert.EqualValues(t, 1_708_092_000, data["timestamp"])
	assert.Equal(t, "login "+data["nonce"].(string), data["message"])
}

// --- Royalty Handler Tests ---

func TestInitializeCollection_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRoyalty := mocks.NewMockRoyaltyService(ctrl)
	addrs := testAddresses(t)
	h := NewRoyaltyHandler(mockRoyalty, nil, addrs, zerolog.Nop())

	authority := solana.NewWallet().PublicKey()
	artist := solana.NewWallet().PublicKey()
	mockRoyalty.EXPECT().InitializeCollection(gomock.Any(), ports.InitializeCollectionRequest{
		Authority:         authority,
		ArtistMintBP:      7000,
		LabelMintBP:       3000,
		ArtistSecondaryBP: 4000,
		LabelSecondaryBP:  6000,
		ArtistSplits:      []domain.PercentageSplit{{Beneficiary: artist, BasisPoints: 10000}},
		Signers:           []domain.Identity{authority},
	}).Return(&ports.CollectionState{Addresses: addrs}, nil)

	c, w := newContext(http.MethodPost, "/api/v1/collection/initialize", map[string]interface{}{
		"artist_mint_bp":      7000,
		"label_mint_bp":       3000,
		"artist_secondary_bp": 4000,
		"label_secondary_bp":  6000,
		"artist_splits":       []map[string]interface{}{{"beneficiary": artist.String(), "basis_points": 10000}},
	}, authority)
	h.InitializeCollection(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, addrs.Config.String(), c.GetString(middleware.CtxAuditResource))
}

func TestInitializeCollection_RejectsOversizedBasisPoints(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewRoyaltyHandler(mocks.NewMockRoyaltyService(ctrl), nil, testAddresses(t), zerolog.Nop())

	c, w := newContext(http.MethodPost, "/api/v1/collection/initialize", map[string]interface{}{
		"artist_mint_bp": 10001,
		"artist_splits":  []map[string]interface{}{{"beneficiary": solana.NewWallet().PublicKey().String(), "basis_points": 10000}},
	}, solana.NewWallet().PublicKey())
	h.InitializeCollection(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddNft_PayerDefaultsToSigner(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRoyalty := mocks.NewMockRoyaltyService(ctrl)
	mockWebhook := mocks.NewMockWebhookService(ctrl)
	h := NewRoyaltyHandler(mockRoyalty, mockWebhook, testAddresses(t), zerolog.Nop())

	authority := solana.NewWallet().PublicKey()
	nft := solana.NewWallet().PublicKey()
	event := sampleEvent(domain.EventAddNft, authority, nft, 1000)

	mockRoyalty.EXPECT().AddNft(gomock.Any(), ports.AddNftRequest{
		Authority:   authority,
		Payer:       authority,
		Nft:         nft,
		AmountPaid:  1000,
		ReferenceID: "mint-1",
		Signers:     []domain.Identity{authority},
	}).Return(event, nil)
	mockWebhook.EXPECT().EnqueueEvent(gomock.Any(), event).Return(nil)

	c, w := newContext(http.MethodPost, "/api/v1/nfts", map[string]interface{}{
		"nft":          nft.String(),
		"amount_paid":  1000,
		"reference_id": "mint-1",
	}, authority)
	h.AddNft(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, event.ID.String(), data["id"])
	assert.Equal(t, "ADD_NFT", data["kind"])
	assert.EqualValues(t, 1000, data["amount"])
	assert.Equal(t, event.ID.String(), c.GetString(middleware.CtxAuditResource))
}

func TestAddNft_MissingSigner(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewRoyaltyHandler(mocks.NewMockRoyaltyService(ctrl), nil, testAddresses(t), zerolog.Nop())

	c, w := newContext(http.MethodPost, "/api/v1/nfts", map[string]interface{}{"nft": solana.NewWallet().PublicKey().String()})
	h.AddNft(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPayLabel_ExplicitPayer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRoyalty := mocks.NewMockRoyaltyService(ctrl)
	h := NewRoyaltyHandler(mockRoyalty, nil, testAddresses(t), zerolog.Nop())

	signer := solana.NewWallet().PublicKey()
	payer := solana.NewWallet().PublicKey()
	mockRoyalty.EXPECT().PayLabel(gomock.Any(), ports.DepositRequest{
		Payer:   payer,
		Amount:  99,
		Signers: []domain.Identity{signer, payer},
	}).Return(sampleEvent(domain.EventPayLabel, payer, payer, 99), nil)

	c, w := newContext(http.MethodPost, "/api/v1/deposits/label", map[string]interface{}{
		"payer":  payer.String(),
		"amount": 99,
	}, signer, payer)
	h.PayLabel(c)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestPayLabel_ReplayedReferenceNotifiesOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRoyalty := mocks.NewMockRoyaltyService(ctrl)
	mockWebhook := mocks.NewMockWebhookService(ctrl)
	h := NewRoyaltyHandler(mockRoyalty, mockWebhook, testAddresses(t), zerolog.Nop())

	payer := solana.NewWallet().PublicKey()
	event := sampleEvent(domain.EventPayLabel, payer, payer, 99)
	event.ReferenceID = "INV-9"
	replayed := *event
	replayed.Replayed = true

	gomock.InOrder(
		mockRoyalty.EXPECT().PayLabel(gomock.Any(), gomock.Any()).Return(event, nil),
		mockRoyalty.EXPECT().PayLabel(gomock.Any(), gomock.Any()).Return(&replayed, nil),
	)
	mockWebhook.EXPECT().EnqueueEvent(gomock.Any(), event).Return(nil).Times(1)

	body := map[string]interface{}{"amount": 99, "reference_id": "INV-9"}
	for i, wantReplayed := range []bool{false, true} {
		c, w := newContext(http.MethodPost, "/api/v1/deposits/label", body, payer)
		h.PayLabel(c)

		require.Equal(t, http.StatusCreated, w.Code, "request %d", i)
		data := decode(t, w)["data"].(map[string]interface{})
		assert.Equal(t, event.ID.String(), data["id"])
		replayedFlag, _ := data["replayed"].(bool)
		assert.Equal(t, wantReplayed, replayedFlag)
	}
}

func TestDeposits_RouteToMatchingOperation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRoyalty := mocks.NewMockRoyaltyService(ctrl)
	h := NewRoyaltyHandler(mockRoyalty, nil, testAddresses(t), zerolog.Nop())
	payer := solana.NewWallet().PublicKey()

	mockRoyalty.EXPECT().DistributeSecondaryPool(gomock.Any(), gomock.Any()).
		Return(sampleEvent(domain.EventDistributeSecondaryPool, payer, payer, 500), nil)
	mockRoyalty.EXPECT().PayLicensingFee(gomock.Any(), gomock.Any()).
		Return(sampleEvent(domain.EventPayLicensingFee, payer, payer, 700), nil)

	c, w := newContext(http.MethodPost, "/api/v1/deposits/secondary", map[string]interface{}{"amount": 500}, payer)
	h.DistributeSecondaryPool(c)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "DISTRIBUTE_SECONDARY_POOL", decode(t, w)["data"].(map[string]interface{})["kind"])

	c, w = newContext(http.MethodPost, "/api/v1/deposits/licensing", map[string]interface{}{"amount": 700}, payer)
	h.PayLicensingFee(c)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "PAY_LICENSING_FEE", decode(t, w)["data"].(map[string]interface{})["kind"])
}

func TestDeposit_ZeroAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewRoyaltyHandler(mocks.NewMockRoyaltyService(ctrl), nil, testAddresses(t), zerolog.Nop())

	c, w := newContext(http.MethodPost, "/api/v1/deposits/label", map[string]interface{}{"amount": 0}, solana.NewWallet().PublicKey())
	h.PayLabel(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeposit_NoNftsMinted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRoyalty := mocks.NewMockRoyaltyService(ctrl)
	h := NewRoyaltyHandler(mockRoyalty, nil, testAddresses(t), zerolog.Nop())
	mockRoyalty.EXPECT().PayLabel(gomock.Any(), gomock.Any()).Return(nil, apperror.ErrInvalidRoyaltiesDistribution())

	c, w := newContext(http.MethodPost, "/api/v1/deposits/label", map[string]interface{}{"amount": 10}, solana.NewWallet().PublicKey())
	h.PayLabel(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "ROY_008", decode(t, w)["error_code"])
}

func TestMemberWithdraw_LedgerDefaultsToNftLedger(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRoyalty := mocks.NewMockRoyaltyService(ctrl)
	mockWebhook := mocks.NewMockWebhookService(ctrl)
	addrs := testAddresses(t)
	h := NewRoyaltyHandler(mockRoyalty, mockWebhook, addrs, zerolog.Nop())

	holder := solana.NewWallet().PublicKey()
	nft := solana.NewWallet().PublicKey()
	holding := solana.NewWallet().PublicKey()
	event := sampleEvent(domain.EventMemberWithdraw, holder, nft, 349)

	mockRoyalty.EXPECT().MemberWithdraw(gomock.Any(), ports.MemberWithdrawRequest{
		Caller:         holder,
		Nft:            nft,
		HoldingAccount: holding,
		Ledger:         addrs.NftLedger,
		Signers:        []domain.Identity{holder},
	}).Return(event, nil)
	// A failed enqueue never fails the settled withdrawal.
	mockWebhook.EXPECT().EnqueueEvent(gomock.Any(), event).Return(errors.New("queue full"))

	c, w := newContext(http.MethodPost, "/api/v1/withdrawals/member", map[string]interface{}{
		"nft":             nft.String(),
		"holding_account": holding.String(),
	}, holder)
	h.MemberWithdraw(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 349, decode(t, w)["data"].(map[string]interface{})["amount"])
}

func TestMemberWithdraw_NotOwner(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRoyalty := mocks.NewMockRoyaltyService(ctrl)
	h := NewRoyaltyHandler(mockRoyalty, nil, testAddresses(t), zerolog.Nop())
	mockRoyalty.EXPECT().MemberWithdraw(gomock.Any(), gomock.Any()).Return(nil, apperror.ErrNftNotOwnedByWithdrawer())

	c, w := newContext(http.MethodPost, "/api/v1/withdrawals/member", map[string]interface{}{
		"nft":             solana.NewWallet().PublicKey().String(),
		"holding_account": solana.NewWallet().PublicKey().String(),
	}, solana.NewWallet().PublicKey())
	h.MemberWithdraw(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "ROY_007", decode(t, w)["error_code"])
}

func TestArtistWithdraw_ExplicitLedger(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRoyalty := mocks.NewMockRoyaltyService(ctrl)
	h := NewRoyaltyHandler(mockRoyalty, nil, testAddresses(t), zerolog.Nop())

	artist := solana.NewWallet().PublicKey()
	wrongLedger := solana.NewWallet().PublicKey()
	mockRoyalty.EXPECT().ArtistWithdraw(gomock.Any(), ports.ArtistWithdrawRequest{
		Caller:  artist,
		Artist:  artist,
		Ledger:  wrongLedger,
		Signers: []domain.Identity{artist},
	}).Return(nil, apperror.ErrInvalidBalanceLedger())

	c, w := newContext(http.MethodPost, "/api/v1/withdrawals/artist", map[string]interface{}{
		"artist": artist.String(),
		"ledger": wrongLedger.String(),
	}, artist)
	h.ArtistWithdraw(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ROY_002", decode(t, w)["error_code"])
}

// --- Account Handler Tests ---

func TestFundAccount_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAccounts := mocks.NewMockAccountService(ctrl)
	h := NewAccountHandler(mockAccounts)

	authority := solana.NewWallet().PublicKey()
	payer := solana.NewWallet().PublicKey()
	mockAccounts.EXPECT().FundAccount(gomock.Any(), ports.FundAccountRequest{
		Authority: authority,
		Address:   payer,
		Amount:    5000,
		Signers:   []domain.Identity{authority},
	}).Return(&domain.Account{Address: payer, Owner: domain.SystemOwner, Lamports: 5000}, nil)

	c, w := newContext(http.MethodPost, "/api/v1/accounts/fund", map[string]interface{}{
		"address": payer.String(),
		"amount":  5000,
	}, authority)
	h.FundAccount(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]interface{})
	assert.EqualValues(t, 5000, data["lamports"])
	assert.Equal(t, payer.String(), data["address"])
}

func TestRegisterHolding_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAccounts := mocks.NewMockAccountService(ctrl)
	h := NewAccountHandler(mockAccounts)

	authority := solana.NewWallet().PublicKey()
	holding := &domain.TokenHolding{
		Address: solana.NewWallet().PublicKey(),
		Mint:    solana.NewWallet().PublicKey(),
		Owner:   solana.NewWallet().PublicKey(),
		Amount:  1,
	}
	mockAccounts.EXPECT().RegisterHolding(gomock.Any(), ports.RegisterHoldingRequest{
		Authority: authority,
		Address:   holding.Address,
		Mint:      holding.Mint,
		Owner:     holding.Owner,
		Amount:    1,
		Signers:   []domain.Identity{authority},
	}).Return(holding, nil)

	c, w := newContext(http.MethodPost, "/api/v1/holdings", map[string]interface{}{
		"address": holding.Address.String(),
		"mint":    holding.Mint.String(),
		"owner":   holding.Owner.String(),
		"amount":  1,
	}, authority)
	h.RegisterHolding(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, holding.Address.String(), c.GetString(middleware.CtxAuditResource))
}

func TestGetAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAccounts := mocks.NewMockAccountService(ctrl)
	h := NewAccountHandler(mockAccounts)
	missing := solana.NewWallet().PublicKey()
	mockAccounts.EXPECT().GetAccount(gomock.Any(), missing).Return(nil, apperror.ErrNotFound("account"))

	c, w := newContext(http.MethodGet, "/api/v1/accounts/"+missing.String(), nil)
	c.Params = gin.Params{{Key: "address", Value: missing.String()}}
	h.GetAccount(c)
	assert.Equal(t, http.StatusNotFound, w.Code)

	c, w = newContext(http.MethodGet, "/api/v1/accounts/xyz", nil)
	c.Params = gin.Params{{Key: "address", Value: "xyz"}}
	h.GetAccount(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// --- Reporting Handler Tests ---

func TestListEvents_Filters(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReporting := mocks.NewMockReportingService(ctrl)
	h := NewReportingHandler(mockReporting)

	subject := solana.NewWallet().PublicKey()
	events := []domain.RoyaltyEvent{
		*sampleEvent(domain.EventPayLabel, subject, subject, 10),
		*sampleEvent(domain.EventPayLabel, subject, subject, 20),
	}

	mockReporting.EXPECT().ListEvents(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, params ports.EventListParams) ([]domain.RoyaltyEvent, int64, error) {
			require.NotNil(t, params.Kind)
			assert.Equal(t, domain.EventPayLabel, *params.Kind)
			require.NotNil(t, params.Subject)
			assert.Equal(t, subject, *params.Subject)
			require.NotNil(t, params.From)
			assert.EqualValues(t, 1_700_000_000, *params.From)
			assert.Nil(t, params.To)
			assert.Equal(t, 2, params.Page)
			assert.Equal(t, 2, params.PageSize)
			return events, 5, nil
		})

	c, w := newContext(http.MethodGet,
		"/api/v1/events?kind=PAY_LABEL&subject="+subject.String()+"&from=1700000000&to=bad&page=2&page_size=2", nil)
	h.ListEvents(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Len(t, resp["data"].([]interface{}), 2)
	page := resp["page"].(map[string]interface{})
	assert.EqualValues(t, 5, page["total"])
	assert.EqualValues(t, 3, page["total_pages"])
}

func TestListEvents_UnknownKind(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewReportingHandler(mocks.NewMockReportingService(ctrl))

	c, w := newContext(http.MethodGet, "/api/v1/events?kind=REFUND", nil)
	h.ListEvents(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReportingViews(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReporting := mocks.NewMockReportingService(ctrl)
	h := NewReportingHandler(mockReporting)
	addrs := testAddresses(t)

	mockReporting.EXPECT().GetVault(gomock.Any()).Return(&ports.VaultState{Address: addrs.Vault, Balance: 50}, nil)
	mockReporting.EXPECT().Reconcile(gomock.Any()).Return(&domain.Reconciliation{VaultBalance: 50, NftAccrued: 49, Unassigned: 1}, nil)
	mockReporting.EXPECT().GetStats(gomock.Any()).Return(&domain.EventStats{TotalEvents: 6, TotalDeposited: 2099}, nil)
	mockReporting.EXPECT().GetArtistLedger(gomock.Any()).Return(&domain.ArtistLedger{}, nil)
	mockReporting.EXPECT().GetNftLedger(gomock.Any()).Return(nil, apperror.ErrCollectionNotInitialized())
	mockReporting.EXPECT().GetCollection(gomock.Any()).Return(&ports.CollectionState{Addresses: addrs, VaultBalance: 50}, nil)

	c, w := newContext(http.MethodGet, "/api/v1/vault", nil)
	h.GetVault(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 50, decode(t, w)["data"].(map[string]interface{})["balance"])

	c, w = newContext(http.MethodGet, "/api/v1/reconcile", nil)
	h.Reconcile(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode(t, w)["data"].(map[string]interface{})["unassigned"])

	c, w = newContext(http.MethodGet, "/api/v1/stats", nil)
	h.GetStats(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2099, decode(t, w)["data"].(map[string]interface{})["total_deposited"])

	c, w = newContext(http.MethodGet, "/api/v1/ledgers/artists", nil)
	h.GetArtistLedger(c)
	assert.Equal(t, http.StatusOK, w.Code)

	c, w = newContext(http.MethodGet, "/api/v1/ledgers/nfts", nil)
	h.GetNftLedger(c)
	assert.Equal(t, http.StatusNotFound, w.Code)

	c, w = newContext(http.MethodGet, "/api/v1/collection", nil)
	h.GetCollection(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 50, decode(t, w)["data"].(map[string]interface{})["vault_balance"])
}

func TestVerifyJournal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReporting := mocks.NewMockReportingService(ctrl)
	h := NewReportingHandler(mockReporting)

	mockReporting.EXPECT().VerifyJournal(gomock.Any()).Return(nil)
	c, w := newContext(http.MethodGet, "/api/v1/journal/verify", nil)
	h.VerifyJournal(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["data"].(map[string]interface{})["valid"])

	mockReporting.EXPECT().VerifyJournal(gomock.Any()).Return(apperror.ErrCorruptAccount(errors.New("hash mismatch at 4")))
	c, w = newContext(http.MethodGet, "/api/v1/journal/verify", nil)
	h.VerifyJournal(c)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "SYS_003", decode(t, w)["error_code"])
}

// --- Health & Swagger ---

func TestHealthCheck(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	pg := mocks.NewMockHealthChecker(ctrl)
	pg.EXPECT().Name().Return("postgresql").AnyTimes()
	pg.EXPECT().Ping(gomock.Any()).Return(nil)
	rd := mocks.NewMockHealthChecker(ctrl)
	rd.EXPECT().Name().Return("redis").AnyTimes()
	rd.EXPECT().Ping(gomock.Any()).Return(errors.New("connection refused"))

	r := gin.New()
	r.GET("/health", HealthCheck(pg, rd))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "degraded", resp["status"])
	deps := resp["dependencies"].(map[string]interface{})
	assert.Equal(t, "healthy", deps["postgresql"].(map[string]interface{})["status"])
	assert.Equal(t, "connection refused", deps["redis"].(map[string]interface{})["error"])
}

func TestHealthCheck_NoDependencies(t *testing.T) {
	r := gin.New()
	r.GET("/health", HealthCheck())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decode(t, w)["status"])
}

func TestSwaggerUI(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/swagger", nil)

	SwaggerUI(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "swagger-ui")
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
}

func TestSwaggerSpec_Embedded(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/swagger/spec", nil)

	SwaggerSpec(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "openapi: 3.0.3")
	assert.Contains(t, w.Body.String(), "/api/v1/withdrawals/member")
}
