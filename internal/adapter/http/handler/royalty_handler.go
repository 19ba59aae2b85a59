package handler

import (
	"context"
	"strconv"

	"nft-royalty-vault/internal/adapter/http/dto"
	"nft-royalty-vault/internal/adapter/http/middleware"
	"nft-royalty-vault/internal/core/domain"
	"nft-royalty-vault/internal/core/ports"
	"nft-royalty-vault/pkg/apperror"
	"nft-royalty-vault/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RoyaltyHandler handles the signer-authenticated collection operations.
type RoyaltyHandler struct {
	royaltySvc ports.RoyaltyService
	webhookSvc ports.WebhookService
	addrs      domain.ProgramAddresses
	log        zerolog.Logger
}

// NewRoyaltyHandler creates a new RoyaltyHandler. webhookSvc may be nil.
func NewRoyaltyHandler(royaltySvc ports.RoyaltyService, webhookSvc ports.WebhookService, addrs domain.ProgramAddresses, log zerolog.Logger) *RoyaltyHandler {
	return &RoyaltyHandler{royaltySvc: royaltySvc, webhookSvc: webhookSvc, addrs: addrs, log: log}
}

// InitializeCollection handles POST /api/v1/collection/initialize.
func (h *RoyaltyHandler) InitializeCollection(c *gin.Context) {
	signer, signers, ok := middleware.Signer(c)
	if !ok {
		response.Error(c, apperror.ErrMissingSigner())
		return
	}

	var req dto.InitializeCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	splits := make([]domain.PercentageSplit, 0, len(req.ArtistSplits))
	for i, s := range req.ArtistSplits {
		beneficiary, err := dto.ParseIdentity("artist_splits.beneficiary", s.Beneficiary, domain.Identity{})
		if err != nil {
			response.Error(c, apperror.Validation(err.Error()))
			return
		}
		if beneficiary.IsZero() {
			response.Error(c, apperror.Validation("artist_splits["+strconv.Itoa(i)+"]: beneficiary required"))
			return
		}
		splits = append(splits, domain.PercentageSplit{Beneficiary: beneficiary, BasisPoints: s.BasisPoints})
	}

	state, err := h.royaltySvc.InitializeCollection(c.Request.Context(), ports.InitializeCollectionRequest{
		Authority:         signer,
		ArtistMintBP:      req.ArtistMintBP,
		LabelMintBP:       req.LabelMintBP,
		ArtistSecondaryBP: req.ArtistSecondaryBP,
		LabelSecondaryBP:  req.LabelSecondaryBP,
		ArtistSplits:      splits,
		Signers:           signers,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Set(middleware.CtxAuditResource, state.Addresses.Config.String())
	response.Created(c, state)
}

// AddNft handles POST /api/v1/nfts.
func (h *RoyaltyHandler) AddNft(c *gin.Context) {
	signer, signers, ok := middleware.Signer(c)
	if !ok {
		response.Error(c, apperror.ErrMissingSigner())
		return
	}

	var req dto.AddNftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	nft, err := dto.ParseIdentity("nft", req.Nft, domain.Identity{})
	if err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	payer, err := dto.ParseIdentity("payer", req.Payer, signer)
	if err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	event, err := h.royaltySvc.AddNft(c.Request.Context(), ports.AddNftRequest{
		Authority:   signer,
		Payer:       payer,
		Nft:         nft,
		AmountPaid:  req.AmountPaid,
		ReferenceID: req.ReferenceID,
		Signers:     signers,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	h.settled(c, event)
	response.Created(c, dto.ToEventResponse(event))
}

// PayLabel handles POST /api/v1/deposits/label.
func (h *RoyaltyHandler) PayLabel(c *gin.Context) {
	h.deposit(c, h.royaltySvc.PayLabel)
}

// DistributeSecondaryPool handles POST /api/v1/deposits/secondary.
func (h *RoyaltyHandler) DistributeSecondaryPool(c *gin.Context) {
	h.deposit(c, h.royaltySvc.DistributeSecondaryPool)
}

// PayLicensingFee handles POST /api/v1/deposits/licensing.
func (h *RoyaltyHandler) PayLicensingFee(c *gin.Context) {
	h.deposit(c, h.royaltySvc.PayLicensingFee)
}

type depositFunc func(ctx context.Context, req ports.DepositRequest) (*domain.RoyaltyEvent, error)

func (h *RoyaltyHandler) deposit(c *gin.Context, fn depositFunc) {
	signer, signers, ok := middleware.Signer(c)
	if !ok {
		response.Error(c, apperror.ErrMissingSigner())
		return
	}

	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	payer, err := dto.ParseIdentity("payer", req.Payer, signer)
	if err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	event, err := fn(c.Request.Context(), ports.DepositRequest{
		Payer:       payer,
		Amount:      req.Amount,
		ReferenceID: req.ReferenceID,
		Signers:     signers,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	h.settled(c, event)
	response.Created(c, dto.ToEventResponse(event))
}

// MemberWithdraw handles POST /api/v1/withdrawals/member.
func (h *RoyaltyHandler) MemberWithdraw(c *gin.Context) {
	signer, signers, ok := middleware.Signer(c)
	if !ok {
		response.Error(c, apperror.ErrMissingSigner())
		return
	}

	var req dto.MemberWithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	nft, err := dto.ParseIdentity("nft", req.Nft, domain.Identity{})
	if err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	holding, err := dto.ParseIdentity("holding_account", req.HoldingAccount, domain.Identity{})
	if err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	ledger, err := dto.ParseIdentity("ledger", req.Ledger, h.addrs.NftLedger)
	if err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	event, err := h.royaltySvc.MemberWithdraw(c.Request.Context(), ports.MemberWithdrawRequest{
		Caller:         signer,
		Nft:            nft,
		HoldingAccount: holding,
		Ledger:         ledger,
		Signers:        signers,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	h.settled(c, event)
	response.OK(c, dto.ToEventResponse(event))
}

// ArtistWithdraw handles POST /api/v1/withdrawals/artist.
func (h *RoyaltyHandler) ArtistWithdraw(c *gin.Context) {
	signer, signers, ok := middleware.Signer(c)
	if !ok {
		response.Error(c, apperror.ErrMissingSigner())
		return
	}

	var req dto.ArtistWithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	artist, err := dto.ParseIdentity("artist", req.Artist, domain.Identity{})
	if err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	ledger, err := dto.ParseIdentity("ledger", req.Ledger, h.addrs.ArtistLedger)
	if err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	event, err := h.royaltySvc.ArtistWithdraw(c.Request.Context(), ports.ArtistWithdrawRequest{
		Caller:  signer,
		Artist:  artist,
		Ledger:  ledger,
		Signers: signers,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	h.settled(c, event)
	response.OK(c, dto.ToEventResponse(event))
}

// settled tags the audit entry and triggers the async settlement webhook.
func (h *RoyaltyHandler) settled(c *gin.Context, event *domain.RoyaltyEvent) {
	c.Set(middleware.CtxAuditResource, event.ID.String())
	// A replayed event was announced when it was first applied.
	if h.webhookSvc == nil || event.Replayed {
		return
	}
	if err := h.webhookSvc.EnqueueEvent(c.Request.Context(), event); err != nil {
		h.log.Warn().Err(err).Str("event_id", event.ID.String()).Msg("failed to enqueue settlement webhook")
	}
}
