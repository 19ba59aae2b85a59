package handler

import (
	"strconv"

	"nft-royalty-vault/internal/adapter/http/dto"
	"nft-royalty-vault/internal/core/domain"
	"nft-royalty-vault/internal/core/ports"
	"nft-royalty-vault/pkg/apperror"
	"nft-royalty-vault/pkg/response"

	"github.com/gin-gonic/gin"
)

// ReportingHandler serves the read-only ledger, vault and journal views.
type ReportingHandler struct {
	reportingSvc ports.ReportingService
}

// NewReportingHandler creates a new ReportingHandler.
func NewReportingHandler(reportingSvc ports.ReportingService) *ReportingHandler {
	return &ReportingHandler{reportingSvc: reportingSvc}
}

// GetCollection handles GET /api/v1/collection.
func (h *ReportingHandler) GetCollection(c *gin.Context) {
	state, err := h.reportingSvc.GetCollection(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, state)
}

// GetArtistLedger handles GET /api/v1/ledgers/artists.
func (h *ReportingHandler) GetArtistLedger(c *gin.Context) {
	ledger, err := h.reportingSvc.GetArtistLedger(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, ledger)
}

// GetNftLedger handles GET /api/v1/ledgers/nfts.
func (h *ReportingHandler) GetNftLedger(c *gin.Context) {
	ledger, err := h.reportingSvc.GetNftLedger(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, ledger)
}

// GetVault handles GET /api/v1/vault.
func (h *ReportingHandler) GetVault(c *gin.Context) {
	vault, err := h.reportingSvc.GetVault(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, vault)
}

// Reconcile handles GET /api/v1/reconcile.
func (h *ReportingHandler) Reconcile(c *gin.Context) {
	rec, err := h.reportingSvc.Reconcile(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rec)
}

// ListEvents handles GET /api/v1/events.
func (h *ReportingHandler) ListEvents(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	params := ports.EventListParams{
		Page:     page,
		PageSize: pageSize,
	}

	if k := c.Query("kind"); k != "" {
		kind := domain.EventKind(k)
		if !kind.IsDeposit() && !kind.IsWithdrawal() && kind != domain.EventInitializeCollection {
			response.Error(c, apperror.Validation("kind: unknown event kind"))
			return
		}
		params.Kind = &kind
	}
	if s := c.Query("subject"); s != "" {
		subject, err := domain.ParseIdentity(s)
		if err != nil {
			response.Error(c, apperror.Validation("subject: invalid identity"))
			return
		}
		params.Subject = &subject
	}
	if f := c.Query("from"); f != "" {
		if v, err := strconv.ParseInt(f, 10, 64); err == nil {
			params.From = &v
		}
	}
	if t := c.Query("to"); t != "" {
		if v, err := strconv.ParseInt(t, 10, 64); err == nil {
			params.To = &v
		}
	}

	events, total, err := h.reportingSvc.ListEvents(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		items = append(items, dto.ToEventResponse(&events[i]))
	}

	response.Paged(c, items, page, pageSize, total)
}

// GetStats handles GET /api/v1/stats.
func (h *ReportingHandler) GetStats(c *gin.Context) {
	stats, err := h.reportingSvc.GetStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, stats)
}

// VerifyJournal handles GET /api/v1/journal/verify.
func (h *ReportingHandler) VerifyJournal(c *gin.Context) {
	if err := h.reportingSvc.VerifyJournal(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.JournalStatusResponse{Valid: true})
}
