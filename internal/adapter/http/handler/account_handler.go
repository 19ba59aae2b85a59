package handler

import (
	"nft-royalty-vault/internal/adapter/http/dto"
	"nft-royalty-vault/internal/adapter/http/middleware"
	"nft-royalty-vault/internal/core/domain"
	"nft-royalty-vault/internal/core/ports"
	"nft-royalty-vault/pkg/apperror"
	"nft-royalty-vault/pkg/response"

	"github.com/gin-gonic/gin"
)

// AccountHandler handles operator account endpoints and balance lookups.
type AccountHandler struct {
	accountSvc ports.AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountSvc ports.AccountService) *AccountHandler {
	return &AccountHandler{accountSvc: accountSvc}
}

// FundAccount handles POST /api/v1/accounts/fund.
func (h *AccountHandler) FundAccount(c *gin.Context) {
	signer, signers, ok := middleware.Signer(c)
	if !ok {
		response.Error(c, apperror.ErrMissingSigner())
		return
	}

	var req dto.FundAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	address, err := dto.ParseIdentity("address", req.Address, domain.Identity{})
	if err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	acc, err := h.accountSvc.FundAccount(c.Request.Context(), ports.FundAccountRequest{
		Authority: signer,
		Address:   address,
		Amount:    req.Amount,
		Signers:   signers,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Set(middleware.CtxAuditResource, acc.Address.String())
	response.OK(c, dto.ToAccountResponse(acc))
}

// RegisterHolding handles POST /api/v1/holdings.
func (h *AccountHandler) RegisterHolding(c *gin.Context) {
	signer, signers, ok := middleware.Signer(c)
	if !ok {
		response.Error(c, apperror.ErrMissingSigner())
		return
	}

	var req dto.RegisterHoldingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	var address, mint, owner domain.Identity
	for _, f := range []struct {
		name string
		raw  string
		dst  *domain.Identity
	}{
		{"address", req.Address, &address},
		{"mint", req.Mint, &mint},
		{"owner", req.Owner, &owner},
	} {
		id, err := dto.ParseIdentity(f.name, f.raw, domain.Identity{})
		if err != nil {
			response.Error(c, apperror.Validation(err.Error()))
			return
		}
		*f.dst = id
	}

	holding, err := h.accountSvc.RegisterHolding(c.Request.Context(), ports.RegisterHoldingRequest{
		Authority: signer,
		Address:   address,
		Mint:      mint,
		Owner:     owner,
		Amount:    req.Amount,
		Signers:   signers,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Set(middleware.CtxAuditResource, holding.Address.String())
	response.OK(c, holding)
}

// GetAccount handles GET /api/v1/accounts/:address.
func (h *AccountHandler) GetAccount(c *gin.Context) {
	address, err := domain.ParseIdentity(c.Param("address"))
	if err != nil {
		response.Error(c, apperror.Validation("address: invalid identity"))
		return
	}

	acc, err := h.accountSvc.GetAccount(c.Request.Context(), address)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ToAccountResponse(acc))
}
