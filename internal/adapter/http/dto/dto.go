package dto

import (
	"time"

	"nft-royalty-vault/internal/core/domain"
)

// Identities travel as base58 strings validated by the "identity" tag.

// LoginRequest carries a wallet-signed login message.
type LoginRequest struct {
	Identity  string `json:"identity" binding:"required,identity"`
	Message   string `json:"message" binding:"required,max=512"`
	Signature string `json:"signature" binding:"required,max=128"`
}

// LoginResponse is the response body for successful login.
type LoginResponse struct {
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"` // Unix timestamp
}

// LoginChallengeResponse is the message a wallet signs to log in.
type LoginChallengeResponse struct {
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
	Nonce     string `json:"nonce"`
}

// SplitRequest is one artist split entry.
type SplitRequest struct {
	Beneficiary string `json:"beneficiary" binding:"required,identity"`
	BasisPoints uint64 `json:"basis_points" binding:"required,gt=0,lte=10000"`
}

// InitializeCollectionRequest configures a collection. The signer is the authority.
type InitializeCollectionRequest struct {
	ArtistMintBP      uint64         `json:"artist_mint_bp" binding:"lte=10000"`
	LabelMintBP       uint64         `json:"label_mint_bp" binding:"lte=10000"`
	ArtistSecondaryBP uint64         `json:"artist_secondary_bp" binding:"lte=10000"`
	LabelSecondaryBP  uint64         `json:"label_secondary_bp" binding:"lte=10000"`
	ArtistSplits      []SplitRequest `json:"artist_splits" binding:"required,min=1,max=64,dive"`
}

// AddNftRequest registers a minted NFT. Payer defaults to the signer.
type AddNftRequest struct {
	Nft         string `json:"nft" binding:"required,identity"`
	Payer       string `json:"payer,omitempty" binding:"omitempty,identity"`
	AmountPaid  uint64 `json:"amount_paid"`
	ReferenceID string `json:"reference_id,omitempty" binding:"omitempty,max=100,safe_id"`
}

// DepositRequest is a label, secondary or licensing payment. Payer defaults to the signer.
type DepositRequest struct {
	Payer       string `json:"payer,omitempty" binding:"omitempty,identity"`
	Amount      uint64 `json:"amount" binding:"required,gt=0"`
	ReferenceID string `json:"reference_id,omitempty" binding:"omitempty,max=100,safe_id"`
}

// MemberWithdrawRequest claims an NFT's accrued royalties for its holder.
type MemberWithdrawRequest struct {
	Nft            string `json:"nft" binding:"required,identity"`
	HoldingAccount string `json:"holding_account" binding:"required,identity"`
	Ledger         string `json:"ledger,omitempty" binding:"omitempty,identity"`
}

// ArtistWithdrawRequest pays out an artist's accrued royalties.
type ArtistWithdrawRequest struct {
	Artist string `json:"artist" binding:"required,identity"`
	Ledger string `json:"ledger,omitempty" binding:"omitempty,identity"`
}

// FundAccountRequest credits a wallet's native balance.
type FundAccountRequest struct {
	Address string `json:"address" binding:"required,identity"`
	Amount  uint64 `json:"amount" binding:"required,gt=0"`
}

// RegisterHoldingRequest records an NFT holding.
type RegisterHoldingRequest struct {
	Address string `json:"address" binding:"required,identity"`
	Mint    string `json:"mint" binding:"required,identity"`
	Owner   string `json:"owner" binding:"required,identity"`
	Amount  uint64 `json:"amount"`
}

// EventResponse is a journal entry as returned to clients.
type EventResponse struct {
	ID           string `json:"id"`
	Sequence     int64  `json:"sequence"`
	Kind         string `json:"kind"`
	Actor        string `json:"actor"`
	Subject      string `json:"subject"`
	Amount       uint64 `json:"amount"`
	ArtistAmount uint64 `json:"artist_amount"`
	LabelAmount  uint64 `json:"label_amount"`
	Retained     uint64 `json:"retained"`
	ReferenceID  string `json:"reference_id,omitempty"`
	PrevHash     string `json:"prev_hash"`
	Hash         string `json:"hash"`
	CreatedAt    string `json:"created_at"`
	Replayed     bool   `json:"replayed,omitempty"`
}

// ToEventResponse converts a journal entry to its DTO.
func ToEventResponse(e *domain.RoyaltyEvent) EventResponse {
	return EventResponse{
		ID:           e.ID.String(),
		Sequence:     e.Sequence,
		Kind:         string(e.Kind),
		Actor:        e.Actor.String(),
		Subject:      e.Subject.String(),
		Amount:       e.Amount,
		ArtistAmount: e.ArtistAmount,
		LabelAmount:  e.LabelAmount,
		Retained:     e.Retained,
		ReferenceID:  e.ReferenceID,
		PrevHash:     e.PrevHash,
		Hash:         e.Hash,
		CreatedAt:    e.CreatedAt.Format(time.RFC3339),
		Replayed:     e.Replayed,
	}
}

// AccountResponse is a native-balance account.
type AccountResponse struct {
	Address   string `json:"address"`
	Owner     string `json:"owner"`
	Lamports  uint64 `json:"lamports"`
	UpdatedAt string `json:"updated_at"`
}

// ToAccountResponse converts an account to its DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		Address:   a.Address.String(),
		Owner:     a.Owner.String(),
		Lamports:  a.Lamports,
		UpdatedAt: a.UpdatedAt.Format(time.RFC3339),
	}
}

// JournalStatusResponse reports the outcome of a journal verification.
type JournalStatusResponse struct {
	Valid bool `json:"valid"`
}
