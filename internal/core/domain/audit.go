package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the type of audited action.
type AuditAction string

const (
	AuditActionInitialize     AuditAction = "INITIALIZE_COLLECTION"
	AuditActionAddNft         AuditAction = "ADD_NFT"
	AuditActionDeposit        AuditAction = "DEPOSIT"
	AuditActionMemberWithdraw AuditAction = "MEMBER_WITHDRAW"
	AuditActionArtistWithdraw AuditAction = "ARTIST_WITHDRAW"
	AuditActionFundAccount    AuditAction = "FUND_ACCOUNT"
	AuditActionHolding        AuditAction = "REGISTER_HOLDING"
	AuditActionLogin          AuditAction = "LOGIN"
)

// AuditLog records a single audited action in the system.
type AuditLog struct {
	ID           uuid.UUID   `json:"id"`
	Actor        string      `json:"actor,omitempty"` // base58 signer identity
	Action       AuditAction `json:"action"`
	ResourceType string      `json:"resource_type"`
	ResourceID   string      `json:"resource_id,omitempty"`
	Details      string      `json:"details,omitempty"` // JSON string
	IPAddress    string      `json:"ip_address"`
	CreatedAt    time.Time   `json:"created_at"`
}
