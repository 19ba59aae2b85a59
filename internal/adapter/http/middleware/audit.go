package middleware

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"nft-royalty-vault/internal/core/domain"
	"nft-royalty-vault/internal/core/ports"
	"nft-royalty-vault/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuditLog creates an audit middleware that records successful write operations.
// It maps routes to audit actions.
func AuditLog(auditSvc ports.AuditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}
		if c.Request.Method != http.MethodPost {
			return
		}

		action, resourceType := mapPathToAction(c.FullPath())
		if action == "" {
			return
		}

		details, _ := json.Marshal(map[string]interface{}{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     status,
			"request_id": c.GetString(response.CtxRequestID),
		})

		auditSvc.Log(c.Request.Context(), &domain.AuditLog{
			ID:           uuid.New(),
			Actor:        c.GetString(CtxIdentity),
			Action:       action,
			ResourceType: resourceType,
			ResourceID:   c.GetString(CtxAuditResource),
			IPAddress:    c.ClientIP(),
			Details:      string(details),
			CreatedAt:    time.Now().UTC(),
		})
	}
}

// CtxAuditResource lets a handler name the resource it touched.
const CtxAuditResource = "audit_resource"

func mapPathToAction(route string) (domain.AuditAction, string) {
	route = strings.TrimPrefix(route, "/api/v1")
	switch route {
	case "/auth/login":
		return domain.AuditActionLogin, "session"
	case "/collection/initialize":
		return domain.AuditActionInitialize, "collection"
	case "/nfts":
		return domain.AuditActionAddNft, "nft"
	case "/deposits/label", "/deposits/secondary", "/deposits/licensing":
		return domain.AuditActionDeposit, "vault"
	case "/withdrawals/member":
		return domain.AuditActionMemberWithdraw, "vault"
	case "/withdrawals/artist":
		return domain.AuditActionArtistWithdraw, "vault"
	case "/accounts/fund":
		return domain.AuditActionFundAccount, "account"
	case "/holdings":
		return domain.AuditActionHolding, "holding"
	}
	return "", ""
}
