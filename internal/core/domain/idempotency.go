package domain

import (
	"time"

	"github.com/google/uuid"
)

// IdempotencyLog stores the result of a deposit so a retried request is not applied twice.
type IdempotencyLog struct {
	Key          string    `json:"key"` // Format: "program_id:caller:kind:reference_id"
	EventID      uuid.UUID `json:"event_id"`
	ResponseJSON []byte    `json:"response_json"`
	CreatedAt    time.Time `json:"created_at"`
}

// BuildIdempotencyKey constructs the standard key format. The key is scoped to
// the caller so one party's reference never resolves to another party's event.
func BuildIdempotencyKey(programID, caller Identity, kind EventKind, referenceID string) string {
	return programID.String() + ":" + caller.String() + ":" + string(kind) + ":" + referenceID
}
