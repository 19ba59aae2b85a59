package postgres

import "context"

// HealthCheck reports whether the account store is reachable and migrated.
type HealthCheck struct {
	pool Pool
}

func NewHealthCheck(pool Pool) *HealthCheck {
	return &HealthCheck{pool: pool}
}

// Ping fails when the database is down or the accounts table is missing.
func (h *HealthCheck) Ping(ctx context.Context) error {
	_, err := h.pool.Exec(ctx, "SELECT 1 FROM accounts LIMIT 1")
	return err
}

func (h *HealthCheck) Name() string {
	return "postgresql"
}
