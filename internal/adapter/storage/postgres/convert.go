package postgres

import (
	"fmt"
	"math"

	"nft-royalty-vault/internal/core/domain"
)

// toBigint narrows a lamport amount to the BIGINT column range.
func toBigint(v uint64) (int64, error) {
	if v > math.MaxInt64 {
		return 0, fmt.Errorf("amount %d exceeds BIGINT range", v)
	}
	return int64(v), nil
}

func fromBigint(v int64) (uint64, error) {
	if v < 0 {
		return 0, fmt.Errorf("negative amount %d in storage", v)
	}
	return uint64(v), nil
}

// parseIdentities decodes base58 columns into their destinations.
func parseIdentities(pairs ...identityColumn) error {
	for _, p := range pairs {
		id, err := domain.ParseIdentity(p.raw)
		if err != nil {
			return err
		}
		*p.dst = id
	}
	return nil
}

type identityColumn struct {
	raw string
	dst *domain.Identity
}
