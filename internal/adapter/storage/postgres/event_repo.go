package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"nft-royalty-vault/internal/core/domain"
	"nft-royalty-vault/internal/core/ports"

	"github.com/jackc/pgx/v5"
)

const eventColumns = `sequence, id, program_id, kind, actor, subject, amount, artist_amount,
	label_amount, retained, reference_id, prev_hash, hash, created_at`

// EventRepo implements ports.EventRepository.
type EventRepo struct {
	pool Pool
}

// NewEventRepo creates a new EventRepo.
func NewEventRepo(pool Pool) *EventRepo {
	return &EventRepo{pool: pool}
}

// Create appends a sealed event to the journal and fills its sequence number.
func (r *EventRepo) Create(ctx context.Context, tx pgx.Tx, e *domain.RoyaltyEvent) error {
	amounts, err := bigints(e.Amount, e.ArtistAmount, e.LabelAmount, e.Retained)
	if err != nil {
		return fmt.Errorf("insert event %s: %w", e.ID, err)
	}

	query := `INSERT INTO royalty_events (id, program_id, kind, actor, subject, amount, artist_amount,
		label_amount, retained, reference_id, prev_hash, hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING sequence`

	err = tx.QueryRow(ctx, query,
		e.ID, e.ProgramID.String(), string(e.Kind), e.Actor.String(), e.Subject.String(),
		amounts[0], amounts[1], amounts[2], amounts[3],
		e.ReferenceID, e.PrevHash, e.Hash, e.CreatedAt,
	).Scan(&e.Sequence)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// LastHash returns the newest event's hash for programID, or "" for an empty journal.
func (r *EventRepo) LastHash(ctx context.Context, tx pgx.Tx, programID domain.Identity) (string, error) {
	query := `SELECT hash FROM royalty_events WHERE program_id = $1 ORDER BY sequence DESC LIMIT 1`

	var hash string
	err := tx.QueryRow(ctx, query, programID.String()).Scan(&hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("get last event hash: %w", err)
	}
	return hash, nil
}

// List fetches journal events, oldest first, with filtering and pagination.
func (r *EventRepo) List(ctx context.Context, params ports.EventListParams) ([]domain.RoyaltyEvent, int64, error) {
	var conditions []string
	var args []any
	argIdx := 1

	conditions = append(conditions, fmt.Sprintf("program_id = $%d", argIdx))
	args = append(args, params.ProgramID.String())
	argIdx++

	if params.Kind != nil {
		conditions = append(conditions, fmt.Sprintf("kind = $%d", argIdx))
		args = append(args, string(*params.Kind))
		argIdx++
	}
	if params.Subject != nil {
		conditions = append(conditions, fmt.Sprintf("subject = $%d", argIdx))
		args = append(args, params.Subject.String())
		argIdx++
	}
	if params.From != nil {
		conditions = append(conditions, fmt.Sprintf("created_at >= to_timestamp($%d)", argIdx))
		args = append(args, *params.From)
		argIdx++
	}
	if params.To != nil {
		conditions = append(conditions, fmt.Sprintf("created_at <= to_timestamp($%d)", argIdx))
		args = append(args, *params.To)
		argIdx++
	}

	where := "WHERE " + strings.Join(conditions, " AND ")

	// Count total
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM royalty_events %s", where)
	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}

	// Fetch page
	offset := (params.Page - 1) * params.PageSize
	dataQuery := fmt.Sprintf(`SELECT %s FROM royalty_events %s ORDER BY sequence ASC LIMIT $%d OFFSET $%d`,
		eventColumns, where, argIdx, argIdx+1)
	args = append(args, params.PageSize, offset)

	rows, err := r.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []domain.RoyaltyEvent
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan event row: %w", err)
		}
		events = append(events, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate event rows: %w", err)
	}
	return events, total, nil
}

// GetStats aggregates the journal of programID.
func (r *EventRepo) GetStats(ctx context.Context, programID domain.Identity) (*domain.EventStats, error) {
	query := `SELECT
		COUNT(*) AS total,
		COUNT(*) FILTER (WHERE kind = 'ADD_NFT') AS nfts,
		COALESCE(SUM(amount) FILTER (WHERE kind IN ('ADD_NFT', 'PAY_LABEL', 'DISTRIBUTE_SECONDARY_POOL', 'PAY_LICENSING_FEE')), 0)::BIGINT AS deposited,
		COALESCE(SUM(amount) FILTER (WHERE kind IN ('MEMBER_WITHDRAW', 'ARTIST_WITHDRAW')), 0)::BIGINT AS withdrawn,
		COALESCE(SUM(artist_amount), 0)::BIGINT AS artist_credited,
		COALESCE(SUM(label_amount), 0)::BIGINT AS label_credited,
		COALESCE(SUM(retained), 0)::BIGINT AS retained
		FROM royalty_events WHERE program_id = $1`

	var sums [5]int64
	stats := &domain.EventStats{}
	err := r.pool.QueryRow(ctx, query, programID.String()).Scan(
		&stats.TotalEvents, &stats.NftsRegistered,
		&sums[0], &sums[1], &sums[2], &sums[3], &sums[4],
	)
	if err != nil {
		return nil, fmt.Errorf("get event stats: %w", err)
	}

	dst := []*uint64{
		&stats.TotalDeposited, &stats.TotalWithdrawn,
		&stats.ArtistCredited, &stats.LabelCredited, &stats.RoundingRetained,
	}
	for i, v := range sums {
		if *dst[i], err = fromBigint(v); err != nil {
			return nil, fmt.Errorf("get event stats: %w", err)
		}
	}
	return stats, nil
}

func scanEvent(row pgx.Row) (*domain.RoyaltyEvent, error) {
	var (
		programID, kind, actor, subject string
		amounts                         [4]int64
	)
	e := &domain.RoyaltyEvent{}
	err := row.Scan(
		&e.Sequence, &e.ID, &programID, &kind, &actor, &subject,
		&amounts[0], &amounts[1], &amounts[2], &amounts[3],
		&e.ReferenceID, &e.PrevHash, &e.Hash, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Kind = domain.EventKind(kind)
	if err := parseIdentities(
		identityColumn{programID, &e.ProgramID},
		identityColumn{actor, &e.Actor},
		identityColumn{subject, &e.Subject},
	); err != nil {
		return nil, err
	}
	dst := []*uint64{&e.Amount, &e.ArtistAmount, &e.LabelAmount, &e.Retained}
	for i, v := range amounts {
		if *dst[i], err = fromBigint(v); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func bigints(values ...uint64) ([]int64, error) {
	out := make([]int64, len(values))
	for i, v := range values {
		n, err := toBigint(v)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}
