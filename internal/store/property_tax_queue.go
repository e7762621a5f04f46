package store

import (
	"context"
	"fmt"
	"time"

	"github.com/RandyVollrath/ticketlesschicago-sub011/internal/utils"
	"github.com/RandyVollrath/ticketlesschicago-sub011/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const taxQueueTableName = "ticketless.property_tax_queue"

var taxQueueColumns = utils.StructTagValues(types.PropertyTaxQueueEntry{})

type PropertyTaxQueueRepository struct {
	pool *pgxpool.Pool
}

func NewPropertyTaxQueueRepository(pool *pgxpool.Pool) *PropertyTaxQueueRepository {
	return &PropertyTaxQueueRepository{pool: pool}
}

func (r *PropertyTaxQueueRepository) Entry(ctx context.Context, userID string) (*types.PropertyTaxQueueEntry, error) {
	query, args, err := psql().
		Select(taxQueueColumns...).
		From(taxQueueTableName).
		Where(sq.Eq{"user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate tax queue entry query: %w", err)
	}

	var entry types.PropertyTaxQueueEntry
	err = pgxscan.Get(ctx, r.pool, &entry, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrQueueEntryNotFound
		}
		return nil, fmt.Errorf("failed to fetch tax queue entry: %w", err)
	}

	return &entry, nil
}

// EntriesByFilter returns one named queue. never_fetched is derived from
// the timestamp being null; the two boolean queues are independent and a
// row can appear in both.
func (r *PropertyTaxQueueRepository) EntriesByFilter(ctx context.Context, filter types.QueueFilter) ([]*types.PropertyTaxQueueEntry, error) {
	builder := psql().
		Select(taxQueueColumns...).
		From(taxQueueTableName).
		OrderBy("created_at asc")

	switch filter {
	case types.QueueNeedsRefresh:
		builder = builder.Where(sq.Eq{"needs_refresh": true})
	case types.QueueFailed:
		builder = builder.Where(sq.Eq{"fetch_failed": true})
	case types.QueueNeverFetched:
		builder = builder.Where(sq.Eq{"last_fetched_at": nil})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate tax queue query: %w", err)
	}

	entries := make([]*types.PropertyTaxQueueEntry, 0)
	err = pgxscan.Select(ctx, r.pool, &entries, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tax queue entries: %w", err)
	}

	return entries, nil
}

func (r *PropertyTaxQueueRepository) Counts(ctx context.Context) (types.QueueCounts, error) {
	query := fmt.Sprintf(`
		SELECT
			count(*) FILTER (WHERE needs_refresh) AS needs_refresh,
			count(*) FILTER (WHERE fetch_failed) AS failed,
			count(*) FILTER (WHERE last_fetched_at IS NULL) AS never_fetched,
			count(*) AS total
		FROM %s`, taxQueueTableName)

	var counts types.QueueCounts
	err := pgxscan.Get(ctx, r.pool, &counts, query)
	if err != nil {
		return types.QueueCounts{}, fmt.Errorf("failed to fetch tax queue counts: %w", err)
	}

	return counts, nil
}

// RecordFetched marks a successful bill upload: stamps the fetch time,
// clears both flags, and replaces the notes.
func (r *PropertyTaxQueueRepository) RecordFetched(ctx context.Context, userID string, notes *string, fetchedAt time.Time) error {
	query, args, err := psql().
		Update(taxQueueTableName).
		SetMap(map[string]any{
			"last_fetched_at": fetchedAt,
			"needs_refresh":   false,
			"fetch_failed":    false,
			"notes":           notes,
		}).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate record fetched query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to record fetched bill: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return types.ErrQueueEntryNotFound
	}

	return nil
}

// SetFetchFailed flips only the fetch_failed flag. The timestamp and the
// needs_refresh flag are left alone.
func (r *PropertyTaxQueueRepository) SetFetchFailed(ctx context.Context, userID string, failed bool, notes *string) error {
	return r.setFlag(ctx, userID, "fetch_failed", failed, notes)
}

// SetNeedsRefresh flips only the needs_refresh flag.
func (r *PropertyTaxQueueRepository) SetNeedsRefresh(ctx context.Context, userID string, needsRefresh bool, notes *string) error {
	return r.setFlag(ctx, userID, "needs_refresh", needsRefresh, notes)
}

func (r *PropertyTaxQueueRepository) setFlag(ctx context.Context, userID, column string, value bool, notes *string) error {
	builder := psql().
		Update(taxQueueTableName).
		Set(column, value).
		Where(sq.Eq{"user_id": userID})

	if notes != nil {
		builder = builder.Set("notes", *notes)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate %s update query: %w", column, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", column, err)
	}

	if tag.RowsAffected() == 0 {
		return types.ErrQueueEntryNotFound
	}

	return nil
}

func (r *PropertyTaxQueueRepository) CreateEntry(ctx context.Context, entry *types.PropertyTaxQueueEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	query, args, err := psql().
		Insert(taxQueueTableName).
		SetMap(utils.StructToMap(entry)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert tax queue entry query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create tax queue entry")
}
