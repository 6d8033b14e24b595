package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ramonehamilton/mtg-collection/internal/storage/models"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// CountsRepository handles database operations for printing counts.
type CountsRepository interface {
	// Upsert inserts or replaces the quantity of one printing and count type.
	Upsert(ctx context.Context, count *models.PrintingCount) error

	// DeleteAll removes every stored count.
	DeleteAll(ctx context.Context) error

	// ForEach calls fn for every stored count, ordered by set and name.
	// Iteration stops at the first error returned by fn.
	ForEach(ctx context.Context, fn func(*models.PrintingCount) error) error

	// Total returns the number of stored counts and the sum of their quantities.
	Total(ctx context.Context) (rows int, quantity int, err error)
}

// countsRepository is the concrete implementation of CountsRepository.
type countsRepository struct {
	db DBTX
}

// NewCountsRepository creates a counts repository over a connection or transaction.
func NewCountsRepository(db DBTX) CountsRepository {
	return &countsRepository{db: db}
}

// Upsert inserts or replaces the quantity of one printing and count type.
func (r *countsRepository) Upsert(ctx context.Context, count *models.PrintingCount) error {
	query := `
		INSERT INTO printing_counts (
			printing_id, set_code, name, number, multiverseid, count_type, quantity, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(printing_id, count_type) DO UPDATE SET
			set_code = excluded.set_code,
			name = excluded.name,
			number = excluded.number,
			multiverseid = excluded.multiverseid,
			quantity = excluded.quantity,
			updated_at = excluded.updated_at
	`

	updatedAt := count.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query,
		count.PrintingID,
		count.SetCode,
		count.Name,
		count.Number,
		count.MultiverseID,
		count.CountType,
		count.Quantity,
		updatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert count for %s: %w", count.PrintingID, err)
	}

	return nil
}

// DeleteAll removes every stored count.
func (r *countsRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM printing_counts`); err != nil {
		return fmt.Errorf("failed to delete counts: %w", err)
	}
	return nil
}

// ForEach calls fn for every stored count, ordered by set and name.
func (r *countsRepository) ForEach(ctx context.Context, fn func(*models.PrintingCount) error) error {
	query := `
		SELECT printing_id, set_code, name, number, multiverseid, count_type, quantity, updated_at
		FROM printing_counts
		ORDER BY set_code, name, printing_id, count_type
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to query counts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		c := &models.PrintingCount{}
		err := rows.Scan(
			&c.PrintingID,
			&c.SetCode,
			&c.Name,
			&c.Number,
			&c.MultiverseID,
			&c.CountType,
			&c.Quantity,
			&c.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to scan count: %w", err)
		}
		if err := fn(c); err != nil {
			return err
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating counts: %w", err)
	}

	return nil
}

// Total returns the number of stored counts and the sum of their quantities.
func (r *countsRepository) Total(ctx context.Context) (int, int, error) {
	var rows, quantity int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(quantity), 0) FROM printing_counts`,
	).Scan(&rows, &quantity)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to total counts: %w", err)
	}
	return rows, quantity, nil
}
