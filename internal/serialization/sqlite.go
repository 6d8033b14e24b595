package serialization

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/ramonehamilton/mtg-collection/internal/collection"
	"github.com/ramonehamilton/mtg-collection/internal/storage"
	"github.com/ramonehamilton/mtg-collection/internal/storage/models"
	"github.com/ramonehamilton/mtg-collection/internal/storage/repository"
)

// SQLiteSerializer stores owned counts in a SQLite database file.
// Only non-zero counts are stored; each row keeps the printing's lookup
// fields so it can be resolved again after a card database change.
type SQLiteSerializer struct {
	Base
}

// NewSQLiteSerializer creates a sqlite serializer for coll.
func NewSQLiteSerializer(coll *collection.Collection) *SQLiteSerializer {
	return &SQLiteSerializer{Base: NewBase(coll)}
}

// Format returns "sqlite".
func (s *SQLiteSerializer) Format() string { return FormatSQLite }

// Extension returns ".db".
func (s *SQLiteSerializer) Extension() string { return ".db" }

// Write replaces the counts stored at path with the collection's counts.
func (s *SQLiteSerializer) Write(path string) error {
	return s.WriteContext(context.Background(), path)
}

// WriteContext is Write with a context.
func (s *SQLiteSerializer) WriteContext(ctx context.Context, path string) (err error) {
	db, err := storage.Open(storage.DefaultConfig(path))
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	return db.WithTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		repo := repository.NewCountsRepository(tx)
		if err := repo.DeleteAll(ctx); err != nil {
			return err
		}

		for _, p := range s.coll.Printings() {
			for _, ct := range collection.CountTypes() {
				n, ok := p.Counts[ct]
				if !ok {
					continue
				}
				count := &models.PrintingCount{
					PrintingID:   p.ID,
					SetCode:      p.SetCode,
					Name:         p.Name,
					Number:       sql.NullString{String: p.Number, Valid: p.Number != ""},
					MultiverseID: sql.NullInt64{Int64: int64(p.MultiverseID), Valid: p.MultiverseID != 0},
					CountType:    ct.String(),
					Quantity:     n,
				}
				if err := repo.Upsert(ctx, count); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// Read loads the counts stored at path.
func (s *SQLiteSerializer) Read(path string) error {
	return s.ReadContext(context.Background(), path)
}

// ReadContext is Read with a context.
func (s *SQLiteSerializer) ReadContext(ctx context.Context, path string) (err error) {
	// Opening would create an empty database; a missing file is an error.
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("failed to open collection database: %w", err)
	}

	db, err := storage.Open(storage.DefaultConfig(path))
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	row := 0
	return repository.NewCountsRepository(db.Conn()).ForEach(ctx, func(c *models.PrintingCount) error {
		row++
		rec := Record{
			FieldID:     c.PrintingID,
			FieldSet:    c.SetCode,
			FieldName:   c.Name,
			c.CountType: c.Quantity,
		}
		if c.Number.Valid {
			rec[FieldNumber] = c.Number.String
		}
		if c.MultiverseID.Valid {
			rec[FieldMultiverseID] = c.MultiverseID.Int64
		}
		if err := s.LoadCounts(rec); err != nil {
			return &RecordError{Source: "printing_counts", Row: row, Err: err}
		}
		return nil
	})
}

// StoredSummary describes the raw contents of a collection database.
type StoredSummary struct {
	SchemaVersion uint
	Rows          int
	Quantity      int
}

// Stored reports what the database at path holds without resolving any
// printings, so rows for cards missing from the card database still count.
func (s *SQLiteSerializer) Stored(ctx context.Context, path string) (summary StoredSummary, err error) {
	if _, err := os.Stat(path); err != nil {
		return StoredSummary{}, fmt.Errorf("failed to open collection database: %w", err)
	}

	db, err := storage.Open(storage.DefaultConfig(path))
	if err != nil {
		return StoredSummary{}, err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	rows, quantity, err := repository.NewCountsRepository(db.Conn()).Total(ctx)
	if err != nil {
		return StoredSummary{}, err
	}
	return StoredSummary{SchemaVersion: db.SchemaVersion(), Rows: rows, Quantity: quantity}, nil
}
