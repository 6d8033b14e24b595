package repository

import (
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/ramonehamilton/mtg-collection/internal/storage/models"
)

// setupCountsTestDB creates an in-memory database with the printing_counts table.
func setupCountsTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	db.SetMaxOpenConns(1)

	schema := `
		CREATE TABLE printing_counts (
			printing_id TEXT NOT NULL,
			set_code TEXT NOT NULL,
			name TEXT NOT NULL,
			number TEXT,
			multiverseid INTEGER,
			count_type TEXT NOT NULL,
			quantity INTEGER NOT NULL CHECK (quantity > 0),
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (printing_id, count_type)
		);
	`

	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Error closing database: %v", err)
		}
	})

	return db
}

func collectCounts(t *testing.T, repo CountsRepository) []*models.PrintingCount {
	t.Helper()

	var out []*models.PrintingCount
	err := repo.ForEach(context.Background(), func(c *models.PrintingCount) error {
		out = append(out, c)
		return nil
	})
	if err != nil {
		t.Fatalf("ForEach failed: %v", err)
	}
	return out
}

func TestCountsRepository_Upsert(t *testing.T) {
	repo := NewCountsRepository(setupCountsTestDB(t))
	ctx := context.Background()

	count := &models.PrintingCount{
		PrintingID:   "958ae1416f8f6287115ccd7c5c61f2415a313546",
		SetCode:      "ISD",
		Name:         "Abattoir Ghoul",
		Number:       sql.NullString{String: "85", Valid: true},
		MultiverseID: sql.NullInt64{Int64: 222911, Valid: true},
		CountType:    "copies",
		Quantity:     2,
	}
	if err := repo.Upsert(ctx, count); err != nil {
		t.Fatalf("failed to upsert: %v", err)
	}

	// Same printing and count type replaces the quantity
	count.Quantity = 5
	if err := repo.Upsert(ctx, count); err != nil {
		t.Fatalf("failed to upsert again: %v", err)
	}

	counts := collectCounts(t, repo)
	if len(counts) != 1 {
		t.Fatalf("expected 1 row, got %d", len(counts))
	}

	got := counts[0]
	if got.Quantity != 5 {
		t.Errorf("expected quantity 5, got %d", got.Quantity)
	}
	if got.Number.String != "85" || !got.Number.Valid {
		t.Errorf("expected number 85, got %+v", got.Number)
	}
	if got.MultiverseID.Int64 != 222911 {
		t.Errorf("expected multiverseid 222911, got %+v", got.MultiverseID)
	}
	if got.UpdatedAt.IsZero() {
		t.Error("expected updated_at to be set")
	}
}

func TestCountsRepository_UpsertRejectsZero(t *testing.T) {
	repo := NewCountsRepository(setupCountsTestDB(t))

	err := repo.Upsert(context.Background(), &models.PrintingCount{
		PrintingID: "a", SetCode: "S00", Name: "Rhox", CountType: "foils", Quantity: 0,
	})
	if err == nil {
		t.Error("expected error for zero quantity")
	}
}

func TestCountsRepository_ForEachOrderAndNulls(t *testing.T) {
	repo := NewCountsRepository(setupCountsTestDB(t))
	ctx := context.Background()

	for _, c := range []*models.PrintingCount{
		{PrintingID: "b", SetCode: "S00", Name: "Rhox", CountType: "copies", Quantity: 1},
		{PrintingID: "a", SetCode: "ISD", Name: "Forest", CountType: "foils", Quantity: 2},
		{PrintingID: "a", SetCode: "ISD", Name: "Forest", CountType: "copies", Quantity: 3},
	} {
		if err := repo.Upsert(ctx, c); err != nil {
			t.Fatalf("failed to upsert: %v", err)
		}
	}

	counts := collectCounts(t, repo)
	if len(counts) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(counts))
	}

	want := []string{"ISD/copies", "ISD/foils", "S00/copies"}
	for i, c := range counts {
		if got := c.SetCode + "/" + c.CountType; got != want[i] {
			t.Errorf("row %d: expected %s, got %s", i, want[i], got)
		}
	}

	if counts[2].Number.Valid || counts[2].MultiverseID.Valid {
		t.Errorf("expected NULL number and multiverseid, got %+v", counts[2])
	}
}

func TestCountsRepository_DeleteAllAndTotal(t *testing.T) {
	repo := NewCountsRepository(setupCountsTestDB(t))
	ctx := context.Background()

	rows, quantity, err := repo.Total(ctx)
	if err != nil {
		t.Fatalf("failed to total: %v", err)
	}
	if rows != 0 || quantity != 0 {
		t.Errorf("expected empty totals, got %d rows %d quantity", rows, quantity)
	}

	for _, c := range []*models.PrintingCount{
		{PrintingID: "a", SetCode: "ISD", Name: "Forest", CountType: "copies", Quantity: 3},
		{PrintingID: "a", SetCode: "ISD", Name: "Forest", CountType: "foils", Quantity: 4},
	} {
		if err := repo.Upsert(ctx, c); err != nil {
			t.Fatalf("failed to upsert: %v", err)
		}
	}

	rows, quantity, err = repo.Total(ctx)
	if err != nil {
		t.Fatalf("failed to total: %v", err)
	}
	if rows != 2 || quantity != 7 {
		t.Errorf("expected 2 rows 7 quantity, got %d rows %d quantity", rows, quantity)
	}

	if err := repo.DeleteAll(ctx); err != nil {
		t.Fatalf("failed to delete: %v", err)
	}
	if counts := collectCounts(t, repo); len(counts) != 0 {
		t.Errorf("expected no rows after DeleteAll, got %d", len(counts))
	}
}
