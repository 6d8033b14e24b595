package models

import (
	"database/sql"
	"time"
)

// PrintingCount is one owned quantity of one printing, as stored in a
// collection database.
type PrintingCount struct {
	PrintingID   string
	SetCode      string
	Name         string
	Number       sql.NullString // NULL when the set has no collector numbers
	MultiverseID sql.NullInt64  // NULL when unknown
	CountType    string         // "copies", "foils"
	Quantity     int            // always positive
	UpdatedAt    time.Time
}
