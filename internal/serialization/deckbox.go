package serialization

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/ramonehamilton/mtg-collection/internal/collection"
)

// deckbox.org inventory columns.
var deckboxHeader = []string{
	"Count",
	"Tradelist Count",
	"Name",
	"Edition",
	"Card Number",
	"Condition",
	"Language",
	"Foil",
	"Signed",
	"Artist Proof",
	"Altered Art",
	"Misprint",
	"Promo",
	"Textless",
	"My Price",
}

const (
	deckboxFoil      = "foil"
	deckboxCondition = "Near Mint"
	deckboxLanguage  = "English"
)

// DeckboxSerializer reads and writes deckbox.org inventory exports.
// Deckbox names sets by full name and has one row per finish, so each
// owned count type becomes its own row.
//
// Printings that share set, name and collector number with another printing
// (basic lands of sets without collector numbers) are left out when writing.
type DeckboxSerializer struct {
	Base
	logger *slog.Logger
}

// NewDeckboxSerializer creates a deckbox serializer for coll.
func NewDeckboxSerializer(coll *collection.Collection) *DeckboxSerializer {
	return &DeckboxSerializer{Base: NewBase(coll), logger: slog.Default()}
}

// Format returns "deckbox".
func (s *DeckboxSerializer) Format() string { return FormatDeckbox }

// Extension returns "": deckbox files are plain .csv and must be selected by name.
func (s *DeckboxSerializer) Extension() string { return "" }

// Write writes one row per owned count type.
func (s *DeckboxSerializer) Write(path string) (err error) {
	file, err := createFile(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	return s.Encode(file)
}

// Encode writes the deckbox inventory to w.
func (s *DeckboxSerializer) Encode(w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(deckboxHeader); err != nil {
		return fmt.Errorf("failed to write deckbox header: %w", err)
	}

	for _, set := range s.coll.Sets() {
		for _, p := range set.Printings {
			if !p.Owned() {
				continue
			}
			// A row only carries set, name and number; skip printings that
			// could not be found again from those.
			if FindPrinting(s.coll, set.Code, p.Name, p.Number, 0) != p {
				s.logger.Warn("Skipping printing that deckbox cannot identify",
					"printing", p.String(), "id", p.ID, "copies", p.Counts[collection.Copies], "foils", p.Counts[collection.Foils])
				continue
			}
			for _, ct := range collection.CountTypes() {
				n, ok := p.Counts[ct]
				if !ok {
					continue
				}
				foil := ""
				if ct == collection.Foils {
					foil = deckboxFoil
				}
				row := []string{
					strconv.Itoa(n), "0", p.Name, set.Name, p.Number,
					deckboxCondition, deckboxLanguage, foil,
					"", "", "", "", "", "", "",
				}
				if err := writer.Write(row); err != nil {
					return fmt.Errorf("failed to write deckbox row for %s: %w", p.ID, err)
				}
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush deckbox CSV: %w", err)
	}
	return nil
}

// Read loads the deckbox inventory at path.
func (s *DeckboxSerializer) Read(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open deckbox file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return s.Decode(file)
}

// Decode loads deckbox rows from r. Loading stops at the first bad row.
func (s *DeckboxSerializer) Decode(r io.Reader) error {
	return readCSVRecords(r, func(row int, fields map[string]string) error {
		if err := s.LoadCounts(s.toRecord(fields)); err != nil {
			return &RecordError{Row: row, Err: err}
		}
		return nil
	})
}

// toRecord converts a deckbox row to a count record.
func (s *DeckboxSerializer) toRecord(fields map[string]string) Record {
	setCode := fields["Edition"]
	if set, ok := s.coll.NameToSet[setCode]; ok {
		setCode = set.Code
	}

	countField := collection.Copies.String()
	if fields["Foil"] == deckboxFoil {
		countField = collection.Foils.String()
	}

	return Record{
		FieldSet:    setCode,
		FieldName:   fields["Name"],
		FieldNumber: fields["Card Number"],
		countField:  fields["Count"],
	}
}
