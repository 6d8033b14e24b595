package serialization

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ramonehamilton/mtg-collection/internal/collection"
)

// csvHeader is the column layout of the csv format.
func csvHeader() []string {
	header := []string{FieldSet, FieldName, FieldNumber, FieldMultiverseID, FieldID}
	for _, ct := range collection.CountTypes() {
		header = append(header, ct.String())
	}
	return header
}

// CSVSerializer stores one row per printing with its counts.
type CSVSerializer struct {
	Base
}

// NewCSVSerializer creates a csv serializer for coll.
func NewCSVSerializer(coll *collection.Collection) *CSVSerializer {
	return &CSVSerializer{Base: NewBase(coll)}
}

// Format returns "csv".
func (s *CSVSerializer) Format() string { return FormatCSV }

// Extension returns ".csv".
func (s *CSVSerializer) Extension() string { return ".csv" }

// Write writes every printing, owned or not, in set order.
func (s *CSVSerializer) Write(path string) (err error) {
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

// Encode writes the csv document to w.
func (s *CSVSerializer) Encode(w io.Writer) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader()); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, p := range s.coll.Printings() {
		row := []string{p.SetCode, p.Name, p.Number, "", p.ID}
		if p.MultiverseID != 0 {
			row[3] = strconv.Itoa(p.MultiverseID)
		}
		for _, ct := range collection.CountTypes() {
			if n, ok := p.Counts[ct]; ok {
				row = append(row, strconv.Itoa(n))
			} else {
				row = append(row, "")
			}
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row for %s: %w", p.ID, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// Read loads every row of the csv file at path.
func (s *CSVSerializer) Read(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return s.Decode(file)
}

// Decode loads csv rows from r. Loading stops at the first bad row.
func (s *CSVSerializer) Decode(r io.Reader) error {
	return readCSVRecords(r, func(row int, rec map[string]string) error {
		if err := s.LoadCounts(stringRecord(rec)); err != nil {
			return &RecordError{Row: row, Err: err}
		}
		return nil
	})
}

// readCSVRecords calls fn with each row keyed by the header. Rows are
// numbered from 2 since the header is row 1.
func readCSVRecords(r io.Reader, fn func(row int, rec map[string]string) error) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read CSV header: %w", err)
	}
	// Spreadsheet programs often save CSV with a UTF-8 byte order mark.
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	for row := 2; ; row++ {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read CSV row %d: %w", row, err)
		}

		rec := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(fields) {
				rec[name] = fields[i]
			}
		}
		if err := fn(row, rec); err != nil {
			return err
		}
	}
}

func stringRecord(fields map[string]string) Record {
	rec := make(Record, len(fields))
	for k, v := range fields {
		rec[k] = v
	}
	return rec
}

// createFile creates path and any missing parent directories, truncating an
// existing file.
func createFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	return file, nil
}
