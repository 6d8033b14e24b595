package serialization

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/ramonehamilton/mtg-collection/internal/collection"
)

// XLSXSummarySheet is the name of the per-set overview sheet.
const XLSXSummarySheet = "All Sets"

var xlsxSummaryHeader = []string{"code", "name", "release", "type", "cards", "unique", "copies", "foils", "total"}

// xlsxSetHeader is the header of every per-set sheet.
func xlsxSetHeader() []string {
	header := []string{"have", FieldName, FieldID, FieldMultiverseID, FieldNumber, "artist"}
	for _, ct := range collection.CountTypes() {
		header = append(header, ct.String())
	}
	return header
}

// XLSXSerializer stores the collection as a workbook with a summary sheet
// and one sheet per set, named by set code.
type XLSXSerializer struct {
	Base
}

// NewXLSXSerializer creates an xlsx serializer for coll.
func NewXLSXSerializer(coll *collection.Collection) *XLSXSerializer {
	return &XLSXSerializer{Base: NewBase(coll)}
}

// Format returns "xlsx".
func (s *XLSXSerializer) Format() string { return FormatXLSX }

// Extension returns ".xlsx".
func (s *XLSXSerializer) Extension() string { return ".xlsx" }

// Write writes the workbook to path.
func (s *XLSXSerializer) Write(path string) (err error) {
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

// Encode writes the workbook to w.
func (s *XLSXSerializer) Encode(w io.Writer) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), XLSXSummarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := s.writeSummary(f); err != nil {
		return err
	}

	for _, set := range s.coll.Sets() {
		if _, err := f.NewSheet(set.Code); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", set.Code, err)
		}
		if err := s.writeSet(f, set); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func (s *XLSXSerializer) writeSummary(f *excelize.File) error {
	if err := setRow(f, XLSXSummarySheet, 1, toCells(xlsxSummaryHeader)); err != nil {
		return err
	}

	for i, sum := range s.coll.Summaries() {
		row := []interface{}{
			sum.Code, sum.Name, sum.ReleaseDate, sum.Type,
			sum.Printings, sum.UniqueOwned,
			sum.ByType[collection.Copies], sum.ByType[collection.Foils],
			sum.TotalOwned,
		}
		if err := setRow(f, XLSXSummarySheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func (s *XLSXSerializer) writeSet(f *excelize.File, set *collection.Set) error {
	header := xlsxSetHeader()
	if err := setRow(f, set.Code, 1, toCells(header)); err != nil {
		return err
	}

	countTypes := collection.CountTypes()
	firstCount, err := excelize.ColumnNumberToName(len(header) - len(countTypes) + 1)
	if err != nil {
		return fmt.Errorf("failed to resolve count column: %w", err)
	}
	lastCount, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return fmt.Errorf("failed to resolve count column: %w", err)
	}

	for i, p := range set.Printings {
		rowNum := i + 2
		row := []interface{}{nil, p.Name, p.ID, nil, p.Number, p.Artist}
		if p.MultiverseID != 0 {
			row[3] = p.MultiverseID
		}
		for _, ct := range countTypes {
			if n, ok := p.Counts[ct]; ok {
				row = append(row, n)
			} else {
				row = append(row, nil)
			}
		}
		if err := setRow(f, set.Code, rowNum, row); err != nil {
			return err
		}

		formula := fmt.Sprintf(`IF(SUM(%s%d:%s%d)>0,"X","")`, firstCount, rowNum, lastCount, rowNum)
		if err := f.SetCellFormula(set.Code, fmt.Sprintf("A%d", rowNum), formula); err != nil {
			return fmt.Errorf("failed to set formula on %s row %d: %w", set.Code, rowNum, err)
		}
	}
	return nil
}

// Read loads every set sheet of the workbook at path.
func (s *XLSXSerializer) Read(path string) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	return s.load(f)
}

// Decode loads a workbook from r.
func (s *XLSXSerializer) Decode(r io.Reader) error {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	return s.load(f)
}

// load reads each set sheet, using the sheet name as the set code.
// Loading stops at the first bad row.
func (s *XLSXSerializer) load(f *excelize.File) error {
	for _, sheet := range f.GetSheetList() {
		if sheet == XLSXSummarySheet {
			continue
		}

		rows, err := f.GetRows(sheet)
		if err != nil {
			return fmt.Errorf("failed to read sheet %s: %w", sheet, err)
		}
		if len(rows) == 0 {
			continue
		}

		header := rows[0]
		for i, cells := range rows[1:] {
			if blankRow(cells) {
				continue
			}
			rec := Record{FieldSet: sheet}
			for col, name := range header {
				if name == "" || name == FieldSet || col >= len(cells) {
					continue
				}
				rec[name] = cells[col]
			}
			if err := s.LoadCounts(rec); err != nil {
				return &RecordError{Source: sheet, Row: i + 2, Err: err}
			}
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to resolve cell: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func blankRow(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
