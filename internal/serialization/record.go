package serialization

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ramonehamilton/mtg-collection/internal/collection"
)

// Record field names shared by all formats.
const (
	FieldID           = "id"
	FieldSet          = "set"
	FieldName         = "name"
	FieldNumber       = "number"
	FieldMultiverseID = "multiverseid"
)

// Record is one input row: lookup fields plus count deltas.
// Values are strings or numbers as produced by a format reader.
type Record map[string]any

// intFields returns the names of fields coerced to int.
func intFields() []string {
	fields := []string{FieldMultiverseID}
	for _, ct := range collection.CountTypes() {
		fields = append(fields, ct.String())
	}
	return fields
}

// CoerceCounts returns a copy of rec with the multiverse id and count fields
// converted to int. Missing, nil and blank values are left out of the result.
func CoerceCounts(rec Record) (Record, error) {
	coerced := make(Record, len(rec))
	for k, v := range rec {
		coerced[k] = v
	}

	for _, field := range intFields() {
		v, ok := rec[field]
		if !ok {
			continue
		}
		n, present, err := toInt(v)
		if err != nil {
			return nil, fmt.Errorf("%w: field %s: %v", ErrDeserialization, field, err)
		}
		if !present {
			delete(coerced, field)
			continue
		}
		coerced[field] = n
	}

	return coerced, nil
}

// toInt converts a raw field value. present is false for nil and blank strings.
func toInt(v any) (n int, present bool, err error) {
	switch v := v.(type) {
	case nil:
		return 0, false, nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false, nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, false, fmt.Errorf("invalid integer %q", v)
		}
		return n, true, nil
	case int:
		return v, true, nil
	case int8:
		return int(v), true, nil
	case int16:
		return int(v), true, nil
	case int32:
		return int(v), true, nil
	case int64:
		if v > math.MaxInt || v < math.MinInt {
			return 0, false, fmt.Errorf("value %d out of range", v)
		}
		return int(v), true, nil
	case uint:
		return uintToInt(uint64(v))
	case uint8:
		return int(v), true, nil
	case uint16:
		return int(v), true, nil
	case uint32:
		return uintToInt(uint64(v))
	case uint64:
		return uintToInt(v)
	case float32:
		return floatToInt(float64(v))
	case float64:
		return floatToInt(v)
	default:
		return 0, false, fmt.Errorf("unsupported value type %T", v)
	}
}

func uintToInt(u uint64) (int, bool, error) {
	if u > math.MaxInt {
		return 0, false, fmt.Errorf("value %d out of range", u)
	}
	return int(u), true, nil
}

func floatToInt(f float64) (int, bool, error) {
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, false, fmt.Errorf("non-integral value %v", f)
	}
	if f >= math.MaxInt || f < math.MinInt {
		return 0, false, fmt.Errorf("value %v out of range", f)
	}
	return int(f), true, nil
}

// stringField returns a lookup field as a string, or "" when absent.
// Strings are returned as given; integral numbers lose their fractional part.
func stringField(rec Record, field string) string {
	switch v := rec[field].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		if v == math.Trunc(v) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
