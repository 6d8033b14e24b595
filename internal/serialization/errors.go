package serialization

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidExtensionOrFormat is returned when no serializer matches
	// the requested format name or file extension.
	ErrInvalidExtensionOrFormat = errors.New("invalid extension or format")

	// ErrDeserialization is returned when a record cannot be coerced or
	// resolved to a printing.
	ErrDeserialization = errors.New("deserialization error")
)

// RecordError reports the input position of a record that failed to load.
type RecordError struct {
	Source string // sheet or file the record came from, if any
	Row    int    // 1-based row number, including any header row
	Err    error
}

func (e *RecordError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("%s row %d: %v", e.Source, e.Row, e.Err)
	}
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}
