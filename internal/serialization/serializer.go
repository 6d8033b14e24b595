// Package serialization reads and writes collections in the supported file
// formats and merges loaded counts into a collection.
package serialization

import (
	"fmt"

	"github.com/ramonehamilton/mtg-collection/internal/collection"
)

// Serializer reads and writes a collection in one file format.
type Serializer interface {
	// Format returns the registered format name.
	Format() string

	// Extension returns the file extension, including the leading dot,
	// or "" when the format is never selected by extension.
	Extension() string

	// Write writes the whole collection to path.
	Write(path string) error

	// Read reads path and adds its counts to the collection.
	Read(path string) error
}

// Base is embedded by every serializer. It owns the merge of loaded counts
// into the collection so formats only need to produce records.
type Base struct {
	coll *collection.Collection
}

// NewBase returns a Base bound to coll.
func NewBase(coll *collection.Collection) Base {
	return Base{coll: coll}
}

// Collection returns the collection the serializer reads into and writes from.
func (b *Base) Collection() *collection.Collection {
	return b.coll
}

// LoadCounts adds the counts in rec to the printing it refers to.
//
// The printing is found by id when present, otherwise by set, name,
// number and multiverse id. Counts are additive and zero totals are removed.
// No count is changed when an error is returned.
func (b *Base) LoadCounts(rec Record) error {
	counts, err := CoerceCounts(rec)
	if err != nil {
		return err
	}

	printing := b.resolve(counts)
	if printing == nil {
		return fmt.Errorf("%w: could not find printing for %v", ErrDeserialization, map[string]any(rec))
	}

	totals := make(map[collection.CountType]int)
	for _, ct := range collection.CountTypes() {
		v, ok := counts[ct.String()]
		if !ok {
			continue
		}
		total := printing.Counts[ct] + v.(int)
		if total < 0 {
			return fmt.Errorf("%w: negative %s total %d for %s", ErrDeserialization, ct, total, printing)
		}
		totals[ct] = total
	}

	for ct, total := range totals {
		if total == 0 {
			delete(printing.Counts, ct)
		} else {
			printing.Counts[ct] = total
		}
	}

	return nil
}

func (b *Base) resolve(counts Record) *collection.Printing {
	if id := stringField(counts, FieldID); id != "" {
		if p, ok := b.coll.IDToPrinting[id]; ok {
			return p
		}
	}

	mv, _ := counts[FieldMultiverseID].(int)
	return FindPrinting(
		b.coll,
		stringField(counts, FieldSet),
		stringField(counts, FieldName),
		stringField(counts, FieldNumber),
		mv,
	)
}

// FindPrinting resolves a partial card reference to a single printing.
//
// Candidates are tried by (set, name, number), then (set, name, multiverse
// id), then (set, name); the first level with exactly one candidate wins.
// Ambiguous or unknown references return nil rather than guessing.
func FindPrinting(coll *collection.Collection, setCode, name, setNumber string, multiverseID int) *collection.Printing {
	base := collection.Key{SetCode: setCode, Name: name}

	if setNumber != "" {
		k := base
		k.Number = setNumber
		if found := coll.Lookup(k); len(found) == 1 {
			return found[0]
		}
	}

	if multiverseID != 0 {
		k := base
		k.MultiverseID = multiverseID
		if found := coll.Lookup(k); len(found) == 1 {
			return found[0]
		}
	}

	if found := coll.Lookup(base); len(found) == 1 {
		return found[0]
	}

	return nil
}
