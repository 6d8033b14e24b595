package collection

import "fmt"

// CountType is a kind of owned quantity.
type CountType int

const (
	// Copies counts regular, non-foil copies.
	Copies CountType = iota
	// Foils counts foil copies.
	Foils
)

var countTypeNames = [...]string{
	Copies: "copies",
	Foils:  "foils",
}

// CountTypes returns every count type in declaration order.
func CountTypes() []CountType {
	return []CountType{Copies, Foils}
}

// String returns the field name used for the count type in files.
func (c CountType) String() string {
	if c < 0 || int(c) >= len(countTypeNames) {
		return fmt.Sprintf("CountType(%d)", int(c))
	}
	return countTypeNames[c]
}

// ParseCountType returns the count type with the given field name.
func ParseCountType(name string) (CountType, bool) {
	for i, n := range countTypeNames {
		if n == name {
			return CountType(i), true
		}
	}
	return 0, false
}

// Printing is one physical printing of a card.
type Printing struct {
	ID           string
	SetCode      string
	Name         string
	Number       string // empty when the set has no collector numbers
	MultiverseID int    // 0 when unknown
	Artist       string

	// Counts holds owned quantities. Only non-zero counts are present.
	Counts map[CountType]int
}

// Total returns the sum of all counts.
func (p *Printing) Total() int {
	total := 0
	for _, n := range p.Counts {
		total += n
	}
	return total
}

// Owned reports whether any copy of the printing is owned.
func (p *Printing) Owned() bool {
	return len(p.Counts) > 0
}

func (p *Printing) String() string {
	if p.Number != "" {
		return fmt.Sprintf("%s (%s) %s", p.Name, p.SetCode, p.Number)
	}
	return fmt.Sprintf("%s (%s)", p.Name, p.SetCode)
}
