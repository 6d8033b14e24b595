// Package collection indexes the card database and holds owned counts per printing.
package collection

import (
	"maps"
	"slices"
	"sort"

	"github.com/ramonehamilton/mtg-collection/internal/mtgjson"
)

// Set is the metadata of one card set plus its printings in database order.
type Set struct {
	Code        string
	Name        string
	ReleaseDate string
	Type        string
	Printings   []*Printing
}

// Key identifies a group of printings in the secondary index.
// A zero Number or MultiverseID means the field is not part of the key.
type Key struct {
	SetCode      string
	Name         string
	Number       string
	MultiverseID int
}

// Collection indexes every known printing.
// Membership is fixed after New; only printing counts change.
type Collection struct {
	IDToPrinting map[string]*Printing
	CodeToSet    map[string]*Set
	NameToSet    map[string]*Set

	sets  []*Set
	index map[Key][]*Printing
}

// New builds a collection from a decoded card database.
func New(allSets mtgjson.AllSets) *Collection {
	c := &Collection{
		IDToPrinting: make(map[string]*Printing),
		CodeToSet:    make(map[string]*Set, len(allSets)),
		NameToSet:    make(map[string]*Set, len(allSets)),
		index:        make(map[Key][]*Printing),
	}

	// Sets are visited in code order so a printing ID listed in two sets
	// always lands in the same one.
	sharedNames := make(map[string]bool)
	for _, code := range slices.Sorted(maps.Keys(allSets)) {
		data := allSets[code]
		set := &Set{
			Code:        code,
			Name:        data.Name,
			ReleaseDate: data.ReleaseDate,
			Type:        data.Type,
			Printings:   make([]*Printing, 0, len(data.Cards)),
		}
		for _, card := range data.Cards {
			if _, dup := c.IDToPrinting[card.ID]; dup {
				continue
			}
			p := &Printing{
				ID:           card.ID,
				SetCode:      code,
				Name:         card.Name,
				Number:       card.Number,
				MultiverseID: card.MultiverseID,
				Artist:       card.Artist,
				Counts:       make(map[CountType]int),
			}
			set.Printings = append(set.Printings, p)
			c.add(p)
		}
		c.CodeToSet[code] = set
		switch {
		case set.Name == "" || sharedNames[set.Name]:
		case c.NameToSet[set.Name] != nil:
			// Two sets with one name cannot be told apart by name.
			delete(c.NameToSet, set.Name)
			sharedNames[set.Name] = true
		default:
			c.NameToSet[set.Name] = set
		}
		c.sets = append(c.sets, set)
	}

	sort.Slice(c.sets, func(i, j int) bool {
		if c.sets[i].ReleaseDate != c.sets[j].ReleaseDate {
			return c.sets[i].ReleaseDate < c.sets[j].ReleaseDate
		}
		return c.sets[i].Code < c.sets[j].Code
	})

	return c
}

func (c *Collection) add(p *Printing) {
	c.IDToPrinting[p.ID] = p

	base := Key{SetCode: p.SetCode, Name: p.Name}
	c.index[base] = append(c.index[base], p)
	if p.Number != "" {
		k := base
		k.Number = p.Number
		c.index[k] = append(c.index[k], p)
	}
	if p.MultiverseID != 0 {
		k := base
		k.MultiverseID = p.MultiverseID
		c.index[k] = append(c.index[k], p)
	}
}

// Lookup returns the printings matching k. Only keys with at most one of
// Number and MultiverseID set are indexed; other keys match nothing.
// The returned slice must not be modified.
func (c *Collection) Lookup(k Key) []*Printing {
	return c.index[k]
}

// Sets returns all sets ordered by release date, then code.
func (c *Collection) Sets() []*Set {
	return c.sets
}

// Printings returns every printing in set order.
func (c *Collection) Printings() []*Printing {
	printings := make([]*Printing, 0, len(c.IDToPrinting))
	for _, set := range c.sets {
		printings = append(printings, set.Printings...)
	}
	return printings
}

// ResetCounts clears the counts of every printing.
func (c *Collection) ResetCounts() {
	for _, p := range c.IDToPrinting {
		clear(p.Counts)
	}
}
