// Package mtgjson decodes MTGJSON "AllSets" card database files.
package mtgjson

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Card is a single printing as it appears in a set's card list.
type Card struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Number       string `json:"number,omitempty"`
	MultiverseID int    `json:"multiverseid,omitempty"`
	Artist       string `json:"artist,omitempty"`
	Layout       string `json:"layout,omitempty"`
}

// Set is one card set with its printings.
type Set struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	ReleaseDate string `json:"releaseDate"` // YYYY-MM-DD
	Type        string `json:"type"`
	Block       string `json:"block,omitempty"`
	Cards       []Card `json:"cards"`
}

// AllSets maps set code to set data.
type AllSets map[string]*Set

// Load reads and decodes an AllSets JSON file.
func Load(path string) (AllSets, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open card database: %w", err)
	}
	defer func() { _ = file.Close() }()

	return Decode(file)
}

// Decode decodes an AllSets document from r.
// Sets without an explicit code inherit the key they are stored under.
func Decode(r io.Reader) (AllSets, error) {
	var sets AllSets
	if err := json.NewDecoder(r).Decode(&sets); err != nil {
		return nil, fmt.Errorf("failed to parse card database: %w", err)
	}

	for code, set := range sets {
		if set == nil {
			delete(sets, code)
			continue
		}
		if set.Code == "" {
			set.Code = code
		}
		for i := range set.Cards {
			if set.Cards[i].ID == "" {
				return nil, fmt.Errorf("card %q in set %s has no id", set.Cards[i].Name, code)
			}
		}
	}

	return sets, nil
}
