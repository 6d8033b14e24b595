// Package mtgjsontest provides a small card database for tests.
package mtgjsontest

import (
	"bytes"
	_ "embed"
	"testing"

	"github.com/ramonehamilton/mtg-collection/internal/mtgjson"
)

//go:embed AllSets-test.json
var allSetsJSON []byte

// Well-known printing IDs in the fixture.
const (
	AbattoirGhoulID    = "958ae1416f8f6287115ccd7c5c61f2415a313546"
	RhoxID             = "536d407161fa03eddee7da0e823c2042a8fa0262"
	BlackSunsZenith7ID = "6c9ffa9ffd2cf7e6f85c6be1713ee0c546b9f8fc"
	AlphaForest288ID   = "5ede9781b0c5d157c28a15c3153a455d7d6180fa"
	IceDarkRitualID    = "2fab0ea29e3bbe8bfbc981a4c8163f3e7d267853"
)

// AllSets decodes the fixture database. Each call returns a fresh copy.
func AllSets(t testing.TB) mtgjson.AllSets {
	t.Helper()

	sets, err := mtgjson.Decode(bytes.NewReader(allSetsJSON))
	if err != nil {
		t.Fatalf("failed to decode fixture card database: %v", err)
	}
	return sets
}

// JSON returns the raw fixture document.
func JSON() []byte {
	return bytes.Clone(allSetsJSON)
}
