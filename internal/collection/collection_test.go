package collection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramonehamilton/mtg-collection/internal/collection"
	"github.com/ramonehamilton/mtg-collection/internal/mtgjson"
	"github.com/ramonehamilton/mtg-collection/internal/mtgjson/mtgjsontest"
)

func newTestCollection(t *testing.T) *collection.Collection {
	t.Helper()
	return collection.New(mtgjsontest.AllSets(t))
}

func TestNew_IndexesPrintings(t *testing.T) {
	coll := newTestCollection(t)

	assert.Len(t, coll.IDToPrinting, 13)

	ghoul := coll.IDToPrinting[mtgjsontest.AbattoirGhoulID]
	require.NotNil(t, ghoul)
	assert.Equal(t, "ISD", ghoul.SetCode)
	assert.Equal(t, "Abattoir Ghoul", ghoul.Name)
	assert.Equal(t, "85", ghoul.Number)
	assert.Equal(t, 222911, ghoul.MultiverseID)
	assert.NotNil(t, ghoul.Counts)
	assert.Empty(t, ghoul.Counts)

	assert.Equal(t, "Innistrad", coll.CodeToSet["ISD"].Name)
	assert.Equal(t, "ISD", coll.NameToSet["Innistrad"].Code)
}

func TestLookup(t *testing.T) {
	coll := newTestCollection(t)

	tests := []struct {
		name string
		key  collection.Key
		want int
	}{
		{name: "set and name unique", key: collection.Key{SetCode: "S00", Name: "Rhox"}, want: 1},
		{name: "set and name ambiguous", key: collection.Key{SetCode: "ICE", Name: "Forest"}, want: 2},
		{name: "set name number", key: collection.Key{SetCode: "pMGD", Name: "Black Sun's Zenith", Number: "7"}, want: 1},
		{name: "set name multiverse id", key: collection.Key{SetCode: "LEA", Name: "Forest", MultiverseID: 288}, want: 1},
		{name: "case sensitive set", key: collection.Key{SetCode: "isd", Name: "Abattoir Ghoul"}, want: 0},
		{name: "case sensitive name", key: collection.Key{SetCode: "ISD", Name: "abattoir ghoul"}, want: 0},
		{name: "number and multiverse id not indexed together", key: collection.Key{SetCode: "ISD", Name: "Abattoir Ghoul", Number: "85", MultiverseID: 222911}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, coll.Lookup(tt.key), tt.want)
		})
	}
}

func TestSets_OrderedByReleaseDate(t *testing.T) {
	coll := newTestCollection(t)

	var codes []string
	for _, set := range coll.Sets() {
		codes = append(codes, set.Code)
	}
	assert.Equal(t, []string{"LEA", "ICE", "S00", "pMGD", "MBS", "ISD"}, codes)

	printings := coll.Printings()
	require.Len(t, printings, 13)
	assert.Equal(t, mtgjsontest.AlphaForest288ID, printings[0].ID)
}

func TestSummaries(t *testing.T) {
	coll := newTestCollection(t)
	coll.IDToPrinting[mtgjsontest.AbattoirGhoulID].Counts[collection.Copies] = 3
	coll.IDToPrinting[mtgjsontest.AbattoirGhoulID].Counts[collection.Foils] = 1

	var isd collection.SetSummary
	for _, s := range coll.Summaries() {
		if s.Code == "ISD" {
			isd = s
		}
	}
	assert.Equal(t, 3, isd.Printings)
	assert.Equal(t, 1, isd.UniqueOwned)
	assert.Equal(t, 4, isd.TotalOwned)
	assert.Equal(t, 3, isd.ByType[collection.Copies])
	assert.Equal(t, 1, isd.ByType[collection.Foils])

	coll.ResetCounts()
	assert.False(t, coll.IDToPrinting[mtgjsontest.AbattoirGhoulID].Owned())
}

func TestCountType(t *testing.T) {
	assert.Equal(t, "copies", collection.Copies.String())
	assert.Equal(t, "foils", collection.Foils.String())

	ct, ok := collection.ParseCountType("foils")
	assert.True(t, ok)
	assert.Equal(t, collection.Foils, ct)

	_, ok = collection.ParseCountType("Foils")
	assert.False(t, ok)
}

func TestPrinting_String(t *testing.T) {
	coll := newTestCollection(t)
	assert.Equal(t, "Abattoir Ghoul (ISD) 85", coll.IDToPrinting[mtgjsontest.AbattoirGhoulID].String())
	assert.Equal(t, "Rhox (S00)", coll.IDToPrinting[mtgjsontest.RhoxID].String())
}

func TestNew_DuplicateIDKeepsFirstSetByCode(t *testing.T) {
	for i := 0; i < 20; i++ {
		coll := collection.New(mtgjson.AllSets{
			"ZZZ": {Code: "ZZZ", Name: "Last", ReleaseDate: "2001-01-01", Cards: []mtgjson.Card{{ID: "dup", Name: "Shared"}}},
			"AAA": {Code: "AAA", Name: "First", ReleaseDate: "2002-01-01", Cards: []mtgjson.Card{{ID: "dup", Name: "Shared"}}},
			"MMM": {Code: "MMM", Name: "Middle", ReleaseDate: "2003-01-01", Cards: []mtgjson.Card{{ID: "dup", Name: "Shared"}}},
		})

		require.Contains(t, coll.IDToPrinting, "dup")
		assert.Equal(t, "AAA", coll.IDToPrinting["dup"].SetCode)
		assert.Len(t, coll.CodeToSet["AAA"].Printings, 1)
		assert.Empty(t, coll.CodeToSet["MMM"].Printings)
		assert.Empty(t, coll.CodeToSet["ZZZ"].Printings)
	}
}

func TestNew_SharedSetNameNotIndexed(t *testing.T) {
	coll := collection.New(mtgjson.AllSets{
		"AAA": {Code: "AAA", Name: "Promos", ReleaseDate: "2001-01-01"},
		"BBB": {Code: "BBB", Name: "Promos", ReleaseDate: "2002-01-01"},
		"CCC": {Code: "CCC", Name: "Promos", ReleaseDate: "2003-01-01"},
		"DDD": {Code: "DDD", Name: "Unique", ReleaseDate: "2004-01-01"},
	})

	assert.NotContains(t, coll.NameToSet, "Promos")
	require.Contains(t, coll.NameToSet, "Unique")
	assert.Equal(t, "DDD", coll.NameToSet["Unique"].Code)
	assert.Len(t, coll.CodeToSet, 4)
}
