package charts

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramonehamilton/mtg-collection/internal/collection"
	"github.com/ramonehamilton/mtg-collection/internal/mtgjson/mtgjsontest"
)

func ownedCollection(t *testing.T) *collection.Collection {
	t.Helper()

	coll := collection.New(mtgjsontest.AllSets(t))
	coll.IDToPrinting[mtgjsontest.AbattoirGhoulID].Counts[collection.Copies] = 3
	coll.IDToPrinting[mtgjsontest.RhoxID].Counts[collection.Foils] = 1
	return coll
}

func TestRenderOwnedBySet(t *testing.T) {
	coll := ownedCollection(t)

	var buf bytes.Buffer
	require.NoError(t, RenderOwnedBySet(&buf, coll.Summaries(), DefaultChartConfig()))

	html := buf.String()
	assert.Contains(t, html, "Owned cards per set")
	assert.Contains(t, html, "ISD")
	assert.Contains(t, html, "S00")
	assert.Contains(t, html, "copies")
	assert.Contains(t, html, "foils")
	assert.NotContains(t, html, `"LEA"`)
}

func TestRenderOwnedBySet_AllSets(t *testing.T) {
	coll := ownedCollection(t)
	config := DefaultChartConfig()
	config.OwnedOnly = false

	var buf bytes.Buffer
	require.NoError(t, RenderOwnedBySet(&buf, coll.Summaries(), config))
	assert.Contains(t, buf.String(), `"LEA"`)
}

func TestRenderOwnedBySetFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "stats.html")

	require.NoError(t, RenderOwnedBySetFile(path, ownedCollection(t).Summaries(), DefaultChartConfig()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<html")
}
