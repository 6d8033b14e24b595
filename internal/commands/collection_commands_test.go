package commands

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramonehamilton/mtg-collection/internal/collection"
	"github.com/ramonehamilton/mtg-collection/internal/mtgjson/mtgjsontest"
	"github.com/ramonehamilton/mtg-collection/internal/serialization"
)

func newTestCollection(t *testing.T) *collection.Collection {
	t.Helper()
	return collection.New(mtgjsontest.AllSets(t))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readBack(t *testing.T, path string) *collection.Collection {
	t.Helper()

	coll := newTestCollection(t)
	s, err := serialization.Default().ForPath(path, serialization.FormatAuto, coll)
	require.NoError(t, err)
	require.NoError(t, s.Read(path))
	return coll
}

func TestCreateCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collection.csv")

	cmd := NewCreateCommand(newTestCollection(t), File{Path: path, Format: "auto"}, Options{})
	require.NoError(t, cmd.Execute(context.Background()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 14)

	// A second create must not clobber the file.
	err = cmd.Execute(context.Background())
	assert.True(t, errors.Is(err, fs.ErrExist))
}

func TestCreateCommand_UnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collection.txt")

	err := NewCreateCommand(newTestCollection(t), File{Path: path, Format: "auto"}, Options{}).Execute(context.Background())
	assert.True(t, errors.Is(err, serialization.ErrInvalidExtensionOrFormat))
}

func TestUpdateCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "collection.csv")
	writeFile(t, path, "set,name,copies\nS00,Rhox,2\n")

	cmd := NewUpdateCommand(newTestCollection(t), File{Path: path, Format: "csv"}, Options{})
	require.NoError(t, cmd.Execute(context.Background()))

	coll := readBack(t, path)
	assert.Equal(t, 2, coll.IDToPrinting[mtgjsontest.RhoxID].Counts[collection.Copies])
	assert.Len(t, coll.Printings(), 13)

	backup, err := os.ReadFile(path + BackupSuffix)
	require.NoError(t, err)
	assert.Equal(t, "set,name,copies\nS00,Rhox,2\n", string(backup))
}

func TestUpdateCommands_Sequence(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.csv")
	second := filepath.Join(dir, "second.xlsx")
	writeFile(t, first, "set,name,copies\nS00,Rhox,2\n")

	coll := newTestCollection(t)
	require.NoError(t, NewCreateCommand(coll, File{Path: second, Format: "auto"}, Options{}).Execute(context.Background()))

	targets := []File{{Path: first, Format: "auto"}, {Path: second, Format: "auto"}}
	e := NewCommandExecutor(nil)
	require.NoError(t, e.ExecuteAll(context.Background(), NewUpdateCommands(coll, targets, Options{NoBackup: true})))

	// Counts from the first file must not leak into the second.
	got := readBack(t, second)
	for _, p := range got.Printings() {
		assert.Empty(t, p.Counts, p.String())
	}
	got = readBack(t, first)
	assert.Equal(t, 2, got.IDToPrinting[mtgjsontest.RhoxID].Counts[collection.Copies])
}

func TestUpdateCommand_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collection.csv")

	err := NewUpdateCommand(newTestCollection(t), File{Path: path, Format: "auto"}, Options{}).Execute(context.Background())
	assert.Error(t, err)
}

func TestMergeCommand(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "collection.xlsx")
	imp1 := filepath.Join(dir, "box.csv")
	imp2 := filepath.Join(dir, "deckbox-inventory.csv")

	writeFile(t, imp1, "set,name,number,copies,foils\nISD,Abattoir Ghoul,85,1,1\nS00,Rhox,,2,\n")
	writeFile(t, imp2, "Count,Tradelist Count,Name,Edition,Card Number,Condition,Language,Foil,Signed,Artist Proof,Altered Art,Misprint,Promo,Textless,My Price\n"+
		"3,0,Abattoir Ghoul,Innistrad,85,Near Mint,English,,,,,,,,\n")

	coll := newTestCollection(t)
	imports := []File{{Path: imp1, Format: "auto"}, {Path: imp2, Format: "deckbox"}}
	cmd := NewMergeCommand(coll, File{Path: target, Format: "auto"}, imports, File{}, Options{NoBackup: true})
	require.NoError(t, cmd.Execute(context.Background()))

	got := readBack(t, target)
	assert.Equal(t, map[collection.CountType]int{collection.Copies: 4, collection.Foils: 1}, got.IDToPrinting[mtgjsontest.AbattoirGhoulID].Counts)
	assert.Equal(t, map[collection.CountType]int{collection.Copies: 2}, got.IDToPrinting[mtgjsontest.RhoxID].Counts)

	// Merging into the existing collection adds on top of it.
	require.NoError(t, NewMergeCommand(newTestCollection(t), File{Path: target, Format: "auto"}, imports[:1], File{}, Options{NoBackup: true}).Execute(context.Background()))
	got = readBack(t, target)
	assert.Equal(t, map[collection.CountType]int{collection.Copies: 5, collection.Foils: 2}, got.IDToPrinting[mtgjsontest.AbattoirGhoulID].Counts)

	_, err := os.Stat(target + BackupSuffix)
	assert.True(t, os.IsNotExist(err))
}

func TestMergeCommand_SeparateOutputIsRepeatable(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "collection.csv")
	imp := filepath.Join(dir, "import.csv")
	out := filepath.Join(dir, "merged.db")

	writeFile(t, target, "set,name,copies\nS00,Rhox,1\n")
	writeFile(t, imp, "set,name,copies\nS00,Rhox,2\n")

	cmd := NewMergeCommand(newTestCollection(t), File{Path: target, Format: "auto"}, []File{{Path: imp, Format: "auto"}}, File{Path: out, Format: "auto"}, Options{})
	require.NoError(t, cmd.Execute(context.Background()))
	require.NoError(t, cmd.Execute(context.Background()))

	got := readBack(t, out)
	assert.Equal(t, 3, got.IDToPrinting[mtgjsontest.RhoxID].Counts[collection.Copies])

	// The source collection is left alone.
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "set,name,copies\nS00,Rhox,1\n", string(data))
}

func TestMergeCommand_BadImportLeavesTarget(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "collection.csv")
	imp := filepath.Join(dir, "import.csv")

	writeFile(t, target, "set,name,copies\nS00,Rhox,1\n")
	writeFile(t, imp, "set,name,copies\nICE,Forest,1\n")

	cmd := NewMergeCommand(newTestCollection(t), File{Path: target, Format: "auto"}, []File{{Path: imp, Format: "auto"}}, File{}, Options{})
	err := cmd.Execute(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, serialization.ErrDeserialization))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "set,name,copies\nS00,Rhox,1\n", string(data))
}

func TestMergeCommand_Canceled(t *testing.T) {
	dir := t.TempDir()
	imp := filepath.Join(dir, "import.csv")
	writeFile(t, imp, "set,name,copies\nS00,Rhox,1\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cmd := NewMergeCommand(newTestCollection(t), File{Path: filepath.Join(dir, "c.csv"), Format: "auto"}, []File{{Path: imp, Format: "auto"}}, File{}, Options{})
	assert.ErrorIs(t, cmd.Execute(ctx), context.Canceled)
}

func TestFileString(t *testing.T) {
	assert.Equal(t, "a.csv", File{Path: "a.csv", Format: "auto"}.String())
	assert.Equal(t, "a.csv (deckbox)", File{Path: "a.csv", Format: "deckbox"}.String())
}
