package serialization

import "github.com/ramonehamilton/mtg-collection/internal/collection"

// Built-in format names.
const (
	FormatCSV     = "csv"
	FormatXLSX    = "xlsx"
	FormatDeckbox = "deckbox"
	FormatSQLite  = "sqlite"
)

// builtins lists the built-in serializers in registration order.
func builtins() []Registration {
	return []Registration{
		{Format: FormatCSV, Extension: ".csv", New: func(c *collection.Collection) Serializer { return NewCSVSerializer(c) }},
		{Format: FormatXLSX, Extension: ".xlsx", New: func(c *collection.Collection) Serializer { return NewXLSXSerializer(c) }},
		{Format: FormatDeckbox, Extension: "", New: func(c *collection.Collection) Serializer { return NewDeckboxSerializer(c) }},
		{Format: FormatSQLite, Extension: ".db", New: func(c *collection.Collection) Serializer { return NewSQLiteSerializer(c) }},
	}
}

// RegisterAll builds a registry holding every built-in serializer.
func RegisterAll() (*Registry, error) {
	return NewRegistry(builtins()...)
}

var defaultRegistry = mustRegisterAll()

func mustRegisterAll() *Registry {
	r, err := RegisterAll()
	if err != nil {
		panic(err)
	}
	return r
}

// Default returns the registry of built-in serializers, built once at startup.
func Default() *Registry {
	return defaultRegistry
}
