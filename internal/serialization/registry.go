package serialization

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ramonehamilton/mtg-collection/internal/collection"
)

// FormatAuto selects the serializer by file extension.
const FormatAuto = "auto"

// Factory constructs a serializer bound to a collection.
type Factory func(coll *collection.Collection) Serializer

// Registration describes one serializer implementation.
type Registration struct {
	Format    string
	Extension string // "" when the format is only selectable by name
	New       Factory
}

// Registry maps format names and file extensions to serializers.
// A Registry is immutable once built.
type Registry struct {
	regs        []Registration
	byFormat    map[string]Registration
	byExtension map[string]Registration
}

// NewRegistry validates regs and builds a registry from them.
// Registration order is preserved by AllFormats.
func NewRegistry(regs ...Registration) (*Registry, error) {
	r := &Registry{
		byFormat:    make(map[string]Registration, len(regs)),
		byExtension: make(map[string]Registration, len(regs)),
	}
	for _, reg := range regs {
		if err := r.add(reg); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Registry) add(reg Registration) error {
	switch {
	case reg.Format == "":
		return fmt.Errorf("serializer format name is required")
	case reg.Format == FormatAuto:
		return fmt.Errorf("serializer format name %q is reserved", FormatAuto)
	case reg.Format != strings.ToLower(reg.Format):
		return fmt.Errorf("serializer format name %q must be lowercase", reg.Format)
	case reg.New == nil:
		return fmt.Errorf("serializer %q has no constructor", reg.Format)
	}
	if _, dup := r.byFormat[reg.Format]; dup {
		return fmt.Errorf("serializer format %q registered twice", reg.Format)
	}

	if reg.Extension != "" {
		if !strings.HasPrefix(reg.Extension, ".") {
			return fmt.Errorf("serializer %q extension %q must start with a dot", reg.Format, reg.Extension)
		}
		if other, dup := r.byExtension[reg.Extension]; dup {
			return fmt.Errorf("extension %q claimed by both %q and %q", reg.Extension, other.Format, reg.Format)
		}
		r.byExtension[reg.Extension] = reg
	}

	r.byFormat[reg.Format] = reg
	r.regs = append(r.regs, reg)
	return nil
}

// AllFormats returns "auto" followed by every registered format name.
func (r *Registry) AllFormats() []string {
	formats := make([]string, 0, len(r.regs)+1)
	formats = append(formats, FormatAuto)
	for _, reg := range r.regs {
		formats = append(formats, reg.Format)
	}
	return formats
}

// ByExtensionAndFormat selects a serializer. With format "auto" the
// extension decides; otherwise the format name must match exactly and the
// extension is ignored.
func (r *Registry) ByExtensionAndFormat(extension, format string) (Registration, error) {
	if format == FormatAuto {
		if extension != "" {
			if reg, ok := r.byExtension[extension]; ok {
				return reg, nil
			}
		}
		return Registration{}, fmt.Errorf("%w: no serializer for extension %q", ErrInvalidExtensionOrFormat, extension)
	}

	if reg, ok := r.byFormat[format]; ok {
		return reg, nil
	}
	return Registration{}, fmt.Errorf("%w: unknown format %q", ErrInvalidExtensionOrFormat, format)
}

// ForPath builds the serializer for path using its extension and format.
func (r *Registry) ForPath(path, format string, coll *collection.Collection) (Serializer, error) {
	reg, err := r.ByExtensionAndFormat(filepath.Ext(path), format)
	if err != nil {
		return nil, err
	}
	return reg.New(coll), nil
}
