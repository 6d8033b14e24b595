package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ramonehamilton/mtg-collection/internal/collection"
	"github.com/ramonehamilton/mtg-collection/internal/serialization"
)

// BackupSuffix is appended to a collection file's name when it is copied
// aside before being overwritten.
const BackupSuffix = ".bak"

// Options is shared by the collection commands.
type Options struct {
	// Registry selects serializers. Defaults to serialization.Default().
	Registry *serialization.Registry

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// NoBackup skips copying an existing file aside before overwriting it.
	NoBackup bool
}

func (o Options) registry() *serialization.Registry {
	if o.Registry == nil {
		return serialization.Default()
	}
	return o.Registry
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

// File names a collection file and the format used for it.
type File struct {
	Path   string
	Format string
}

func (f File) String() string {
	if f.Format == "" || f.Format == serialization.FormatAuto {
		return f.Path
	}
	return fmt.Sprintf("%s (%s)", f.Path, f.Format)
}

// CreateCommand writes a collection file with no owned cards.
type CreateCommand struct {
	BaseCommand
	coll   *collection.Collection
	target File
	opts   Options
}

// NewCreateCommand creates a command that writes an empty collection to target.
// It fails if target already exists.
func NewCreateCommand(coll *collection.Collection, target File, opts Options) *CreateCommand {
	return &CreateCommand{
		BaseCommand: BaseCommand{
			name:        "Create",
			description: fmt.Sprintf("Create empty collection %s", target),
		},
		coll:   coll,
		target: target,
		opts:   opts,
	}
}

// Execute implements Command.
func (c *CreateCommand) Execute(_ context.Context) error {
	if _, err := os.Stat(c.target.Path); err == nil {
		return fmt.Errorf("%s: %w", c.target.Path, fs.ErrExist)
	}

	c.coll.ResetCounts()
	return write(c.coll, c.target, c.opts)
}

// UpdateCommand rewrites an existing collection file, picking up printings
// added to the card database since it was written.
type UpdateCommand struct {
	BaseCommand
	coll   *collection.Collection
	target File
	opts   Options
}

// NewUpdateCommand creates a command that reads and rewrites target.
func NewUpdateCommand(coll *collection.Collection, target File, opts Options) *UpdateCommand {
	return &UpdateCommand{
		BaseCommand: BaseCommand{
			name:        "Update",
			description: fmt.Sprintf("Update collection %s", target),
		},
		coll:   coll,
		target: target,
		opts:   opts,
	}
}

// NewUpdateCommands creates one update per target, sharing coll. Each
// update resets the counts first, so they can run back to back.
func NewUpdateCommands(coll *collection.Collection, targets []File, opts Options) []Command {
	cmds := make([]Command, 0, len(targets))
	for _, target := range targets {
		cmds = append(cmds, NewUpdateCommand(coll, target, opts))
	}
	return cmds
}

// Execute implements Command.
func (c *UpdateCommand) Execute(_ context.Context) error {
	c.coll.ResetCounts()
	if err := read(c.coll, c.target, c.opts); err != nil {
		return err
	}
	return write(c.coll, c.target, c.opts)
}

// MergeCommand adds the counts of import files to a collection.
type MergeCommand struct {
	BaseCommand
	coll    *collection.Collection
	target  File
	imports []File
	output  File
	opts    Options
}

// NewMergeCommand creates a command that reads target (when it exists),
// adds every import, and writes the result to output. An empty output path
// writes back to target.
func NewMergeCommand(coll *collection.Collection, target File, imports []File, output File, opts Options) *MergeCommand {
	if output.Path == "" {
		output = target
	}
	return &MergeCommand{
		BaseCommand: BaseCommand{
			name:        "Merge",
			description: fmt.Sprintf("Merge %d file(s) into %s", len(imports), output),
		},
		coll:    coll,
		target:  target,
		imports: imports,
		output:  output,
		opts:    opts,
	}
}

// Execute implements Command. The collection's counts are rebuilt from the
// files on every run, so executing again gives the same result.
func (c *MergeCommand) Execute(ctx context.Context) error {
	logger := c.opts.logger()
	c.coll.ResetCounts()

	switch _, err := os.Stat(c.target.Path); {
	case err == nil:
		if err := read(c.coll, c.target, c.opts); err != nil {
			return err
		}
	case errors.Is(err, fs.ErrNotExist):
		logger.Info("Collection does not exist yet, starting empty", "path", c.target.Path)
	default:
		return fmt.Errorf("failed to stat collection: %w", err)
	}

	for _, imp := range c.imports {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := read(c.coll, imp, c.opts); err != nil {
			return err
		}
		logger.Info("Merged file", "path", imp.Path)
	}

	return write(c.coll, c.output, c.opts)
}

func read(coll *collection.Collection, file File, opts Options) error {
	s, err := opts.registry().ForPath(file.Path, file.Format, coll)
	if err != nil {
		return err
	}
	opts.logger().Debug("Reading collection file", "path", file.Path, "format", s.Format())
	if err := s.Read(file.Path); err != nil {
		return fmt.Errorf("failed to read %s: %w", file.Path, err)
	}
	return nil
}

func write(coll *collection.Collection, file File, opts Options) error {
	s, err := opts.registry().ForPath(file.Path, file.Format, coll)
	if err != nil {
		return err
	}

	if !opts.NoBackup {
		backup, err := backupFile(file.Path)
		if err != nil {
			return err
		}
		if backup != "" {
			opts.logger().Info("Backed up collection", "path", file.Path, "backup", backup)
		}
	}

	opts.logger().Debug("Writing collection file", "path", file.Path, "format", s.Format())
	if err := s.Write(file.Path); err != nil {
		return fmt.Errorf("failed to write %s: %w", file.Path, err)
	}
	return nil
}

// backupFile copies path to path+BackupSuffix, replacing any older backup.
// It returns "" when path does not exist.
func backupFile(path string) (backup string, err error) {
	src, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to open %s for backup: %w", path, err)
	}
	defer func() { _ = src.Close() }()

	backup = filepath.Clean(path) + BackupSuffix
	dst, err := os.Create(backup)
	if err != nil {
		return "", fmt.Errorf("failed to create backup: %w", err)
	}
	defer func() {
		if closeErr := dst.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close backup: %w", closeErr)
		}
	}()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to copy backup: %w", err)
	}
	return backup, nil
}
