// Package commands implements the collection operations behind the CLI.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Command represents an encapsulated operation that can be executed.
type Command interface {
	// Execute performs the command's operation.
	Execute(ctx context.Context) error

	// GetName returns a human-readable name for this command.
	// Used for logging and debugging.
	GetName() string

	// GetDescription returns a detailed description of what this command does.
	GetDescription() string
}

// CommandExecutor runs commands with logging.
type CommandExecutor struct {
	logger *slog.Logger
}

// NewCommandExecutor creates a new command executor.
func NewCommandExecutor(logger *slog.Logger) *CommandExecutor {
	if logger == nil {
		logger = slog.Default()
	}
	return &CommandExecutor{logger: logger}
}

// Execute runs a command, logging its start and duration.
func (e *CommandExecutor) Execute(ctx context.Context, cmd Command) error {
	start := time.Now()
	e.logger.Debug("Running command", "command", cmd.GetName(), "description", cmd.GetDescription())

	if err := cmd.Execute(ctx); err != nil {
		return fmt.Errorf("command %s failed: %w", cmd.GetName(), err)
	}

	e.logger.Info("Command finished", "command", cmd.GetName(), "duration", time.Since(start).Round(time.Millisecond))
	return nil
}

// ExecuteAll executes multiple commands in sequence.
// If any command fails, execution stops and returns the error.
func (e *CommandExecutor) ExecuteAll(ctx context.Context, commands []Command) error {
	for i, cmd := range commands {
		if err := e.Execute(ctx, cmd); err != nil {
			return fmt.Errorf("command %d (%s) failed: %w", i, cmd.GetName(), err)
		}
	}
	return nil
}

// BaseCommand provides the name and description parts of Command.
type BaseCommand struct {
	name        string
	description string
}

// GetName returns the command name.
func (c *BaseCommand) GetName() string {
	return c.name
}

// GetDescription returns the command description.
func (c *BaseCommand) GetDescription() string {
	return c.description
}
