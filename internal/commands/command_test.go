package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCommand struct {
	BaseCommand
	err  error
	runs int
}

func newFake(name string, err error) *fakeCommand {
	return &fakeCommand{BaseCommand: BaseCommand{name: name, description: "fake " + name}, err: err}
}

func (f *fakeCommand) Execute(context.Context) error {
	f.runs++
	return f.err
}

func TestCommandExecutor_Execute(t *testing.T) {
	e := NewCommandExecutor(nil)

	cmd := newFake("one", nil)
	require.NoError(t, e.Execute(context.Background(), cmd))
	assert.Equal(t, 1, cmd.runs)

	failing := newFake("two", errors.New("boom"))
	err := e.Execute(context.Background(), failing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "command two failed")
	assert.True(t, errors.Is(err, failing.err))
}

func TestCommandExecutor_ExecuteAllStopsOnError(t *testing.T) {
	e := NewCommandExecutor(nil)

	first := newFake("first", nil)
	second := newFake("second", errors.New("boom"))
	third := newFake("third", nil)

	err := e.ExecuteAll(context.Background(), []Command{first, second, third})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "command 1 (second) failed")
	assert.Equal(t, 1, first.runs)
	assert.Equal(t, 0, third.runs)
}
