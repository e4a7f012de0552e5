package memory_test

import (
	"context"
	"testing"

	"tracker/internal/adapters/out/tabular/memory"
	"tracker/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var people = ports.Table{Name: "people", Header: []string{"id", "name"}}

func TestStore_CreatesTableOnFirstRead(t *testing.T) {
	s := memory.NewStore()

	_, ok := s.Header("people")
	assert.False(t, ok)

	rows, err := s.ReadAll(context.Background(), people)
	require.NoError(t, err)
	assert.Empty(t, rows)

	header, ok := s.Header("people")
	require.True(t, ok)
	assert.Equal(t, []string{"id", "name"}, header)
}

func TestStore_WriteAllReplacesRows(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	require.NoError(t, s.WriteAll(ctx, people, []ports.Row{{"id": "1", "name": "a"}, {"id": "2", "name": "b"}}))
	require.NoError(t, s.WriteAll(ctx, people, []ports.Row{{"id": "3", "name": "c", "extra": "dropped"}}))

	rows, err := s.ReadAll(ctx, people)
	require.NoError(t, err)
	assert.Equal(t, []ports.Row{{"id": "3", "name": "c"}}, rows)
}

func TestStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.WriteAll(ctx, people, []ports.Row{{"id": "1", "name": "a"}}))

	rows, err := s.ReadAll(ctx, people)
	require.NoError(t, err)
	rows[0]["name"] = "changed"

	again, err := s.ReadAll(ctx, people)
	require.NoError(t, err)
	assert.Equal(t, "a", again[0]["name"])
}

func TestStore_HonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := memory.NewStore().ReadAll(ctx, people)
	require.ErrorIs(t, err, context.Canceled)
}
