package tabular_test

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"tracker/internal/adapters/out/tabular"
	"tracker/internal/adapters/out/tabular/memory"
	"tracker/internal/core/ports"
	"tracker/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type backendMock struct {
	mock.Mock
}

func (m *backendMock) ReadAll(ctx context.Context, table ports.Table) ([]ports.Row, error) {
	args := m.Called(ctx, table)
	rows, _ := args.Get(0).([]ports.Row)
	return rows, args.Error(1)
}

func (m *backendMock) WriteAll(ctx context.Context, table ports.Table, rows []ports.Row) error {
	args := m.Called(ctx, table, rows)
	return args.Error(0)
}

var counters = ports.Table{Name: "counters", Header: []string{"n"}}

func TestStore_Mutate(t *testing.T) {
	t.Run("should not write when nothing changed", func(t *testing.T) {
		backend := &backendMock{}
		backend.On("ReadAll", mock.Anything, counters).Return([]ports.Row{{"n": "1"}}, nil).Once()

		s := tabular.NewStore(backend)
		err := s.Mutate(context.Background(), counters, func(rows []ports.Row) ([]ports.Row, bool, error) {
			return rows, false, nil
		})

		require.NoError(t, err)
		backend.AssertExpectations(t)
		backend.AssertNotCalled(t, "WriteAll", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should not write when fn fails", func(t *testing.T) {
		backend := &backendMock{}
		backend.On("ReadAll", mock.Anything, counters).Return([]ports.Row{}, nil).Once()
		boom := errors.New("boom")

		s := tabular.NewStore(backend)
		err := s.Mutate(context.Background(), counters, func(rows []ports.Row) ([]ports.Row, bool, error) {
			return nil, true, boom
		})

		require.ErrorIs(t, err, boom)
		backend.AssertNotCalled(t, "WriteAll", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should wrap backend failures", func(t *testing.T) {
		backend := &backendMock{}
		backend.On("ReadAll", mock.Anything, counters).Return([]ports.Row{}, nil).Once()
		backend.On("WriteAll", mock.Anything, counters, mock.Anything).Return(errors.New("quota exceeded")).Once()

		s := tabular.NewStore(backend)
		err := s.Mutate(context.Background(), counters, func(rows []ports.Row) ([]ports.Row, bool, error) {
			return append(rows, ports.Row{"n": "1"}), true, nil
		})

		require.ErrorIs(t, err, errs.ErrBackendIO)
		var ioErr *errs.BackendIOError
		require.ErrorAs(t, err, &ioErr)
		assert.Equal(t, "write", ioErr.Op)
		assert.Equal(t, "counters", ioErr.Table)
	})

	t.Run("should serialize concurrent cycles on one table", func(t *testing.T) {
		s := tabular.NewStore(memory.NewStore())
		ctx := context.Background()

		var wg sync.WaitGroup
		for range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := s.Mutate(ctx, counters, func(rows []ports.Row) ([]ports.Row, bool, error) {
					if len(rows) == 0 {
						return []ports.Row{{"n": "1"}}, true, nil
					}
					n, _ := strconv.Atoi(rows[0]["n"])
					rows[0]["n"] = strconv.Itoa(n + 1)
					return rows, true, nil
				})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		rows, err := s.Read(ctx, counters)
		require.NoError(t, err)
		assert.Equal(t, "50", rows[0]["n"])
	})
}

func TestStore_Read(t *testing.T) {
	t.Run("should bound the backend call", func(t *testing.T) {
		backend := &backendMock{}
		backend.On("ReadAll", mock.Anything, counters).
			Run(func(args mock.Arguments) {
				<-args.Get(0).(context.Context).Done()
			}).
			Return(nil, context.DeadlineExceeded).Once()

		s := tabular.NewStore(backend, tabular.WithTimeout(10*time.Millisecond))
		_, err := s.Read(context.Background(), counters)

		require.ErrorIs(t, err, errs.ErrBackendIO)
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("should keep existing backend errors", func(t *testing.T) {
		backend := &backendMock{}
		original := errs.NewBackendIOError("values.get", "counters", errors.New("403"))
		backend.On("ReadAll", mock.Anything, counters).Return(nil, original).Once()

		_, err := tabular.NewStore(backend).Read(context.Background(), counters)

		assert.Same(t, original, err)
	})
}

func TestStore_Init(t *testing.T) {
	backend := memory.NewStore()
	require.NoError(t, tabular.NewStore(backend).Init(context.Background()))

	for _, table := range tabular.Tables() {
		header, ok := backend.Header(table.Name)
		require.True(t, ok, table.Name)
		assert.Equal(t, table.Header, header)
	}
}

func TestStore_Now(t *testing.T) {
	fixed := time.Date(2025, 3, 1, 15, 0, 0, 0, time.FixedZone("ALMT", 5*3600))
	s := tabular.NewStore(memory.NewStore(), tabular.WithClock(func() time.Time { return fixed }))

	assert.Equal(t, time.UTC, s.Now().Location())
	assert.True(t, fixed.Equal(s.Now()))
}

func TestCells(t *testing.T) {
	ts := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "2025-03-01T12:00:00Z", tabular.FormatTime(ts))
	assert.Empty(t, tabular.FormatTime(time.Time{}))
	assert.Equal(t, ts, tabular.ParseTime("2025-03-01T12:00:00Z"))
	assert.Equal(t, ts, tabular.ParseTime("2025-03-01T12:00:00.000000"))
	assert.True(t, tabular.ParseTime("yesterday").IsZero())

	v, ok := tabular.ParseInt64("42.0")
	assert.True(t, ok)
	assert.Equal(t, int64(42), v)
	_, ok = tabular.ParseInt64("x")
	assert.False(t, ok)

	assert.Equal(t, "b", tabular.Cell(ports.Row{"a": " b "}, "a"))
	assert.Empty(t, tabular.Cell(ports.Row{}, "missing"))
}
