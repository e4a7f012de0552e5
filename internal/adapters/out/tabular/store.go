// Package tabular wraps a ports.TableStore with per-table locking and bounded
// backend round-trips, and holds the table schemas of the tracker.
//
// Every read-modify-write cycle on a table goes through Store.Mutate, which
// holds that table's lock for the whole cycle. Two admins saving to the same
// table therefore apply their changes one after the other instead of the
// later write silently dropping the earlier one.
package tabular

import (
	"context"
	"errors"
	"sync"
	"time"

	"tracker/internal/core/ports"
	"tracker/internal/pkg/errs"

	"go.uber.org/zap"
)

const defaultTimeout = 15 * time.Second

// MutateFunc receives the current rows of a table and returns the rows to
// store. The table is written back only when changed is true.
type MutateFunc func(rows []ports.Row) (updated []ports.Row, changed bool, err error)

// Store serializes access to the tables of a backend.
type Store struct {
	backend ports.TableStore
	timeout time.Duration
	now     func() time.Time
	logger  *zap.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithTimeout bounds every backend round-trip; zero keeps the default.
func WithTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithClock overrides the time source used for updated_at stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// NewStore creates a Store over backend.
func NewStore(backend ports.TableStore, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		timeout: defaultTimeout,
		now:     time.Now,
		logger:  zap.NewNop(),
		locks:   make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(zap.String("component", "tabular-store"))
	return s
}

// Now returns the current time of the store clock in UTC.
func (s *Store) Now() time.Time {
	return s.now().UTC()
}

// Read returns the rows of table under its lock.
func (s *Store) Read(ctx context.Context, table ports.Table) ([]ports.Row, error) {
	lock := s.lock(table.Name)
	lock.Lock()
	defer lock.Unlock()

	return s.readAll(ctx, table)
}

// Mutate runs one locked read-modify-write cycle on table.
func (s *Store) Mutate(ctx context.Context, table ports.Table, fn MutateFunc) error {
	lock := s.lock(table.Name)
	lock.Lock()
	defer lock.Unlock()

	rows, err := s.readAll(ctx, table)
	if err != nil {
		return err
	}

	updated, changed, err := fn(rows)
	if err != nil || !changed {
		return err
	}

	return s.writeAll(ctx, table, updated)
}

// Init touches every table so missing ones are created with their header.
func (s *Store) Init(ctx context.Context) error {
	for _, t := range Tables() {
		if _, err := s.Read(ctx, t); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) readAll(ctx context.Context, table ports.Table) ([]ports.Row, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	rows, err := s.backend.ReadAll(ctx, table)
	if err != nil {
		s.logger.Error("read failed", zap.String("table", table.Name), zap.Error(err))
		return nil, wrapBackendErr("read", table.Name, err)
	}
	return rows, nil
}

func (s *Store) writeAll(ctx context.Context, table ports.Table, rows []ports.Row) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.backend.WriteAll(ctx, table, rows); err != nil {
		s.logger.Error("write failed", zap.String("table", table.Name), zap.Int("rows", len(rows)), zap.Error(err))
		return wrapBackendErr("write", table.Name, err)
	}
	return nil
}

func (s *Store) lock(table string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[table]
	if !ok {
		l = &sync.Mutex{}
		s.locks[table] = l
	}
	return l
}

func wrapBackendErr(op, table string, err error) error {
	var ioErr *errs.BackendIOError
	if errors.As(err, &ioErr) {
		return err
	}
	return errs.NewBackendIOError(op, table, err)
}
