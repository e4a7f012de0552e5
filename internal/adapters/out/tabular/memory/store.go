// Package memory provides an in-process tabular backend used by tests and by
// the memory backend setting.
package memory

import (
	"context"
	"maps"
	"sync"

	"tracker/internal/core/ports"
)

type table struct {
	header []string
	rows   []ports.Row
}

// Store keeps tables in memory. Rows are copied in and out.
type Store struct {
	mu     sync.RWMutex
	tables map[string]*table
}

func NewStore() *Store {
	return &Store{tables: make(map[string]*table)}
}

// ReadAll returns copies of the rows of t, creating the table on first access.
func (s *Store) ReadAll(ctx context.Context, t ports.Table) ([]ports.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tbl := s.ensure(t)
	out := make([]ports.Row, 0, len(tbl.rows))
	for _, r := range tbl.rows {
		out = append(out, maps.Clone(r))
	}
	return out, nil
}

// WriteAll replaces the rows of t. Only columns of t.Header are kept.
func (s *Store) WriteAll(ctx context.Context, t ports.Table, rows []ports.Row) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tbl := s.ensure(t)
	tbl.header = append([]string(nil), t.Header...)
	tbl.rows = make([]ports.Row, 0, len(rows))
	for _, r := range rows {
		kept := make(ports.Row, len(t.Header))
		for _, col := range t.Header {
			if v, ok := r[col]; ok {
				kept[col] = v
			}
		}
		tbl.rows = append(tbl.rows, kept)
	}
	return nil
}

// Header returns the header row of a table and whether the table exists.
func (s *Store) Header(name string) ([]string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tbl, ok := s.tables[name]
	if !ok {
		return nil, false
	}
	return append([]string(nil), tbl.header...), true
}

func (s *Store) ensure(t ports.Table) *table {
	tbl, ok := s.tables[t.Name]
	if !ok {
		tbl = &table{header: append([]string(nil), t.Header...)}
		s.tables[t.Name] = tbl
	}
	return tbl
}
