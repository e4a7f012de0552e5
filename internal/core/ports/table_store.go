package ports

import "context"

// Row is one data row keyed by column name. Columns missing from the stored
// sheet are absent from the map; readers treat them as empty.
type Row map[string]string

// Table names a worksheet and its canonical header.
type Table struct {
	Name   string
	Header []string
}

// TableStore is the narrow read/write contract of a tabular backend.
//
// Business Rules:
//   - ReadAll returns data rows (header excluded) in table order
//   - WriteAll replaces the whole table: clear, then write header and rows
//   - The first access to a missing table creates it with its header row
//   - Neither call is transactional across tables
type TableStore interface {
	// ReadAll returns every data row of table in order.
	ReadAll(ctx context.Context, table Table) ([]Row, error)

	// WriteAll replaces the content of table with rows, written under table.Header.
	WriteAll(ctx context.Context, table Table, rows []Row) error
}
