// Package googlesheets is the spreadsheet backend of the tabular store: one
// worksheet per table, first row is the header.
package googlesheets

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"tracker/internal/core/ports"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Store implements ports.TableStore over one spreadsheet.
type Store struct {
	svc           *sheets.Service
	spreadsheetID string
	logger        *zap.Logger

	mu    sync.Mutex
	known map[string]struct{}
}

// NewStore connects to spreadsheetID. opts carry credentials or, in tests,
// an endpoint and HTTP client.
func NewStore(ctx context.Context, spreadsheetID string, logger *zap.Logger, opts ...option.ClientOption) (*Store, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Store{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		logger:        logger.With(zap.String("component", "googlesheets")),
		known:         make(map[string]struct{}),
	}, nil
}

// ReadAll returns the data rows of t keyed by the stored header. Blank rows
// are skipped.
func (s *Store) ReadAll(ctx context.Context, t ports.Table) ([]ports.Row, error) {
	if err := s.ensure(ctx, t); err != nil {
		return nil, err
	}

	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, sheetRange(t.Name)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get values of %s: %w", t.Name, err)
	}
	if len(resp.Values) == 0 {
		if err := s.writeHeader(ctx, t); err != nil {
			return nil, err
		}
		return []ports.Row{}, nil
	}

	header := make([]string, len(resp.Values[0]))
	for i, cell := range resp.Values[0] {
		header[i] = strings.TrimSpace(fmt.Sprint(cell))
	}

	rows := make([]ports.Row, 0, len(resp.Values)-1)
	for _, values := range resp.Values[1:] {
		row := make(ports.Row, len(header))
		blank := true
		for i, col := range header {
			if col == "" || i >= len(values) {
				continue
			}
			v := fmt.Sprint(values[i])
			if strings.TrimSpace(v) != "" {
				blank = false
			}
			row[col] = v
		}
		if !blank {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// WriteAll clears the worksheet and writes the canonical header and rows.
func (s *Store) WriteAll(ctx context.Context, t ports.Table, rows []ports.Row) error {
	if err := s.ensure(ctx, t); err != nil {
		return err
	}

	_, err := s.svc.Spreadsheets.Values.Clear(s.spreadsheetID, sheetRange(t.Name), &sheets.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("clear %s: %w", t.Name, err)
	}

	values := make([][]any, 0, len(rows)+1)
	values = append(values, headerValues(t))
	for _, r := range rows {
		line := make([]any, len(t.Header))
		for i, col := range t.Header {
			line[i] = r[col]
		}
		values = append(values, line)
	}

	_, err = s.svc.Spreadsheets.Values.Update(s.spreadsheetID, sheetRange(t.Name)+"!A1", &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("update %s: %w", t.Name, err)
	}
	return nil
}

// ensure creates the worksheet of t with its header when the spreadsheet
// does not have it yet.
func (s *Store) ensure(ctx context.Context, t ports.Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.known[t.Name]; ok {
		return nil
	}

	doc, err := s.svc.Spreadsheets.Get(s.spreadsheetID).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("get spreadsheet: %w", err)
	}
	for _, sh := range doc.Sheets {
		if sh.Properties != nil {
			s.known[sh.Properties.Title] = struct{}{}
		}
	}
	if _, ok := s.known[t.Name]; ok {
		return nil
	}

	_, err = s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{Properties: &sheets.SheetProperties{Title: t.Name}},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("add sheet %s: %w", t.Name, err)
	}
	if err := s.writeHeader(ctx, t); err != nil {
		return err
	}

	s.known[t.Name] = struct{}{}
	s.logger.Info("worksheet created", zap.String("table", t.Name))
	return nil
}

func (s *Store) writeHeader(ctx context.Context, t ports.Table) error {
	_, err := s.svc.Spreadsheets.Values.Update(s.spreadsheetID, sheetRange(t.Name)+"!A1",
		&sheets.ValueRange{Values: [][]any{headerValues(t)}}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("write header of %s: %w", t.Name, err)
	}
	return nil
}

func headerValues(t ports.Table) []any {
	out := make([]any, len(t.Header))
	for i, h := range t.Header {
		out[i] = h
	}
	return out
}

// sheetRange quotes worksheet names that A1 notation would misread.
func sheetRange(name string) string {
	if strings.ContainsAny(name, " !'") {
		return "'" + strings.ReplaceAll(name, "'", "''") + "'"
	}
	return name
}
