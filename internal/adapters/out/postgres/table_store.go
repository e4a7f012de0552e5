// Package postgres is the SQL backend of the tabular store. Every table of
// the tracker is kept as ordered JSON rows in sheet_rows, so the repositories
// see the same whole-table semantics as with a spreadsheet.
package postgres

import (
	"context"
	"fmt"
	"time"

	"tracker/internal/core/ports"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const insertBatchSize = 200

// Config holds the connection settings of the database.
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN renders cfg as a libpq keyword/value connection string.
func (c Config) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, sslMode)
}

// Open connects to the database described by cfg.
func Open(cfg Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

// Migrate creates the tables of the store.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&TableDTO{}, &RowDTO{})
}

// TableStore implements ports.TableStore on top of GORM.
type TableStore struct {
	db  *gorm.DB
	now func() time.Time
}

func NewTableStore(db *gorm.DB) *TableStore {
	return &TableStore{db: db, now: time.Now}
}

// ReadAll returns the rows of t ordered by position, registering the table
// on first access.
func (s *TableStore) ReadAll(ctx context.Context, t ports.Table) ([]ports.Row, error) {
	db := s.db.WithContext(ctx)
	if err := s.ensure(db, t); err != nil {
		return nil, err
	}

	var dtos []RowDTO
	if err := db.Where("sheet = ?", t.Name).Order("position").Find(&dtos).Error; err != nil {
		return nil, fmt.Errorf("select rows of %s: %w", t.Name, err)
	}

	rows := make([]ports.Row, 0, len(dtos))
	for _, dto := range dtos {
		rows = append(rows, toRow(dto))
	}
	return rows, nil
}

// WriteAll replaces the rows of t in one transaction. Columns outside
// t.Header are dropped.
func (s *TableStore) WriteAll(ctx context.Context, t ports.Table, rows []ports.Row) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		header := TableDTO{Name: t.Name, Header: t.Header, UpdatedAt: s.now().UTC()}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"header", "updated_at"}),
		}).Create(&header).Error
		if err != nil {
			return fmt.Errorf("upsert table %s: %w", t.Name, err)
		}

		if err := tx.Where("sheet = ?", t.Name).Delete(&RowDTO{}).Error; err != nil {
			return fmt.Errorf("clear rows of %s: %w", t.Name, err)
		}
		if len(rows) == 0 {
			return nil
		}

		dtos := make([]RowDTO, 0, len(rows))
		for i, r := range rows {
			dtos = append(dtos, fromRow(t.Name, i, t.Header, r))
		}
		if err := tx.CreateInBatches(dtos, insertBatchSize).Error; err != nil {
			return fmt.Errorf("insert rows of %s: %w", t.Name, err)
		}
		return nil
	})
}

// Headers returns the stored header of every known table.
func (s *TableStore) Headers(ctx context.Context) (map[string][]string, error) {
	var dtos []TableDTO
	if err := s.db.WithContext(ctx).Find(&dtos).Error; err != nil {
		return nil, fmt.Errorf("select tables: %w", err)
	}
	out := make(map[string][]string, len(dtos))
	for _, dto := range dtos {
		out[dto.Name] = []string(dto.Header)
	}
	return out, nil
}

func (s *TableStore) ensure(db *gorm.DB, t ports.Table) error {
	var count int64
	if err := db.Model(&TableDTO{}).Where("name = ?", t.Name).Count(&count).Error; err != nil {
		return fmt.Errorf("select table %s: %w", t.Name, err)
	}
	if count > 0 {
		return nil
	}

	dto := TableDTO{Name: t.Name, Header: t.Header, UpdatedAt: s.now().UTC()}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&dto).Error; err != nil {
		return fmt.Errorf("create table %s: %w", t.Name, err)
	}
	return nil
}
