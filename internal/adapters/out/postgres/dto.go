package postgres

import (
	"time"

	"tracker/internal/core/ports"

	"gorm.io/datatypes"
)

// TableDTO records that a table exists and the header it was last written with.
type TableDTO struct {
	Name      string                      `gorm:"type:varchar(64);primaryKey"`
	Header    datatypes.JSONSlice[string] `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName overrides GORM's default "table_dtos".
func (TableDTO) TableName() string {
	return "sheet_tables"
}

// RowDTO is one data row of a table; Position keeps table order.
type RowDTO struct {
	ID       uint                          `gorm:"primaryKey;autoIncrement"`
	Sheet    string                        `gorm:"type:varchar(64);not null;index:idx_sheet_rows_position,priority:1"`
	Position int                           `gorm:"not null;index:idx_sheet_rows_position,priority:2"`
	Data     datatypes.JSONType[ports.Row] `gorm:"not null"`
}

// TableName overrides GORM's default "row_dtos".
func (RowDTO) TableName() string {
	return "sheet_rows"
}

func fromRow(table string, position int, header []string, r ports.Row) RowDTO {
	kept := make(ports.Row, len(header))
	for _, col := range header {
		if v, ok := r[col]; ok {
			kept[col] = v
		}
	}
	return RowDTO{
		Sheet:    table,
		Position: position,
		Data:     datatypes.NewJSONType(kept),
	}
}

func toRow(dto RowDTO) ports.Row {
	row := dto.Data.Data()
	if row == nil {
		return ports.Row{}
	}
	return row
}
