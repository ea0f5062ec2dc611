package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"delivery-insights/models"
)

// maxSheetName is Excel's limit on worksheet name length.
const maxSheetName = 31

// XLSXWriter writes report tables to one workbook, one sheet per table.
type XLSXWriter struct {
	path string
}

// NewXLSXWriter prepares a writer for the workbook at path.
func NewXLSXWriter(path string) (*XLSXWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("xlsx: create output dir: %w", err)
	}
	return &XLSXWriter{path: path}, nil
}

// Write replaces the workbook with the given tables.
func (x *XLSXWriter) Write(tables []models.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, t := range tables {
		name := SheetName(t.Name)
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
				return fmt.Errorf("xlsx: rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("xlsx: new sheet %s: %w", name, err)
		}

		if err := setRow(f, name, 1, t.Header); err != nil {
			return err
		}
		for r, row := range t.Rows {
			if err := setRow(f, name, r+2, row); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(x.path); err != nil {
		return fmt.Errorf("xlsx: save %q: %w", x.path, err)
	}
	return nil
}

func (x *XLSXWriter) Close() error { return nil }

// SheetName truncates a table name to a valid worksheet name.
func SheetName(name string) string {
	if len(name) > maxSheetName {
		return name[:maxSheetName]
	}
	return name
}

func setRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("xlsx: cell name: %w", err)
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("xlsx: write %s row %d: %w", sheet, row, err)
	}
	return nil
}
