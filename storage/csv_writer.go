package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"delivery-insights/models"
)

// CSVWriter writes each report table to <dir>/<table name>.csv.
type CSVWriter struct {
	dir string
}

// NewCSVWriter creates the output directory if needed.
func NewCSVWriter(dir string) (*CSVWriter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}
	return &CSVWriter{dir: dir}, nil
}

// Write creates (or truncates) one file per table.
func (c *CSVWriter) Write(tables []models.Table) error {
	for _, t := range tables {
		if err := c.writeTable(t); err != nil {
			return err
		}
	}
	return nil
}

func (c *CSVWriter) writeTable(t models.Table) error {
	path := filepath.Join(c.dir, t.Name+".csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csv: create file %q: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Header); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("csv: write rows of %s: %w", t.Name, err)
	}
	return f.Close()
}

func (c *CSVWriter) Close() error { return nil }
