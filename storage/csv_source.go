package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"delivery-insights/models"
)

// CSVSource reads delivery orders from a delimited file.
type CSVSource struct {
	path      string
	delimiter rune
}

// NewCSVSource returns a source for the file at path. A zero delimiter means ','.
func NewCSVSource(path string, delimiter rune) *CSVSource {
	if delimiter == 0 {
		delimiter = ','
	}
	return &CSVSource{path: path, delimiter: delimiter}
}

// Load parses the file into RawRecords. Every column is read as text; cells
// keep their exact content, including surrounding whitespace.
func (s *CSVSource) Load(ctx context.Context) ([]*models.RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, &models.LoadError{Source: s.path, Err: err}
	}
	defer f.Close()

	df := dataframe.ReadCSV(f,
		dataframe.WithDelimiter(s.delimiter),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues([]string{"NaN"}),
	)
	if df.Err != nil {
		return nil, &models.LoadError{Source: s.path, Err: df.Err}
	}

	present := make(map[string]bool)
	for _, name := range df.Names() {
		present[name] = true
	}
	var missing []string
	for _, col := range RequiredColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &models.LoadError{Source: s.path, Err: fmt.Errorf("%w: %v", models.ErrMissingColumns, missing)}
	}

	columns := make(map[string][]string, len(AllColumns))
	for _, col := range AllColumns {
		if present[col] {
			columns[col] = df.Col(col).Records()
		}
	}

	records := make([]*models.RawRecord, df.Nrow())
	for i := range records {
		records[i] = recordFromColumns(i+1, func(col string) string {
			values, ok := columns[col]
			if !ok {
				return ""
			}
			return values[i]
		})
	}
	return records, nil
}

// Identity combines the absolute path, size and modification time of the file.
func (s *CSVSource) Identity(ctx context.Context) (string, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return "", &models.LoadError{Source: s.path, Err: err}
	}
	abs, err := filepath.Abs(s.path)
	if err != nil {
		abs = s.path
	}
	return fmt.Sprintf("csv:%s:%d:%d", abs, info.Size(), info.ModTime().UnixNano()), nil
}

func (s *CSVSource) Close() error { return nil }
