package sheet

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CSVReader reads rows from a comma-separated file. The whole file is one
// sheet named after the file.
type CSVReader struct {
	file    *os.File
	name    string
	options Options
	comma   rune
}

// OpenCSV opens the CSV file at path.
func OpenCSV(path string, options Options) (*CSVReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv %s: %w", path, err)
	}
	return &CSVReader{
		file:    f,
		name:    filepath.Base(path),
		options: options.normalize(),
		comma:   ',',
	}, nil
}

// Rows implements Reader.
func (r *CSVReader) Rows(ctx context.Context) ([]Row, error) {
	cr := csv.NewReader(r.file)
	cr.Comma = r.comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var out []Row
	line := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cells, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv %s: %w", r.name, err)
		}
		line++
		if line < r.options.StartRow {
			continue
		}
		out = append(out, r.options.rowFromCells(r.name, line, cells))
	}
	return out, nil
}

// Close implements Reader.
func (r *CSVReader) Close() error {
	return r.file.Close()
}
