package sheet

import (
	"context"
	"fmt"
	"slices"

	"github.com/xuri/excelize/v2"
)

// XLSXReader reads rows from an Excel workbook.
type XLSXReader struct {
	file    *excelize.File
	options Options
}

// OpenXLSX opens the workbook at path.
func OpenXLSX(path string, options Options) (*XLSXReader, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	return &XLSXReader{file: f, options: options.normalize()}, nil
}

// Sheets returns the worksheets that will be read, in workbook order.
func (r *XLSXReader) Sheets() ([]string, error) {
	all := r.file.GetSheetList()
	if len(r.options.Sheets) == 0 {
		return all, nil
	}
	for _, name := range r.options.Sheets {
		if !slices.Contains(all, name) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownSheet, name)
		}
	}
	var selected []string
	for _, name := range all {
		if slices.Contains(r.options.Sheets, name) {
			selected = append(selected, name)
		}
	}
	return selected, nil
}

// Rows implements Reader.
func (r *XLSXReader) Rows(ctx context.Context) ([]Row, error) {
	sheets, err := r.Sheets()
	if err != nil {
		return nil, err
	}

	var out []Row
	for _, name := range sheets {
		rows, err := r.sheetRows(ctx, name)
		if err != nil {
			return nil, err
		}
		out = append(out, rows...)
	}
	return out, nil
}

func (r *XLSXReader) sheetRows(ctx context.Context, name string) ([]Row, error) {
	iter, err := r.file.Rows(name)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", name, err)
	}
	defer iter.Close()

	var out []Row
	line := 0
	for iter.Next() {
		line++
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if line < r.options.StartRow {
			continue
		}
		cells, err := iter.Columns()
		if err != nil {
			return nil, fmt.Errorf("read sheet %s row %d: %w", name, line, err)
		}
		out = append(out, r.options.rowFromCells(name, line, cells))
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", name, err)
	}
	return out, nil
}

// Close implements Reader.
func (r *XLSXReader) Close() error {
	return r.file.Close()
}
