// Package sheet reads classification rows from tabular files.
//
// Each row exposes up to three logical cells: the code, the descriptor and
// the change indicator. Readers return rows in file order, worksheet by
// worksheet.
package sheet

import (
	"context"
	"errors"
)

// Row is one tabular row of a classification scheme.
type Row struct {
	// Sheet is the worksheet name (empty for single-table formats).
	Sheet string

	// Line is the 1-based row number within the sheet.
	Line int

	Code       string
	Descriptor string
	Change     string
}

// Reader reads every row of an opened source.
type Reader interface {
	// Rows returns all rows in file order.
	Rows(ctx context.Context) ([]Row, error)

	// Close releases the underlying file.
	Close() error
}

// Options control which part of a file is read.
type Options struct {
	// Sheets limits reading to the named worksheets. Empty reads all.
	Sheets []string

	// StartRow is the first 1-based row holding data.
	StartRow int

	// CodeColumn, DescriptorColumn and ChangeColumn are 1-based column
	// indexes. Zero disables the descriptor or change column.
	CodeColumn       int
	DescriptorColumn int
	ChangeColumn     int
}

// DefaultStartRow skips the title block of the published workbooks.
const DefaultStartRow = 7

// DefaultOptions returns options matching the published workbook layout:
// data from row 7, code / descriptor / change in columns A, B, C.
func DefaultOptions() Options {
	return Options{
		StartRow:         DefaultStartRow,
		CodeColumn:       1,
		DescriptorColumn: 2,
		ChangeColumn:     3,
	}
}

// ErrUnknownSheet is returned when a requested worksheet does not exist.
var ErrUnknownSheet = errors.New("worksheet not found")

// ErrUnsupportedFormat is returned when no reader handles a file.
var ErrUnsupportedFormat = errors.New("unsupported source format")

// normalize fills zero values with defaults.
func (o Options) normalize() Options {
	if o.StartRow < 1 {
		o.StartRow = 1
	}
	if o.CodeColumn < 1 {
		o.CodeColumn = 1
	}
	return o
}

// rowFromCells picks the configured columns out of cells.
func (o Options) rowFromCells(sheetName string, line int, cells []string) Row {
	return Row{
		Sheet:      sheetName,
		Line:       line,
		Code:       cell(cells, o.CodeColumn),
		Descriptor: cell(cells, o.DescriptorColumn),
		Change:     cell(cells, o.ChangeColumn),
	}
}

// cell returns the 1-based column of cells, or "" when absent.
func cell(cells []string, column int) string {
	if column < 1 || column > len(cells) {
		return ""
	}
	return cells[column-1]
}
