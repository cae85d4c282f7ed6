package sheet

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "codes.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestCSVReader_Rows(t *testing.T) {
	path := writeCSV(t, "Code,Descriptor,Change\n"+
		"A,Archives. Records of an institution.,\n"+
		"A1,Cataloguing. Methods of recording.,K\n"+
		",,\n"+
		"AA\n")

	options := DefaultOptions()
	options.StartRow = 2

	r, err := OpenCSV(path, options)
	require.NoError(t, err)
	defer r.Close()

	rows, err := r.Rows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, Row{Sheet: "codes.csv", Line: 2, Code: "A", Descriptor: "Archives. Records of an institution."}, rows[0])
	assert.Equal(t, "K", rows[1].Change)
	assert.Equal(t, "", rows[2].Code)
	assert.Equal(t, Row{Sheet: "codes.csv", Line: 5, Code: "AA"}, rows[3])
}

func TestCSVReader_CustomColumns(t *testing.T) {
	path := writeCSV(t, "x,A1,Label,K2 note\n")

	r, err := OpenCSV(path, Options{StartRow: 1, CodeColumn: 2, DescriptorColumn: 3, ChangeColumn: 4})
	require.NoError(t, err)
	defer r.Close()

	rows, err := r.Rows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "A1", rows[0].Code)
	assert.Equal(t, "Label", rows[0].Descriptor)
	assert.Equal(t, "K2 note", rows[0].Change)
}

func TestCSVReader_Cancelled(t *testing.T) {
	path := writeCSV(t, "A,Label\n")
	r, err := OpenCSV(path, DefaultOptions())
	require.NoError(t, err)
	defer r.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Rows(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func writeWorkbook(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	_, err := f.NewSheet("Second")
	require.NoError(t, err)

	// Title block above the data, as in the published workbooks.
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "Classification"))
	require.NoError(t, f.SetCellValue("Sheet1", "A7", "A"))
	require.NoError(t, f.SetCellValue("Sheet1", "B7", "Archives"))
	require.NoError(t, f.SetCellValue("Sheet1", "A8", "A1"))
	require.NoError(t, f.SetCellValue("Sheet1", "B8", "Cataloguing. Methods."))
	require.NoError(t, f.SetCellValue("Sheet1", "C8", "K"))
	require.NoError(t, f.SetCellValue("Second", "A7", "B"))
	require.NoError(t, f.SetCellValue("Second", "B7", "Buildings"))

	path := filepath.Join(t.TempDir(), "codes.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestXLSXReader_Rows(t *testing.T) {
	path := writeWorkbook(t)

	r, err := OpenXLSX(path, DefaultOptions())
	require.NoError(t, err)
	defer r.Close()

	rows, err := r.Rows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, Row{Sheet: "Sheet1", Line: 7, Code: "A", Descriptor: "Archives"}, rows[0])
	assert.Equal(t, Row{Sheet: "Sheet1", Line: 8, Code: "A1", Descriptor: "Cataloguing. Methods.", Change: "K"}, rows[1])
	assert.Equal(t, Row{Sheet: "Second", Line: 7, Code: "B", Descriptor: "Buildings"}, rows[2])
}

func TestXLSXReader_SelectedSheets(t *testing.T) {
	path := writeWorkbook(t)

	options := DefaultOptions()
	options.Sheets = []string{"Second"}
	r, err := OpenXLSX(path, options)
	require.NoError(t, err)
	defer r.Close()

	rows, err := r.Rows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "B", rows[0].Code)
}

func TestXLSXReader_UnknownSheet(t *testing.T) {
	path := writeWorkbook(t)

	options := DefaultOptions()
	options.Sheets = []string{"Missing"}
	r, err := OpenXLSX(path, options)
	require.NoError(t, err)
	defer r.Close()

	_, err = r.Rows(context.Background())
	assert.ErrorIs(t, err, ErrUnknownSheet)
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()

	assert.Equal(t, []string{".csv", ".xlsm", ".xlsx"}, reg.Extensions())
	assert.True(t, reg.Supports("input/owcm_full.XLSX"))
	assert.False(t, reg.Supports("notes.md"))

	_, err := reg.Open("notes.md", DefaultOptions())
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	path := writeCSV(t, "A,Archives\n")
	r, err := reg.Open(path, Options{StartRow: 1, CodeColumn: 1, DescriptorColumn: 2})
	require.NoError(t, err)
	defer r.Close()

	rows, err := r.Rows(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestRegistry_Register(t *testing.T) {
	reg := NewRegistry()
	reg.Register("tsv", func(path string, options Options) (Reader, error) {
		r, err := OpenCSV(path, options)
		if err != nil {
			return nil, err
		}
		r.comma = '\t'
		return r, nil
	})
	assert.True(t, reg.Supports("codes.tsv"))
}
