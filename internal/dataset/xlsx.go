package dataset

import (
	"io"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/emcdo411/greenland-ree-dashboard/internal/deposit"
)

// SheetName is the worksheet written by WriteXLSX.
const SheetName = "deposits"

// XLSXOptions configures the XLSX reader.
type XLSXOptions struct {
	SheetIndex int    // default 0
	SheetName  string // if set, overrides SheetIndex
}

// ReadXLSX decodes a deposit table from a workbook. The first row of the
// sheet is the header.
func ReadXLSX(path string, opts XLSXOptions) (deposit.Table, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return deposit.Table{}, eris.Wrap(err, "xlsx: open file")
	}

	sheet, err := getSheet(f, opts)
	if err != nil {
		return deposit.Table{}, err
	}

	records := make([][]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		records = append(records, rowToStrings(row))
	}
	return decodeRecords(records)
}

// WriteXLSX writes the table to a single-sheet workbook. Numeric columns are
// stored as numbers.
func WriteXLSX(w io.Writer, t deposit.Table, extras ...Extra) error {
	header, rows, err := Records(t, extras...)
	if err != nil {
		return err
	}

	numeric := make([]bool, len(header))
	for i, name := range header {
		if col, ok := deposit.LookupColumn(name); ok {
			numeric[i] = col.Numeric
		} else {
			numeric[i] = true
		}
	}

	f := xlsx.NewFile()
	sheet, err := f.AddSheet(SheetName)
	if err != nil {
		return eris.Wrap(err, "xlsx: add sheet")
	}

	hr := sheet.AddRow()
	for _, h := range header {
		hr.AddCell().SetString(h)
	}

	for _, row := range rows {
		xr := sheet.AddRow()
		for i, v := range row {
			cell := xr.AddCell()
			if numeric[i] {
				if n, err := strconv.ParseFloat(v, 64); err == nil {
					cell.SetFloat(n)
					continue
				}
			}
			cell.SetString(v)
		}
	}

	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "xlsx: write workbook")
	}
	return nil
}

func getSheet(f *xlsx.File, opts XLSXOptions) (*xlsx.Sheet, error) {
	if opts.SheetName != "" {
		sheet, ok := f.Sheet[opts.SheetName]
		if !ok {
			return nil, eris.Errorf("xlsx: sheet %q not found", opts.SheetName)
		}
		return sheet, nil
	}

	if opts.SheetIndex >= len(f.Sheets) {
		return nil, eris.Errorf("xlsx: sheet index %d out of range (file has %d sheets)", opts.SheetIndex, len(f.Sheets))
	}

	return f.Sheets[opts.SheetIndex], nil
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cell.String()
	}
	return cells
}
