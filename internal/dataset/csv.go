// Package dataset loads and writes deposit tables: the bundled baseline,
// CSV files and XLSX workbooks.
package dataset

import (
	"context"
	"encoding/csv"
	"io"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/emcdo411/greenland-ree-dashboard/internal/deposit"
)

// CSVOptions configures the CSV reader.
type CSVOptions struct {
	Delimiter rune // default ','
	Comment   rune // comment character (0 = none)
}

// streamRecords reads CSV records and sends them to a channel. Both channels
// are closed when processing completes.
func streamRecords(ctx context.Context, r io.Reader, opts CSVOptions) (<-chan []string, <-chan error) {
	rowCh := make(chan []string, 16)
	errCh := make(chan error, 1)

	go func() {
		defer close(rowCh)
		defer close(errCh)

		reader := csv.NewReader(r)
		if opts.Delimiter != 0 {
			reader.Comma = opts.Delimiter
		}
		if opts.Comment != 0 {
			reader.Comment = opts.Comment
		}
		reader.FieldsPerRecord = -1

		for {
			if ctx.Err() != nil {
				errCh <- eris.Wrap(ctx.Err(), "csv: context cancelled")
				return
			}

			record, err := reader.Read()
			if err == io.EOF {
				return
			}
			if err != nil {
				errCh <- eris.Wrap(err, "csv: read row")
				return
			}

			select {
			case rowCh <- record:
			case <-ctx.Done():
				errCh <- eris.Wrap(ctx.Err(), "csv: context cancelled")
				return
			}
		}
	}()

	return rowCh, errCh
}

// ReadCSV decodes a deposit table. The first record is the header; columns
// are matched by name, derived columns are ignored and recomputed.
func ReadCSV(ctx context.Context, r io.Reader, opts CSVOptions) (deposit.Table, error) {
	rowCh, errCh := streamRecords(ctx, r, opts)

	var records [][]string
	for rec := range rowCh {
		records = append(records, rec)
	}
	for err := range errCh {
		if err != nil {
			return deposit.Table{}, err
		}
	}

	return decodeRecords(records)
}

// decodeRecords turns a header plus data records into a table.
func decodeRecords(records [][]string) (deposit.Table, error) {
	if len(records) == 0 {
		return deposit.Table{}, eris.New("dataset: no header row")
	}

	header := records[0]
	mapping, err := headerMapping(header)
	if err != nil {
		return deposit.Table{}, err
	}

	rows := make([]deposit.Deposit, 0, len(records)-1)
	for i, rec := range records[1:] {
		if isBlank(rec) {
			continue
		}
		var d deposit.Deposit
		for idx, col := range mapping {
			if idx >= len(rec) {
				continue
			}
			if err := col.Set(&d, rec[idx]); err != nil {
				return deposit.Table{}, eris.Wrapf(err, "dataset: record %d", i+2)
			}
		}
		rows = append(rows, d)
	}

	return deposit.NewTable(rows)
}

// headerMapping maps record positions to source columns and checks that every
// required column is present.
func headerMapping(header []string) (map[int]deposit.Column, error) {
	mapping := make(map[int]deposit.Column, len(header))
	present := make(map[string]bool, len(header))
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		col, ok := deposit.LookupColumn(h)
		if !ok || col.Derived {
			continue
		}
		mapping[i] = col
		present[col.Name] = true
	}

	var missing []string
	for _, name := range deposit.RequiredColumns {
		if !present[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, eris.Errorf("dataset: missing required columns: %s", strings.Join(missing, ", "))
	}
	return mapping, nil
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// WriteCSV writes the table with a header row of field names followed by any
// extra numeric columns.
func WriteCSV(w io.Writer, t deposit.Table, extras ...Extra) error {
	header, rows, err := Records(t, extras...)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "dataset: write CSV header")
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "dataset: write CSV row")
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "dataset: flush CSV")
}
