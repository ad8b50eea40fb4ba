package dataset

import (
	"strconv"
	"time"

	"github.com/rotisserie/eris"

	"github.com/emcdo411/greenland-ree-dashboard/internal/deposit"
)

// Extra is an additional numeric column appended after the deposit columns,
// such as a scenario's score_change. Values align with table rows.
type Extra struct {
	Name   string
	Values []float64
}

// Records flattens a table into a header and string rows.
func Records(t deposit.Table, extras ...Extra) ([]string, [][]string, error) {
	for _, e := range extras {
		if len(e.Values) != t.Len() {
			return nil, nil, eris.Errorf("dataset: column %s has %d values for %d rows", e.Name, len(e.Values), t.Len())
		}
	}

	cols := deposit.Columns()
	header := deposit.ColumnNames()
	for _, e := range extras {
		header = append(header, e.Name)
	}

	rows := make([][]string, t.Len())
	for i, d := range t.Rows() {
		row := make([]string, 0, len(header))
		for _, c := range cols {
			row = append(row, c.Format(d))
		}
		for _, e := range extras {
			row = append(row, strconv.FormatFloat(e.Values[i], 'f', -1, 64))
		}
		rows[i] = row
	}
	return header, rows, nil
}

// FileStem returns the default export file name without extension, e.g.
// "greenland_ree_20260118".
func FileStem(prefix string, now time.Time) string {
	if prefix == "" {
		prefix = "greenland_ree"
	}
	return prefix + "_" + now.Format("20060102")
}
