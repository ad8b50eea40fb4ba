package deposit

import (
	"math"
	"sort"

	"github.com/rotisserie/eris"
)

// ColumnStats mirrors a spreadsheet "describe" row for one numeric column.
type ColumnStats struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	P25    float64 `json:"p25"`
	Median float64 `json:"p50"`
	P75    float64 `json:"p75"`
	Max    float64 `json:"max"`
}

// Describe computes summary statistics for the named numeric columns, or for
// every numeric column when none are given. Std is the sample standard
// deviation. Statistics that need more rows than available are left at 0.
func Describe(t Table, names ...string) ([]ColumnStats, error) {
	if len(names) == 0 {
		names = NumericColumns()
	}

	out := make([]ColumnStats, 0, len(names))
	for _, name := range names {
		col, ok := LookupColumn(name)
		if !ok {
			return nil, eris.Errorf("deposit: unknown column %q", name)
		}
		if !col.Numeric {
			continue
		}

		values := make([]float64, len(t.rows))
		for i, d := range t.rows {
			values[i] = col.Float(d)
		}
		out = append(out, describeValues(col.Name, values))
	}
	return out, nil
}

func describeValues(name string, values []float64) ColumnStats {
	s := ColumnStats{Column: name, Count: len(values)}
	if len(values) == 0 {
		return s
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	s.Mean = sum / float64(len(sorted))

	if len(sorted) > 1 {
		var ss float64
		for _, v := range sorted {
			ss += (v - s.Mean) * (v - s.Mean)
		}
		s.Std = math.Sqrt(ss / float64(len(sorted)-1))
	}

	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	s.P25 = quantile(sorted, 0.25)
	s.Median = quantile(sorted, 0.5)
	s.P75 = quantile(sorted, 0.75)
	return s
}

// quantile uses linear interpolation between closest ranks.
func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}
