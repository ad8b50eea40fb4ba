package deposit

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
)

// Table is an ordered, immutable set of deposits keyed by name. All accessors
// hand out copies, so a Table can be shared across goroutines.
type Table struct {
	rows  []Deposit
	index map[string]int
}

// NewTable copies rows, derives their computed fields and checks that names
// are present and unique, every numeric field is finite, and the scores and
// Chinese stake lie within [0, 100].
func NewTable(rows []Deposit) (Table, error) {
	t := Table{
		rows:  make([]Deposit, len(rows)),
		index: make(map[string]int, len(rows)),
	}
	var errs []string
	for i, d := range rows {
		d.Derive()
		if strings.TrimSpace(d.Name) == "" {
			errs = append(errs, fmt.Sprintf("row %d: empty name", i+1))
		} else if _, dup := t.index[d.Name]; dup {
			errs = append(errs, "duplicate name "+d.Name)
		}
		errs = append(errs, checkRange(i, d)...)
		t.rows[i] = d
		t.index[d.Name] = i
	}
	if len(errs) > 0 {
		return Table{}, eris.Errorf("deposit: invalid table: %s", strings.Join(errs, "; "))
	}
	return t, nil
}

// percentColumns hold values on a 0-100 scale.
var percentColumns = []string{
	"chinese_stake_pct",
	"geological_score",
	"regulatory_score",
	"ownership_score",
	"infrastructure_score",
	"geopolitical_score",
	"strategic_score",
}

func checkRange(i int, d Deposit) []string {
	var errs []string
	for _, c := range Columns() {
		if !c.Numeric || c.Derived {
			continue
		}
		if v := c.Float(d); math.IsNaN(v) || math.IsInf(v, 0) {
			errs = append(errs, fmt.Sprintf("row %d: %s must be finite", i+1, c.Name))
		}
	}
	for _, name := range percentColumns {
		c, _ := LookupColumn(name)
		if v := c.Float(d); v < 0 || v > 100 {
			errs = append(errs, fmt.Sprintf("row %d: %s %g outside [0, 100]", i+1, name, v))
		}
	}
	return errs
}

// fromTrusted builds a table from rows already derived and known unique.
func fromTrusted(rows []Deposit) Table {
	t := Table{rows: rows, index: make(map[string]int, len(rows))}
	for i, d := range rows {
		t.index[d.Name] = i
	}
	return t
}

// Len returns the number of rows.
func (t Table) Len() int { return len(t.rows) }

// Rows returns a copy of the rows in table order.
func (t Table) Rows() []Deposit {
	out := make([]Deposit, len(t.rows))
	copy(out, t.rows)
	return out
}

// At returns a copy of row i.
func (t Table) At(i int) Deposit { return t.rows[i] }

// Find returns the deposit with the given name.
func (t Table) Find(name string) (Deposit, bool) {
	i, ok := t.index[name]
	if !ok {
		return Deposit{}, false
	}
	return t.rows[i], true
}

// Names returns deposit names in table order.
func (t Table) Names() []string {
	names := make([]string, len(t.rows))
	for i, d := range t.rows {
		names[i] = d.Name
	}
	return names
}

// Statuses returns the distinct project statuses in first-seen order.
func (t Table) Statuses() []string {
	seen := make(map[string]bool)
	var out []string
	for _, d := range t.rows {
		if !seen[d.Status] {
			seen[d.Status] = true
			out = append(out, d.Status)
		}
	}
	return out
}

// Filter returns the rows matching f, preserving order.
func (t Table) Filter(f Filter) Table {
	var rows []Deposit
	for _, d := range t.rows {
		if f.Match(d) {
			rows = append(rows, d)
		}
	}
	return fromTrusted(rows)
}

// SortBy returns a copy of the table stably ordered by the named column.
func (t Table) SortBy(column string, desc bool) (Table, error) {
	col, ok := LookupColumn(column)
	if !ok {
		return Table{}, eris.Errorf("deposit: unknown sort column %q", column)
	}
	rows := t.Rows()
	sort.SliceStable(rows, func(i, j int) bool {
		if col.Numeric {
			a, b := col.Float(rows[i]), col.Float(rows[j])
			if desc {
				return a > b
			}
			return a < b
		}
		a, b := col.Format(rows[i]), col.Format(rows[j])
		if desc {
			return a > b
		}
		return a < b
	})
	return fromTrusted(rows), nil
}

// Leader returns the first deposit holding the highest strategic score.
func (t Table) Leader() (Deposit, bool) {
	if len(t.rows) == 0 {
		return Deposit{}, false
	}
	best := 0
	for i, d := range t.rows {
		if d.StrategicScore > t.rows[best].StrategicScore {
			best = i
		}
	}
	return t.rows[best], true
}
