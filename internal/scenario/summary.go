package scenario

import (
	"sort"

	"github.com/emcdo411/greenland-ree-dashboard/internal/deposit"
)

// Mover is a deposit ranked by how far its strategic score moved.
type Mover struct {
	Name           string  `json:"name"`
	StrategicScore float64 `json:"strategic_score"`
	ScoreChange    float64 `json:"score_change"`
}

// Leadership compares the top-ranked deposit before and after a scenario.
type Leadership struct {
	Baseline string `json:"baseline"`
	Scenario string `json:"scenario"`
	Changed  bool   `json:"changed"`
}

// TopMovers returns up to n rows ordered by score change, largest gain
// first. Ties keep table order. n <= 0 returns every row.
func (r Result) TopMovers(n int) []Mover {
	movers := make([]Mover, len(r.Rows))
	for i, row := range r.Rows {
		movers[i] = Mover{
			Name:           row.Adjusted.Name,
			StrategicScore: row.Adjusted.StrategicScore,
			ScoreChange:    row.ScoreChange,
		}
	}
	sort.SliceStable(movers, func(i, j int) bool {
		return movers[i].ScoreChange > movers[j].ScoreChange
	})
	if n > 0 && len(movers) > n {
		movers = movers[:n]
	}
	return movers
}

// Leaders reports the baseline and scenario leaders. Both are empty for an
// empty result.
func (r Result) Leaders() Leadership {
	var l Leadership
	if b, ok := r.BaselineTable().Leader(); ok {
		l.Baseline = b.Name
	}
	if s, ok := r.Adjusted().Leader(); ok {
		l.Scenario = s.Name
	}
	l.Changed = l.Baseline != l.Scenario
	return l
}

// Adjusted returns the scenario rows as a table.
func (r Result) Adjusted() deposit.Table {
	rows := make([]deposit.Deposit, len(r.Rows))
	for i, row := range r.Rows {
		rows[i] = row.Adjusted
	}
	t, _ := deposit.NewTable(rows) // names come from a valid table
	return t
}

// BaselineTable returns the baseline rows the scenario was applied to.
func (r Result) BaselineTable() deposit.Table {
	rows := make([]deposit.Deposit, len(r.Rows))
	for i, row := range r.Rows {
		rows[i] = row.Baseline
	}
	t, _ := deposit.NewTable(rows)
	return t
}

// ScoreChanges returns the per-row score change aligned with Rows.
func (r Result) ScoreChanges() []float64 {
	out := make([]float64, len(r.Rows))
	for i, row := range r.Rows {
		out[i] = row.ScoreChange
	}
	return out
}

// Changed returns the rows whose strategic score moved.
func (r Result) Changed() []Row {
	var out []Row
	for _, row := range r.Rows {
		if row.ScoreChange != 0 {
			out = append(out, row)
		}
	}
	return out
}
