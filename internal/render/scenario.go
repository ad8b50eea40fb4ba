package render

import (
	"fmt"
	"io"

	"github.com/rotisserie/eris"

	"github.com/emcdo411/greenland-ree-dashboard/internal/scenario"
)

// Scenario writes the scenario settings, leadership check, top movers and the
// adjusted ranking.
func Scenario(out io.Writer, res scenario.Result, top int) error {
	c := res.Config
	_, _ = fmt.Fprintf(out, "Scenario: uranium=%s chinese=%s investment=$%sB price=%s (price effect: %s)\n\n",
		c.UraniumPolicy, c.ChinesePolicy, Number(c.InvestmentUSDBillion, 1), c.PriceEnvironment, res.PriceEffect)

	l := res.Leaders()
	if l.Changed {
		_, _ = fmt.Fprintf(out, "Leader changes: %s -> %s\n\n", l.Baseline, l.Scenario)
	} else {
		_, _ = fmt.Fprintf(out, "Leader unchanged: %s\n\n", l.Scenario)
	}

	w := newTabWriter(out)
	_, _ = fmt.Fprintln(w, "TOP MOVERS\tSCORE\tCHANGE")
	for _, m := range res.TopMovers(top) {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", m.Name, Number(m.StrategicScore, 1), Signed(m.ScoreChange))
	}
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintln(w, "NAME\tBASELINE\tSCENARIO\tCHANGE\tREG\tOWN\tINFRA\tGEOPOL\tCATEGORY")
	for _, r := range res.Rows {
		a := r.Adjusted
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			a.Name,
			Number(r.Baseline.StrategicScore, 1),
			Number(a.StrategicScore, 1),
			Signed(r.ScoreChange),
			Number(a.RegulatoryScore, 0),
			Number(a.OwnershipScore, 0),
			Number(a.InfrastructureScore, 0),
			Number(a.GeopoliticalScore, 0),
			a.ScoreCategory,
		)
	}
	return eris.Wrap(w.Flush(), "render: flush scenario")
}

// ScenarioMarkdown writes the scenario as a Markdown report.
func ScenarioMarkdown(out io.Writer, res scenario.Result, top int) error {
	c := res.Config
	l := res.Leaders()

	var err error
	p := func(format string, args ...any) {
		if err == nil {
			_, err = fmt.Fprintf(out, format, args...)
		}
	}

	p("# Scenario report\n\n")
	p("| Setting | Value |\n|---|---|\n")
	p("| Uranium policy | `%s` |\n", c.UraniumPolicy)
	p("| Chinese investment policy | `%s` |\n", c.ChinesePolicy)
	p("| Infrastructure investment | $%sB |\n", Number(c.InvestmentUSDBillion, 1))
	p("| Price environment | `%s` (effect: %s) |\n\n", c.PriceEnvironment, res.PriceEffect)

	if l.Changed {
		p("**Leader changes:** %s → %s\n\n", l.Baseline, l.Scenario)
	} else {
		p("**Leader unchanged:** %s\n\n", l.Scenario)
	}

	p("## Top movers\n\n| Deposit | Scenario score | Change |\n|---|---:|---:|\n")
	for _, m := range res.TopMovers(top) {
		p("| %s | %s | %s |\n", m.Name, Number(m.StrategicScore, 1), Signed(m.ScoreChange))
	}

	p("\n## All deposits\n\n| Deposit | Baseline | Scenario | Change | Category |\n|---|---:|---:|---:|---|\n")
	for _, r := range res.Rows {
		p("| %s | %s | %s | %s | %s |\n",
			r.Adjusted.Name,
			Number(r.Baseline.StrategicScore, 1),
			Number(r.Adjusted.StrategicScore, 1),
			Signed(r.ScoreChange),
			r.Adjusted.ScoreCategory,
		)
	}
	return eris.Wrap(err, "render: write markdown")
}
