// Package render formats deposit tables, summaries, profiles and scenario
// results for the terminal and as Markdown.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/emcdo411/greenland-ree-dashboard/internal/deposit"
)

var printer = message.NewPrinter(language.English)

// Number formats v with thousands separators and the given decimals.
func Number(v float64, decimals int) string {
	return printer.Sprint(number.Decimal(v, number.Scale(decimals)))
}

// Signed formats a score change with an explicit sign.
func Signed(v float64) string {
	if v > 0 {
		return "+" + Number(v, 1)
	}
	return Number(v, 1)
}

func newTabWriter(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(v), "render: encode JSON")
}

// Deposits writes the ranking table.
func Deposits(out io.Writer, t deposit.Table) error {
	w := newTabWriter(out)
	_, _ = fmt.Fprintln(w, "NAME\tOWNER\tSTATUS\tSCORE\tBAND\tCATEGORY\tOWNERSHIP\tURANIUM\tRESOURCE_MT\tTREO_KT")
	_, _ = fmt.Fprintln(w, "----\t-----\t------\t-----\t----\t--------\t---------\t-------\t-----------\t-------")
	for _, d := range t.Rows() {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			d.Name,
			truncate(d.Owner, 28),
			d.Status,
			Number(d.StrategicScore, 1),
			deposit.BandOf(d.StrategicScore),
			d.ScoreCategory,
			d.OwnershipType,
			d.UraniumStatus,
			Number(d.ResourceMt, 1),
			Number(d.ContainedTREOKt, 0),
		)
	}
	return eris.Wrap(w.Flush(), "render: flush deposits")
}

// Summary writes headline indicators followed by optional describe statistics.
func Summary(out io.Writer, s deposit.Summary, stats []deposit.ColumnStats) error {
	w := newTabWriter(out)
	_, _ = fmt.Fprintf(w, "Deposits\t%d\n", s.Deposits)
	_, _ = fmt.Fprintf(w, "Total resource (Mt)\t%s\n", Number(s.TotalResourceMt, 1))
	_, _ = fmt.Fprintf(w, "Contained TREO (kt)\t%s\n", Number(s.ContainedTREOKt, 0))
	_, _ = fmt.Fprintf(w, "Avg heavy REE (%%)\t%s\n", Number(s.AvgHeavyREEPct, 1))
	_, _ = fmt.Fprintf(w, "Uranium blocked (%%)\t%s\n", Number(s.UraniumBlockedPct, 1))
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintln(w, "OWNERSHIP\tRESOURCE_MT")
	for _, k := range []string{deposit.OwnershipWestern, deposit.OwnershipChinese} {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", k, Number(s.ResourceByOwnership[k], 1))
	}
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintln(w, "URANIUM\tCOUNT")
	for _, k := range []string{deposit.UraniumClear, deposit.UraniumBlocked} {
		_, _ = fmt.Fprintf(w, "%s\t%d\n", k, s.UraniumStatusCounts[k])
	}
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintln(w, "BAND\tCOUNT")
	for _, k := range []string{deposit.BandStrong, deposit.BandModerate, deposit.BandWeak} {
		_, _ = fmt.Fprintf(w, "%s\t%d\n", k, s.BandCounts[k])
	}

	if len(stats) > 0 {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, "COLUMN\tCOUNT\tMEAN\tSTD\tMIN\t25%\t50%\t75%\tMAX")
		for _, c := range stats {
			_, _ = fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				c.Column, c.Count,
				Number(c.Mean, 2), Number(c.Std, 2), Number(c.Min, 2),
				Number(c.P25, 2), Number(c.Median, 2), Number(c.P75, 2), Number(c.Max, 2),
			)
		}
	}
	return eris.Wrap(w.Flush(), "render: flush summary")
}

// Profile writes the five-lens breakdown of one deposit.
func Profile(out io.Writer, p deposit.Profile) error {
	_, _ = fmt.Fprintf(out, "%s (%s, %s)\nStrategic score: %s [%s]\n\n",
		p.Name, p.Owner, p.Status, Number(p.StrategicScore, 1), p.Band)

	w := newTabWriter(out)
	_, _ = fmt.Fprintln(w, "LENS\tSCORE\tBAND\t\tDESCRIPTION")
	for _, l := range p.Lenses {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", l.Label, Number(l.Score, 0), l.Band, bar(l.Score), l.Description)
	}
	return eris.Wrap(w.Flush(), "render: flush profile")
}

// Comparison writes two profiles side by side with per-lens deltas.
func Comparison(out io.Writer, c deposit.Comparison) error {
	w := newTabWriter(out)
	_, _ = fmt.Fprintf(w, "LENS\t%s\t%s\tDELTA\n", c.Base.Name, c.Other.Name)
	for _, l := range c.Lenses {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", l.Label, Number(l.Base, 0), Number(l.Other, 0), Signed(l.Delta))
	}
	_, _ = fmt.Fprintf(w, "Strategic\t%s\t%s\t%s\n",
		Number(c.Base.StrategicScore, 1), Number(c.Other.StrategicScore, 1), Signed(c.StrategicDelta))
	return eris.Wrap(w.Flush(), "render: flush comparison")
}

// bar draws a 0-100 score as a ten-cell gauge.
func bar(score float64) string {
	n := int(score/10 + 0.5)
	n = min(max(n, 0), 10)
	return strings.Repeat("#", n) + strings.Repeat(".", 10-n)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
