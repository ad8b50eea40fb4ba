package main

import (
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/emcdo411/greenland-ree-dashboard/internal/deposit"
	"github.com/emcdo411/greenland-ree-dashboard/internal/render"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show portfolio KPIs and column statistics",
	RunE: func(cmd *cobra.Command, _ []string) error {
		t, err := loadTable(cmd.Context())
		if err != nil {
			return err
		}
		f, err := filterFromFlags(cmd)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		return showSummary(os.Stdout, t.Filter(f), format)
	},
}

func showSummary(out io.Writer, t deposit.Table, format string) error {
	stats, err := deposit.Describe(t)
	if err != nil {
		return err
	}
	s := deposit.Summarize(t)

	switch format {
	case "table", "":
		return render.Summary(out, s, stats)
	case "json":
		return render.JSON(out, struct {
			Summary deposit.Summary       `json:"summary"`
			Stats   []deposit.ColumnStats `json:"stats"`
		}{s, stats})
	default:
		return eris.Errorf("unknown format %q (table, json)", format)
	}
}

func init() {
	addFilterFlags(summaryCmd)
	summaryCmd.Flags().String("format", "table", "output format: table, json")
	rootCmd.AddCommand(summaryCmd)
}
