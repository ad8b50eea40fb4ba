package main

import (
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/emcdo411/greenland-ree-dashboard/internal/dataset"
	"github.com/emcdo411/greenland-ree-dashboard/internal/deposit"
	"github.com/emcdo411/greenland-ree-dashboard/internal/render"
)

var depositsCmd = &cobra.Command{
	Use:   "deposits",
	Short: "List deposits",
	Long:  "Lists deposits matching the filters, optionally sorted by any column.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		t, err := loadTable(cmd.Context())
		if err != nil {
			return err
		}
		f, err := filterFromFlags(cmd)
		if err != nil {
			return err
		}
		sortCol, _ := cmd.Flags().GetString("sort")
		desc, _ := cmd.Flags().GetBool("desc")
		format, _ := cmd.Flags().GetString("format")

		return listDeposits(os.Stdout, t, f, sortCol, desc, format)
	},
}

func listDeposits(out io.Writer, t deposit.Table, f deposit.Filter, sortCol string, desc bool, format string) error {
	t = t.Filter(f)
	if sortCol != "" {
		var err error
		if t, err = t.SortBy(sortCol, desc); err != nil {
			return err
		}
	}

	switch format {
	case "table", "":
		return render.Deposits(out, t)
	case "csv":
		return dataset.WriteCSV(out, t)
	case "json":
		return render.JSON(out, t.Rows())
	default:
		return eris.Errorf("unknown format %q (table, csv, json)", format)
	}
}

func init() {
	addFilterFlags(depositsCmd)
	depositsCmd.Flags().String("sort", "", "column to sort by (e.g. strategic_score)")
	depositsCmd.Flags().Bool("desc", false, "sort descending")
	depositsCmd.Flags().String("format", "table", "output format: table, csv, json")
	rootCmd.AddCommand(depositsCmd)
}
