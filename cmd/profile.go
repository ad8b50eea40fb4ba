package main

import (
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/emcdo411/greenland-ree-dashboard/internal/deposit"
	"github.com/emcdo411/greenland-ree-dashboard/internal/render"
)

var profileCmd = &cobra.Command{
	Use:   "profile <deposit>",
	Short: "Show the five-lens profile of a deposit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := loadTable(cmd.Context())
		if err != nil {
			return err
		}
		compare, _ := cmd.Flags().GetString("compare")
		format, _ := cmd.Flags().GetString("format")
		return showProfile(os.Stdout, t, args[0], compare, format)
	},
}

func showProfile(out io.Writer, t deposit.Table, name, compare, format string) error {
	d, err := findDeposit(t, name)
	if err != nil {
		return err
	}

	if compare == "" {
		p := deposit.ProfileOf(d)
		if format == "json" {
			return render.JSON(out, p)
		}
		return render.Profile(out, p)
	}

	other, err := findDeposit(t, compare)
	if err != nil {
		return err
	}
	c := deposit.Compare(d, other)
	if format == "json" {
		return render.JSON(out, c)
	}
	return render.Comparison(out, c)
}

// findDeposit matches exactly first, then case-insensitively.
func findDeposit(t deposit.Table, name string) (deposit.Deposit, error) {
	if d, ok := t.Find(name); ok {
		return d, nil
	}
	for _, d := range t.Rows() {
		if strings.EqualFold(d.Name, name) {
			return d, nil
		}
	}
	return deposit.Deposit{}, eris.Errorf("deposit %q not found", name)
}

func init() {
	profileCmd.Flags().String("compare", "", "second deposit to compare against")
	profileCmd.Flags().String("format", "table", "output format: table, json")
	rootCmd.AddCommand(profileCmd)
}
