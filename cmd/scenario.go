package main

import (
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/emcdo411/greenland-ree-dashboard/internal/dataset"
	"github.com/emcdo411/greenland-ree-dashboard/internal/deposit"
	"github.com/emcdo411/greenland-ree-dashboard/internal/render"
	"github.com/emcdo411/greenland-ree-dashboard/internal/scenario"
)

var scenarioCmd = &cobra.Command{
	Use:   "scenario",
	Short: "Run a policy scenario against the strategic scores",
	Long:  "Applies uranium, Chinese investment and infrastructure policies to the filtered deposits and reports how the strategic ranking moves.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		t, err := loadTable(cmd.Context())
		if err != nil {
			return err
		}
		f, err := filterFromFlags(cmd)
		if err != nil {
			return err
		}
		sc, err := scenarioFromFlags(cmd)
		if err != nil {
			return err
		}
		top, _ := cmd.Flags().GetInt("top")
		if !cmd.Flags().Changed("top") {
			top = cfg.Scenario.TopMovers
		}
		format, _ := cmd.Flags().GetString("format")

		zap.L().Info("running scenario", zap.String("scenario", sc.Key()), zap.Int("deposits", t.Len()))
		return runScenario(os.Stdout, t.Filter(f), sc, top, format)
	},
}

func runScenario(out io.Writer, t deposit.Table, sc scenario.Config, top int, format string) error {
	res := scenario.Apply(t, sc)

	switch format {
	case "table", "":
		return render.Scenario(out, res, top)
	case "markdown", "md":
		return render.ScenarioMarkdown(out, res, top)
	case "json":
		return render.JSON(out, struct {
			Config      scenario.Config     `json:"config"`
			PriceEffect string              `json:"price_effect"`
			Leaders     scenario.Leadership `json:"leaders"`
			TopMovers   []scenario.Mover    `json:"top_movers"`
			Rows        []scenario.Row      `json:"rows"`
		}{res.Config, res.PriceEffect, res.Leaders(), res.TopMovers(top), res.Rows})
	case "csv":
		return dataset.WriteCSV(out, res.Adjusted(), dataset.Extra{Name: "score_change", Values: res.ScoreChanges()})
	default:
		return eris.Errorf("unknown format %q (table, markdown, json, csv)", format)
	}
}

func init() {
	addFilterFlags(scenarioCmd)
	addScenarioFlags(scenarioCmd)
	scenarioCmd.Flags().Int("top", 5, "number of top movers to show (default from config)")
	scenarioCmd.Flags().String("format", "table", "output format: table, markdown, json, csv")
	rootCmd.AddCommand(scenarioCmd)
}
