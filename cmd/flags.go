package main

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/emcdo411/greenland-ree-dashboard/internal/dataset"
	"github.com/emcdo411/greenland-ree-dashboard/internal/deposit"
	"github.com/emcdo411/greenland-ree-dashboard/internal/scenario"
)

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("min-score", 0, "minimum strategic score (inclusive)")
	cmd.Flags().Float64("max-score", 100, "maximum strategic score (inclusive)")
	cmd.Flags().StringSlice("ownership", nil, `ownership types to keep ("Chinese Exposure", "Western Control")`)
	cmd.Flags().StringSlice("uranium-status", nil, "uranium statuses to keep (Blocked, Clear)")
	cmd.Flags().StringSlice("status", nil, "project statuses to keep")
}

func filterFromFlags(cmd *cobra.Command) (deposit.Filter, error) {
	minScore, _ := cmd.Flags().GetFloat64("min-score")
	maxScore, _ := cmd.Flags().GetFloat64("max-score")
	ownership, _ := cmd.Flags().GetStringSlice("ownership")
	uranium, _ := cmd.Flags().GetStringSlice("uranium-status")
	status, _ := cmd.Flags().GetStringSlice("status")

	f := deposit.Filter{
		MinScore:        minScore,
		MaxScore:        deposit.ScoreLimit(maxScore),
		OwnershipTypes:  ownership,
		UraniumStatuses: uranium,
		Statuses:        status,
	}
	if err := f.Check(); err != nil {
		return deposit.Filter{}, err
	}
	return f, nil
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().String("uranium", "", "uranium policy: current, ban_lifted, stricter_50ppm")
	cmd.Flags().String("chinese", "", "Chinese investment policy: current, complete_ban, relaxed")
	cmd.Flags().Float64("investment", 0, "infrastructure investment in USD billion")
	cmd.Flags().String("price", "", "price environment: collapse_-50, decline_-25, stable, rally_+25, spike_+100")
	cmd.Flags().String("preset", "", "named scenario from scenario.presets_file; other scenario flags override it")
}

// scenarioFromFlags builds a validated scenario from the preset (if any) and
// the explicitly set flags.
func scenarioFromFlags(cmd *cobra.Command) (scenario.Config, error) {
	var in scenario.Input

	if name, _ := cmd.Flags().GetString("preset"); name != "" {
		presets, err := loadPresets()
		if err != nil {
			return scenario.Config{}, err
		}
		p, ok := presets.Get(name)
		if !ok {
			return scenario.Config{}, eris.Errorf("unknown preset %q (available: %v)", name, presets.Names())
		}
		in = p.Input()
	}

	if f := cmd.Flags().Lookup("uranium"); f.Changed {
		in.UraniumPolicy = f.Value.String()
	}
	if f := cmd.Flags().Lookup("chinese"); f.Changed {
		in.ChinesePolicy = f.Value.String()
	}
	if cmd.Flags().Changed("investment") {
		in.InvestmentUSDBillion, _ = cmd.Flags().GetFloat64("investment")
	}
	if f := cmd.Flags().Lookup("price"); f.Changed {
		in.PriceEnvironment = f.Value.String()
	}

	return scenario.NewConfig(in, cfg.Scenario.InvestmentCap)
}

func loadPresets() (scenario.Presets, error) {
	if cfg.Scenario.PresetsFile == "" {
		return nil, eris.New("no presets file configured (set scenario.presets_file)")
	}
	return scenario.LoadPresets(cfg.Scenario.PresetsFile)
}

func loadTable(ctx context.Context) (deposit.Table, error) {
	t, err := dataset.Load(ctx, cfg.Data.File)
	if err != nil {
		return deposit.Table{}, err
	}
	zap.L().Debug("loaded deposits", zap.String("file", cfg.Data.File), zap.Int("rows", t.Len()))
	return t, nil
}
