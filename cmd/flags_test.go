package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emcdo411/greenland-ree-dashboard/internal/scenario"
)

func newFlagCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	addFilterFlags(cmd)
	addScenarioFlags(cmd)
	require.NoError(t, cmd.Flags().Parse(args))
	return cmd
}

func TestFilterFromFlags(t *testing.T) {
	f, err := filterFromFlags(newFlagCmd(t))
	require.NoError(t, err)
	assert.True(t, f.IsZero())

	f, err = filterFromFlags(newFlagCmd(t, "--min-score", "50", "--uranium-status", "Blocked,Clear", "--status", "Advancing"))
	require.NoError(t, err)
	assert.Equal(t, 50.0, f.MinScore)
	assert.Equal(t, []string{"Blocked", "Clear"}, f.UraniumStatuses)
	assert.Equal(t, []string{"Advancing"}, f.Statuses)

	f, err = filterFromFlags(newFlagCmd(t, "--max-score", "0"))
	require.NoError(t, err)
	assert.Zero(t, f.Max())
	assert.Zero(t, baseline(t).Filter(f).Len())

	for _, args := range [][]string{
		{"--min-score", "-1"},
		{"--max-score", "101"},
		{"--min-score", "60", "--max-score", "40"},
		{"--min-score", "NaN"},
		{"--max-score", "+Inf"},
	} {
		_, err := filterFromFlags(newFlagCmd(t, args...))
		assert.Error(t, err, "%v", args)
	}
}

func TestScenarioFromFlags(t *testing.T) {
	useConfig(t, testConfig(t))

	sc, err := scenarioFromFlags(newFlagCmd(t))
	require.NoError(t, err)
	assert.Equal(t, scenario.Baseline(), sc)

	sc, err = scenarioFromFlags(newFlagCmd(t, "--uranium", "ban_lifted", "--investment", "25", "--price", "rally_+25"))
	require.NoError(t, err)
	assert.Equal(t, scenario.UraniumBanLifted, sc.UraniumPolicy)
	assert.Equal(t, 10.0, sc.InvestmentUSDBillion)
	assert.Equal(t, scenario.PriceRally, sc.PriceEnvironment)

	_, err = scenarioFromFlags(newFlagCmd(t, "--chinese", "partial"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chinese_investment_policy")
}

func TestScenarioFromFlags_Preset(t *testing.T) {
	c := testConfig(t)
	c.Scenario.PresetsFile = filepath.Join(t.TempDir(), "scenarios.yaml")
	require.NoError(t, os.WriteFile(c.Scenario.PresetsFile, []byte(`
scenarios:
  - name: decoupling
    chinese_investment_policy: complete_ban
    infrastructure_investment_usd_billion: 4
`), 0o644))
	useConfig(t, c)

	sc, err := scenarioFromFlags(newFlagCmd(t, "--preset", "decoupling"))
	require.NoError(t, err)
	assert.Equal(t, scenario.ChineseCompleteBan, sc.ChinesePolicy)
	assert.Equal(t, 4.0, sc.InvestmentUSDBillion)

	// Explicit flags win over the preset.
	sc, err = scenarioFromFlags(newFlagCmd(t, "--preset", "decoupling", "--investment", "0"))
	require.NoError(t, err)
	assert.Zero(t, sc.InvestmentUSDBillion)
	assert.Equal(t, scenario.ChineseCompleteBan, sc.ChinesePolicy)

	_, err = scenarioFromFlags(newFlagCmd(t, "--preset", "missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown preset")
}

func TestScenarioFromFlags_NoPresetsFile(t *testing.T) {
	useConfig(t, testConfig(t))

	_, err := scenarioFromFlags(newFlagCmd(t, "--preset", "any"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "presets_file")
}
