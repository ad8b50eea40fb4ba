package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/emcdo411/greenland-ree-dashboard/internal/dataset"
	"github.com/emcdo411/greenland-ree-dashboard/internal/deposit"
	"github.com/emcdo411/greenland-ree-dashboard/internal/scenario"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

func baseline(t *testing.T) deposit.Table {
	t.Helper()
	tbl, err := dataset.Baseline()
	require.NoError(t, err)
	return tbl
}

func TestNumber(t *testing.T) {
	tests := []struct {
		v        float64
		decimals int
		want     string
	}{
		{24000, 0, "24,000"},
		{8468.6, 1, "8,468.6"},
		{52, 1, "52.0"},
		{-28, 0, "-28"},
		{0.65, 2, "0.65"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Number(tt.v, tt.decimals))
	}
}

func TestSigned(t *testing.T) {
	assert.Equal(t, "+15.0", Signed(15))
	assert.Equal(t, "-8.0", Signed(-8))
	assert.Equal(t, "0.0", Signed(0))
}

func TestBar(t *testing.T) {
	assert.Equal(t, "##########", bar(100))
	assert.Equal(t, "######....", bar(60))
	assert.Equal(t, "..........", bar(0))
	assert.Equal(t, "..........", bar(-5))
}

func TestDeposits(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Deposits(&buf, baseline(t)))

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 17)
	assert.True(t, strings.HasPrefix(lines[0], "NAME"))
	assert.Contains(t, lines[2], "Tanbreez (Kringlerne)")
	assert.Contains(t, lines[2], "24,000")
	assert.Contains(t, out, "Energy Transition Minerals")
}

func TestSummary(t *testing.T) {
	tbl := baseline(t)
	stats, err := deposit.Describe(tbl, "strategic_score")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Summary(&buf, deposit.Summarize(tbl), stats))

	out := buf.String()
	assert.Contains(t, out, "8,468.6")
	assert.Contains(t, out, "26.7")
	assert.Contains(t, out, "Chinese Exposure")
	assert.Contains(t, out, "strategic_score")
}

func TestProfileAndComparison(t *testing.T) {
	tbl := baseline(t)
	tb, _ := tbl.Find("Tanbreez (Kringlerne)")
	kv, _ := tbl.Find("Kvanefjeld")

	var buf bytes.Buffer
	require.NoError(t, Profile(&buf, deposit.ProfileOf(tb)))
	assert.Contains(t, buf.String(), "Strategic score: 80.0 [strong]")
	assert.Contains(t, buf.String(), "Port access, power, logistics")

	buf.Reset()
	require.NoError(t, Comparison(&buf, deposit.Compare(tb, kv)))
	assert.Contains(t, buf.String(), "-70.0")
	assert.Contains(t, buf.String(), "-28.0")
}

func scenarioResult(t *testing.T) scenario.Result {
	t.Helper()
	cfg, err := scenario.NewConfig(scenario.Input{UraniumPolicy: "ban_lifted", InvestmentUSDBillion: 2}, scenario.DefaultInvestmentCap)
	require.NoError(t, err)
	return scenario.Apply(baseline(t), cfg)
}

func TestScenario(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Scenario(&buf, scenarioResult(t), 3))

	out := buf.String()
	assert.Contains(t, out, "uranium=ban_lifted")
	assert.Contains(t, out, "price effect: none")
	assert.Contains(t, out, "Leader unchanged: Tanbreez (Kringlerne)")
	assert.Contains(t, out, "+15.9")
}

func TestScenarioMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ScenarioMarkdown(&buf, scenarioResult(t), 2))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "# Scenario report"))
	assert.Contains(t, out, "| Uranium policy | `ban_lifted` |")
	assert.Contains(t, out, "## Top movers")
	assert.Contains(t, out, "| Kvanefjeld | 67.9 | +15.9 |")
	assert.Equal(t, 2, strings.Count(strings.Split(out, "## All deposits")[0], "+15.9"))
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, map[string]int{"deposits": 15}))

	var got map[string]int
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 15, got["deposits"])
}
