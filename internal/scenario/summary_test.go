package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emcdo411/greenland-ree-dashboard/internal/deposit"
)

func TestResult_TopMovers(t *testing.T) {
	res := Apply(baselineTable(t), mustConfig(t, Input{UraniumPolicy: "ban_lifted"}))

	movers := res.TopMovers(5)
	require.Len(t, movers, 5)

	// The four blocked deposits gain 15; ties keep table order.
	assert.Equal(t, "Kvanefjeld", movers[0].Name)
	assert.Equal(t, "Ilímaussaq Complex", movers[1].Name)
	assert.Equal(t, "Gardar South", movers[2].Name)
	assert.Equal(t, "Narsaq Area", movers[3].Name)
	for _, m := range movers[:4] {
		assert.Equal(t, 15.0, m.ScoreChange)
	}
	assert.Zero(t, movers[4].ScoreChange)

	assert.Len(t, res.TopMovers(0), 15)
	assert.Len(t, res.Changed(), 4)
}

func TestResult_LeadersUnchanged(t *testing.T) {
	res := Apply(baselineTable(t), mustConfig(t, Input{UraniumPolicy: "ban_lifted"}))

	l := res.Leaders()
	assert.Equal(t, "Tanbreez (Kringlerne)", l.Baseline)
	assert.Equal(t, "Tanbreez (Kringlerne)", l.Scenario)
	assert.False(t, l.Changed)
}

func TestResult_LeadersChanged(t *testing.T) {
	tbl, err := deposit.NewTable([]deposit.Deposit{
		{Name: "clean", UraniumPPM: 10, StrategicScore: 70},
		{Name: "hot", UraniumPPM: 300, StrategicScore: 60},
	})
	require.NoError(t, err)

	res := Apply(tbl, mustConfig(t, Input{UraniumPolicy: "ban_lifted"}))
	l := res.Leaders()
	assert.Equal(t, "clean", l.Baseline)
	assert.Equal(t, "hot", l.Scenario)
	assert.True(t, l.Changed)
}

func TestResult_LeadersEmpty(t *testing.T) {
	tbl, err := deposit.NewTable(nil)
	require.NoError(t, err)

	l := Apply(tbl, Baseline()).Leaders()
	assert.Empty(t, l.Baseline)
	assert.False(t, l.Changed)
}

func TestResult_AdjustedAndScoreChanges(t *testing.T) {
	base := baselineTable(t)
	res := Apply(base, mustConfig(t, Input{ChinesePolicy: "complete_ban"}))

	adj := res.Adjusted()
	assert.Equal(t, base.Names(), adj.Names())

	kv, ok := adj.Find("Kvanefjeld")
	require.True(t, ok)
	assert.Equal(t, 44.0, kv.StrategicScore)

	changes := res.ScoreChanges()
	require.Len(t, changes, base.Len())
	for i, row := range res.Rows {
		assert.Equal(t, row.ScoreChange, changes[i])
	}
	assert.Equal(t, base.Rows(), res.BaselineTable().Rows())
}
