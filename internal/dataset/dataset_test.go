package dataset

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/emcdo411/greenland-ree-dashboard/internal/deposit"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

func TestBaseline(t *testing.T) {
	tbl, err := Baseline()
	require.NoError(t, err)
	require.Equal(t, 15, tbl.Len())

	tb := tbl.At(0)
	assert.Equal(t, "Tanbreez (Kringlerne)", tb.Name)
	assert.Equal(t, 80.0, tb.StrategicScore)
	assert.Equal(t, 2007, tb.DiscoveryYear)
	assert.Equal(t, 24000.0, tb.ContainedTREOKt)
	assert.Equal(t, deposit.CategoryHigh, tb.ScoreCategory)

	kv, ok := tbl.Find("Kvanefjeld")
	require.True(t, ok)
	assert.Equal(t, deposit.UraniumBlocked, kv.UraniumStatus)
	assert.Equal(t, deposit.OwnershipChinese, kv.OwnershipType)

	il, ok := tbl.Find("Ilímaussaq Complex")
	require.True(t, ok)
	assert.Equal(t, 120.0, il.UraniumPPM)
}

func TestBaseline_ScoresInRange(t *testing.T) {
	tbl, err := Baseline()
	require.NoError(t, err)
	for _, d := range tbl.Rows() {
		for _, v := range []float64{
			d.GeologicalScore, d.RegulatoryScore, d.OwnershipScore,
			d.InfrastructureScore, d.GeopoliticalScore, d.StrategicScore,
		} {
			assert.GreaterOrEqual(t, v, 0.0, d.Name)
			assert.LessOrEqual(t, v, 100.0, d.Name)
		}
	}
}

const miniCSV = "\ufeffdeposit_name,latitude,longitude,resource_mt,treo_grade_pct,heavy_ree_pct,owner,chinese_stake_pct,status,uranium_ppm,geological_score,regulatory_score,ownership_score,infrastructure_score,geopolitical_score,strategic_score,ownership_type\n" +
	"Alpha,60.1,-45.2,100,1.5,20,Acme,0,Exploration,30,70,70,80,50,55,64,Chinese Exposure\n" +
	",,,,,,,,,,,,,,,,\n" +
	"Bravo,61,-46,10,0.5,10,Other,12,Prospect,150,40,30,40,20,30,33,\n"

func TestReadCSV(t *testing.T) {
	tbl, err := ReadCSV(context.Background(), strings.NewReader(miniCSV), CSVOptions{})
	require.NoError(t, err)
	require.Equal(t, []string{"Alpha", "Bravo"}, tbl.Names())

	a := tbl.At(0)
	assert.Equal(t, 60.1, a.Latitude)
	assert.Equal(t, 1500.0, a.ContainedTREOKt)
	assert.Equal(t, 300.0, a.ContainedHREEKt)
	// Derived input columns are ignored and recomputed.
	assert.Equal(t, deposit.OwnershipWestern, a.OwnershipType)
	// Optional metadata columns default to zero.
	assert.Zero(t, a.DiscoveryYear)

	b := tbl.At(1)
	assert.Equal(t, deposit.OwnershipChinese, b.OwnershipType)
	assert.Equal(t, deposit.UraniumBlocked, b.UraniumStatus)
	assert.Equal(t, deposit.CategoryLow, b.ScoreCategory)
}

func TestReadCSV_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{"empty", "", "no header row"},
		{"missing columns", "name,latitude\nA,1\n", "missing required columns"},
		{"bad number", strings.Replace(miniCSV, "60.1", "north", 1), "record 2"},
		{"duplicate", miniCSV + "Alpha,60.1,-45.2,100,1.5,20,Acme,0,Exploration,30,70,70,80,50,55,64,\n", "duplicate name Alpha"},
		{"score above 100", strings.Replace(miniCSV, ",55,64,", ",55,120,", 1), "strategic_score 120 outside [0, 100]"},
		{"nan score", strings.Replace(miniCSV, ",40,30,40,", ",40,NaN,40,", 1), "regulatory_score must be finite"},
		{"infinite coordinate", strings.Replace(miniCSV, "61,-46", "61,-Inf", 1), "longitude must be finite"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(context.Background(), strings.NewReader(tt.input), CSVOptions{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestReadCSV_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ReadCSV(ctx, strings.NewReader(miniCSV), CSVOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "context cancelled")
}

func TestCSVRoundTrip(t *testing.T) {
	base, err := Baseline()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, base))

	back, err := ReadCSV(context.Background(), &buf, CSVOptions{})
	require.NoError(t, err)
	assert.Equal(t, base.Rows(), back.Rows())
}

func TestWriteCSV_Extras(t *testing.T) {
	base, err := Baseline()
	require.NoError(t, err)

	changes := make([]float64, base.Len())
	changes[1] = 15

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, base, Extra{Name: "score_change", Values: changes}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, base.Len()+1)
	assert.True(t, strings.HasPrefix(lines[0], "name,latitude,"))
	assert.True(t, strings.HasSuffix(lines[0], ",contained_hree_kt,score_change"))
	assert.True(t, strings.HasSuffix(lines[2], ",15"))

	err = WriteCSV(&buf, base, Extra{Name: "short", Values: []float64{1}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "short")
}

func TestXLSXRoundTrip(t *testing.T) {
	base, err := Baseline()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "deposits.xlsx")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, WriteXLSX(f, base))
	require.NoError(t, f.Close())

	back, err := ReadXLSX(path, XLSXOptions{})
	require.NoError(t, err)
	assert.Equal(t, base.Names(), back.Names())
	for i, d := range base.Rows() {
		got := back.At(i)
		assert.InDelta(t, d.StrategicScore, got.StrategicScore, 1e-9, d.Name)
		assert.InDelta(t, d.TREOGradePct, got.TREOGradePct, 1e-9, d.Name)
		assert.Equal(t, d.DiscoveryYear, got.DiscoveryYear, d.Name)
		assert.Equal(t, d.Owner, got.Owner, d.Name)
	}

	_, err = ReadXLSX(path, XLSXOptions{SheetName: "missing"})
	require.Error(t, err)
	_, err = ReadXLSX(path, XLSXOptions{SheetIndex: 3})
	require.Error(t, err)
}

func TestLoad(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	tbl, err := Load(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 15, tbl.Len())

	csvPath := filepath.Join(dir, "mini.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(miniCSV), 0o644))
	tbl, err = Load(ctx, csvPath)
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.Len())

	tsvPath := filepath.Join(dir, "mini.TSV")
	require.NoError(t, os.WriteFile(tsvPath, []byte(strings.ReplaceAll(miniCSV, ",", "\t")), 0o644))
	tbl, err = Load(ctx, tsvPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha", "Bravo"}, tbl.Names())

	_, err = Load(ctx, filepath.Join(dir, "deposits.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")

	_, err = Load(ctx, filepath.Join(dir, "absent.csv"))
	require.Error(t, err)
}

func TestFileStem(t *testing.T) {
	now := time.Date(2026, 1, 18, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "greenland_ree_20260118", FileStem("", now))
	assert.Equal(t, "scenario_20260118", FileStem("scenario", now))
}
