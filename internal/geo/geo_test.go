package geo

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/emcdo411/greenland-ree-dashboard/internal/dataset"
	"github.com/emcdo411/greenland-ree-dashboard/internal/deposit"
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

func TestPoint(t *testing.T) {
	p := Point(deposit.Deposit{Latitude: 60.87, Longitude: -45.88})
	assert.Equal(t, -45.88, p.X())
	assert.Equal(t, 60.87, p.Y())
	assert.Equal(t, SRID, p.SRID())
}

func TestEWKBRoundTrip(t *testing.T) {
	d := deposit.Deposit{Name: "Kvanefjeld", Latitude: 60.98, Longitude: -45.92}
	data, err := EncodeEWKB(d)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, byte(1), data[0], "little-endian")

	lon, lat, err := DecodeEWKB(data)
	require.NoError(t, err)
	assert.Equal(t, -45.92, lon)
	assert.Equal(t, 60.98, lat)

	_, _, err = DecodeEWKB([]byte{0x01, 0x02})
	require.Error(t, err)
}

func TestBounds(t *testing.T) {
	b := Bounds(baseline(t))
	require.NotNil(t, b)
	assert.Equal(t, -53.5, b.Min(0))
	assert.Equal(t, -26.5, b.Max(0))
	assert.Equal(t, 60.45, b.Min(1))
	assert.Equal(t, 70.75, b.Max(1))

	empty, err := deposit.NewTable(nil)
	require.NoError(t, err)
	assert.Nil(t, Bounds(empty))
}

func TestWriteGeoJSON(t *testing.T) {
	tbl := baseline(t)
	changes := make([]float64, tbl.Len())
	changes[0] = 3

	var buf bytes.Buffer
	require.NoError(t, WriteGeoJSON(&buf, tbl, dataset.Extra{Name: "score_change", Values: changes}))

	var doc struct {
		Type     string    `json:"type"`
		BBox     []float64 `json:"bbox"`
		Features []struct {
			ID       string `json:"id"`
			Geometry struct {
				Type        string    `json:"type"`
				Coordinates []float64 `json:"coordinates"`
			} `json:"geometry"`
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, "FeatureCollection", doc.Type)
	assert.Len(t, doc.BBox, 4)
	require.Len(t, doc.Features, 15)

	f := doc.Features[0]
	assert.Equal(t, "Tanbreez (Kringlerne)", f.ID)
	assert.Equal(t, "Point", f.Geometry.Type)
	assert.Equal(t, []float64{-45.88, 60.87}, f.Geometry.Coordinates)
	assert.Equal(t, 80.0, f.Properties["strategic_score"])
	assert.Equal(t, "Western Control", f.Properties["ownership_type"])
	assert.Equal(t, deposit.BandStrong, f.Properties["band"])
	assert.Equal(t, 3.0, f.Properties["score_change"])
}

func TestFeatureCollection_ExtraLengthMismatch(t *testing.T) {
	_, err := FeatureCollection(baseline(t), dataset.Extra{Name: "x", Values: []float64{1}})
	require.Error(t, err)
}

func TestShapefileRoundTrip(t *testing.T) {
	tbl := baseline(t)
	changes := make([]float64, tbl.Len())
	changes[1] = 15

	path := filepath.Join(t.TempDir(), "deposits.shp")
	require.NoError(t, WriteShapefile(path, tbl, dataset.Extra{Name: "score_change", Values: changes}))

	recs, err := ReadShapefile(path)
	require.NoError(t, err)
	require.Len(t, recs, tbl.Len())

	kv := recs[1]
	assert.Equal(t, -45.92, kv.X)
	assert.Equal(t, 60.98, kv.Y)
	assert.Equal(t, "Kvanefjeld", kv.Attributes["NAME"])
	assert.Equal(t, "Blocked", kv.Attributes["U_STATUS"])
	assert.Equal(t, "1956", kv.Attributes["DISC_YEAR"])
	assert.Equal(t, "52.00", kv.Attributes["STRAT_SC"])
	assert.Equal(t, "15.00", kv.Attributes["SCORE_CHAN"])
}

func TestFieldName(t *testing.T) {
	assert.Equal(t, "SCORE", FieldName("score"))
	assert.Equal(t, "SCORE_CHAN", FieldName("score_change"))
}
