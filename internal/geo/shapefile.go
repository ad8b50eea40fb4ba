package geo

import (
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/emcdo411/greenland-ree-dashboard/internal/dataset"
	"github.com/emcdo411/greenland-ree-dashboard/internal/deposit"
)

// dBase field names are limited to ten characters.
const maxFieldName = 10

// shpFields maps deposit columns to shapefile attributes.
var shpFields = []struct {
	column string
	field  shp.Field
}{
	{"name", shp.StringField("NAME", 80)},
	{"owner", shp.StringField("OWNER", 80)},
	{"status", shp.StringField("STATUS", 40)},
	{"resource_mt", shp.FloatField("RES_MT", 14, 2)},
	{"treo_grade_pct", shp.FloatField("TREO_PCT", 8, 3)},
	{"heavy_ree_pct", shp.FloatField("HREE_PCT", 8, 2)},
	{"chinese_stake_pct", shp.FloatField("CN_STAKE", 8, 2)},
	{"uranium_ppm", shp.FloatField("U_PPM", 10, 1)},
	{"geological_score", shp.FloatField("GEO_SC", 8, 2)},
	{"regulatory_score", shp.FloatField("REG_SC", 8, 2)},
	{"ownership_score", shp.FloatField("OWN_SC", 8, 2)},
	{"infrastructure_score", shp.FloatField("INFRA_SC", 8, 2)},
	{"geopolitical_score", shp.FloatField("GEOPOL_SC", 8, 2)},
	{"strategic_score", shp.FloatField("STRAT_SC", 8, 2)},
	{"discovery_year", shp.NumberField("DISC_YEAR", 6)},
	{"ice_free_months", shp.NumberField("ICE_FREE", 4)},
	{"port_distance_km", shp.FloatField("PORT_KM", 10, 1)},
	{"ownership_type", shp.StringField("OWN_TYPE", 20)},
	{"uranium_status", shp.StringField("U_STATUS", 10)},
	{"score_category", shp.StringField("CATEGORY", 12)},
	{"contained_treo_kt", shp.FloatField("TREO_KT", 14, 0)},
	{"contained_hree_kt", shp.FloatField("HREE_KT", 14, 0)},
}

// FieldName shortens a column name to a dBase attribute name.
func FieldName(column string) string {
	name := strings.ToUpper(column)
	if len(name) > maxFieldName {
		name = name[:maxFieldName]
	}
	return name
}

// WriteShapefile writes a POINT shapefile (.shp, .shx and .dbf next to path)
// with one record per deposit.
func WriteShapefile(path string, t deposit.Table, extras ...dataset.Extra) error {
	for _, e := range extras {
		if len(e.Values) != t.Len() {
			return eris.Errorf("geo: column %s has %d values for %d rows", e.Name, len(e.Values), t.Len())
		}
	}

	w, err := shp.Create(path, shp.POINT)
	if err != nil {
		return eris.Wrapf(err, "geo: create shapefile %s", path)
	}
	defer w.Close()

	fields := make([]shp.Field, 0, len(shpFields)+len(extras))
	cols := make([]deposit.Column, 0, len(shpFields))
	for _, f := range shpFields {
		col, ok := deposit.LookupColumn(f.column)
		if !ok {
			return eris.Errorf("geo: unknown column %s", f.column)
		}
		fields = append(fields, f.field)
		cols = append(cols, col)
	}
	for _, e := range extras {
		fields = append(fields, shp.FloatField(FieldName(e.Name), 10, 2))
	}
	if err := w.SetFields(fields); err != nil {
		return eris.Wrap(err, "geo: set shapefile fields")
	}

	for i, d := range t.Rows() {
		row := int(w.Write(&shp.Point{X: d.Longitude, Y: d.Latitude}))
		for j, col := range cols {
			var v interface{}
			switch {
			case !col.Numeric:
				v = col.Format(d)
			case col.Integer:
				v = int(col.Float(d))
			default:
				v = col.Float(d)
			}
			if err := w.WriteAttribute(row, j, v); err != nil {
				return eris.Wrapf(err, "geo: write %s for %s", col.Name, d.Name)
			}
		}
		for k, e := range extras {
			if err := w.WriteAttribute(row, len(cols)+k, e.Values[i]); err != nil {
				return eris.Wrapf(err, "geo: write %s for %s", e.Name, d.Name)
			}
		}
	}

	zap.L().Debug("geo: wrote shapefile", zap.String("path", path), zap.Int("records", t.Len()))
	return nil
}

// ShapeRecord is one point and its attributes read back from a shapefile.
type ShapeRecord struct {
	X, Y       float64
	Attributes map[string]string
}

// ReadShapefile reads every point record of a shapefile. Attribute keys are
// the dBase field names.
func ReadShapefile(path string) ([]ShapeRecord, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "geo: open shapefile %s", path)
	}
	defer func() { _ = reader.Close() }()

	fields := reader.Fields()
	var out []ShapeRecord
	for reader.Next() {
		_, shape := reader.Shape()
		p, ok := shape.(*shp.Point)
		if !ok {
			continue
		}
		rec := ShapeRecord{X: p.X, Y: p.Y, Attributes: make(map[string]string, len(fields))}
		for i, f := range fields {
			name := strings.TrimRight(f.String(), "\x00")
			rec.Attributes[name] = strings.TrimSpace(strings.TrimRight(reader.Attribute(i), "\x00"))
		}
		out = append(out, rec)
	}
	return out, nil
}
