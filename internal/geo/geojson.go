package geo

import (
	"encoding/json"
	"io"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/emcdo411/greenland-ree-dashboard/internal/dataset"
	"github.com/emcdo411/greenland-ree-dashboard/internal/deposit"
)

// FeatureCollection converts a table into point features. Every column
// becomes a property, plus the rank band and any extra columns.
func FeatureCollection(t deposit.Table, extras ...dataset.Extra) (*geojson.FeatureCollection, error) {
	for _, e := range extras {
		if len(e.Values) != t.Len() {
			return nil, eris.Errorf("geo: column %s has %d values for %d rows", e.Name, len(e.Values), t.Len())
		}
	}

	cols := deposit.Columns()
	fc := &geojson.FeatureCollection{
		BBox:     Bounds(t),
		Features: make([]*geojson.Feature, 0, t.Len()),
	}
	for i, d := range t.Rows() {
		props := make(map[string]interface{}, len(cols)+len(extras)+1)
		for _, c := range cols {
			if c.Numeric {
				props[c.Name] = c.Float(d)
			} else {
				props[c.Name] = c.Format(d)
			}
		}
		props["band"] = deposit.BandOf(d.StrategicScore)
		for _, e := range extras {
			props[e.Name] = e.Values[i]
		}

		fc.Features = append(fc.Features, &geojson.Feature{
			ID:         d.Name,
			Geometry:   Point(d),
			Properties: props,
		})
	}
	return fc, nil
}

// WriteGeoJSON encodes the table as a GeoJSON FeatureCollection.
func WriteGeoJSON(w io.Writer, t deposit.Table, extras ...dataset.Extra) error {
	fc, err := FeatureCollection(t, extras...)
	if err != nil {
		return err
	}
	data, err := json.Marshal(fc)
	if err != nil {
		return eris.Wrap(err, "geo: marshal feature collection")
	}
	if _, err := w.Write(data); err != nil {
		return eris.Wrap(err, "geo: write GeoJSON")
	}
	return nil
}
