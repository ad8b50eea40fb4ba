// Package geo builds the deposit map layer: points, GeoJSON feature
// collections, ESRI shapefiles and EWKB geometry for PostGIS.
package geo

import (
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/ewkb"

	"github.com/emcdo411/greenland-ree-dashboard/internal/deposit"
)

// SRID is WGS 84, the reference system of deposit coordinates.
const SRID = 4326

// Point returns the deposit location as a lon/lat point.
func Point(d deposit.Deposit) *geom.Point {
	return geom.NewPointFlat(geom.XY, []float64{d.Longitude, d.Latitude}).SetSRID(SRID)
}

// EncodeEWKB returns the deposit location as little-endian EWKB with SRID 4326.
func EncodeEWKB(d deposit.Deposit) ([]byte, error) {
	data, err := ewkb.Marshal(Point(d), ewkb.NDR)
	if err != nil {
		return nil, eris.Wrapf(err, "geo: encode EWKB for %s", d.Name)
	}
	return data, nil
}

// DecodeEWKB parses an EWKB point and returns its longitude and latitude.
func DecodeEWKB(data []byte) (lon, lat float64, err error) {
	g, err := ewkb.Unmarshal(data)
	if err != nil {
		return 0, 0, eris.Wrap(err, "geo: decode EWKB")
	}
	p, ok := g.(*geom.Point)
	if !ok {
		return 0, 0, eris.Errorf("geo: expected point, got %T", g)
	}
	return p.X(), p.Y(), nil
}

// Bounds returns the extent of all deposits, or nil for an empty table.
func Bounds(t deposit.Table) *geom.Bounds {
	if t.Len() == 0 {
		return nil
	}
	b := geom.NewBounds(geom.XY)
	for _, d := range t.Rows() {
		b.Extend(Point(d))
	}
	return b
}
