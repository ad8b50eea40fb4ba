package deposit

import (
	"math"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// Column describes one tabular field of a Deposit. Columns drive CSV/XLSX
// encoding, sorting and describe statistics.
type Column struct {
	Name    string
	Numeric bool
	Integer bool
	Derived bool

	num func(Deposit) float64
	str func(Deposit) string
	set func(*Deposit, string) error
}

// Float returns the numeric value of the column. Text columns return 0.
func (c Column) Float(d Deposit) float64 {
	if c.num == nil {
		return 0
	}
	return c.num(d)
}

// Format returns the column value as text.
func (c Column) Format(d Deposit) string {
	if c.Numeric {
		return strconv.FormatFloat(c.num(d), 'f', -1, 64)
	}
	return c.str(d)
}

// Set parses raw into the column's field. Derived columns ignore input.
func (c Column) Set(d *Deposit, raw string) error {
	if c.set == nil {
		return nil
	}
	return c.set(d, strings.TrimSpace(raw))
}

func floatCol(name string, get func(Deposit) float64, put func(*Deposit, float64)) Column {
	return Column{
		Name:    name,
		Numeric: true,
		num:     get,
		set: func(d *Deposit, raw string) error {
			if raw == "" {
				put(d, 0)
				return nil
			}
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return eris.Wrapf(err, "deposit: parse %s %q", name, raw)
			}
			put(d, v)
			return nil
		},
	}
}

func intCol(name string, get func(Deposit) int, put func(*Deposit, int)) Column {
	return Column{
		Name:    name,
		Numeric: true,
		Integer: true,
		num:     func(d Deposit) float64 { return float64(get(d)) },
		set: func(d *Deposit, raw string) error {
			if raw == "" {
				put(d, 0)
				return nil
			}
			// Spreadsheets hand integers back as "2007.0".
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return eris.Wrapf(err, "deposit: parse %s %q", name, raw)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return eris.Errorf("deposit: %s must be finite, got %q", name, raw)
			}
			put(d, int(v))
			return nil
		},
	}
}

func textCol(name string, get func(Deposit) string, put func(*Deposit, string)) Column {
	return Column{
		Name: name,
		str:  get,
		set: func(d *Deposit, raw string) error {
			put(d, raw)
			return nil
		},
	}
}

func derivedFloat(name string, get func(Deposit) float64) Column {
	return Column{Name: name, Numeric: true, Derived: true, num: get}
}

func derivedText(name string, get func(Deposit) string) Column {
	return Column{Name: name, Derived: true, str: get}
}

var columns = []Column{
	textCol("name", func(d Deposit) string { return d.Name }, func(d *Deposit, v string) { d.Name = v }),
	floatCol("latitude", func(d Deposit) float64 { return d.Latitude }, func(d *Deposit, v float64) { d.Latitude = v }),
	floatCol("longitude", func(d Deposit) float64 { return d.Longitude }, func(d *Deposit, v float64) { d.Longitude = v }),
	floatCol("resource_mt", func(d Deposit) float64 { return d.ResourceMt }, func(d *Deposit, v float64) { d.ResourceMt = v }),
	floatCol("treo_grade_pct", func(d Deposit) float64 { return d.TREOGradePct }, func(d *Deposit, v float64) { d.TREOGradePct = v }),
	floatCol("heavy_ree_pct", func(d Deposit) float64 { return d.HeavyREEPct }, func(d *Deposit, v float64) { d.HeavyREEPct = v }),
	textCol("owner", func(d Deposit) string { return d.Owner }, func(d *Deposit, v string) { d.Owner = v }),
	floatCol("chinese_stake_pct", func(d Deposit) float64 { return d.ChineseStakePct }, func(d *Deposit, v float64) { d.ChineseStakePct = v }),
	textCol("status", func(d Deposit) string { return d.Status }, func(d *Deposit, v string) { d.Status = v }),
	floatCol("uranium_ppm", func(d Deposit) float64 { return d.UraniumPPM }, func(d *Deposit, v float64) { d.UraniumPPM = v }),
	floatCol("geological_score", func(d Deposit) float64 { return d.GeologicalScore }, func(d *Deposit, v float64) { d.GeologicalScore = v }),
	floatCol("regulatory_score", func(d Deposit) float64 { return d.RegulatoryScore }, func(d *Deposit, v float64) { d.RegulatoryScore = v }),
	floatCol("ownership_score", func(d Deposit) float64 { return d.OwnershipScore }, func(d *Deposit, v float64) { d.OwnershipScore = v }),
	floatCol("infrastructure_score", func(d Deposit) float64 { return d.InfrastructureScore }, func(d *Deposit, v float64) { d.InfrastructureScore = v }),
	floatCol("geopolitical_score", func(d Deposit) float64 { return d.GeopoliticalScore }, func(d *Deposit, v float64) { d.GeopoliticalScore = v }),
	floatCol("strategic_score", func(d Deposit) float64 { return d.StrategicScore }, func(d *Deposit, v float64) { d.StrategicScore = v }),
	intCol("discovery_year", func(d Deposit) int { return d.DiscoveryYear }, func(d *Deposit, v int) { d.DiscoveryYear = v }),
	intCol("ice_free_months", func(d Deposit) int { return d.IceFreeMonths }, func(d *Deposit, v int) { d.IceFreeMonths = v }),
	floatCol("port_distance_km", func(d Deposit) float64 { return d.PortDistanceKm }, func(d *Deposit, v float64) { d.PortDistanceKm = v }),
	derivedText("ownership_type", func(d Deposit) string { return d.OwnershipType }),
	derivedText("uranium_status", func(d Deposit) string { return d.UraniumStatus }),
	derivedText("score_category", func(d Deposit) string { return d.ScoreCategory }),
	derivedFloat("contained_treo_kt", func(d Deposit) float64 { return d.ContainedTREOKt }),
	derivedFloat("contained_hree_kt", func(d Deposit) float64 { return d.ContainedHREEKt }),
}

// RequiredColumns are the source columns a loaded table must provide.
var RequiredColumns = []string{
	"name", "latitude", "longitude", "resource_mt", "treo_grade_pct",
	"heavy_ree_pct", "owner", "chinese_stake_pct", "status", "uranium_ppm",
	"geological_score", "regulatory_score", "ownership_score",
	"infrastructure_score", "geopolitical_score", "strategic_score",
}

// Columns returns every column in export order: source fields first, then
// derived fields.
func Columns() []Column {
	out := make([]Column, len(columns))
	copy(out, columns)
	return out
}

// ColumnNames returns the export header.
func ColumnNames() []string {
	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = c.Name
	}
	return names
}

// LookupColumn finds a column by name. "deposit_name" is accepted as an
// alias for "name".
func LookupColumn(name string) (Column, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "deposit_name" {
		key = "name"
	}
	for _, c := range columns {
		if c.Name == key {
			return c, true
		}
	}
	return Column{}, false
}

// NumericColumns returns the names of all numeric columns.
func NumericColumns() []string {
	var names []string
	for _, c := range columns {
		if c.Numeric {
			names = append(names, c.Name)
		}
	}
	return names
}
