// Package deposit models Greenland rare-earth deposits and the immutable
// tables they are served from.
package deposit

import "math"

// Ownership classifications.
const (
	OwnershipChinese = "Chinese Exposure"
	OwnershipWestern = "Western Control"
)

// Uranium status classifications.
const (
	UraniumBlocked = "Blocked"
	UraniumClear   = "Clear"
)

// Score categories for the strategic score.
const (
	CategoryLow      = "Low"
	CategoryMedium   = "Medium"
	CategoryHigh     = "High"
	CategoryVeryHigh = "Very High"
)

// UraniumBanPPM is the 2021 uranium ban threshold. Deposits strictly above it
// are considered blocked.
const UraniumBanPPM = 100.0

// Deposit is one mineral occurrence. Source fields are set by the loader;
// derived fields are owned by Derive and must not be edited directly.
type Deposit struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	ResourceMt   float64 `json:"resource_mt"`
	TREOGradePct float64 `json:"treo_grade_pct"`
	HeavyREEPct  float64 `json:"heavy_ree_pct"`

	Owner           string  `json:"owner"`
	ChineseStakePct float64 `json:"chinese_stake_pct"`

	Status     string  `json:"status"`
	UraniumPPM float64 `json:"uranium_ppm"`

	GeologicalScore     float64 `json:"geological_score"`
	RegulatoryScore     float64 `json:"regulatory_score"`
	OwnershipScore      float64 `json:"ownership_score"`
	InfrastructureScore float64 `json:"infrastructure_score"`
	GeopoliticalScore   float64 `json:"geopolitical_score"`

	// StrategicScore is an independently assigned composite. It is not
	// computed from the five sub-scores.
	StrategicScore float64 `json:"strategic_score"`

	DiscoveryYear  int     `json:"discovery_year"`
	IceFreeMonths  int     `json:"ice_free_months"`
	PortDistanceKm float64 `json:"port_distance_km"`

	// Derived.
	OwnershipType   string  `json:"ownership_type"`
	UraniumStatus   string  `json:"uranium_status"`
	ScoreCategory   string  `json:"score_category"`
	ContainedTREOKt float64 `json:"contained_treo_kt"`
	ContainedHREEKt float64 `json:"contained_hree_kt"`
}

// Derive recomputes every derived field from the source fields.
func (d *Deposit) Derive() {
	d.OwnershipType = OwnershipTypeOf(d.ChineseStakePct)
	d.UraniumStatus = UraniumStatusOf(d.UraniumPPM)
	d.ScoreCategory = CategoryOf(d.StrategicScore)
	d.ContainedTREOKt = math.RoundToEven(d.ResourceMt * d.TREOGradePct / 100 * 1000)
	d.ContainedHREEKt = math.RoundToEven(d.ContainedTREOKt * d.HeavyREEPct / 100)
}

// HasChineseExposure reports whether any Chinese stake is recorded.
func (d Deposit) HasChineseExposure() bool {
	return d.ChineseStakePct > 0
}

// UraniumBlocked reports whether the deposit exceeds the uranium ban threshold.
func (d Deposit) UraniumBlocked() bool {
	return d.UraniumPPM > UraniumBanPPM
}

// OwnershipTypeOf classifies a Chinese ownership stake.
func OwnershipTypeOf(chineseStakePct float64) string {
	if chineseStakePct > 0 {
		return OwnershipChinese
	}
	return OwnershipWestern
}

// UraniumStatusOf classifies a uranium concentration against the ban threshold.
func UraniumStatusOf(ppm float64) string {
	if ppm > UraniumBanPPM {
		return UraniumBlocked
	}
	return UraniumClear
}

// CategoryOf bins a strategic score into right-closed bands at 40, 60 and 80.
// A score of 0 is Low. NewTable keeps scores within [0, 100], so the top band
// ends at 100.
func CategoryOf(score float64) string {
	switch {
	case score <= 40:
		return CategoryLow
	case score <= 60:
		return CategoryMedium
	case score <= 80:
		return CategoryHigh
	default:
		return CategoryVeryHigh
	}
}
