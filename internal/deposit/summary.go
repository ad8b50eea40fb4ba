package deposit

// Rank bands used by the strategic ranking view.
const (
	BandStrong   = "strong"
	BandModerate = "moderate"
	BandWeak     = "weak"
)

// BandOf returns the ranking band for a 0-100 score: >=70 strong, >=50
// moderate, otherwise weak.
func BandOf(score float64) string {
	switch {
	case score >= 70:
		return BandStrong
	case score >= 50:
		return BandModerate
	default:
		return BandWeak
	}
}

// Summary holds the headline indicators for a (filtered) table.
type Summary struct {
	Deposits          int     `json:"deposits"`
	TotalResourceMt   float64 `json:"total_resource_mt"`
	ContainedTREOKt   float64 `json:"contained_treo_kt"`
	AvgHeavyREEPct    float64 `json:"avg_heavy_ree_pct"`
	UraniumBlockedPct float64 `json:"uranium_blocked_pct"`

	// ResourceByOwnership splits total resource tonnage by ownership type.
	ResourceByOwnership map[string]float64 `json:"resource_by_ownership"`
	UraniumStatusCounts map[string]int     `json:"uranium_status_counts"`
	BandCounts          map[string]int     `json:"band_counts"`
	CategoryCounts      map[string]int     `json:"category_counts"`
}

// Summarize computes headline indicators. An empty table yields zeros.
func Summarize(t Table) Summary {
	s := Summary{
		Deposits: t.Len(),
		ResourceByOwnership: map[string]float64{
			OwnershipWestern: 0,
			OwnershipChinese: 0,
		},
		UraniumStatusCounts: make(map[string]int),
		BandCounts:          make(map[string]int),
		CategoryCounts:      make(map[string]int),
	}

	var heavy float64
	var blocked int
	for _, d := range t.rows {
		s.TotalResourceMt += d.ResourceMt
		s.ContainedTREOKt += d.ContainedTREOKt
		heavy += d.HeavyREEPct
		if d.UraniumBlocked() {
			blocked++
		}
		s.ResourceByOwnership[d.OwnershipType] += d.ResourceMt
		s.UraniumStatusCounts[d.UraniumStatus]++
		s.BandCounts[BandOf(d.StrategicScore)]++
		s.CategoryCounts[d.ScoreCategory]++
	}

	if s.Deposits > 0 {
		s.AvgHeavyREEPct = heavy / float64(s.Deposits)
	}
	s.UraniumBlockedPct = float64(blocked) / float64(max(s.Deposits, 1)) * 100
	return s
}
