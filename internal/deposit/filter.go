package deposit

import (
	"math"
	"strings"

	"github.com/rotisserie/eris"
)

// Filter selects deposits by strategic score range and classification. Empty
// sets place no restriction; a nil MaxScore means 100.
type Filter struct {
	MinScore        float64  `json:"min_score,omitempty"`
	MaxScore        *float64 `json:"max_score,omitempty"`
	OwnershipTypes  []string `json:"ownership_types,omitempty"`
	UraniumStatuses []string `json:"uranium_statuses,omitempty"`
	Statuses        []string `json:"statuses,omitempty"`
}

// ScoreLimit returns v as a MaxScore value.
func ScoreLimit(v float64) *float64 { return &v }

// Max returns the upper score bound.
func (f Filter) Max() float64 {
	if f.MaxScore == nil {
		return 100
	}
	return *f.MaxScore
}

// Check validates the score range.
func (f Filter) Check() error {
	var errs []string
	for _, b := range []struct {
		name string
		v    float64
	}{{"min_score", f.MinScore}, {"max_score", f.Max()}} {
		switch {
		case math.IsNaN(b.v) || math.IsInf(b.v, 0):
			errs = append(errs, b.name+" must be a finite number")
		case b.v < 0 || b.v > 100:
			errs = append(errs, b.name+" must be between 0 and 100")
		}
	}
	if len(errs) == 0 && f.MinScore > f.Max() {
		errs = append(errs, "min_score must not exceed max_score")
	}
	if len(errs) > 0 {
		return eris.Errorf("deposit: invalid filter: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Match reports whether d passes the filter. The score range is inclusive.
func (f Filter) Match(d Deposit) bool {
	if d.StrategicScore < f.MinScore || d.StrategicScore > f.Max() {
		return false
	}
	if !allowed(f.OwnershipTypes, d.OwnershipType) {
		return false
	}
	if !allowed(f.UraniumStatuses, d.UraniumStatus) {
		return false
	}
	return allowed(f.Statuses, d.Status)
}

// IsZero reports whether the filter matches every deposit.
func (f Filter) IsZero() bool {
	return f.MinScore <= 0 && f.Max() >= 100 &&
		len(f.OwnershipTypes) == 0 && len(f.UraniumStatuses) == 0 && len(f.Statuses) == 0
}

func allowed(set []string, v string) bool {
	if len(set) == 0 {
		return true
	}
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
