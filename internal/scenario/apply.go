package scenario

import (
	"math"

	"go.uber.org/zap"

	"github.com/emcdo411/greenland-ree-dashboard/internal/deposit"
)

// Score effects of each policy, in points on the 0-100 scales.
const (
	banLiftedRegulatory = 40
	banLiftedStrategic  = 15

	stricterThresholdPPM = 50
	stricterRegulatory   = -30
	stricterStrategic    = -10

	completeBanOwnership = -20
	completeBanStrategic = -8

	relaxedGeopolitical = -10

	// Each USD billion buys three infrastructure points, up to twenty.
	infraPointsPerBillion = 3
	infraPointsCap        = 20
	infraStrategicWeight  = 0.15
)

// PriceEffectNone marks results whose price environment did not move any
// score.
const PriceEffectNone = "none"

// Row pairs a baseline deposit with its scenario-adjusted copy.
type Row struct {
	Baseline    deposit.Deposit `json:"baseline"`
	Adjusted    deposit.Deposit `json:"adjusted"`
	ScoreChange float64         `json:"score_change"`
}

// Result is the outcome of applying a scenario to a table. Rows keep the
// order and identity of the input table.
type Result struct {
	Config      Config `json:"config"`
	PriceEffect string `json:"price_effect"`
	Rows        []Row  `json:"rows"`
}

// InfrastructureImpact returns the infrastructure score boost for an
// investment in USD billion.
func InfrastructureImpact(investmentUSDBillion float64) float64 {
	if investmentUSDBillion <= 0 {
		return 0
	}
	return math.Min(investmentUSDBillion*infraPointsPerBillion, infraPointsCap)
}

// Apply computes the scenario for every row of base. base is not modified.
// cfg is expected to come from NewConfig; unknown policy values have no
// effect.
func Apply(base deposit.Table, cfg Config) Result {
	res := Result{
		Config:      cfg,
		PriceEffect: PriceEffectNone,
		Rows:        make([]Row, 0, base.Len()),
	}

	for _, d := range base.Rows() {
		adj := adjust(d, cfg)
		res.Rows = append(res.Rows, Row{
			Baseline:    d,
			Adjusted:    adj,
			ScoreChange: adj.StrategicScore - d.StrategicScore,
		})
	}

	zap.L().Debug("scenario: applied",
		zap.String("scenario", cfg.Key()),
		zap.Int("rows", len(res.Rows)),
	)
	return res
}

// adjust returns the scenario-adjusted copy of d. Scores are clamped once,
// after every effect has been added.
func adjust(d deposit.Deposit, cfg Config) deposit.Deposit {
	switch cfg.UraniumPolicy {
	case UraniumBanLifted:
		if d.UraniumPPM > deposit.UraniumBanPPM {
			d.RegulatoryScore += banLiftedRegulatory
			d.StrategicScore += banLiftedStrategic
		}
	case UraniumStricter50:
		if d.UraniumPPM > stricterThresholdPPM {
			d.RegulatoryScore += stricterRegulatory
			d.StrategicScore += stricterStrategic
		}
	}

	switch cfg.ChinesePolicy {
	case ChineseCompleteBan:
		if d.HasChineseExposure() {
			d.OwnershipScore += completeBanOwnership
			d.StrategicScore += completeBanStrategic
		}
	case ChineseRelaxed:
		// Applies to every deposit, including those without a Chinese stake.
		d.GeopoliticalScore += relaxedGeopolitical
	}

	if impact := InfrastructureImpact(cfg.InvestmentUSDBillion); impact > 0 {
		d.InfrastructureScore += impact
		d.StrategicScore += impact * infraStrategicWeight
	}

	d.RegulatoryScore = clamp(d.RegulatoryScore)
	d.OwnershipScore = clamp(d.OwnershipScore)
	d.InfrastructureScore = clamp(d.InfrastructureScore)
	d.GeopoliticalScore = clamp(d.GeopoliticalScore)
	d.StrategicScore = clamp(d.StrategicScore)

	d.Derive()
	return d
}

func clamp(v float64) float64 {
	return math.Min(100, math.Max(0, v))
}
