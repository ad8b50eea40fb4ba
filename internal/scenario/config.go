// Package scenario applies policy and market scenarios to a deposit table
// and reports how strategic scores move against the baseline.
package scenario

import (
	"fmt"
	"math"
	"strings"

	"github.com/rotisserie/eris"
)

// UraniumPolicy selects the uranium regulation scenario.
type UraniumPolicy string

// Uranium policies.
const (
	UraniumCurrent    UraniumPolicy = "current"
	UraniumBanLifted  UraniumPolicy = "ban_lifted"
	UraniumStricter50 UraniumPolicy = "stricter_50ppm"
)

// ChinesePolicy selects the Chinese investment policy scenario.
type ChinesePolicy string

// Chinese investment policies.
const (
	ChineseCurrent     ChinesePolicy = "current"
	ChineseCompleteBan ChinesePolicy = "complete_ban"
	ChineseRelaxed     ChinesePolicy = "relaxed"
)

// PriceEnvironment is the REE price outlook. It is validated and reported
// but has no effect on scores.
type PriceEnvironment string

// Price environments, from worst to best.
const (
	PriceCollapse PriceEnvironment = "collapse_-50"
	PriceDecline  PriceEnvironment = "decline_-25"
	PriceStable   PriceEnvironment = "stable"
	PriceRally    PriceEnvironment = "rally_+25"
	PriceSpike    PriceEnvironment = "spike_+100"
)

// DefaultInvestmentCap is the upper bound for infrastructure investment in
// USD billion when no cap is configured.
const DefaultInvestmentCap = 10.0

// UraniumPolicies lists the accepted uranium policies.
func UraniumPolicies() []UraniumPolicy {
	return []UraniumPolicy{UraniumCurrent, UraniumBanLifted, UraniumStricter50}
}

// ChinesePolicies lists the accepted Chinese investment policies.
func ChinesePolicies() []ChinesePolicy {
	return []ChinesePolicy{ChineseCurrent, ChineseCompleteBan, ChineseRelaxed}
}

// PriceEnvironments lists the accepted price environments in ordinal order.
func PriceEnvironments() []PriceEnvironment {
	return []PriceEnvironment{PriceCollapse, PriceDecline, PriceStable, PriceRally, PriceSpike}
}

// Valid reports whether p is a known uranium policy.
func (p UraniumPolicy) Valid() bool { return contains(UraniumPolicies(), p) }

// Valid reports whether p is a known Chinese investment policy.
func (p ChinesePolicy) Valid() bool { return contains(ChinesePolicies(), p) }

// Valid reports whether e is a known price environment.
func (e PriceEnvironment) Valid() bool { return contains(PriceEnvironments(), e) }

func contains[T comparable](set []T, v T) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// Config is a validated scenario selection. Build it with NewConfig.
type Config struct {
	UraniumPolicy        UraniumPolicy    `json:"uranium_policy" yaml:"uranium_policy"`
	ChinesePolicy        ChinesePolicy    `json:"chinese_investment_policy" yaml:"chinese_investment_policy"`
	InvestmentUSDBillion float64          `json:"infrastructure_investment_usd_billion" yaml:"infrastructure_investment_usd_billion"`
	PriceEnvironment     PriceEnvironment `json:"price_environment" yaml:"price_environment"`
}

// Input is an unvalidated scenario request. Empty fields take the
// status-quo defaults.
type Input struct {
	UraniumPolicy        string
	ChinesePolicy        string
	InvestmentUSDBillion float64
	PriceEnvironment     string
}

// Baseline returns the status-quo scenario.
func Baseline() Config {
	return Config{
		UraniumPolicy:    UraniumCurrent,
		ChinesePolicy:    ChineseCurrent,
		PriceEnvironment: PriceStable,
	}
}

// NewConfig validates in and returns a Config. Unknown policies and
// non-finite investment values are rejected; finite investment outside
// [0, investmentCap] is clamped to the nearest bound. A non-positive cap
// falls back to DefaultInvestmentCap.
func NewConfig(in Input, investmentCap float64) (Config, error) {
	if investmentCap <= 0 || math.IsNaN(investmentCap) || math.IsInf(investmentCap, 0) {
		investmentCap = DefaultInvestmentCap
	}

	cfg := Baseline()
	var errs []string

	if v := normalize(in.UraniumPolicy); v != "" {
		cfg.UraniumPolicy = UraniumPolicy(v)
		if !cfg.UraniumPolicy.Valid() {
			errs = append(errs, fmt.Sprintf("uranium_policy %q must be one of %s", in.UraniumPolicy, join(UraniumPolicies())))
		}
	}
	if v := normalize(in.ChinesePolicy); v != "" {
		cfg.ChinesePolicy = ChinesePolicy(v)
		if !cfg.ChinesePolicy.Valid() {
			errs = append(errs, fmt.Sprintf("chinese_investment_policy %q must be one of %s", in.ChinesePolicy, join(ChinesePolicies())))
		}
	}
	if v := normalize(in.PriceEnvironment); v != "" {
		cfg.PriceEnvironment = PriceEnvironment(v)
		if !cfg.PriceEnvironment.Valid() {
			errs = append(errs, fmt.Sprintf("price_environment %q must be one of %s", in.PriceEnvironment, join(PriceEnvironments())))
		}
	}

	switch inv := in.InvestmentUSDBillion; {
	case math.IsNaN(inv) || math.IsInf(inv, 0):
		errs = append(errs, "infrastructure_investment_usd_billion must be a finite number")
	default:
		cfg.InvestmentUSDBillion = math.Min(math.Max(inv, 0), investmentCap)
	}

	if len(errs) > 0 {
		return Config{}, eris.Errorf("scenario: config validation failed: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

// IsIdentity reports whether the scenario leaves every score unchanged.
func (c Config) IsIdentity() bool {
	return (c.UraniumPolicy == UraniumCurrent || c.UraniumPolicy == "") &&
		(c.ChinesePolicy == ChineseCurrent || c.ChinesePolicy == "") &&
		c.InvestmentUSDBillion <= 0
}

// Key returns a stable string identifying the scenario.
func (c Config) Key() string {
	return fmt.Sprintf("u=%s|c=%s|i=%g|p=%s", c.UraniumPolicy, c.ChinesePolicy, c.InvestmentUSDBillion, c.PriceEnvironment)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func join[T ~string](vals []T) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
