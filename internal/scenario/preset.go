package scenario

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Preset is a named scenario stored in a presets file.
type Preset struct {
	Name                 string  `json:"name" yaml:"name"`
	Description          string  `json:"description,omitempty" yaml:"description"`
	UraniumPolicy        string  `json:"uranium_policy,omitempty" yaml:"uranium_policy"`
	ChinesePolicy        string  `json:"chinese_investment_policy,omitempty" yaml:"chinese_investment_policy"`
	InvestmentUSDBillion float64 `json:"infrastructure_investment_usd_billion,omitempty" yaml:"infrastructure_investment_usd_billion"`
	PriceEnvironment     string  `json:"price_environment,omitempty" yaml:"price_environment"`
}

// Config validates the preset into a scenario Config.
func (p Preset) Config(investmentCap float64) (Config, error) {
	cfg, err := NewConfig(p.Input(), investmentCap)
	if err != nil {
		return Config{}, eris.Wrapf(err, "scenario: preset %q", p.Name)
	}
	return cfg, nil
}

// Input returns the preset as an unvalidated scenario request.
func (p Preset) Input() Input {
	return Input{
		UraniumPolicy:        p.UraniumPolicy,
		ChinesePolicy:        p.ChinesePolicy,
		InvestmentUSDBillion: p.InvestmentUSDBillion,
		PriceEnvironment:     p.PriceEnvironment,
	}
}

// Presets is an ordered set of named scenarios.
type Presets []Preset

// Get returns the preset with the given name (case-insensitive).
func (ps Presets) Get(name string) (Preset, bool) {
	for _, p := range ps {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Preset{}, false
}

// Names lists preset names in file order.
func (ps Presets) Names() []string {
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = p.Name
	}
	return names
}

// LoadPresets reads a presets file with a top-level "scenarios" list.
func LoadPresets(path string) (Presets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "scenario: read presets %s", path)
	}
	return ParsePresets(data)
}

// ParsePresets decodes presets YAML and checks that names are present and
// unique and that every preset validates.
func ParsePresets(data []byte) (Presets, error) {
	var wrapper struct {
		Scenarios Presets `yaml:"scenarios"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, eris.Wrap(err, "scenario: parse presets")
	}

	seen := make(map[string]bool, len(wrapper.Scenarios))
	for i, p := range wrapper.Scenarios {
		key := strings.ToLower(strings.TrimSpace(p.Name))
		if key == "" {
			return nil, eris.Errorf("scenario: preset %d has no name", i+1)
		}
		if seen[key] {
			return nil, eris.Errorf("scenario: duplicate preset %q", p.Name)
		}
		seen[key] = true

		if _, err := p.Config(DefaultInvestmentCap); err != nil {
			return nil, err
		}
	}
	return wrapper.Scenarios, nil
}
