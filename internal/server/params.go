package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/emcdo411/greenland-ree-dashboard/internal/deposit"
	"github.com/emcdo411/greenland-ree-dashboard/internal/scenario"
)

// scenarioRequest is the JSON body accepted by POST /api/scenario. Query
// parameters use the same names.
type scenarioRequest struct {
	Preset               string         `json:"preset"`
	UraniumPolicy        string         `json:"uranium_policy"`
	ChinesePolicy        string         `json:"chinese_investment_policy"`
	InvestmentUSDBillion *float64       `json:"infrastructure_investment_usd_billion"`
	PriceEnvironment     string         `json:"price_environment"`
	Top                  int            `json:"top"`
	Filter               deposit.Filter `json:"filter"`
}

// parseFilter reads min_score, max_score and the comma-separated ownership,
// uranium and status sets. An explicit max_score of 0 is honoured.
func parseFilter(q url.Values) (deposit.Filter, error) {
	var f deposit.Filter
	var errs []string

	if v := q.Get("min_score"); v != "" {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, "min_score must be a number")
		}
		f.MinScore = n
	}
	if v := q.Get("max_score"); v != "" {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, "max_score must be a number")
		}
		f.MaxScore = deposit.ScoreLimit(n)
	}
	f.OwnershipTypes = splitList(q.Get("ownership"))
	f.UraniumStatuses = splitList(q.Get("uranium"))
	f.Statuses = splitList(q.Get("status"))

	if len(errs) > 0 {
		return deposit.Filter{}, eris.Errorf("invalid filter: %s", strings.Join(errs, "; "))
	}
	if err := f.Check(); err != nil {
		return deposit.Filter{}, err
	}
	return f, nil
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseScenarioRequest reads a scenario request from the JSON body (POST) or
// the query string (GET).
func parseScenarioRequest(w http.ResponseWriter, r *http.Request) (scenarioRequest, error) {
	var req scenarioRequest
	if r.Method == http.MethodPost {
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			return scenarioRequest{}, eris.Wrap(err, "invalid request body")
		}
		if err := req.Filter.Check(); err != nil {
			return scenarioRequest{}, err
		}
		return req, nil
	}

	q := r.URL.Query()
	req.Preset = q.Get("preset")
	req.UraniumPolicy = q.Get("uranium_policy")
	req.ChinesePolicy = q.Get("chinese_investment_policy")
	req.PriceEnvironment = q.Get("price_environment")
	if v := q.Get("infrastructure_investment_usd_billion"); v != "" {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return scenarioRequest{}, eris.New("infrastructure_investment_usd_billion must be a number")
		}
		req.InvestmentUSDBillion = &n
	}
	if v := q.Get("top"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return scenarioRequest{}, eris.New("top must be an integer")
		}
		req.Top = n
	}
	f, err := parseFilter(q)
	if err != nil {
		return scenarioRequest{}, err
	}
	req.Filter = f
	return req, nil
}

// config resolves the request into a validated scenario. Explicit fields
// override the named preset.
func (req scenarioRequest) config(presets scenario.Presets, investmentCap float64) (scenario.Config, error) {
	var in scenario.Input
	if req.Preset != "" {
		p, ok := presets.Get(req.Preset)
		if !ok {
			return scenario.Config{}, eris.Errorf("unknown preset %q", req.Preset)
		}
		in = p.Input()
	}
	if req.UraniumPolicy != "" {
		in.UraniumPolicy = req.UraniumPolicy
	}
	if req.ChinesePolicy != "" {
		in.ChinesePolicy = req.ChinesePolicy
	}
	if req.InvestmentUSDBillion != nil {
		in.InvestmentUSDBillion = *req.InvestmentUSDBillion
	}
	if req.PriceEnvironment != "" {
		in.PriceEnvironment = req.PriceEnvironment
	}
	return scenario.NewConfig(in, investmentCap)
}
