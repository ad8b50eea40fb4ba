package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/emcdo411/greenland-ree-dashboard/internal/dataset"
	"github.com/emcdo411/greenland-ree-dashboard/internal/deposit"
	"github.com/emcdo411/greenland-ree-dashboard/internal/geo"
	"github.com/emcdo411/greenland-ree-dashboard/internal/scenario"
)

type depositResponse struct {
	Deposit    deposit.Deposit     `json:"deposit"`
	Profile    deposit.Profile     `json:"profile"`
	Comparison *deposit.Comparison `json:"comparison,omitempty"`
}

type summaryResponse struct {
	Filter  deposit.Filter        `json:"filter"`
	Summary deposit.Summary       `json:"summary"`
	Stats   []deposit.ColumnStats `json:"stats"`
}

type scenarioResponse struct {
	Config      scenario.Config     `json:"config"`
	PriceEffect string              `json:"price_effect"`
	Leaders     scenario.Leadership `json:"leaders"`
	TopMovers   []scenario.Mover    `json:"top_movers"`
	Rows        []scenario.Row      `json:"rows"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "deposits": s.table.Len()})
}

func (s *Server) handleDeposits(w http.ResponseWriter, r *http.Request) {
	t, err := s.filtered(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if col := r.URL.Query().Get("sort"); col != "" {
		desc := strings.EqualFold(r.URL.Query().Get("order"), "desc")
		t, err = t.SortBy(col, desc)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"count":    t.Len(),
		"deposits": t.Rows(),
	})
}

func (s *Server) handleDeposit(w http.ResponseWriter, r *http.Request) {
	d, ok := s.lookup(chi.URLParam(r, "name"))
	if !ok {
		writeError(w, http.StatusNotFound, "deposit not found")
		return
	}

	resp := depositResponse{Deposit: d, Profile: deposit.ProfileOf(d)}
	if other := r.URL.Query().Get("compare"); other != "" {
		o, ok := s.lookup(other)
		if !ok {
			writeError(w, http.StatusNotFound, fmt.Sprintf("deposit %q not found", other))
			return
		}
		c := deposit.Compare(d, o)
		resp.Comparison = &c
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	t := s.table.Filter(f)

	stats, err := deposit.Describe(t)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "describe failed")
		s.log.Error("describe", zap.Error(err))
		return
	}
	writeJSON(w, http.StatusOK, summaryResponse{
		Filter:  f,
		Summary: deposit.Summarize(t),
		Stats:   stats,
	})
}

func (s *Server) handleScenario(w http.ResponseWriter, r *http.Request) {
	req, err := parseScenarioRequest(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	cfg, err := req.config(s.opts.Presets, s.opts.InvestmentCap)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	top := req.Top
	if top <= 0 {
		top = s.opts.TopMovers
	}

	key := scenarioCacheKey(cfg, req.Filter, top)
	if body, ok := s.cache.Get(key); ok {
		w.Header().Set("X-Cache", "HIT")
		writeRaw(w, http.StatusOK, body.([]byte))
		return
	}

	res := scenario.Apply(s.table.Filter(req.Filter), cfg)
	body, err := json.Marshal(scenarioResponse{
		Config:      res.Config,
		PriceEffect: res.PriceEffect,
		Leaders:     res.Leaders(),
		TopMovers:   res.TopMovers(top),
		Rows:        res.Rows,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "encode failed")
		s.log.Error("encode scenario", zap.Error(err))
		return
	}
	s.cache.SetDefault(key, body)

	w.Header().Set("X-Cache", "MISS")
	writeRaw(w, http.StatusOK, body)
}

func (s *Server) handlePresets(w http.ResponseWriter, _ *http.Request) {
	presets := s.opts.Presets
	if presets == nil {
		presets = scenario.Presets{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"presets":            presets,
		"uranium_policies":   scenario.UraniumPolicies(),
		"chinese_policies":   scenario.ChinesePolicies(),
		"price_environments": scenario.PriceEnvironments(),
		"investment_cap":     s.opts.InvestmentCap,
	})
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	s.export(w, r, ".csv", "text/csv; charset=utf-8", func(buf *bytes.Buffer, t deposit.Table) error {
		return dataset.WriteCSV(buf, t)
	})
}

func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	s.export(w, r, ".xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", func(buf *bytes.Buffer, t deposit.Table) error {
		return dataset.WriteXLSX(buf, t)
	})
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	t, err := s.filtered(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var buf bytes.Buffer
	if err := geo.WriteGeoJSON(&buf, t); err != nil {
		writeError(w, http.StatusInternalServerError, "encode failed")
		s.log.Error("encode geojson", zap.Error(err))
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	writeRaw(w, http.StatusOK, buf.Bytes())
}

// export renders the filtered table into memory so an encoding failure can
// still produce a JSON error.
func (s *Server) export(w http.ResponseWriter, r *http.Request, ext, contentType string, write func(*bytes.Buffer, deposit.Table) error) {
	t, err := s.filtered(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var buf bytes.Buffer
	if err := write(&buf, t); err != nil {
		writeError(w, http.StatusInternalServerError, "export failed")
		s.log.Error("export", zap.String("format", ext), zap.Error(err))
		return
	}
	name := dataset.FileStem(s.opts.FilePrefix, s.opts.Now()) + ext
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) filtered(r *http.Request) (deposit.Table, error) {
	f, err := parseFilter(r.URL.Query())
	if err != nil {
		return deposit.Table{}, err
	}
	return s.table.Filter(f), nil
}

// lookup finds a deposit by its (possibly escaped) name, falling back to a
// case-insensitive match.
func (s *Server) lookup(raw string) (deposit.Deposit, bool) {
	name, err := url.PathUnescape(raw)
	if err != nil {
		name = raw
	}
	if d, ok := s.table.Find(name); ok {
		return d, true
	}
	for _, d := range s.table.Rows() {
		if strings.EqualFold(d.Name, name) {
			return d, true
		}
	}
	return deposit.Deposit{}, false
}

// scenarioCacheKey identifies a scenario response. Filters must already have
// passed Check.
func scenarioCacheKey(cfg scenario.Config, f deposit.Filter, top int) string {
	return fmt.Sprintf("%s|min=%g|max=%g|own=%s|u=%s|s=%s|top=%d",
		cfg.Key(), f.MinScore, f.Max(),
		strings.Join(f.OwnershipTypes, ","),
		strings.Join(f.UraniumStatuses, ","),
		strings.Join(f.Statuses, ","),
		top)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		zap.L().Error("server: encode response", zap.Error(eris.Wrap(err, "marshal")))
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
		return
	}
	writeRaw(w, status, body)
}

func writeRaw(w http.ResponseWriter, status int, body []byte) {
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
