package app

import (
	"net/http"
)

// Check is an optional dependency reported by /healthz and /readyz.
type Check struct {
	Name string
	OK   func() bool
}

type healthStatus struct {
	Status       string          `json:"status"`
	Dependencies map[string]bool `json:"dependencies"`
}

func (g *Gateway) evaluate() healthStatus {
	st := healthStatus{Status: "ok", Dependencies: make(map[string]bool, len(g.cfg.Checks))}
	for _, c := range g.cfg.Checks {
		ok := c.OK()
		st.Dependencies[c.Name] = ok
		if !ok {
			st.Status = "degraded"
		}
	}
	return st
}

// HandleHealth is always 200: the engine runs in-process, dependencies
// only degrade the export.
func (g *Gateway) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, g.evaluate())
}

// HandleReady: 200 solo se tutte le dipendenze sono ok.
func (g *Gateway) HandleReady(w http.ResponseWriter, _ *http.Request) {
	st := g.evaluate()
	code := http.StatusOK
	if st.Status != "ok" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, struct {
		Ready bool `json:"ready"`
		healthStatus
	}{Ready: code == http.StatusOK, healthStatus: st})
}
