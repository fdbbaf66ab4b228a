package app

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/LeonardoBeccarini/agri_dashboard/internal/model"
	"github.com/LeonardoBeccarini/agri_dashboard/internal/recommendation"
	"github.com/LeonardoBeccarini/agri_dashboard/internal/view"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// readPlotID accepts {"plot_id": "..."} in the body or ?plot_id= in the query.
// An empty body is allowed.
func readPlotID(r *http.Request) (string, error) {
	if id := strings.TrimSpace(r.URL.Query().Get("plot_id")); id != "" {
		return id, nil
	}
	var req PlotRequest
	err := json.NewDecoder(io.LimitReader(r.Body, 1<<16)).Decode(&req)
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(req.PlotID), nil
}

func (g *Gateway) HandleDashboard(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, view.Build(g.engine.Snapshot()))
}

func (g *Gateway) HandlePlots(w http.ResponseWriter, _ *http.Request) {
	snap := g.engine.Snapshot()
	writeJSON(w, http.StatusOK, PlotsResponse{
		Selected: snap.Selected,
		Plots:    view.BuildMap(snap.Plots, snap.Selected),
	})
}

func (g *Gateway) HandleSeries(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	samples, ok := g.engine.Series(id)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown plot "+id)
		return
	}
	writeJSON(w, http.StatusOK, view.BuildChart(id, samples))
}

func (g *Gateway) HandleRecommendations(w http.ResponseWriter, _ *http.Request) {
	plots := g.engine.Snapshot().Plots
	writeJSON(w, http.StatusOK, RecommendationsResponse{
		Recommendations: recommendation.EvaluateAll(plots),
		Summary:         recommendation.Summarize(plots),
	})
}

func (g *Gateway) HandleSelection(w http.ResponseWriter, r *http.Request) {
	id, err := readPlotID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if id == "" {
		writeError(w, http.StatusBadRequest, "plot_id required")
		return
	}
	g.apply(w, model.Command{Action: model.EventSelect, PlotID: id}, true)
}

func (g *Gateway) HandleRain(w http.ResponseWriter, _ *http.Request) {
	g.apply(w, model.Command{Action: model.EventRain}, false)
}

// HandleIrrigation targets plot_id when given, the selected plot otherwise.
func (g *Gateway) HandleIrrigation(w http.ResponseWriter, r *http.Request) {
	id, err := readPlotID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	g.apply(w, model.Command{Action: model.EventIrrigation, PlotID: id}, false)
}

func (g *Gateway) HandleReset(w http.ResponseWriter, _ *http.Request) {
	g.apply(w, model.Command{Action: model.EventReset}, false)
}

// apply runs cmd and answers with the updated dashboard. With strict set
// a no-op becomes 404, as for selecting an unknown plot.
func (g *Gateway) apply(w http.ResponseWriter, cmd model.Command, strict bool) {
	applied, err := g.commands.Apply(cmd)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strict && !applied {
		writeError(w, http.StatusNotFound, "unknown plot "+cmd.PlotID)
		return
	}
	writeJSON(w, http.StatusOK, EventResponse{Applied: applied, Dashboard: view.Build(g.engine.Snapshot())})
}
