package view

import (
	"math"
	"time"

	"github.com/LeonardoBeccarini/agri_dashboard/internal/model/entities"
	"github.com/LeonardoBeccarini/agri_dashboard/internal/recommendation"
	"github.com/LeonardoBeccarini/agri_dashboard/internal/simulation"
)

// MapStatus is the color bucket of the farm map. Its thresholds differ from
// the recommendation rules: exactly 40 is still "moderate" on the map.
type MapStatus string

const (
	MapHealthy  MapStatus = "healthy"
	MapModerate MapStatus = "moderate"
	MapLow      MapStatus = "low"
)

const (
	needsWaterBelow     = 35.0
	moistureScaleFloor  = 50.0
	temperatureScaleMin = 40.0
)

type MapPlot struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Crop       string            `json:"crop"`
	Position   entities.Position `json:"position"`
	Moisture   float64           `json:"moisture"`
	Status     MapStatus         `json:"status"`
	NeedsWater bool              `json:"needs_water"`
	Selected   bool              `json:"selected"`
}

type Chart struct {
	PlotID           string            `json:"plot_id"`
	Points           []entities.Sample `json:"points"`
	MoistureScale    float64           `json:"moisture_scale"`
	TemperatureScale float64           `json:"temperature_scale"`
}

type Option struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// Dashboard is the whole payload a page render needs.
type Dashboard struct {
	Controls        []Option                        `json:"controls"`
	Map             []MapPlot                       `json:"map"`
	Chart           Chart                           `json:"chart"`
	Recommendations []recommendation.Recommendation `json:"recommendations"`
	Summary         recommendation.Summary          `json:"summary"`
	LastUpdated     time.Time                       `json:"last_updated"`
}

func ClassifyMap(moisture float64) MapStatus {
	switch {
	case moisture > 40:
		return MapHealthy
	case moisture >= 30:
		return MapModerate
	default:
		return MapLow
	}
}

func BuildMap(plots []entities.Plot, selected string) []MapPlot {
	out := make([]MapPlot, 0, len(plots))
	for _, p := range plots {
		out = append(out, MapPlot{
			ID:         p.ID,
			Name:       p.Name,
			Crop:       p.Crop,
			Position:   p.Position,
			Moisture:   p.Moisture,
			Status:     ClassifyMap(p.Moisture),
			NeedsWater: p.Moisture < needsWaterBelow,
			Selected:   p.ID == selected,
		})
	}
	return out
}

// BuildChart scales the axes to the data, never below 50 (moisture) and 40 (°C).
func BuildChart(plotID string, samples []entities.Sample) Chart {
	c := Chart{
		PlotID:           plotID,
		Points:           make([]entities.Sample, len(samples)),
		MoistureScale:    moistureScaleFloor,
		TemperatureScale: temperatureScaleMin,
	}
	copy(c.Points, samples)
	for _, s := range samples {
		c.MoistureScale = math.Max(c.MoistureScale, s.Moisture)
		c.TemperatureScale = math.Max(c.TemperatureScale, s.Temperature)
	}
	return c
}

func BuildControls(plots []entities.Plot, selected string) []Option {
	out := make([]Option, 0, len(plots))
	for _, p := range plots {
		out = append(out, Option{Value: p.ID, Label: p.Label(), Selected: p.ID == selected})
	}
	return out
}

// Build derives every view from one engine snapshot.
func Build(snap simulation.Snapshot) Dashboard {
	return Dashboard{
		Controls:        BuildControls(snap.Plots, snap.Selected),
		Map:             BuildMap(snap.Plots, snap.Selected),
		Chart:           BuildChart(snap.Selected, snap.Series),
		Recommendations: recommendation.EvaluateAll(snap.Plots),
		Summary:         recommendation.Summarize(snap.Plots),
		LastUpdated:     snap.UpdatedAt,
	}
}
