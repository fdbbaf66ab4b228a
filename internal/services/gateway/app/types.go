package app

import (
	"github.com/LeonardoBeccarini/agri_dashboard/internal/recommendation"
	"github.com/LeonardoBeccarini/agri_dashboard/internal/view"
)

/************* DTO verso la dashboard *************/

type PlotRequest struct {
	PlotID string `json:"plot_id"`
}

// EventResponse is returned by every mutating endpoint. Applied is false
// when the operation was a no-op (unknown plot, nothing selected).
type EventResponse struct {
	Applied   bool           `json:"applied"`
	Dashboard view.Dashboard `json:"dashboard"`
}

type PlotsResponse struct {
	Selected string         `json:"selected"`
	Plots    []view.MapPlot `json:"plots"`
}

type RecommendationsResponse struct {
	Recommendations []recommendation.Recommendation `json:"recommendations"`
	Summary         recommendation.Summary          `json:"summary"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
