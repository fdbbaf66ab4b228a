// Package recommendation maps a plot's live moisture to an irrigation advice.
// Everything here is pure: same moisture, same answer.
package recommendation

import (
	"github.com/LeonardoBeccarini/agri_dashboard/internal/model/entities"
)

// Status is the moisture classification of a plot.
type Status string

const (
	StatusCritical Status = "critical"
	StatusWarning  Status = "warning"
	StatusHealthy  Status = "healthy"
)

// Soglie fisse: critical sotto 30, warning sotto 40, healthy da 40 in su (incluso).
const (
	CriticalBelow = 30.0
	WarningBelow  = 40.0

	CriticalVolumeLiters = 25.0
	WarningVolumeLiters  = 15.0
)

// Recommendation is the advice for one plot.
type Recommendation struct {
	PlotID       string  `json:"plot_id"`
	PlotName     string  `json:"plot_name"`
	Crop         string  `json:"crop"`
	Moisture     float64 `json:"moisture"`
	Temperature  float64 `json:"temperature"`
	Status       Status  `json:"status"`
	Message      string  `json:"message"`
	Action       string  `json:"action"`
	VolumeLiters float64 `json:"volume_liters"` // 0 when no irrigation is advised
}

// Summary counts plots per status.
type Summary struct {
	Critical int `json:"critical"`
	Warning  int `json:"warning"`
	Healthy  int `json:"healthy"`
}

func Classify(moisture float64) Status {
	switch {
	case moisture < CriticalBelow:
		return StatusCritical
	case moisture < WarningBelow:
		return StatusWarning
	default:
		return StatusHealthy
	}
}

func Evaluate(p entities.Plot) Recommendation {
	rec := Recommendation{
		PlotID:      p.ID,
		PlotName:    p.Name,
		Crop:        p.Crop,
		Moisture:    p.Moisture,
		Temperature: p.Temperature,
		Status:      Classify(p.Moisture),
	}
	switch rec.Status {
	case StatusCritical:
		rec.Message = "Irrigate immediately with 25L"
		rec.Action = "Critical - Water needed"
		rec.VolumeLiters = CriticalVolumeLiters
	case StatusWarning:
		rec.Message = "Consider irrigation with 15L"
		rec.Action = "Monitor closely"
		rec.VolumeLiters = WarningVolumeLiters
	default:
		rec.Message = "Optimal moisture level"
		rec.Action = "No action needed"
	}
	return rec
}

// EvaluateAll keeps the plots' order.
func EvaluateAll(plots []entities.Plot) []Recommendation {
	out := make([]Recommendation, 0, len(plots))
	for _, p := range plots {
		out = append(out, Evaluate(p))
	}
	return out
}

func Summarize(plots []entities.Plot) Summary {
	var s Summary
	for _, p := range plots {
		switch Classify(p.Moisture) {
		case StatusCritical:
			s.Critical++
		case StatusWarning:
			s.Warning++
		default:
			s.Healthy++
		}
	}
	return s
}
