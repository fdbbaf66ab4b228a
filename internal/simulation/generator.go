package simulation

import (
	"github.com/LeonardoBeccarini/agri_dashboard/internal/model/entities"
)

// Generator synthesizes samples around a plot's live reading.
type Generator struct {
	cfg    Config
	source Source
}

func NewGenerator(cfg Config, src Source) *Generator {
	return &Generator{cfg: cfg, source: src}
}

// Seed builds the initial window: WindowSize samples StepHours apart from
// StartHour, each one the live reading plus seed noise.
func (g *Generator) Seed(p entities.Plot) *TimeSeries {
	ts := NewTimeSeries(g.cfg.WindowSize)
	for i := 0; i < g.cfg.WindowSize; i++ {
		hour := g.cfg.StartHour + i*g.cfg.StepHours
		ts.Append(entities.Sample{
			Time:        entities.HourLabel(hour),
			Moisture:    p.Moisture + g.cfg.Ranges.SeedMoistureNoise.Draw(g.source.Float64()),
			Temperature: p.Temperature + g.cfg.Ranges.SeedTempNoise.Draw(g.source.Float64()),
		})
	}
	return ts
}

// Next computes the sample following the series' last one.
// ok is false when the series is empty, its last label is unreadable, or the
// next hour would pass LastHour: the series freezes at the end of the day and
// never wraps around.
// Tick noise is not clamped, so a sample may fall outside the live clamps.
func (g *Generator) Next(p entities.Plot, ts *TimeSeries) (entities.Sample, bool) {
	last, ok := ts.Last()
	if !ok {
		return entities.Sample{}, false
	}
	hour, err := last.Hour()
	if err != nil {
		return entities.Sample{}, false
	}
	next := hour + g.cfg.StepHours
	if next > g.cfg.LastHour {
		return entities.Sample{}, false
	}
	return entities.Sample{
		Time:        entities.HourLabel(next),
		Moisture:    p.Moisture + g.cfg.Ranges.TickMoistureNoise.Draw(g.source.Float64()),
		Temperature: p.Temperature + g.cfg.Ranges.TickTempNoise.Draw(g.source.Float64()),
	}, true
}
