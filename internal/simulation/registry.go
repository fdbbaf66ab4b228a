package simulation

import (
	"errors"
	"fmt"
	"math"

	"github.com/LeonardoBeccarini/agri_dashboard/internal/model/entities"
)

// ErrDuplicatePlot is returned when two plots share an id.
var ErrDuplicatePlot = errors.New("duplicate plot id")

// Registry keeps the canonical plot list. Every mutating operation builds a
// fresh slice and swaps it in, so a reader never sees a half-applied change.
// Registry is not safe for concurrent use; Engine serializes access.
type Registry struct {
	plots  []entities.Plot
	index  map[string]int
	cfg    Config
	source Source
}

func NewRegistry(cfg Config, src Source, plots []entities.Plot) (*Registry, error) {
	index := make(map[string]int, len(plots))
	for i, p := range plots {
		if _, dup := index[p.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicatePlot, p.ID)
		}
		index[p.ID] = i
	}
	cp := make([]entities.Plot, len(plots))
	copy(cp, plots)
	return &Registry{plots: cp, index: index, cfg: cfg, source: src}, nil
}

// Plots returns a copy of the current list.
func (r *Registry) Plots() []entities.Plot {
	out := make([]entities.Plot, len(r.plots))
	copy(out, r.plots)
	return out
}

func (r *Registry) Get(id string) (entities.Plot, bool) {
	i, ok := r.index[id]
	if !ok {
		return entities.Plot{}, false
	}
	return r.plots[i], true
}

func (r *Registry) Has(id string) bool {
	_, ok := r.index[id]
	return ok
}

func (r *Registry) Len() int { return len(r.plots) }

// ApplyRain wets and cools every plot.
func (r *Registry) ApplyRain() {
	next := r.Plots()
	for i := range next {
		p := &next[i]
		p.Moisture = math.Min(r.cfg.MoistureMax, p.Moisture+r.cfg.Ranges.RainMoisture.Draw(r.source.Float64()))
		p.Temperature = math.Max(r.cfg.TemperatureMin, p.Temperature-r.cfg.Ranges.RainCooling.Draw(r.source.Float64()))
	}
	r.plots = next
}

// ApplyIrrigation wets only the plot with the given id.
// An unknown id leaves the registry untouched and returns false.
func (r *Registry) ApplyIrrigation(id string) bool {
	i, ok := r.index[id]
	if !ok {
		return false
	}
	next := r.Plots()
	next[i].Moisture = math.Min(r.cfg.MoistureMax, next[i].Moisture+r.cfg.Ranges.IrrigationMoisture.Draw(r.source.Float64()))
	r.plots = next
	return true
}

// ResetAll overwrites every reading with a fresh draw; prior values are discarded.
func (r *Registry) ResetAll() {
	next := r.Plots()
	for i := range next {
		next[i].Moisture = r.cfg.Ranges.ResetMoisture.Draw(r.source.Float64())
		next[i].Temperature = r.cfg.Ranges.ResetTemperature.Draw(r.source.Float64())
	}
	r.plots = next
}
