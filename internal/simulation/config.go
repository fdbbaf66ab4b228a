package simulation

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is wrapped by every Config.Validate failure.
var ErrInvalidConfig = errors.New("invalid simulation config")

// Range is a half-open interval [Min, Max) for uniform draws.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Draw maps a uniform value u in [0,1) into the range.
func (r Range) Draw(u float64) float64 {
	return r.Min + u*(r.Max-r.Min)
}

// Contains reports whether v lies in [Min, Max).
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v < r.Max
}

// Perturbation groups every random range the engine draws from.
type Perturbation struct {
	RainMoisture       Range // added to every plot on rain
	RainCooling        Range // subtracted from temperature on rain
	IrrigationMoisture Range // added to the target plot on irrigation
	ResetMoisture      Range
	ResetTemperature   Range
	SeedMoistureNoise  Range // initial window, around the live reading
	SeedTempNoise      Range
	TickMoistureNoise  Range // periodic tick, around the live reading
	TickTempNoise      Range
}

// Config holds the domain constants of the simulation.
type Config struct {
	WindowSize   int           // samples kept per plot
	StartHour    int           // first label of the seeded window
	StepHours    int           // hours between consecutive samples
	LastHour     int           // the series never goes past this hour
	TickInterval time.Duration // wall-clock period of the scheduler

	MoistureMax    float64 // upper clamp for rain/irrigation
	TemperatureMin float64 // lower clamp for rain cooling

	Ranges Perturbation
}

// DefaultConfig returns the dashboard's stock behaviour:
// eight samples two hours apart from 06:00, one tick every five seconds.
func DefaultConfig() Config {
	return Config{
		WindowSize:     8,
		StartHour:      6,
		StepHours:      2,
		LastHour:       22,
		TickInterval:   5 * time.Second,
		MoistureMax:    50,
		TemperatureMin: 25,
		Ranges: Perturbation{
			RainMoisture:       Range{Min: 10, Max: 25},
			RainCooling:        Range{Min: 0, Max: 3},
			IrrigationMoisture: Range{Min: 8, Max: 18},
			ResetMoisture:      Range{Min: 25, Max: 50},
			ResetTemperature:   Range{Min: 25, Max: 35},
			SeedMoistureNoise:  Range{Min: -5, Max: 5},
			SeedTempNoise:      Range{Min: -3, Max: 3},
			TickMoistureNoise:  Range{Min: -4, Max: 4},
			TickTempNoise:      Range{Min: -2, Max: 2},
		},
	}
}

// Validate checks structural sanity; it does not second-guess the ranges' values.
func (c Config) Validate() error {
	if c.WindowSize <= 0 {
		return fmt.Errorf("%w: window size %d", ErrInvalidConfig, c.WindowSize)
	}
	if c.StepHours <= 0 {
		return fmt.Errorf("%w: step hours %d", ErrInvalidConfig, c.StepHours)
	}
	if c.StartHour < 0 || c.LastHour < c.StartHour {
		return fmt.Errorf("%w: day bounds %d..%d", ErrInvalidConfig, c.StartHour, c.LastHour)
	}
	// the seeded window must fit the day: no label past LastHour
	if last := c.StartHour + (c.WindowSize-1)*c.StepHours; last > c.LastHour {
		return fmt.Errorf("%w: window of %d ends at hour %d, past %d", ErrInvalidConfig, c.WindowSize, last, c.LastHour)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("%w: tick interval %s", ErrInvalidConfig, c.TickInterval)
	}
	named := map[string]Range{
		"rain moisture":       c.Ranges.RainMoisture,
		"rain cooling":        c.Ranges.RainCooling,
		"irrigation moisture": c.Ranges.IrrigationMoisture,
		"reset moisture":      c.Ranges.ResetMoisture,
		"reset temperature":   c.Ranges.ResetTemperature,
		"seed moisture noise": c.Ranges.SeedMoistureNoise,
		"seed temp noise":     c.Ranges.SeedTempNoise,
		"tick moisture noise": c.Ranges.TickMoistureNoise,
		"tick temp noise":     c.Ranges.TickTempNoise,
	}
	for name, r := range named {
		if r.Max < r.Min {
			return fmt.Errorf("%w: %s range [%g, %g)", ErrInvalidConfig, name, r.Min, r.Max)
		}
	}
	return nil
}
