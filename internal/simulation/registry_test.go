package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeonardoBeccarini/agri_dashboard/internal/model/entities"
)

func newTestRegistry(t *testing.T, src Source, plots []entities.Plot) *Registry {
	t.Helper()
	r, err := NewRegistry(DefaultConfig(), src, plots)
	require.NoError(t, err)
	return r
}

func TestRegistryRainRaisesMoistureAndCools(t *testing.T) {
	r := newTestRegistry(t, NewSeededSource(42), DefaultPlots())

	for round := 0; round < 20; round++ {
		before := r.Plots()
		r.ApplyRain()
		after := r.Plots()
		for i := range before {
			assert.GreaterOrEqual(t, after[i].Moisture, before[i].Moisture, "round %d plot %s", round, before[i].ID)
			assert.LessOrEqual(t, after[i].Moisture, 50.0)
			assert.LessOrEqual(t, after[i].Temperature, before[i].Temperature)
			assert.GreaterOrEqual(t, after[i].Temperature, 25.0)
		}
	}
}

func TestRegistryRainExactValues(t *testing.T) {
	// 0.5 → moisture +17.5, temperature -1.5
	r := newTestRegistry(t, Fixed(0.5), DefaultPlots())
	r.ApplyRain()

	p1, _ := r.Get("plot1")
	assert.InDelta(t, 45.5, p1.Moisture, 1e-9)
	assert.InDelta(t, 30.5, p1.Temperature, 1e-9)

	p2, _ := r.Get("plot2")
	assert.Equal(t, 50.0, p2.Moisture, "clamped at the upper bound")
	assert.InDelta(t, 27.5, p2.Temperature, 1e-9)
}

func TestRegistryRainTemperatureFloor(t *testing.T) {
	plots := []entities.Plot{{ID: "a", Moisture: 10, Temperature: 25.5}}
	r := newTestRegistry(t, Fixed(0.99), plots)
	r.ApplyRain()
	p, _ := r.Get("a")
	assert.Equal(t, 25.0, p.Temperature)
}

func TestRegistryIrrigationTouchesOnlyTarget(t *testing.T) {
	r := newTestRegistry(t, Fixed(0.2), DefaultPlots())
	before := r.Plots()

	require.True(t, r.ApplyIrrigation("plot3"))
	after := r.Plots()

	for i := range before {
		if before[i].ID == "plot3" {
			assert.InDelta(t, 45.0, after[i].Moisture, 1e-9)
			assert.Equal(t, before[i].Temperature, after[i].Temperature)
			continue
		}
		assert.Equal(t, before[i], after[i])
	}
}

func TestRegistryIrrigationUnknownPlotIsNoop(t *testing.T) {
	r := newTestRegistry(t, NewSeededSource(1), DefaultPlots())
	before := r.Plots()

	assert.False(t, r.ApplyIrrigation("nope"))
	assert.Equal(t, before, r.Plots())
}

func TestRegistryResetWithinRanges(t *testing.T) {
	plots := DefaultPlots()
	plots[0].Moisture, plots[0].Temperature = 99, -10
	r := newTestRegistry(t, NewSeededSource(7), plots)

	for round := 0; round < 50; round++ {
		r.ResetAll()
		for _, p := range r.Plots() {
			assert.GreaterOrEqual(t, p.Moisture, 25.0)
			assert.Less(t, p.Moisture, 50.0)
			assert.GreaterOrEqual(t, p.Temperature, 25.0)
			assert.Less(t, p.Temperature, 35.0)
		}
	}
}

func TestRegistryIrrigationThenRainScenario(t *testing.T) {
	plots := []entities.Plot{{ID: "A", Name: "Plot A", Moisture: 28, Temperature: 32}}
	r := newTestRegistry(t, Fixed(0.2), plots)

	// 8 + 0.2*10 = +10
	require.True(t, r.ApplyIrrigation("A"))
	a, _ := r.Get("A")
	assert.InDelta(t, 38.0, a.Moisture, 1e-9)

	// 10 + 0.2*15 = +13 → 51 → clamped
	r.ApplyRain()
	a, _ = r.Get("A")
	assert.Equal(t, 50.0, a.Moisture)
	assert.InDelta(t, 31.4, a.Temperature, 1e-9)
}

func TestRegistryRejectsDuplicateIDs(t *testing.T) {
	_, err := NewRegistry(DefaultConfig(), Fixed(0), []entities.Plot{{ID: "x"}, {ID: "x"}})
	require.ErrorIs(t, err, ErrDuplicatePlot)
}

func TestRegistrySnapshotsAreCopies(t *testing.T) {
	r := newTestRegistry(t, Fixed(0.5), DefaultPlots())
	held := r.Plots()
	r.ResetAll()
	held[0].Moisture = -1

	p, _ := r.Get(held[0].ID)
	assert.NotEqual(t, -1.0, p.Moisture)
	assert.Equal(t, 28.0, DefaultPlots()[0].Moisture)
}
