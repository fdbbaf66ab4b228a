package entities

// Position is the plot location on the farm map, in percent of width/height.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Plot represents a tract of land growing a particular crop.
// Identity, name, crop and position never change after startup;
// only Moisture and Temperature are mutated by the engine.
type Plot struct {
	ID          string   `json:"id"`   // unique plot identifier
	Name        string   `json:"name"` // display name, e.g. "Plot 1"
	Crop        string   `json:"crop"` // e.g. "Tomatoes"
	Position    Position `json:"position"`
	Moisture    float64  `json:"moisture"`    // soil moisture, 0..100
	Temperature float64  `json:"temperature"` // °C
}

// Label is the text used by the plot selector ("Plot 1 - Tomatoes").
func (p Plot) Label() string {
	if p.Crop == "" {
		return p.Name
	}
	return p.Name + " - " + p.Crop
}
