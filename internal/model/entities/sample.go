package entities

import (
	"fmt"
	"strconv"
	"strings"
)

// Sample is a single time-series observation for one plot.
// Samples are values: once appended to a series they are never modified.
type Sample struct {
	Time        string  `json:"time"` // "HH:00"
	Moisture    float64 `json:"moisture"`
	Temperature float64 `json:"temperature"`
}

// HourLabel formats an hour of day as a sample time label.
func HourLabel(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

// Hour parses the hour part of the sample time label.
func (s Sample) Hour() (int, error) {
	head, _, _ := strings.Cut(s.Time, ":")
	h, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil {
		return 0, fmt.Errorf("sample time %q: %w", s.Time, err)
	}
	return h, nil
}
