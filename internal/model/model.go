package model

import (
	"github.com/LeonardoBeccarini/agri_dashboard/internal/model/entities"
	"github.com/LeonardoBeccarini/agri_dashboard/internal/model/messages"
)

// Alias per esporre tipi comuni ai servizi

type (
	Plot       = entities.Plot
	Position   = entities.Position
	Sample     = entities.Sample
	SampleData = messages.SampleData
	PlotEvent  = messages.PlotEvent
	Command    = messages.Command
	EventKind  = messages.EventKind
)

const (
	EventRain       = messages.EventRain
	EventIrrigation = messages.EventIrrigation
	EventReset      = messages.EventReset
	EventSelect     = messages.EventSelect
)
