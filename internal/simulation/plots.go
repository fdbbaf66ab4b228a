package simulation

import "github.com/LeonardoBeccarini/agri_dashboard/internal/model/entities"

// DefaultPlots is the farm layout the dashboard starts with.
func DefaultPlots() []entities.Plot {
	return []entities.Plot{
		{ID: "plot1", Name: "Plot 1", Crop: "Tomatoes", Position: entities.Position{X: 25, Y: 30}, Moisture: 28, Temperature: 32},
		{ID: "plot2", Name: "Plot 2", Crop: "Corn", Position: entities.Position{X: 60, Y: 25}, Moisture: 45, Temperature: 29},
		{ID: "plot3", Name: "Plot 3", Crop: "Wheat", Position: entities.Position{X: 35, Y: 60}, Moisture: 35, Temperature: 31},
		{ID: "plot4", Name: "Plot 4", Crop: "Soybeans", Position: entities.Position{X: 70, Y: 55}, Moisture: 42, Temperature: 28},
		{ID: "plot5", Name: "Plot 5", Crop: "Carrots", Position: entities.Position{X: 50, Y: 75}, Moisture: 25, Temperature: 33},
	}
}
