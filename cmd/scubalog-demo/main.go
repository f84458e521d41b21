package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/ngmaloney/scubalog-terminal/internal/config"
	"github.com/ngmaloney/scubalog-terminal/internal/models"
	"github.com/ngmaloney/scubalog-terminal/internal/ui"
)

// demoClient serves a fixed dive log so the dashboard runs without network access
type demoClient struct {
	dives []models.Dive
}

func (c demoClient) Fetch(ctx context.Context) ([]models.Dive, error) {
	return c.dives, nil
}

func (c demoClient) FetchDives(ctx context.Context) []models.Dive {
	return c.dives
}

// This demo shows the UI with mock data
func main() {
	dives := []models.Dive{
		{
			Timestamp: "3/14/2024 9:12:44", Date: "2024-03-14", PointName: "Blue Corner",
			DiveTime: "48", MaxDepth: "27.4", AvgDepth: "16.2", WaterTemp: "28",
			Visibility: "25m", Current: "Strong", Waves: "Calm", Guide: "Ana",
		},
		{
			Timestamp: "3/14/2024 14:40:02", Date: "2024-03-14", PointName: "German Channel",
			DiveTime: "55", MaxDepth: "18", AvgDepth: "11.5", WaterTemp: "29",
			Visibility: "20m", Current: "Mild", Waves: "Calm", Guide: "Ana",
		},
		{
			Timestamp: "3/15/2024 8:55:10", Date: "2024-03-15", PointName: "Jellyfish Lake",
			DiveTime: "40", MaxDepth: "4.5", AvgDepth: "2", WaterTemp: "31",
			Visibility: "8m", Current: "None", Waves: "Flat", Guide: "Marco",
		},
		{
			Timestamp: "3/16/2024 10:03:27", Date: "2024-03-16", PointName: "Chandelier Cave",
			DiveTime: "44", MaxDepth: "12", AvgDepth: "7.8", WaterTemp: "27",
			Visibility: "15m", Current: "None", Waves: "Choppy", Guide: "N/A",
		},
	}

	sheet := config.Default().Sheet
	m := ui.NewModel(demoClient{dives: dives}, sheet, zap.NewNop())
	m.SetDives(dives)

	// Set state to display
	m.SetState(ui.StateDisplay)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running demo: %v\n", err)
		os.Exit(1)
	}
}
