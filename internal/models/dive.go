package models

// Default values used when a sheet row is missing a column or the cell is empty
const (
	DefaultPointName  = "Unnamed Site"
	DefaultDiveTime   = "N/A"
	DefaultDepth      = "0"
	DefaultWaterTemp  = "0"
	DefaultVisibility = "N/A"
	DefaultCurrent    = "N/A"
	DefaultWaves      = "N/A"
	DefaultGuide      = "N/A"
)

// Dive represents a single logged dive from the dive log sheet.
// Every field is kept as text, numeric interpretation is left to consumers.
type Dive struct {
	Timestamp  string // Form submission timestamp
	Date       string // Dive date as entered (e.g. "2024-01-01")
	PointName  string // Dive site
	DiveTime   string // minutes
	MaxDepth   string // meters
	AvgDepth   string // meters
	WaterTemp  string // Celsius
	Visibility string // e.g. "15m"
	Current    string // e.g. "Mild", "Strong"
	Waves      string // e.g. "Calm"
	Guide      string
}

// DiveStats contains aggregate statistics over a list of dives
type DiveStats struct {
	TotalDives   int
	AvgMaxDepth  float64 // meters
	AvgWaterTemp float64 // Celsius
	DeepestDive  float64 // meters
}

// IsZero reports whether no dives contributed to the stats
func (s DiveStats) IsZero() bool {
	return s == DiveStats{}
}
