package sheets

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ngmaloney/scubalog-terminal/internal/models"
)

// Column positions in the dive log form export (columns A..K)
const (
	ColTimestamp = iota
	ColDate
	ColPointName
	ColDiveTime
	ColMaxDepth
	ColAvgDepth
	ColWaterTemp
	ColVisibility
	ColCurrent
	ColWaves
	ColGuide

	NumColumns
)

// MapDive maps a positional row onto a Dive. Missing or empty cells take the
// field default, so any row (even an empty one) yields a complete Dive.
func MapDive(row []string) models.Dive {
	return models.Dive{
		Timestamp:  cell(row, ColTimestamp, ""),
		Date:       cell(row, ColDate, ""),
		PointName:  cell(row, ColPointName, models.DefaultPointName),
		DiveTime:   cell(row, ColDiveTime, models.DefaultDiveTime),
		MaxDepth:   cell(row, ColMaxDepth, models.DefaultDepth),
		AvgDepth:   cell(row, ColAvgDepth, models.DefaultDepth),
		WaterTemp:  cell(row, ColWaterTemp, models.DefaultWaterTemp),
		Visibility: cell(row, ColVisibility, models.DefaultVisibility),
		Current:    cell(row, ColCurrent, models.DefaultCurrent),
		Waves:      cell(row, ColWaves, models.DefaultWaves),
		Guide:      cell(row, ColGuide, models.DefaultGuide),
	}
}

// MapDives maps every row, preserving order
func MapDives(rows [][]string) []models.Dive {
	dives := make([]models.Dive, 0, len(rows))
	for _, row := range rows {
		dives = append(dives, MapDive(row))
	}
	return dives
}

func cell(row []string, i int, def string) string {
	if i < len(row) && row[i] != "" {
		return row[i]
	}
	return def
}

// columnSpec describes how a dive field is found by header name
type columnSpec struct {
	name     string
	aliases  []string
	required bool
}

var columnSpecs = [NumColumns]columnSpec{
	ColTimestamp:  {name: "Timestamp", aliases: []string{"timestamp", "logged"}},
	ColDate:       {name: "Date", aliases: []string{"date", "dive date"}, required: true},
	ColPointName:  {name: "Point Name", aliases: []string{"point name", "dive site", "site", "location"}, required: true},
	ColDiveTime:   {name: "Dive Time", aliases: []string{"dive time", "duration", "bottom time"}},
	ColMaxDepth:   {name: "Max Depth", aliases: []string{"max depth", "maximum depth"}, required: true},
	ColAvgDepth:   {name: "Avg Depth", aliases: []string{"avg depth", "average depth"}},
	ColWaterTemp:  {name: "Water Temp", aliases: []string{"water temp", "water temperature", "temperature"}},
	ColVisibility: {name: "Visibility", aliases: []string{"visibility", "vis"}},
	ColCurrent:    {name: "Current", aliases: []string{"current", "currents"}},
	ColWaves:      {name: "Waves", aliases: []string{"waves", "wave", "surface"}},
	ColGuide:      {name: "Guide", aliases: []string{"guide", "dive guide"}},
}

// MissingColumnsError is returned when required columns are absent from the header
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Columns, ", "))
}

// HeaderMapper maps rows by header name instead of fixed position
type HeaderMapper struct {
	index [NumColumns]int // source column per field, -1 when absent
}

// NewHeaderMapper resolves dive fields against a header row
func NewHeaderMapper(header []string) (*HeaderMapper, error) {
	positions := make(map[string]int, len(header))
	for i, h := range header {
		key := normalizeHeader(h)
		if _, seen := positions[key]; !seen {
			positions[key] = i
		}
	}

	m := &HeaderMapper{}
	var missing []string
	for field, spec := range columnSpecs {
		m.index[field] = -1
		for _, alias := range spec.aliases {
			if i, ok := positions[alias]; ok {
				m.index[field] = i
				break
			}
		}
		if m.index[field] < 0 && spec.required {
			missing = append(missing, spec.name)
		}
	}

	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}
	return m, nil
}

// MapDive reorders the row into positional form and applies the defaults
func (m *HeaderMapper) MapDive(row []string) models.Dive {
	ordered := make([]string, NumColumns)
	for field, src := range m.index {
		if src >= 0 && src < len(row) {
			ordered[field] = row[src]
		}
	}
	return MapDive(ordered)
}

// MapDives maps every row, preserving order
func (m *HeaderMapper) MapDives(rows [][]string) []models.Dive {
	dives := make([]models.Dive, 0, len(rows))
	for _, row := range rows {
		dives = append(dives, m.MapDive(row))
	}
	return dives
}

var (
	unitSuffix = regexp.MustCompile(`\([^)]*\)`)
	spaceRun   = regexp.MustCompile(`\s+`)
)

// normalizeHeader lowercases a header and drops unit suffixes like "(m)"
func normalizeHeader(h string) string {
	h = unitSuffix.ReplaceAllString(h, " ")
	h = spaceRun.ReplaceAllString(h, " ")
	return strings.ToLower(strings.TrimSpace(h))
}
