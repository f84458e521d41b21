// Package stats derives statistics, date lists and filtered views from dives.
// Everything here is a pure function over the loaded list.
package stats

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ngmaloney/scubalog-terminal/internal/models"
)

// AllDates is the filter value that selects every dive
const AllDates = "all"

// Compute aggregates dives. An empty list yields zero-valued stats.
func Compute(dives []models.Dive) models.DiveStats {
	if len(dives) == 0 {
		return models.DiveStats{}
	}

	var depthSum, tempSum float64
	deepest := ParseNumber(dives[0].MaxDepth)
	for _, d := range dives {
		depth := ParseNumber(d.MaxDepth)
		depthSum += depth
		tempSum += ParseNumber(d.WaterTemp)
		if depth > deepest {
			deepest = depth
		}
	}

	n := float64(len(dives))
	return models.DiveStats{
		TotalDives:   len(dives),
		AvgMaxDepth:  depthSum / n,
		AvgWaterTemp: tempSum / n,
		DeepestDive:  deepest,
	}
}

var numberPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseNumber reads the leading decimal number of s ("18.5m" is 18.5).
// Text without a leading number is 0.
func ParseNumber(s string) float64 {
	match := numberPrefix.FindString(strings.TrimSpace(s))
	if match == "" {
		return 0
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		// Only reachable on exponent overflow
		return 0
	}
	return v
}

// FilterByDate returns the dives logged on date. AllDates or "" returns all dives.
func FilterByDate(dives []models.Dive, date string) []models.Dive {
	if date == "" || date == AllDates {
		return dives
	}

	filtered := make([]models.Dive, 0)
	for _, d := range dives {
		if d.Date == date {
			filtered = append(filtered, d)
		}
	}
	return filtered
}

var dateLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	"01/02/2006",
	"2006/01/02",
	"Jan 2, 2006",
	"2 Jan 2006",
	"January 2, 2006",
}

// ParseDate parses a sheet date cell using the layouts Google Forms produces
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// UniqueDates returns the distinct non-empty dates, newest first.
// Dates that cannot be parsed sort last, in reverse lexical order.
func UniqueDates(dives []models.Dive) []string {
	seen := make(map[string]bool)
	dates := make([]string, 0)
	for _, d := range dives {
		if d.Date == "" || seen[d.Date] {
			continue
		}
		seen[d.Date] = true
		dates = append(dates, d.Date)
	}

	sort.SliceStable(dates, func(i, j int) bool {
		ti, okI := ParseDate(dates[i])
		tj, okJ := ParseDate(dates[j])
		switch {
		case okI && okJ:
			if ti.Equal(tj) {
				return dates[i] > dates[j]
			}
			return ti.After(tj)
		case okI != okJ:
			return okI
		default:
			return dates[i] > dates[j]
		}
	})

	return dates
}
