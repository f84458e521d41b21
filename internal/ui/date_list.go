package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/ngmaloney/scubalog-terminal/internal/models"
	"github.com/ngmaloney/scubalog-terminal/internal/stats"
)

// dateItem wraps a date filter option for use in a list
type dateItem struct {
	value string // stats.AllDates or a date cell value
	count int
}

// FilterValue implements list.Item
func (d dateItem) FilterValue() string {
	return d.value
}

// Title implements list.DefaultItem
func (d dateItem) Title() string {
	if d.value == stats.AllDates {
		return fmt.Sprintf("All Dates (%d)", d.count)
	}
	return d.value
}

// Description implements list.DefaultItem
func (d dateItem) Description() string {
	if d.count == 1 {
		return "1 dive"
	}
	return fmt.Sprintf("%d dives", d.count)
}

// createDatePicker builds the date selector, newest date first, with the
// current selection highlighted
func createDatePicker(dives []models.Dive, selected string, width, height int) list.Model {
	dates := stats.UniqueDates(dives)

	items := make([]list.Item, 0, len(dates)+1)
	items = append(items, dateItem{value: stats.AllDates, count: len(dives)})
	for _, date := range dates {
		items = append(items, dateItem{value: date, count: len(stats.FilterByDate(dives, date))})
	}

	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = "Filter by Date"
	l.SetShowHelp(true)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	for i, item := range items {
		if item.(dateItem).value == selected {
			l.Select(i)
			break
		}
	}

	return l
}
