package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ngmaloney/scubalog-terminal/internal/models"
)

// minCardWidth is the narrowest card that still fits the 3-column detail grid
const minCardWidth = 44

// RenderDiveCard renders a single dive as a bordered card of the given outer width
func RenderDiveCard(d models.Dive, width int) string {
	if width < minCardWidth {
		width = minCardWidth
	}
	// Border: 2 chars, Padding: 2 chars
	inner := width - 4

	badge := badgeStyle.Render(d.DiveTime + " min")
	nameWidth := inner - lipgloss.Width(badge) - 1
	name := truncate(d.PointName, nameWidth-2)
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		cardHeaderStyle.Width(nameWidth).Render(name),
		" ",
		badge,
	)

	colWidth := inner / 3
	cellStyle := lipgloss.NewStyle().Width(colWidth)
	cell := func(label, value string) string {
		return cellStyle.Render(labelStyle.Render(strings.ToUpper(label)) + "\n" +
			valueStyle.Render(truncate(value, colWidth-1)))
	}

	row1 := lipgloss.JoinHorizontal(lipgloss.Top,
		cell("Depth (Max/Avg)", fmt.Sprintf("%sm / %sm", d.MaxDepth, d.AvgDepth)),
		cell("Water Temp", d.WaterTemp+"°C"),
		cell("Visibility", d.Visibility),
	)
	row2 := lipgloss.JoinHorizontal(lipgloss.Top,
		cell("Current", d.Current),
		cell("Waves", d.Waves),
		cell("Guide", d.Guide),
	)

	logged := lipgloss.NewStyle().
		Width(inner).
		Align(lipgloss.Right).
		Render(mutedStyle.Render("Logged: " + d.Timestamp))

	body := lipgloss.JoinVertical(lipgloss.Left, header, "", row1, "", row2, "", logged)
	return cardStyle.Width(width - 2).Render(body)
}

// RenderDiveCards lays cards out in one or two columns depending on width
func RenderDiveCards(dives []models.Dive, width int) string {
	columns := 1
	if width >= 2*minCardWidth+1 {
		columns = 2
	}
	cardWidth := width
	if columns == 2 {
		cardWidth = (width - 1) / 2
	}

	var rows []string
	for i := 0; i < len(dives); i += columns {
		cards := []string{RenderDiveCard(dives[i], cardWidth)}
		if columns == 2 && i+1 < len(dives) {
			cards = append(cards, " ", RenderDiveCard(dives[i+1], cardWidth))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// RenderStats renders the four summary tiles
func RenderStats(s models.DiveStats, width int) string {
	tileWidth := 18
	if width > 0 && width/4-1 > tileWidth {
		tileWidth = width/4 - 1
	}

	tile := func(label, value, unit string, color lipgloss.Color) string {
		content := lipgloss.JoinVertical(lipgloss.Center,
			lipgloss.NewStyle().Foreground(color).Bold(true).Render(strings.ToUpper(label)),
			lipgloss.NewStyle().Foreground(color).Bold(true).Render(value+unit),
		)
		return tileStyle.BorderForeground(color).Width(tileWidth - 2).Render(content)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		tile("Total Dives", strconv.Itoa(s.TotalDives), "", colorBlue),
		tile("Avg Max Depth", formatAverage(s.AvgMaxDepth), "m", colorIndigo),
		tile("Avg Temp", formatAverage(s.AvgWaterTemp), "°C", colorCyan),
		tile("Deepest Dive", formatDepth(s.DeepestDive), "m", colorViolet),
	)
}

// formatAverage formats an average to one decimal place
func formatAverage(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// formatDepth formats a depth with the fewest digits needed ("22", "18.5")
func formatDepth(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// truncate shortens s to at most n cells, adding an ellipsis
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= n {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > n {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
