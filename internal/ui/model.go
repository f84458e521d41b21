package ui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/ngmaloney/scubalog-terminal/internal/config"
	"github.com/ngmaloney/scubalog-terminal/internal/models"
	"github.com/ngmaloney/scubalog-terminal/internal/sheets"
	"github.com/ngmaloney/scubalog-terminal/internal/stats"
)

// AppState represents the current state of the application
type AppState int

const (
	StateLoading    AppState = iota // Fetching the sheet
	StateDisplay                    // Stats and dive cards
	StateDatePicker                 // Choosing a date filter
	StateError                      // Load failed
)

// Model represents the application's state
type Model struct {
	state  AppState
	width  int
	height int
	err    error

	client sheets.Client
	sheet  config.SheetConfig
	logger *zap.Logger

	// Data
	dives        []models.Dive
	selectedDate string

	// Loading
	loading bool
	loadGen int
	spinner spinner.Model

	// Widgets
	viewport   viewport.Model
	datePicker list.Model
	keys       keyMap
	help       help.Model
}

// NewModel creates a new application model reading from client
func NewModel(client sheets.Client, sheet config.SheetConfig, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorPrimary)

	return Model{
		state:        StateLoading,
		client:       client,
		sheet:        sheet,
		logger:       logger,
		selectedDate: stats.AllDates,
		loading:      true,
		spinner:      s,
		viewport:     viewport.New(0, 0),
		keys:         newKeyMap(),
		help:         help.New(),
	}
}

// Init starts the first load
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadDives(m.client, m.loadGen))
}

// SetDives replaces the loaded dives
func (m *Model) SetDives(dives []models.Dive) {
	m.dives = dives
	m.loading = false
	m.refreshContent()
}

// SetState forces the application state
func (m *Model) SetState(state AppState) {
	m.state = state
}

// SetSelectedDate sets the date filter (stats.AllDates for none)
func (m *Model) SetSelectedDate(date string) {
	m.selectedDate = date
	m.refreshContent()
}

// Dives returns the loaded dives
func (m Model) Dives() []models.Dive {
	return m.dives
}

// FilteredDives returns the dives matching the current date filter
func (m Model) FilteredDives() []models.Dive {
	return stats.FilterByDate(m.dives, m.selectedDate)
}

// Stats returns statistics for the filtered dives
func (m Model) Stats() models.DiveStats {
	return stats.Compute(m.FilteredDives())
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.state == StateDatePicker {
			m.datePicker.SetSize(msg.Width-4, msg.Height-4)
		}
		m.refreshContent()
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case divesLoadedMsg:
		if msg.gen != m.loadGen {
			// Superseded by a newer reload
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.logger.Error("Loading dive data failed", zap.Error(msg.err))
			m.err = msg.err
			m.state = StateError
			return m, nil
		}
		m.err = nil
		m.dives = msg.dives
		m.state = StateDisplay
		m.refreshContent()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}

		switch m.state {
		case StateDisplay:
			return m.handleDisplayKeys(msg)
		case StateDatePicker:
			return m.handleDatePicker(msg)
		case StateError:
			if key.Matches(msg, m.keys.Reload) {
				return m.reload()
			}
		}
		return m, nil
	}

	// Mouse wheel and anything else the viewport understands
	if m.state == StateDisplay {
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

// handleDisplayKeys handles keyboard input in display state
func (m Model) handleDisplayKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch {
	case key.Matches(msg, m.keys.Filter):
		m.datePicker = createDatePicker(m.dives, m.selectedDate, m.width-4, m.height-4)
		m.state = StateDatePicker
		return m, nil

	case key.Matches(msg, m.keys.ClearFilter):
		m.selectedDate = stats.AllDates
		m.refreshContent()
		m.viewport.GotoTop()
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		return m.reload()
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// handleDatePicker handles keyboard input in the date selector
func (m Model) handleDatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch {
	case key.Matches(msg, m.keys.Select):
		if item, ok := m.datePicker.SelectedItem().(dateItem); ok {
			m.selectedDate = item.value
		}
		m.state = StateDisplay
		m.refreshContent()
		m.viewport.GotoTop()
		return m, nil

	case key.Matches(msg, m.keys.Back):
		m.state = StateDisplay
		return m, nil
	}

	m.datePicker, cmd = m.datePicker.Update(msg)
	return m, cmd
}

// reload starts a new load unless one is already in flight
func (m Model) reload() (tea.Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}
	m.loadGen++
	m.loading = true
	m.err = nil
	m.state = StateLoading
	return m, tea.Batch(m.spinner.Tick, loadDives(m.client, m.loadGen))
}

// refreshContent re-renders the card list into the viewport and resizes it
// to the space left by the header and footer
func (m *Model) refreshContent() {
	if m.width == 0 {
		return
	}

	chrome := lipgloss.Height(m.viewHeader()) + lipgloss.Height(m.viewFooter())
	height := m.height - chrome
	if height < 3 {
		height = 3
	}
	m.viewport.Width = m.width
	m.viewport.Height = height
	m.viewport.SetContent(m.renderDiveList())
}

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	switch m.state {
	case StateLoading:
		return m.viewLoading()
	case StateDisplay:
		return m.viewDisplay()
	case StateDatePicker:
		return m.viewDatePicker()
	case StateError:
		return m.viewError()
	}

	return ""
}

// viewLoading renders the loading view
func (m Model) viewLoading() string {
	status := mutedStyle.Render("Syncing with Google Sheets...")
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		fmt.Sprintf("%s %s", m.spinner.View(), status))
}

// viewError renders the error view
func (m Model) viewError() string {
	title := errorStyle.Render("✗ Error!")

	errorMsg := errLoadFailed.Error()
	if m.err != nil && !errors.Is(m.err, errLoadFailed) {
		errorMsg = m.err.Error()
	}

	helpText := helpStyle.Render("R: Retry • Q: Quit")

	var sections []string
	sections = append(sections, title)
	sections = append(sections, "")
	sections = append(sections, errorMsg)
	sections = append(sections, "")
	sections = append(sections, helpText)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// viewDisplay renders stats, the section title and the scrollable dive list
func (m Model) viewDisplay() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.viewHeader(),
		m.viewport.View(),
		m.viewFooter(),
	)
}

// viewHeader renders everything above the dive list
func (m Model) viewHeader() string {
	title := titleStyle.Render("🤿 ScubaLog Pro")
	subtitle := mutedStyle.Render("Live dive data dashboard")

	filterLabel := fmt.Sprintf("All Dates (%d)", len(m.dives))
	if m.selectedDate != stats.AllDates {
		filterLabel = m.selectedDate
	}
	filter := labelStyle.Render("Filter by Date: ") + valueStyle.Render(filterLabel)

	filtered := m.FilteredDives()
	sectionTitle := "Recent Dives"
	if m.selectedDate != stats.AllDates {
		sectionTitle = "Dives for " + m.selectedDate
	}
	section := sectionHeaderStyle.Render(sectionTitle) +
		mutedStyle.Render(fmt.Sprintf(" (%d)", len(filtered)))

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		subtitle,
		filter,
		"",
		RenderStats(stats.Compute(filtered), m.width),
		section,
		"",
	)
}

// viewFooter renders the sheet info and key help
func (m Model) viewFooter() string {
	source := mutedStyle.Render(fmt.Sprintf("Connected to Sheet ID: %s... (Tab: %s)",
		m.sheet.ShortSheetID(), m.sheet.Tab))
	return lipgloss.JoinVertical(lipgloss.Left, "", source, m.help.View(m.keys))
}

// renderDiveList renders the filtered dives, or the empty state
func (m Model) renderDiveList() string {
	filtered := m.FilteredDives()
	if len(filtered) == 0 {
		return emptyStateStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
			valueStyle.Bold(true).Render("No dives found"),
			mutedStyle.Render("Try selecting a different date or check the source sheet."),
		))
	}
	return RenderDiveCards(filtered, m.width)
}

// viewDatePicker renders the date selection list
func (m Model) viewDatePicker() string {
	helpText := helpStyle.Render("↑/↓: Navigate • Enter: Select • Esc: Back • Q: Quit")
	return lipgloss.JoinVertical(lipgloss.Left, m.datePicker.View(), helpText)
}
