package ui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ngmaloney/scubalog-terminal/internal/config"
	"github.com/ngmaloney/scubalog-terminal/internal/models"
	"github.com/ngmaloney/scubalog-terminal/internal/sheets"
	"github.com/ngmaloney/scubalog-terminal/internal/stats"
)

// fakeClient is a sheets.Client returning canned dives
type fakeClient struct {
	dives []models.Dive
	panic bool
	calls int
}

func (f *fakeClient) Fetch(ctx context.Context) ([]models.Dive, error) {
	return f.FetchDives(ctx), nil
}

func (f *fakeClient) FetchDives(ctx context.Context) []models.Dive {
	f.calls++
	if f.panic {
		panic("boom")
	}
	return f.dives
}

var testDives = []models.Dive{
	{Timestamp: "2024-01-01T10:00", Date: "2024-01-01", PointName: "Reef Point", DiveTime: "45", MaxDepth: "18.5", AvgDepth: "12.1", WaterTemp: "26", Visibility: "15m", Current: "Mild", Waves: "Calm", Guide: "Ana"},
	{Timestamp: "2024-01-01T14:30", Date: "2024-01-01", PointName: "Blue Hole, North", DiveTime: "38", MaxDepth: "22.0", AvgDepth: "14.5", WaterTemp: "24", Visibility: "20m", Current: "None", Waves: "Calm", Guide: "Ana"},
	{Timestamp: "2024-01-02T09:15", Date: "2024-01-02", PointName: "Coral Garden", DiveTime: "52", MaxDepth: "nope", AvgDepth: "8.0", WaterTemp: "27", Visibility: "10m", Current: "Strong", Waves: "Choppy", Guide: "Marco"},
}

func newTestModel(client sheets.Client) Model {
	m := NewModel(client, config.Default().Sheet, nil)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(Model)
}

func loadedModel(t *testing.T) Model {
	t.Helper()
	m := newTestModel(&fakeClient{dives: testDives})
	updated, _ := m.Update(divesLoadedMsg{dives: testDives, gen: m.loadGen})
	return updated.(Model)
}

func TestNewModel(t *testing.T) {
	m := NewModel(&fakeClient{}, config.Default().Sheet, nil)

	if m.state != StateLoading {
		t.Errorf("NewModel() state = %v, want StateLoading", m.state)
	}
	if !m.loading {
		t.Error("NewModel() should start loading")
	}
	if m.selectedDate != stats.AllDates {
		t.Errorf("NewModel() selectedDate = %q, want %q", m.selectedDate, stats.AllDates)
	}
}

func TestModel_Update_WindowSize(t *testing.T) {
	m := NewModel(&fakeClient{}, config.Default().Sheet, nil)

	updatedModel, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = updatedModel.(Model)

	if m.width != 120 {
		t.Errorf("After WindowSizeMsg, width = %d, want 120", m.width)
	}
	if m.height != 40 {
		t.Errorf("After WindowSizeMsg, height = %d, want 40", m.height)
	}
	if m.viewport.Width != 120 {
		t.Errorf("viewport width = %d, want 120", m.viewport.Width)
	}
}

func TestModel_Init_LoadsDives(t *testing.T) {
	client := &fakeClient{dives: testDives}
	m := NewModel(client, config.Default().Sheet, nil)

	if cmd := m.Init(); cmd == nil {
		t.Fatal("Init() should return a command")
	}

	msg := loadDives(client, 0)()
	loaded, ok := msg.(divesLoadedMsg)
	if !ok {
		t.Fatalf("loadDives() returned %T, want divesLoadedMsg", msg)
	}
	if loaded.err != nil {
		t.Errorf("loadDives() err = %v, want nil", loaded.err)
	}
	if len(loaded.dives) != 3 {
		t.Errorf("loadDives() returned %d dives, want 3", len(loaded.dives))
	}
}

func TestModel_DivesLoaded(t *testing.T) {
	m := loadedModel(t)

	if m.state != StateDisplay {
		t.Errorf("state = %v, want StateDisplay", m.state)
	}
	if m.loading {
		t.Error("loading should be false after load")
	}
	if len(m.Dives()) != 3 {
		t.Errorf("len(Dives()) = %d, want 3", len(m.Dives()))
	}

	s := m.Stats()
	if s.TotalDives != 3 || s.DeepestDive != 22.0 {
		t.Errorf("Stats() = %+v, want 3 dives, deepest 22", s)
	}
}

// A panic in the load path is the only thing that puts the UI in error state
func TestModel_LoadPanicShowsError(t *testing.T) {
	client := &fakeClient{panic: true}
	m := newTestModel(client)

	msg := loadDives(client, m.loadGen)()
	updated, _ := m.Update(msg)
	m = updated.(Model)

	if m.state != StateError {
		t.Fatalf("state = %v, want StateError", m.state)
	}
	if m.err == nil {
		t.Fatal("err should be set")
	}

	view := m.View()
	if !strings.Contains(view, "Unable to load dive data") {
		t.Errorf("error view missing message:\n%s", view)
	}
}

// A 404 from the sheet is masked: the UI shows an empty log, not an error
func TestModel_NotFoundShowsEmptyNotError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	sheet := config.Default().Sheet
	sheet.Host = server.URL
	client := sheets.NewGoogleSheetsClient(sheet, 0, nil)

	m := newTestModel(client)
	updated, _ := m.Update(loadDives(client, m.loadGen)())
	m = updated.(Model)

	if m.state != StateDisplay {
		t.Fatalf("state = %v, want StateDisplay", m.state)
	}
	if m.err != nil {
		t.Errorf("err = %v, want nil", m.err)
	}
	if !strings.Contains(m.View(), "No dives found") {
		t.Error("expected empty state in view")
	}
}

func TestModel_StaleLoadIgnored(t *testing.T) {
	m := newTestModel(&fakeClient{})
	m.loadGen = 2

	updated, _ := m.Update(divesLoadedMsg{dives: testDives, gen: 1})
	m = updated.(Model)

	if m.state != StateLoading {
		t.Errorf("state = %v, want StateLoading", m.state)
	}
	if len(m.dives) != 0 {
		t.Error("stale result should not replace dives")
	}
}

func TestModel_Reload(t *testing.T) {
	m := loadedModel(t)
	gen := m.loadGen

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = updated.(Model)

	if cmd == nil {
		t.Error("reload should return a command")
	}
	if m.state != StateLoading || !m.loading {
		t.Errorf("after reload state = %v loading = %v, want StateLoading/true", m.state, m.loading)
	}
	if m.loadGen != gen+1 {
		t.Errorf("loadGen = %d, want %d", m.loadGen, gen+1)
	}

	// Second reload while the first is in flight does nothing
	_, cmd = m.reload()
	if cmd != nil {
		t.Error("reload while loading should be ignored")
	}
}

func TestModel_ErrorRetry(t *testing.T) {
	m := newTestModel(&fakeClient{})
	updated, _ := m.Update(divesLoadedMsg{gen: m.loadGen, err: errLoadFailed})
	m = updated.(Model)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = updated.(Model)

	if cmd == nil {
		t.Error("retry should return a command")
	}
	if m.state != StateLoading {
		t.Errorf("state = %v, want StateLoading", m.state)
	}
	if m.err != nil {
		t.Error("retry should clear the error")
	}
}

func TestModel_DateFilterFlow(t *testing.T) {
	m := loadedModel(t)

	// Open picker
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}})
	m = updated.(Model)
	if m.state != StateDatePicker {
		t.Fatalf("state = %v, want StateDatePicker", m.state)
	}

	items := m.datePicker.Items()
	if len(items) != 3 {
		t.Fatalf("picker has %d items, want 3 (all + 2 dates)", len(items))
	}
	if got := items[0].(dateItem).Title(); got != "All Dates (3)" {
		t.Errorf("first item = %q, want 'All Dates (3)'", got)
	}
	if got := items[1].(dateItem).value; got != "2024-01-02" {
		t.Errorf("newest date = %q, want 2024-01-02", got)
	}

	// Pick 2024-01-01
	m.datePicker.Select(2)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	if m.state != StateDisplay {
		t.Errorf("state = %v, want StateDisplay", m.state)
	}
	if m.selectedDate != "2024-01-01" {
		t.Errorf("selectedDate = %q, want 2024-01-01", m.selectedDate)
	}
	if len(m.FilteredDives()) != 2 {
		t.Errorf("len(FilteredDives()) = %d, want 2", len(m.FilteredDives()))
	}
	if s := m.Stats(); s.TotalDives != 2 || s.DeepestDive != 22.0 {
		t.Errorf("Stats() = %+v, want stats over the filtered dives", s)
	}
	if !strings.Contains(m.View(), "Dives for 2024-01-01") {
		t.Error("view should show the filtered section title")
	}

	// Clear
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	m = updated.(Model)
	if m.selectedDate != stats.AllDates {
		t.Errorf("selectedDate = %q after clear, want all", m.selectedDate)
	}
}

func TestModel_DatePickerEscKeepsFilter(t *testing.T) {
	m := loadedModel(t)
	m.SetSelectedDate("2024-01-02")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}})
	m = updated.(Model)

	if got := m.datePicker.SelectedItem().(dateItem).value; got != "2024-01-02" {
		t.Errorf("picker cursor = %q, want current filter", got)
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)

	if m.state != StateDisplay || m.selectedDate != "2024-01-02" {
		t.Errorf("after esc state = %v date = %q", m.state, m.selectedDate)
	}
}

func TestModel_UnknownDateFilter(t *testing.T) {
	m := loadedModel(t)
	m.SetSelectedDate("1999-12-31")

	if len(m.FilteredDives()) != 0 {
		t.Error("expected no dives for unknown date")
	}
	if !m.Stats().IsZero() {
		t.Errorf("Stats() = %+v, want zero", m.Stats())
	}
	if !strings.Contains(m.View(), "No dives found") {
		t.Error("expected empty state in view")
	}
}

func TestModel_CtrlC_Quits(t *testing.T) {
	m := loadedModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Error("Expected Ctrl+C to return quit command")
	}
}

func TestModel_View_States(t *testing.T) {
	tests := []struct {
		name  string
		state AppState
		want  string
	}{
		{"loading", StateLoading, "Syncing with Google Sheets"},
		{"display", StateDisplay, "ScubaLog Pro"},
		{"date picker", StateDatePicker, "Filter by Date"},
		{"error", StateError, "Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := loadedModel(t)
			if tt.state == StateDatePicker {
				m.datePicker = createDatePicker(m.dives, m.selectedDate, 80, 20)
			}
			m.SetState(tt.state)

			view := m.View()
			if !strings.Contains(view, tt.want) {
				t.Errorf("View() for state %v missing %q", tt.state, tt.want)
			}
		})
	}
}

func TestModel_View_Footer(t *testing.T) {
	m := loadedModel(t)

	view := m.View()
	if !strings.Contains(view, "Connected to Sheet ID: 1Xn4HTnQ... (Tab: Form Responses 1)") {
		t.Errorf("footer missing sheet info:\n%s", view)
	}
}

func TestModel_View_InitialLoading(t *testing.T) {
	m := NewModel(&fakeClient{}, config.Default().Sheet, nil)

	if view := m.View(); view != "Loading..." {
		t.Errorf("View() before window size = %q, want 'Loading...'", view)
	}
}

func TestAppState_Constants(t *testing.T) {
	if StateLoading != 0 {
		t.Errorf("StateLoading = %d, want 0", StateLoading)
	}
	if StateDisplay != 1 {
		t.Errorf("StateDisplay = %d, want 1", StateDisplay)
	}
	if StateDatePicker != 2 {
		t.Errorf("StateDatePicker = %d, want 2", StateDatePicker)
	}
	if StateError != 3 {
		t.Errorf("StateError = %d, want 3", StateError)
	}
}
