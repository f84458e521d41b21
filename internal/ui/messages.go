package ui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ngmaloney/scubalog-terminal/internal/models"
	"github.com/ngmaloney/scubalog-terminal/internal/sheets"
)

// errLoadFailed is the user-facing message for a load that did not complete
var errLoadFailed = errors.New("Unable to load dive data. Please check the sheet visibility.")

// divesLoadedMsg is sent when a load finishes. gen identifies the load so
// results from a superseded reload can be dropped.
type divesLoadedMsg struct {
	dives []models.Dive
	gen   int
	err   error
}

// loadDives fetches dives in the background. The client masks fetch failures
// as an empty list, so err is only set when the load itself blows up.
func loadDives(client sheets.Client, gen int) tea.Cmd {
	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				msg = divesLoadedMsg{gen: gen, err: fmt.Errorf("%w (%v)", errLoadFailed, r)}
			}
		}()

		dives := client.FetchDives(context.Background())
		return divesLoadedMsg{dives: dives, gen: gen}
	}
}
