package sheets

import (
	"context"
	"fmt"

	"github.com/ngmaloney/scubalog-terminal/internal/models"
)

// Client defines the interface for loading dives from a spreadsheet
type Client interface {
	// Fetch downloads and parses the sheet, returning a *FetchError on
	// transport or HTTP failures
	Fetch(ctx context.Context) ([]models.Dive, error)

	// FetchDives is Fetch with failures logged and masked as an empty list
	FetchDives(ctx context.Context) []models.Dive
}

// FetchError describes a failed sheet download
type FetchError struct {
	URL        string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching sheet %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetching sheet %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
