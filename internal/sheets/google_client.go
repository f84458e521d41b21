package sheets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ngmaloney/scubalog-terminal/internal/config"
	"github.com/ngmaloney/scubalog-terminal/internal/models"
)

// GoogleSheetsClient implements Client using the Google Sheets gviz CSV export
type GoogleSheetsClient struct {
	sheet      config.SheetConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewGoogleSheetsClient creates a client for the configured sheet tab.
// A zero timeout disables the client timeout.
func NewGoogleSheetsClient(sheet config.SheetConfig, timeout time.Duration, logger *zap.Logger) *GoogleSheetsClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GoogleSheetsClient{
		sheet: sheet,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// ExportURL builds the CSV export URL for the configured tab
func (c *GoogleSheetsClient) ExportURL() string {
	// Match encodeURIComponent: spaces as %20, not +
	tab := strings.ReplaceAll(url.QueryEscape(c.sheet.Tab), "+", "%20")
	return fmt.Sprintf("%s/%s/gviz/tq?tqx=out:csv&sheet=%s",
		strings.TrimRight(c.sheet.Host, "/"),
		url.PathEscape(c.sheet.ID),
		tab)
}

// Fetch downloads the sheet and maps every data row to a Dive
func (c *GoogleSheetsClient) Fetch(ctx context.Context) ([]models.Dive, error) {
	requestURL := c.ExportURL()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, &FetchError{URL: requestURL, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{URL: requestURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{
			URL:        requestURL,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("API returned status %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: requestURL, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	header, rows := ParseCSVWithHeader(string(body))

	if c.sheet.Mapping == config.MappingHeader {
		mapper, err := NewHeaderMapper(header)
		if err != nil {
			return nil, fmt.Errorf("mapping sheet %s: %w", c.sheet.Tab, err)
		}
		return mapper.MapDives(rows), nil
	}

	return MapDives(rows), nil
}

// FetchDives never returns an error: failures are logged and an empty list
// is returned, indistinguishable from a sheet with no dives
func (c *GoogleSheetsClient) FetchDives(ctx context.Context) []models.Dive {
	dives, err := c.Fetch(ctx)
	if err != nil {
		c.logger.Error("Error fetching dive data",
			zap.String("sheet", c.sheet.ID),
			zap.String("tab", c.sheet.Tab),
			zap.Error(err))
		return []models.Dive{}
	}

	c.logger.Debug("Fetched dive data",
		zap.String("tab", c.sheet.Tab),
		zap.Int("dives", len(dives)))
	return dives
}
