// Package erddap answers raster point queries through an ERDDAP griddap
// endpoint serving daily gridded datasets.
package erddap

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cyclonelab/tc-sst-etl/internal/domain"
	"github.com/cyclonelab/tc-sst-etl/internal/observability"
)

// Client implements domain.RasterSource against an ERDDAP griddap server.
type Client struct {
	baseURL    string
	httpClient *http.Client
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a griddap client. timeout bounds the whole HTTP
// round trip of each query.
func NewClient(baseURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: metrics,
		logger:  logger,
	}
}

// Sample fetches the raw cell value covering the query date at the query
// point. The single-cell result comes back as a one-row griddap table
// whose last column is the data value; null there means a masked cell.
func (c *Client) Sample(ctx context.Context, q domain.RasterQuery) (float64, error) {
	constraint := fmt.Sprintf("%s[(%s)][(%.4f)][(%.4f)]",
		q.Band, q.Date.UTC().Format("2006-01-02T00:00:00Z"), q.Lat, q.Lon)
	fullURL := fmt.Sprintf("%s/%s.json?%s", c.baseURL, q.Dataset, url.PathEscape(constraint))

	start := time.Now()
	defer func() {
		c.metrics.RasterQueryDuration.Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("raster query: %w", err)
	}
	defer resp.Body.Close()

	// griddap reports a time constraint outside the dataset's range as 404.
	if resp.StatusCode == http.StatusNotFound {
		return 0, domain.ErrNoImage
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return 0, fmt.Errorf("erddap error: status %d: %s", resp.StatusCode, body)
	}

	var gr gridResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return 0, fmt.Errorf("decode response: %w", err)
	}

	if len(gr.Table.Rows) == 0 {
		return 0, domain.ErrNoImage
	}
	row := gr.Table.Rows[0]
	if len(row) == 0 || row[len(row)-1] == nil {
		return 0, domain.ErrMasked
	}
	v, ok := row[len(row)-1].(float64)
	if !ok {
		return 0, fmt.Errorf("unexpected cell value %v", row[len(row)-1])
	}
	return v, nil
}

// griddap table JSON: columns are time, latitude, longitude, then the
// requested variable.
type gridResponse struct {
	Table struct {
		ColumnNames []string `json:"columnNames"`
		Rows        [][]any  `json:"rows"`
	} `json:"table"`
}
