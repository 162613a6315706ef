package erddap

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyclonelab/tc-sst-etl/internal/domain"
	"github.com/cyclonelab/tc-sst-etl/internal/observability"
)

func testMetrics() *observability.Metrics {
	return observability.NewMetricsForTesting()
}

func testClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		metrics:    testMetrics(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func testQuery() domain.RasterQuery {
	return domain.RasterQuery{
		Dataset: "ncdcOisst21Agg",
		Band:    "sst",
		Date:    time.Date(1984, 9, 1, 0, 0, 0, 0, time.UTC),
		Lon:     -82.7,
		Lat:     13.4,
	}
}

func tableJSON(rows [][]any) gridResponse {
	var gr gridResponse
	gr.Table.ColumnNames = []string{"time", "latitude", "longitude", "sst"}
	gr.Table.Rows = rows
	return gr
}

func TestClient_Sample_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "ncdcOisst21Agg.json")

		raw, err := url.PathUnescape(r.URL.RawQuery)
		require.NoError(t, err)
		assert.Equal(t, "sst[(1984-09-01T00:00:00Z)][(13.4000)][(-82.7000)]", raw)

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(tableJSON([][]any{
			{"1984-09-01T00:00:00Z", 13.4, -82.7, 2853.0},
		})))
	}))
	defer srv.Close()

	v, err := testClient(srv.URL).Sample(context.Background(), testQuery())
	require.NoError(t, err)
	assert.Equal(t, 2853.0, v)
}

func TestClient_Sample_MaskedCell(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(tableJSON([][]any{
			{"1984-09-01T00:00:00Z", 13.4, -82.7, nil},
		})))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Sample(context.Background(), testQuery())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMasked)
}

func TestClient_Sample_NoRows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(tableJSON(nil)))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Sample(context.Background(), testQuery())
	assert.ErrorIs(t, err, domain.ErrNoImage)
}

func TestClient_Sample_DateOutOfRange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("Your query produced no matching results."))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Sample(context.Background(), testQuery())
	assert.ErrorIs(t, err, domain.ErrNoImage)
}

func TestClient_Sample_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("internal error"))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Sample(context.Background(), testQuery())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestClient_Sample_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := &Client{
		baseURL:    srv.URL,
		httpClient: &http.Client{Timeout: 50 * time.Millisecond},
		metrics:    testMetrics(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	_, err := c.Sample(context.Background(), testQuery())
	require.Error(t, err)
}

func TestClient_Sample_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := testClient(srv.URL).Sample(ctx, testQuery())
	require.Error(t, err)
}

func TestClient_Sample_GarbageBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Sample(context.Background(), testQuery())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}
