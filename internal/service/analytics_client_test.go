package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"core/internal/config"
	"core/internal/model"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, maxFailures int) *HTTPAnalyticsClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewHTTPAnalyticsClient(config.AnalyticsConfig{
		BaseURL:            srv.URL + "/api",
		Timeout:            5,
		BreakerMaxFailures: maxFailures,
		BreakerOpenTimeout: 60,
	}, zerolog.Nop())
}

func TestHTTPAnalyticsClient_Query(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/query/", r.URL.Path)

		var req model.QueryRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Analyze Wakad using 2019-2022", req.Message)
		assert.Equal(t, model.MetricDemand, req.Metric)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"summary": "Wakad shows rising demand.",
			"areas": ["Wakad"],
			"cities": ["Pune"],
			"metric": "demand",
			"year_range": [2019, 2022],
			"insights": {"areas": {"Wakad": {"avg_price": 6500, "price_volatility": NaN, "demand_trend": "Rising"}}},
			"chart": {"labels": [2019, 2020], "datasets": [{"label": "Wakad", "data": [1.5, NaN]}]}
		}`))
	}, 5)

	resp, err := client.Query(context.Background(), model.QueryRequest{
		Message: "Analyze Wakad using 2019-2022",
		Metric:  model.MetricDemand,
	})
	require.NoError(t, err)

	assert.Equal(t, "Wakad shows rising demand.", resp.Summary)
	assert.Equal(t, []string{"Wakad"}, resp.Areas)
	assert.Equal(t, &model.YearRange{Start: 2019, End: 2022}, resp.ConfirmedYears())
	require.NotNil(t, resp.Insights)
	assert.Nil(t, resp.Insights.Areas["Wakad"].PriceVolatility)
	require.NotNil(t, resp.Chart)
	require.Len(t, resp.Chart.Datasets, 1)
	assert.Nil(t, resp.Chart.Datasets[0].Data[1])
}

func TestHTTPAnalyticsClient_Localities(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/localities/", r.URL.Path)
		_, _ = w.Write([]byte(`{"localities": ["Wakad", "Aundh", "Baner"]}`))
	}, 5)

	localities, err := client.Localities(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Wakad", "Aundh", "Baner"}, localities)
}

func TestHTTPAnalyticsClient_Non200(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "boom"}`))
	}, 5)

	_, err := client.Query(context.Background(), model.QueryRequest{Message: "x", Metric: model.MetricPrice})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
	assert.NotErrorIs(t, err, ErrBackendUnavailable)
}

func TestHTTPAnalyticsClient_BreakerOpensWithoutRetrying(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}, 2)

	ctx := context.Background()
	req := model.QueryRequest{Message: "x", Metric: model.MetricPrice}

	_, err := client.Query(ctx, req)
	require.Error(t, err)
	_, err = client.Query(ctx, req)
	require.Error(t, err)
	assert.Equal(t, "open", client.BreakerState())

	_, err = client.Query(ctx, req)
	assert.ErrorIs(t, err, ErrBackendUnavailable)
	assert.Equal(t, int32(2), calls.Load(), "open circuit must not reach the backend")
}
