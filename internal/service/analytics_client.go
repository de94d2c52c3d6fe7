package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"

	"core/internal/config"
	"core/internal/model"
	"core/internal/utils"
)

// ErrBackendUnavailable is returned while the circuit to the analytics backend is open
var ErrBackendUnavailable = errors.New("analytics backend unavailable")

// AnalyticsClient is the remote analytics backend as the conversation sees it
type AnalyticsClient interface {
	Query(ctx context.Context, req model.QueryRequest) (*model.AnalyticsResponse, error)
	Localities(ctx context.Context) ([]string, error)
}

// HTTPAnalyticsClient talks to the analytics backend over HTTP
type HTTPAnalyticsClient struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	logger     zerolog.Logger
}

// NewHTTPAnalyticsClient creates a backend client guarded by a circuit breaker.
// Failed calls are never retried; an open circuit fails fast.
func NewHTTPAnalyticsClient(cfg config.AnalyticsConfig, logger zerolog.Logger) *HTTPAnalyticsClient {
	maxFailures := uint32(cfg.BreakerMaxFailures)
	if maxFailures == 0 {
		maxFailures = 5
	}

	c := &HTTPAnalyticsClient{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		logger: logger.With().Str("component", "analytics_client").Logger(),
	}

	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "analytics-backend",
		MaxRequests: 1,
		Timeout:     time.Duration(cfg.BreakerOpenTimeout) * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		IsSuccessful: func(err error) bool {
			// caller cancellations say nothing about backend health
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state changed")
		},
	})

	return c
}

// BreakerState reports the circuit state: closed, open or half-open
func (c *HTTPAnalyticsClient) BreakerState() string {
	return c.breaker.State().String()
}

// Query posts one enriched query to the backend's query endpoint
func (c *HTTPAnalyticsClient) Query(ctx context.Context, req model.QueryRequest) (*model.AnalyticsResponse, error) {
	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	var result model.AnalyticsResponse
	if err := c.do(ctx, http.MethodPost, "/query/", reqBody, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Localities fetches the locality vocabulary
func (c *HTTPAnalyticsClient) Localities(ctx context.Context) ([]string, error) {
	var result model.LocalitiesResponse
	if err := c.do(ctx, http.MethodGet, "/localities/", nil, &result); err != nil {
		return nil, err
	}
	return result.Localities, nil
}

func (c *HTTPAnalyticsClient) do(ctx context.Context, method, path string, body []byte, target interface{}) error {
	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, c.roundTrip(ctx, method, path, body, target)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	return err
}

func (c *HTTPAnalyticsClient) roundTrip(ctx context.Context, method, path string, body []byte, target interface{}) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	url := c.baseURL + path
	httpReq, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("backend request %s %s failed with status %d: %s",
			method, path, resp.StatusCode, utils.TruncateString(string(respBody), 200))
	}

	if err := utils.DecodeLenient(respBody, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
