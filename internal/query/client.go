package query

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	prommodel "github.com/prometheus/common/model"
	"github.com/rs/zerolog"

	"SliceScope/internal/model"
)

// apiResponse mirrors the backend's instant-query JSON body. Only the fields
// the derivers consume are decoded; anything missing yields an empty vector.
type apiResponse struct {
	Status string `json:"status"`
	Data   struct {
		ResultType string           `json:"resultType"`
		Result     prommodel.Vector `json:"result"`
	} `json:"data"`
}

// Client executes instant queries against a Prometheus-compatible backend
// over its HTTP API. It implements model.Querier: every failure mode is
// logged and degrades to an empty result.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// NewClient creates a query client for the given backend base URL.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log.With().Str("component", "query").Logger(),
	}
}

// Query evaluates a single expression and returns one Sample per result row.
// Transport errors, non-2xx responses, non-JSON bodies and unexpected body
// shapes all return an empty slice, so callers cannot distinguish a failed
// query from "no data".
func (c *Client) Query(ctx context.Context, expr string) []model.Sample {
	c.log.Debug().Str("expr", expr).Msg("querying backend")

	reqURL := fmt.Sprintf("%s/api/v1/query?%s", c.baseURL, url.Values{"query": {expr}}.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		c.log.Error().Err(err).Msg("failed to build backend request")
		return nil
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error().Err(err).Msg("failed to query backend")
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		c.log.Error().Int("status", resp.StatusCode).Msg("backend returned non-2xx status")
		return nil
	}

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.log.Error().Err(err).Msg("failed to parse backend response")
		c.log.Warn().Msg("no data available")
		return nil
	}
	if body.Status != "success" {
		c.log.Error().Str("status", body.Status).Msg("backend reported query failure")
		return nil
	}

	samples := make([]model.Sample, 0, len(body.Data.Result))
	for _, s := range body.Data.Result {
		labels := make(map[string]string, len(s.Metric))
		for k, v := range s.Metric {
			labels[string(k)] = string(v)
		}
		samples = append(samples, model.Sample{Labels: labels, Value: float64(s.Value)})
	}
	return samples
}
