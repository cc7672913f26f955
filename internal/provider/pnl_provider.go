// Package provider holds clients for external market data services. The
// council itself never fetches signals; the only external dependency is the
// pnl feed the outcome resolver uses to grade stale decisions.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"signal-council/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type HTTPPnLSource struct {
	client  *http.Client
	baseURL string
	tracer  trace.Tracer
}

func NewHTTPPnLSource(tracer trace.Tracer, baseURL string) *HTTPPnLSource {
	return &HTTPPnLSource{
		client:  &http.Client{Timeout: 15 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		tracer:  tracer,
	}
}

// RealizedPnL asks the feed for the signed percent move of the ticker since
// the decision was made.
func (p *HTTPPnLSource) RealizedPnL(ctx context.Context, decision domain.Decision) (float64, error) {
	_, span := p.tracer.Start(ctx, "pnl-source.realized-pnl")
	defer span.End()
	span.SetAttributes(attribute.String("ticker", decision.Ticker))

	query := url.Values{}
	query.Set("ticker", decision.Ticker)
	query.Set("since", decision.CreatedAt.UTC().Format(time.RFC3339))

	endpoint := p.baseURL + "/pnl?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("pnl feed error %d: %s", resp.StatusCode, string(body))
	}

	var payload struct {
		Ticker string  `json:"ticker"`
		PnLPct float64 `json:"pnl_pct"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("decode pnl response: %w", err)
	}
	return payload.PnLPct, nil
}
