package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"signal-council/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

func TestRealizedPnLParsesResponse(t *testing.T) {
	var gotTicker, gotSince string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTicker = r.URL.Query().Get("ticker")
		gotSince = r.URL.Query().Get("since")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ticker":"ACME","pnl_pct":-2.75}`))
	}))
	defer srv.Close()

	p := NewHTTPPnLSource(trace.NewNoopTracerProvider().Tracer("test"), srv.URL)
	created := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	pnl, err := p.RealizedPnL(context.Background(), domain.Decision{Ticker: "ACME", CreatedAt: created})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pnl != -2.75 {
		t.Fatalf("expected -2.75, got %f", pnl)
	}
	if gotTicker != "ACME" {
		t.Fatalf("ticker not forwarded, got %s", gotTicker)
	}
	if gotSince != "2026-08-01T12:00:00Z" {
		t.Fatalf("since not forwarded, got %s", gotSince)
	}
}

func TestRealizedPnLNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	p := NewHTTPPnLSource(trace.NewNoopTracerProvider().Tracer("test"), srv.URL)
	if _, err := p.RealizedPnL(context.Background(), domain.Decision{Ticker: "ACME"}); err == nil {
		t.Fatal("expected error on 502")
	}
}

func TestRealizedPnLBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"pnl_pct":`))
	}))
	defer srv.Close()

	p := NewHTTPPnLSource(trace.NewNoopTracerProvider().Tracer("test"), srv.URL)
	if _, err := p.RealizedPnL(context.Background(), domain.Decision{Ticker: "ACME"}); err == nil {
		t.Fatal("expected decode error")
	}
}
