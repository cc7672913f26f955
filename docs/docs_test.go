package docs

import (
	"strings"
	"testing"
)

func TestSwaggerInfoRegistered(t *testing.T) {
	if SwaggerInfo == nil {
		t.Fatal("swagger info not initialized")
	}
	if SwaggerInfo.Title != "Signal Council API" {
		t.Fatalf("unexpected swagger title: %s", SwaggerInfo.Title)
	}
}

func TestSwaggerTemplateCoversCouncilRoutes(t *testing.T) {
	for _, route := range []string{"/api/analyze", "/api/decisions", "/api/performance", "/health"} {
		if !strings.Contains(docTemplate, `"`+route) {
			t.Fatalf("swagger template missing route %s", route)
		}
	}
}
