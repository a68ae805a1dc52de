package sdk

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchSendsQueryAndAuth(t *testing.T) {
	var gotPath, gotAuth string
	var gotQuery map[string][]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"query": "textbook",
			"type": "all",
			"results": [
				{"id": "p1", "type": "product", "title": "Calculus Textbook",
				 "price": 450, "is_active": true,
				 "created_at": "2026-01-10T09:00:00Z",
				 "is_sponsored": true, "sponsored_slot": 1}
			],
			"counts": {"sponsored": 1, "regular": 0, "total": 1}
		}`))
	}))
	defer srv.Close()

	client, err := New(WithBaseURL(srv.URL), WithAPIKey("secret"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	resp, err := client.Search(context.Background(), SearchParams{
		Query:    "textbook",
		Type:     "products",
		Page:     2,
		PageSize: 10,
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if gotPath != "/api/v1/search" {
		t.Errorf("path = %q, want /api/v1/search", gotPath)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("Authorization = %q, want Bearer secret", gotAuth)
	}
	for param, want := range map[string]string{
		"q": "textbook", "type": "products", "page": "2", "pageSize": "10",
	} {
		if got := gotQuery[param]; len(got) != 1 || got[0] != want {
			t.Errorf("query[%s] = %v, want %q", param, got, want)
		}
	}

	if !resp.Success {
		t.Error("expected success=true")
	}
	if len(resp.Results) != 1 {
		t.Fatalf("got %d results, want 1", len(resp.Results))
	}
	res := resp.Results[0]
	if res.ID != "p1" || !res.IsSponsored {
		t.Errorf("unexpected result: %+v", res)
	}
	if res.SponsoredSlot == nil || *res.SponsoredSlot != 1 {
		t.Errorf("sponsored_slot = %v, want 1", res.SponsoredSlot)
	}
	if res.Price == nil || *res.Price != 450 {
		t.Errorf("price = %v, want 450", res.Price)
	}
	if resp.Counts.Total != 1 {
		t.Errorf("counts.total = %d, want 1", resp.Counts.Total)
	}
}

func TestSearchRejectsEmptyQuery(t *testing.T) {
	client, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := client.Search(context.Background(), SearchParams{Query: "   "}); err == nil {
		t.Fatal("expected error for blank query")
	}
}

func TestAPIErrorDecoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success": false, "code": "invalid_type", "error": "unknown listing type: cars"}`))
	}))
	defer srv.Close()

	client, err := New(WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = client.Similar(context.Background(), SimilarParams{Type: "cars"})
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error is %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", apiErr.StatusCode)
	}
	if apiErr.Code != "invalid_type" {
		t.Errorf("code = %q, want invalid_type", apiErr.Code)
	}
}

func TestFeedPaging(t *testing.T) {
	var gotQuery map[string][]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true, "listings": [], "has_more": false}`))
	}))
	defer srv.Close()

	client, err := New(WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	resp, err := client.Feed(context.Background(), 3, 12)
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}
	if resp.HasMore {
		t.Error("expected has_more=false")
	}
	if got := gotQuery["page"]; len(got) != 1 || got[0] != "3" {
		t.Errorf("query[page] = %v, want 3", got)
	}
	if got := gotQuery["pageSize"]; len(got) != 1 || got[0] != "12" {
		t.Errorf("query[pageSize] = %v, want 12", got)
	}
}

func TestSimilarRequiresType(t *testing.T) {
	client, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := client.Similar(context.Background(), SimilarParams{Category: "books"}); err == nil {
		t.Fatal("expected error for missing type")
	}
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("path = %q, want /health", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status": "ok", "checks": {"database": "ok"}}`))
	}))
	defer srv.Close()

	client, err := New(WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	resp, err := client.Health(context.Background())
	if err != nil {
		t.Fatalf("Health: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("status = %q, want ok", resp.Status)
	}
	if resp.Checks["database"] != "ok" {
		t.Errorf("checks[database] = %q, want ok", resp.Checks["database"])
	}
}
