package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/leakscout/leakscout/internal/scan"
	"github.com/leakscout/leakscout/internal/types"
)

func testItems() []scan.Scannable {
	return []scan.Scannable{
		{OwnerSHA: "sha_1", Path: "config.env", Content: "TOKEN=abc"},
		{OwnerSHA: "sha_1", Path: "readme.md", Content: "hello"},
		{OwnerSHA: "sha_2", Path: "config.env", Content: "TOKEN=abc"},
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := New(Config{BaseURL: srv.URL, Token: "tok"})
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestDetectMapsSparseResponse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/multiscan" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("auth header = %q", got)
		}
		var req scanRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.Documents) != 3 {
			t.Errorf("got %d documents, want 3", len(req.Documents))
		}
		if req.Documents[0].Filename != "config.env" || req.Documents[0].Document != "TOKEN=abc" {
			t.Errorf("unexpected first document: %+v", req.Documents[0])
		}
		// Findings only for documents 2 and 0, returned out of order.
		_ = json.NewEncoder(w).Encode(scanResponse{Results: []documentResult{
			{Index: 2, Findings: []types.Finding{{Type: "Generic Token", Match: "abc", Line: 1, Severity: types.SevHigh}}},
			{Index: 0, Findings: []types.Finding{{Type: "Generic Token", Match: "abc", Line: 1, Severity: types.SevHigh}}},
		}})
	})

	items := testItems()
	res, err := c.Detect(context.Background(), items)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(res.Results))
	}
	// Emission order follows the service response.
	if res.Results[0].Scannable != items[2] || res.Results[1].Scannable != items[0] {
		t.Fatalf("results mapped to wrong scannables: %+v", res.Results)
	}
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
}

func TestDetectPerDocumentErrors(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(scanResponse{Results: []documentResult{
			{Index: 1, Error: "document too large"},
		}})
	})
	items := testItems()
	res, err := c.Detect(context.Background(), items)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Errors) != 1 {
		t.Fatalf("got %d errors, want 1", len(res.Errors))
	}
	if res.Errors[0].OwnerSHA != "sha_1" || res.Errors[0].Path != "readme.md" {
		t.Fatalf("error attributed to wrong item: %+v", res.Errors[0])
	}
}

func TestDetectEmptyResponseIsClean(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(scanResponse{})
	})
	res, err := c.Detect(context.Background(), testItems())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Results) != 0 || len(res.Errors) != 0 {
		t.Fatalf("expected clean batch, got %+v", res)
	}
}

func TestDetectServiceFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})
	if _, err := c.Detect(context.Background(), testItems()); err == nil {
		t.Fatal("expected error on non-2xx status")
	}
}

func TestDetectBadIndex(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(scanResponse{Results: []documentResult{{Index: 9}}})
	})
	if _, err := c.Detect(context.Background(), testItems()); err == nil {
		t.Fatal("expected error on out-of-range index")
	}
}

func TestDetectNoItemsSkipsCall(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		called = true
		_ = json.NewEncoder(w).Encode(scanResponse{})
	})
	res, err := c.Detect(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if called {
		t.Fatal("no remote call expected for an empty batch")
	}
	if len(res.Results) != 0 {
		t.Fatalf("unexpected results: %+v", res)
	}
}

func TestNewRequiresURL(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatal("expected error without base URL")
	}
}
