package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/causeway/pkg/pipeline"
	"github.com/matzehuels/causeway/pkg/store"
)

func testServer() (*Server, http.Handler) {
	logger := log.NewWithOptions(io.Discard, log.Options{})
	s := New(store.NewMemoryStore(), pipeline.NewRunner(nil, logger), logger)
	// Deterministic IDs for assertions.
	n := 0
	s.newID = func() string {
		n++
		return map[int]string{1: "id-1", 2: "id-2", 3: "id-3"}[n]
	}
	return s, s.Handler()
}

const chainBody = `{
	"name": "build",
	"graph": {
		"events": [{"id": "compile"}, {"id": "test"}, {"id": "package"}],
		"dependencies": [
			{"from": "compile", "to": "test"},
			{"from": "test", "to": "package"}
		]
	}
}`

const cycleBody = `{
	"name": "loop",
	"graph": {
		"events": [{"id": "a"}, {"id": "b"}],
		"dependencies": [
			{"from": "a", "to": "b"},
			{"from": "b", "to": "a"}
		]
	}
}`

func post(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCreateAndGet(t *testing.T) {
	_, h := testServer()

	rec := post(t, h, "/api/graphs", chainBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST status = %d, body %s", rec.Code, rec.Body)
	}

	var created store.Layout
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	if created.ID != "id-1" || created.Name != "build" {
		t.Errorf("created = %+v", created)
	}
	if !strings.Contains(created.DOT, `"compile" -> "test";`) {
		t.Errorf("DOT missing edge:\n%s", created.DOT)
	}
	if !strings.HasPrefix(created.SVG, "<svg") {
		t.Errorf("SVG artifact malformed:\n%.80s", created.SVG)
	}

	rec = get(t, h, "/api/graphs/id-1")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET status = %d", rec.Code)
	}
	var got store.Layout
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got.Graph.Events) != 3 || len(got.Graph.Dependencies) != 2 {
		t.Errorf("stored graph = %+v", got.Graph)
	}
}

func TestGetNotFound(t *testing.T) {
	_, h := testServer()
	rec := get(t, h, "/api/graphs/missing")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "NOT_FOUND") {
		t.Errorf("body = %s", rec.Body)
	}
}

func TestCreateInvalidGraph(t *testing.T) {
	_, h := testServer()
	body := `{"graph": {"events": [{"id": "a"}], "dependencies": [{"from": "a", "to": "ghost"}]}}`
	rec := post(t, h, "/api/graphs", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if !strings.Contains(rec.Body.String(), "INVALID_GRAPH") {
		t.Errorf("body = %s", rec.Body)
	}
}

func TestCreateMalformedJSON(t *testing.T) {
	_, h := testServer()
	rec := post(t, h, "/api/graphs", "{not json")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestList(t *testing.T) {
	_, h := testServer()
	post(t, h, "/api/graphs", chainBody)

	rec := get(t, h, "/api/graphs")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var summaries []layoutSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &summaries); err != nil {
		t.Fatal(err)
	}
	if len(summaries) != 1 || summaries[0].Events != 3 {
		t.Errorf("summaries = %+v", summaries)
	}
}

func TestArtifactEndpoints(t *testing.T) {
	_, h := testServer()
	post(t, h, "/api/graphs", chainBody)

	rec := get(t, h, "/api/graphs/id-1/dot")
	if rec.Code != http.StatusOK {
		t.Fatalf("dot status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/vnd.graphviz" {
		t.Errorf("dot Content-Type = %s", ct)
	}
	if !strings.HasPrefix(rec.Body.String(), "digraph") {
		t.Errorf("dot body = %.40s", rec.Body)
	}

	rec = get(t, h, "/api/graphs/id-1/svg")
	if rec.Code != http.StatusOK {
		t.Fatalf("svg status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("svg Content-Type = %s", ct)
	}
}

func TestStats(t *testing.T) {
	_, h := testServer()
	post(t, h, "/api/graphs", chainBody)

	rec := get(t, h, "/api/graphs/id-1/stats")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var stats struct {
		EventCount int  `json:"event_count"`
		MaxDepth   int  `json:"max_depth"`
		Acyclic    bool `json:"acyclic"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatal(err)
	}
	if stats.EventCount != 3 || stats.MaxDepth != 2 || !stats.Acyclic {
		t.Errorf("stats = %+v", stats)
	}
}

func TestStatsCycleConflict(t *testing.T) {
	_, h := testServer()
	post(t, h, "/api/graphs", cycleBody)

	rec := get(t, h, "/api/graphs/id-1/stats")
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if !strings.Contains(rec.Body.String(), "CYCLE_DETECTED") {
		t.Errorf("body = %s", rec.Body)
	}
}

func TestOrder(t *testing.T) {
	_, h := testServer()
	post(t, h, "/api/graphs", chainBody)

	rec := get(t, h, "/api/graphs/id-1/order")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Order []string `json:"order"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	want := []string{"compile", "test", "package"}
	for i, id := range want {
		if resp.Order[i] != id {
			t.Fatalf("order = %v, want %v", resp.Order, want)
		}
	}
}

func TestOrderCycleConflict(t *testing.T) {
	_, h := testServer()
	post(t, h, "/api/graphs", cycleBody)

	rec := get(t, h, "/api/graphs/id-1/order")
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestDelete(t *testing.T) {
	_, h := testServer()
	post(t, h, "/api/graphs", chainBody)

	req := httptest.NewRequest(http.MethodDelete, "/api/graphs/id-1", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("DELETE status = %d", rec.Code)
	}

	if rec := get(t, h, "/api/graphs/id-1"); rec.Code != http.StatusNotFound {
		t.Errorf("GET after delete = %d", rec.Code)
	}
}

func TestRequestIDHeader(t *testing.T) {
	_, h := testServer()

	rec := get(t, h, "/healthz")
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "client-id")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "client-id" {
		t.Errorf("X-Request-ID = %s, want client-id", got)
	}
}
