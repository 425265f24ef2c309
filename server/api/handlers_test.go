package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/currforge/currforge/curriculum"
	"github.com/currforge/currforge/pdf"
	"github.com/currforge/currforge/provider"
	"github.com/currforge/currforge/provider/mock"
	"github.com/currforge/currforge/status"
)

func newTestHandler(t *testing.T) (*Handler, *status.MemoryStore) {
	t.Helper()
	renderer, err := pdf.NewRenderer(t.TempDir())
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	store := status.NewMemoryStore()
	log := slog.New(slog.DiscardHandler)
	h := &Handler{
		Generator: curriculum.NewGenerator(mock.New(), renderer, nil, log),
		Provider:  mock.New(),
		Store:     store,
		OutputDir: renderer.OutputDir(),
		Log:       log,
	}
	return h, store
}

func newTestServer(t *testing.T, h *Handler) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	h.Register(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func validBody() string {
	return `{
		"grade": "9th",
		"subject": "English Literature",
		"state": "California",
		"book": "to-kill-a-mockingbird",
		"duration": "9 weeks",
		"learningObjectives": "Analyze theme and character",
		"email": "teacher@example.com"
	}`
}

func TestGenerateAcceptsAndCompletes(t *testing.T) {
	h, store := newTestHandler(t)
	srv := newTestServer(t, h)

	resp, err := http.Post(srv.URL+"/api/generate", "application/json", strings.NewReader(validBody()))
	if err != nil {
		t.Fatalf("POST /api/generate: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", resp.StatusCode)
	}
	var accepted struct {
		RequestID string `json:"requestId"`
		Status    string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&accepted); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.HasPrefix(accepted.RequestID, "curr_") {
		t.Errorf("unexpected request id %q", accepted.RequestID)
	}
	if accepted.Status != "processing" {
		t.Errorf("expected processing, got %q", accepted.Status)
	}

	rec := waitTerminal(t, store, accepted.RequestID)
	if rec.State != status.StateCompleted {
		t.Fatalf("expected completed, got %s (error %q)", rec.State, rec.Error)
	}
	var result curriculum.RequestResult
	if err := json.Unmarshal(rec.Result, &result); err != nil {
		t.Fatalf("decode stored result: %v", err)
	}
	if !result.Success {
		t.Error("expected successful run in stored result")
	}
	if len(result.Results) != 11 {
		t.Errorf("expected 11 task results, got %d", len(result.Results))
	}
}

func waitTerminal(t *testing.T, store status.Store, id string) *status.Record {
	t.Helper()
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		rec, err := store.Get(id)
		if err != nil {
			t.Fatalf("Get %s: %v", id, err)
		}
		if rec.Terminal() {
			return rec
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("generation did not finish in time")
	return nil
}

func TestGenerateRejectsInvalidRequestBeforeTracking(t *testing.T) {
	h, store := newTestHandler(t)
	srv := newTestServer(t, h)

	resp, err := http.Post(srv.URL+"/api/generate", "application/json",
		strings.NewReader(`{"grade": "9th"}`))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	recs, _ := store.List()
	if len(recs) != 0 {
		t.Errorf("rejected request must leave no tracking state, found %d records", len(recs))
	}
}

func TestGenerateRejectsMalformedJSON(t *testing.T) {
	h, _ := newTestHandler(t)
	srv := newTestServer(t, h)
	resp, err := http.Post(srv.URL+"/api/generate", "application/json", strings.NewReader("{nope"))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestStatusNotFound(t *testing.T) {
	h, _ := newTestHandler(t)
	srv := newTestServer(t, h)
	resp, err := http.Get(srv.URL + "/api/status/curr_missing")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
	var body map[string]string
	json.NewDecoder(resp.Body).Decode(&body)
	if body["status"] != "not_found" {
		t.Errorf("unexpected body %v", body)
	}
}

func TestDownload(t *testing.T) {
	h, _ := newTestHandler(t)
	srv := newTestServer(t, h)

	name := "syllabus_9th_test1234.pdf"
	if err := os.WriteFile(filepath.Join(h.OutputDir, name), []byte("%PDF-1.4 test"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	resp, err := http.Get(srv.URL + "/api/download/" + name)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Content-Type"); got != "application/pdf" {
		t.Errorf("unexpected content type %q", got)
	}

	resp2, err := http.Get(srv.URL + "/api/download/missing_file.pdf")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for missing file, got %d", resp2.StatusCode)
	}
}

func TestDownloadRejectsTraversal(t *testing.T) {
	h, _ := newTestHandler(t)
	srv := newTestServer(t, h)
	for _, name := range []string{"..evil.pdf", ".hidden.pdf", "notes.txt"} {
		resp, err := http.Get(srv.URL + "/api/download/" + name)
		if err != nil {
			t.Fatalf("GET %s: %v", name, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400 for %q, got %d", name, resp.StatusCode)
		}
	}
}

func TestInfoEndpoints(t *testing.T) {
	h, _ := newTestHandler(t)
	srv := newTestServer(t, h)

	var health map[string]any
	getJSON(t, srv.URL+"/api/health", &health)
	if health["status"] != "healthy" {
		t.Errorf("unexpected health %v", health)
	}
	if health["provider"] != "mock" {
		t.Errorf("expected provider name, got %v", health["provider"])
	}

	var books struct {
		Books []curriculum.Book `json:"books"`
	}
	getJSON(t, srv.URL+"/api/books", &books)
	if len(books.Books) != 28 {
		t.Errorf("expected 28 books, got %d", len(books.Books))
	}

	var agents struct {
		Agents []agentInfo `json:"agents"`
	}
	getJSON(t, srv.URL+"/api/agents", &agents)
	if len(agents.Agents) != 11 {
		t.Errorf("expected 11 agents, got %d", len(agents.Agents))
	}
	if agents.Agents[0].Type != "foundation" {
		t.Errorf("expected foundation first, got %s", agents.Agents[0].Type)
	}

	var models struct {
		Models []provider.Model `json:"models"`
	}
	getJSON(t, srv.URL+"/api/models/anthropic", &models)
	if len(models.Models) == 0 {
		t.Error("expected some anthropic models")
	}

	resp, err := http.Get(srv.URL + "/api/models/bogus")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for unknown provider, got %d", resp.StatusCode)
	}
}

func getJSON(t *testing.T, url string, v any) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s: status %d", url, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode %s: %v", url, err)
	}
}
