package server

import (
	"bufio"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/currforge/currforge/comms"
	"github.com/currforge/currforge/curriculum"
	"github.com/currforge/currforge/pdf"
	"github.com/currforge/currforge/provider/mock"
	"github.com/currforge/currforge/server/api"
	"github.com/currforge/currforge/status"
)

func newTestServer(t *testing.T) (*httptest.Server, *comms.InMemoryBus) {
	t.Helper()
	renderer, err := pdf.NewRenderer(t.TempDir())
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	log := slog.New(slog.DiscardHandler)
	bus := comms.NewInMemoryBus()
	h := &api.Handler{
		Generator: curriculum.NewGenerator(mock.New(), renderer, bus, log),
		Provider:  mock.New(),
		Store:     status.NewMemoryStore(),
		OutputDir: renderer.OutputDir(),
		Log:       log,
	}
	s := New(":0", h, bus, log)
	srv := httptest.NewServer(s.http.Handler)
	t.Cleanup(srv.Close)
	return srv, bus
}

func TestRootEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()
	var body struct {
		Name   string `json:"name"`
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Name != "CurrForge API" || body.Status != "running" {
		t.Errorf("unexpected body %+v", body)
	}
}

func TestCORSPreflight(t *testing.T) {
	srv, _ := newTestServer(t)
	req, _ := http.NewRequest(http.MethodOptions, srv.URL+"/api/generate", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("OPTIONS: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("expected 204, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected CORS header, got %q", got)
	}
}

func TestSSEStreamsBusEvents(t *testing.T) {
	srv, bus := newTestServer(t)

	resp, err := http.Get(srv.URL + "/events")
	if err != nil {
		t.Fatalf("GET /events: %v", err)
	}
	defer resp.Body.Close()
	if got := resp.Header.Get("Content-Type"); got != "text/event-stream" {
		t.Fatalf("unexpected content type %q", got)
	}

	reader := bufio.NewReader(resp.Body)
	// First frame is the connect comment.
	if line, err := reader.ReadString('\n'); err != nil || !strings.HasPrefix(line, ":") {
		t.Fatalf("expected connect comment, got %q (%v)", line, err)
	}

	go func() {
		time.Sleep(50 * time.Millisecond)
		bus.Publish(comms.Message{Type: comms.EventTaskStarted, RequestID: "curr_sse", TaskType: "foundation"})
	}()

	deadline := time.After(5 * time.Second)
	lines := make(chan string, 8)
	go func() {
		for {
			line, err := reader.ReadString('\n')
			if err != nil {
				return
			}
			lines <- line
		}
	}()
	for {
		select {
		case line := <-lines:
			if strings.HasPrefix(line, "data: ") {
				var msg comms.Message
				if err := json.Unmarshal([]byte(strings.TrimPrefix(strings.TrimSpace(line), "data: ")), &msg); err != nil {
					t.Fatalf("decode event: %v", err)
				}
				if msg.RequestID != "curr_sse" || msg.TaskType != "foundation" {
					t.Errorf("unexpected event %+v", msg)
				}
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for SSE event")
		}
	}
}
