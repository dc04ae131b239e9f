package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"advocacy-platform/internal/chain"
	"advocacy-platform/internal/eventlog"
	"advocacy-platform/internal/wiki"

	"github.com/gin-gonic/gin"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

// contestedStore never lets a CAS through, so every append exhausts retries.
type contestedStore struct{}

func (contestedStore) Load(context.Context) (chain.State, int64, error) {
	return chain.Genesis(), 1, nil
}

func (contestedStore) CompareAndSwap(context.Context, chain.State, int64) error {
	return chain.ErrConflict
}

func TestAppendEvent_ConflictMapsTo409(t *testing.T) {
	events := eventlog.NewService(contestedStore{}, eventlog.NewMemoryRepo(), eventlog.RetryPolicy{})
	r := newTestRouter()
	r.POST("/events", Handlers{Events: events}.AppendEvent)

	w := postJSON(r, "/events", `{"type":"wiki_edit","payload":{"id":"a"}}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
}

func TestAppendEvent_InvalidInput400(t *testing.T) {
	events := eventlog.NewService(chain.NewMemoryStateStore(), eventlog.NewMemoryRepo(), eventlog.RetryPolicy{})
	r := newTestRouter()
	r.POST("/events", Handlers{Events: events}.AppendEvent)

	w := postJSON(r, "/events", `{"type":"","payload":{"id":"a"}}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestListEvents_ReportsChainIntact(t *testing.T) {
	events := eventlog.NewService(chain.NewMemoryStateStore(), eventlog.NewMemoryRepo(), eventlog.RetryPolicy{})
	if _, _, err := events.Append(context.Background(), "wiki_create", json.RawMessage(`{"id":"a"}`), "a"); err != nil {
		t.Fatalf("append: %v", err)
	}

	r := newTestRouter()
	r.GET("/events/by-time", Handlers{Events: events}.ListEvents)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/events/by-time", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Items         []eventlog.Event `json:"items"`
		IsChainIntact bool             `json:"isChainIntact"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.IsChainIntact {
		t.Fatal("expected intact chain")
	}
	if len(resp.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(resp.Items))
	}
}

// failingAuditor simulates an audit append that dies after the content write.
type failingAuditor struct{}

func (failingAuditor) Append(context.Context, string, json.RawMessage, string) (eventlog.Event, chain.State, error) {
	return eventlog.Event{}, chain.State{}, chain.ErrConflict
}

func TestCreateArticle_AuditFailureIsDistinct409(t *testing.T) {
	svc := wiki.NewService(wiki.NewMemoryRepo(), failingAuditor{})
	r := newTestRouter()
	r.POST("/wiki-articles", Handlers{Wiki: svc}.CreateArticle)

	w := postJSON(r, "/wiki-articles", `{"title":"T","category":"Access","summary":"s","content":"c"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "audit") {
		t.Fatalf("expected audit failure to be called out, got %q", w.Body.String())
	}
}

func TestAnalyzeTimeline_ReturnsViolations(t *testing.T) {
	r := newTestRouter()
	r.POST("/forensic/analyze", Handlers{}.AnalyzeTimeline)

	body := `{"events":[
		{"id":"e1","type":"request","date":"2026-01-01T00:00:00Z","label":"Records request"},
		{"id":"e2","type":"receipt","date":"2026-02-05T00:00:00Z","label":"Records received"}
	]}`
	w := postJSON(r, "/forensic/analyze", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "records-delivery-30d") {
		t.Fatalf("expected records rule in response, got %q", w.Body.String())
	}
}
