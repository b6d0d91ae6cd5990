package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/hyperjump/huella/internal/analyzer"
	"github.com/hyperjump/huella/internal/config"
	"github.com/hyperjump/huella/internal/corpus"
	"github.com/hyperjump/huella/internal/keyword"
	"github.com/hyperjump/huella/internal/metrics"
	"github.com/hyperjump/huella/internal/models"
	"github.com/hyperjump/huella/internal/ranking"
)

func newTestServer(t *testing.T, opts ...analyzer.Option) *Server {
	t.Helper()
	svc := analyzer.New(corpus.Sample(), nil, opts...)
	m := metrics.New(metrics.Options{})
	return NewServer(svc, m, &config.ServerConfig{Port: 8080}, zap.NewNop())
}

func do(t *testing.T, srv *Server, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	r := httptest.NewRequest(method, target, &buf)
	w := httptest.NewRecorder()
	srv.Routes().ServeHTTP(w, r)
	return w
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var out map[string]string
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatalf("error body is not JSON: %v", err)
	}
	return out["error"]
}

func TestHandleAnalyze(t *testing.T) {
	srv := newTestServer(t)
	threshold := 0.0
	w := do(t, srv, http.MethodPost, "/api/v1/analyze", models.AnalyzeRequest{
		Text:          corpus.Sample().At(1).Text,
		MinSimilarity: &threshold,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", w.Code, w.Body.String())
	}
	var resp models.AnalyzeResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Total != 4 || len(resp.Matches) != 4 {
		t.Fatalf("total: got %d matches %d, want 4", resp.Total, len(resp.Matches))
	}
	if resp.Matches[0].Author != "Autor2" || resp.Matches[0].Percentage != 100 {
		t.Errorf("best match: got %s %.2f, want Autor2 100", resp.Matches[0].Author, resp.Matches[0].Percentage)
	}
	if resp.ID == "" || resp.Report == "" {
		t.Errorf("expected id and report, got %q / %q", resp.ID, resp.Report)
	}
}

func TestHandleAnalyze_EmptyText(t *testing.T) {
	srv := newTestServer(t)
	w := do(t, srv, http.MethodPost, "/api/v1/analyze", models.AnalyzeRequest{Text: "   "})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", w.Code)
	}
	if msg := errorMessage(t, w); msg != models.ErrEmptyText.Error() {
		t.Errorf("error: got %q", msg)
	}
}

func TestHandleAnalyze_InvalidBody(t *testing.T) {
	srv := newTestServer(t)
	w := do(t, srv, http.MethodPost, "/api/v1/analyze", "{not json")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", w.Code)
	}
	if msg := errorMessage(t, w); msg != "invalid request body" {
		t.Errorf("error: got %q", msg)
	}
}

func TestHandleCompare(t *testing.T) {
	srv := newTestServer(t)
	text := corpus.Sample().At(0).Text
	w := do(t, srv, http.MethodPost, "/api/v1/compare", models.CompareRequest{TextA: text, TextB: text})
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", w.Code, w.Body.String())
	}
	var resp models.CompareResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Percentage != 100 {
		t.Errorf("similarity: got %.2f, want 100", resp.Percentage)
	}

	w = do(t, srv, http.MethodPost, "/api/v1/compare", models.CompareRequest{TextA: text})
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing text_b: got %d, want 400", w.Code)
	}
}

func TestHandleProfile(t *testing.T) {
	srv := newTestServer(t)
	w := do(t, srv, http.MethodPost, "/api/v1/profile", models.ProfileRequest{Text: "Ayer bine a la escuela."})
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", w.Code, w.Body.String())
	}
	var out struct {
		Patterns map[string][]map[string]string `json:"patterns"`
	}
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if len(out.Patterns["b_v"]) == 0 {
		t.Errorf("expected b_v findings, got %v", out.Patterns)
	}
}

func TestHandleCorpus(t *testing.T) {
	srv := newTestServer(t)
	w := do(t, srv, http.MethodGet, "/api/v1/corpus", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	var out struct {
		Entries []models.CorpusEntrySummary `json:"entries"`
		Total   int                         `json:"total"`
	}
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Total != 4 || len(out.Entries) != 4 || out.Entries[3].Author != "AngelC" {
		t.Errorf("corpus: got %+v", out)
	}
}

func TestHandleCorpusSearch(t *testing.T) {
	idx, err := keyword.NewCorpusIndex(corpus.Sample())
	if err != nil {
		t.Fatal(err)
	}
	defer idx.Close()
	srv := newTestServer(t, analyzer.WithLookup(idx))

	w := do(t, srv, http.MethodGet, "/api/v1/corpus/search?q=escuela&limit=2", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", w.Code, w.Body.String())
	}
	var resp models.CorpusSearchResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Hits) == 0 || resp.Hits[0].ID != 1 {
		t.Errorf("hits: got %+v", resp.Hits)
	}

	w = do(t, srv, http.MethodGet, "/api/v1/corpus/search?q=", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty query: got %d, want 400", w.Code)
	}
	w = do(t, srv, http.MethodGet, "/api/v1/corpus/search?q=escuela&limit=x", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad limit: got %d, want 400", w.Code)
	}
}

func TestHandleCorpusSearch_NotEnabled(t *testing.T) {
	srv := newTestServer(t)
	w := do(t, srv, http.MethodGet, "/api/v1/corpus/search?q=escuela", nil)
	if w.Code != http.StatusNotImplemented {
		t.Errorf("status: got %d, want 501", w.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t)
	w := do(t, srv, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	var out map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out["status"] != "ok" || out["corpus_entries"] != 4.0 {
		t.Errorf("health: got %v", out)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	do(t, srv, http.MethodPost, "/api/v1/analyze", models.AnalyzeRequest{Text: ""})
	w := do(t, srv, http.MethodGet, "/metrics", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "huella_corpus_entries 4") {
		t.Errorf("metrics output missing corpus gauge:\n%s", w.Body.String())
	}
}

func TestSetService(t *testing.T) {
	srv := newTestServer(t)
	cfg := ranking.DefaultRankingConfig()
	cfg.MinSimilarity = 42
	srv.SetService(analyzer.New(corpus.Sample(), cfg))

	w := do(t, srv, http.MethodPost, "/api/v1/analyze", models.AnalyzeRequest{Text: "hola"})
	var resp models.AnalyzeResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.MinSimilarity != 42 {
		t.Errorf("min_similarity: got %v, want 42", resp.MinSimilarity)
	}
}

func TestStopBeforeStart(t *testing.T) {
	srv := newTestServer(t)
	if err := srv.Stop(context.Background()); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if err := srv.Start(); err != nil {
		t.Errorf("Start after Stop: got %v, want nil", err)
	}
}
