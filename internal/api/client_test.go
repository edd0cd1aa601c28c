package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/thomaskoefod/enrichreadr/pkg/models"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, 5*time.Second, nil), server
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatalf("encoding response: %v", err)
	}
}

func TestListArticles(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/articles" {
			t.Errorf("path = %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("page") != "2" || q.Get("page_size") != "12" {
			t.Errorf("paging params = %v", q)
		}
		if q.Get("language") != "ar" {
			t.Errorf("language = %q", q.Get("language"))
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("expected X-Request-ID header")
		}
		writeJSON(t, w, models.ArticleListResponse{
			Articles: []models.Article{{ID: "a1"}, {ID: "a2"}},
			Total:    15,
			Page:     2,
			PageSize: 12,
		})
	}))

	resp, err := client.ListArticles(context.Background(), ListParams{Page: 2, PageSize: 12, Language: "ar"})
	if err != nil {
		t.Fatalf("ListArticles: %v", err)
	}
	if resp.Total != 15 || len(resp.Articles) != 2 {
		t.Errorf("resp = %+v", resp)
	}
	if resp.TotalPages() != 2 {
		t.Errorf("TotalPages() = %d, expected 2", resp.TotalPages())
	}
}

func TestListArticlesBeyondLastPage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, models.ArticleListResponse{
			Articles: []models.Article{},
			Total:    15,
			Page:     9,
			PageSize: 12,
		})
	}))

	resp, err := client.ListArticles(context.Background(), ListParams{Page: 9, PageSize: 12})
	if err != nil {
		t.Fatalf("expected empty page, got error: %v", err)
	}
	if len(resp.Articles) != 0 || resp.Total != 15 {
		t.Errorf("resp = %+v", resp)
	}
}

func TestListArticlesInvalidPaging(t *testing.T) {
	client := NewClient("http://127.0.0.1:0", time.Second, nil)

	_, err := client.ListArticles(context.Background(), ListParams{Page: 0, PageSize: 10})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestSearchArticles(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/articles/search/" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.URL.Query().Get("q") != "climate" {
			t.Errorf("q = %q", r.URL.Query().Get("q"))
		}
		writeJSON(t, w, models.ArticleListResponse{
			Articles: []models.Article{{ID: "a13"}, {ID: "a14"}, {ID: "a15"}},
			Total:    15,
			Page:     2,
			PageSize: 12,
		})
	}))

	resp, err := client.SearchArticles(context.Background(), "climate", 2, 12)
	if err != nil {
		t.Fatalf("SearchArticles: %v", err)
	}
	if len(resp.Articles) != 3 || resp.Page != 2 {
		t.Errorf("resp = %+v", resp)
	}
}

func TestGetArticleNotFound(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		writeJSON(t, w, map[string]string{"detail": "Article not found"})
	}))

	_, err := client.GetArticle(context.Background(), "missing-id")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if nf.ID != "missing-id" {
		t.Errorf("ID = %q", nf.ID)
	}
}

func TestGetArticleEmptyID(t *testing.T) {
	requests := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))

	_, err := client.GetArticle(context.Background(), "  ")
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if requests != 0 {
		t.Errorf("expected no network calls, got %d", requests)
	}
}

func TestDeleteArticleAlreadyGone(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s", r.Method)
		}
		w.WriteHeader(http.StatusNotFound)
	}))

	err := client.DeleteArticle(context.Background(), "gone")
	if !IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestTransportErrorCarriesDetail(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		writeJSON(t, w, map[string]string{"detail": "query too short"})
	}))

	_, err := client.SearchArticles(context.Background(), "a", 1, 10)
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if te.Status != http.StatusUnprocessableEntity || te.Message != "query too short" {
		t.Errorf("TransportError = %+v", te)
	}
}

func TestProcessURL(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/process/" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		var req processRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if req.URL != "https://facebook.com/examplepage" {
			t.Errorf("url = %q", req.URL)
		}
		writeJSON(t, w, models.ProcessResponse{
			Success:      true,
			ArticleID:    "abc123",
			ArticleIDs:   []string{"abc123"},
			ArticleCount: 1,
			Message:      "Article created successfully",
		})
	}))

	resp, err := client.ProcessURL(context.Background(), "https://facebook.com/examplepage")
	if err != nil {
		t.Fatalf("ProcessURL: %v", err)
	}
	if !resp.Success || resp.ArticleID != "abc123" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestProcessURLValidation(t *testing.T) {
	requests := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))

	tests := []struct {
		name string
		url  string
	}{
		{"empty", ""},
		{"whitespace only", "   \t"},
		{"no scheme", "facebook.com/page"},
		{"bad scheme", "ftp://facebook.com/page"},
		{"missing host", "https://"},
	}

	for _, test := range tests {
		_, err := client.ProcessURL(context.Background(), test.url)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("%s: expected ValidationError, got %v", test.name, err)
		}
		_, err = client.ProcessURLAsync(context.Background(), test.url)
		if !errors.As(err, &ve) {
			t.Errorf("%s (async): expected ValidationError, got %v", test.name, err)
		}
	}

	if requests != 0 {
		t.Errorf("expected no network calls for invalid URLs, got %d", requests)
	}
}

func TestProcessURLAsync(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/process/async" {
			t.Errorf("path = %s", r.URL.Path)
		}
		writeJSON(t, w, map[string]string{"task_id": "task-1", "status": "processing"})
	}))

	task, err := client.ProcessURLAsync(context.Background(), "https://facebook.com/groups/example")
	if err != nil {
		t.Fatalf("ProcessURLAsync: %v", err)
	}
	if task.TaskID != "task-1" || task.Status != models.TaskStatusProcessing {
		t.Errorf("task = %+v", task)
	}
}

func TestTaskStatusIdempotentObservation(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, models.ProcessingTask{
			TaskID: "task-1",
			Status: models.TaskStatusCompleted,
			Result: &models.ProcessResponse{Success: true, ArticleID: "abc123", Message: "done"},
		})
	}))

	first, err := client.TaskStatus(context.Background(), "task-1")
	if err != nil {
		t.Fatalf("TaskStatus: %v", err)
	}
	second, err := client.TaskStatus(context.Background(), "task-1")
	if err != nil {
		t.Fatalf("TaskStatus: %v", err)
	}

	if first.Status != second.Status || first.Result.ArticleID != second.Result.ArticleID {
		t.Errorf("terminal task changed between polls: %+v vs %+v", first, second)
	}
}

func TestHealth(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("path = %s", r.URL.Path)
		}
		writeJSON(t, w, models.HealthResponse{Status: "healthy", Version: "1.0.0"})
	}))

	health, err := client.Health(context.Background())
	if err != nil {
		t.Fatalf("Health: %v", err)
	}
	if health.Status != "healthy" {
		t.Errorf("health = %+v", health)
	}
}

func TestNetworkFailureIsTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on
	client := NewClient(server.URL, time.Second, nil)

	_, err := client.ListArticles(context.Background(), ListParams{Page: 1, PageSize: 10})
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if te.Status != 0 || te.Err == nil {
		t.Errorf("TransportError = %+v", te)
	}
}
