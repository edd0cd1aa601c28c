package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/thomaskoefod/enrichreadr/pkg/models"
)

// Client talks to the Enrich Media backend. It covers both the article
// store (list/search/get/delete) and the processing pipeline
// (sync/async submission, task polling). The client is stateless; all
// view state lives in the caller.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// ListParams are the optional filters for ListArticles. Language and
// Category combine conjunctively when both are set.
type ListParams struct {
	Page     int
	PageSize int
	Language string
	Category string
}

type processRequest struct {
	URL string `json:"url"`
}

// errorBody is the backend's error envelope.
type errorBody struct {
	Detail string `json:"detail"`
}

// NewClient creates a client for the backend at baseURL. Every request
// shares one configured http.Client so the timeout bounds all network
// operations.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// ListArticles fetches one page of articles. Pages are 1-indexed; a
// page past the end returns an empty slice with the true total.
func (c *Client) ListArticles(ctx context.Context, params ListParams) (*models.ArticleListResponse, error) {
	if err := validatePaging(params.Page, params.PageSize); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("page", strconv.Itoa(params.Page))
	query.Set("page_size", strconv.Itoa(params.PageSize))
	if params.Language != "" {
		query.Set("language", params.Language)
	}
	if params.Category != "" {
		query.Set("category", params.Category)
	}

	var resp models.ArticleListResponse
	if err := c.doJSON(ctx, http.MethodGet, "/articles", query, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SearchArticles runs a full-text search over titles, summaries, and
// bodies. An empty query is passed through unmodified; enforcing
// non-emptiness is the caller's job.
func (c *Client) SearchArticles(ctx context.Context, q string, page, pageSize int) (*models.ArticleListResponse, error) {
	if err := validatePaging(page, pageSize); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("q", q)
	query.Set("page", strconv.Itoa(page))
	query.Set("page_size", strconv.Itoa(pageSize))

	var resp models.ArticleListResponse
	if err := c.doJSON(ctx, http.MethodGet, "/articles/search/", query, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetArticle fetches a single article by id. An unknown id yields a
// NotFoundError rather than a generic transport failure.
func (c *Client) GetArticle(ctx context.Context, id string) (*models.Article, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrMissingID
	}

	var article models.Article
	err := c.doJSON(ctx, http.MethodGet, "/articles/"+url.PathEscape(id), nil, nil, &article)
	if err != nil {
		if te := asStatus(err, http.StatusNotFound); te != nil {
			return nil, &NotFoundError{Kind: "article", ID: id}
		}
		return nil, err
	}
	return &article, nil
}

// DeleteArticle removes an article. Deleting an id that is already
// gone returns a NotFoundError, which callers may treat as success.
func (c *Client) DeleteArticle(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrMissingID
	}

	err := c.doJSON(ctx, http.MethodDelete, "/articles/"+url.PathEscape(id), nil, nil, nil)
	if err != nil {
		if te := asStatus(err, http.StatusNotFound); te != nil {
			return &NotFoundError{Kind: "article", ID: id}
		}
		return err
	}
	return nil
}

// ProcessURL submits a source URL and blocks until the pipeline
// finishes or fails. The URL is validated before any network call.
func (c *Client) ProcessURL(ctx context.Context, sourceURL string) (*models.ProcessResponse, error) {
	cleaned, err := validateSourceURL(sourceURL)
	if err != nil {
		return nil, err
	}

	var resp models.ProcessResponse
	if err := c.doJSON(ctx, http.MethodPost, "/process/", nil, processRequest{URL: cleaned}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ProcessURLAsync submits a source URL and returns an accepted task
// handle immediately. Acceptance does not mean execution has started.
func (c *Client) ProcessURLAsync(ctx context.Context, sourceURL string) (*models.ProcessingTask, error) {
	cleaned, err := validateSourceURL(sourceURL)
	if err != nil {
		return nil, err
	}

	var task models.ProcessingTask
	if err := c.doJSON(ctx, http.MethodPost, "/process/async", nil, processRequest{URL: cleaned}, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// TaskStatus polls one processing task. Polling has no side effects on
// the task; a terminal task keeps returning the same result or error.
func (c *Client) TaskStatus(ctx context.Context, taskID string) (*models.ProcessingTask, error) {
	if strings.TrimSpace(taskID) == "" {
		return nil, ErrMissingID
	}

	var task models.ProcessingTask
	err := c.doJSON(ctx, http.MethodGet, "/process/status/"+url.PathEscape(taskID), nil, nil, &task)
	if err != nil {
		if te := asStatus(err, http.StatusNotFound); te != nil {
			return nil, &NotFoundError{Kind: "task", ID: taskID}
		}
		return nil, err
	}
	return &task, nil
}

// Health checks backend liveness.
func (c *Client) Health(ctx context.Context) (*models.HealthResponse, error) {
	var health models.HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/health", nil, nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// doJSON performs one JSON request/response round trip. Non-2xx
// statuses become TransportErrors carrying the status and any
// server-provided detail message.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "method", method, "path", path, "error", err)
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return &TransportError{Status: resp.StatusCode, Message: readDetail(resp.Body)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// readDetail extracts the backend's error message, falling back to the
// raw body when it is not the usual JSON envelope.
func readDetail(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(data) == 0 {
		return ""
	}
	var eb errorBody
	if json.Unmarshal(data, &eb) == nil && eb.Detail != "" {
		return eb.Detail
	}
	return strings.TrimSpace(string(data))
}

// asStatus returns the TransportError in err's chain when it carries
// the given HTTP status, nil otherwise.
func asStatus(err error, status int) *TransportError {
	var te *TransportError
	if errors.As(err, &te) && te.Status == status {
		return te
	}
	return nil
}

// validateSourceURL enforces the pre-flight submission contract: the
// URL must be non-empty after trimming and syntactically valid with an
// http or https scheme.
func validateSourceURL(raw string) (string, error) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return "", &ValidationError{Field: "url", Reason: "must not be empty"}
	}

	parsed, err := url.Parse(cleaned)
	if err != nil {
		return "", &ValidationError{Field: "url", Reason: "not a valid URL"}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", &ValidationError{Field: "url", Reason: "scheme must be http or https"}
	}
	if parsed.Host == "" {
		return "", &ValidationError{Field: "url", Reason: "missing host"}
	}
	return cleaned, nil
}

func validatePaging(page, pageSize int) error {
	if page < 1 {
		return &ValidationError{Field: "page", Reason: "must be >= 1"}
	}
	if pageSize < 1 {
		return &ValidationError{Field: "page_size", Reason: "must be >= 1"}
	}
	return nil
}
