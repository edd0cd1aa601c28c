package models

import "time"

// URLType is the category of a source URL as classified by the backend.
type URLType string

const (
	URLTypePage  URLType = "page"
	URLTypeGroup URLType = "group"
)

// QAScores holds the backend's quality-assurance metrics for an article.
// Passed and FailedMetrics are derived server-side from fixed thresholds;
// the client only displays them.
type QAScores struct {
	Readability   float64  `json:"readability"`
	Coherence     float64  `json:"coherence"`
	Redundancy    float64  `json:"redundancy"`
	Neutrality    float64  `json:"neutrality"`
	HumanLikeness float64  `json:"human_likeness"`
	Passed        bool     `json:"passed"`
	FailedMetrics []string `json:"failed_metrics"`
}

// Article is a generated encyclopedic document derived from a source URL.
// Articles are immutable once generated; changes only happen through a
// full backend regeneration.
type Article struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Summary    string     `json:"summary,omitempty"`
	Body       string     `json:"body"`
	Language   string     `json:"language"`
	Dialect    string     `json:"dialect,omitempty"`
	SourceURL  string     `json:"source_url"`
	SourceType URLType    `json:"source_type"`
	Tags       []string   `json:"tags"`
	Categories []string   `json:"categories"`
	QAScores   *QAScores  `json:"qa_scores,omitempty"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
	Status     string     `json:"status"`
}

// ArticleListResponse is one page of articles. Total is the full count
// matching the filter, independent of the requested page.
type ArticleListResponse struct {
	Articles []Article `json:"articles"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
}

// TotalPages returns the index of the last valid page, or 0 when the
// collection is empty.
func (r *ArticleListResponse) TotalPages() int {
	if r.PageSize <= 0 || r.Total <= 0 {
		return 0
	}
	return (r.Total + r.PageSize - 1) / r.PageSize
}

// ProcessResponse is the outcome of one pipeline run, returned directly
// by a synchronous submission or embedded in a completed ProcessingTask.
type ProcessResponse struct {
	Success      bool      `json:"success"`
	ArticleID    string    `json:"article_id,omitempty"`
	ArticleIDs   []string  `json:"article_ids,omitempty"`
	ArticleCount int       `json:"article_count"`
	Message      string    `json:"message"`
	QAScores     *QAScores `json:"qa_scores,omitempty"`
}

// TaskStatus is the lifecycle state of an asynchronous processing task.
type TaskStatus string

const (
	// TaskStatusProcessing means the task has been accepted and has not
	// reached a terminal state yet.
	TaskStatusProcessing TaskStatus = "processing"

	// TaskStatusCompleted means the pipeline finished and Result is set.
	TaskStatusCompleted TaskStatus = "completed"

	// TaskStatusFailed means the pipeline failed and Error is set.
	TaskStatusFailed TaskStatus = "failed"
)

// String returns the string representation of TaskStatus.
func (ts TaskStatus) String() string {
	return string(ts)
}

// IsTerminal returns true once the task can no longer change state.
func (ts TaskStatus) IsTerminal() bool {
	return ts == TaskStatusCompleted || ts == TaskStatusFailed
}

// ProcessingTask tracks one asynchronous URL-to-article conversion.
// State transitions are backend-driven; the client only observes them.
type ProcessingTask struct {
	TaskID string           `json:"task_id"`
	Status TaskStatus       `json:"status"`
	Result *ProcessResponse `json:"result,omitempty"`
	Error  string           `json:"error,omitempty"`
}

// HealthResponse is the backend's liveness report.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
