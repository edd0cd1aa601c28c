package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Submission is one recorded URL submission and its eventual outcome.
// The backend owns articles and tasks; this journal only remembers
// what the user asked for, so still-processing tasks survive a client
// restart and can be watched again.
type Submission struct {
	ID          int64
	URL         string
	TaskID      string
	Status      string // mirrors the task status at last observation
	ArticleID   string
	Message     string
	SubmittedAt time.Time
	FinishedAt  *time.Time
}

type DB struct {
	*sql.DB
}

// New creates a new journal database and initializes schema
func New(dbPath string) (*DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	d := &DB{db}
	if err := d.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return d, nil
}

// initSchema creates the journal table if it doesn't exist
func (db *DB) initSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS submissions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			url TEXT NOT NULL,
			task_id TEXT,
			status TEXT NOT NULL DEFAULT 'processing',
			article_id TEXT,
			message TEXT,
			submitted_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			finished_at TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_submissions_task_id ON submissions(task_id);
		CREATE INDEX IF NOT EXISTS idx_submissions_submitted_at ON submissions(submitted_at);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	return nil
}

// Add records a new submission at the moment it is accepted.
func (db *DB) Add(sub *Submission) error {
	if sub.Status == "" {
		sub.Status = "processing"
	}
	if sub.SubmittedAt.IsZero() {
		sub.SubmittedAt = time.Now()
	}

	result, err := db.Exec(
		"INSERT INTO submissions (url, task_id, status, submitted_at) VALUES (?, ?, ?, ?)",
		sub.URL, sub.TaskID, sub.Status, sub.SubmittedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting submission: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}

	sub.ID = id
	return nil
}

// Settle records the terminal outcome of a submission's task.
func (db *DB) Settle(taskID, status, articleID, message string) error {
	_, err := db.Exec(
		"UPDATE submissions SET status = ?, article_id = ?, message = ?, finished_at = ? WHERE task_id = ?",
		status, articleID, message, time.Now(), taskID,
	)
	if err != nil {
		return fmt.Errorf("updating submission: %w", err)
	}
	return nil
}

// Recent returns the latest submissions, newest first.
func (db *DB) Recent(limit int) ([]Submission, error) {
	rows, err := db.Query(
		"SELECT id, url, task_id, status, article_id, message, submitted_at, finished_at FROM submissions ORDER BY submitted_at DESC, id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying submissions: %w", err)
	}
	defer rows.Close()

	var subs []Submission
	for rows.Next() {
		var sub Submission
		var taskID, articleID, message sql.NullString
		var finishedAt sql.NullTime
		if err := rows.Scan(&sub.ID, &sub.URL, &taskID, &sub.Status, &articleID, &message, &sub.SubmittedAt, &finishedAt); err != nil {
			return nil, fmt.Errorf("scanning submission: %w", err)
		}
		sub.TaskID = taskID.String
		sub.ArticleID = articleID.String
		sub.Message = message.String
		if finishedAt.Valid {
			t := finishedAt.Time
			sub.FinishedAt = &t
		}
		subs = append(subs, sub)
	}

	return subs, rows.Err()
}

// Pending returns submissions whose task never reached a terminal
// state, oldest first, so they can be re-watched after a restart.
func (db *DB) Pending() ([]Submission, error) {
	rows, err := db.Query(
		"SELECT id, url, task_id, status, article_id, message, submitted_at, finished_at FROM submissions WHERE status = 'processing' AND task_id IS NOT NULL AND task_id != '' ORDER BY submitted_at ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("querying pending submissions: %w", err)
	}
	defer rows.Close()

	var subs []Submission
	for rows.Next() {
		var sub Submission
		var taskID, articleID, message sql.NullString
		var finishedAt sql.NullTime
		if err := rows.Scan(&sub.ID, &sub.URL, &taskID, &sub.Status, &articleID, &message, &sub.SubmittedAt, &finishedAt); err != nil {
			return nil, fmt.Errorf("scanning submission: %w", err)
		}
		sub.TaskID = taskID.String
		sub.ArticleID = articleID.String
		sub.Message = message.String
		subs = append(subs, sub)
	}

	return subs, rows.Err()
}
