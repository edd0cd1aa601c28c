package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thomaskoefod/enrichreadr/pkg/models"
)

// taskServer serves a task that stays processing for the first n polls
// and then settles into the given terminal snapshot.
func taskServer(t *testing.T, processingPolls int, terminal models.ProcessingTask) *httptest.Server {
	t.Helper()
	var polls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := polls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		if int(n) <= processingPolls {
			w.Write([]byte(`{"task_id":"` + terminal.TaskID + `","status":"processing"}`))
			return
		}
		json.NewEncoder(w).Encode(terminal)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestWatchTaskCompletes(t *testing.T) {
	server := taskServer(t, 2, models.ProcessingTask{
		TaskID: "task-1",
		Status: models.TaskStatusCompleted,
		Result: &models.ProcessResponse{Success: true, ArticleID: "abc123", Message: "done"},
	})
	client := NewClient(server.URL, 5*time.Second, nil)

	watch := client.WatchTask("task-1", 10*time.Millisecond, 5*time.Second)

	var last *models.ProcessingTask
	for task := range watch.Updates() {
		last = task
	}

	if err := watch.Err(); err != nil {
		t.Fatalf("watch ended with error: %v", err)
	}
	if last == nil || last.Status != models.TaskStatusCompleted {
		t.Fatalf("last snapshot = %+v", last)
	}
	if last.Result == nil || last.Result.ArticleID != "abc123" {
		t.Errorf("result = %+v", last.Result)
	}
	if watch.Failure() != nil {
		t.Errorf("unexpected failure: %v", watch.Failure())
	}
}

func TestWatchTaskFailed(t *testing.T) {
	server := taskServer(t, 1, models.ProcessingTask{
		TaskID: "task-2",
		Status: models.TaskStatusFailed,
		Error:  "No content found on the page",
	})
	client := NewClient(server.URL, 5*time.Second, nil)

	watch := client.WatchTask("task-2", 10*time.Millisecond, 5*time.Second)
	for range watch.Updates() {
	}

	var tf *TaskFailedError
	if !errors.As(watch.Failure(), &tf) {
		t.Fatalf("expected TaskFailedError, got %v", watch.Failure())
	}
	if tf.Reason != "No content found on the page" {
		t.Errorf("Reason = %q", tf.Reason)
	}
}

func TestWatchTaskTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"task_id":"task-3","status":"processing"}`))
	}))
	t.Cleanup(server.Close)
	client := NewClient(server.URL, 5*time.Second, nil)

	watch := client.WatchTask("task-3", 10*time.Millisecond, 50*time.Millisecond)
	for range watch.Updates() {
	}

	if !errors.Is(watch.Err(), ErrWatchTimeout) {
		t.Fatalf("expected ErrWatchTimeout, got %v", watch.Err())
	}
	// Timeout is not a backend failure: last snapshot is still processing.
	if last := watch.Last(); last == nil || last.Status != models.TaskStatusProcessing {
		t.Errorf("last snapshot = %+v", watch.Last())
	}
}

func TestWatchStopIsIdempotent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"task_id":"task-4","status":"processing"}`))
	}))
	t.Cleanup(server.Close)
	client := NewClient(server.URL, 5*time.Second, nil)

	watch := client.WatchTask("task-4", 10*time.Millisecond, 5*time.Second)
	watch.Stop()
	watch.Stop() // double-stop must not panic

	for range watch.Updates() {
	}
	if err := watch.Err(); err != nil {
		t.Errorf("stopped watch reported error: %v", err)
	}
}

func TestWatchUnknownTask(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Task not found"}`))
	}))
	t.Cleanup(server.Close)
	client := NewClient(server.URL, 5*time.Second, nil)

	watch := client.WatchTask("nope", 10*time.Millisecond, time.Second)
	for range watch.Updates() {
	}

	if !IsNotFound(watch.Err()) {
		t.Fatalf("expected NotFoundError, got %v", watch.Err())
	}
}

func TestWatchAbandonedConsumerTimesOut(t *testing.T) {
	// Never settles; the task stays processing for the whole test.
	server := taskServer(t, 1000, models.ProcessingTask{TaskID: "task-5"})
	client := NewClient(server.URL, 5*time.Second, nil)

	watch := client.WatchTask("task-5", 10*time.Millisecond, 100*time.Millisecond)

	// The consumer walks away without reading or calling Stop. The
	// watch must still end on its own once the timeout elapses.
	time.Sleep(400 * time.Millisecond)
	if err := watch.Err(); !errors.Is(err, ErrWatchTimeout) {
		t.Fatalf("abandoned watch err = %v, expected ErrWatchTimeout", err)
	}

	for range watch.Updates() {
	}
}
