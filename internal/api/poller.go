package api

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/thomaskoefod/enrichreadr/pkg/models"
)

// ErrWatchTimeout means the watcher gave up before the task reached a
// terminal state. The task is still processing from the backend's
// point of view; nothing was cancelled.
var ErrWatchTimeout = errors.New("task watch timed out")

// Watch is a handle on one polling loop for an asynchronous task.
// Updates delivers task snapshots until a terminal state, a timeout,
// or Stop; afterwards Err reports how the watch ended.
type Watch struct {
	taskID  string
	updates chan *models.ProcessingTask
	stop    chan struct{}
	stopped sync.Once

	mu   sync.Mutex
	err  error
	last *models.ProcessingTask
}

// Updates returns the snapshot channel. It is closed when the watch
// ends.
func (w *Watch) Updates() <-chan *models.ProcessingTask {
	return w.updates
}

// Stop ends the watch. Safe to call multiple times and after the
// watch has already finished.
func (w *Watch) Stop() {
	w.stopped.Do(func() { close(w.stop) })
}

// Err reports the watch outcome once Updates is closed: nil when a
// terminal state was observed (including failed tasks, whose error is
// also available as a TaskFailedError via Failure), ErrWatchTimeout on
// timeout, nil on caller stop.
func (w *Watch) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

// Last returns the most recent snapshot observed, if any.
func (w *Watch) Last() *models.ProcessingTask {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.last
}

// Failure returns a TaskFailedError when the watched task ended in the
// failed state, nil otherwise.
func (w *Watch) Failure() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.last != nil && w.last.Status == models.TaskStatusFailed {
		return &TaskFailedError{TaskID: w.taskID, Reason: w.last.Error}
	}
	return nil
}

func (w *Watch) record(task *models.ProcessingTask) {
	w.mu.Lock()
	w.last = task
	w.mu.Unlock()
}

func (w *Watch) finish(err error) {
	w.mu.Lock()
	w.err = err
	w.mu.Unlock()
	close(w.updates)
}

// WatchTask polls taskID on a fixed interval until it reaches a
// terminal state or timeout elapses. Poll failures are delivered as
// skipped ticks, not watch termination: transient transport errors
// should not end observation of a task that may still complete.
func (c *Client) WatchTask(taskID string, interval, timeout time.Duration) *Watch {
	w := &Watch{
		taskID:  taskID,
		updates: make(chan *models.ProcessingTask, 1),
		stop:    make(chan struct{}),
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		deadline := time.NewTimer(timeout)
		defer deadline.Stop()

		for {
			// The shared http.Client timeout bounds each poll.
			task, err := c.TaskStatus(context.Background(), taskID)

			if err != nil {
				if IsNotFound(err) {
					w.finish(err)
					return
				}
				c.logger.Debug("task poll failed", "task_id", taskID, "error", err)
			} else {
				w.record(task)
				// The deadline applies here too, so an abandoned
				// consumer cannot block this send forever.
				select {
				case w.updates <- task:
				case <-deadline.C:
					w.finish(ErrWatchTimeout)
					return
				case <-w.stop:
					w.finish(nil)
					return
				}
				if task.Status.IsTerminal() {
					w.finish(nil)
					return
				}
			}

			select {
			case <-ticker.C:
			case <-deadline.C:
				w.finish(ErrWatchTimeout)
				return
			case <-w.stop:
				w.finish(nil)
				return
			}
		}
	}()

	return w
}
