package task

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Handler runs a task and returns its result value.
type Handler func(ctx context.Context) (string, error)

// State is the lifecycle state of a task.
type State string

const (
	StatePending State = "PENDING"
	StateStarted State = "STARTED"
	StateSuccess State = "SUCCESS"
	StateFailure State = "FAILURE"
)

// Ready reports whether s is final.
func (s State) Ready() bool {
	return s == StateSuccess || s == StateFailure
}

// Message is what travels through the broker.
type Message struct {
	ID         string    `json:"id"`
	Name       string    `json:"task"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

// Result is what the backend stores for a task ID.
type Result struct {
	ID         string    `json:"task_id"`
	Name       string    `json:"task"`
	State      State     `json:"status"`
	Value      string    `json:"result,omitempty"`
	Error      string    `json:"error,omitempty"`
	StartedAt  time.Time `json:"started_at,omitempty"`
	FinishedAt time.Time `json:"date_done,omitempty"`
}

var (
	// ErrUnknownTask is returned for a name with no registered handler.
	ErrUnknownTask = errors.New("task: unknown task")

	// ErrResultTimeout is returned by AsyncResult.Get when the result is
	// not ready in time.
	ErrResultTimeout = errors.New("task: timed out waiting for result")

	// ErrQueueFull is returned by the in-memory broker at capacity.
	ErrQueueFull = errors.New("task: queue is full")
)

// Error is a task that finished in FAILURE.
type Error struct {
	ID      string
	Name    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("task %s[%s] failed: %s", e.Name, e.ID, e.Message)
}
