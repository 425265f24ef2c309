// Package status tracks the lifecycle of curriculum generation requests.
package status

import (
	"encoding/json"
	"errors"
	"time"
)

// State is the lifecycle state of a request.
type State string

const (
	StateProcessing State = "processing"
	StateCompleted  State = "completed"
	StateFailed     State = "failed"
)

var (
	// ErrNotFound is returned when no record exists for the id.
	ErrNotFound = errors.New("status: record not found")
	// ErrTerminal is returned when writing to a completed or failed record.
	ErrTerminal = errors.New("status: record already in terminal state")
)

// Record is the tracked state of one generation request.
type Record struct {
	ID          string          `json:"id"`
	Email       string          `json:"email"`
	State       State           `json:"state"`
	Progress    string          `json:"progress,omitempty"`
	Result      json.RawMessage `json:"result,omitempty"`
	Error       string          `json:"error,omitempty"`
	StartedAt   time.Time       `json:"startedAt"`
	CompletedAt *time.Time      `json:"completedAt,omitempty"`
}

// Terminal reports whether the record has reached a final state.
func (r *Record) Terminal() bool {
	return r.State == StateCompleted || r.State == StateFailed
}

// Store persists request records. Transitions into a terminal state are
// write-once: Complete and Fail return ErrTerminal on an already-terminal
// record.
type Store interface {
	Create(rec *Record) error
	Get(id string) (*Record, error)
	SetProgress(id, progress string) error
	Complete(id string, result json.RawMessage) error
	Fail(id, message string) error
	List() ([]*Record, error)
}
