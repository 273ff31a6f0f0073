package repository

import (
	"encoding/json"
	"sync"
	"time"
)

// Job is one queued parse request: raw text in, a typed parse result out.
type Job struct {
	ID         string          `json:"id"`
	Status     string          `json:"status"`
	Data       json.RawMessage `json:"data"`
	Result     json.RawMessage `json:"result,omitempty"`
	Error      string          `json:"error,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	RetryCount int             `json:"-"` // hidden from API responses
	UserID     string          `json:"user_id,omitempty"`
}

// JobData is the payload stored in Job.Data.
type JobData struct {
	Input string `json:"input"`
	Kind  string `json:"kind"` // "food" or "exercise"
}

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

const maxRetries = 3

// JobProcessor turns a claimed job's payload into a result. The work queue
// stays ignorant of what processing means.
type JobProcessor func(job *Job) (json.RawMessage, error)

type WorkQueue struct {
	workers   int
	store     *JobStore
	processor JobProcessor
	wg        sync.WaitGroup
	shutdown  chan struct{}
}
