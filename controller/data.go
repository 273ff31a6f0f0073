package controller

import (
	"time"

	"noerkrieg.com/fitlog/analysis"
	"noerkrieg.com/fitlog/extractor"
	"noerkrieg.com/fitlog/repository"
)

// JobRequest represents the incoming request
type JobRequest struct {
	Input string `json:"input"`
	Kind  string `json:"kind"` // "food" or "exercise"
}

type JobResponse struct {
	JobID          string    `json:"job_id"`
	Status         string    `json:"status"`
	StatusEndpoint string    `json:"status_endpoint"`
	CreatedAt      time.Time `json:"created_at"`
}

// LogRequest is a deterministic log entry to parse and persist.
type LogRequest struct {
	Input string `json:"input"`
	Type  string `json:"type"` // exercise, cardio, meal, weight
	Date  string `json:"date,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
	Raw   string `json:"raw_content,omitempty"`
}

type Controller struct {
	Store     *repository.Store
	JobStore  *repository.JobStore
	Extractor *extractor.Extractor
	Analyzer  *analysis.Analyzer
}
