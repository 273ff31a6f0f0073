package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"noerkrieg.com/fitlog/repository"
)

// SubmitJob queues an AI extraction to run asynchronously.
func (c Controller) SubmitJob(writer http.ResponseWriter, r *http.Request) {
	userID := c.authUserID(writer, r)
	if userID == "" {
		return
	}
	if c.JobStore == nil {
		writeJSON(writer, http.StatusServiceUnavailable, errorResponse{Error: "job queue not configured"})
		return
	}

	var req JobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(writer, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.Input == "" {
		writeJSON(writer, http.StatusBadRequest, errorResponse{Error: "input is required"})
		return
	}
	if req.Kind != "food" && req.Kind != "exercise" {
		writeJSON(writer, http.StatusBadRequest, errorResponse{Error: "kind must be food or exercise"})
		return
	}

	data, err := json.Marshal(repository.JobData{Input: req.Input, Kind: req.Kind})
	if err != nil {
		writeJSON(writer, http.StatusInternalServerError, errorResponse{Error: "failed to encode job"})
		return
	}

	now := time.Now()
	job := &repository.Job{
		ID:        uuid.NewString(),
		Status:    repository.StatusPending,
		Data:      data,
		CreatedAt: now,
		UpdatedAt: now,
		UserID:    userID,
	}
	if err := c.JobStore.Create(job); err != nil {
		log.Printf("Error creating job: %v", err)
		writeJSON(writer, http.StatusInternalServerError, errorResponse{Error: "failed to queue job"})
		return
	}

	writeJSON(writer, http.StatusAccepted, JobResponse{
		JobID:          job.ID,
		Status:         job.Status,
		StatusEndpoint: fmt.Sprintf("/v1/jobs/%s", job.ID),
		CreatedAt:      job.CreatedAt,
	})
}

// JobStatus reports on a queued extraction. Only the submitting user can see
// their job.
func (c Controller) JobStatus(writer http.ResponseWriter, r *http.Request) {
	userID := c.authUserID(writer, r)
	if userID == "" {
		return
	}
	if c.JobStore == nil {
		writeJSON(writer, http.StatusServiceUnavailable, errorResponse{Error: "job queue not configured"})
		return
	}

	jobID := chi.URLParam(r, "id")
	job, err := c.JobStore.Get(jobID)
	if err != nil {
		log.Printf("Error fetching job %s: %v", jobID, err)
		writeJSON(writer, http.StatusInternalServerError, errorResponse{Error: "failed to fetch job"})
		return
	}
	if job == nil || job.UserID != userID {
		writeJSON(writer, http.StatusNotFound, errorResponse{Error: "job not found"})
		return
	}
	writeJSON(writer, http.StatusOK, job)
}
