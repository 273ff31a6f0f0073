package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"noerkrieg.com/fitlog/extractor"
	"noerkrieg.com/fitlog/parser"
	"noerkrieg.com/fitlog/repository"
)

func writeJSON(writer http.ResponseWriter, status int, body any) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	if err := json.NewEncoder(writer).Encode(body); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// authUserID resolves the request to a user id, preferring a bearer JWT and
// falling back to a session id resolved through the sessions table. An empty
// return means the error response was already written.
func (c Controller) authUserID(writer http.ResponseWriter, r *http.Request) string {
	if token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "); token != "" {
		userID, err := repository.VerifyAndGetUserID(token)
		if err != nil {
			writeJSON(writer, http.StatusUnauthorized, errorResponse{Error: "invalid token"})
			return ""
		}
		return userID
	}
	if session := r.Header.Get("X-Session-Id"); session != "" && c.Store != nil {
		userID, err := c.Store.UserForSession(session)
		if err != nil || userID == "" {
			writeJSON(writer, http.StatusUnauthorized, errorResponse{Error: "unknown session"})
			return ""
		}
		return userID
	}
	writeJSON(writer, http.StatusUnauthorized, errorResponse{Error: "missing credentials"})
	return ""
}

// ProcessLog runs the pattern parser over a free-text log entry.
func (c Controller) ProcessLog(writer http.ResponseWriter, r *http.Request) {
	queryParams := r.URL.Query()
	input := queryParams.Get("input")
	recordType := parser.RecordType(queryParams.Get("type"))

	switch recordType {
	case parser.TypeExercise, parser.TypeCardio, parser.TypeMeal, parser.TypeWeight:
	default:
		writeJSON(writer, http.StatusBadRequest, errorResponse{Error: "type must be one of exercise, cardio, meal, weight"})
		return
	}

	parsed := parser.Parse(input, recordType)
	if parsed == nil {
		writer.WriteHeader(422)
		writer.Write([]byte(fmt.Sprintf("Could not parse %q as a %s entry. Try rephrasing, e.g. \"bench press 3 sets of 8 at 185\".", input, recordType)))
		return
	}
	writeJSON(writer, http.StatusOK, map[string]any{
		"type":   recordType,
		"record": parsed,
	})
}

// ExtractLog runs the AI extraction path synchronously.
func (c Controller) ExtractLog(writer http.ResponseWriter, r *http.Request) {
	queryParams := r.URL.Query()
	input := queryParams.Get("input")
	kind := extractor.Kind(queryParams.Get("kind"))

	result, err := c.Extractor.Extract(r.Context(), input, kind)
	if err != nil {
		var configErr *extractor.ConfigError
		var formatErr *extractor.FormatError
		var schemaErr *extractor.SchemaError
		switch {
		case errors.As(err, &configErr):
			writeJSON(writer, http.StatusServiceUnavailable, errorResponse{Error: configErr.Error()})
		case errors.As(err, &formatErr):
			writeJSON(writer, http.StatusBadGateway, errorResponse{Error: formatErr.Error(), Raw: formatErr.Raw})
		case errors.As(err, &schemaErr):
			writeJSON(writer, http.StatusBadGateway, errorResponse{Error: schemaErr.Error()})
		default:
			writeJSON(writer, http.StatusBadRequest, errorResponse{Error: err.Error()})
		}
		return
	}
	writeJSON(writer, http.StatusOK, result)
}

// SubmitLog parses a log entry and persists it to the matching record table.
func (c Controller) SubmitLog(writer http.ResponseWriter, r *http.Request) {
	userID := c.authUserID(writer, r)
	if userID == "" {
		return
	}

	var req LogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(writer, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	date := req.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	parsed := parser.Parse(req.Input, parser.RecordType(req.Type))
	if parsed == nil {
		writeJSON(writer, 422, errorResponse{Error: fmt.Sprintf("could not parse %q as a %s entry", req.Input, req.Type)})
		return
	}

	var err error
	switch record := parsed.(type) {
	case *parser.ParsedExercise:
		err = c.Store.InsertExercise(repository.ExerciseLog{
			UserID:   userID,
			Date:     date,
			Exercise: record.Exercise,
			Sets:     record.Sets,
			Reps:     record.Reps,
			Weight:   record.Weight,
		})
	case *parser.ParsedCardio:
		err = c.Store.InsertExercise(repository.ExerciseLog{
			UserID:   userID,
			Date:     date,
			Exercise: record.Activity,
		})
	case *parser.ParsedMeal:
		err = c.Store.InsertFood(repository.FoodLog{
			UserID:   userID,
			Date:     date,
			Meal:     record.Meal,
			Calories: record.Calories,
			Protein:  record.Protein,
		})
	case *parser.ParsedWeight:
		err = c.Store.InsertWeight(repository.WeightLog{
			UserID: userID,
			Date:   date,
			Weight: record.Weight,
		})
	}
	if err != nil {
		log.Printf("Error persisting log entry: %v", err)
		writeJSON(writer, http.StatusInternalServerError, errorResponse{Error: "failed to save entry"})
		return
	}
	writeJSON(writer, http.StatusCreated, map[string]any{
		"type":   req.Type,
		"record": parsed,
	})
}

// CompleteDailyLog flips the completion flag on a planned item for one day.
func (c Controller) CompleteDailyLog(writer http.ResponseWriter, r *http.Request) {
	userID := c.authUserID(writer, r)
	if userID == "" {
		return
	}

	var row repository.DailyLog
	if err := json.NewDecoder(r.Body).Decode(&row); err != nil {
		writeJSON(writer, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	row.UserID = userID
	if row.Date == "" {
		row.Date = time.Now().Format("2006-01-02")
	}
	if row.ItemID == "" || row.ItemType == "" {
		writeJSON(writer, http.StatusBadRequest, errorResponse{Error: "item_id and item_type are required"})
		return
	}

	if err := c.Store.UpsertDailyLog(row); err != nil {
		log.Printf("Error upserting daily log: %v", err)
		writeJSON(writer, http.StatusInternalServerError, errorResponse{Error: "failed to save completion"})
		return
	}
	writeJSON(writer, http.StatusOK, row)
}

// WeeklyAnalysis returns the AI coaching writeup for the last four weeks.
func (c Controller) WeeklyAnalysis(writer http.ResponseWriter, r *http.Request) {
	userID := c.authUserID(writer, r)
	if userID == "" {
		return
	}

	result, err := c.Analyzer.Weekly(r.Context(), userID)
	if err != nil {
		log.Printf("Error generating weekly analysis: %v", err)
		writeJSON(writer, http.StatusInternalServerError, errorResponse{Error: "failed to generate analysis"})
		return
	}
	writeJSON(writer, http.StatusOK, result)
}
