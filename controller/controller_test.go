package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/go-chi/chi/v5"
)

func newTestRouter() *chi.Mux {
	c := Controller{}
	r := chi.NewRouter()
	r.Get("/v1/parse", c.ProcessLog)
	return r
}

func TestProcessLogExercise(t *testing.T) {
	r := newTestRouter()
	req := httptest.NewRequest("GET", "/v1/parse?input="+url.QueryEscape("bench press 3 sets of 8 at 185")+"&type=exercise", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Type   string `json:"type"`
		Record struct {
			Exercise string  `json:"exercise"`
			Sets     int     `json:"sets"`
			Reps     int     `json:"reps"`
			Weight   float64 `json:"weight"`
		} `json:"record"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body.Type != "exercise" {
		t.Errorf("type = %q", body.Type)
	}
	if body.Record.Exercise != "bench press" || body.Record.Sets != 3 || body.Record.Reps != 8 || body.Record.Weight != 185 {
		t.Errorf("unexpected record: %+v", body.Record)
	}
}

func TestProcessLogUnparseable(t *testing.T) {
	r := newTestRouter()
	req := httptest.NewRequest("GET", "/v1/parse?input="+url.QueryEscape("did some stuff")+"&type=exercise", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != 422 {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func TestProcessLogBadType(t *testing.T) {
	r := newTestRouter()
	req := httptest.NewRequest("GET", "/v1/parse?input=whatever&type=nap", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestProcessLogWeight(t *testing.T) {
	r := newTestRouter()
	req := httptest.NewRequest("GET", "/v1/parse?input="+url.QueryEscape("185.5 pounds")+"&type=weight", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Record struct {
			Weight float64 `json:"weight"`
		} `json:"record"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body.Record.Weight != 185.5 {
		t.Errorf("weight = %v, want 185.5", body.Record.Weight)
	}
}
