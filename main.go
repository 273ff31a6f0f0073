package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"noerkrieg.com/fitlog/analysis"
	"noerkrieg.com/fitlog/controller"
	"noerkrieg.com/fitlog/extractor"
	"noerkrieg.com/fitlog/metdb"
	"noerkrieg.com/fitlog/nutrition"
	"noerkrieg.com/fitlog/repository"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	store, err := repository.NewStore()
	if err != nil {
		log.Fatalf("Error initializing supabase store: %v", err)
	}

	// The AI path is optional: without a key the deterministic parser and
	// nutrition lookups still work.
	var completer extractor.Completer
	if client, err := extractor.NewOpenAIClient(); err != nil {
		log.Printf("AI extraction disabled: %v", err)
	} else {
		completer = client
	}

	foods := nutrition.NewService(nutrition.NewUSDAClient(os.Getenv("FITLOG_USDA_API_KEY")))
	exercises := metdb.NewService(store.Client(), metdb.NewCacheFromEnv())
	ext := extractor.New(completer, foods, exercises)
	analyzer := analysis.NewAnalyzer(store, completer)

	c := controller.Controller{
		Store:     store,
		Extractor: ext,
		Analyzer:  analyzer,
	}

	// The job queue needs a direct Postgres connection; skip it when the URL
	// is not configured.
	if dbURL := os.Getenv("FITLOG_DATABASE_URL"); dbURL != "" {
		jobStore, err := repository.NewJobStore(dbURL)
		if err != nil {
			log.Fatalf("Error initializing job store: %v", err)
		}
		if err := jobStore.StartListener(); err != nil {
			log.Fatalf("Error starting job listener: %v", err)
		}
		queue := repository.NewWorkQueue(jobStore, 3, func(job *repository.Job) (json.RawMessage, error) {
			var data repository.JobData
			if err := json.Unmarshal(job.Data, &data); err != nil {
				return nil, fmt.Errorf("bad job payload: %w", err)
			}
			result, err := ext.Extract(context.Background(), data.Input, extractor.Kind(data.Kind))
			if err != nil {
				return nil, err
			}
			return json.Marshal(result)
		})
		queue.Start()
		c.JobStore = jobStore
	} else {
		log.Println("FITLOG_DATABASE_URL not set, job queue disabled")
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:8081", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/v1/parse", c.ProcessLog)
	r.Get("/v1/extract", c.ExtractLog)
	r.Post("/v1/logs", c.SubmitLog)
	r.Post("/v1/daily-logs", c.CompleteDailyLog)
	r.Post("/v1/jobs", c.SubmitJob)
	r.Get("/v1/jobs/{id}", c.JobStatus)
	r.Get("/v1/analysis/weekly", c.WeeklyAnalysis)

	log.Println("Listening on :3000")
	log.Fatal(http.ListenAndServe(":3000", r))
}
