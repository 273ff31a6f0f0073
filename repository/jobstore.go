package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// JobStore persists parse jobs in the Supabase Postgres directly over pgx.
// A dedicated connection LISTENs for inserts so workers wake up without
// polling.
type JobStore struct {
	Pool *pgxpool.Pool

	listenerConn     *pgx.Conn
	listenerCtx      context.Context
	listenerCancel   context.CancelFunc
	notificationChan chan *Job
}

func NewJobStore(dbURL string) (*JobStore, error) {
	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("error parsing DB URL: %w", err)
	}
	config.MaxConns = 10
	// Supabase's pooler collides with the prepared statement cache
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, fmt.Errorf("error creating DB pool: %w", err)
	}
	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error pinging DB: %w", err)
	}

	listenerCtx, listenerCancel := context.WithCancel(context.Background())
	return &JobStore{
		Pool:             pool,
		listenerCtx:      listenerCtx,
		listenerCancel:   listenerCancel,
		notificationChan: make(chan *Job, 100),
	}, nil
}

func (s *JobStore) Close() {
	s.listenerCancel()
	if s.listenerConn != nil {
		s.listenerConn.Close(context.Background())
	}
	s.Pool.Close()
}

func withTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, 10*time.Second)
}

// Create adds a new pending job.
func (s *JobStore) Create(job *Job) error {
	ctx, cancel := withTimeout(context.Background())
	defer cancel()

	query := `
	INSERT INTO parse_jobs (id, status, data, result, error, created_at, updated_at, retry_count, user_id)
	VALUES ($1::uuid, $2::text, $3::jsonb, $4::jsonb, $5::text, $6::timestamptz, $7::timestamptz, $8::integer, $9::uuid)`

	_, err := s.Pool.Exec(ctx, query,
		job.ID,
		job.Status,
		job.Data,
		job.Result,
		job.Error,
		job.CreatedAt,
		job.UpdatedAt,
		job.RetryCount,
		job.UserID,
	)
	return err
}

func (s *JobStore) Get(id string) (*Job, error) {
	ctx, cancel := withTimeout(context.Background())
	defer cancel()

	query := `SELECT id, status, data, result, error, created_at, updated_at, retry_count, user_id
		FROM parse_jobs WHERE id = $1::uuid`

	var job Job
	err := s.Pool.QueryRow(ctx, query, id).Scan(
		&job.ID,
		&job.Status,
		&job.Data,
		&job.Result,
		&job.Error,
		&job.CreatedAt,
		&job.UpdatedAt,
		&job.RetryCount,
		&job.UserID,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("database error in Get: %w", err)
	}
	return &job, nil
}

// Update writes back a finished or failed job, bumping the retry count on
// failure under a row lock so concurrent workers can't race it.
func (s *JobStore) Update(job *Job) error {
	ctx := context.Background()
	tx, err := s.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && rbErr != pgx.ErrTxClosed {
			log.Printf("Error rolling back transaction: %v", rbErr)
		}
	}()

	var currentRetryCount int
	err = tx.QueryRow(ctx,
		"SELECT retry_count FROM parse_jobs WHERE id = $1::uuid FOR UPDATE",
		job.ID).Scan(&currentRetryCount)
	if err != nil {
		return err
	}
	if job.Status == StatusFailed {
		job.RetryCount = currentRetryCount + 1
	}
	job.UpdatedAt = time.Now()

	_, err = tx.Exec(ctx,
		`UPDATE parse_jobs SET
			status = $1::text,
			result = $2::jsonb,
			error = $3::text,
			updated_at = $4::timestamptz,
			retry_count = $5::integer
		WHERE id = $6::uuid`,
		job.Status, job.Result, job.Error, job.UpdatedAt, job.RetryCount, job.ID)
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Claim takes the oldest pending (or retryable failed) job with
// FOR UPDATE SKIP LOCKED, so concurrent workers never grab the same one.
// A nil job with nil error means nothing is queued.
func (s *JobStore) Claim() (*Job, error) {
	ctx := context.Background()
	tx, err := s.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && rbErr != pgx.ErrTxClosed {
			log.Printf("Error rolling back transaction: %v", rbErr)
		}
	}()

	var job Job
	err = tx.QueryRow(ctx, `
		UPDATE parse_jobs
		SET status = $1::text, updated_at = $2::timestamptz
		WHERE id = (
			SELECT id FROM parse_jobs
			WHERE (status = $3::text OR (status = $4::text AND retry_count < $5::integer))
			ORDER BY created_at ASC
			LIMIT 1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id, status, data, result, error, created_at, updated_at, retry_count, user_id
	`, StatusProcessing, time.Now(), StatusPending, StatusFailed, maxRetries).Scan(
		&job.ID,
		&job.Status,
		&job.Data,
		&job.Result,
		&job.Error,
		&job.CreatedAt,
		&job.UpdatedAt,
		&job.RetryCount,
		&job.UserID,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error claiming job: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("error committing claim: %w", err)
	}
	return &job, nil
}

// NotificationChannel delivers jobs announced over LISTEN/NOTIFY.
func (s *JobStore) NotificationChannel() <-chan *Job {
	return s.notificationChan
}

// StartListener subscribes to the parse_jobs notification channel and streams
// announced jobs to NotificationChannel. It reconnects on failure.
func (s *JobStore) StartListener() error {
	conn, err := pgx.ConnectConfig(s.listenerCtx, s.Pool.Config().ConnConfig)
	if err != nil {
		return fmt.Errorf("error creating listener connection: %w", err)
	}
	if _, err := conn.Exec(s.listenerCtx, "LISTEN parse_jobs"); err != nil {
		conn.Close(context.Background())
		return fmt.Errorf("error listening to parse_jobs channel: %w", err)
	}
	s.listenerConn = conn
	log.Println("Subscribed to parse_jobs notifications")

	go func() {
		defer func() {
			if conn != nil {
				conn.Close(context.Background())
			}
			log.Println("Notification listener stopped")
		}()

		for {
			notification, err := conn.WaitForNotification(s.listenerCtx)
			if err != nil {
				if s.listenerCtx.Err() != nil {
					return
				}
				log.Printf("Error waiting for notification: %v. Reconnecting...", err)
				if conn != nil {
					conn.Close(context.Background())
				}
				conn, err = pgx.ConnectConfig(s.listenerCtx, s.Pool.Config().ConnConfig)
				if err != nil {
					log.Printf("Failed to reconnect listener: %v", err)
					time.Sleep(5 * time.Second)
					continue
				}
				if _, err = conn.Exec(s.listenerCtx, "LISTEN parse_jobs"); err != nil {
					log.Printf("Failed to re-establish listener: %v", err)
					conn.Close(context.Background())
					conn = nil
					time.Sleep(5 * time.Second)
					continue
				}
				s.listenerConn = conn
				continue
			}

			var payload struct {
				ID string `json:"id"`
			}
			if err := json.Unmarshal([]byte(notification.Payload), &payload); err != nil {
				log.Printf("Bad notification payload %q: %v", notification.Payload, err)
				continue
			}
			select {
			case s.notificationChan <- &Job{ID: payload.ID}:
			default:
				// channel full; workers will find the job on their periodic check
			}
		}
	}()
	return nil
}
