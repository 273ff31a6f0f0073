package repository

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/supabase-community/supabase-go"
)

// Store is the thin call-through to the Supabase record tables. All the real
// persistence lives on the other side of PostgREST; this layer only shapes
// queries and rows.
type Store struct {
	client *supabase.Client
}

func NewStore() (*Store, error) {
	client, err := supabase.NewClient(
		os.Getenv("FITLOG_SUPABASE_URL"),
		os.Getenv("FITLOG_SUPABASE_ANON_KEY"),
		&supabase.ClientOptions{},
	)
	if err != nil {
		return nil, fmt.Errorf("cannot initialize supabase client: %w", err)
	}
	return &Store{client: client}, nil
}

// Client exposes the underlying supabase client for services that query
// reference tables directly, like the exercise MET database.
func (s *Store) Client() *supabase.Client {
	return s.client
}

// UserForSession resolves a session id to its user id.
func (s *Store) UserForSession(session string) (string, error) {
	response, _, err := s.client.From("sessions").
		Select("user_id", "exact", false).
		Eq("session_id", session).
		Single().
		Execute()
	if err != nil {
		return "", fmt.Errorf("looking up session: %w", err)
	}
	var row struct {
		UserID string `json:"user_id"`
	}
	if err := json.Unmarshal(response, &row); err != nil {
		return "", fmt.Errorf("decoding session row: %w", err)
	}
	return row.UserID, nil
}
