// Package metrics records one row per generation call so token spend and
// latency stay visible (the remote free tier is easy to exhaust).
package metrics

import (
	"database/sql"
	"time"

	"careplan-assistant/internal/llm"
)

// GenerationMetric records metadata for a single generation call.
type GenerationMetric struct {
	Backend          string // "local" or "remote"
	Model            string
	PromptTokens     int
	CompletionTokens int
	LatencyMS        int64
	Fallback         bool // parser substituted the placeholder record
	Timestamp        time.Time
}

// Store handles persistence of generation metrics to SQLite.
type Store struct {
	db *sql.DB
}

// NewStore initializes the Store with an existing database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Record saves a metric to the database.
func (s *Store) Record(m GenerationMetric) error {
	ts := m.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	fallback := 0
	if m.Fallback {
		fallback = 1
	}

	_, err := s.db.Exec(
		`INSERT INTO generation_metrics (backend, model, prompt_tokens, completion_tokens, latency_ms, fallback, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.Backend, m.Model, m.PromptTokens, m.CompletionTokens, m.LatencyMS, fallback, ts,
	)
	return err
}

// RecordUsage records a metric directly from a generation response.
func (s *Store) RecordUsage(backend string, usage llm.TokenUsage, latency time.Duration, fallback bool) error {
	return s.Record(GenerationMetric{
		Backend:          backend,
		Model:            usage.Model,
		PromptTokens:     usage.PromptTokens,
		CompletionTokens: usage.CompletionTokens,
		LatencyMS:        latency.Milliseconds(),
		Fallback:         fallback,
		Timestamp:        time.Now().UTC(),
	})
}

// DailyUsage represents token totals for a single day.
type DailyUsage struct {
	Date            string
	TotalPrompt     int
	TotalCompletion int
	Calls           int
}

// GetDailyUsage retrieves usage for the last N days, newest first.
func (s *Store) GetDailyUsage(days int) ([]DailyUsage, error) {
	since := time.Now().AddDate(0, 0, -days).UTC()
	rows, err := s.db.Query(
		`SELECT date(timestamp) AS day,
		        COALESCE(SUM(prompt_tokens), 0),
		        COALESCE(SUM(completion_tokens), 0),
		        COUNT(*)
		 FROM generation_metrics
		 WHERE timestamp >= ?
		 GROUP BY day
		 ORDER BY day DESC`,
		since,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []DailyUsage
	for rows.Next() {
		var u DailyUsage
		if err := rows.Scan(&u.Date, &u.TotalPrompt, &u.TotalCompletion, &u.Calls); err != nil {
			return nil, err
		}
		results = append(results, u)
	}
	return results, rows.Err()
}

// Cleanup removes records older than the specified number of days and
// returns how many rows were deleted.
func (s *Store) Cleanup(olderThanDays int) (int64, error) {
	threshold := time.Now().AddDate(0, 0, -olderThanDays).UTC()
	res, err := s.db.Exec(`DELETE FROM generation_metrics WHERE timestamp < ?`, threshold)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
