// Package postgres provides a durable IntentRepository backed by
// PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/railpath-hq/railrouter/pkg/models"
	"github.com/railpath-hq/railrouter/pkg/storage"
)

// Store persists intents in an `intents` table. Structured fields (params,
// scores, quote, result) are stored as JSONB; Save upserts so the intent's
// lifecycle transitions land atomically on the single row.
type Store struct {
	db *sql.DB
}

var _ storage.IntentRepository = (*Store)(nil)

// NewStore opens a connection pool for the given DSN and verifies it.
func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping postgres: %v", err)
	}
	return &Store{db: db}, nil
}

// NewStoreWithDB wraps an existing database handle.
func NewStoreWithDB(db *sql.DB) *Store {
	return &Store{db: db}
}

// Save upserts the intent row.
func (s *Store) Save(ctx context.Context, intent *models.Intent) error {
	paramsJSON, err := json.Marshal(intent.Params)
	if err != nil {
		return fmt.Errorf("failed to encode params: %v", err)
	}
	fallbacksJSON, err := json.Marshal(intent.Fallbacks)
	if err != nil {
		return fmt.Errorf("failed to encode fallbacks: %v", err)
	}
	scoresJSON, err := json.Marshal(intent.Scores)
	if err != nil {
		return fmt.Errorf("failed to encode scores: %v", err)
	}
	quoteJSON, err := json.Marshal(intent.Quote)
	if err != nil {
		return fmt.Errorf("failed to encode quote: %v", err)
	}
	var resultJSON []byte
	if intent.Result != nil {
		resultJSON, err = json.Marshal(intent.Result)
		if err != nil {
			return fmt.Errorf("failed to encode result: %v", err)
		}
	}

	const query = `INSERT INTO intents
		(id, amount, currency, params, selected_rail, fallbacks, scores, quote, status, created_at, expires_at, result)
	VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	ON CONFLICT (id) DO UPDATE SET
		selected_rail = EXCLUDED.selected_rail,
		status        = EXCLUDED.status,
		result        = EXCLUDED.result`

	_, err = s.db.ExecContext(ctx, query,
		intent.ID,
		intent.Params.Amount,
		intent.Params.Currency,
		paramsJSON,
		intent.SelectedRail,
		fallbacksJSON,
		scoresJSON,
		quoteJSON,
		string(intent.Status),
		intent.CreatedAt,
		intent.ExpiresAt,
		nullableJSON(resultJSON),
	)
	return err
}

// Get loads the intent, returning false if the row does not exist.
func (s *Store) Get(ctx context.Context, id string) (*models.Intent, bool, error) {
	// amount and currency are denormalized for reporting queries; the
	// params JSON is the source of truth on reads.
	const query = `SELECT id, params, selected_rail, fallbacks, scores, quote, status, created_at, expires_at, result
	FROM intents WHERE id = $1`

	var (
		intent    models.Intent
		paramsRaw []byte
		fallbacks []byte
		scoresRaw []byte
		quoteRaw  []byte
		status    string
		resultRaw sql.NullString
	)
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&intent.ID,
		&paramsRaw,
		&intent.SelectedRail,
		&fallbacks,
		&scoresRaw,
		&quoteRaw,
		&status,
		&intent.CreatedAt,
		&intent.ExpiresAt,
		&resultRaw,
	)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	if err := json.Unmarshal(paramsRaw, &intent.Params); err != nil {
		return nil, false, fmt.Errorf("failed to decode params: %v", err)
	}
	if err := json.Unmarshal(fallbacks, &intent.Fallbacks); err != nil {
		return nil, false, fmt.Errorf("failed to decode fallbacks: %v", err)
	}
	if err := json.Unmarshal(scoresRaw, &intent.Scores); err != nil {
		return nil, false, fmt.Errorf("failed to decode scores: %v", err)
	}
	if err := json.Unmarshal(quoteRaw, &intent.Quote); err != nil {
		return nil, false, fmt.Errorf("failed to decode quote: %v", err)
	}
	if resultRaw.Valid && resultRaw.String != "" {
		var result models.ExecutionResult
		if err := json.Unmarshal([]byte(resultRaw.String), &result); err != nil {
			return nil, false, fmt.Errorf("failed to decode result: %v", err)
		}
		intent.Result = &result
	}
	intent.Status = models.IntentStatus(status)

	return &intent, true, nil
}

func nullableJSON(b []byte) interface{} {
	if len(b) == 0 {
		return nil
	}
	return b
}
