package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// InsightRequestLog is one recorded analysis exchange: the prompt sent, the
// payloads either way and the outcome. Detail lives here, never in the user
// response.
type InsightRequestLog struct {
	RequestID       uuid.UUID
	Provider        string
	Model           string
	Prompt          string
	RequestPayload  []byte
	ResponsePayload []byte
	RawResponse     string
	Success         bool
	ErrorMessage    *string
}

// RequestRecorder persists analysis exchanges. Recording is best-effort and
// never blocks the user-facing path.
type RequestRecorder interface {
	Record(ctx context.Context, log InsightRequestLog) error
}

type InsightLogRepository struct {
	db *pgxpool.Pool
}

// NewInsightLogRepository builds the pgx-backed recorder.
func NewInsightLogRepository(db *pgxpool.Pool) *InsightLogRepository {
	return &InsightLogRepository{db: db}
}

// Record stores one analysis exchange.
func (r *InsightLogRepository) Record(ctx context.Context, log InsightRequestLog) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO insight_requests
		 (request_id, provider, model, prompt, request_payload, response_payload, raw_response, success, error_message)
		 VALUES ($1, $2, $3, $4, NULLIF($5, '')::jsonb, NULLIF($6, '')::jsonb, $7, $8, $9)`,
		log.RequestID,
		log.Provider,
		log.Model,
		log.Prompt,
		string(log.RequestPayload),
		string(log.ResponsePayload),
		log.RawResponse,
		log.Success,
		log.ErrorMessage,
	)
	return err
}

// NopRecorder discards logs; used when no database is configured.
type NopRecorder struct{}

func (NopRecorder) Record(context.Context, InsightRequestLog) error {
	return nil
}
