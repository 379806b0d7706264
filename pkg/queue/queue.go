// Package queue provides card render queue operations using goqite.
package queue

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"maragu.dev/goqite"

	"github.com/joeblew999/plat-titlecard/pkg/card"
)

// Priority levels for card rendering.
const (
	PriorityLow    = 0 // Library backfills
	PriorityNormal = 1 // New episodes
	PriorityHigh   = 2 // Watch-next, user requested
)

// Card job lifecycle states.
const (
	StatusQueued    = "queued"
	StatusRendering = "rendering"
	StatusRendered  = "rendered"
	StatusFailed    = "failed"
)

// Message is the queue receipt for an in-flight job. Workers must Delete
// it on completion or Extend it to keep ownership.
type Message = goqite.Message

// CardJob represents a card to be rendered.
type CardJob struct {
	ID          string     `json:"id"`
	StyleID     string     `json:"style_id"`
	Request     card.Card  `json:"request"`
	Priority    int        `json:"priority"`
	Attempts    int        `json:"attempts"`
	MaxAttempts int        `json:"max_attempts"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	Status      string     `json:"status,omitempty"`
	Error       string     `json:"error,omitempty"`
	OutputPath  string     `json:"output_path,omitempty"`
	Fingerprint string     `json:"fingerprint,omitempty"`
	RenderedAt  *time.Time `json:"rendered_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Queue manages card jobs using goqite.
type Queue struct {
	db      *sql.DB
	queue   *goqite.Queue
	name    string
	workers int

	// Events, when set, receives lifecycle events for every job.
	Events *EventRecorder
}

// NewQueue creates a new render queue.
func NewQueue(db *sql.DB, name string, workers int) (*Queue, error) {
	// Setup goqite schema
	if err := goqite.Setup(context.Background(), db); err != nil {
		return nil, fmt.Errorf("setup goqite: %w", err)
	}

	q := goqite.New(goqite.NewOpts{
		DB:   db,
		Name: name,
	})

	return &Queue{
		db:      db,
		queue:   q,
		name:    name,
		workers: workers,
	}, nil
}

// Name returns the queue name.
func (q *Queue) Name() string {
	return q.name
}

// Workers returns the configured worker count.
func (q *Queue) Workers() int {
	return q.workers
}

// Enqueue adds a card job to the queue.
func (q *Queue) Enqueue(ctx context.Context, job CardJob) (string, error) {
	if job.ID == "" {
		job.ID = uuid.New().String()
	}
	if job.MaxAttempts == 0 {
		job.MaxAttempts = 3
	}
	if job.Priority == 0 {
		job.Priority = PriorityNormal
	}
	job.Status = StatusQueued
	job.CreatedAt = time.Now()

	body, err := json.Marshal(job)
	if err != nil {
		return "", fmt.Errorf("marshal job: %w", err)
	}

	// Calculate delay based on scheduled time
	var delay time.Duration
	if job.ScheduledAt != nil && job.ScheduledAt.After(time.Now()) {
		delay = time.Until(*job.ScheduledAt)
	}

	if err := q.queue.Send(ctx, goqite.Message{
		Body:  body,
		Delay: delay,
	}); err != nil {
		return "", fmt.Errorf("send to queue: %w", err)
	}

	// Also store in cards table for tracking
	if err := q.storeCard(ctx, job); err != nil {
		return "", fmt.Errorf("store card: %w", err)
	}

	return job.ID, nil
}

// Schedule adds a card job to be rendered at a specific time.
func (q *Queue) Schedule(ctx context.Context, job CardJob, at time.Time) (string, error) {
	job.ScheduledAt = &at
	return q.Enqueue(ctx, job)
}

// Receive gets the next job from the queue.
func (q *Queue) Receive(ctx context.Context) (*CardJob, *goqite.Message, error) {
	msg, err := q.queue.Receive(ctx)
	if err != nil {
		return nil, nil, err
	}
	if msg == nil {
		return nil, nil, nil
	}

	var job CardJob
	if err := json.Unmarshal(msg.Body, &job); err != nil {
		return nil, msg, fmt.Errorf("unmarshal job: %w", err)
	}

	return &job, msg, nil
}

// Extend extends the timeout for a message being processed.
func (q *Queue) Extend(ctx context.Context, msg *goqite.Message, d time.Duration) error {
	return q.queue.Extend(ctx, msg.ID, d)
}

// Delete removes a message from the queue (job completed).
func (q *Queue) Delete(ctx context.Context, msg *goqite.Message) error {
	return q.queue.Delete(ctx, msg.ID)
}

// GetStatus returns the status of a card by ID.
func (q *Queue) GetStatus(ctx context.Context, id string) (*CardJob, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT id, style_id, request, status, priority, attempts, max_attempts,
		       output_path, fingerprint, scheduled_at, rendered_at, error, created_at
		FROM cards WHERE id = ?
	`, id)

	job, err := scanCard(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return job, nil
}

// UpdateStatus updates the status of a card and counts the attempt.
func (q *Queue) UpdateStatus(ctx context.Context, id, status string, err error) error {
	var errStr sql.NullString
	if err != nil {
		errStr = sql.NullString{String: err.Error(), Valid: true}
	}

	_, dbErr := q.db.ExecContext(ctx, `
		UPDATE cards
		SET status = ?, error = ?, updated_at = CURRENT_TIMESTAMP,
		    attempts = attempts + 1
		WHERE id = ?
	`, status, errStr, id)
	return dbErr
}

// MarkRendered marks a card as successfully rendered.
func (q *Queue) MarkRendered(ctx context.Context, id, outputPath, fingerprint string) error {
	_, err := q.db.ExecContext(ctx, `
		UPDATE cards
		SET status = 'rendered', rendered_at = CURRENT_TIMESTAMP,
		    output_path = ?, fingerprint = ?, error = NULL,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, outputPath, fingerprint, id)
	return err
}

// MarkFailed marks a card as permanently failed.
func (q *Queue) MarkFailed(ctx context.Context, id string, cause error) error {
	var errStr sql.NullString
	if cause != nil {
		errStr = sql.NullString{String: cause.Error(), Valid: true}
	}
	_, err := q.db.ExecContext(ctx, `
		UPDATE cards
		SET status = 'failed', error = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, errStr, id)
	return err
}

// MarkRetry re-queues a card after a backoff. The job's attempt count is
// carried in the re-sent message so the next worker sees it.
func (q *Queue) MarkRetry(ctx context.Context, job *CardJob, backoff time.Duration, cause error) error {
	retryAt := time.Now().Add(backoff)
	job.ScheduledAt = &retryAt
	if cause != nil {
		job.Error = cause.Error()
	}

	body, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}
	if err := q.queue.Send(ctx, goqite.Message{Body: body, Delay: backoff}); err != nil {
		return fmt.Errorf("send to queue: %w", err)
	}

	_, err = q.db.ExecContext(ctx, `
		UPDATE cards
		SET status = 'queued', attempts = ?, error = ?,
		    scheduled_at = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, job.Attempts, job.Error, retryAt, job.ID)
	return err
}

// List returns jobs from the queue with optional status filter.
func (q *Queue) List(ctx context.Context, status string, limit int) ([]*CardJob, error) {
	query := `
		SELECT id, style_id, request, status, priority, attempts, max_attempts,
		       output_path, fingerprint, scheduled_at, rendered_at, error, created_at
		FROM cards
	`
	args := []any{}

	if status != "" && status != "all" {
		query += " WHERE status = ?"
		args = append(args, status)
	}

	query += " ORDER BY created_at DESC LIMIT ?"
	args = append(args, limit)

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []*CardJob
	for rows.Next() {
		job, err := scanCard(rows.Scan)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	return jobs, rows.Err()
}

// Stats returns queue statistics.
func (q *Queue) Stats(ctx context.Context) (map[string]int, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT status, COUNT(*) as count FROM cards GROUP BY status
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats[status] = count
	}

	return stats, rows.Err()
}

// scanCard scans one cards row into a CardJob.
func scanCard(scan func(...any) error) (*CardJob, error) {
	var job CardJob
	var request string
	var outputPath, fingerprint, errStr sql.NullString
	var scheduledAt, renderedAt sql.NullTime

	err := scan(
		&job.ID, &job.StyleID, &request, &job.Status, &job.Priority,
		&job.Attempts, &job.MaxAttempts, &outputPath, &fingerprint,
		&scheduledAt, &renderedAt, &errStr, &job.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	json.Unmarshal([]byte(request), &job.Request)
	if outputPath.Valid {
		job.OutputPath = outputPath.String
	}
	if fingerprint.Valid {
		job.Fingerprint = fingerprint.String
	}
	if errStr.Valid {
		job.Error = errStr.String
	}
	if scheduledAt.Valid {
		job.ScheduledAt = &scheduledAt.Time
	}
	if renderedAt.Valid {
		job.RenderedAt = &renderedAt.Time
	}
	return &job, nil
}

func (q *Queue) storeCard(ctx context.Context, job CardJob) error {
	request, _ := json.Marshal(job.Request)

	var scheduledAt sql.NullTime
	if job.ScheduledAt != nil {
		scheduledAt = sql.NullTime{Time: *job.ScheduledAt, Valid: true}
	}

	_, err := q.db.ExecContext(ctx, `
		INSERT INTO cards (id, series, season, episode, title, style_id,
		                   source_path, request, status, priority, attempts,
		                   max_attempts, scheduled_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, 'queued', ?, 0, ?, ?, CURRENT_TIMESTAMP)
	`, job.ID, job.Request.Series, job.Request.Season, job.Request.Episode,
		job.Request.Title, job.StyleID, job.Request.SourcePath, string(request),
		job.Priority, job.MaxAttempts, scheduledAt)

	return err
}
