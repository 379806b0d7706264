package queue

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeblew999/plat-titlecard/pkg/card"
	"github.com/joeblew999/plat-titlecard/pkg/db"
)

func testQueue(t *testing.T) (*Queue, *db.DB) {
	t.Helper()
	d, err := db.Open(filepath.Join(t.TempDir(), "cards.db"))
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })

	q, err := NewQueue(d.DB, "cards", 2)
	require.NoError(t, err)
	return q, d
}

func testJob() CardJob {
	return CardJob{
		StyleID: "timeless",
		Request: card.Card{
			SourcePath: "/data/source/timeless/s1e1.jpg",
			OutputPath: "/data/cards/timeless-s1e1.jpg",
			Title:      "Pilot",
			Series:     "Timeless",
			Season:     1,
			Episode:    1,
		},
	}
}

func TestEnqueueAndGetStatus(t *testing.T) {
	q, _ := testQueue(t)
	ctx := context.Background()

	id, err := q.Enqueue(ctx, testJob())
	require.NoError(t, err)
	require.NotEmpty(t, id)

	job, err := q.GetStatus(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, StatusQueued, job.Status)
	assert.Equal(t, "timeless", job.StyleID)
	assert.Equal(t, "Pilot", job.Request.Title)
	assert.Equal(t, PriorityNormal, job.Priority)
	assert.Equal(t, 3, job.MaxAttempts)
	assert.Zero(t, job.Attempts)

	missing, err := q.GetStatus(ctx, "no-such-id")
	require.NoError(t, err)
	assert.Nil(t, missing)

	stats, err := q.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats[StatusQueued])
}

func TestReceiveLifecycle(t *testing.T) {
	q, _ := testQueue(t)
	ctx := context.Background()

	id, err := q.Enqueue(ctx, testJob())
	require.NoError(t, err)

	job, msg, err := q.Receive(ctx)
	require.NoError(t, err)
	require.NotNil(t, job)
	require.NotNil(t, msg)
	assert.Equal(t, id, job.ID)

	require.NoError(t, q.UpdateStatus(ctx, job.ID, StatusRendering, nil))
	current, err := q.GetStatus(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusRendering, current.Status)
	assert.Equal(t, 1, current.Attempts)

	require.NoError(t, q.Extend(ctx, msg, time.Minute))
	require.NoError(t, q.MarkRendered(ctx, job.ID, "/data/cards/timeless-s1e1.jpg", "abc123"))
	require.NoError(t, q.Delete(ctx, msg))

	done, err := q.GetStatus(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusRendered, done.Status)
	assert.Equal(t, "/data/cards/timeless-s1e1.jpg", done.OutputPath)
	assert.Equal(t, "abc123", done.Fingerprint)
	assert.NotNil(t, done.RenderedAt)
	assert.Empty(t, done.Error)

	// Queue drained.
	next, nextMsg, err := q.Receive(ctx)
	require.NoError(t, err)
	assert.Nil(t, next)
	assert.Nil(t, nextMsg)
}

func TestScheduleDelaysDelivery(t *testing.T) {
	q, _ := testQueue(t)
	ctx := context.Background()

	id, err := q.Schedule(ctx, testJob(), time.Now().Add(time.Hour))
	require.NoError(t, err)

	job, msg, err := q.Receive(ctx)
	require.NoError(t, err)
	assert.Nil(t, job, "scheduled job must stay invisible until due")
	assert.Nil(t, msg)

	stored, err := q.GetStatus(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, stored.ScheduledAt)
	assert.True(t, stored.ScheduledAt.After(time.Now()))
}

func TestListFiltersByStatus(t *testing.T) {
	q, _ := testQueue(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		job := testJob()
		job.Request.Episode = i + 1
		id, err := q.Enqueue(ctx, job)
		require.NoError(t, err)
		ids = append(ids, id)
	}
	require.NoError(t, q.UpdateStatus(ctx, ids[0], StatusFailed, errors.New("convert failed")))

	failed, err := q.List(ctx, StatusFailed, 10)
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, ids[0], failed[0].ID)
	assert.Contains(t, failed[0].Error, "convert failed")

	all, err := q.List(ctx, "all", 10)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	limited, err := q.List(ctx, "", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestMarkFailedAndRetry(t *testing.T) {
	q, _ := testQueue(t)
	ctx := context.Background()

	id, err := q.Enqueue(ctx, testJob())
	require.NoError(t, err)

	job, msg, err := q.Receive(ctx)
	require.NoError(t, err)
	require.NotNil(t, job)

	job.Attempts = 1
	require.NoError(t, q.MarkRetry(ctx, job, time.Hour, errors.New("database is locked")))
	require.NoError(t, q.Delete(ctx, msg))

	stored, err := q.GetStatus(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, StatusQueued, stored.Status)
	assert.Equal(t, 1, stored.Attempts)
	assert.Contains(t, stored.Error, "database is locked")
	require.NotNil(t, stored.ScheduledAt)

	// The retry sits behind its backoff, so nothing is receivable yet.
	next, nextMsg, err := q.Receive(ctx)
	require.NoError(t, err)
	assert.Nil(t, next)
	assert.Nil(t, nextMsg)

	require.NoError(t, q.MarkFailed(ctx, id, errors.New("imagemagick binary not found")))
	failed, err := q.GetStatus(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, failed.Status)
	assert.Contains(t, failed.Error, "imagemagick")
}

func TestEventRecorder(t *testing.T) {
	q, d := testQueue(t)
	ctx := context.Background()

	id, err := q.Enqueue(ctx, testJob())
	require.NoError(t, err)

	rec, err := NewEventRecorder(d.SqlConn())
	require.NoError(t, err)
	rec.RecordEvent(id, "queued", "enqueued via test")
	rec.Flush()

	assert.Eventually(t, func() bool {
		var count int
		if err := d.QueryRow(`SELECT COUNT(*) FROM card_events WHERE card_id = ?`, id).Scan(&count); err != nil {
			return false
		}
		return count == 1
	}, 2*time.Second, 20*time.Millisecond)
}
