package render

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/joeblew999/plat-titlecard/pkg/card"
	"github.com/joeblew999/plat-titlecard/pkg/cardtype"
	"github.com/joeblew999/plat-titlecard/pkg/db"
	"github.com/joeblew999/plat-titlecard/pkg/magick"
	"github.com/joeblew999/plat-titlecard/pkg/queue"
)

type testEnv struct {
	engine   *Engine
	queue    *queue.Queue
	registry *cardtype.Registry
	composer *card.Composer
	dirs     Dirs
	source   string
}

// newTestEnv builds an engine over a real queue, a discovered style and
// a stand-in convert binary.
func newTestEnv(t *testing.T, convertBinary string) *testEnv {
	t.Helper()
	root := t.TempDir()

	d, err := db.Open(filepath.Join(root, "cards.db"))
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })

	q, err := queue.NewQueue(d.DB, "cards", 1)
	require.NoError(t, err)

	styleDir := filepath.Join(root, "card_types", "timeless")
	require.NoError(t, os.MkdirAll(filepath.Join(styleDir, "fonts"), 0o755))
	for _, name := range []string{"base.ttf", "infill.ttf", "gears.ttf"} {
		require.NoError(t, os.WriteFile(filepath.Join(styleDir, "fonts", name), goregular.TTF, 0o644))
	}
	m := cardtype.Timeless()
	m.Fonts = cardtype.LayerFonts{Base: "fonts/base.ttf", Infill: "fonts/infill.ttf", Gears: "fonts/gears.ttf"}
	m.Overlays = nil
	require.NoError(t, m.Save(filepath.Join(styleDir, cardtype.ManifestFilename)))

	registry := cardtype.NewRegistry(filepath.Join(root, "card_types"))
	_, err = registry.Discover()
	require.NoError(t, err)
	require.True(t, registry.Has("timeless"))

	dirs := Dirs{
		Source: filepath.Join(root, "source"),
		Output: filepath.Join(root, "cards"),
	}
	require.NoError(t, os.MkdirAll(dirs.Source, 0o755))
	source := filepath.Join(dirs.Source, "s1e1.jpg")
	require.NoError(t, os.WriteFile(source, []byte("jpg"), 0o644))

	composer := card.NewComposer()
	runner := magick.NewRunner(magick.WithBinary(convertBinary), magick.WithTimeout(10*time.Second))

	cfg := DefaultConfig()
	cfg.RateLimit = 6000

	return &testEnv{
		engine:   NewEngine(q, registry, composer, runner, dirs, cfg),
		queue:    q,
		registry: registry,
		composer: composer,
		dirs:     dirs,
		source:   source,
	}
}

func (env *testEnv) job() queue.CardJob {
	return queue.CardJob{
		StyleID: "timeless",
		Request: card.Card{
			SourcePath: "s1e1.jpg",
			OutputPath: "timeless-s1e1.jpg",
			Title:      "Pilot",
			Series:     "Timeless",
			Season:     1,
			Episode:    1,
		},
	}
}

func waitForStatus(t *testing.T, q *queue.Queue, id, want string) *queue.CardJob {
	t.Helper()
	var got *queue.CardJob
	require.Eventually(t, func() bool {
		job, err := q.GetStatus(context.Background(), id)
		if err != nil || job == nil {
			return false
		}
		got = job
		return job.Status == want
	}, 5*time.Second, 20*time.Millisecond, "waiting for status %q", want)
	return got
}

func TestEngineRendersQueuedCard(t *testing.T) {
	env := newTestEnv(t, "true")
	env.engine.Start(1)
	t.Cleanup(env.engine.Stop)

	id, err := env.queue.Enqueue(context.Background(), env.job())
	require.NoError(t, err)

	job := waitForStatus(t, env.queue, id, queue.StatusRendered)
	assert.Equal(t, filepath.Join(env.dirs.Output, "timeless-s1e1.jpg"), job.OutputPath)
	assert.NotEmpty(t, job.Fingerprint)
	assert.Equal(t, 1, job.Attempts)
}

func TestEngineUnknownStyleFailsPermanently(t *testing.T) {
	env := newTestEnv(t, "true")
	env.engine.Start(1)
	t.Cleanup(env.engine.Stop)

	j := env.job()
	j.StyleID = "polarcard"
	id, err := env.queue.Enqueue(context.Background(), j)
	require.NoError(t, err)

	job := waitForStatus(t, env.queue, id, queue.StatusFailed)
	assert.Contains(t, job.Error, "unknown card type")
	assert.Equal(t, 1, job.Attempts, "permanent failures must not retry")
}

func TestEngineMissingSourceFailsPermanently(t *testing.T) {
	env := newTestEnv(t, "true")
	env.engine.Start(1)
	t.Cleanup(env.engine.Stop)

	j := env.job()
	j.Request.SourcePath = "no-such-episode.jpg"
	id, err := env.queue.Enqueue(context.Background(), j)
	require.NoError(t, err)

	job := waitForStatus(t, env.queue, id, queue.StatusFailed)
	assert.Contains(t, job.Error, "source image")
}

func TestEngineRetriesTransientFailures(t *testing.T) {
	env := newTestEnv(t, "false")
	env.engine.Start(1)
	t.Cleanup(env.engine.Stop)

	id, err := env.queue.Enqueue(context.Background(), env.job())
	require.NoError(t, err)

	// convert exits nonzero, a transient failure, so the job goes back
	// to the queue behind its backoff. Waiting on the attempt count
	// distinguishes the retried state from the initial queued one.
	var job *queue.CardJob
	require.Eventually(t, func() bool {
		j, err := env.queue.GetStatus(context.Background(), id)
		if err != nil || j == nil {
			return false
		}
		job = j
		return j.Status == queue.StatusQueued && j.Attempts == 1
	}, 5*time.Second, 20*time.Millisecond)
	assert.Contains(t, job.Error, "convert failed")
	require.NotNil(t, job.ScheduledAt)
	assert.True(t, job.ScheduledAt.After(time.Now()), "retry must be delayed")
}

func TestEngineCacheHit(t *testing.T) {
	// convert is a failing binary: a cache hit must never invoke it.
	env := newTestEnv(t, "false")

	style, ok := env.registry.Get("timeless")
	require.True(t, ok)

	req := env.job().Request
	req.SourcePath = env.source
	req.OutputPath = "anywhere.jpg"
	plan, err := env.composer.Compose(context.Background(), style, &req)
	require.NoError(t, err)

	cachedFile := filepath.Join(env.dirs.Output, plan.Fingerprint()[:16]+".jpg")
	require.NoError(t, os.MkdirAll(env.dirs.Output, 0o755))
	require.NoError(t, os.WriteFile(cachedFile, []byte("jpg"), 0o644))

	env.engine.Start(1)
	t.Cleanup(env.engine.Stop)

	j := env.job()
	j.Request.OutputPath = "" // content-addressed
	id, err := env.queue.Enqueue(context.Background(), j)
	require.NoError(t, err)

	job := waitForStatus(t, env.queue, id, queue.StatusRendered)
	assert.Equal(t, cachedFile, job.OutputPath)
}

func TestRenderNow(t *testing.T) {
	env := newTestEnv(t, "true")
	ctx := context.Background()

	out, err := env.engine.RenderNow(ctx, "timeless", env.job().Request)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(env.dirs.Output, "timeless-s1e1.jpg"), out)

	req := env.job().Request
	req.OutputPath = ""
	out, err = env.engine.RenderNow(ctx, "timeless", req)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, env.dirs.Output))
	assert.True(t, strings.HasSuffix(out, ".jpg"))

	_, err = env.engine.RenderNow(ctx, "polarcard", env.job().Request)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown card type")
}
