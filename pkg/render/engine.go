// Package render provides the card render engine with retry support.
package render

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/rescue"
	"github.com/zeromicro/go-zero/core/syncx"
	"github.com/zeromicro/go-zero/core/threading"
	"golang.org/x/time/rate"

	"github.com/joeblew999/plat-titlecard/pkg/card"
	"github.com/joeblew999/plat-titlecard/pkg/cardtype"
	"github.com/joeblew999/plat-titlecard/pkg/config"
	"github.com/joeblew999/plat-titlecard/pkg/magick"
	"github.com/joeblew999/plat-titlecard/pkg/queue"
)

// Config holds render engine configuration.
type Config struct {
	MaxRetries   int
	RetryBackoff time.Duration
	MaxBackoff   time.Duration
	RateLimit    int // cards per minute
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxRetries:   3,
		RetryBackoff: 5 * time.Minute,
		MaxBackoff:   4 * time.Hour,
		RateLimit:    120,
	}
}

// Dirs locates the filesystem trees the engine reads and writes.
type Dirs struct {
	Source string // episode art, relative source paths resolve here
	Output string // finished cards, relative output paths resolve here
}

// Engine renders queued cards with retry logic.
type Engine struct {
	config      Config
	queue       *queue.Queue
	registry    *cardtype.Registry
	composer    *card.Composer
	runner      *magick.Runner
	dirs        Dirs
	rateLimiter *rate.Limiter
	running     *syncx.AtomicBool

	ctx    context.Context
	cancel context.CancelFunc
	group  *threading.RoutineGroup
}

// NewEngine creates a new render engine. Empty dirs fall back to the
// config defaults. A nil queue is valid for engines used only through
// RenderNow.
func NewEngine(q *queue.Queue, registry *cardtype.Registry, composer *card.Composer, runner *magick.Runner, dirs Dirs, cfg Config) *Engine {
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = DefaultConfig().RateLimit
	}
	if dirs.Source == "" {
		dirs.Source = config.GetSourcePath()
	}
	if dirs.Output == "" {
		dirs.Output = config.GetCardOutputPath()
	}
	// Rate limiter: N cards per minute
	limiter := rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RateLimit)), 1)

	ctx, cancel := context.WithCancel(context.Background())

	return &Engine{
		config:      cfg,
		queue:       q,
		registry:    registry,
		composer:    composer,
		runner:      runner,
		dirs:        dirs,
		rateLimiter: limiter,
		running:     syncx.NewAtomicBool(),
		ctx:         ctx,
		cancel:      cancel,
		group:       threading.NewRoutineGroup(),
	}
}

// Start starts the render engine with the specified number of workers.
func (e *Engine) Start(workers int) {
	if !e.running.CompareAndSwap(false, true) {
		return // Already running
	}

	logx.Infow("Render engine started", logx.Field("workers", workers))
	for i := 0; i < workers; i++ {
		workerID := i
		e.group.RunSafe(func() { e.worker(workerID) })
	}
}

// Stop gracefully stops the render engine.
func (e *Engine) Stop() {
	if !e.running.CompareAndSwap(true, false) {
		return // Already stopped
	}

	logx.Info("Render engine stopping, waiting for workers")
	e.cancel()
	e.group.Wait()
	logx.Info("Render engine stopped")
}

func (e *Engine) worker(id int) {
	backoff := 100 * time.Millisecond
	const maxBackoff = 5 * time.Second

	for {
		select {
		case <-e.ctx.Done():
			return
		default:
			job, msg, err := e.queue.Receive(e.ctx)
			if err != nil {
				time.Sleep(backoff)
				if backoff < maxBackoff {
					backoff = min(backoff*2, maxBackoff)
				}
				continue
			}
			if job == nil {
				// No work available, adaptive backoff
				time.Sleep(backoff)
				if backoff < maxBackoff {
					backoff = min(backoff*2, maxBackoff)
				}

				// Periodically update queue depth gauge
				e.updateQueueDepth()
				continue
			}

			backoff = 100 * time.Millisecond // Reset on work found
			e.processJob(job, msg)
		}
	}
}

func (e *Engine) processJob(job *queue.CardJob, msg *queue.Message) {
	// Enrich context with per-job fields; all logx calls with ctx include these automatically
	ctx := logx.ContextWithFields(e.ctx,
		logx.Field("job_id", job.ID),
		logx.Field("style", job.StyleID),
		logx.Field("episode", fmt.Sprintf("%s S%02dE%02d", job.Request.Series, job.Request.Season, job.Request.Episode)),
	)

	// Panic recovery: mark job failed and record metric if processJob panics
	defer rescue.RecoverCtx(ctx, func() {
		cardsFailed.Inc(job.StyleID, "panic")
		e.queue.MarkFailed(ctx, job.ID, fmt.Errorf("panic during render"))
		e.queue.Delete(ctx, msg)
	})

	logx.WithContext(ctx).Info("Rendering card")

	start := time.Now()
	job.Attempts++
	if err := e.queue.UpdateStatus(ctx, job.ID, queue.StatusRendering, nil); err != nil {
		logx.WithContext(ctx).Errorf("Failed to update status: %v", err)
	}

	// Apply rate limiting
	if err := e.rateLimiter.Wait(ctx); err != nil {
		e.handleError(ctx, job, msg, err)
		return
	}

	plan, cached, err := e.prepare(ctx, job)
	if err != nil {
		e.handleError(ctx, job, msg, err)
		return
	}

	if cached {
		// An identical render already exists on disk.
		e.queue.MarkRendered(ctx, job.ID, job.Request.OutputPath, plan.Fingerprint())
		e.queue.Delete(ctx, msg)
		cacheHits.Inc(job.StyleID)
		e.recordEvent(job.ID, "rendered", "cache hit: "+job.Request.OutputPath)
		logx.WithContext(ctx).Info("Card served from cache")
		return
	}

	if err := e.runner.Convert(ctx, plan.Args); err != nil {
		e.handleError(ctx, job, msg, err)
		return
	}

	// Success
	e.queue.MarkRendered(ctx, job.ID, job.Request.OutputPath, plan.Fingerprint())
	e.queue.Delete(ctx, msg)
	cardsRendered.Inc(job.StyleID)
	renderDuration.ObserveFloat(time.Since(start).Seconds(), job.StyleID)
	e.recordEvent(job.ID, "rendered", job.Request.OutputPath)

	logx.WithContext(ctx).Info("Card rendered")
}

// prepare resolves the job against the style registry and filesystem and
// composes its convert plan. Requests without an output path get a
// content-addressed filename in the output directory; when that file
// already exists the render is a cache hit.
func (e *Engine) prepare(ctx context.Context, job *queue.CardJob) (*card.Plan, bool, error) {
	style, ok := e.registry.Get(job.StyleID)
	if !ok {
		return nil, false, permanent(fmt.Errorf("unknown card type %q", job.StyleID))
	}

	req := job.Request
	if req.SourcePath != "" && !filepath.IsAbs(req.SourcePath) {
		req.SourcePath = filepath.Join(e.dirs.Source, req.SourcePath)
	}
	if _, err := os.Stat(req.SourcePath); err != nil {
		return nil, false, permanent(fmt.Errorf("source image: %w", err))
	}

	contentAddressed := req.OutputPath == ""
	if contentAddressed {
		// Placeholder so the plan validates; the fingerprint ignores the
		// output argument, so it can be patched afterwards.
		req.OutputPath = filepath.Join(e.dirs.Output, "pending.jpg")
	} else if !filepath.IsAbs(req.OutputPath) {
		req.OutputPath = filepath.Join(e.dirs.Output, req.OutputPath)
	}

	plan, err := e.composer.Compose(ctx, style, &req)
	if err != nil {
		return nil, false, permanent(err)
	}
	if contentAddressed {
		req.OutputPath = filepath.Join(e.dirs.Output, plan.Fingerprint()[:16]+".jpg")
		plan.Args[len(plan.Args)-1] = req.OutputPath
	}
	if err := os.MkdirAll(filepath.Dir(req.OutputPath), 0755); err != nil {
		return nil, false, fmt.Errorf("create output directory: %w", err)
	}
	job.Request = req

	cached := false
	if contentAddressed {
		if _, err := os.Stat(req.OutputPath); err == nil {
			cached = true
		}
	}
	return plan, cached, nil
}

func (e *Engine) handleError(ctx context.Context, job *queue.CardJob, msg *queue.Message, err error) {
	job.Error = err.Error()

	// Classify failure reason for metrics
	reason := "transient"
	if isPermanentFailure(err) {
		reason = "permanent"
	}

	// Check if permanent failure
	if isPermanentFailure(err) || job.Attempts >= job.MaxAttempts {
		e.queue.MarkFailed(ctx, job.ID, err)
		e.queue.Delete(ctx, msg)
		cardsFailed.Inc(job.StyleID, reason)
		e.recordEvent(job.ID, "failed", err.Error())
		logx.WithContext(ctx).Errorf("Card render failed permanently: %v", err)
		return
	}

	// Schedule retry with backoff
	backoff := e.calculateBackoff(job.Attempts)
	if retryErr := e.queue.MarkRetry(ctx, job, backoff, err); retryErr != nil {
		logx.WithContext(ctx).Errorf("Failed to schedule retry: %v", retryErr)
	}
	e.queue.Delete(ctx, msg)
	cardsRetried.Inc(job.StyleID)
	e.recordEvent(job.ID, "retry", fmt.Sprintf("attempt %d, backoff %s: %v", job.Attempts, backoff, err))

	logx.WithContext(ctx).Infof("Card render retrying in %s: %v", backoff, err)
}

func (e *Engine) calculateBackoff(attempts int) time.Duration {
	backoff := e.config.RetryBackoff * time.Duration(math.Pow(2, float64(attempts-1)))
	if backoff > e.config.MaxBackoff {
		return e.config.MaxBackoff
	}
	return backoff
}

// permanentError marks failures a retry cannot fix: unknown styles,
// unreadable sources, invalid requests, missing ImageMagick.
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

func permanent(err error) error {
	return &permanentError{err: err}
}

// isPermanentFailure checks if the error indicates a permanent failure.
func isPermanentFailure(err error) bool {
	var pe *permanentError
	return errors.As(err, &pe) || errors.Is(err, magick.ErrNotAvailable)
}

// recordEvent writes an event through the queue's recorder if available.
func (e *Engine) recordEvent(cardID, eventType, details string) {
	if e.queue.Events != nil {
		e.queue.Events.RecordEvent(cardID, eventType, details)
	}
}

// updateQueueDepth refreshes the queue depth gauge from current stats.
func (e *Engine) updateQueueDepth() {
	stats, err := e.queue.Stats(e.ctx)
	if err != nil {
		return
	}
	for status, count := range stats {
		queueDepth.Set(float64(count), status)
	}
}

// RenderNow renders a card immediately without queueing. It returns the
// resolved output path.
func (e *Engine) RenderNow(ctx context.Context, styleID string, req card.Card) (string, error) {
	// Apply rate limiting
	if err := e.rateLimiter.Wait(ctx); err != nil {
		return "", err
	}

	job := &queue.CardJob{StyleID: styleID, Request: req}
	plan, cached, err := e.prepare(ctx, job)
	if err != nil {
		return "", err
	}
	if cached {
		cacheHits.Inc(styleID)
		return job.Request.OutputPath, nil
	}

	if err := e.runner.Convert(ctx, plan.Args); err != nil {
		return "", err
	}
	cardsRendered.Inc(styleID)
	return job.Request.OutputPath, nil
}
