package server

import (
	"fmt"
	"time"

	"net/http"

	"github.com/joeblew999/plat-titlecard/internal/config"
	"github.com/joeblew999/plat-titlecard/internal/errorx"
	"github.com/joeblew999/plat-titlecard/internal/handler"
	"github.com/joeblew999/plat-titlecard/internal/svc"
	"github.com/joeblew999/plat-titlecard/internal/ui"
	"github.com/joeblew999/plat-titlecard/pkg/card"
	"github.com/joeblew999/plat-titlecard/pkg/cardtype"
	"github.com/joeblew999/plat-titlecard/pkg/db"
	"github.com/joeblew999/plat-titlecard/pkg/magick"
	"github.com/joeblew999/plat-titlecard/pkg/queue"
	"github.com/joeblew999/plat-titlecard/pkg/render"
	"github.com/joeblew999/plat-titlecard/pkg/typeface"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/mr"
	"github.com/zeromicro/go-zero/core/proc"
	"github.com/zeromicro/go-zero/core/prometheus"
	"github.com/zeromicro/go-zero/core/service"
	"github.com/zeromicro/go-zero/mcp"
	"github.com/zeromicro/go-zero/rest"
)

// Server wraps the MCP server and title card platform services.
type Server struct {
	config config.Config
	group  *service.ServiceGroup
}

// New creates a new server instance.
func New(c config.Config) (*Server, error) {
	// Register global error handler for proper HTTP status codes
	errorx.RegisterErrorHandler()

	// Enable go-zero prometheus metrics (required for metric.CounterVec/HistogramVec/GaugeVec to record)
	prometheus.Enable()

	// Create MCP server
	mcpServer := mcp.NewMcpServer(c.McpConf)

	// Parallel initialization: card type discovery and database opening are independent
	var registry *cardtype.Registry
	var database *db.DB

	err := mr.Finish(
		func() error {
			registry = cardtype.NewRegistry(c.CardTypes.Dir,
				cardtype.WithFontVerifier(typeface.VerifyCompatible))
			_, e := registry.Discover()
			return e
		},
		func() error {
			var e error
			database, e = db.Open(c.Database.Path)
			return e
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize: %w", err)
	}

	// Fresh installation: scaffold the built-in Timeless style so the
	// operator only has to drop the three layer fonts into its package.
	if registry.Count() == 0 {
		if pkgDir, err := cardtype.Scaffold(c.CardTypes.Dir); err != nil {
			logx.Errorf("failed to scaffold built-in card type: %v", err)
		} else {
			logx.Infow("scaffolded built-in card type; add its layer fonts and restart",
				logx.Field("dir", pkgDir))
		}
	}

	// Create queue on the raw connection (goqite manages its own schema)
	cardQueue, err := queue.NewQueue(database.DB, "cards", c.Render.Workers)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create queue: %w", err)
	}

	// go-zero sqlx.SqlConn for circuit breaking + tracing on read paths
	conn := database.SqlConn()
	events, err := queue.NewEventRecorder(conn)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create event recorder: %w", err)
	}
	cardQueue.Events = events

	// ImageMagick runner
	magickTimeout, _ := time.ParseDuration(c.Magick.Timeout)
	runnerOpts := []magick.RunnerOption{magick.WithBinary(c.Magick.Binary)}
	if magickTimeout > 0 {
		runnerOpts = append(runnerOpts, magick.WithTimeout(magickTimeout))
	}
	runner := magick.NewRunner(runnerOpts...)
	if !runner.Available() {
		logx.Errorf("imagemagick binary %q not found, renders will fail until it is installed", runner.Binary())
	}

	// Parse render config
	retryBackoff, _ := time.ParseDuration(c.Render.RetryBackoff)
	if retryBackoff == 0 {
		retryBackoff = 5 * time.Minute
	}
	maxBackoff, _ := time.ParseDuration(c.Render.MaxBackoff)
	if maxBackoff == 0 {
		maxBackoff = 4 * time.Hour
	}

	renderConfig := render.Config{
		MaxRetries:   c.Render.MaxRetries,
		RetryBackoff: retryBackoff,
		MaxBackoff:   maxBackoff,
		RateLimit:    c.Render.RateLimit,
	}

	dirs := render.Dirs{
		Source: c.Cards.SourceDir,
		Output: c.Cards.OutputDir,
	}
	engine := render.NewEngine(cardQueue, registry, card.NewComposer(card.WithMeasurer(runner)), runner, dirs, renderConfig)

	// Register MCP tools
	RegisterMCPTools(mcpServer, registry, cardQueue)

	// Create UI rest server (Datastar web UI) with CORS
	uiServer, err := rest.NewServer(c.UI.RestConf, rest.WithCors("*"))
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create UI server: %w", err)
	}

	uiHandlers := ui.NewHandlers(registry, cardQueue)
	uiServer.AddRoutes(uiHandlers.Routes())
	uiServer.AddRoutes(uiHandlers.SSERoutes(), rest.WithSSE())

	// Create API rest server (goctl-generated JSON REST API) with CORS
	apiServer, err := rest.NewServer(c.API.RestConf, rest.WithCors("*"))
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create API server: %w", err)
	}

	apiCtx := svc.NewServiceContext(c, registry, runner, cardQueue, conn)
	handler.RegisterHandlers(apiServer, apiCtx)

	// Expose Prometheus metrics endpoint
	apiServer.AddRoute(rest.Route{
		Method:  http.MethodGet,
		Path:    "/metrics",
		Handler: promhttp.Handler().ServeHTTP,
	})

	// Register cleanup via proc shutdown listeners
	proc.AddShutdownListener(func() {
		logx.Info("Closing database")
		database.Close()
	})
	if cardQueue.Events != nil {
		proc.AddShutdownListener(func() {
			logx.Info("Flushing card events")
			cardQueue.Events.Flush()
		})
	}

	// Build service group: render engine + UI + API + MCP (stopped in reverse order)
	group := service.NewServiceGroup()
	group.Add(newRenderService(engine, c.Render.Workers))
	group.Add(uiServer)
	group.Add(apiServer)
	group.Add(mcpServer)

	logx.Infow("plat-titlecard server configured",
		logx.Field("mcp", fmt.Sprintf("http://%s:%d/sse", c.Host, c.Port)),
		logx.Field("ui", fmt.Sprintf("http://%s:%d", c.UI.Host, c.UI.Port)),
		logx.Field("api", fmt.Sprintf("http://%s:%d/api/v1", c.API.Host, c.API.Port)),
		logx.Field("card_types", c.CardTypes.Dir),
		logx.Field("styles", registry.Count()),
		logx.Field("database", c.Database.Path),
		logx.Field("convert", runner.Binary()),
	)
	logx.Infof("To add to Claude: claude mcp add plat-titlecard -- npx -y mcp-remote http://localhost:%d/sse", c.Port)

	return &Server{config: c, group: group}, nil
}

// Start starts all services. Blocks until shutdown signal.
func (s *Server) Start() {
	s.group.Start()
}

// Stop stops all services.
func (s *Server) Stop() {
	s.group.Stop()
}
