package ui

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"strings"

	"github.com/joeblew999/plat-titlecard/pkg/card"
	"github.com/joeblew999/plat-titlecard/pkg/cardtype"
	"github.com/joeblew999/plat-titlecard/pkg/queue"
	"github.com/joeblew999/plat-titlecard/pkg/typeface"
	"github.com/starfederation/datastar-go/datastar"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/rest"
	"github.com/zeromicro/go-zero/rest/pathvar"
)

// Handlers provides HTTP handlers for the UI.
type Handlers struct {
	registry *cardtype.Registry
	queue    *queue.Queue
}

// NewHandlers creates new UI handlers.
func NewHandlers(registry *cardtype.Registry, q *queue.Queue) *Handlers {
	return &Handlers{
		registry: registry,
		queue:    q,
	}
}

// Routes returns the standard UI routes for registration with rest.Server.
func (h *Handlers) Routes() []rest.Route {
	return []rest.Route{
		{Method: http.MethodGet, Path: "/", Handler: h.handleDashboard},
		{Method: http.MethodGet, Path: "/styles", Handler: h.handleStyles},
		{Method: http.MethodGet, Path: "/queue", Handler: h.handleQueue},
		{Method: http.MethodGet, Path: "/render", Handler: h.handleRenderPage},
		{Method: http.MethodPost, Path: "/api/render", Handler: h.handleRender},
	}
}

// SSERoutes returns the SSE-based API routes (require rest.WithSSE option).
func (h *Handlers) SSERoutes() []rest.Route {
	return []rest.Route{
		{Method: http.MethodGet, Path: "/api/stats", Handler: h.handleStats},
		{Method: http.MethodGet, Path: "/api/queue", Handler: h.handleQueueAPI},
		{Method: http.MethodGet, Path: "/api/preview/:id", Handler: h.handlePreview},
	}
}

func (h *Handlers) handleDashboard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := Dashboard().Render(w); err != nil {
		logx.Errorf("render dashboard: %v", err)
	}
}

func (h *Handlers) handleStyles(w http.ResponseWriter, r *http.Request) {
	styles := h.getStyleInfos()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := StylesPage(styles).Render(w); err != nil {
		logx.Errorf("render styles page: %v", err)
	}
}

func (h *Handlers) handleQueue(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := QueuePage().Render(w); err != nil {
		logx.Errorf("render queue page: %v", err)
	}
}

func (h *Handlers) handleRenderPage(w http.ResponseWriter, r *http.Request) {
	styles := h.getStyleInfos()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := RenderPage(styles).Render(w); err != nil {
		logx.Errorf("render form page: %v", err)
	}
}

func (h *Handlers) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.queue.Stats(r.Context())
	if err != nil {
		h.sendDatastarError(w, r, err)
		return
	}

	h.sendDatastarSignals(w, r, map[string]any{
		"stats":   stats,
		"loading": false,
	})
}

func (h *Handlers) handleQueueAPI(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")

	jobs, err := h.queue.List(r.Context(), status, 50)
	if err != nil {
		h.sendDatastarError(w, r, err)
		return
	}

	// Render queue items as HTML fragment and patch into #queue-items
	sse := datastar.NewSSE(w, r)

	fragment := renderQueueItems(jobs)
	if err := sse.PatchElementf(`<div id="queue-items">%s</div>`, fragment); err != nil {
		logx.Errorf("datastar patch queue items: %v", err)
	}

	if err := sse.MarshalAndPatchSignals(map[string]any{"loading": false}); err != nil {
		logx.Errorf("datastar patch signals: %v", err)
	}
}

func (h *Handlers) handlePreview(w http.ResponseWriter, r *http.Request) {
	id := pathvar.Vars(r)["id"]
	style, ok := h.registry.Get(id)
	if !ok {
		h.sendDatastarError(w, r, fmt.Errorf("card type not found: %s", id))
		return
	}

	img, err := typeface.RenderPreview(style, typeface.PreviewOptions{})
	if err != nil {
		h.sendDatastarError(w, r, err)
		return
	}

	png, err := typeface.EncodePNG(img)
	if err != nil {
		h.sendDatastarError(w, r, err)
		return
	}

	h.sendDatastarSignals(w, r, map[string]any{
		"previewSrc": "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
		"loading":    false,
	})
}

func (h *Handlers) handleRender(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Style      string `json:"style"`
		Series     string `json:"series"`
		Season     int    `json:"season"`
		Episode    int    `json:"episode"`
		Title      string `json:"title"`
		SourcePath string `json:"source_path"`
		Blur       bool   `json:"blur"`
		Grayscale  bool   `json:"grayscale"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendDatastarSignals(w, r, map[string]any{
			"sending": false,
			"result":  "Error: Invalid request",
		})
		return
	}

	if !h.registry.Has(req.Style) {
		h.sendDatastarSignals(w, r, map[string]any{
			"sending": false,
			"result":  "Error: Unknown card type: " + req.Style,
		})
		return
	}

	request := card.Card{
		SourcePath: req.SourcePath,
		Title:      req.Title,
		Series:     req.Series,
		Season:     req.Season,
		Episode:    req.Episode,
		Blur:       req.Blur,
		Grayscale:  req.Grayscale,
	}
	if err := request.Validate(); err != nil {
		h.sendDatastarSignals(w, r, map[string]any{
			"sending": false,
			"result":  "Error: " + err.Error(),
		})
		return
	}

	job := queue.CardJob{
		StyleID:  req.Style,
		Request:  request,
		Priority: queue.PriorityHigh,
	}

	id, err := h.queue.Enqueue(r.Context(), job)
	if err != nil {
		h.sendDatastarSignals(w, r, map[string]any{
			"sending": false,
			"result":  "Error: " + err.Error(),
		})
		return
	}

	h.sendDatastarSignals(w, r, map[string]any{
		"sending": false,
		"result":  "Card queued with ID: " + id,
	})
}

func (h *Handlers) getStyleInfos() []StyleInfo {
	styles := h.registry.List()
	infos := make([]StyleInfo, 0, len(styles))
	for _, s := range styles {
		infos = append(infos, StyleInfo{
			ID:          s.Identifier,
			Name:        s.Name,
			Description: s.Description,
		})
	}
	return infos
}

func (h *Handlers) sendDatastarSignals(w http.ResponseWriter, r *http.Request, signals map[string]any) {
	sse := datastar.NewSSE(w, r)
	if err := sse.MarshalAndPatchSignals(signals); err != nil {
		logx.Errorf("datastar patch signals: %v", err)
	}
}

func (h *Handlers) sendDatastarError(w http.ResponseWriter, r *http.Request, err error) {
	msg := "Unknown error"
	if err != nil {
		msg = err.Error()
	}
	h.sendDatastarSignals(w, r, map[string]any{
		"loading": false,
		"error":   msg,
	})
}

func renderQueueItems(jobs []*queue.CardJob) string {
	if len(jobs) == 0 {
		return `<p class="hint" style="padding:2rem;text-align:center;">No cards in queue</p>`
	}

	var b strings.Builder
	b.WriteString(`<table style="width:100%;border-collapse:collapse;">`)
	b.WriteString(`<thead><tr>`)
	b.WriteString(`<th style="text-align:left;padding:0.75rem 1rem;border-bottom:2px solid var(--border);color:var(--text-muted);font-size:0.875rem;">Episode</th>`)
	b.WriteString(`<th style="text-align:left;padding:0.75rem 1rem;border-bottom:2px solid var(--border);color:var(--text-muted);font-size:0.875rem;">Series</th>`)
	b.WriteString(`<th style="text-align:left;padding:0.75rem 1rem;border-bottom:2px solid var(--border);color:var(--text-muted);font-size:0.875rem;">Title</th>`)
	b.WriteString(`<th style="text-align:left;padding:0.75rem 1rem;border-bottom:2px solid var(--border);color:var(--text-muted);font-size:0.875rem;">Card Type</th>`)
	b.WriteString(`<th style="text-align:left;padding:0.75rem 1rem;border-bottom:2px solid var(--border);color:var(--text-muted);font-size:0.875rem;">Status</th>`)
	b.WriteString(`<th style="text-align:left;padding:0.75rem 1rem;border-bottom:2px solid var(--border);color:var(--text-muted);font-size:0.875rem;">Created</th>`)
	b.WriteString(`</tr></thead><tbody>`)

	for _, job := range jobs {
		statusColor := "var(--text-muted)"
		switch job.Status {
		case queue.StatusRendered:
			statusColor = "var(--success)"
		case queue.StatusFailed:
			statusColor = "var(--danger)"
		case queue.StatusQueued:
			statusColor = "var(--warning)"
		case queue.StatusRendering:
			statusColor = "var(--primary)"
		}

		episode := fmt.Sprintf("S%02dE%02d", job.Request.Season, job.Request.Episode)
		created := job.CreatedAt.Format("Jan 2 15:04")

		b.WriteString(`<tr style="border-bottom:1px solid var(--border);">`)
		b.WriteString(fmt.Sprintf(`<td style="padding:0.75rem 1rem;font-weight:500;">%s</td>`, episode))
		b.WriteString(fmt.Sprintf(`<td style="padding:0.75rem 1rem;font-size:0.875rem;">%s</td>`, html.EscapeString(job.Request.Series)))
		b.WriteString(fmt.Sprintf(`<td style="padding:0.75rem 1rem;font-size:0.875rem;">%s</td>`, html.EscapeString(job.Request.Title)))
		b.WriteString(fmt.Sprintf(`<td style="padding:0.75rem 1rem;font-size:0.875rem;">%s</td>`, html.EscapeString(job.StyleID)))
		b.WriteString(fmt.Sprintf(`<td style="padding:0.75rem 1rem;"><span style="color:%s;font-weight:600;font-size:0.875rem;">%s</span></td>`, statusColor, html.EscapeString(job.Status)))
		b.WriteString(fmt.Sprintf(`<td style="padding:0.75rem 1rem;font-size:0.875rem;color:var(--text-muted);">%s</td>`, created))
		b.WriteString(`</tr>`)
	}

	b.WriteString(`</tbody></table>`)
	return b.String()
}
