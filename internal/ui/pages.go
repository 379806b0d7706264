// Package ui provides the Datastar-based web UI for plat-titlecard.
package ui

import (
	"strconv"
	"time"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	data "maragu.dev/gomponents-datastar"

	"github.com/joeblew999/plat-titlecard/pkg/card"
)

// Layout wraps content in the base HTML layout.
func Layout(title string, content ...g.Node) g.Node {
	return h.HTML(
		h.Lang("en"),
		h.Head(
			h.Meta(h.Charset("utf-8")),
			h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
			h.TitleEl(g.Text(title)),
			h.Script(h.Type("module"), h.Src("https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.7/bundles/datastar.js")),
			h.StyleEl(h.Type("text/css"), g.Raw(styles)),
		),
		h.Body(
			h.Nav(h.Class("navbar"),
				h.Div(h.Class("nav-brand"), g.Text("plat-titlecard")),
				h.Div(h.Class("nav-links"),
					h.A(h.Href("/"), g.Text("Dashboard")),
					h.A(h.Href("/styles"), g.Text("Card Types")),
					h.A(h.Href("/queue"), g.Text("Queue")),
					h.A(h.Href("/render"), g.Text("Render")),
				),
			),
			h.Main(h.Class("container"), g.Group(content)),
			h.Footer(h.Class("footer"),
				g.Text("plat-titlecard - Episode Title Card Platform"),
			),
		),
	)
}

// Dashboard renders the main dashboard page.
func Dashboard() g.Node {
	return Layout("Dashboard - plat-titlecard",
		data.Signals(map[string]any{
			"stats":   map[string]int{},
			"loading": true,
		}),
		data.Init("@get('/api/stats')"),

		h.H1(g.Text("Render Dashboard")),

		// Stats cards
		h.Div(h.Class("stats-grid"),
			StatCard("queued", "Queued"),
			StatCard("rendering", "Rendering"),
			StatCard("rendered", "Rendered"),
			StatCard("failed", "Failed"),
		),

		// Quick actions
		h.Div(h.Class("section"),
			h.H2(g.Text("Quick Actions")),
			h.Div(h.Class("actions"),
				h.A(h.Href("/render"), h.Button(g.Text("Render Card"))),
				h.A(h.Href("/queue"), h.Button(g.Text("View Queue"))),
				h.A(h.Href("/styles"), h.Button(g.Text("Browse Card Types"))),
			),
		),

		// Live stats section with SSE updates
		h.Div(h.Class("section"),
			h.H2(g.Text("Recent Activity")),
			data.OnInterval("@get('/api/stats')", data.ModifierDuration, data.Duration(5*time.Second)),
			h.Div(h.ID("recent-list"),
				data.Show("!$loading"),
				h.P(g.Text("Stats loaded. Check queue for details.")),
			),
			h.Div(
				data.Show("$loading"),
				h.Span(h.Class("loading-spinner")),
				g.Text(" Loading..."),
			),
		),
	)
}

// StatCard renders a statistics card.
func StatCard(key, label string) g.Node {
	return h.Div(h.Class("stat-card"),
		h.Div(h.Class("stat-value"), data.Text("$stats."+key+" || 0")),
		h.Div(h.Class("stat-label"), g.Text(label)),
	)
}

// StylesPage renders the card type gallery page.
func StylesPage(styles []StyleInfo) g.Node {
	var styleNodes []g.Node
	for _, s := range styles {
		id := s.ID
		styleNodes = append(styleNodes, h.Div(h.Class("style-item"),
			data.On("click", "$selected = '"+id+"'; @get('/api/preview/"+id+"')"),
			data.Class("active", "$selected === '"+id+"'"),
			h.H3(g.Text(s.Name)),
			h.P(g.Text(s.Description)),
		))
	}

	return Layout("Card Types - plat-titlecard",
		data.Signals(map[string]any{
			"selected":   "",
			"previewSrc": "",
			"loading":    false,
		}),

		h.H1(g.Text("Card Types")),

		h.Div(h.Class("styles-grid"),
			// Card type list
			h.Div(h.Class("style-list"),
				h.H2(g.Text("Installed Card Types")),
				g.Group(styleNodes),
			),

			// Preview panel
			h.Div(h.Class("preview-panel"),
				h.H2(g.Text("Typeface Preview")),
				h.Div(
					data.Show("$loading"),
					h.Span(h.Class("loading-spinner")),
					g.Text(" Rendering preview..."),
				),
				h.Div(
					data.Show("!$loading && $previewSrc"),
					h.Img(
						h.ID("preview-image"),
						data.Attr("src", "$previewSrc"),
						h.Alt("Layered typeface preview"),
					),
				),
				h.Div(
					data.Show("!$loading && !$previewSrc"),
					h.P(h.Class("hint"), g.Text("Select a card type to preview its layered typeface")),
				),
			),
		),
	)
}

// QueuePage renders the queue monitoring page.
func QueuePage() g.Node {
	return Layout("Queue - plat-titlecard",
		data.Signals(map[string]any{
			"jobs":    []any{},
			"filter":  "all",
			"loading": true,
		}),
		data.Init("@get('/api/queue')"),

		h.H1(g.Text("Render Queue")),

		// Filter buttons
		h.Div(h.Class("filter-bar"),
			h.Button(
				data.On("click", "$filter = 'all'; @get('/api/queue')"),
				data.Class("active", "$filter === 'all'"),
				g.Text("All"),
			),
			h.Button(
				data.On("click", "$filter = 'queued'; @get('/api/queue?status=queued')"),
				data.Class("active", "$filter === 'queued'"),
				g.Text("Queued"),
			),
			h.Button(
				data.On("click", "$filter = 'rendering'; @get('/api/queue?status=rendering')"),
				data.Class("active", "$filter === 'rendering'"),
				g.Text("Rendering"),
			),
			h.Button(
				data.On("click", "$filter = 'rendered'; @get('/api/queue?status=rendered')"),
				data.Class("active", "$filter === 'rendered'"),
				g.Text("Rendered"),
			),
			h.Button(
				data.On("click", "$filter = 'failed'; @get('/api/queue?status=failed')"),
				data.Class("active", "$filter === 'failed'"),
				g.Text("Failed"),
			),
		),

		// Auto-refresh toggle
		h.Div(h.Class("refresh-bar"),
			data.OnInterval("@get('/api/queue?status=' + ($filter === 'all' ? '' : $filter))", data.ModifierDuration, data.Duration(5*time.Second)),
			g.Text("Auto-refresh: 5s"),
		),

		// Queue list
		h.Div(h.Class("queue-list"),
			data.Show("$loading"),
			h.Div(h.Class("loading"),
				h.Span(h.Class("loading-spinner")),
				g.Text(" Loading queue..."),
			),
		),
		h.Div(h.ID("queue-items"),
			data.Show("!$loading"),
		),
	)
}

// RenderPage renders the card render form.
func RenderPage(styles []StyleInfo) g.Node {
	var styleOptions []g.Node
	styleOptions = append(styleOptions, h.Option(h.Value(""), g.Text("Select card type...")))
	for _, s := range styles {
		styleOptions = append(styleOptions, h.Option(h.Value(s.ID), g.Text(s.Name)))
	}

	// Prefill the form with the first sample card so a fresh install can
	// queue something immediately.
	sample := card.SampleCards()[0]

	return Layout("Render - plat-titlecard",
		data.Signals(map[string]any{
			"style":     "",
			"series":    sample.Series,
			"season":    strconv.Itoa(sample.Season),
			"episode":   strconv.Itoa(sample.Episode),
			"title":     sample.Title,
			"source":    sample.SourcePath,
			"blur":      false,
			"grayscale": false,
			"sending":   false,
			"result":    "",
		}),

		h.H1(g.Text("Render Card")),

		h.Form(h.Class("render-form"),
			data.On("submit", `
				event.preventDefault();
				$sending = true;
				@post('/api/render', {
					body: JSON.stringify({
						style: $style,
						series: $series,
						season: parseInt($season || '1'),
						episode: parseInt($episode || '1'),
						title: $title,
						source_path: $source,
						blur: $blur,
						grayscale: $grayscale
					})
				})
			`),

			h.Div(h.Class("form-group"),
				h.Label(h.For("style"), g.Text("Card Type")),
				h.Select(h.ID("style"), data.Bind("style"),
					g.Group(styleOptions),
				),
			),

			h.Div(h.Class("form-group"),
				h.Label(h.For("series"), g.Text("Series")),
				h.Input(h.ID("series"), h.Type("text"), data.Bind("series"),
					h.Placeholder("Timeless"),
				),
			),

			h.Div(h.Class("form-row"),
				h.Div(h.Class("form-group"),
					h.Label(h.For("season"), g.Text("Season")),
					h.Input(h.ID("season"), h.Type("number"), h.Min("0"), data.Bind("season")),
				),
				h.Div(h.Class("form-group"),
					h.Label(h.For("episode"), g.Text("Episode")),
					h.Input(h.ID("episode"), h.Type("number"), h.Min("1"), data.Bind("episode")),
				),
			),

			h.Div(h.Class("form-group"),
				h.Label(h.For("title"), g.Text("Episode Title")),
				h.Input(h.ID("title"), h.Type("text"), data.Bind("title"),
					h.Placeholder("Pilot"),
				),
			),

			h.Div(h.Class("form-group"),
				h.Label(h.For("source"), g.Text("Source Image")),
				h.Input(h.ID("source"), h.Type("text"), data.Bind("source"),
					h.Placeholder("timeless/s1e1.jpg (relative to the source directory)"),
				),
			),

			h.Div(h.Class("form-row"),
				h.Div(h.Class("form-check"),
					h.Input(h.ID("blur"), h.Type("checkbox"), data.Bind("blur")),
					h.Label(h.For("blur"), g.Text("Blur (spoiler-free)")),
				),
				h.Div(h.Class("form-check"),
					h.Input(h.ID("grayscale"), h.Type("checkbox"), data.Bind("grayscale")),
					h.Label(h.For("grayscale"), g.Text("Grayscale")),
				),
			),

			h.Button(h.Type("submit"),
				data.Attr("disabled", "$sending"),
				h.Span(data.Show("!$sending"), g.Text("Queue Render")),
				h.Span(data.Show("$sending"),
					h.Span(h.Class("loading-spinner")),
					g.Text(" Queuing..."),
				),
			),

			h.Div(h.Class("result"),
				data.Show("$result"),
				data.Text("$result"),
			),
		),
	)
}

// StyleInfo holds card type metadata for the UI.
type StyleInfo struct {
	ID          string
	Name        string
	Description string
}

const styles = `
:root {
	--primary: #6366f1;
	--primary-dark: #4f46e5;
	--success: #10b981;
	--warning: #f59e0b;
	--danger: #ef4444;
	--bg: #0f172a;
	--card-bg: #1e293b;
	--text: #e2e8f0;
	--text-muted: #94a3b8;
	--border: #334155;
}

* {
	box-sizing: border-box;
	margin: 0;
	padding: 0;
}

body {
	font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
	background: var(--bg);
	color: var(--text);
	line-height: 1.6;
}

.navbar {
	background: var(--card-bg);
	color: var(--text);
	padding: 1rem 2rem;
	display: flex;
	justify-content: space-between;
	align-items: center;
	border-bottom: 1px solid var(--border);
}

.nav-brand {
	font-size: 1.5rem;
	font-weight: bold;
	color: var(--primary);
}

.nav-links a {
	color: var(--text);
	text-decoration: none;
	margin-left: 2rem;
	opacity: 0.85;
	transition: opacity 0.2s;
}

.nav-links a:hover {
	opacity: 1;
}

.container {
	max-width: 1200px;
	margin: 0 auto;
	padding: 2rem;
}

.footer {
	text-align: center;
	padding: 2rem;
	color: var(--text-muted);
	border-top: 1px solid var(--border);
	margin-top: 2rem;
}

h1 {
	margin-bottom: 1.5rem;
	color: var(--text);
}

h2 {
	margin-bottom: 1rem;
	color: var(--text);
	font-size: 1.25rem;
}

.stats-grid {
	display: grid;
	grid-template-columns: repeat(auto-fit, minmax(200px, 1fr));
	gap: 1.5rem;
	margin-bottom: 2rem;
}

.stat-card {
	background: var(--card-bg);
	border-radius: 12px;
	padding: 1.5rem;
	text-align: center;
	border: 1px solid var(--border);
	transition: transform 0.2s;
}

.stat-card:hover {
	transform: translateY(-2px);
}

.stat-value {
	font-size: 2.5rem;
	font-weight: bold;
	color: var(--primary);
}

.stat-label {
	color: var(--text-muted);
	font-size: 0.875rem;
	text-transform: uppercase;
	letter-spacing: 0.05em;
}

.section {
	background: var(--card-bg);
	border-radius: 12px;
	padding: 1.5rem;
	margin-bottom: 1.5rem;
	border: 1px solid var(--border);
}

.actions {
	display: flex;
	gap: 1rem;
	flex-wrap: wrap;
}

button {
	background: var(--primary);
	color: white;
	border: none;
	padding: 0.75rem 1.5rem;
	border-radius: 8px;
	cursor: pointer;
	font-size: 1rem;
	font-weight: 500;
	transition: background 0.2s, transform 0.1s;
}

button:hover {
	background: var(--primary-dark);
}

button:active {
	transform: scale(0.98);
}

button:disabled {
	background: var(--text-muted);
	cursor: not-allowed;
}

button.active {
	background: var(--primary-dark);
	box-shadow: inset 0 2px 4px rgba(0,0,0,0.4);
}

.styles-grid {
	display: grid;
	grid-template-columns: 300px 1fr;
	gap: 1.5rem;
}

.style-list {
	background: var(--card-bg);
	border-radius: 12px;
	padding: 1rem;
	border: 1px solid var(--border);
}

.style-item {
	padding: 1rem;
	border-radius: 8px;
	cursor: pointer;
	transition: background 0.2s;
	border: 1px solid transparent;
}

.style-item:hover {
	background: var(--bg);
}

.style-item.active {
	background: var(--primary);
	color: white;
	border-color: var(--primary-dark);
}

.style-item.active p {
	color: rgba(255,255,255,0.8);
}

.style-item h3 {
	font-size: 1rem;
	margin-bottom: 0.25rem;
}

.style-item p {
	font-size: 0.875rem;
	color: var(--text-muted);
}

.preview-panel {
	background: var(--card-bg);
	border-radius: 12px;
	padding: 1.5rem;
	border: 1px solid var(--border);
}

.preview-panel img {
	width: 100%;
	border-radius: 8px;
	border: 1px solid var(--border);
	background: #000;
}

.hint {
	color: var(--text-muted);
	font-style: italic;
}

.filter-bar {
	display: flex;
	gap: 0.5rem;
	margin-bottom: 1rem;
}

.refresh-bar {
	color: var(--text-muted);
	font-size: 0.875rem;
	margin-bottom: 1rem;
}

.queue-list {
	background: var(--card-bg);
	border-radius: 12px;
	border: 1px solid var(--border);
}

.loading {
	padding: 2rem;
	text-align: center;
	color: var(--text-muted);
}

.loading-spinner {
	display: inline-block;
	width: 16px;
	height: 16px;
	border: 2px solid var(--border);
	border-top-color: var(--primary);
	border-radius: 50%;
	animation: spin 1s linear infinite;
}

@keyframes spin {
	to { transform: rotate(360deg); }
}

.render-form {
	max-width: 600px;
	background: var(--card-bg);
	border-radius: 12px;
	padding: 2rem;
	border: 1px solid var(--border);
}

.form-row {
	display: flex;
	gap: 1rem;
}

.form-row .form-group {
	flex: 1;
}

.form-group {
	margin-bottom: 1.5rem;
}

.form-group label {
	display: block;
	margin-bottom: 0.5rem;
	font-weight: 500;
}

.form-check {
	display: flex;
	align-items: center;
	gap: 0.5rem;
	margin-bottom: 1.5rem;
}

.form-check input {
	width: auto;
}

.form-check label {
	margin-bottom: 0;
}

.form-group input,
.form-group select,
.form-group textarea {
	width: 100%;
	padding: 0.75rem;
	border: 1px solid var(--border);
	border-radius: 8px;
	font-size: 1rem;
	background: var(--bg);
	color: var(--text);
	transition: border-color 0.2s, box-shadow 0.2s;
}

.form-group input:focus,
.form-group select:focus,
.form-group textarea:focus {
	outline: none;
	border-color: var(--primary);
	box-shadow: 0 0 0 3px rgba(99, 102, 241, 0.2);
}

.result {
	margin-top: 1rem;
	padding: 1rem;
	border-radius: 8px;
	background: var(--bg);
}

@media (max-width: 768px) {
	.styles-grid {
		grid-template-columns: 1fr;
	}

	.form-row {
		flex-direction: column;
		gap: 0;
	}

	.nav-links a {
		margin-left: 1rem;
	}
}
`
