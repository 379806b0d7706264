package server

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/joeblew999/plat-titlecard/pkg/card"
	"github.com/joeblew999/plat-titlecard/pkg/cardtype"
	"github.com/joeblew999/plat-titlecard/pkg/queue"
	"github.com/joeblew999/plat-titlecard/pkg/typeface"
	"github.com/zeromicro/go-zero/mcp"
)

// RegisterMCPTools registers all MCP tools for the title card platform.
func RegisterMCPTools(s mcp.McpServer, registry *cardtype.Registry, q *queue.Queue) {
	registerRenderCardTool(s, registry, q)
	registerListCardTypesTool(s, registry)
	registerGetCardStatusTool(s, q)
	registerPreviewCardTool(s, registry)
	registerCardTypesResource(s, registry)
}

func registerRenderCardTool(s mcp.McpServer, registry *cardtype.Registry, q *queue.Queue) {
	s.RegisterTool(mcp.Tool{
		Name:        "render_card",
		Description: "Queue an episode title card for rendering. The card is composited from the episode source image with the card type's layered typeface.",
		InputSchema: mcp.InputSchema{
			Properties: map[string]any{
				"card_type": map[string]any{
					"type":        "string",
					"description": "Card type identifier (e.g., timeless)",
				},
				"series": map[string]any{
					"type":        "string",
					"description": "Series name (e.g., Timeless)",
				},
				"season": map[string]any{
					"type":        "integer",
					"description": "Season number, 0 for specials",
				},
				"episode": map[string]any{
					"type":        "integer",
					"description": "Episode number within the season",
				},
				"title": map[string]any{
					"type":        "string",
					"description": "Episode title drawn on the card",
				},
				"source_path": map[string]any{
					"type":        "string",
					"description": "Episode source image, relative to the source directory",
				},
				"blur": map[string]any{
					"type":        "boolean",
					"description": "Blur the source image for spoiler-free cards",
				},
				"grayscale": map[string]any{
					"type":        "boolean",
					"description": "Render the card in grayscale",
				},
			},
			Required: []string{"card_type", "series", "season", "episode", "title", "source_path"},
		},
		Handler: func(ctx context.Context, p map[string]any) (any, error) {
			var args struct {
				CardType   string `json:"card_type"`
				Series     string `json:"series"`
				Season     int    `json:"season"`
				Episode    int    `json:"episode"`
				Title      string `json:"title"`
				SourcePath string `json:"source_path"`
				Blur       bool   `json:"blur"`
				Grayscale  bool   `json:"grayscale"`
			}
			if err := mcp.ParseArguments(p, &args); err != nil {
				return nil, fmt.Errorf("invalid arguments: %w", err)
			}

			if !registry.Has(args.CardType) {
				return nil, fmt.Errorf("unknown card type: %s", args.CardType)
			}

			job := queue.CardJob{
				StyleID: args.CardType,
				Request: card.Card{
					SourcePath: args.SourcePath,
					Title:      args.Title,
					Series:     args.Series,
					Season:     args.Season,
					Episode:    args.Episode,
					Blur:       args.Blur,
					Grayscale:  args.Grayscale,
				},
				Priority: queue.PriorityNormal,
			}
			if err := job.Request.Validate(); err != nil {
				return nil, fmt.Errorf("invalid card: %w", err)
			}

			id, err := q.Enqueue(ctx, job)
			if err != nil {
				return nil, fmt.Errorf("failed to queue card: %w", err)
			}

			return map[string]any{
				"id":        id,
				"status":    queue.StatusQueued,
				"card_type": args.CardType,
				"episode":   fmt.Sprintf("%s S%02dE%02d", args.Series, args.Season, args.Episode),
			}, nil
		},
	})
}

func registerListCardTypesTool(s mcp.McpServer, registry *cardtype.Registry) {
	s.RegisterTool(mcp.Tool{
		Name:        "list_card_types",
		Description: "List all installed card types with their names, descriptions and font status.",
		InputSchema: mcp.InputSchema{
			Properties: map[string]any{},
		},
		Handler: func(ctx context.Context, p map[string]any) (any, error) {
			styles := registry.List()

			result := make([]map[string]any, 0, len(styles))
			for _, st := range styles {
				result = append(result, map[string]any{
					"id":             st.Identifier,
					"name":           st.Name,
					"description":    st.Description,
					"fonts_verified": len(st.FontWarnings) == 0,
				})
			}

			return map[string]any{
				"card_types": result,
				"count":      len(result),
			}, nil
		},
	})
}

func registerGetCardStatusTool(s mcp.McpServer, q *queue.Queue) {
	s.RegisterTool(mcp.Tool{
		Name:        "get_card_status",
		Description: "Get the render status of a queued card by its ID.",
		InputSchema: mcp.InputSchema{
			Properties: map[string]any{
				"id": map[string]any{
					"type":        "string",
					"description": "Card job ID returned from render_card",
				},
			},
			Required: []string{"id"},
		},
		Handler: func(ctx context.Context, p map[string]any) (any, error) {
			var args struct {
				ID string `json:"id"`
			}
			if err := mcp.ParseArguments(p, &args); err != nil {
				return nil, fmt.Errorf("invalid arguments: %w", err)
			}

			job, err := q.GetStatus(ctx, args.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to get status: %w", err)
			}
			if job == nil {
				return nil, fmt.Errorf("card not found: %s", args.ID)
			}

			return map[string]any{
				"id":          job.ID,
				"card_type":   job.StyleID,
				"episode":     fmt.Sprintf("%s S%02dE%02d", job.Request.Series, job.Request.Season, job.Request.Episode),
				"status":      job.Status,
				"attempts":    job.Attempts,
				"error":       job.Error,
				"output_path": job.OutputPath,
				"created_at":  job.CreatedAt,
			}, nil
		},
	})
}

func registerPreviewCardTool(s mcp.McpServer, registry *cardtype.Registry) {
	s.RegisterTool(mcp.Tool{
		Name:        "preview_card",
		Description: "Render an in-process preview of a card type's layered typeface. Returns a base64-encoded PNG.",
		InputSchema: mcp.InputSchema{
			Properties: map[string]any{
				"card_type": map[string]any{
					"type":        "string",
					"description": "Card type identifier (e.g., timeless)",
				},
				"text": map[string]any{
					"type":        "string",
					"description": "Sample text to render, defaults to the card type identifier",
				},
			},
			Required: []string{"card_type"},
		},
		Handler: func(ctx context.Context, p map[string]any) (any, error) {
			var args struct {
				CardType string `json:"card_type"`
				Text     string `json:"text"`
			}
			if err := mcp.ParseArguments(p, &args); err != nil {
				return nil, fmt.Errorf("invalid arguments: %w", err)
			}

			style, ok := registry.Get(args.CardType)
			if !ok {
				return nil, fmt.Errorf("unknown card type: %s", args.CardType)
			}

			img, err := typeface.RenderPreview(style, typeface.PreviewOptions{Text: args.Text})
			if err != nil {
				return nil, fmt.Errorf("preview failed: %w", err)
			}
			png, err := typeface.EncodePNG(img)
			if err != nil {
				return nil, fmt.Errorf("encode failed: %w", err)
			}

			bounds := img.Bounds()
			return map[string]any{
				"card_type":    style.Identifier,
				"image_base64": base64.StdEncoding.EncodeToString(png),
				"width":        bounds.Dx(),
				"height":       bounds.Dy(),
			}, nil
		},
	})
}

func registerCardTypesResource(s mcp.McpServer, registry *cardtype.Registry) {
	s.RegisterResource(mcp.Resource{
		Name:        "card_types",
		URI:         "cardtypes://list",
		Description: "Installed title card types",
		MimeType:    "application/json",
		Handler: func(ctx context.Context) (mcp.ResourceContent, error) {
			styles := registry.List()

			content := "Installed card types:\n"
			for _, st := range styles {
				content += fmt.Sprintf("- %s: %s\n", st.Identifier, st.Name)
			}

			return mcp.ResourceContent{
				URI:      "cardtypes://list",
				MimeType: "text/plain",
				Text:     content,
			}, nil
		},
	})
}
