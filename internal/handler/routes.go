// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package handler

import (
	"net/http"

	card "github.com/joeblew999/plat-titlecard/internal/handler/card"
	stats "github.com/joeblew999/plat-titlecard/internal/handler/stats"
	style "github.com/joeblew999/plat-titlecard/internal/handler/style"
	"github.com/joeblew999/plat-titlecard/internal/svc"

	"github.com/zeromicro/go-zero/rest"
)

func RegisterHandlers(server *rest.Server, serverCtx *svc.ServiceContext) {
	server.AddRoutes(
		[]rest.Route{
			{
				Method:  http.MethodGet,
				Path:    "/styles",
				Handler: style.ListStylesHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/styles/:id",
				Handler: style.GetStyleHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/styles/:id/preview",
				Handler: style.PreviewStyleHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/cards",
				Handler: card.RenderCardHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/cards",
				Handler: card.ListCardsHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/cards/:id",
				Handler: card.GetCardHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/stats",
				Handler: stats.GetStatsHandler(serverCtx),
			},
		},
		rest.WithPrefix("/api/v1"),
	)
}
