// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package card

import (
	"net/http"

	"github.com/joeblew999/plat-titlecard/internal/logic/card"
	"github.com/joeblew999/plat-titlecard/internal/svc"
	"github.com/joeblew999/plat-titlecard/internal/types"
	"github.com/zeromicro/go-zero/rest/httpx"
)

func ListCardsHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.ListCardsRequest
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		l := card.NewListCardsLogic(r.Context(), svcCtx)
		resp, err := l.ListCards(&req)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}
