// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package style

import (
	"net/http"

	"github.com/joeblew999/plat-titlecard/internal/logic/style"
	"github.com/joeblew999/plat-titlecard/internal/svc"
	"github.com/zeromicro/go-zero/rest/httpx"
)

func ListStylesHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := style.NewListStylesLogic(r.Context(), svcCtx)
		resp, err := l.ListStyles()
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}
