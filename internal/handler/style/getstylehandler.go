// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package style

import (
	"net/http"

	"github.com/joeblew999/plat-titlecard/internal/logic/style"
	"github.com/joeblew999/plat-titlecard/internal/svc"
	"github.com/joeblew999/plat-titlecard/internal/types"
	"github.com/zeromicro/go-zero/rest/httpx"
)

func GetStyleHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.GetStyleRequest
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		l := style.NewGetStyleLogic(r.Context(), svcCtx)
		resp, err := l.GetStyle(&req)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}
