// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package style

import (
	"context"

	"github.com/joeblew999/plat-titlecard/internal/svc"
	"github.com/joeblew999/plat-titlecard/internal/types"

	"github.com/zeromicro/go-zero/core/logx"
)

type ListStylesLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewListStylesLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ListStylesLogic {
	return &ListStylesLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *ListStylesLogic) ListStyles() (resp *types.ListStylesResponse, err error) {
	styles := l.svcCtx.Registry.List()

	items := make([]types.StyleItem, 0, len(styles))
	for _, s := range styles {
		items = append(items, types.StyleItem{
			Id:                    s.Identifier,
			Name:                  s.Name,
			Description:           s.Description,
			Creators:              s.Creators,
			SupportsCustomFonts:   s.SupportsCustomFonts,
			SupportsCustomSeasons: s.SupportsCustomSeasons,
		})
	}

	return &types.ListStylesResponse{
		Styles: items,
		Count:  len(items),
	}, nil
}
