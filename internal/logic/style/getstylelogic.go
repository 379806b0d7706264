// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package style

import (
	"context"

	"github.com/joeblew999/plat-titlecard/internal/errorx"
	"github.com/joeblew999/plat-titlecard/internal/svc"
	"github.com/joeblew999/plat-titlecard/internal/types"

	"github.com/zeromicro/go-zero/core/logx"
)

type GetStyleLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewGetStyleLogic(ctx context.Context, svcCtx *svc.ServiceContext) *GetStyleLogic {
	return &GetStyleLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *GetStyleLogic) GetStyle(req *types.GetStyleRequest) (resp *types.GetStyleResponse, err error) {
	s, ok := l.svcCtx.Registry.Get(req.Id)
	if !ok {
		return nil, errorx.ErrNotFound("card type not found: " + req.Id)
	}

	return &types.GetStyleResponse{
		Id:                    s.Identifier,
		Name:                  s.Name,
		Description:           s.Description,
		Example:               s.Example,
		Creators:              s.Creators,
		Source:                s.Source,
		SupportsCustomFonts:   s.SupportsCustomFonts,
		SupportsCustomSeasons: s.SupportsCustomSeasons,
		Fonts: types.StyleFonts{
			Base:   s.Fonts.Base,
			Infill: s.Fonts.Infill,
			Gears:  s.Fonts.Gears,
		},
		Colors: types.StyleColors{
			Title:             s.Colors.Title,
			TitleInfill:       s.Colors.TitleInfill,
			TitleGears:        s.Colors.TitleGears,
			EpisodeText:       s.Colors.EpisodeText,
			EpisodeTextInfill: s.Colors.EpisodeTextInfill,
			EpisodeTextGears:  s.Colors.EpisodeTextGears,
		},
		Title: types.StyleTitle{
			Case:         s.Title.Case,
			MaxLineWidth: s.Title.MaxLineWidth,
			MaxLineCount: s.Title.MaxLineCount,
			SplitStyle:   string(s.Title.SplitStyle),
		},
		EpisodeTextFormat: s.EpisodeTextFormat,
		FontWarnings:      s.FontWarnings,
	}, nil
}
