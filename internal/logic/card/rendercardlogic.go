// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package card

import (
	"context"
	"time"

	"github.com/joeblew999/plat-titlecard/internal/errorx"
	"github.com/joeblew999/plat-titlecard/internal/svc"
	"github.com/joeblew999/plat-titlecard/internal/types"
	"github.com/joeblew999/plat-titlecard/pkg/card"
	"github.com/joeblew999/plat-titlecard/pkg/queue"

	"github.com/zeromicro/go-zero/core/logx"
)

type RenderCardLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewRenderCardLogic(ctx context.Context, svcCtx *svc.ServiceContext) *RenderCardLogic {
	return &RenderCardLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *RenderCardLogic) RenderCard(req *types.RenderCardRequest) (resp *types.RenderCardResponse, err error) {
	if !l.svcCtx.Registry.Has(req.StyleId) {
		return nil, errorx.ErrBadRequest("unknown card type: " + req.StyleId)
	}
	if !l.svcCtx.Runner.Available() {
		return nil, errorx.ErrUnavailable("imagemagick is not installed on this host")
	}

	request := card.Card{
		SourcePath:           req.SourcePath,
		OutputPath:           req.OutputPath,
		Title:                req.Title,
		Series:               req.Series,
		Season:               req.Season,
		Episode:              req.Episode,
		AbsoluteNumber:       req.AbsoluteNumber,
		SeasonText:           req.SeasonText,
		EpisodeText:          req.EpisodeText,
		HideSeasonText:       req.HideSeasonText,
		HideEpisodeText:      req.HideEpisodeText,
		FontColor:            req.FontColor,
		FontSize:             req.FontSize,
		FontInterlineSpacing: req.FontInterlineSpacing,
		FontVerticalShift:    req.FontVerticalShift,
		EpisodeTextColor:     req.EpisodeTextColor,
		Blur:                 req.Blur,
		Grayscale:            req.Grayscale,
	}
	if err := request.Validate(); err != nil {
		return nil, errorx.ErrBadRequest(err.Error())
	}

	job := queue.CardJob{
		StyleID:  req.StyleId,
		Request:  request,
		Priority: req.Priority,
	}

	var id string
	if req.ScheduledAt != "" {
		at, perr := time.Parse(time.RFC3339, req.ScheduledAt)
		if perr != nil {
			return nil, errorx.ErrBadRequest("invalid scheduled_at, want RFC3339: " + perr.Error())
		}
		id, err = l.svcCtx.Queue.Schedule(l.ctx, job, at)
	} else {
		id, err = l.svcCtx.Queue.Enqueue(l.ctx, job)
	}
	if err != nil {
		return nil, errorx.ErrInternal("failed to enqueue card: " + err.Error())
	}

	return &types.RenderCardResponse{
		Id:      id,
		Status:  queue.StatusQueued,
		Style:   req.StyleId,
		Series:  req.Series,
		Season:  req.Season,
		Episode: req.Episode,
	}, nil
}
