// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package card

import (
	"context"
	"errors"
	"time"

	"github.com/joeblew999/plat-titlecard/internal/errorx"
	"github.com/joeblew999/plat-titlecard/internal/model"
	"github.com/joeblew999/plat-titlecard/internal/svc"
	"github.com/joeblew999/plat-titlecard/internal/types"

	"github.com/zeromicro/go-zero/core/logx"
)

type GetCardLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewGetCardLogic(ctx context.Context, svcCtx *svc.ServiceContext) *GetCardLogic {
	return &GetCardLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *GetCardLogic) GetCard(req *types.GetCardRequest) (resp *types.GetCardResponse, err error) {
	c, err := l.svcCtx.CardsModel.FindOne(l.ctx, req.Id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, errorx.ErrNotFound("card not found: " + req.Id)
		}
		return nil, errorx.ErrInternal("failed to get card: " + err.Error())
	}

	rows, err := l.svcCtx.EventsModel.ListByCard(l.ctx, req.Id, 20)
	if err != nil {
		return nil, errorx.ErrInternal("failed to list card events: " + err.Error())
	}

	events := make([]types.CardEvent, 0, len(rows))
	for _, ev := range rows {
		events = append(events, types.CardEvent{
			Type:      ev.EventType,
			Timestamp: ev.Timestamp.Format(time.RFC3339),
			Details:   model.NullStringValue(ev.Details),
		})
	}

	return &types.GetCardResponse{
		Id:          c.Id,
		Series:      c.Series,
		Season:      int(c.Season),
		Episode:     int(c.Episode),
		Title:       c.Title,
		Style:       c.StyleId,
		Status:      c.Status,
		Attempts:    int(c.Attempts),
		Error:       model.NullStringValue(c.Error),
		SourcePath:  c.SourcePath,
		OutputPath:  model.NullStringValue(c.OutputPath),
		Fingerprint: model.NullStringValue(c.Fingerprint),
		CreatedAt:   c.CreatedAt.Format(time.RFC3339),
		RenderedAt:  model.NullTimeValue(c.RenderedAt),
		Events:      events,
	}, nil
}
