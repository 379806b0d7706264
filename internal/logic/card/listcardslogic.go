// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package card

import (
	"context"
	"time"

	"github.com/joeblew999/plat-titlecard/internal/errorx"
	"github.com/joeblew999/plat-titlecard/internal/model"
	"github.com/joeblew999/plat-titlecard/internal/svc"
	"github.com/joeblew999/plat-titlecard/internal/types"

	"github.com/zeromicro/go-zero/core/logx"
)

type ListCardsLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewListCardsLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ListCardsLogic {
	return &ListCardsLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *ListCardsLogic) ListCards(req *types.ListCardsRequest) (resp *types.ListCardsResponse, err error) {
	rows, err := l.svcCtx.CardsModel.ListByStatus(l.ctx, req.Status, req.Limit)
	if err != nil {
		return nil, errorx.ErrInternal("failed to list cards: " + err.Error())
	}

	cards := make([]types.CardSummary, 0, len(rows))
	for _, c := range rows {
		cards = append(cards, types.CardSummary{
			Id:        c.Id,
			Series:    c.Series,
			Season:    int(c.Season),
			Episode:   int(c.Episode),
			Title:     c.Title,
			Style:     c.StyleId,
			Status:    c.Status,
			Attempts:  int(c.Attempts),
			Error:     model.NullStringValue(c.Error),
			CreatedAt: c.CreatedAt.Format(time.RFC3339),
		})
	}

	return &types.ListCardsResponse{
		Cards: cards,
		Count: len(cards),
	}, nil
}
