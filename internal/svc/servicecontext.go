// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package svc

import (
	"github.com/joeblew999/plat-titlecard/internal/config"
	"github.com/joeblew999/plat-titlecard/internal/model"
	"github.com/joeblew999/plat-titlecard/pkg/cardtype"
	"github.com/joeblew999/plat-titlecard/pkg/magick"
	"github.com/joeblew999/plat-titlecard/pkg/queue"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

type ServiceContext struct {
	Config      config.Config
	Registry    *cardtype.Registry
	Runner      *magick.Runner
	Queue       *queue.Queue
	CardsModel  model.CardsModel
	EventsModel model.CardEventsModel
}

func NewServiceContext(c config.Config, registry *cardtype.Registry, runner *magick.Runner, q *queue.Queue, conn sqlx.SqlConn) *ServiceContext {
	return &ServiceContext{
		Config:      c,
		Registry:    registry,
		Runner:      runner,
		Queue:       q,
		CardsModel:  model.NewCardsModel(conn),
		EventsModel: model.NewCardEventsModel(conn),
	}
}
