package model

import (
	"context"
	"fmt"

	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

var _ CardEventsModel = (*customCardEventsModel)(nil)

type (
	// CardEventsModel is an interface to be customized, add more methods here,
	// and implement the added methods in customCardEventsModel.
	CardEventsModel interface {
		cardEventsModel
		withSession(session sqlx.Session) CardEventsModel
		ListByCard(ctx context.Context, cardID string, limit int) ([]*CardEvents, error)
	}

	customCardEventsModel struct {
		*defaultCardEventsModel
	}
)

// NewCardEventsModel returns a model for the database table.
func NewCardEventsModel(conn sqlx.SqlConn) CardEventsModel {
	return &customCardEventsModel{
		defaultCardEventsModel: newCardEventsModel(conn),
	}
}

func (m *customCardEventsModel) withSession(session sqlx.Session) CardEventsModel {
	return NewCardEventsModel(sqlx.NewSqlConnFromSession(session))
}

// ListByCard returns the lifecycle events of a card, oldest first.
func (m *customCardEventsModel) ListByCard(ctx context.Context, cardID string, limit int) ([]*CardEvents, error) {
	var resp []*CardEvents
	query := fmt.Sprintf("select %s from %s where `card_id` = ? order by `timestamp` asc limit ?", cardEventsRows, m.table)
	err := m.conn.QueryRowsCtx(ctx, &resp, query, cardID, limit)
	if err != nil {
		return nil, err
	}

	return resp, nil
}
