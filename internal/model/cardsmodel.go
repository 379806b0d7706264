package model

import (
	"context"
	"fmt"

	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

var _ CardsModel = (*customCardsModel)(nil)

type (
	// CardsModel is an interface to be customized, add more methods here,
	// and implement the added methods in customCardsModel.
	CardsModel interface {
		cardsModel
		withSession(session sqlx.Session) CardsModel
		ListByStatus(ctx context.Context, status string, limit int) ([]*Cards, error)
	}

	customCardsModel struct {
		*defaultCardsModel
	}
)

// NewCardsModel returns a model for the database table.
func NewCardsModel(conn sqlx.SqlConn) CardsModel {
	return &customCardsModel{
		defaultCardsModel: newCardsModel(conn),
	}
}

func (m *customCardsModel) withSession(session sqlx.Session) CardsModel {
	return NewCardsModel(sqlx.NewSqlConnFromSession(session))
}

// ListByStatus returns cards filtered by status with a limit.
func (m *customCardsModel) ListByStatus(ctx context.Context, status string, limit int) ([]*Cards, error) {
	var resp []*Cards
	var query string
	var args []any

	if status != "" && status != "all" {
		query = fmt.Sprintf("select %s from %s where `status` = ? order by `created_at` desc limit ?", cardsRows, m.table)
		args = []any{status, limit}
	} else {
		query = fmt.Sprintf("select %s from %s order by `created_at` desc limit ?", cardsRows, m.table)
		args = []any{limit}
	}

	err := m.conn.QueryRowsCtx(ctx, &resp, query, args...)
	if err != nil {
		return nil, err
	}

	return resp, nil
}
