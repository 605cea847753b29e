package cart

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/zeromicro/go-zero/core/stores/builder"
	"github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/core/stores/sqlc"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
	"github.com/zeromicro/go-zero/core/stringx"
)

var (
	cartsFieldNames        = builder.RawFieldNames(&Carts{})
	cartsRows              = strings.Join(cartsFieldNames, ",")
	cartsRowsExpectAutoSet = strings.Join(stringx.Remove(cartsFieldNames, "`id`", "`created_at`", "`updated_at`"), ",")
)

var ErrNotFound = sqlx.ErrNotFound

const (
	StatusActive     = "active"
	StatusCheckedOut = "checked_out"
)

type (
	CartsModel interface {
		Insert(ctx context.Context, data *Carts) (sql.Result, error)
		FindOne(ctx context.Context, id int64) (*Carts, error)
		// FindActiveBySession returns the open cart for a chat session.
		FindActiveBySession(ctx context.Context, sessionId string, userId int64) (*Carts, error)
		// RefreshTotals recomputes total_items/total_amount from cart_items.
		// The carts row stays the single source of truth for totals.
		RefreshTotals(ctx context.Context, cartId int64) error
		UpdateStatus(ctx context.Context, cartId int64, status string) error
	}

	defaultCartsModel struct {
		sqlc.CachedConn
		table string
	}

	Carts struct {
		Id          int64     `db:"id"`
		UserId      int64     `db:"user_id"`
		SessionId   string    `db:"session_id"`
		Status      string    `db:"status"`
		TotalItems  int64     `db:"total_items"`
		TotalAmount float64   `db:"total_amount"`
		CreatedAt   time.Time `db:"created_at"`
		UpdatedAt   time.Time `db:"updated_at"`
	}
)

func NewCartsModel(conn sqlx.SqlConn, c cache.CacheConf, opts ...cache.Option) CartsModel {
	return &defaultCartsModel{
		CachedConn: sqlc.NewConn(conn, c, opts...),
		table:      "`carts`",
	}
}

func (m *defaultCartsModel) Insert(ctx context.Context, data *Carts) (sql.Result, error) {
	query := fmt.Sprintf("insert into %s (%s) values (?, ?, ?, ?, ?)", m.table, cartsRowsExpectAutoSet)
	return m.ExecNoCacheCtx(ctx, query, data.UserId, data.SessionId, data.Status, data.TotalItems, data.TotalAmount)
}

func (m *defaultCartsModel) FindOne(ctx context.Context, id int64) (*Carts, error) {
	query := fmt.Sprintf("select %s from %s where `id` = ? limit 1", cartsRows, m.table)
	var resp Carts
	err := m.QueryRowNoCacheCtx(ctx, &resp, query, id)
	switch err {
	case nil:
		return &resp, nil
	case sqlc.ErrNotFound:
		return nil, ErrNotFound
	default:
		return nil, err
	}
}

func (m *defaultCartsModel) FindActiveBySession(ctx context.Context, sessionId string, userId int64) (*Carts, error) {
	query := fmt.Sprintf("select %s from %s where `session_id` = ? and `user_id` = ? and `status` = ? limit 1", cartsRows, m.table)
	var resp Carts
	err := m.QueryRowNoCacheCtx(ctx, &resp, query, sessionId, userId, StatusActive)
	switch err {
	case nil:
		return &resp, nil
	case sqlc.ErrNotFound:
		return nil, ErrNotFound
	default:
		return nil, err
	}
}

func (m *defaultCartsModel) RefreshTotals(ctx context.Context, cartId int64) error {
	query := fmt.Sprintf(`update %s set
		total_items = (select coalesce(sum(quantity), 0) from cart_items where cart_id = ?),
		total_amount = (select coalesce(sum(total_price), 0) from cart_items where cart_id = ?)
		where id = ?`, m.table)
	_, err := m.ExecNoCacheCtx(ctx, query, cartId, cartId, cartId)
	return err
}

func (m *defaultCartsModel) UpdateStatus(ctx context.Context, cartId int64, status string) error {
	query := fmt.Sprintf("update %s set `status` = ? where `id` = ?", m.table)
	_, err := m.ExecNoCacheCtx(ctx, query, status, cartId)
	return err
}
