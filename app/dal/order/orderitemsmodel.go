package order

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
	orderItemsFieldNames        = builder.RawFieldNames(&OrderItems{})
	orderItemsRows              = strings.Join(orderItemsFieldNames, ",")
	orderItemsRowsExpectAutoSet = strings.Join(stringx.Remove(orderItemsFieldNames, "`id`", "`created_at`"), ",")
)

type (
	OrderItemsModel interface {
		// InsertWithSession writes one order line inside a caller-held
		// transaction, alongside the order header insert.
		InsertWithSession(ctx context.Context, session sqlx.Session, data *OrderItems) error
		ListByOrder(ctx context.Context, orderId int64) ([]*OrderItems, error)
	}

	defaultOrderItemsModel struct {
		sqlc.CachedConn
		table string
	}

	OrderItems struct {
		Id           int64          `db:"id"`
		OrderId      int64          `db:"order_id"`
		ProductId    int64          `db:"product_id"`
		Quantity     int64          `db:"quantity"`
		UnitPrice    float64        `db:"unit_price"`
		TotalPrice   float64        `db:"total_price"`
		SelectedSize sql.NullString `db:"selected_size"`
		Notes        sql.NullString `db:"notes"`
		CreatedAt    time.Time      `db:"created_at"`
	}
)

func NewOrderItemsModel(conn sqlx.SqlConn, c cache.CacheConf, opts ...cache.Option) OrderItemsModel {
	return &defaultOrderItemsModel{
		CachedConn: sqlc.NewConn(conn, c, opts...),
		table:      "`order_items`",
	}
}

func (m *defaultOrderItemsModel) InsertWithSession(ctx context.Context, session sqlx.Session, data *OrderItems) error {
	query := fmt.Sprintf("insert into %s (%s) values (?, ?, ?, ?, ?, ?, ?)", m.table, orderItemsRowsExpectAutoSet)
	_, err := session.ExecCtx(ctx, query, data.OrderId, data.ProductId, data.Quantity, data.UnitPrice, data.TotalPrice, data.SelectedSize, data.Notes)
	return err
}

func (m *defaultOrderItemsModel) ListByOrder(ctx context.Context, orderId int64) ([]*OrderItems, error) {
	query := fmt.Sprintf("select %s from %s where `order_id` = ? order by `id` asc", orderItemsRows, m.table)
	var rows []OrderItems
	err := m.QueryRowsNoCacheCtx(ctx, &rows, query, orderId)
	switch err {
	case nil:
		res := make([]*OrderItems, 0, len(rows))
		for i := range rows {
			res = append(res, &rows[i])
		}
		return res, nil
	case sqlc.ErrNotFound:
		return nil, ErrNotFound
	default:
		return nil, err
	}
}
