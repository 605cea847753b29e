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
	ordersFieldNames        = builder.RawFieldNames(&Orders{})
	ordersRows              = strings.Join(ordersFieldNames, ",")
	ordersRowsExpectAutoSet = strings.Join(stringx.Remove(ordersFieldNames, "`id`", "`created_at`", "`updated_at`"), ",")

	cacheOrdersIdPrefix = "cache:orders:id:"
)

var ErrNotFound = sqlx.ErrNotFound

type (
	OrdersModel interface {
		// InsertWithSession writes the order header inside a caller-held
		// transaction and returns the new order id.
		InsertWithSession(ctx context.Context, session sqlx.Session, data *Orders) (int64, error)
		FindOne(ctx context.Context, id int64) (*Orders, error)
		FindOneByOrderNumber(ctx context.Context, orderNumber string) (*Orders, error)
	}

	defaultOrdersModel struct {
		sqlc.CachedConn
		table string
	}

	Orders struct {
		Id             int64          `db:"id"`
		OrderNumber    string         `db:"order_number"`
		UserId         int64          `db:"user_id"`
		SessionId      string         `db:"session_id"`
		Status         string         `db:"status"`
		TotalAmount    float64        `db:"total_amount"`
		TaxAmount      float64        `db:"tax_amount"`
		DiscountAmount float64        `db:"discount_amount"`
		FinalAmount    float64        `db:"final_amount"`
		PaymentStatus  string         `db:"payment_status"`
		PaymentMethod  string         `db:"payment_method"`
		Notes          sql.NullString `db:"notes"`
		CreatedAt      time.Time      `db:"created_at"`
		UpdatedAt      time.Time      `db:"updated_at"`
	}
)

func NewOrdersModel(conn sqlx.SqlConn, c cache.CacheConf, opts ...cache.Option) OrdersModel {
	return &defaultOrdersModel{
		CachedConn: sqlc.NewConn(conn, c, opts...),
		table:      "`orders`",
	}
}

func (m *defaultOrdersModel) InsertWithSession(ctx context.Context, session sqlx.Session, data *Orders) (int64, error) {
	query := fmt.Sprintf("insert into %s (%s) values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)", m.table, ordersRowsExpectAutoSet)
	res, err := session.ExecCtx(ctx, query, data.OrderNumber, data.UserId, data.SessionId, data.Status,
		data.TotalAmount, data.TaxAmount, data.DiscountAmount, data.FinalAmount,
		data.PaymentStatus, data.PaymentMethod, data.Notes)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (m *defaultOrdersModel) FindOne(ctx context.Context, id int64) (*Orders, error) {
	ordersIdKey := fmt.Sprintf("%s%v", cacheOrdersIdPrefix, id)
	var resp Orders
	err := m.QueryRowCtx(ctx, &resp, ordersIdKey, func(ctx context.Context, conn sqlx.SqlConn, v any) error {
		query := fmt.Sprintf("select %s from %s where `id` = ? limit 1", ordersRows, m.table)
		return conn.QueryRowCtx(ctx, v, query, id)
	})
	switch err {
	case nil:
		return &resp, nil
	case sqlc.ErrNotFound:
		return nil, ErrNotFound
	default:
		return nil, err
	}
}

func (m *defaultOrdersModel) FindOneByOrderNumber(ctx context.Context, orderNumber string) (*Orders, error) {
	query := fmt.Sprintf("select %s from %s where `order_number` = ? limit 1", ordersRows, m.table)
	var resp Orders
	err := m.QueryRowNoCacheCtx(ctx, &resp, query, orderNumber)
	switch err {
	case nil:
		return &resp, nil
	case sqlc.ErrNotFound:
		return nil, ErrNotFound
	default:
		return nil, err
	}
}
