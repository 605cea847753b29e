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
	cartItemsFieldNames        = builder.RawFieldNames(&CartItems{})
	cartItemsRows              = strings.Join(cartItemsFieldNames, ",")
	cartItemsRowsExpectAutoSet = strings.Join(stringx.Remove(cartItemsFieldNames, "`id`", "`created_at`", "`updated_at`"), ",")
)

type (
	CartItemsModel interface {
		Insert(ctx context.Context, data *CartItems) (sql.Result, error)
		// FindOneByCartProductSize matches an existing line for quantity merge.
		FindOneByCartProductSize(ctx context.Context, cartId, productId int64, size sql.NullString) (*CartItems, error)
		ListByCart(ctx context.Context, cartId int64) ([]*CartItems, error)
		UpdateQuantity(ctx context.Context, id int64, quantity int64, totalPrice float64) error
		DeleteByCart(ctx context.Context, cartId int64) error
	}

	defaultCartItemsModel struct {
		sqlc.CachedConn
		table string
	}

	CartItems struct {
		Id           int64          `db:"id"`
		CartId       int64          `db:"cart_id"`
		ProductId    int64          `db:"product_id"`
		ProductName  string         `db:"product_name"`
		Quantity     int64          `db:"quantity"`
		SelectedSize sql.NullString `db:"selected_size"`
		UnitPrice    float64        `db:"unit_price"`
		TotalPrice   float64        `db:"total_price"`
		CreatedAt    time.Time      `db:"created_at"`
		UpdatedAt    time.Time      `db:"updated_at"`
	}
)

func NewCartItemsModel(conn sqlx.SqlConn, c cache.CacheConf, opts ...cache.Option) CartItemsModel {
	return &defaultCartItemsModel{
		CachedConn: sqlc.NewConn(conn, c, opts...),
		table:      "`cart_items`",
	}
}

func (m *defaultCartItemsModel) Insert(ctx context.Context, data *CartItems) (sql.Result, error) {
	query := fmt.Sprintf("insert into %s (%s) values (?, ?, ?, ?, ?, ?, ?)", m.table, cartItemsRowsExpectAutoSet)
	return m.ExecNoCacheCtx(ctx, query, data.CartId, data.ProductId, data.ProductName, data.Quantity, data.SelectedSize, data.UnitPrice, data.TotalPrice)
}

func (m *defaultCartItemsModel) FindOneByCartProductSize(ctx context.Context, cartId, productId int64, size sql.NullString) (*CartItems, error) {
	query := fmt.Sprintf("select %s from %s where `cart_id` = ? and `product_id` = ? and ((`selected_size` is null and ? is null) or `selected_size` = ?) limit 1", cartItemsRows, m.table)
	var resp CartItems
	err := m.QueryRowNoCacheCtx(ctx, &resp, query, cartId, productId, size, size)
	switch err {
	case nil:
		return &resp, nil
	case sqlc.ErrNotFound:
		return nil, ErrNotFound
	default:
		return nil, err
	}
}

func (m *defaultCartItemsModel) ListByCart(ctx context.Context, cartId int64) ([]*CartItems, error) {
	query := fmt.Sprintf("select %s from %s where `cart_id` = ? order by `id` asc", cartItemsRows, m.table)
	var rows []CartItems
	err := m.QueryRowsNoCacheCtx(ctx, &rows, query, cartId)
	switch err {
	case nil:
		res := make([]*CartItems, 0, len(rows))
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

func (m *defaultCartItemsModel) UpdateQuantity(ctx context.Context, id int64, quantity int64, totalPrice float64) error {
	query := fmt.Sprintf("update %s set `quantity` = ?, `total_price` = ? where `id` = ?", m.table)
	_, err := m.ExecNoCacheCtx(ctx, query, quantity, totalPrice, id)
	return err
}

func (m *defaultCartItemsModel) DeleteByCart(ctx context.Context, cartId int64) error {
	query := fmt.Sprintf("delete from %s where `cart_id` = ?", m.table)
	_, err := m.ExecNoCacheCtx(ctx, query, cartId)
	return err
}
