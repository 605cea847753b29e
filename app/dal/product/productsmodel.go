package product

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
	productsFieldNames          = builder.RawFieldNames(&Products{})
	productsRows                = strings.Join(productsFieldNames, ",")
	productsRowsExpectAutoSet   = strings.Join(stringx.Remove(productsFieldNames, "`id`", "`created_at`", "`updated_at`"), ",")
	productsRowsWithPlaceHolder = strings.Join(stringx.Remove(productsFieldNames, "`id`", "`created_at`", "`updated_at`"), "=?,") + "=?"

	cacheProductsIdPrefix = "cache:products:id:"
)

var ErrNotFound = sqlx.ErrNotFound

type (
	// ProductsModel is an interface to be customized, add more methods here,
	// and implement the added methods in customProductsModel.
	ProductsModel interface {
		Insert(ctx context.Context, data *Products) (sql.Result, error)
		FindOne(ctx context.Context, id int64) (*Products, error)
		Update(ctx context.Context, data *Products) error
		Delete(ctx context.Context, id int64) error
		// SearchByName returns products whose name matches the term (by LIKE),
		// capped at limit.
		SearchByName(ctx context.Context, name string, limit int64) ([]*Products, error)
	}

	defaultProductsModel struct {
		sqlc.CachedConn
		table string
	}

	Products struct {
		Id            int64          `db:"id"`
		Name          string         `db:"name"`
		Description   string         `db:"description"`
		Category      string         `db:"category"`
		RetailPrice   float64        `db:"retail_price"`
		UnitOfMeasure sql.NullString `db:"unit_of_measure"`
		ImageUrl      sql.NullString `db:"image_url"`
		CreatedAt     time.Time      `db:"created_at"`
		UpdatedAt     time.Time      `db:"updated_at"`
	}
)

// NewProductsModel returns a model for the database table.
func NewProductsModel(conn sqlx.SqlConn, c cache.CacheConf, opts ...cache.Option) ProductsModel {
	return &defaultProductsModel{
		CachedConn: sqlc.NewConn(conn, c, opts...),
		table:      "`products`",
	}
}

func (m *defaultProductsModel) Insert(ctx context.Context, data *Products) (sql.Result, error) {
	productsIdKey := fmt.Sprintf("%s%v", cacheProductsIdPrefix, data.Id)
	return m.ExecCtx(ctx, func(ctx context.Context, conn sqlx.SqlConn) (sql.Result, error) {
		query := fmt.Sprintf("insert into %s (%s) values (?, ?, ?, ?, ?, ?)", m.table, productsRowsExpectAutoSet)
		return conn.ExecCtx(ctx, query, data.Name, data.Description, data.Category, data.RetailPrice, data.UnitOfMeasure, data.ImageUrl)
	}, productsIdKey)
}

func (m *defaultProductsModel) FindOne(ctx context.Context, id int64) (*Products, error) {
	productsIdKey := fmt.Sprintf("%s%v", cacheProductsIdPrefix, id)
	var resp Products
	err := m.QueryRowCtx(ctx, &resp, productsIdKey, func(ctx context.Context, conn sqlx.SqlConn, v any) error {
		query := fmt.Sprintf("select %s from %s where `id` = ? limit 1", productsRows, m.table)
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

func (m *defaultProductsModel) Update(ctx context.Context, data *Products) error {
	productsIdKey := fmt.Sprintf("%s%v", cacheProductsIdPrefix, data.Id)
	_, err := m.ExecCtx(ctx, func(ctx context.Context, conn sqlx.SqlConn) (sql.Result, error) {
		query := fmt.Sprintf("update %s set %s where `id` = ?", m.table, productsRowsWithPlaceHolder)
		return conn.ExecCtx(ctx, query, data.Name, data.Description, data.Category, data.RetailPrice, data.UnitOfMeasure, data.ImageUrl, data.Id)
	}, productsIdKey)
	return err
}

func (m *defaultProductsModel) Delete(ctx context.Context, id int64) error {
	productsIdKey := fmt.Sprintf("%s%v", cacheProductsIdPrefix, id)
	_, err := m.ExecCtx(ctx, func(ctx context.Context, conn sqlx.SqlConn) (sql.Result, error) {
		query := fmt.Sprintf("delete from %s where `id` = ?", m.table)
		return conn.ExecCtx(ctx, query, id)
	}, productsIdKey)
	return err
}

func (m *defaultProductsModel) SearchByName(ctx context.Context, name string, limit int64) ([]*Products, error) {
	if limit <= 0 {
		limit = 5
	}
	term := "%" + strings.TrimSpace(name) + "%"
	var rows []Products
	query := fmt.Sprintf("select %s from %s where `name` like ? order by `id` asc limit ?", productsRows, m.table)
	err := m.QueryRowsNoCacheCtx(ctx, &rows, query, term, limit)
	switch err {
	case nil:
		res := make([]*Products, 0, len(rows))
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
