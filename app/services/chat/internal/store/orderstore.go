package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/sqlx"

	"BrewMasterAI/app/common/snowflake"
	"BrewMasterAI/app/dal/order"
	"BrewMasterAI/app/services/chat/internal/agent/orderflow"
)

// OrderStore persists chat orders to the orders/order_items tables. The
// header and its lines commit together; a failed line insert rolls back the
// whole order so no partial record survives.
type OrderStore struct {
	conn   sqlx.SqlConn
	orders order.OrdersModel
	items  order.OrderItemsModel
}

func NewOrderStore(conn sqlx.SqlConn, orders order.OrdersModel, items order.OrderItemsModel) *OrderStore {
	return &OrderStore{conn: conn, orders: orders, items: items}
}

func (s *OrderStore) Create(ctx context.Context, draft *orderflow.OrderDraft) (*orderflow.CreatedOrder, error) {
	if len(draft.Items) == 0 {
		return nil, fmt.Errorf("order has no items")
	}

	orderNumber := fmt.Sprintf("ORD-%d", snowflake.Next())

	var orderId int64
	err := s.conn.TransactCtx(ctx, func(ctx context.Context, session sqlx.Session) error {
		id, err := s.orders.InsertWithSession(ctx, session, &order.Orders{
			OrderNumber:   orderNumber,
			UserId:        draft.UserId,
			SessionId:     draft.SessionId,
			Status:        draft.Status,
			TotalAmount:   draft.TotalAmount,
			TaxAmount:     draft.TaxAmount,
			FinalAmount:   draft.FinalAmount,
			PaymentStatus: draft.PaymentStatus,
			PaymentMethod: draft.PaymentMethod,
			Notes:         sql.NullString{String: draft.Notes, Valid: draft.Notes != ""},
		})
		if err != nil {
			return err
		}
		orderId = id

		for _, item := range draft.Items {
			err := s.items.InsertWithSession(ctx, session, &order.OrderItems{
				OrderId:      orderId,
				ProductId:    item.ProductId,
				Quantity:     item.Quantity,
				UnitPrice:    item.UnitPrice,
				TotalPrice:   item.TotalPrice,
				SelectedSize: sql.NullString{String: item.Size, Valid: item.Size != ""},
			})
			if err != nil {
				logx.WithContext(ctx).Errorw("order item insert failed",
					logx.Field("order_number", orderNumber),
					logx.Field("product_id", item.ProductId),
					logx.Field("err", err))
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &orderflow.CreatedOrder{Id: orderId, OrderNumber: orderNumber}, nil
}
