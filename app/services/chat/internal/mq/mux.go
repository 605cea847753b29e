package mq

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/hibiken/asynq"
	"github.com/zeromicro/go-zero/core/logx"

	"BrewMasterAI/app/dal/order"
	"BrewMasterAI/app/services/chat/internal/svc"
)

// NewAsynqMux registers handlers for deferred chat tasks.
func NewAsynqMux(sc *svc.ServiceContext) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskOrderEmail, newOrderEmailHandler(sc))
	return mux
}

func newOrderEmailHandler(sc *svc.ServiceContext) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var p OrderEmailPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			return err
		}

		// the order number is the durable business key; ids may differ
		// between the enqueueing and consuming environments
		ord, err := sc.Orders.FindOneByOrderNumber(ctx, p.OrderNumber)
		if err != nil {
			if errors.Is(err, order.ErrNotFound) {
				logx.WithContext(ctx).Infow("skip confirmation mail, order missing",
					logx.Field("order_number", p.OrderNumber))
				return nil
			}
			return err
		}

		items, err := sc.OrderItems.ListByOrder(ctx, ord.Id)
		if err != nil {
			return err
		}

		// mail transport pluggable later; for now, log the dispatch
		logx.WithContext(ctx).Infow("order confirmation mail dispatched",
			logx.Field("order_number", ord.OrderNumber),
			logx.Field("user_id", ord.UserId),
			logx.Field("item_count", len(items)),
			logx.Field("final_amount", ord.FinalAmount),
			logx.Field("payment_method", ord.PaymentMethod))
		return nil
	}
}
