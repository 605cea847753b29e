package logic

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/hibiken/asynq"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/redis"
	"github.com/zeromicro/x/errors"

	"BrewMasterAI/app/common/consts/biz"
	"BrewMasterAI/app/common/consts/errno"
	"BrewMasterAI/app/common/snowflake"
	"BrewMasterAI/app/common/util"
	chatagent "BrewMasterAI/app/services/chat/internal/agent/chat"
	"BrewMasterAI/app/services/chat/internal/agent/convctx"
	"BrewMasterAI/app/services/chat/internal/mq"
	"BrewMasterAI/app/services/chat/internal/svc"
	"BrewMasterAI/app/services/chat/internal/types"
)

const sessionLockSeconds = 30

type ChatLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewChatLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ChatLogic {
	return &ChatLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// Chat runs one conversational turn. Turns within a session are serialized
// through a redis lock so concurrent requests cannot interleave cart state.
func (l *ChatLogic) Chat(req *types.ChatRequest) (*types.ChatResponse, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, errors.New(int(errno.InvalidParam), "empty message")
	}

	userId := int64(biz.GuestUserId)
	if uid, err := util.UserIdFromCtx(l.ctx); err == nil {
		userId = uid
	}

	sessionId := strings.TrimSpace(req.SessionId)
	if sessionId == "" {
		sessionId = strconv.FormatInt(snowflake.Next(), 10)
	}

	lock := redis.NewRedisLock(l.svcCtx.Redis, "chat:session:lock:"+sessionId)
	lock.SetExpire(sessionLockSeconds)
	acquired, err := lock.AcquireCtx(l.ctx)
	if err != nil {
		l.Logger.Error("logic: acquire session lock failed: ", err)
		return nil, errors.New(int(errno.InternalError), "session lock unavailable")
	}
	if !acquired {
		return nil, errors.New(int(errno.SessionLocked), "session busy, please retry")
	}
	defer func() {
		if _, err := lock.ReleaseCtx(l.ctx); err != nil {
			l.Logger.Error("logic: release session lock failed: ", err)
		}
	}()

	if err := l.svcCtx.History.EnsureSession(l.ctx, sessionId, userId); err != nil {
		l.Logger.Error("logic: ensure session failed: ", err)
	}

	history, err := l.svcCtx.History.Recent(l.ctx, sessionId, l.svcCtx.HistoryLimit())
	if err != nil {
		l.Logger.Error("logic: load history failed: ", err)
		history = nil
	}

	if err := l.svcCtx.History.Append(l.ctx, sessionId, convctx.RoleUser, query); err != nil {
		l.Logger.Error("logic: persist user turn failed: ", err)
	}

	result := l.svcCtx.Agent.Respond(l.ctx, &chatagent.Request{
		Query:     query,
		SessionId: sessionId,
		UserId:    userId,
		History:   history,
	})

	if err := l.svcCtx.History.Append(l.ctx, sessionId, convctx.RoleAssistant, result.Response); err != nil {
		l.Logger.Error("logic: persist assistant turn failed: ", err)
	}

	if result.CompletedOrder != nil {
		l.publishOrderConfirmed(sessionId, userId, result.CompletedOrder.Id, result.CompletedOrder.OrderNumber)
	}

	return &types.ChatResponse{
		StatusCode:         errno.StatusOK,
		StatusMsg:          "success",
		SessionId:          sessionId,
		Response:           result.Response,
		Intent:             result.Intent,
		Agent:              result.Agent,
		Sources:            result.Sources,
		Products:           result.Products,
		Metadata:           result.Metadata,
		ChatHistoryUsed:    result.ChatHistoryUsed,
		ProductContextUsed: result.ProductContextUsed,
		OrderProcessing:    result.OrderProcessing,
	}, nil
}

// publishOrderConfirmed fans the completed order out to Kafka and schedules
// the confirmation mail. Both are best-effort; the order itself is already
// durable.
func (l *ChatLogic) publishOrderConfirmed(sessionId string, userId, orderId int64, orderNumber string) {
	evt := mq.OrderConfirmedEvent{
		OrderId:     orderId,
		OrderNumber: orderNumber,
		UserId:      userId,
		SessionId:   sessionId,
	}
	if ord, err := l.svcCtx.Orders.FindOne(l.ctx, orderId); err == nil {
		evt.FinalAmount = ord.FinalAmount
		evt.PaymentMethod = ord.PaymentMethod
	}

	if err := mq.PublishOrderConfirmed(l.ctx, l.svcCtx, evt); err != nil {
		l.Logger.Error("logic: publish order confirmed failed: ", err)
	}

	if l.svcCtx.AsynqClient != nil {
		payload, _ := json.Marshal(mq.OrderEmailPayload{
			OrderId:     orderId,
			OrderNumber: orderNumber,
			UserId:      userId,
		})
		task := asynq.NewTask(mq.TaskOrderEmail, payload)
		if _, err := l.svcCtx.AsynqClient.Enqueue(task, asynq.Queue("default")); err != nil {
			l.Logger.Error("logic: enqueue order email failed: ", err)
		}
	}
}
