package chat

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
	chatMessagesFieldNames        = builder.RawFieldNames(&ChatMessages{})
	chatMessagesRows              = strings.Join(chatMessagesFieldNames, ",")
	chatMessagesRowsExpectAutoSet = strings.Join(stringx.Remove(chatMessagesFieldNames, "`id`", "`created_at`"), ",")
)

type (
	ChatMessagesModel interface {
		Insert(ctx context.Context, data *ChatMessages) (sql.Result, error)
		// RecentBySession returns up to limit turns, oldest first.
		RecentBySession(ctx context.Context, sessionId string, limit int64) ([]*ChatMessages, error)
	}

	defaultChatMessagesModel struct {
		sqlc.CachedConn
		table string
	}

	ChatMessages struct {
		Id        int64     `db:"id"`
		SessionId string    `db:"session_id"`
		Role      string    `db:"role"`
		Content   string    `db:"content"`
		CreatedAt time.Time `db:"created_at"`
	}
)

func NewChatMessagesModel(conn sqlx.SqlConn, c cache.CacheConf, opts ...cache.Option) ChatMessagesModel {
	return &defaultChatMessagesModel{
		CachedConn: sqlc.NewConn(conn, c, opts...),
		table:      "`chat_messages`",
	}
}

func (m *defaultChatMessagesModel) Insert(ctx context.Context, data *ChatMessages) (sql.Result, error) {
	query := fmt.Sprintf("insert into %s (%s) values (?, ?, ?)", m.table, chatMessagesRowsExpectAutoSet)
	return m.ExecNoCacheCtx(ctx, query, data.SessionId, data.Role, data.Content)
}

func (m *defaultChatMessagesModel) RecentBySession(ctx context.Context, sessionId string, limit int64) ([]*ChatMessages, error) {
	if limit <= 0 {
		limit = 50
	}
	// fetch newest first, then reverse so callers see chronological order
	var rows []ChatMessages
	query := fmt.Sprintf("select %s from %s where `session_id` = ? order by `id` desc limit ?", chatMessagesRows, m.table)
	err := m.QueryRowsNoCacheCtx(ctx, &rows, query, sessionId, limit)
	switch err {
	case nil:
		res := make([]*ChatMessages, 0, len(rows))
		for i := len(rows) - 1; i >= 0; i-- {
			res = append(res, &rows[i])
		}
		return res, nil
	case sqlc.ErrNotFound:
		return nil, ErrNotFound
	default:
		return nil, err
	}
}
