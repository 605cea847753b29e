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
	chatSessionsFieldNames        = builder.RawFieldNames(&ChatSessions{})
	chatSessionsRows              = strings.Join(chatSessionsFieldNames, ",")
	chatSessionsRowsExpectAutoSet = strings.Join(stringx.Remove(chatSessionsFieldNames, "`id`", "`created_at`", "`updated_at`"), ",")
)

var ErrNotFound = sqlx.ErrNotFound

type (
	ChatSessionsModel interface {
		Insert(ctx context.Context, data *ChatSessions) (sql.Result, error)
		FindOneBySessionId(ctx context.Context, sessionId string) (*ChatSessions, error)
		// Touch bumps updated_at so idle sessions can be swept.
		Touch(ctx context.Context, sessionId string) error
	}

	defaultChatSessionsModel struct {
		sqlc.CachedConn
		table string
	}

	ChatSessions struct {
		Id        int64     `db:"id"`
		SessionId string    `db:"session_id"`
		UserId    int64     `db:"user_id"`
		CreatedAt time.Time `db:"created_at"`
		UpdatedAt time.Time `db:"updated_at"`
	}
)

func NewChatSessionsModel(conn sqlx.SqlConn, c cache.CacheConf, opts ...cache.Option) ChatSessionsModel {
	return &defaultChatSessionsModel{
		CachedConn: sqlc.NewConn(conn, c, opts...),
		table:      "`chat_sessions`",
	}
}

func (m *defaultChatSessionsModel) Insert(ctx context.Context, data *ChatSessions) (sql.Result, error) {
	query := fmt.Sprintf("insert into %s (%s) values (?, ?)", m.table, chatSessionsRowsExpectAutoSet)
	return m.ExecNoCacheCtx(ctx, query, data.SessionId, data.UserId)
}

func (m *defaultChatSessionsModel) FindOneBySessionId(ctx context.Context, sessionId string) (*ChatSessions, error) {
	query := fmt.Sprintf("select %s from %s where `session_id` = ? limit 1", chatSessionsRows, m.table)
	var resp ChatSessions
	err := m.QueryRowNoCacheCtx(ctx, &resp, query, sessionId)
	switch err {
	case nil:
		return &resp, nil
	case sqlc.ErrNotFound:
		return nil, ErrNotFound
	default:
		return nil, err
	}
}

func (m *defaultChatSessionsModel) Touch(ctx context.Context, sessionId string) error {
	query := fmt.Sprintf("update %s set `updated_at` = current_timestamp where `session_id` = ?", m.table)
	_, err := m.ExecNoCacheCtx(ctx, query, sessionId)
	return err
}
