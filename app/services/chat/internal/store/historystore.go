package store

import (
	"context"
	"errors"

	"BrewMasterAI/app/dal/chat"
	"BrewMasterAI/app/services/chat/internal/agent/convctx"
)

// HistoryStore keeps per-session conversation transcripts.
type HistoryStore struct {
	sessions chat.ChatSessionsModel
	messages chat.ChatMessagesModel
}

func NewHistoryStore(sessions chat.ChatSessionsModel, messages chat.ChatMessagesModel) *HistoryStore {
	return &HistoryStore{sessions: sessions, messages: messages}
}

// EnsureSession registers the session on first contact and bumps its
// last-activity time on every later turn.
func (s *HistoryStore) EnsureSession(ctx context.Context, sessionId string, userId int64) error {
	_, err := s.sessions.FindOneBySessionId(ctx, sessionId)
	if err == nil {
		return s.sessions.Touch(ctx, sessionId)
	}
	if !errors.Is(err, chat.ErrNotFound) {
		return err
	}

	_, err = s.sessions.Insert(ctx, &chat.ChatSessions{
		SessionId: sessionId,
		UserId:    userId,
	})
	return err
}

// Recent returns up to limit turns, oldest first.
func (s *HistoryStore) Recent(ctx context.Context, sessionId string, limit int64) ([]convctx.Turn, error) {
	rows, err := s.messages.RecentBySession(ctx, sessionId, limit)
	if err != nil {
		return nil, err
	}

	turns := make([]convctx.Turn, 0, len(rows))
	for _, row := range rows {
		turns = append(turns, convctx.Turn{Role: row.Role, Content: row.Content})
	}
	return turns, nil
}

func (s *HistoryStore) Append(ctx context.Context, sessionId, role, content string) error {
	_, err := s.messages.Insert(ctx, &chat.ChatMessages{
		SessionId: sessionId,
		Role:      role,
		Content:   content,
	})
	return err
}
