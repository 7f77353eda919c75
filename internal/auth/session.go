package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Session - аутентифицированный вызывающий, передаётся через контекст запроса
type Session struct {
	UserID    uuid.UUID
	Email     string
	ExpiresAt time.Time
}

type sessionKey struct{}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

func SessionFrom(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(Session)
	return s, ok && s.UserID != uuid.Nil
}
