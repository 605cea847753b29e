package middleware

import (
	"net/http"
	"strings"

	"BrewMasterAI/app/common/consts/biz"
	"BrewMasterAI/app/common/util"

	"github.com/golang-jwt/jwt/v4"
	"github.com/zeromicro/go-zero/core/logx"
)

// OptionalAuthMiddleware resolves the user id from a bearer token when one is
// present. Requests without a token (or with an invalid one) proceed as guest
// sessions rather than being rejected, since chat is open to anonymous users.
type OptionalAuthMiddleware struct {
	secret []byte
}

func NewOptionalAuthMiddleware(secret string) *OptionalAuthMiddleware {
	return &OptionalAuthMiddleware{secret: []byte(secret)}
}

func (m *OptionalAuthMiddleware) Handle(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if userId, ok := m.parseUserId(r); ok {
			util.InjectUserId2Ctx(r, userId)
		} else {
			util.InjectUserId2Ctx(r, biz.GuestUserId)
		}
		next(w, r)
	}
}

func (m *OptionalAuthMiddleware) parseUserId(r *http.Request) (int64, bool) {
	if len(m.secret) == 0 {
		return 0, false
	}
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return 0, false
	}
	raw := strings.TrimPrefix(auth, "Bearer ")

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		logx.WithContext(r.Context()).Infof("discarding invalid bearer token: %v", err)
		return 0, false
	}

	switch v := claims["user_id"].(type) {
	case float64:
		return int64(v), true
	case int64:
		return v, true
	}
	return 0, false
}
