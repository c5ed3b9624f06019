package httpserver

import (
	"context"
	"fmt"
	"strings"

	"aguagas/internal/session"
	"github.com/gin-gonic/gin"
)

type ctxKey string

const (
	sessionCtxKey ctxKey = "session"
	sessionHeader        = "X-Session-ID"
)

type sessionGetter interface {
	Get(id string) (session.Session, error)
}

// sessionMiddleware resolves :sessionID and stores the session snapshot in the
// request context.
func sessionMiddleware(sessions sessionGetter) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.Param("sessionID"))
		if id == "" {
			badRequest(c, "sessionID is required")
			c.Abort()
			return
		}
		sess, err := sessions.Get(id)
		if err != nil {
			writeError(c, fmt.Errorf("session %s: %w", id, err))
			c.Abort()
			return
		}
		ctx := context.WithValue(c.Request.Context(), sessionCtxKey, sess)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func sessionFromContext(ctx context.Context) (session.Session, bool) {
	sess, ok := ctx.Value(sessionCtxKey).(session.Session)
	return sess, ok
}
