package chi

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	domsess "github.com/raywlfun/WeaviateDBCluster/internal/domain/session"
	logpkg "github.com/raywlfun/WeaviateDBCluster/internal/logger"
)

// SessionHeader carries the edit session id in both directions.
const SessionHeader = "X-Session-ID"

type sessionKey struct{}

func sessionFromContext(ctx context.Context) *domsess.Session {
	s, _ := ctx.Value(sessionKey{}).(*domsess.Session)
	return s
}

// sessionMiddleware opens the caller's edit session, or a new one, and echoes
// its id. The session is saved after the handler returns so that type maps
// cached during the request survive to the next one.
func (s *Server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.sessions.Open(r.Context(), r.Header.Get(SessionHeader))
		if err != nil {
			s.handleDomainError(w, r, err)
			return
		}
		w.Header().Set(SessionHeader, sess.ID)

		ctx := context.WithValue(r.Context(), sessionKey{}, sess)
		ctx = logpkg.With(ctx, zap.String("session_id", sess.ID))
		next.ServeHTTP(w, r.WithContext(ctx))

		// Request cancellation must not drop the session write.
		if err := s.sessions.Save(context.WithoutCancel(ctx), sess); err != nil {
			logpkg.FromContext(ctx).Warn("save session failed", zap.Error(err))
		}
	})
}
