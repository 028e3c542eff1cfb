package web

import (
	"context"
	"net/http"
	"time"

	"github.com/alexmuntean1/freshfridge/internal/engine"
)

// SessionCookie names the cookie carrying the session id.
const SessionCookie = "freshfridge_session"

type ctxKey struct{}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapper := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapper, r)
		s.log.Info("%d %s %s %v", wrapper.statusCode, r.Method, r.URL.Path, time.Since(start))
	})
}

type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// sessionMiddleware attaches the caller's session. Only ids the server
// issued and still holds are adopted; anything else gets a fresh id and
// cookie, so a client cannot pick its own session id.
func (s *Server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ""
		if c, err := r.Cookie(SessionCookie); err == nil && engine.ValidSessionID(c.Value) && s.engine.Has(c.Value) {
			id = c.Value
		}
		if id == "" {
			id = engine.NewSessionID()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
			s.log.Debug("new session %s for %s", id, r.RemoteAddr)
		}
		ctx := context.WithValue(r.Context(), ctxKey{}, s.engine.Open(id))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionFrom(r *http.Request) *engine.Session {
	return r.Context().Value(ctxKey{}).(*engine.Session)
}
