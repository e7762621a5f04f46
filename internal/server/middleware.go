package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/lestrrat-go/jwx/v3/jwt"
	"github.com/sirupsen/logrus"
)

// Context key types to avoid collisions
type contextKey string

const contextKeyAdminEmail contextKey = "admin_email"

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (s *Service) LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		s.logger.WithFields(logrus.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rw.statusCode,
			"duration_ms": time.Since(started).Milliseconds(),
		}).Info("http request")
	})
}

// RequireAdmin accepts either a Supabase bearer token whose email claim
// is on the admin list, or the encrypted session cookie issued by the
// login endpoint. Failures answer with the JSON envelope, not a
// redirect; every caller here is a dashboard making fetch requests.
func (s *Service) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if email, ok := s.adminFromBearer(r); ok {
			ctx := context.WithValue(r.Context(), contextKeyAdminEmail, email)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		if s.adminFromSession(r) {
			next.ServeHTTP(w, r)
			return
		}

		s.respondError(w, http.StatusUnauthorized, "Unauthorized")
	})
}

func (s *Service) adminFromBearer(r *http.Request) (string, bool) {
	if s.jwksCache == nil {
		return "", false
	}

	header := r.Header.Get("Authorization")
	raw, found := strings.CutPrefix(header, "Bearer ")
	if !found || raw == "" {
		return "", false
	}

	set, err := s.jwksCache.Lookup(r.Context(), s.jwksURL)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch JWKS")
		return "", false
	}

	token, err := jwt.Parse(
		[]byte(raw),
		jwt.WithKeySet(set),
		jwt.WithValidate(true),
	)
	if err != nil {
		s.logger.WithError(err).Debug("failed to parse bearer token")
		return "", false
	}

	var email string
	if err := token.Get("email", &email); err != nil {
		s.logger.Debug("bearer token has no email claim")
		return "", false
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if _, ok := s.adminEmails[email]; !ok {
		s.logger.WithField("email", email).Warn("token holder is not an admin")
		return "", false
	}

	return email, true
}

func (s *Service) adminFromSession(r *http.Request) bool {
	cookie, err := r.Cookie(s.config.CookieName)
	if err != nil {
		return false
	}

	var session adminSession
	if err := s.cookie.Decode(s.config.CookieName, cookie.Value, &session); err != nil {
		s.logger.WithError(err).Debug("failed to decode admin session cookie")
		return false
	}

	if time.Now().After(session.ExpiresAt) {
		return false
	}

	return session.Admin
}
