package server

import (
	"net/http"
	"time"

	"github.com/RandyVollrath/ticketlesschicago-sub011/pkg/types"

	"golang.org/x/crypto/bcrypt"
)

type adminSession struct {
	Admin     bool
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// handlePostLogin checks the admin password against the configured
// bcrypt hash and issues an encrypted, expiring session cookie. The
// plaintext never lives anywhere but the request.
func (s *Service) handlePostLogin(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if s.config.AdminPasswordHash == "" {
		s.respondError(w, http.StatusForbidden, "Password login is not configured")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.config.AdminPasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("failed admin login attempt")
		s.respondError(w, http.StatusUnauthorized, "Invalid password")
		return
	}

	now := time.Now()
	session := adminSession{
		Admin:     true,
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Duration(s.config.SessionMaxAgeSec) * time.Second),
	}

	encoded, err := s.cookie.Encode(s.config.CookieName, session)
	if err != nil {
		s.logger.WithError(err).Error("failed to encode admin session cookie")
		s.respondError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.config.CookieName,
		Value:    encoded,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   s.config.SessionMaxAgeSec,
		Path:     "/admin",
	})

	s.respondJSON(w, http.StatusOK, types.Response{Success: true})
}
