package wire

import (
	"net/http"

	"moodflix/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	limit func(http.Handler) http.Handler,
) {
	// ==================== PUBLIC ROUTES ====================
	r.With(limit).Post("/api/auth/signup", authHandler.Signup)
	r.With(limit).Post("/api/auth/login", authHandler.Login)
	r.Post("/api/auth/logout", authHandler.Logout)

	// GET /api/auth/me - {user: null} when not signed in
	r.Get("/api/auth/me", authHandler.Me)
}
