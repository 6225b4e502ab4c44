package adaptor

import (
	"net/http"

	"moodflix/internal/dto/request"
	"moodflix/internal/dto/response"
	"moodflix/internal/usecase"
	"moodflix/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	tokens  *utils.TokenManager
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, tokens *utils.TokenManager, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		tokens:  tokens,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// Signup handles POST /api/auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req request.SignupRequest

	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	session, err := h.service.Signup(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "sign up")
		return
	}

	h.tokens.SetCookie(w, session.Token, session.ExpiresAt)
	utils.ResponseCreated(w, response.AuthResponse{
		Message: "User created successfully",
		User:    response.UserToResponse(session.User),
	})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest

	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	session, err := h.service.Login(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "log in")
		return
	}

	h.tokens.SetCookie(w, session.Token, session.ExpiresAt)
	utils.ResponseSuccess(w, response.AuthResponse{
		Message: "Login successful",
		User:    response.UserToResponse(session.User),
	})
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.tokens.ClearCookie(w)
	utils.ResponseMessage(w, "Logged out")
}

// Me handles GET /api/auth/me. It never fails: anything short of a valid
// session for an existing user is {"user": null}.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseSuccess(w, response.MeResponse{})
		return
	}

	user, err := h.service.Me(r.Context(), userID)
	if err != nil {
		h.log.Warn("Failed to load current user", zap.Error(err), zap.String("user_id", userID.String()))
		utils.ResponseSuccess(w, response.MeResponse{})
		return
	}
	if user == nil {
		utils.ResponseSuccess(w, response.MeResponse{})
		return
	}

	resp := response.UserToResponse(user)
	utils.ResponseSuccess(w, response.MeResponse{User: &resp})
}
