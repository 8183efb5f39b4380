package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/redact"
	"github.com/phrazzld/task-api/internal/service"
	"github.com/phrazzld/task-api/internal/service/auth"
)

// TokenTypeBearer is the token_type of every issued token.
const TokenTypeBearer = "bearer"

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	users      service.UserService
	jwtService auth.JWTService
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(users service.UserService, jwtService auth.JWTService) *AuthHandler {
	return &AuthHandler{
		users:      users,
		jwtService: jwtService,
	}
}

// Register handles the /auth/register endpoint.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		handleDecodeError(w, r, err)
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	user, err := h.users.Register(r.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	h.respondWithToken(w, r, http.StatusCreated, user)
}

// Login handles the /auth/login endpoint.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		handleDecodeError(w, r, err)
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	user, err := h.users.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	h.respondWithToken(w, r, http.StatusOK, user)
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, r *http.Request, status int, user *domain.User) {
	token, err := h.jwtService.GenerateToken(r.Context(), user.ID)
	if err != nil {
		logger.FromContext(r.Context()).Error("failed to generate token",
			slog.String("error", redact.Error(err)),
			slog.Int64("user_id", user.ID))
		shared.RespondWithError(w, r, shared.Internal(err))
		return
	}

	shared.RespondWithJSON(w, r, status, TokenResponse{
		AccessToken: token,
		TokenType:   TokenTypeBearer,
		User:        userToResponse(user),
	})
}
