package auth_session

import (
	"errors"
	"net/http"

	"github.com/m04kA/StudioBookingService/internal/api/handlers"
	"github.com/m04kA/StudioBookingService/internal/api/middleware"
	"github.com/m04kA/StudioBookingService/internal/service/auth"
	"github.com/m04kA/StudioBookingService/internal/service/auth/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSignUp      = "укажите корректный email и пароль не короче 6 символов"
	msgInvalidSignIn      = "укажите email и пароль"
	msgInvalidProfile     = "некорректные данные профиля"
	msgEmailTaken         = "пользователь с таким email уже зарегистрирован"
	msgInvalidCredentials = "неверный email или пароль"
	msgMissingSession     = "требуется авторизация"
	msgUserNotFound       = "пользователь не найден"
)

type Handler struct {
	service AuthService
	logger  Logger
}

func NewHandler(service AuthService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// SignUp POST /api/v1/auth/signup
func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req models.SignUpRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/signup - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	session, err := h.service.SignUp(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidInput):
			h.logger.Warn("POST /auth/signup - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSignUp)

		case errors.Is(err, auth.ErrEmailTaken):
			h.logger.Warn("POST /auth/signup - Email taken: %s", req.Email)
			handlers.RespondConflict(w, msgEmailTaken)

		default:
			h.logger.Error("POST /auth/signup - Failed to sign up: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /auth/signup - User signed up: user_id=%s", session.User.ID)
	handlers.RespondJSON(w, http.StatusCreated, session)
}

// SignIn POST /api/v1/auth/signin
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req models.SignInRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/signin - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	session, err := h.service.SignIn(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidSignIn)

		case errors.Is(err, auth.ErrInvalidCredentials):
			h.logger.Warn("POST /auth/signin - Invalid credentials: %s", req.Email)
			handlers.RespondUnauthorized(w, msgInvalidCredentials)

		default:
			h.logger.Error("POST /auth/signin - Failed to sign in: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /auth/signin - User signed in: user_id=%s", session.User.ID)
	handlers.RespondJSON(w, http.StatusOK, session)
}

// SignOut POST /api/v1/auth/signout
func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	if err := h.service.SignOut(r.Context(), identity); err != nil {
		h.logger.Error("POST /auth/signout - Failed to sign out: user_id=%s, error=%v", identity.UserID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /auth/signout - User signed out: user_id=%s", identity.UserID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

// Me GET /api/v1/auth/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	profile, err := h.service.Me(r.Context(), identity)
	if err != nil {
		h.respondProfileError(w, "GET /auth/me", identity.UserID, err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, profile)
}

// UpdateProfile PATCH /api/v1/auth/me
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	var req models.UpdateProfileRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /auth/me - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	profile, err := h.service.UpdateProfile(r.Context(), identity, &req)
	if err != nil {
		h.respondProfileError(w, "PATCH /auth/me", identity.UserID, err)
		return
	}

	h.logger.Info("PATCH /auth/me - Profile updated: user_id=%s", identity.UserID)
	handlers.RespondJSON(w, http.StatusOK, profile)
}

func (h *Handler) respondProfileError(w http.ResponseWriter, op, userID string, err error) {
	switch {
	case errors.Is(err, auth.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidProfile)

	case errors.Is(err, auth.ErrUserNotFound):
		h.logger.Warn("%s - User not found: user_id=%s", op, userID)
		handlers.RespondNotFound(w, msgUserNotFound)

	default:
		h.logger.Error("%s - Failed: user_id=%s, error=%v", op, userID, err)
		handlers.RespondInternalError(w)
	}
}
