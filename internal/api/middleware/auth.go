package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/StudioBookingService/internal/api/handlers"
	"github.com/m04kA/StudioBookingService/internal/service/auth"
	authModels "github.com/m04kA/StudioBookingService/internal/service/auth/models"
	bookingModels "github.com/m04kA/StudioBookingService/internal/service/bookings/models"
)

const (
	msgMissingToken = "требуется авторизация"
	msgInvalidToken = "сессия недействительна, войдите снова"
	msgAdminOnly    = "доступ только для администратора"
)

type identityKey struct{}

// WithIdentity кладёт данные сессии в контекст
func WithIdentity(ctx context.Context, identity *authModels.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// GetIdentity извлекает данные сессии из контекста
func GetIdentity(ctx context.Context) (*authModels.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(*authModels.Identity)
	return identity, ok && identity != nil
}

// GetRequester данные сессии в виде, нужном сервисам бронирований
func GetRequester(ctx context.Context) (bookingModels.Requester, bool) {
	identity, ok := GetIdentity(ctx)
	if !ok {
		return bookingModels.Requester{}, false
	}
	return bookingModels.Requester{
		UserID:  identity.UserID,
		Email:   identity.Email,
		IsAdmin: identity.IsAdmin(),
	}, true
}

// Auth требует заголовок Authorization: Bearer <token>
func Auth(authenticator Authenticator, logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			identity, err := authenticator.Authenticate(r.Context(), raw)
			if err != nil {
				if !errors.Is(err, auth.ErrUnauthenticated) && !errors.Is(err, auth.ErrTokenRevoked) {
					logger.Error("Auth: %s %s - failed to authenticate: %v", r.Method, r.URL.Path, err)
				}
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

// RequireAdmin пропускает только администраторов. Ставится после Auth.
func RequireAdmin(logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := GetIdentity(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}
			if !identity.IsAdmin() {
				logger.Warn("RequireAdmin: %s %s - user %s is not admin", r.Method, r.URL.Path, identity.UserID)
				handlers.RespondForbidden(w, msgAdminOnly)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
