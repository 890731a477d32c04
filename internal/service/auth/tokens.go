package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/m04kA/StudioBookingService/internal/domain"
	"github.com/m04kA/StudioBookingService/internal/service/auth/models"
)

// TokenManager выпускает и проверяет HS256 access-токены
type TokenManager struct {
	secret       []byte
	ttl          time.Duration
	timeProvider TimeProvider
}

// NewTokenManager создает менеджер токенов
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret:       []byte(secret),
		ttl:          ttl,
		timeProvider: &RealTimeProvider{},
	}
}

// Issue подписывает токен для пользователя с указанной ролью
func (m *TokenManager) Issue(user *domain.User, role domain.Role) (string, *models.Identity, error) {
	now := m.timeProvider.Now().UTC()
	identity := &models.Identity{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      role,
		TokenID:   uuid.NewString(),
		ExpiresAt: now.Add(m.ttl).Truncate(time.Second),
	}

	claims := jwt.MapClaims{
		"sub":   identity.UserID,
		"email": identity.Email,
		"role":  string(identity.Role),
		"jti":   identity.TokenID,
		"exp":   identity.ExpiresAt.Unix(),
		"iat":   now.Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return signed, identity, nil
}

// Parse проверяет подпись и срок токена
func (m *TokenManager) Parse(raw string) (*models.Identity, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.timeProvider.Now),
	)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected claims type", ErrUnauthenticated)
	}

	identity := &models.Identity{
		UserID:  stringClaim(claims, "sub"),
		Email:   stringClaim(claims, "email"),
		Role:    domain.Role(stringClaim(claims, "role")),
		TokenID: stringClaim(claims, "jti"),
	}
	if identity.UserID == "" || identity.TokenID == "" {
		return nil, fmt.Errorf("%w: token without subject", ErrUnauthenticated)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, fmt.Errorf("%w: missing expiration", ErrUnauthenticated)
	}
	identity.ExpiresAt = exp.Time

	return identity, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	v, _ := claims[key].(string)
	return v
}
