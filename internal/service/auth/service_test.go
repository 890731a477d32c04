package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/StudioBookingService/internal/domain"
	"github.com/m04kA/StudioBookingService/internal/infra/cache"
	"github.com/m04kA/StudioBookingService/internal/infra/storage/storagetest"
	userRepo "github.com/m04kA/StudioBookingService/internal/infra/storage/user"
	"github.com/m04kA/StudioBookingService/internal/service/auth/models"
	"github.com/m04kA/StudioBookingService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

const secret = "test-secret"

func newService(t *testing.T) *Service {
	db := storagetest.NewSQLite(t)
	repo := userRepo.NewRepository(db, storagetest.Builder())
	tokens := NewTokenManager(secret, time.Hour)
	return NewService(repo, tokens, cache.NewMemoryDenylist(), nopLogger{}, Options{
		BcryptCost:  bcrypt.MinCost,
		AdminEmails: []string{"Owner@Studio.example"},
	})
}

func TestSignUpAndSignIn(t *testing.T) {
	ctx := context.Background()
	s := newService(t)

	session, err := s.SignUp(ctx, &models.SignUpRequest{
		Email:    " Jane@Example.com ",
		Password: "secret1",
		FullName: "Jane Wanjiku",
		Phone:    "0712345678",
	})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", session.TokenType)
	assert.NotEmpty(t, session.AccessToken)
	assert.Equal(t, "jane@example.com", session.User.Email)
	assert.Equal(t, "Jane Wanjiku", session.User.DisplayName)
	assert.Equal(t, "customer", session.User.Role)

	_, err = s.SignUp(ctx, &models.SignUpRequest{Email: "jane@example.com", Password: "another1"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	signedIn, err := s.SignIn(ctx, &models.SignInRequest{Email: "JANE@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, signedIn.User.ID)

	_, err = s.SignIn(ctx, &models.SignInRequest{Email: "jane@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.SignIn(ctx, &models.SignInRequest{Email: "nobody@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignUp_Validation(t *testing.T) {
	s := newService(t)

	_, err := s.SignUp(context.Background(), &models.SignUpRequest{Email: "not-an-email", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.SignUp(context.Background(), &models.SignUpRequest{Email: "jane@example.com", Password: "123"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAdminEmailGetsAdminRole(t *testing.T) {
	ctx := context.Background()
	s := newService(t)

	session, err := s.SignUp(ctx, &models.SignUpRequest{Email: "owner@studio.example", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "admin", session.User.Role)

	identity, err := s.Authenticate(ctx, session.AccessToken)
	require.NoError(t, err)
	assert.True(t, identity.IsAdmin())
	assert.Equal(t, "owner@studio.example", identity.Email)
}

func TestAuthenticate_SignOutRevokesToken(t *testing.T) {
	ctx := context.Background()
	s := newService(t)

	session, err := s.SignUp(ctx, &models.SignUpRequest{Email: "jane@example.com", Password: "secret1"})
	require.NoError(t, err)

	identity, err := s.Authenticate(ctx, session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, identity.UserID)
	assert.False(t, identity.IsAdmin())

	require.NoError(t, s.SignOut(ctx, identity))

	_, err = s.Authenticate(ctx, session.AccessToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestAuthenticate_RejectsBadTokens(t *testing.T) {
	ctx := context.Background()
	s := newService(t)

	_, err := s.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"jti": "token-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("other-secret"))
	require.NoError(t, err)
	_, err = s.Authenticate(ctx, foreign)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"jti": "token-1",
	}).SignedString([]byte(secret))
	require.NoError(t, err)
	_, err = s.Authenticate(ctx, noExp)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestTokenManager_Expiry(t *testing.T) {
	tokens := NewTokenManager(secret, 30*time.Minute)
	issuedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	tokens.timeProvider = fixedTime{t: issuedAt}

	raw, identity, err := tokens.Issue(&domain.User{ID: "user-1", Email: "jane@example.com"}, domain.RoleCustomer)
	require.NoError(t, err)
	assert.Equal(t, issuedAt.Add(30*time.Minute), identity.ExpiresAt)

	parsed, err := tokens.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, identity.TokenID, parsed.TokenID)
	assert.Equal(t, domain.RoleCustomer, parsed.Role)
	assert.True(t, identity.ExpiresAt.Equal(parsed.ExpiresAt))

	tokens.timeProvider = fixedTime{t: issuedAt.Add(31 * time.Minute)}
	_, err = tokens.Parse(raw)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestMeAndUpdateProfile(t *testing.T) {
	ctx := context.Background()
	s := newService(t)

	session, err := s.SignUp(ctx, &models.SignUpRequest{Email: "jane@example.com", Password: "secret1"})
	require.NoError(t, err)
	identity, err := s.Authenticate(ctx, session.AccessToken)
	require.NoError(t, err)

	me, err := s.Me(ctx, identity)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", me.DisplayName)
	assert.Nil(t, me.FullName)

	updated, err := s.UpdateProfile(ctx, identity, &models.UpdateProfileRequest{
		FullName: ptr.Ptr(" Jane Wanjiku "),
		Phone:    ptr.Ptr("0712345678"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane Wanjiku", updated.DisplayName)

	me, err = s.Me(ctx, identity)
	require.NoError(t, err)
	require.NotNil(t, me.Phone)
	assert.Equal(t, "0712345678", *me.Phone)

	_, err = s.Me(ctx, &models.Identity{UserID: "missing"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}
