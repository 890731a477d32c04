package auth_session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/StudioBookingService/internal/api/middleware"
	"github.com/m04kA/StudioBookingService/internal/domain"
	"github.com/m04kA/StudioBookingService/internal/service/auth"
	"github.com/m04kA/StudioBookingService/internal/service/auth/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeAuth struct {
	err error

	signUp     *models.SignUpRequest
	signIn     *models.SignInRequest
	signedOut  *models.Identity
	profileReq *models.UpdateProfileRequest
}

func session(email string) *models.SessionResponse {
	return &models.SessionResponse{
		AccessToken: "jwt",
		TokenType:   "Bearer",
		User:        models.ProfileResponse{ID: "u-1", Email: email, Role: string(domain.RoleCustomer)},
	}
}

func (f *fakeAuth) SignUp(_ context.Context, req *models.SignUpRequest) (*models.SessionResponse, error) {
	f.signUp = req
	if f.err != nil {
		return nil, f.err
	}
	return session(req.Email), nil
}

func (f *fakeAuth) SignIn(_ context.Context, req *models.SignInRequest) (*models.SessionResponse, error) {
	f.signIn = req
	if f.err != nil {
		return nil, f.err
	}
	return session(req.Email), nil
}

func (f *fakeAuth) SignOut(_ context.Context, identity *models.Identity) error {
	f.signedOut = identity
	return f.err
}

func (f *fakeAuth) Me(_ context.Context, identity *models.Identity) (*models.ProfileResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.ProfileResponse{ID: identity.UserID, Email: identity.Email, DisplayName: "Amina"}, nil
}

func (f *fakeAuth) UpdateProfile(_ context.Context, identity *models.Identity, req *models.UpdateProfileRequest) (*models.ProfileResponse, error) {
	f.profileReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.ProfileResponse{ID: identity.UserID, FullName: req.FullName}, nil
}

func signedIn(req *http.Request) *http.Request {
	return req.WithContext(middleware.WithIdentity(req.Context(), &models.Identity{
		UserID:  "u-1",
		Email:   "amina@example.com",
		Role:    domain.RoleCustomer,
		TokenID: "t-1",
	}))
}

func TestSignUp(t *testing.T) {
	svc := &fakeAuth{}
	rec := httptest.NewRecorder()

	body := `{"email":"amina@example.com","password":"secret1","fullName":"Amina Otieno"}`
	NewHandler(svc, nopLogger{}).SignUp(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Amina Otieno", svc.signUp.FullName)

	var resp models.SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "jwt", resp.AccessToken)
	assert.Equal(t, "amina@example.com", resp.User.Email)
}

func TestSignUp_ErrorMapping(t *testing.T) {
	tests := map[error]int{
		auth.ErrInvalidInput: http.StatusBadRequest,
		auth.ErrEmailTaken:   http.StatusConflict,
		auth.ErrInternal:     http.StatusInternalServerError,
	}
	for err, want := range tests {
		t.Run(err.Error(), func(t *testing.T) {
			svc := &fakeAuth{err: fmt.Errorf("%w: SignUp - step: x", err)}
			rec := httptest.NewRecorder()

			NewHandler(svc, nopLogger{}).SignUp(rec, httptest.NewRequest(http.MethodPost, "/",
				strings.NewReader(`{"email":"amina@example.com","password":"secret1"}`)))

			assert.Equal(t, want, rec.Code)
		})
	}
}

func TestSignIn(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		svc := &fakeAuth{}
		rec := httptest.NewRecorder()

		NewHandler(svc, nopLogger{}).SignIn(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/signin",
			strings.NewReader(`{"email":"amina@example.com","password":"secret1"}`)))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "secret1", svc.signIn.Password)
	})

	t.Run("invalid body", func(t *testing.T) {
		svc := &fakeAuth{}
		rec := httptest.NewRecorder()

		NewHandler(svc, nopLogger{}).SignIn(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("email=a")))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Nil(t, svc.signIn)
	})

	tests := map[error]int{
		auth.ErrInvalidInput:       http.StatusBadRequest,
		auth.ErrInvalidCredentials: http.StatusUnauthorized,
		auth.ErrInternal:           http.StatusInternalServerError,
	}
	for err, want := range tests {
		t.Run(err.Error(), func(t *testing.T) {
			svc := &fakeAuth{err: fmt.Errorf("%w: SignIn - step: x", err)}
			rec := httptest.NewRecorder()

			NewHandler(svc, nopLogger{}).SignIn(rec, httptest.NewRequest(http.MethodPost, "/",
				strings.NewReader(`{"email":"amina@example.com","password":"wrong"}`)))

			assert.Equal(t, want, rec.Code)
		})
	}
}

func TestSignOut(t *testing.T) {
	t.Run("revokes current token", func(t *testing.T) {
		svc := &fakeAuth{}
		rec := httptest.NewRecorder()

		NewHandler(svc, nopLogger{}).SignOut(rec, signedIn(httptest.NewRequest(http.MethodPost, "/api/v1/auth/signout", nil)))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		require.NotNil(t, svc.signedOut)
		assert.Equal(t, "t-1", svc.signedOut.TokenID)
	})

	t.Run("missing session", func(t *testing.T) {
		svc := &fakeAuth{}
		rec := httptest.NewRecorder()

		NewHandler(svc, nopLogger{}).SignOut(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/signout", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Nil(t, svc.signedOut)
	})

	t.Run("denylist failure", func(t *testing.T) {
		rec := httptest.NewRecorder()

		NewHandler(&fakeAuth{err: auth.ErrInternal}, nopLogger{}).SignOut(rec,
			signedIn(httptest.NewRequest(http.MethodPost, "/", nil)))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestMe(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(&fakeAuth{}, nopLogger{}).Me(rec, signedIn(httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)))

	require.Equal(t, http.StatusOK, rec.Code)
	var profile models.ProfileResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	assert.Equal(t, "u-1", profile.ID)
	assert.Equal(t, "Amina", profile.DisplayName)

	rec = httptest.NewRecorder()
	NewHandler(&fakeAuth{}, nopLogger{}).Me(rec, httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	NewHandler(&fakeAuth{err: auth.ErrUserNotFound}, nopLogger{}).Me(rec,
		signedIn(httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateProfile(t *testing.T) {
	svc := &fakeAuth{}
	rec := httptest.NewRecorder()

	NewHandler(svc, nopLogger{}).UpdateProfile(rec, signedIn(httptest.NewRequest(http.MethodPatch, "/api/v1/auth/me",
		strings.NewReader(`{"fullName":"Amina W. Otieno"}`))))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.profileReq.FullName)
	assert.Equal(t, "Amina W. Otieno", *svc.profileReq.FullName)
	assert.Nil(t, svc.profileReq.Phone)

	tests := map[error]int{
		auth.ErrInvalidInput: http.StatusBadRequest,
		auth.ErrUserNotFound: http.StatusNotFound,
		auth.ErrInternal:     http.StatusInternalServerError,
	}
	for err, want := range tests {
		t.Run(err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewHandler(&fakeAuth{err: err}, nopLogger{}).UpdateProfile(rec,
				signedIn(httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(`{"phone":"0712"}`))))

			assert.Equal(t, want, rec.Code)
		})
	}
}
