package auth_session

import (
	"context"

	"github.com/m04kA/StudioBookingService/internal/service/auth/models"
)

type AuthService interface {
	SignUp(ctx context.Context, req *models.SignUpRequest) (*models.SessionResponse, error)
	SignIn(ctx context.Context, req *models.SignInRequest) (*models.SessionResponse, error)
	SignOut(ctx context.Context, identity *models.Identity) error
	Me(ctx context.Context, identity *models.Identity) (*models.ProfileResponse, error)
	UpdateProfile(ctx context.Context, identity *models.Identity, req *models.UpdateProfileRequest) (*models.ProfileResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
