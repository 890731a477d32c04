package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/StudioBookingService/internal/domain"
	userRepo "github.com/m04kA/StudioBookingService/internal/infra/storage/user"
	"github.com/m04kA/StudioBookingService/internal/service/auth/models"
)

var validate = validator.New()

// Options настройки аутентификации
type Options struct {
	BcryptCost  int
	AdminEmails []string
}

// Service регистрация, вход, выход и профиль пользователя
type Service struct {
	userRepo    UserRepository
	tokens      *TokenManager
	denylist    Denylist
	bcryptCost  int
	adminEmails map[string]bool
	logger      Logger
}

// NewService создает новый экземпляр сервиса аутентификации
func NewService(
	userRepo UserRepository,
	tokens *TokenManager,
	denylist Denylist,
	logger Logger,
	opts Options,
) *Service {
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	admins := make(map[string]bool, len(opts.AdminEmails))
	for _, email := range opts.AdminEmails {
		admins[normalizeEmail(email)] = true
	}
	return &Service{
		userRepo:    userRepo,
		tokens:      tokens,
		denylist:    denylist,
		bcryptCost:  opts.BcryptCost,
		adminEmails: admins,
		logger:      logger,
	}
}

// SignUp регистрирует клиента и сразу открывает сессию
func (s *Service) SignUp(ctx context.Context, req *models.SignUpRequest) (*models.SessionResponse, error) {
	req.Email = normalizeEmail(req.Email)
	req.FullName = strings.TrimSpace(req.FullName)
	req.Phone = strings.TrimSpace(req.Phone)

	s.logger.Info("SignUp: registering email=%s", req.Email)

	// 1. Валидируем входные данные
	if err := validate.Struct(req); err != nil {
		s.logger.Warn("SignUp: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Хэшируем пароль
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		s.logger.Error("SignUp: failed to hash password: %v", err)
		return nil, fmt.Errorf("%w: SignUp - hash password: %v", ErrInternal, err)
	}

	// 3. Создаем пользователя
	user := &domain.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     optional(req.FullName),
		Phone:        optional(req.Phone),
		Role:         s.roleFor(req.Email, domain.RoleCustomer),
	}
	created, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, userRepo.ErrEmailTaken) {
			s.logger.Warn("SignUp: email=%s already registered", req.Email)
			return nil, ErrEmailTaken
		}
		s.logger.Error("SignUp: repository error: %v", err)
		return nil, fmt.Errorf("%w: SignUp - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SignUp: created user id=%s role=%s", created.ID, created.Role)
	return s.openSession(created)
}

// SignIn проверяет пароль и выдаёт токен
func (s *Service) SignIn(ctx context.Context, req *models.SignInRequest) (*models.SessionResponse, error) {
	req.Email = normalizeEmail(req.Email)

	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("SignIn: unknown email=%s", req.Email)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("SignIn: repository error: %v", err)
		return nil, fmt.Errorf("%w: SignIn - repository error: %v", ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("SignIn: wrong password for email=%s", req.Email)
		return nil, ErrInvalidCredentials
	}

	s.logger.Info("SignIn: user id=%s signed in", user.ID)
	return s.openSession(user)
}

// SignOut отзывает токен до конца его срока
func (s *Service) SignOut(ctx context.Context, identity *models.Identity) error {
	if err := s.denylist.Revoke(ctx, identity.TokenID, identity.ExpiresAt); err != nil {
		s.logger.Error("SignOut: failed to revoke token of user=%s: %v", identity.UserID, err)
		return fmt.Errorf("%w: SignOut - revoke token: %v", ErrInternal, err)
	}
	s.logger.Info("SignOut: user id=%s signed out", identity.UserID)
	return nil
}

// Authenticate проверяет токен из заголовка Authorization
func (s *Service) Authenticate(ctx context.Context, rawToken string) (*models.Identity, error) {
	identity, err := s.tokens.Parse(rawToken)
	if err != nil {
		return nil, err
	}

	revoked, err := s.denylist.IsRevoked(ctx, identity.TokenID)
	if err != nil {
		s.logger.Error("Authenticate: denylist unavailable: %v", err)
		return nil, fmt.Errorf("%w: Authenticate - denylist: %v", ErrInternal, err)
	}
	if revoked {
		return nil, ErrTokenRevoked
	}

	return identity, nil
}

// Me профиль текущего пользователя
func (s *Service) Me(ctx context.Context, identity *models.Identity) (*models.ProfileResponse, error) {
	user, err := s.getUser(ctx, "Me", identity.UserID)
	if err != nil {
		return nil, err
	}
	profile := models.FromDomainUser(user, s.roleFor(user.Email, user.Role))
	return &profile, nil
}

// UpdateProfile меняет имя и телефон
func (s *Service) UpdateProfile(ctx context.Context, identity *models.Identity, req *models.UpdateProfileRequest) (*models.ProfileResponse, error) {
	s.logger.Info("UpdateProfile: user id=%s", identity.UserID)

	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	user, err := s.getUser(ctx, "UpdateProfile", identity.UserID)
	if err != nil {
		return nil, err
	}
	if req.FullName != nil {
		user.FullName = optional(strings.TrimSpace(*req.FullName))
	}
	if req.Phone != nil {
		user.Phone = optional(strings.TrimSpace(*req.Phone))
	}

	if err := s.userRepo.UpdateProfile(ctx, user.ID, user.FullName, user.Phone); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("UpdateProfile: repository error for user id=%s: %v", user.ID, err)
		return nil, fmt.Errorf("%w: UpdateProfile - repository error: %v", ErrInternal, err)
	}

	profile := models.FromDomainUser(user, s.roleFor(user.Email, user.Role))
	return &profile, nil
}

// Вспомогательные методы

func (s *Service) openSession(user *domain.User) (*models.SessionResponse, error) {
	role := s.roleFor(user.Email, user.Role)
	token, identity, err := s.tokens.Issue(user, role)
	if err != nil {
		s.logger.Error("openSession: failed to issue token for user id=%s: %v", user.ID, err)
		return nil, fmt.Errorf("%w: issue token: %v", ErrInternal, err)
	}
	return &models.SessionResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   identity.ExpiresAt.UTC().Format(time.RFC3339),
		User:        models.FromDomainUser(user, role),
	}, nil
}

func (s *Service) getUser(ctx context.Context, op, id string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("%s: user id=%s not found", op, id)
			return nil, ErrUserNotFound
		}
		s.logger.Error("%s: repository error for user id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return user, nil
}

// roleFor адреса из конфигурации всегда получают роль администратора
func (s *Service) roleFor(email string, stored domain.Role) domain.Role {
	if s.adminEmails[normalizeEmail(email)] {
		return domain.RoleAdmin
	}
	if stored == "" {
		return domain.RoleCustomer
	}
	return stored
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
