package service

import (
	"context"

	"github.com/dengue-surveillance-api/internal/auth"
	"github.com/dengue-surveillance-api/internal/customerrors"
	"github.com/dengue-surveillance-api/internal/models"
	"github.com/dengue-surveillance-api/internal/repository"
	"github.com/dengue-surveillance-api/internal/validation"
	"github.com/rs/zerolog"
)

// authService implements AuthService
type authService struct {
	users      repository.UserRepository
	tokens     *auth.TokenManager
	bcryptCost int
	log        zerolog.Logger
}

func newAuthService(users repository.UserRepository, tokens *auth.TokenManager, bcryptCost int, log zerolog.Logger) *authService {
	return &authService{
		users:      users,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		log:        log.With().Str("service", "auth").Logger(),
	}
}

// Login verifies credentials and issues a bearer token. Unknown email,
// inactive account and password mismatch all return the same generic error
// so callers cannot enumerate users.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResult, error) {
	if fieldErrs := validation.ValidateLogin(req); len(fieldErrs) > 0 {
		return nil, customerrors.NewValidation(fieldErrs)
	}

	user, err := s.users.GetActiveByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to look up user")
		return nil, err
	}
	if user == nil || !auth.CheckPassword(req.Password, user.PasswordHash) {
		return nil, customerrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to issue token")
		return nil, err
	}

	s.log.Info().Int64("user_id", user.ID).Str("role", string(user.Role)).Msg("User logged in")

	return &models.LoginResult{Token: token, User: user.Summary()}, nil
}

// Register creates a new account. The caller must already be an
// authenticated admin; the route enforces that before this runs.
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.UserSummary, error) {
	if fieldErrs := validation.ValidateRegister(req); len(fieldErrs) > 0 {
		return nil, customerrors.NewValidation(fieldErrs)
	}

	hash, err := auth.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to hash password")
		return nil, err
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
		Active:       true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, customerrors.ErrEmailAlreadyExists
		}
		s.log.Error().Err(err).Msg("Failed to create user")
		return nil, err
	}

	s.log.Info().Int64("user_id", user.ID).Str("role", string(user.Role)).Msg("User registered")

	return user.Summary(), nil
}

// Verify decodes a token, checking signature and expiry only
func (s *authService) Verify(token string) (*auth.Claims, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, customerrors.ErrInvalidToken
	}
	return claims, nil
}

// EnsureDefaultUsers seeds the default admin and operator accounts.
// Idempotent: existing emails are left untouched.
func (s *authService) EnsureDefaultUsers(ctx context.Context) error {
	defaults := []struct {
		name     string
		email    string
		password string
		role     models.Role
	}{
		{"Administrador", "admin@dengue.local", "admin123", models.RoleAdmin},
		{"Operador", "operador@dengue.local", "operador123", models.RoleOperator},
	}

	for _, d := range defaults {
		hash, err := auth.HashPassword(d.password, s.bcryptCost)
		if err != nil {
			return err
		}
		user := &models.User{Name: d.name, Email: d.email, PasswordHash: hash, Role: d.role}
		if err := s.users.EnsureSeed(ctx, user); err != nil {
			return err
		}
		s.log.Info().Str("email", d.email).Str("role", string(d.role)).Msg("Default user ensured")
	}
	return nil
}
