package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	authn "vaultspace/internal/auth"
	"vaultspace/internal/config"
	"vaultspace/internal/domain"
	"vaultspace/internal/domain/models"
	"vaultspace/internal/domain/repositories"
	"vaultspace/internal/domain/services"
)

// accountService implements the AccountService interface
type accountService struct {
	userRepo repositories.UserRepository
	hasher   authn.PasswordHasher
	issuer   authn.TokenIssuer
	verifier authn.TokenVerifier
	logger   *slog.Logger
}

// NewAccountService creates a new account service. issuer may be nil when
// tokens come from an external identity provider; Login is then unavailable.
func NewAccountService(
	userRepo repositories.UserRepository,
	hasher authn.PasswordHasher,
	issuer authn.TokenIssuer,
	verifier authn.TokenVerifier,
	logger *slog.Logger,
) services.AccountService {
	return &accountService{
		userRepo: userRepo,
		hasher:   hasher,
		issuer:   issuer,
		verifier: verifier,
		logger:   logger,
	}
}

// Register creates an account with a hashed password
func (s *accountService) Register(ctx context.Context, req *services.RegisterRequest) (*models.User, error) {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.Username = strings.TrimSpace(req.Username)

	if err := validation.ValidateStruct(req,
		validation.Field(&req.Email, validation.Required, is.EmailFormat),
		validation.Field(&req.Username, validation.Required,
			validation.Length(config.MinUsernameLength, config.MaxUsernameLength)),
		validation.Field(&req.Password, validation.Required,
			validation.Length(config.MinPasswordLength, config.MaxPasswordLength)),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if _, err := s.userRepo.GetByUsername(ctx, req.Username); err == nil {
		return nil, &domain.ConflictError{Message: "username already registered", ResourceType: "user"}
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if _, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, &domain.ConflictError{Message: "email already registered", ResourceType: "user"}
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: hash,
	}
	// Unique constraints still decide concurrent registrations
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Login checks credentials and issues a bearer token
func (s *accountService) Login(ctx context.Context, req *services.LoginRequest) (*models.AccessToken, error) {
	if s.issuer == nil {
		return nil, fmt.Errorf("%w: local login is disabled", domain.ErrBadRequest)
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", domain.ErrValidation)
	}

	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: incorrect username or password", domain.ErrUnauthorized)
		}
		return nil, err
	}
	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, err
	}

	token, err := s.issuer.IssueToken(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", "user_id", user.ID)
	return &models.AccessToken{AccessToken: token, TokenType: "bearer"}, nil
}

// Authenticate verifies a bearer token and returns the user id it names
func (s *accountService) Authenticate(ctx context.Context, token string) (int64, error) {
	if strings.TrimSpace(token) == "" {
		return 0, fmt.Errorf("%w: missing bearer token", domain.ErrUnauthorized)
	}
	claims, err := s.verifier.VerifyToken(token)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}
