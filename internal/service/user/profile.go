package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"vaultspace/internal/config"
	"vaultspace/internal/domain"
	"vaultspace/internal/domain/models"
	"vaultspace/internal/domain/repositories"
	"vaultspace/internal/domain/services"
)

const dateLayout = "2006-01-02"

// profileService implements the UserService interface
type profileService struct {
	userRepo repositories.UserRepository
	logger   *slog.Logger
}

// NewProfileService creates a new profile service
func NewProfileService(userRepo repositories.UserRepository, logger *slog.Logger) services.UserService {
	return &profileService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// GetMe returns the caller's profile with their most recent memberships
func (s *profileService) GetMe(ctx context.Context, userID int64) (*models.UserProfile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	recent, err := s.userRepo.RecentWorkspaces(ctx, userID, config.RecentWorkspaceCount)
	if err != nil {
		return nil, err
	}
	if recent == nil {
		recent = []models.RecentWorkspace{}
	}
	return &models.UserProfile{User: *user, RecentWorkspaces: recent}, nil
}

// UpdateMe applies a partial profile update. Empty strings clear optional fields.
func (s *profileService) UpdateMe(ctx context.Context, userID int64, req *services.UpdateProfileRequest) (*models.UserProfile, error) {
	if err := validateProfile(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		if username != user.Username {
			if _, err := s.userRepo.GetByUsername(ctx, username); err == nil {
				return nil, &domain.ConflictError{Message: "username already taken", ResourceType: "user"}
			} else if !errors.Is(err, domain.ErrNotFound) {
				return nil, err
			}
			user.Username = username
		}
	}
	if req.FirstName != nil {
		user.FirstName = optionalString(*req.FirstName)
	}
	if req.LastName != nil {
		user.LastName = optionalString(*req.LastName)
	}
	if req.AvatarURL != nil {
		user.AvatarURL = optionalString(*req.AvatarURL)
	}
	if req.Bio != nil {
		user.Bio = optionalString(*req.Bio)
	}
	if req.DateOfBirth != nil {
		dob, err := parseDate(*req.DateOfBirth)
		if err != nil {
			return nil, err
		}
		user.DateOfBirth = dob
	}

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("profile updated", "user_id", userID)
	return s.GetMe(ctx, userID)
}

func validateProfile(req *services.UpdateProfileRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Username, validation.NilOrNotEmpty,
			validation.By(trimmedLength(config.MinUsernameLength, config.MaxUsernameLength))),
		validation.Field(&req.FirstName, validation.RuneLength(0, config.MaxNameLength)),
		validation.Field(&req.LastName, validation.RuneLength(0, config.MaxNameLength)),
		validation.Field(&req.AvatarURL, is.URL),
		validation.Field(&req.Bio, validation.RuneLength(0, config.MaxBioLength)),
	)
}

// trimmedLength checks the rune length of a *string after trimming space
func trimmedLength(minLen, maxLen int) validation.RuleFunc {
	return func(value interface{}) error {
		s, ok := value.(*string)
		if !ok || s == nil {
			return nil
		}
		n := len([]rune(strings.TrimSpace(*s)))
		if n < minLen || n > maxLen {
			return fmt.Errorf("the length must be between %d and %d", minLen, maxLen)
		}
		return nil
	}
}

// parseDate accepts YYYY-MM-DD; an empty string clears the date
func parseDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: date_of_birth must be YYYY-MM-DD", domain.ErrValidation)
	}
	if t.After(time.Now()) {
		return nil, fmt.Errorf("%w: date_of_birth is in the future", domain.ErrValidation)
	}
	return &t, nil
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
