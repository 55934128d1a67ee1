package workspace

import (
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"vaultspace/internal/config"
	"vaultspace/internal/domain"
	"vaultspace/internal/domain/models"
)

// validationError wraps an ozzo error as domain.ErrValidation
func validationError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", domain.ErrValidation, err)
}

func validateName(name string) error {
	return validation.Validate(name,
		validation.Required,
		validation.RuneLength(1, config.MaxNameLength),
	)
}

// parseRole normalizes and validates a requested role
func parseRole(raw string) (models.Role, error) {
	role, err := models.ParseRole(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return role, nil
}

// validateTags applies the per-tag and count limits
func validateTags(tags []string) error {
	if len(tags) > config.MaxTags {
		return fmt.Errorf("at most %d tags allowed", config.MaxTags)
	}
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if strings.Contains(t, models.TagSeparator) {
			return fmt.Errorf("tag %q must not contain %q", t, models.TagSeparator)
		}
		if len([]rune(t)) > config.MaxTagLength {
			return fmt.Errorf("tag %q exceeds %d characters", t, config.MaxTagLength)
		}
	}
	return nil
}

func validateFilename(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("filename is required")
	}
	if len([]rune(name)) > config.MaxFilenameLength {
		return fmt.Errorf("filename exceeds %d characters", config.MaxFilenameLength)
	}
	return nil
}

func validateDescription(desc *string) error {
	if desc != nil && len([]rune(*desc)) > config.MaxDescriptionLength {
		return fmt.Errorf("description exceeds %d characters", config.MaxDescriptionLength)
	}
	return nil
}
