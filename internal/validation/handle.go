package validation

import (
	"errors"
	"strings"
)

// ValidateHandle validates a contributor handle
func ValidateHandle(handle string) error {
	trimmed := strings.TrimSpace(handle)

	if trimmed == "" {
		return errors.New("handle is required")
	}

	if len(trimmed) > 50 {
		return errors.New("handle is too long (max 50 characters)")
	}

	for _, r := range trimmed {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_' || r == '-' || r == '.' {
			continue
		}
		return errors.New("handle may only contain letters, digits, '_', '-' and '.'")
	}

	return nil
}
