package helpers

import (
	"errors"
	"fmt"
	"unicode"
)

const (
	maxUsernameLength = 64
	maxKeyNameLength  = 255
)

// ValidateUsername checks that a username is non-empty, within length
// limits and printable
func ValidateUsername(username string) error {
	if username == "" {
		return errors.New("username cannot be empty")
	}
	if len(username) > maxUsernameLength {
		return fmt.Errorf("username cannot exceed %d characters", maxUsernameLength)
	}
	for _, r := range username {
		if unicode.IsSpace(r) || !unicode.IsPrint(r) {
			return errors.New("username cannot contain whitespace or control characters")
		}
	}
	return nil
}

// ValidateKeyName checks that a key registry name is usable
func ValidateKeyName(name string) error {
	if name == "" {
		return errors.New("key name cannot be empty")
	}
	if len(name) > maxKeyNameLength {
		return fmt.Errorf("key name cannot exceed %d characters", maxKeyNameLength)
	}
	for _, r := range name {
		if !unicode.IsPrint(r) {
			return errors.New("key name cannot contain control characters")
		}
	}
	return nil
}
