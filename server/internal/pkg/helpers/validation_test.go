package helpers

import (
	"strings"
	"testing"
)

func TestValidateUsername(t *testing.T) {
	valid := []string{"alice", "bob42", "under_score", "Ünïcode"}
	for _, u := range valid {
		if err := ValidateUsername(u); err != nil {
			t.Errorf("ValidateUsername(%q): unexpected error %v", u, err)
		}
	}

	invalid := []string{"", "has space", "tab\there", "ctrl\x01char", strings.Repeat("a", 65)}
	for _, u := range invalid {
		if err := ValidateUsername(u); err == nil {
			t.Errorf("ValidateUsername(%q): expected error", u)
		}
	}
}

func TestValidateKeyName(t *testing.T) {
	valid := []string{"prod", "staging key", "key-2024"}
	for _, n := range valid {
		if err := ValidateKeyName(n); err != nil {
			t.Errorf("ValidateKeyName(%q): unexpected error %v", n, err)
		}
	}

	invalid := []string{"", "ctrl\x00char", strings.Repeat("a", 256)}
	for _, n := range invalid {
		if err := ValidateKeyName(n); err == nil {
			t.Errorf("ValidateKeyName(%q): expected error", n)
		}
	}
}
