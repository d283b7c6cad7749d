// Package parse provides string parsing utilities for CLI commands.
package parse

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SplitTrim splits a string by separator and trims each part.
// Empty parts are dropped.
func SplitTrim(s, sep string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, sep)
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// Year parses a publication year typed by a user: 1000 up to the current year.
func Year(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("year is required")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid year %q: must be a whole number", s)
	}
	if n < 1000 {
		return 0, fmt.Errorf("invalid year %d: must be 1000 or later", n)
	}
	if now := time.Now().Year(); n > now {
		return 0, fmt.Errorf("invalid year %d: must not be after %d", n, now)
	}
	return n, nil
}

// Required rejects blank input for the named field.
func Required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}
