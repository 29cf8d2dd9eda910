package engine

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/leadai/readiness/internal/domain"
)

// emailPattern accepts local@domain.tld with no whitespace and a single @.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ExtractDomain validates the business email and returns the part after @.
func ExtractDomain(email string) (string, error) {
	if email == "" {
		return "", fmt.Errorf("engine.ExtractDomain: empty email: %w", domain.ErrValidation)
	}
	if !emailPattern.MatchString(email) {
		return "", fmt.Errorf("engine.ExtractDomain: malformed email %q: %w", email, domain.ErrValidation)
	}

	_, dom, _ := strings.Cut(email, "@")
	return dom, nil
}
