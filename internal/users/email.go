package users

import (
	"errors"
	"strings"
)

// ErrInvalidEmail is returned before any store access for a malformed address.
var ErrInvalidEmail = errors.New("Error: invalid email address")

// ValidateEmail accepts <local>@<domain> where local is non-empty and domain
// contains a "." followed by a non-empty suffix. It is deliberately not RFC 5322.
func ValidateEmail(email string) error {
	if strings.Count(email, "@") != 1 {
		return ErrInvalidEmail
	}
	local, domain, _ := strings.Cut(email, "@")
	if local == "" {
		return ErrInvalidEmail
	}
	dot := strings.LastIndex(domain, ".")
	if dot < 0 || dot == len(domain)-1 {
		return ErrInvalidEmail
	}
	return nil
}

// maskEmail keeps the first character of the local part and the domain, for logs.
func maskEmail(email string) string {
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" {
		return "***"
	}
	return local[:1] + "***@" + domain
}
