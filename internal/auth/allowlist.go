package auth

import (
	"strings"
)

// Allowlist is the static admin allow-list. The authorization decision
// is an explicit capability check injected into services, never an
// env-var comparison buried in a handler.
type Allowlist struct {
	emails map[string]struct{}
}

// NewAllowlist builds an allow-list from configured admin emails
func NewAllowlist(emails []string) *Allowlist {
	set := make(map[string]struct{}, len(emails))
	for _, e := range emails {
		set[strings.ToLower(strings.TrimSpace(e))] = struct{}{}
	}
	return &Allowlist{emails: set}
}

// IsAdmin reports whether the email may perform privileged actions
func (a *Allowlist) IsAdmin(email string) bool {
	if email == "" {
		return false
	}
	_, ok := a.emails[strings.ToLower(email)]
	return ok
}
