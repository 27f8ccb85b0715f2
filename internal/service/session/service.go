package session

import (
	"strings"

	"github.com/google/uuid"
)

// Service hands every cart request exactly one stable token. Tokens are
// opaque correlation ids, independent of any login state; an incoming
// token is trusted as-is, never verified.
type Service struct{}

func New() *Service {
	return &Service{}
}

// Resolve returns the incoming token unchanged when present, otherwise a
// fresh UUID. created reports whether a new token was generated so the
// transport layer knows to echo it back to the client.
func (s *Service) Resolve(incoming string) (token string, created bool) {
	if t := strings.TrimSpace(incoming); t != "" {
		return t, false
	}
	return uuid.NewString(), true
}
