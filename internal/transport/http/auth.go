package http

import (
	"errors"
	"net/http"
	"strings"
)

// ErrUnauthenticated is returned when no user identity can be resolved
// from a request.
var ErrUnauthenticated = errors.New("unauthenticated")

// UserResolver extracts the authenticated user id from a request. Identity
// is owned by an external provider; this service only consumes the result.
type UserResolver interface {
	Resolve(r *http.Request) (string, error)
}

// HeaderUserResolver trusts a gateway-populated identity header. The
// upstream proxy is expected to have verified the credential.
type HeaderUserResolver struct {
	Header string
}

func NewHeaderUserResolver() *HeaderUserResolver {
	return &HeaderUserResolver{Header: "X-User-ID"}
}

func (h *HeaderUserResolver) Resolve(r *http.Request) (string, error) {
	userID := strings.TrimSpace(r.Header.Get(h.Header))
	if userID == "" {
		return "", ErrUnauthenticated
	}
	return userID, nil
}
