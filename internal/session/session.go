package session

import (
	"context"
	"net/http"
)

type Role string

const (
	RoleHR        Role = "hr"
	RoleRecruiter Role = "recruiter"
	RoleCandidate Role = "candidate"
)

const (
	HeaderUserID = "X-Session-User"
	HeaderName   = "X-Session-Name"
	HeaderRole   = "X-Session-Role"
)

// Session identifies who performs a request. It is always passed explicitly,
// either on the client or through a request context.
type Session struct {
	UserID string
	Name   string
	Role   Role
}

func (s Session) IsStaff() bool {
	return s.Role == RoleHR || s.Role == RoleRecruiter
}

func (s Session) IsZero() bool {
	return s == Session{}
}

// Apply writes the session into request headers.
func (s Session) Apply(h http.Header) {
	if s.IsZero() {
		return
	}
	h.Set(HeaderUserID, s.UserID)
	h.Set(HeaderName, s.Name)
	h.Set(HeaderRole, string(s.Role))
}

func FromHeader(h http.Header) Session {
	role := Role(h.Get(HeaderRole))
	switch role {
	case RoleHR, RoleRecruiter, RoleCandidate:
	default:
		role = ""
	}
	return Session{UserID: h.Get(HeaderUserID), Name: h.Get(HeaderName), Role: role}
}

type contextKey struct{}

func WithContext(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(contextKey{}).(Session)
	return s, ok
}
