// Package identity carries the authenticated caller through request contexts.
package identity

import "context"

type contextKey string

const (
	// ProfileIDKey is the context key for the caller's profile ID
	ProfileIDKey contextKey = "profile_id"
	// RoleKey is the context key for the caller's role
	RoleKey contextKey = "role"
)

const (
	RoleStudent  = "student"
	RoleEmployer = "employer"
)

// Caller is the authenticated profile behind a request.
type Caller struct {
	ProfileID int
	Role      string
}

func (c Caller) IsStudent() bool  { return c.Role == RoleStudent }
func (c Caller) IsEmployer() bool { return c.Role == RoleEmployer }

func WithCaller(ctx context.Context, c Caller) context.Context {
	ctx = context.WithValue(ctx, ProfileIDKey, c.ProfileID)
	return context.WithValue(ctx, RoleKey, c.Role)
}

// FromContext returns the caller stored by the auth middleware.
func FromContext(ctx context.Context) (Caller, bool) {
	id, ok := ctx.Value(ProfileIDKey).(int)
	if !ok || id <= 0 {
		return Caller{}, false
	}
	role, _ := ctx.Value(RoleKey).(string)
	return Caller{ProfileID: id, Role: role}, true
}
