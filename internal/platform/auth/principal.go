package auth

import "context"

type contextKey string

const principalKey contextKey = "principal"

// Principal is the authenticated caller of a request. Role is resolved
// from the user record at authentication time, not carried in the token.
type Principal struct {
	UserID int64
	Role   string
}

// ContextWithPrincipal returns a copy of ctx carrying the principal.
func ContextWithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromContext returns the authenticated principal, or nil when the
// request carried no (valid) bearer token.
func PrincipalFromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalKey).(*Principal)
	return p
}

// UserIDFromContext returns the authenticated user's id, or 0 when
// unauthenticated.
func UserIDFromContext(ctx context.Context) int64 {
	if p := PrincipalFromContext(ctx); p != nil {
		return p.UserID
	}
	return 0
}
