package auth

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// RoleResolver looks up the role of an authenticated user. The token only
// carries the subject id; the role always comes from the current user record
// so role changes take effect without reissuing tokens.
type RoleResolver interface {
	ResolveRole(ctx context.Context, userID int64) (string, error)
}

// RoleResolverFunc adapts a function to the RoleResolver interface.
type RoleResolverFunc func(ctx context.Context, userID int64) (string, error)

func (f RoleResolverFunc) ResolveRole(ctx context.Context, userID int64) (string, error) {
	return f(ctx, userID)
}

type bearerClaims struct {
	jwt.RegisteredClaims
	TokenType string `json:"type"`
}

// Middleware authenticates requests from an HS256 bearer token.
type Middleware struct {
	secret   []byte
	resolver RoleResolver
}

func NewMiddleware(secret []byte, resolver RoleResolver) *Middleware {
	return &Middleware{secret: secret, resolver: resolver}
}

// Authenticate parses the Authorization header when present and stores the
// resulting Principal on the request context. Requests without a header pass
// through unauthenticated; a malformed or invalid token is rejected with 401.
// Access control is enforced separately by RequireAuth / RequireRole.
func (m *Middleware) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return next(c)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization format")
			}

			claims := &bearerClaims{}
			token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
				return m.secret, nil
			}, jwt.WithValidMethods([]string{"HS256"}))
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			// Only access tokens grant API access; a refresh token in the
			// Authorization header is rejected.
			if claims.TokenType != "access" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			userID, err := strconv.ParseInt(claims.Subject, 10, 64)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			ctx := c.Request().Context()
			role, err := m.resolver.ResolveRole(ctx, userID)
			if err != nil {
				// Subject no longer exists (or lookup failed): the token does
				// not identify a live user.
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			ctx = ContextWithPrincipal(ctx, &Principal{UserID: userID, Role: role})
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// RequireAuth rejects unauthenticated requests with 401.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if PrincipalFromContext(c.Request().Context()) == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}
			return next(c)
		}
	}
}

// RequireRole returns middleware that checks if the user has at least one of
// the specified roles. Admins always pass.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p := PrincipalFromContext(c.Request().Context())
			if p == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}
			if p.Role == "admin" {
				return next(c)
			}
			for _, required := range roles {
				if p.Role == required {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden,
				fmt.Sprintf("required role: %s", strings.Join(roles, " or ")))
		}
	}
}
