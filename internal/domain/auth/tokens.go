package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token types carried in the "type" claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// TokenPair is what a completed login hands back.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// TokenClaims is the payload of an issued token. Type discriminates access
// from refresh tokens; Verify does not check it, callers do.
type TokenClaims struct {
	jwt.RegisteredClaims
	Type string `json:"type"`
}

// UserID returns the subject as a numeric user id.
func (c *TokenClaims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return id, nil
}

// TokenIssuer mints and verifies HS256-signed JWTs. Tokens are stateless;
// nothing is persisted and revocation is by expiry only.
type TokenIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenIssuer(secret []byte, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: secret, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// IssueAccess mints a short-lived access token for the given user.
func (t *TokenIssuer) IssueAccess(userID int64) (string, error) {
	return t.issue(userID, TokenTypeAccess, t.accessTTL)
}

// IssueRefresh mints a long-lived refresh token for the given user.
func (t *TokenIssuer) IssueRefresh(userID int64) (string, error) {
	return t.issue(userID, TokenTypeRefresh, t.refreshTTL)
}

func (t *TokenIssuer) issue(userID int64, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Type: tokenType,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Verify parses and validates a token string. A bad signature, a wrong
// signing method, a malformed payload, and an expired token all come back as
// the same ErrInvalidToken; callers never learn which check failed.
func (t *TokenIssuer) Verify(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
