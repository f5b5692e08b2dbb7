package auth

import "errors"

// Domain errors returned by the auth service. Handlers translate these into
// HTTP status codes; anything not in this list is treated as an internal
// failure.
var (
	ErrEmailTaken          = errors.New("email already registered")
	ErrPhoneTaken          = errors.New("phone number already registered")
	ErrUsernameTaken       = errors.New("username already taken")
	ErrIdentityRequired    = errors.New("either email or phone must be provided")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidOTP          = errors.New("invalid or expired otp")
	ErrInvalidToken        = errors.New("invalid token")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrNotificationFailed  = errors.New("failed to send otp")
)
