package auth

import (
	"context"
	"time"
)

// UserRepository stores user accounts. Lookups return ErrUserNotFound when no
// row matches.
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByPhone(ctx context.Context, phone string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	MarkVerified(ctx context.Context, id int64) error
}

// OTPRepository stores one-time codes.
type OTPRepository interface {
	// Create deletes any unused codes for the same (user, purpose) and
	// inserts the new one, so at most one live code exists per purpose.
	Create(ctx context.Context, otp *OTPCode) error
	// Consume atomically marks a matching unexpired, unused code as used.
	// It reports false when nothing matched; used, expired, and wrong codes
	// are indistinguishable. Of N concurrent calls with the same code,
	// exactly one sees true.
	Consume(ctx context.Context, userID int64, code, purpose string) (bool, error)
	// DeleteSpentOTPs removes used codes and codes that expired before the
	// given cutoff, returning how many rows went away.
	DeleteSpentOTPs(ctx context.Context, expiredBefore time.Time) (int64, error)
}
