package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/platform/notification"
)

// OTPSender delivers a one-time code out of band. Implemented by
// notification.Dispatcher.
type OTPSender interface {
	Send(ctx context.Context, method, destination, code, purpose string) error
}

// RegisterInput carries a registration request. Empty strings mean the field
// was not provided.
type RegisterInput struct {
	Email    string
	Phone    string
	Username string
	Password string
	FullName string
	Role     string
}

// LoginInput identifies a user by email or phone plus their password.
type LoginInput struct {
	Email    string
	Phone    string
	Password string
}

// Service orchestrates registration, two-step login, and token refresh. It
// holds no per-user state; the OTP row in storage is the whole state machine.
type Service struct {
	users     UserRepository
	otps      OTPRepository
	tokens    *TokenIssuer
	sender    OTPSender
	otpLength int
	otpExpiry time.Duration
	logger    zerolog.Logger
}

func NewService(
	users UserRepository,
	otps OTPRepository,
	tokens *TokenIssuer,
	sender OTPSender,
	otpLength int,
	otpExpiry time.Duration,
	logger zerolog.Logger,
) *Service {
	return &Service{
		users:     users,
		otps:      otps,
		tokens:    tokens,
		sender:    sender,
		otpLength: otpLength,
		otpExpiry: otpExpiry,
		logger:    logger.With().Str("component", "auth").Logger(),
	}
}

// Register creates an unverified account and sends a verification code to the
// supplied email, or to the phone when no email was given. Duplicate identity
// checks run in order email, phone, username; the first hit wins. The account
// stays registered even if code delivery fails, so a failed registration is
// recovered by logging in or resending the code rather than re-registering.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*User, error) {
	if in.Email == "" && in.Phone == "" {
		return nil, ErrIdentityRequired
	}

	if in.Email != "" {
		if err := s.checkAvailable(ctx, s.users.GetByEmail, in.Email, ErrEmailTaken); err != nil {
			return nil, err
		}
	}
	if in.Phone != "" {
		if err := s.checkAvailable(ctx, s.users.GetByPhone, in.Phone, ErrPhoneTaken); err != nil {
			return nil, err
		}
	}
	if in.Username != "" {
		if err := s.checkAvailable(ctx, s.users.GetByUsername, in.Username, ErrUsernameTaken); err != nil {
			return nil, err
		}
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	role := in.Role
	if role == "" {
		role = RoleUser
	}

	u := &User{
		Email:        optional(in.Email),
		Phone:        optional(in.Phone),
		Username:     optional(in.Username),
		PasswordHash: hash,
		FullName:     optional(in.FullName),
		Role:         role,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	purpose := PurposeVerifyPhone
	if in.Email != "" {
		purpose = PurposeVerifyEmail
	}
	if _, err := s.issueOTP(ctx, u, purpose); err != nil {
		return nil, err
	}
	return u, nil
}

// Login checks the password and, when it matches, sends a login code through
// the user's channel. No tokens are issued here; login always completes with
// VerifyOTP. A missing user and a wrong password are indistinguishable.
func (s *Service) Login(ctx context.Context, in LoginInput) (*User, string, error) {
	u, err := s.lookup(ctx, in.Email, in.Phone)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !VerifyPassword(in.Password, u.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}
	method, err := s.issueOTP(ctx, u, PurposeLogin)
	if err != nil {
		return nil, "", err
	}
	return u, method, nil
}

// VerifyOTP consumes a login code and issues the access and refresh tokens.
func (s *Service) VerifyOTP(ctx context.Context, email, phone, code string) (*TokenPair, error) {
	u, err := s.lookup(ctx, email, phone)
	if err != nil {
		return nil, err
	}
	ok, err := s.otps.Consume(ctx, u.ID, code, PurposeLogin)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidOTP
	}

	access, err := s.tokens.IssueAccess(u.ID)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.IssueRefresh(u.ID)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh, TokenType: "bearer"}, nil
}

// VerifyAccount consumes a verification code and marks the account verified.
// The purpose is derived from which identity the request carried, so a code
// mailed for email verification cannot verify a phone number.
func (s *Service) VerifyAccount(ctx context.Context, email, phone, code string) error {
	u, err := s.lookup(ctx, email, phone)
	if err != nil {
		return err
	}
	purpose := PurposeVerifyPhone
	if email != "" {
		purpose = PurposeVerifyEmail
	}
	ok, err := s.otps.Consume(ctx, u.ID, code, purpose)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidOTP
	}
	return s.users.MarkVerified(ctx, u.ID)
}

// Refresh exchanges a valid refresh token for a new access token. The refresh
// token itself is not rotated; it stays valid until its own expiry.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.Verify(refreshToken)
	if err != nil || claims.Type != TokenTypeRefresh {
		return "", ErrInvalidRefreshToken
	}
	id, err := claims.UserID()
	if err != nil {
		return "", ErrInvalidRefreshToken
	}
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return s.tokens.IssueAccess(u.ID)
}

// ResendOTP reissues a login code after re-checking the password. The fresh
// code supersedes any live one, so only the newest code can verify.
func (s *Service) ResendOTP(ctx context.Context, in LoginInput) (string, error) {
	u, err := s.lookup(ctx, in.Email, in.Phone)
	if err != nil {
		return "", err
	}
	if !VerifyPassword(in.Password, u.PasswordHash) {
		return "", ErrInvalidCredentials
	}
	return s.issueOTP(ctx, u, PurposeLogin)
}

// ResolveRole reports the live role of a user for the bearer middleware. The
// role comes from the user row on every request, so role changes and account
// deactivation take effect without waiting for tokens to expire.
func (s *Service) ResolveRole(ctx context.Context, userID int64) (string, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if !u.IsActive {
		return "", fmt.Errorf("user %d is inactive", userID)
	}
	return u.Role, nil
}

// issueOTP generates, stores, and delivers a fresh code, returning the
// delivery method used. Delivery failure surfaces as ErrNotificationFailed;
// the stored code stays behind and is superseded on the next issue.
func (s *Service) issueOTP(ctx context.Context, u *User, purpose string) (string, error) {
	method, destination := deliveryRoute(u)
	code, err := generateCode(s.otpLength)
	if err != nil {
		return "", err
	}
	otp := &OTPCode{
		UserID:    u.ID,
		Code:      code,
		Purpose:   purpose,
		Method:    method,
		ExpiresAt: time.Now().Add(s.otpExpiry),
	}
	if err := s.otps.Create(ctx, otp); err != nil {
		return "", err
	}
	if err := s.sender.Send(ctx, method, destination, code, purpose); err != nil {
		s.logger.Error().Err(err).
			Int64("user_id", u.ID).
			Str("method", method).
			Str("purpose", purpose).
			Msg("otp delivery failed")
		return "", ErrNotificationFailed
	}
	return method, nil
}

// lookup finds a user by whichever identity the request carried, email first.
func (s *Service) lookup(ctx context.Context, email, phone string) (*User, error) {
	switch {
	case email != "":
		return s.users.GetByEmail(ctx, email)
	case phone != "":
		return s.users.GetByPhone(ctx, phone)
	default:
		return nil, ErrIdentityRequired
	}
}

// checkAvailable returns taken when the identity lookup finds an existing
// user, and passes through unexpected repository errors.
func (s *Service) checkAvailable(ctx context.Context, get func(context.Context, string) (*User, error), value string, taken error) error {
	_, err := get(ctx, value)
	if err == nil {
		return taken
	}
	if !errors.Is(err, ErrUserNotFound) {
		return err
	}
	return nil
}

// deliveryRoute picks the channel for a user's codes: email when the account
// has one, SMS otherwise.
func deliveryRoute(u *User) (method, destination string) {
	if u.Email != nil {
		return notification.MethodEmail, *u.Email
	}
	return notification.MethodSMS, *u.Phone
}

// generateCode builds an n-digit numeric code, one crypto-random digit at a
// time.
func generateCode(n int) (string, error) {
	code := make([]byte, n)
	for i := range code {
		digit, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("generating otp code: %w", err)
		}
		code[i] = '0' + byte(digit.Int64())
	}
	return string(code), nil
}

// optional converts an optional request field to its nullable storage form.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
