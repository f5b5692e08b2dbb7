package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// ── Mock Repositories ──

type mockUserRepo struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{byID: make(map[int64]*User)}
}

func (m *mockUserRepo) Create(_ context.Context, u *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	u.ID = m.nextID
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	m.byID[u.ID] = u
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id int64) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byID[id]; ok {
		return u, nil
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Email != nil && *u.Email == email {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepo) GetByPhone(_ context.Context, phone string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Phone != nil && *u.Phone == phone {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Username != nil && *u.Username == username {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepo) MarkVerified(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return ErrUserNotFound
	}
	u.IsVerified = true
	return nil
}

func (m *mockUserRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID)
}

// mockOTPRepo mirrors the storage semantics: Create supersedes live codes for
// the same purpose, Consume is a check-and-flip under one lock, exactly like
// the conditional UPDATE it stands in for.
type mockOTPRepo struct {
	mu     sync.Mutex
	nextID int64
	codes  []*OTPCode
}

func (m *mockOTPRepo) Create(_ context.Context, otp *OTPCode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.codes[:0]
	for _, c := range m.codes {
		if c.UserID == otp.UserID && c.Purpose == otp.Purpose && !c.IsUsed {
			continue
		}
		kept = append(kept, c)
	}
	m.codes = kept
	m.nextID++
	otp.ID = m.nextID
	otp.CreatedAt = time.Now()
	m.codes = append(m.codes, otp)
	return nil
}

func (m *mockOTPRepo) Consume(_ context.Context, userID int64, code, purpose string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.codes {
		if c.UserID == userID && c.Code == code && c.Purpose == purpose &&
			!c.IsUsed && time.Now().Before(c.ExpiresAt) {
			c.IsUsed = true
			return true, nil
		}
	}
	return false, nil
}

func (m *mockOTPRepo) DeleteSpentOTPs(_ context.Context, expiredBefore time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var deleted int64
	kept := m.codes[:0]
	for _, c := range m.codes {
		if c.IsUsed || c.ExpiresAt.Before(expiredBefore) {
			deleted++
			continue
		}
		kept = append(kept, c)
	}
	m.codes = kept
	return deleted, nil
}

func (m *mockOTPRepo) latest(userID int64, purpose string) *OTPCode {
	m.mu.Lock()
	defer m.mu.Unlock()
	var found *OTPCode
	for _, c := range m.codes {
		if c.UserID == userID && c.Purpose == purpose {
			found = c
		}
	}
	return found
}

func (m *mockOTPRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.codes)
}

type senderCall struct {
	method      string
	destination string
	code        string
	purpose     string
}

type mockSender struct {
	mu         sync.Mutex
	calls      []senderCall
	shouldFail bool
}

func (m *mockSender) Send(_ context.Context, method, destination, code, purpose string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.shouldFail {
		return fmt.Errorf("provider unavailable")
	}
	m.calls = append(m.calls, senderCall{method, destination, code, purpose})
	return nil
}

func (m *mockSender) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func (m *mockSender) lastCall() senderCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[len(m.calls)-1]
}

func newTestService() (*Service, *mockUserRepo, *mockOTPRepo, *mockSender) {
	users := newMockUserRepo()
	otps := &mockOTPRepo{}
	sender := &mockSender{}
	tokens := NewTokenIssuer([]byte("test-signing-key"), 30*time.Minute, 7*24*time.Hour)
	svc := NewService(users, otps, tokens, sender, 6, 5*time.Minute, zerolog.Nop())
	return svc, users, otps, sender
}

func mustRegister(t *testing.T, svc *Service, in RegisterInput) *User {
	t.Helper()
	u, err := svc.Register(context.Background(), in)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return u
}

// ── Register ──

func TestRegister_WithEmail(t *testing.T) {
	svc, users, otps, sender := newTestService()

	u := mustRegister(t, svc, RegisterInput{
		Email:    "ana@example.com",
		Password: "s3cret-password",
		FullName: "Ana Diaz",
	})

	if u.ID == 0 {
		t.Error("expected an assigned user id")
	}
	if u.Role != RoleUser {
		t.Errorf("expected default role %q, got %q", RoleUser, u.Role)
	}
	if u.IsVerified {
		t.Error("new users must start unverified")
	}
	if !u.IsActive {
		t.Error("new users must start active")
	}
	if u.PasswordHash == "s3cret-password" {
		t.Error("password must be stored hashed")
	}
	if users.count() != 1 {
		t.Errorf("expected 1 user, got %d", users.count())
	}

	otp := otps.latest(u.ID, PurposeVerifyEmail)
	if otp == nil {
		t.Fatal("expected a verify_email code to be issued")
	}
	if len(otp.Code) != 6 {
		t.Errorf("expected a 6-digit code, got %q", otp.Code)
	}
	if sender.callCount() != 1 {
		t.Fatalf("expected 1 delivery, got %d", sender.callCount())
	}
	call := sender.lastCall()
	if call.method != "email" || call.destination != "ana@example.com" {
		t.Errorf("expected email delivery to ana@example.com, got %s to %s", call.method, call.destination)
	}
	if call.code != otp.Code {
		t.Error("delivered code should match the stored code")
	}
}

func TestRegister_PhoneOnly(t *testing.T) {
	svc, _, otps, sender := newTestService()

	u := mustRegister(t, svc, RegisterInput{Phone: "+15550100", Password: "s3cret-password"})

	if otps.latest(u.ID, PurposeVerifyPhone) == nil {
		t.Error("expected a verify_phone code for a phone-only account")
	}
	if call := sender.lastCall(); call.method != "sms" || call.destination != "+15550100" {
		t.Errorf("expected sms delivery to the phone, got %s to %s", call.method, call.destination)
	}
}

func TestRegister_NoIdentity(t *testing.T) {
	svc, users, _, _ := newTestService()
	_, err := svc.Register(context.Background(), RegisterInput{Password: "s3cret-password"})
	if !errors.Is(err, ErrIdentityRequired) {
		t.Errorf("expected ErrIdentityRequired, got %v", err)
	}
	if users.count() != 0 {
		t.Error("no user row should be created")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, users, otps, _ := newTestService()
	mustRegister(t, svc, RegisterInput{Email: "dup@example.com", Password: "s3cret-password"})
	otpsBefore := otps.count()

	_, err := svc.Register(context.Background(), RegisterInput{Email: "dup@example.com", Password: "another-pass"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
	if users.count() != 1 {
		t.Errorf("duplicate register must not add a user, have %d", users.count())
	}
	if otps.count() != otpsBefore {
		t.Error("duplicate register must not issue a code")
	}
}

func TestRegister_DuplicatePhone(t *testing.T) {
	svc, _, _, _ := newTestService()
	mustRegister(t, svc, RegisterInput{Phone: "+15550101", Password: "s3cret-password"})

	_, err := svc.Register(context.Background(), RegisterInput{Phone: "+15550101", Password: "s3cret-password"})
	if !errors.Is(err, ErrPhoneTaken) {
		t.Errorf("expected ErrPhoneTaken, got %v", err)
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc, _, _, _ := newTestService()
	mustRegister(t, svc, RegisterInput{Email: "u1@example.com", Username: "ana", Password: "s3cret-password"})

	_, err := svc.Register(context.Background(), RegisterInput{Email: "u2@example.com", Username: "ana", Password: "s3cret-password"})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestRegister_DeliveryFailureKeepsUser(t *testing.T) {
	svc, users, otps, sender := newTestService()
	sender.shouldFail = true

	_, err := svc.Register(context.Background(), RegisterInput{Email: "ana@example.com", Password: "s3cret-password"})
	if !errors.Is(err, ErrNotificationFailed) {
		t.Fatalf("expected ErrNotificationFailed, got %v", err)
	}
	// The account is committed before delivery; recovery is resend/login,
	// not re-registration.
	if users.count() != 1 {
		t.Errorf("user row should survive a delivery failure, have %d", users.count())
	}
	if otps.count() != 1 {
		t.Errorf("stored code should survive a delivery failure, have %d", otps.count())
	}
}

// ── Login ──

func TestLogin_EmailUser(t *testing.T) {
	svc, _, otps, sender := newTestService()
	u := mustRegister(t, svc, RegisterInput{Email: "ana@example.com", Password: "s3cret-password"})

	got, method, err := svc.Login(context.Background(), LoginInput{Email: "ana@example.com", Password: "s3cret-password"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("expected user %d, got %d", u.ID, got.ID)
	}
	if method != "email" {
		t.Errorf("expected method email, got %q", method)
	}
	if otps.latest(u.ID, PurposeLogin) == nil {
		t.Error("expected a login code to be issued")
	}
	if call := sender.lastCall(); call.purpose != PurposeLogin {
		t.Errorf("expected login purpose, got %q", call.purpose)
	}
}

func TestLogin_PhoneOnlyUserGetsSMS(t *testing.T) {
	svc, _, _, _ := newTestService()
	mustRegister(t, svc, RegisterInput{Phone: "+15550102", Password: "s3cret-password"})

	_, method, err := svc.Login(context.Background(), LoginInput{Phone: "+15550102", Password: "s3cret-password"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if method != "sms" {
		t.Errorf("expected method sms for a phone-only user, got %q", method)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _, _, _ := newTestService()
	mustRegister(t, svc, RegisterInput{Email: "ana@example.com", Password: "s3cret-password"})

	_, _, err := svc.Login(context.Background(), LoginInput{Email: "ana@example.com", Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	svc, _, _, _ := newTestService()
	_, _, err := svc.Login(context.Background(), LoginInput{Email: "ghost@example.com", Password: "whatever"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown users must look like bad credentials, got %v", err)
	}
}

func TestLogin_DeliveryFailure(t *testing.T) {
	svc, _, _, sender := newTestService()
	mustRegister(t, svc, RegisterInput{Email: "ana@example.com", Password: "s3cret-password"})
	sender.shouldFail = true

	_, _, err := svc.Login(context.Background(), LoginInput{Email: "ana@example.com", Password: "s3cret-password"})
	if !errors.Is(err, ErrNotificationFailed) {
		t.Errorf("expected ErrNotificationFailed, got %v", err)
	}
}

// ── VerifyOTP ──

func login(t *testing.T, svc *Service, otps *mockOTPRepo, email, password string) (int64, string) {
	t.Helper()
	u, _, err := svc.Login(context.Background(), LoginInput{Email: email, Password: password})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	otp := otps.latest(u.ID, PurposeLogin)
	if otp == nil {
		t.Fatal("no login code issued")
	}
	return u.ID, otp.Code
}

func TestVerifyOTP_IssuesTokenPair(t *testing.T) {
	svc, _, otps, _ := newTestService()
	mustRegister(t, svc, RegisterInput{Email: "ana@example.com", Password: "s3cret-password"})
	userID, code := login(t, svc, otps, "ana@example.com", "s3cret-password")

	pair, err := svc.VerifyOTP(context.Background(), "ana@example.com", "", code)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pair.TokenType != "bearer" {
		t.Errorf("expected token_type bearer, got %q", pair.TokenType)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("expected both tokens to be set")
	}

	issuer := NewTokenIssuer([]byte("test-signing-key"), 30*time.Minute, 7*24*time.Hour)
	claims, err := issuer.Verify(pair.AccessToken)
	if err != nil {
		t.Fatalf("access token should verify: %v", err)
	}
	if claims.Type != TokenTypeAccess {
		t.Errorf("expected access type, got %q", claims.Type)
	}
	if id, _ := claims.UserID(); id != userID {
		t.Errorf("expected subject %d, got %d", userID, id)
	}
}

func TestVerifyOTP_WrongCode(t *testing.T) {
	svc, _, otps, _ := newTestService()
	mustRegister(t, svc, RegisterInput{Email: "ana@example.com", Password: "s3cret-password"})
	login(t, svc, otps, "ana@example.com", "s3cret-password")

	_, err := svc.VerifyOTP(context.Background(), "ana@example.com", "", "000000")
	if !errors.Is(err, ErrInvalidOTP) {
		t.Errorf("expected ErrInvalidOTP, got %v", err)
	}
}

func TestVerifyOTP_SingleUse(t *testing.T) {
	svc, _, otps, _ := newTestService()
	mustRegister(t, svc, RegisterInput{Email: "ana@example.com", Password: "s3cret-password"})
	_, code := login(t, svc, otps, "ana@example.com", "s3cret-password")

	if _, err := svc.VerifyOTP(context.Background(), "ana@example.com", "", code); err != nil {
		t.Fatalf("first verify failed: %v", err)
	}
	_, err := svc.VerifyOTP(context.Background(), "ana@example.com", "", code)
	if !errors.Is(err, ErrInvalidOTP) {
		t.Errorf("second use of the same code must fail, got %v", err)
	}
}

func TestVerifyOTP_ExpiredCode(t *testing.T) {
	svc, _, otps, _ := newTestService()
	u := mustRegister(t, svc, RegisterInput{Email: "ana@example.com", Password: "s3cret-password"})

	otps.Create(context.Background(), &OTPCode{
		UserID:    u.ID,
		Code:      "123456",
		Purpose:   PurposeLogin,
		Method:    "email",
		ExpiresAt: time.Now().Add(-time.Minute),
	})

	_, err := svc.VerifyOTP(context.Background(), "ana@example.com", "", "123456")
	if !errors.Is(err, ErrInvalidOTP) {
		t.Errorf("expired code must fail even on exact match, got %v", err)
	}
}

func TestVerifyOTP_UnknownUser(t *testing.T) {
	svc, _, _, _ := newTestService()
	_, err := svc.VerifyOTP(context.Background(), "ghost@example.com", "", "123456")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestVerifyOTP_ConcurrentConsumes(t *testing.T) {
	svc, _, otps, _ := newTestService()
	mustRegister(t, svc, RegisterInput{Email: "ana@example.com", Password: "s3cret-password"})
	_, code := login(t, svc, otps, "ana@example.com", "s3cret-password")

	const attempts = 16
	var successes int32
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.VerifyOTP(context.Background(), "ana@example.com", "", code)
			if err == nil {
				atomic.AddInt32(&successes, 1)
			} else if !errors.Is(err, ErrInvalidOTP) {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if successes != 1 {
		t.Errorf("expected exactly 1 successful verification, got %d", successes)
	}
}

// ── VerifyAccount ──

func TestVerifyAccount_FlipsVerified(t *testing.T) {
	svc, users, otps, _ := newTestService()
	u := mustRegister(t, svc, RegisterInput{Email: "ana@example.com", Password: "s3cret-password"})
	code := otps.latest(u.ID, PurposeVerifyEmail).Code

	if err := svc.VerifyAccount(context.Background(), "ana@example.com", "", code); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stored, _ := users.GetByID(context.Background(), u.ID)
	if !stored.IsVerified {
		t.Error("expected the account to be verified")
	}
}

func TestVerifyAccount_WrongCodeLeavesUnverified(t *testing.T) {
	svc, users, _, _ := newTestService()
	u := mustRegister(t, svc, RegisterInput{Email: "ana@example.com", Password: "s3cret-password"})

	err := svc.VerifyAccount(context.Background(), "ana@example.com", "", "000000")
	if !errors.Is(err, ErrInvalidOTP) {
		t.Fatalf("expected ErrInvalidOTP, got %v", err)
	}
	stored, _ := users.GetByID(context.Background(), u.ID)
	if stored.IsVerified {
		t.Error("a failed verification must not flip the flag")
	}
}

func TestVerifyAccount_PurposeMismatch(t *testing.T) {
	svc, _, otps, _ := newTestService()
	u := mustRegister(t, svc, RegisterInput{Email: "ana@example.com", Password: "s3cret-password"})
	verifyCode := otps.latest(u.ID, PurposeVerifyEmail).Code

	// A verification code never satisfies the login flow.
	_, err := svc.VerifyOTP(context.Background(), "ana@example.com", "", verifyCode)
	if !errors.Is(err, ErrInvalidOTP) {
		t.Errorf("expected ErrInvalidOTP for cross-purpose use, got %v", err)
	}
}

// ── Refresh ──

func TestRefresh_IssuesNewAccessToken(t *testing.T) {
	svc, _, otps, _ := newTestService()
	mustRegister(t, svc, RegisterInput{Email: "ana@example.com", Password: "s3cret-password"})
	_, code := login(t, svc, otps, "ana@example.com", "s3cret-password")
	pair, err := svc.VerifyOTP(context.Background(), "ana@example.com", "", code)
	if err != nil {
		t.Fatalf("verify otp: %v", err)
	}

	access, err := svc.Refresh(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if access == "" {
		t.Fatal("expected a new access token")
	}
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	svc, _, otps, _ := newTestService()
	mustRegister(t, svc, RegisterInput{Email: "ana@example.com", Password: "s3cret-password"})
	_, code := login(t, svc, otps, "ana@example.com", "s3cret-password")
	pair, err := svc.VerifyOTP(context.Background(), "ana@example.com", "", code)
	if err != nil {
		t.Fatalf("verify otp: %v", err)
	}

	_, err = svc.Refresh(context.Background(), pair.AccessToken)
	if !errors.Is(err, ErrInvalidRefreshToken) {
		t.Errorf("an access token must not refresh, got %v", err)
	}
}

func TestRefresh_Garbage(t *testing.T) {
	svc, _, _, _ := newTestService()
	_, err := svc.Refresh(context.Background(), "not-a-token")
	if !errors.Is(err, ErrInvalidRefreshToken) {
		t.Errorf("expected ErrInvalidRefreshToken, got %v", err)
	}
}

func TestRefresh_DeletedUser(t *testing.T) {
	svc, users, otps, _ := newTestService()
	u := mustRegister(t, svc, RegisterInput{Email: "ana@example.com", Password: "s3cret-password"})
	_, code := login(t, svc, otps, "ana@example.com", "s3cret-password")
	pair, err := svc.VerifyOTP(context.Background(), "ana@example.com", "", code)
	if err != nil {
		t.Fatalf("verify otp: %v", err)
	}

	users.mu.Lock()
	delete(users.byID, u.ID)
	users.mu.Unlock()

	_, err = svc.Refresh(context.Background(), pair.RefreshToken)
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

// ── ResendOTP ──

func TestResendOTP_SupersedesOldCode(t *testing.T) {
	svc, _, otps, _ := newTestService()
	u := mustRegister(t, svc, RegisterInput{Email: "ana@example.com", Password: "s3cret-password"})
	_, oldCode := login(t, svc, otps, "ana@example.com", "s3cret-password")

	method, err := svc.ResendOTP(context.Background(), LoginInput{Email: "ana@example.com", Password: "s3cret-password"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if method != "email" {
		t.Errorf("expected method email, got %q", method)
	}

	newCode := otps.latest(u.ID, PurposeLogin).Code
	if newCode == oldCode {
		t.Fatal("resend should have issued a different code")
	}
	if _, err := svc.VerifyOTP(context.Background(), "ana@example.com", "", oldCode); !errors.Is(err, ErrInvalidOTP) {
		t.Errorf("superseded code must no longer verify, got %v", err)
	}
	if _, err := svc.VerifyOTP(context.Background(), "ana@example.com", "", newCode); err != nil {
		t.Errorf("fresh code should verify, got %v", err)
	}
}

func TestResendOTP_WrongPassword(t *testing.T) {
	svc, _, otps, _ := newTestService()
	u := mustRegister(t, svc, RegisterInput{Email: "ana@example.com", Password: "s3cret-password"})
	before := otps.latest(u.ID, PurposeVerifyEmail).Code

	_, err := svc.ResendOTP(context.Background(), LoginInput{Email: "ana@example.com", Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if otps.latest(u.ID, PurposeLogin) != nil {
		t.Error("a rejected resend must not issue a login code")
	}
	if otps.latest(u.ID, PurposeVerifyEmail).Code != before {
		t.Error("a rejected resend must not touch existing codes")
	}
}

func TestResendOTP_UnknownUser(t *testing.T) {
	svc, _, _, _ := newTestService()
	_, err := svc.ResendOTP(context.Background(), LoginInput{Email: "ghost@example.com", Password: "whatever"})
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

// ── ResolveRole ──

func TestResolveRole(t *testing.T) {
	svc, users, _, _ := newTestService()
	u := mustRegister(t, svc, RegisterInput{Email: "doc@example.com", Password: "s3cret-password", Role: RoleDoctor})

	role, err := svc.ResolveRole(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if role != RoleDoctor {
		t.Errorf("expected role doctor, got %q", role)
	}

	users.mu.Lock()
	users.byID[u.ID].IsActive = false
	users.mu.Unlock()
	if _, err := svc.ResolveRole(context.Background(), u.ID); err == nil {
		t.Error("a deactivated user must not resolve")
	}

	if _, err := svc.ResolveRole(context.Background(), 9999); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

// ── Code generation ──

func TestGenerateCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := generateCode(6)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("expected 6 digits, got %q", code)
		}
		for _, ch := range code {
			if ch < '0' || ch > '9' {
				t.Fatalf("non-digit in code %q", code)
			}
		}
		seen[code] = true
	}
	// 50 draws from a million-value space colliding down to a handful would
	// mean the generator is broken.
	if len(seen) < 40 {
		t.Errorf("suspiciously many duplicate codes: %d unique of 50", len(seen))
	}
}
