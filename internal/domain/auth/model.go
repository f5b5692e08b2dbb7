package auth

import "time"

// User roles.
const (
	RoleUser    = "user"
	RoleAdmin   = "admin"
	RoleDoctor  = "doctor"
	RoleNurse   = "nurse"
	RolePatient = "patient"
	RoleStaff   = "staff"
)

// ValidRoles is the set of roles a user may be created with.
var ValidRoles = map[string]bool{
	RoleUser: true, RoleAdmin: true, RoleDoctor: true,
	RoleNurse: true, RolePatient: true, RoleStaff: true,
}

// OTP purposes. A code issued for one purpose never satisfies another.
const (
	PurposeLogin       = "login"
	PurposeVerifyEmail = "verify_email"
	PurposeVerifyPhone = "verify_phone"
)

// User is an account holder. At least one of Email and Phone is always set;
// each is unique when present. The password hash never leaves the server.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Email        *string   `db:"email" json:"email,omitempty"`
	Phone        *string   `db:"phone" json:"phone,omitempty"`
	Username     *string   `db:"username" json:"username,omitempty"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     *string   `db:"full_name" json:"full_name,omitempty"`
	Role         string    `db:"role" json:"role"`
	IsVerified   bool      `db:"is_verified" json:"is_verified"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// OTPCode is one issued one-time code. IsUsed is the single-use latch: the
// repository flips it exactly once with a conditional update.
type OTPCode struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Code      string    `db:"code" json:"-"`
	Purpose   string    `db:"purpose" json:"purpose"`
	Method    string    `db:"method" json:"method"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
	IsUsed    bool      `db:"is_used" json:"is_used"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
