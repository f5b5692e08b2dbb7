package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hms/hms/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

// =========== User Repository ===========

type userRepoPG struct{ pool *pgxpool.Pool }

func NewUserRepoPG(pool *pgxpool.Pool) UserRepository {
	return &userRepoPG{pool: pool}
}

func (r *userRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const userCols = `id, email, phone, username, password_hash, full_name, role,
	is_verified, is_active, created_at, updated_at`

func (r *userRepoPG) scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Phone, &u.Username, &u.PasswordHash, &u.FullName, &u.Role,
		&u.IsVerified, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	return &u, err
}

func (r *userRepoPG) Create(ctx context.Context, u *User) error {
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO users (email, phone, username, password_hash, full_name, role, is_verified, is_active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id, created_at, updated_at`,
		u.Email, u.Phone, u.Username, u.PasswordHash, u.FullName, u.Role, u.IsVerified, u.IsActive).
		Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

func (r *userRepoPG) GetByID(ctx context.Context, id int64) (*User, error) {
	return r.scanUser(r.conn(ctx).QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE id = $1`, id))
}

func (r *userRepoPG) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.scanUser(r.conn(ctx).QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE email = $1`, email))
}

func (r *userRepoPG) GetByPhone(ctx context.Context, phone string) (*User, error) {
	return r.scanUser(r.conn(ctx).QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE phone = $1`, phone))
}

func (r *userRepoPG) GetByUsername(ctx context.Context, username string) (*User, error) {
	return r.scanUser(r.conn(ctx).QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE username = $1`, username))
}

func (r *userRepoPG) MarkVerified(ctx context.Context, id int64) error {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE users SET is_verified = true, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("marking user %d verified: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// =========== OTP Repository ===========

type otpRepoPG struct{ pool *pgxpool.Pool }

func NewOTPRepoPG(pool *pgxpool.Pool) OTPRepository {
	return &otpRepoPG{pool: pool}
}

func (r *otpRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *otpRepoPG) Create(ctx context.Context, otp *OTPCode) error {
	conn := r.conn(ctx)
	// Stale unused codes for the same purpose are superseded, so only the
	// most recently issued code can ever verify.
	_, err := conn.Exec(ctx,
		`DELETE FROM otp_codes WHERE user_id = $1 AND purpose = $2 AND is_used = false`,
		otp.UserID, otp.Purpose)
	if err != nil {
		return fmt.Errorf("superseding otp codes: %w", err)
	}
	err = conn.QueryRow(ctx, `
		INSERT INTO otp_codes (user_id, code, purpose, method, expires_at)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id, created_at`,
		otp.UserID, otp.Code, otp.Purpose, otp.Method, otp.ExpiresAt).
		Scan(&otp.ID, &otp.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting otp code: %w", err)
	}
	return nil
}

func (r *otpRepoPG) Consume(ctx context.Context, userID int64, code, purpose string) (bool, error) {
	// The conditional update is the single-use latch: of N concurrent
	// attempts with the same code, only one update affects a row. Expired
	// rows are left in place for the janitor.
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE otp_codes SET is_used = true
		WHERE user_id = $1 AND code = $2 AND purpose = $3 AND is_used = false AND expires_at > $4`,
		userID, code, purpose, time.Now())
	if err != nil {
		return false, fmt.Errorf("consuming otp code: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *otpRepoPG) DeleteSpentOTPs(ctx context.Context, expiredBefore time.Time) (int64, error) {
	tag, err := r.conn(ctx).Exec(ctx,
		`DELETE FROM otp_codes WHERE is_used = true OR expires_at < $1`, expiredBefore)
	if err != nil {
		return 0, fmt.Errorf("deleting spent otp codes: %w", err)
	}
	return tag.RowsAffected(), nil
}
