package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Delivery methods.
const (
	MethodEmail = "email"
	MethodSMS   = "sms"
)

const emailSubject = "Your OTP Code - Hospital Management"

// Dispatcher routes one-time codes to the right channel. Delivery is
// synchronous within the request: one attempt plus one retry after a fixed
// delay, then the error is surfaced to the caller.
type Dispatcher struct {
	email      EmailSender
	sms        SMSSender
	retryDelay time.Duration
	expiry     time.Duration
	logger     zerolog.Logger
}

func NewDispatcher(email EmailSender, sms SMSSender, retryDelay, otpExpiry time.Duration, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		email:      email,
		sms:        sms,
		retryDelay: retryDelay,
		expiry:     otpExpiry,
		logger:     logger.With().Str("component", "otp-dispatch").Logger(),
	}
}

// Send delivers the code to destination over the given method. purpose is
// carried for logging only; the message text is identical across purposes.
func (d *Dispatcher) Send(ctx context.Context, method, destination, code, purpose string) error {
	minutes := int(d.expiry.Minutes())

	var send func() error
	switch method {
	case MethodEmail:
		body := fmt.Sprintf("Your OTP code is: %s\n\n"+
			"This code will expire in %d minutes.\n\n"+
			"If you didn't request this, please ignore this email.\n\n"+
			"Best regards,\nHospital Management System", code, minutes)
		send = func() error { return d.email.SendEmail(ctx, destination, emailSubject, body) }
	case MethodSMS:
		body := fmt.Sprintf("Your OTP code is: %s. It expires in %d minutes.", code, minutes)
		send = func() error { return d.sms.SendSMS(ctx, destination, body) }
	default:
		return fmt.Errorf("unsupported delivery method: %s", method)
	}

	// One attempt plus one retry.
	var lastErr error
	for attempt := 1; attempt <= 2; attempt++ {
		lastErr = send()
		if lastErr == nil {
			return nil
		}
		d.logger.Warn().
			Err(lastErr).
			Str("method", method).
			Str("purpose", purpose).
			Int("attempt", attempt).
			Msg("otp delivery attempt failed")
		if attempt == 1 {
			select {
			case <-time.After(d.retryDelay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return fmt.Errorf("delivering otp via %s: %w", method, lastErr)
}
