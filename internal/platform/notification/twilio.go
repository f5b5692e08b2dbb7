package notification

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// TwilioSMSSender delivers SMS through the Twilio REST API. When no from
// number is configured it logs the message and reports success, keeping SMS
// flows usable without a Twilio account.
type TwilioSMSSender struct {
	client     *twilio.RestClient
	fromNumber string
	logger     zerolog.Logger
}

func NewTwilioSMSSender(accountSID, authToken, fromNumber string, logger zerolog.Logger) *TwilioSMSSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioSMSSender{
		client:     client,
		fromNumber: fromNumber,
		logger:     logger.With().Str("component", "twilio-sms").Logger(),
	}
}

func (t *TwilioSMSSender) SendSMS(ctx context.Context, to, body string) error {
	if t.fromNumber == "" {
		t.logger.Info().
			Str("to", to).
			Str("body", body).
			Msg("dev mode: sms not sent")
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(t.fromNumber)
	params.SetBody(body)

	if _, err := t.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("sending sms: %w", err)
	}
	return nil
}
