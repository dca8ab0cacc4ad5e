package notification

import (
	"context"

	"github.com/rikacare/rika-backend/internal/config"
)

// SendersFromConfig builds the configured providers. "mock" providers record
// messages in memory, which is what development runs with.
func SendersFromConfig(ctx context.Context, cfg *config.Config) (Senders, error) {
	var s Senders

	switch cfg.EmailProvider {
	case "sendgrid":
		s.Email = NewSendGridEmailSender(cfg.SendGridAPIKey, cfg.EmailFrom)
	case "smtp":
		s.Email = NewSMTPEmailSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.EmailFrom)
	default:
		s.Email = &MockEmailSender{}
	}

	switch cfg.SMSProvider {
	case "twilio":
		s.SMS = NewTwilioSMSSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber)
	default:
		s.SMS = &MockSMSSender{}
	}

	switch cfg.PushProvider {
	case "fcm":
		push, err := NewFCMPushSender(ctx, cfg.FirebaseCredentials, cfg.FirebaseCredentialsJS)
		if err != nil {
			return Senders{}, err
		}
		s.Push = push
	default:
		s.Push = &MockPushSender{}
	}

	return s, nil
}
