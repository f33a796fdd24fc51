package mail

import (
	"context"

	"blogsite/app/config"

	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
)

// ResendMailer delivers through the Resend HTTP API.
type ResendMailer struct {
	client *resend.Client
	from   string
}

func NewResendMailer(cfg config.MailConfig) *ResendMailer {
	return &ResendMailer{
		client: resend.NewClient(cfg.ResendAPIKey),
		from:   sender(cfg),
	}
}

func (m *ResendMailer) Send(ctx context.Context, msg Message) error {
	if err := checkMessage(msg); err != nil {
		return transportError("resend", err)
	}
	from := msg.From
	if from == "" {
		from = m.from
	}

	params := &resend.SendEmailRequest{
		From:    from,
		To:      msg.To,
		Subject: msg.Subject,
		Text:    msg.Body,
	}
	if _, err := m.client.Emails.SendWithContext(ctx, params); err != nil {
		return transportError("resend", errors.Wrap(err, "failed to send email"))
	}
	return nil
}
