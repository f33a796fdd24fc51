// Package mail delivers outbound email through a configurable backend.
//
// Three backends exist: "smtp" speaks to a relay with net/smtp, "resend"
// calls the Resend API and "console" only logs the message. Every delivery
// failure is reported as a *TransportError, which matches ErrTransport.
package mail

import (
	"context"
	"fmt"
	netmail "net/mail"

	"blogsite/app/config"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrTransport matches any error returned by a backend while delivering.
var ErrTransport = errors.New("mail transport failure")

// Message is a plain text email. An empty From uses the configured sender.
type Message struct {
	From    string
	To      []string
	Subject string
	Body    string
}

// Mailer sends messages.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// TransportError wraps the backend error that stopped a delivery.
type TransportError struct {
	Backend string
	Err     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrTransport, e.Backend, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

func transportError(backend string, err error) error {
	return &TransportError{Backend: backend, Err: err}
}

// New returns the mailer selected by cfg.Backend.
func New(cfg config.MailConfig, logger *zap.Logger) (Mailer, error) {
	switch cfg.Backend {
	case "", "console":
		return NewConsoleMailer(cfg, logger), nil
	case "smtp":
		return NewSMTPMailer(cfg, logger), nil
	case "resend":
		return NewResendMailer(cfg), nil
	default:
		return nil, errors.Errorf("unknown mail backend %q", cfg.Backend)
	}
}

// sender formats the configured From header.
func sender(cfg config.MailConfig) string {
	if cfg.FromName == "" {
		return cfg.From
	}
	addr := netmail.Address{Name: cfg.FromName, Address: cfg.From}
	return addr.String()
}

func checkMessage(msg Message) error {
	if len(msg.To) == 0 {
		return errors.New("message has no recipients")
	}
	for _, to := range msg.To {
		if _, err := netmail.ParseAddress(to); err != nil {
			return errors.Wrapf(err, "invalid recipient %q", to)
		}
	}
	return nil
}
