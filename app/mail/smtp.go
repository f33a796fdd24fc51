package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	netmail "net/mail"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"blogsite/app/config"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	dialTimeout = 5 * time.Second
	sendTimeout = 15 * time.Second
)

// SMTPMailer delivers through an SMTP relay, upgrading with STARTTLS when
// TLS is enabled and the server offers it.
type SMTPMailer struct {
	cfg    config.MailConfig
	from   string
	logger *zap.Logger

	// now is replaceable in tests for stable Date headers.
	now func() time.Time
}

func NewSMTPMailer(cfg config.MailConfig, logger *zap.Logger) *SMTPMailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SMTPMailer{cfg: cfg, from: sender(cfg), logger: logger, now: time.Now}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := checkMessage(msg); err != nil {
		return transportError("smtp", err)
	}
	if msg.From == "" {
		msg.From = m.from
	}
	if err := m.deliver(ctx, msg); err != nil {
		return transportError("smtp", err)
	}
	return nil
}

func (m *SMTPMailer) deliver(ctx context.Context, msg Message) error {
	addr := net.JoinHostPort(m.cfg.SMTPHost, strconv.Itoa(m.cfg.SMTPPort))
	d := net.Dialer{Timeout: dialTimeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return errors.Wrap(err, "dial")
	}

	deadline := time.Now().Add(sendTimeout)
	if dl, ok := ctx.Deadline(); ok && dl.Before(deadline) {
		deadline = dl
	}
	_ = conn.SetDeadline(deadline)

	c, err := smtp.NewClient(conn, m.cfg.SMTPHost)
	if err != nil {
		_ = conn.Close()
		return errors.Wrap(err, "greeting")
	}
	defer c.Close()

	if m.cfg.SMTPTLS {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err := c.StartTLS(&tls.Config{ServerName: m.cfg.SMTPHost}); err != nil {
				return errors.Wrap(err, "starttls")
			}
		}
	}
	if m.cfg.SMTPUsername != "" {
		auth := smtp.PlainAuth("", m.cfg.SMTPUsername, m.cfg.SMTPPassword, m.cfg.SMTPHost)
		if err := c.Auth(auth); err != nil {
			return errors.Wrap(err, "auth")
		}
	}

	if err := c.Mail(m.envelopeSender(msg.From)); err != nil {
		return errors.Wrap(err, "mail from")
	}
	for _, to := range msg.To {
		if err := c.Rcpt(to); err != nil {
			return errors.Wrapf(err, "rcpt %s", to)
		}
	}
	wc, err := c.Data()
	if err != nil {
		return errors.Wrap(err, "data")
	}
	if _, err := wc.Write(buildMessage(msg, m.now())); err != nil {
		_ = wc.Close()
		return errors.Wrap(err, "write")
	}
	if err := wc.Close(); err != nil {
		return errors.Wrap(err, "data close")
	}

	// The server has accepted the message once DATA is closed
	if err := c.Quit(); err != nil {
		m.logger.Warn("smtp quit failed after delivery",
			zap.String("host", m.cfg.SMTPHost),
			zap.Strings("to", msg.To),
			zap.Error(err),
		)
	}
	return nil
}

// envelopeSender is the bare address of the From header, falling back to
// the configured address when the header does not parse.
func (m *SMTPMailer) envelopeSender(from string) string {
	addr, err := netmail.ParseAddress(from)
	if err != nil {
		return m.cfg.From
	}
	return addr.Address
}

// buildMessage renders headers in a fixed order followed by the body.
func buildMessage(msg Message, date time.Time) []byte {
	headers := [][2]string{
		{"From", msg.From},
		{"To", strings.Join(msg.To, ", ")},
		{"Subject", mime.BEncoding.Encode("UTF-8", msg.Subject)},
		{"Date", date.Format(time.RFC1123Z)},
		{"MIME-Version", "1.0"},
		{"Content-Type", "text/plain; charset=UTF-8"},
		{"Content-Transfer-Encoding", "8bit"},
	}

	var b strings.Builder
	for _, h := range headers {
		fmt.Fprintf(&b, "%s: %s\r\n", h[0], h[1])
	}
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(strings.ReplaceAll(msg.Body, "\r\n", "\n"), "\n", "\r\n"))
	return []byte(b.String())
}
