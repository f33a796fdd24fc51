package mail

import (
	"context"

	"blogsite/app/config"

	"go.uber.org/zap"
)

// ConsoleMailer writes messages to the log instead of delivering them.
type ConsoleMailer struct {
	from   string
	logger *zap.Logger
}

func NewConsoleMailer(cfg config.MailConfig, logger *zap.Logger) *ConsoleMailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConsoleMailer{from: sender(cfg), logger: logger.Named("mail")}
}

func (m *ConsoleMailer) Send(ctx context.Context, msg Message) error {
	if err := checkMessage(msg); err != nil {
		return transportError("console", err)
	}
	from := msg.From
	if from == "" {
		from = m.from
	}
	m.logger.Info("email",
		zap.String("from", from),
		zap.Strings("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.Body),
	)
	return nil
}
