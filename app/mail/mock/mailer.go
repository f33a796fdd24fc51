package mock

import (
	"context"
	"sync"

	"blogsite/app/mail"
)

// Mailer records every message it is given. When Err is set, Send
// fails with a transport error wrapping it and records nothing.
type Mailer struct {
	Err error

	mutex sync.Mutex
	sent  []mail.Message
}

func NewMailer() *Mailer {
	return &Mailer{}
}

func (m *Mailer) Send(ctx context.Context, msg mail.Message) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.Err != nil {
		return &mail.TransportError{Backend: "mock", Err: m.Err}
	}
	m.sent = append(m.sent, msg)
	return nil
}

// Sent returns a copy of the recorded messages.
func (m *Mailer) Sent() []mail.Message {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return append([]mail.Message(nil), m.sent...)
}

var _ mail.Mailer = (*Mailer)(nil)
