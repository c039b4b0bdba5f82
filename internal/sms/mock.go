package sms

import (
	"context"
	"log/slog"
	"sync"
)

// Mock logs instead of sending and remembers deliveries for tests.
type Mock struct {
	logger *slog.Logger

	mu   sync.Mutex
	sent []Message
}

type Message struct {
	To   string
	Body string
}

func NewMock(logger *slog.Logger) *Mock {
	if logger == nil {
		logger = slog.Default()
	}
	return &Mock{logger: logger}
}

func (m *Mock) Send(ctx context.Context, to, body string) error {
	m.mu.Lock()
	m.sent = append(m.sent, Message{To: to, Body: body})
	m.mu.Unlock()

	m.logger.InfoContext(ctx, "sms (mock)", "to", to, "body", body)
	return nil
}

func (m *Mock) Sent() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Message, len(m.sent))
	copy(out, m.sent)
	return out
}
