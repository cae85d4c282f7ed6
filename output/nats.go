package output

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// Message headers set on published vocabularies.
const (
	HeaderSource      = "Semvocab-Source"
	HeaderContentType = "Content-Type"
)

// Publisher is the subset of *nats.Conn used by NATSSink.
type Publisher interface {
	PublishMsg(msg *nats.Msg) error
	FlushWithContext(ctx context.Context) error
	Close()
}

// NATSSink publishes each vocabulary as one message on a subject.
type NATSSink struct {
	conn        Publisher
	subject     string
	contentType string
}

// DialNATS connects to url and returns a sink publishing on subject.
func DialNATS(url, subject, contentType string) (*NATSSink, error) {
	nc, err := nats.Connect(url,
		nats.Name("semvocab"),
		nats.MaxReconnects(5),
		nats.ReconnectWait(time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	return NewNATSSink(nc, subject, contentType), nil
}

// NewNATSSink creates a sink over an existing connection.
func NewNATSSink(conn Publisher, subject, contentType string) *NATSSink {
	return &NATSSink{conn: conn, subject: subject, contentType: contentType}
}

// Write publishes data and waits for the server to acknowledge the flush.
func (s *NATSSink) Write(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context cancelled before publish: %w", err)
	}

	msg := nats.NewMsg(s.subject)
	msg.Data = data
	if s.contentType != "" {
		msg.Header.Set(HeaderContentType, s.contentType)
	}
	if name != "" {
		msg.Header.Set(HeaderSource, name)
	}

	if err := s.conn.PublishMsg(msg); err != nil {
		return fmt.Errorf("publish to %s: %w", s.subject, err)
	}
	if err := s.conn.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("flush NATS connection: %w", err)
	}
	return nil
}

// Close drops the connection.
func (s *NATSSink) Close() error {
	s.conn.Close()
	return nil
}
