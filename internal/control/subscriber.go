// Package control receives parameter changes over NATS and writes them into
// the processor's parameter store.
package control

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/nichesounds/algo-delay/dsp/param"
)

// DefaultSubject is the subject parameter messages arrive on.
const DefaultSubject = "delay.params"

// ErrInvalidMessage reports a message that cannot be applied.
var ErrInvalidMessage = errors.New("control: invalid message")

// Message sets one parameter to a normalized value in [0, 1].
type Message struct {
	ID    uint32  `json:"id"`
	Value float64 `json:"value"`
}

// Target receives decoded parameter changes. *param.Store implements it.
type Target interface {
	SetNormalized(id uint32, normalized float64) bool
}

// Conn is the part of *nats.Conn the subscriber uses.
type Conn interface {
	Subscribe(subject string, cb nats.MsgHandler) (*nats.Subscription, error)
	Close()
}

// ConnAdapter adapts *nats.Conn to Conn.
type ConnAdapter struct {
	conn *nats.Conn
}

// NewConnAdapter wraps conn.
func NewConnAdapter(conn *nats.Conn) *ConnAdapter {
	return &ConnAdapter{conn: conn}
}

// Subscribe registers cb for subject.
func (a *ConnAdapter) Subscribe(subject string, cb nats.MsgHandler) (*nats.Subscription, error) {
	return a.conn.Subscribe(subject, cb)
}

// Close closes the underlying connection.
func (a *ConnAdapter) Close() {
	a.conn.Close()
}

// Dial connects to url, retrying up to attempts times.
func Dial(url string, attempts int, logger *slog.Logger) (*nats.Conn, error) {
	attempts = max(attempts, 1)

	var nc *nats.Conn
	var err error
	for i := 0; i < attempts; i++ {
		nc, err = nats.Connect(url, nats.Name("delayhost"))
		if err == nil {
			break
		}
		logger.Warn("failed to connect to NATS", "url", url, "attempt", i+1, "of", attempts, "err", err)
		if i+1 < attempts {
			time.Sleep(2 * time.Second)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("control: connect to %s after %d attempts: %w", url, attempts, err)
	}

	logger.Info("connected to NATS", "url", nc.ConnectedUrl())
	return nc, nil
}

// Subscriber applies parameter messages from one subject to a target.
//
// NATS delivers the messages of a subscription on a single goroutine, so the
// subscriber is the only writer of the target as long as nothing else writes
// to it after Start.
type Subscriber struct {
	conn    Conn
	subject string
	target  Target
	logger  *slog.Logger

	applied  atomic.Uint64
	rejected atomic.Uint64
}

// NewSubscriber returns a subscriber that writes to target. A nil logger
// discards log output.
func NewSubscriber(conn Conn, subject string, target Target, logger *slog.Logger) *Subscriber {
	if subject == "" {
		subject = DefaultSubject
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Subscriber{
		conn:    conn,
		subject: subject,
		target:  target,
		logger:  logger.With("subject", subject),
	}
}

// Start subscribes to the subject.
func (s *Subscriber) Start() error {
	if _, err := s.conn.Subscribe(s.subject, s.handle); err != nil {
		return fmt.Errorf("control: subscribe to %s: %w", s.subject, err)
	}
	s.logger.Info("listening for parameter changes")
	return nil
}

func (s *Subscriber) handle(msg *nats.Msg) {
	m, err := Decode(msg.Data)
	if err != nil {
		s.rejected.Add(1)
		s.logger.Warn("dropping parameter message", "err", err)
		return
	}
	if !s.target.SetNormalized(m.ID, m.Value) {
		s.rejected.Add(1)
		s.logger.Warn("dropping parameter message", "err", fmt.Errorf("%w: unknown parameter %d", ErrInvalidMessage, m.ID))
		return
	}
	s.applied.Add(1)

	if s.logger.Enabled(context.Background(), slog.LevelDebug) {
		text, _ := param.Format(m.ID, m.Value)
		s.logger.Debug("parameter changed", "id", m.ID, "value", m.Value, "display", text)
	}
}

// Stats returns the number of applied and rejected messages.
func (s *Subscriber) Stats() (applied, rejected uint64) {
	return s.applied.Load(), s.rejected.Load()
}

// Close closes the connection.
func (s *Subscriber) Close() {
	if s.conn != nil {
		s.conn.Close()
		s.logger.Info("NATS connection closed")
	}
}

// Decode parses a parameter message. Values outside [0, 1] are rejected.
func Decode(data []byte) (Message, error) {
	var raw struct {
		ID    *uint32  `json:"id"`
		Value *float64 `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Message{}, fmt.Errorf("%w: %w", ErrInvalidMessage, err)
	}
	if raw.ID == nil || raw.Value == nil {
		return Message{}, fmt.Errorf("%w: id and value are required", ErrInvalidMessage)
	}
	if *raw.Value < 0 || *raw.Value > 1 {
		return Message{}, fmt.Errorf("%w: value %g not in [0, 1]", ErrInvalidMessage, *raw.Value)
	}
	return Message{ID: *raw.ID, Value: *raw.Value}, nil
}
