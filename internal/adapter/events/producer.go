package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/srgjo27/ticketing_client/internal/core/domain"
)

var ErrProducerClosed = errors.New("event producer closed")

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Envelope is the wire format of every checkout event on the topic.
type Envelope struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Producer      string          `json:"producer"`
	CorrelationID string          `json:"correlationId"`
	OccurredAt    time.Time       `json:"occurredAt"`
	Payload       json.RawMessage `json:"payload"`
}

type checkoutPayload struct {
	OrderID   string `json:"orderId"`
	PaymentID string `json:"paymentId,omitempty"`
	Attempts  int    `json:"attempts,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// Producer buffers checkout events and writes them to Kafka from a single
// goroutine. Messages are keyed by order id.
type Producer struct {
	w      messageWriter
	inbox  chan kafka.Message
	done   chan struct{}
	logger *zap.Logger

	// mu guards closed and the in-flight publisher count.
	mu       sync.Mutex
	closed   bool
	inflight sync.WaitGroup
}

func NewProducer(brokers []string, topic string, buf int, logger *zap.Logger) *Producer {
	return newProducer(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	}, buf, logger)
}

func newProducer(w messageWriter, buf int, logger *zap.Logger) *Producer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if buf <= 0 {
		buf = 64
	}
	return &Producer{
		w:      w,
		inbox:  make(chan kafka.Message, buf),
		done:   make(chan struct{}),
		logger: logger,
	}
}

// Start runs the write loop until ctx is done, then flushes what is already
// buffered, plus anything a publisher accepted before close, and closes the
// writer.
func (p *Producer) Start(ctx context.Context) {
	go func() {
		defer close(p.done)
		for {
			select {
			case <-ctx.Done():
				p.drain()
				if err := p.w.Close(); err != nil {
					p.logger.Warn("failed to close kafka writer", zap.Error(err))
				}
				return
			case m := <-p.inbox:
				p.write(m)
			}
		}
	}()
}

// drain refuses new publishers, then writes until every accepted publisher
// has handed over its message.
func (p *Producer) drain() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()

	idle := make(chan struct{})
	go func() {
		p.inflight.Wait()
		close(idle)
	}()

	for {
		select {
		case m := <-p.inbox:
			p.write(m)
		case <-idle:
			p.flush()
			return
		}
	}
}

func (p *Producer) flush() {
	for {
		select {
		case m := <-p.inbox:
			p.write(m)
		default:
			return
		}
	}
}

func (p *Producer) write(m kafka.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := p.w.WriteMessages(ctx, m); err != nil {
		p.logger.Error("failed to publish checkout event",
			zap.String("key", string(m.Key)),
			zap.Error(err),
		)
	}
}

func (p *Producer) Publish(ctx context.Context, event domain.CheckoutEvent) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrProducerClosed
	}
	p.inflight.Add(1)
	p.mu.Unlock()
	defer p.inflight.Done()

	value, err := encode(event, time.Now())
	if err != nil {
		return err
	}
	msg := kafka.Message{
		Key:   []byte(event.OrderID),
		Value: value,
		Time:  time.Now(),
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.Type)},
		},
	}

	select {
	case p.inbox <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Wait blocks until the write loop has flushed and exited.
func (p *Producer) Wait() {
	<-p.done
}

func encode(event domain.CheckoutEvent, at time.Time) ([]byte, error) {
	payload, err := json.Marshal(checkoutPayload{
		OrderID:   event.OrderID,
		PaymentID: event.PaymentID,
		Attempts:  event.Attempts,
		Reason:    event.Reason,
	})
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", event.Type, err)
	}
	return json.Marshal(Envelope{
		ID:            uuid.NewString(),
		Type:          string(event.Type),
		Producer:      "ticketing-client",
		CorrelationID: event.OrderID,
		OccurredAt:    at.UTC(),
		Payload:       payload,
	})
}

// Nop drops every event. It is used when no brokers are configured.
type Nop struct{}

func (Nop) Publish(ctx context.Context, event domain.CheckoutEvent) error {
	return nil
}
