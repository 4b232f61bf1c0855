package events

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/srgjo27/ticketing_client/internal/core/domain"
)

type fakeWriter struct {
	mu     sync.Mutex
	msgs   []kafka.Message
	closed bool
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func TestProducer_PublishFlushesOnShutdown(t *testing.T) {
	w := &fakeWriter{}
	p := newProducer(w, 8, zaptest.NewLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx)

	err := p.Publish(context.Background(), domain.CheckoutEvent{
		Type:      domain.EventPaymentSucceeded,
		OrderID:   "o1",
		PaymentID: "p1",
		Attempts:  3,
	})
	require.NoError(t, err)

	cancel()
	p.Wait()

	w.mu.Lock()
	defer w.mu.Unlock()
	assert.True(t, w.closed)
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "o1", string(w.msgs[0].Key))

	var env Envelope
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &env))
	assert.Equal(t, "PaymentSucceeded", env.Type)
	assert.NotEmpty(t, env.ID)
	assert.Equal(t, "o1", env.CorrelationID)
	assert.JSONEq(t, `{"orderId":"o1","paymentId":"p1","attempts":3}`, string(env.Payload))
}

func TestProducer_PublishAfterCloseFails(t *testing.T) {
	p := newProducer(&fakeWriter{}, 1, nil)
	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx)
	cancel()
	p.Wait()

	err := p.Publish(context.Background(), domain.CheckoutEvent{Type: domain.EventOrderExpired, OrderID: "o1"})
	assert.ErrorIs(t, err, ErrProducerClosed)
}

func TestProducer_AcceptedEventsSurviveConcurrentShutdown(t *testing.T) {
	for round := 0; round < 20; round++ {
		w := &fakeWriter{}
		p := newProducer(w, 2, nil)
		ctx, cancel := context.WithCancel(context.Background())
		p.Start(ctx)

		var accepted atomic.Int32
		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := p.Publish(context.Background(), domain.CheckoutEvent{Type: domain.EventPaymentFailed, OrderID: "o1"})
				if err == nil {
					accepted.Add(1)
				} else {
					assert.ErrorIs(t, err, ErrProducerClosed)
				}
			}()
		}
		cancel()
		wg.Wait()
		p.Wait()

		w.mu.Lock()
		written := len(w.msgs)
		w.mu.Unlock()
		require.Equal(t, int(accepted.Load()), written, "every accepted event is written")
	}
}

func TestNop(t *testing.T) {
	assert.NoError(t, Nop{}.Publish(context.Background(), domain.CheckoutEvent{}))
}
