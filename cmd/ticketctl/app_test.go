package main

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/srgjo27/ticketing_client/internal/platform/config"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestApp(t *testing.T, backend http.Handler) (*app, *syncBuffer) {
	t.Helper()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	out := &syncBuffer{}
	a := newApp(config.Config{
		APIBaseURL:      srv.URL,
		APIToken:        "secret",
		HTTPTimeout:     time.Second,
		Lang:            "en",
		PollInterval:    time.Millisecond,
		PollMaxAttempts: 10,
		ReservationTTL:  time.Minute,
	}, zaptest.NewLogger(t), out)
	t.Cleanup(a.Close)
	return a, out
}

func TestWishlistCheckoutCommand(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/wishlist/checkout", func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "Bearer secret", req.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `{"data":{"orderDraftId":"x","next":"/order-information/x"}}`)
	})
	a, out := newTestApp(t, r)

	err := a.dispatch(context.Background(), "wishlist", []string{"checkout", "-ids", "1,2"})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "-> /order-information/x")
	assert.Contains(t, out.String(), "draft order: x")
}

func TestCheckoutCommand_InvalidRecipientMakesNoPatch(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/orders/{id}", func(w http.ResponseWriter, req *http.Request) {
		_, _ = io.WriteString(w, `{"id":"o1","status":"Pending"}`)
	})
	var patches atomic.Int32
	r.Patch("/orders/{id}", func(w http.ResponseWriter, req *http.Request) {
		patches.Add(1)
		w.WriteHeader(http.StatusNoContent)
	})
	a, out := newTestApp(t, r)

	err := a.dispatch(context.Background(), "checkout", []string{"-order", "o1", "-name", "A", "-phone", "123", "-email", "x"})

	require.Error(t, err)
	a.report(err)
	assert.Equal(t, int32(1), patches.Load(), "only the order information step reaches the backend")
	assert.Contains(t, out.String(), "Phone number is invalid")
	assert.NotContains(t, out.String(), "-> /payment/o1")
}

func TestReport_AuthErrorPrintsLoginHint(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/ai/suggestions", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	a, out := newTestApp(t, r)

	err := a.dispatch(context.Background(), "suggest", []string{"-prompt", "jazz"})
	require.Error(t, err)
	a.report(err)

	assert.Contains(t, out.String(), "log in again")
	assert.Contains(t, out.String(), "ticketctl login")
}

func TestDispatch_UnknownCommand(t *testing.T) {
	a, out := newTestApp(t, http.NotFoundHandler())

	err := a.dispatch(context.Background(), "refund", nil)
	require.ErrorIs(t, err, errUsage)
	a.report(err)

	assert.Contains(t, out.String(), "usage: ticketctl")
}

func TestPayCommand_SurvivesBusyStatusAddr(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = busy.Close() })

	r := chi.NewRouter()
	r.Get("/orders/{id}", func(w http.ResponseWriter, req *http.Request) {
		_, _ = io.WriteString(w, `{"data":{"id":"o1","status":"Pending"}}`)
	})
	r.Post("/payments/vnpay/{orderId}", func(w http.ResponseWriter, req *http.Request) {
		_, _ = io.WriteString(w, `{"data":{"paymentId":"p1","qrCodeUrl":"https://pay.example/qr/p1"}}`)
	})
	var polls atomic.Int32
	r.Get("/payments/{id}/status", func(w http.ResponseWriter, req *http.Request) {
		if polls.Add(1) < 2 {
			_, _ = io.WriteString(w, `{"data":{"status":"Pending"}}`)
			return
		}
		_, _ = io.WriteString(w, `{"data":{"status":"Paid"}}`)
	})
	var cancels atomic.Int32
	r.Post("/payments/{id}/cancel", func(w http.ResponseWriter, req *http.Request) {
		cancels.Add(1)
		w.WriteHeader(http.StatusNoContent)
	})
	a, out := newTestApp(t, r)
	a.cfg.StatusAddr = busy.Addr().String()
	a.cfg.SuccessDelay = time.Millisecond

	err = a.dispatch(context.Background(), "pay", []string{"-order", "o1"})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "-> /payment-success/o1")
	assert.Equal(t, int32(0), cancels.Load(), "the payment must not be cancelled")
}
