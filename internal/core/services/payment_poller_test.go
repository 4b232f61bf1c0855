package services_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap/zaptest"

	"github.com/srgjo27/ticketing_client/internal/core/domain"
	"github.com/srgjo27/ticketing_client/internal/core/ports/mocks"
	"github.com/srgjo27/ticketing_client/internal/core/services"
)

func fastPollerConfig(maxAttempts int) services.PollerConfig {
	return services.PollerConfig{
		Interval:      time.Millisecond,
		MaxAttempts:   maxAttempts,
		SuccessDelay:  time.Millisecond,
		CancelTimeout: 100 * time.Millisecond,
	}
}

func testIntent() *domain.PaymentIntent {
	return &domain.PaymentIntent{
		ID:        "p1",
		OrderID:   "o1",
		Status:    domain.PaymentPending,
		QRCodeURL: "https://pay.example/qr/p1",
	}
}

func TestPaymentPoller_PaidTransitionsOnce(t *testing.T) {
	payments := mocks.NewPaymentAPI(t)
	orders := mocks.NewOrderAPI(t)
	nav := mocks.NewNavigator(t)

	payments.On("CreateVNPayPayment", mock.Anything, "o1").Return(testIntent(), nil)
	payments.On("GetPaymentStatus", mock.Anything, "p1").Return(domain.PaymentPending, nil).Twice()
	payments.On("GetPaymentStatus", mock.Anything, "p1").Return(domain.PaymentPaid, nil).Once()
	orders.On("GetOrder", mock.Anything, "o1").Return(&domain.Order{ID: "o1", Status: domain.OrderPaid}, nil)
	nav.On("Navigate", "/payment-success/o1").Return().Once()

	poller := services.NewPaymentPoller(payments, orders, nav, fastPollerConfig(100), zaptest.NewLogger(t))

	err := poller.Run(context.Background(), "o1")
	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
	payments.AssertNumberOfCalls(t, "GetPaymentStatus", 3)
	payments.AssertNotCalled(t, "CancelPayment", mock.Anything, mock.Anything)

	snap := poller.Snapshot()
	assert.Equal(t, services.PollPaid, snap.State)
	assert.Equal(t, 3, snap.Attempts)
	assert.Equal(t, "p1", snap.PaymentID)
	assert.Equal(t, "https://pay.example/qr/p1", snap.QRCodeURL)
}

func TestPaymentPoller_PaidButOrderStillPendingNavigates(t *testing.T) {
	payments := mocks.NewPaymentAPI(t)
	orders := mocks.NewOrderAPI(t)
	nav := mocks.NewNavigator(t)

	payments.On("CreateVNPayPayment", mock.Anything, "o1").Return(testIntent(), nil)
	payments.On("GetPaymentStatus", mock.Anything, "p1").Return(domain.PaymentPaid, nil).Once()
	orders.On("GetOrder", mock.Anything, "o1").Return(&domain.Order{ID: "o1", Status: domain.OrderPending}, nil)
	nav.On("Navigate", "/payment-success/o1").Return().Once()

	poller := services.NewPaymentPoller(payments, orders, nav, fastPollerConfig(100), nil)

	assert.NoError(t, poller.Run(context.Background(), "o1"))
}

func TestPaymentPoller_PaidButOrderCancelledIsConflict(t *testing.T) {
	payments := mocks.NewPaymentAPI(t)
	orders := mocks.NewOrderAPI(t)
	nav := mocks.NewNavigator(t)

	payments.On("CreateVNPayPayment", mock.Anything, "o1").Return(testIntent(), nil)
	payments.On("GetPaymentStatus", mock.Anything, "p1").Return(domain.PaymentPaid, nil).Once()
	orders.On("GetOrder", mock.Anything, "o1").Return(&domain.Order{ID: "o1", Status: domain.OrderCancelled}, nil)

	poller := services.NewPaymentPoller(payments, orders, nav, fastPollerConfig(100), nil)

	err := poller.Run(context.Background(), "o1")

	assert.ErrorIs(t, err, domain.ErrPaymentConflict)
	nav.AssertNotCalled(t, "Navigate", mock.Anything)
}

func TestPaymentPoller_PersistentTransientErrorsTimeOut(t *testing.T) {
	payments := mocks.NewPaymentAPI(t)
	nav := mocks.NewNavigator(t)

	transient := &domain.TransientError{Op: "GET /payments/{id}/status", Err: errors.New("connection reset")}
	payments.On("CreateVNPayPayment", mock.Anything, "o1").Return(testIntent(), nil)
	payments.On("GetPaymentStatus", mock.Anything, "p1").Return(domain.PaymentStatus(""), transient)
	payments.On("CancelPayment", mock.Anything, "p1").Return(errors.New("cancel endpoint down")).Once()

	poller := services.NewPaymentPoller(payments, nil, nav, fastPollerConfig(5), zaptest.NewLogger(t))

	err := poller.Run(context.Background(), "o1")

	assert.ErrorIs(t, err, domain.ErrPollTimeout)
	assert.NotErrorIs(t, err, domain.ErrPaymentFailed)
	payments.AssertNumberOfCalls(t, "GetPaymentStatus", 5)

	snap := poller.Snapshot()
	assert.Equal(t, services.PollTimedOut, snap.State)
	assert.Contains(t, snap.LastError, "connection reset")
}

func TestPaymentPoller_TransientErrorThenPaid(t *testing.T) {
	payments := mocks.NewPaymentAPI(t)
	nav := mocks.NewNavigator(t)

	payments.On("CreateVNPayPayment", mock.Anything, "o1").Return(testIntent(), nil)
	payments.On("GetPaymentStatus", mock.Anything, "p1").
		Return(domain.PaymentStatus(""), &domain.APIError{StatusCode: 503}).Once()
	payments.On("GetPaymentStatus", mock.Anything, "p1").Return(domain.PaymentPaid, nil).Once()
	nav.On("Navigate", "/payment-success/o1").Return().Once()

	poller := services.NewPaymentPoller(payments, nil, nav, fastPollerConfig(100), nil)

	assert.NoError(t, poller.Run(context.Background(), "o1"))
	payments.AssertNumberOfCalls(t, "GetPaymentStatus", 2)
}

func TestPaymentPoller_TerminalStatuses(t *testing.T) {
	tests := []struct {
		name      string
		status    domain.PaymentStatus
		wantErr   error
		wantState services.PollState
		session   domain.SessionStatus
		event     domain.CheckoutEventType
	}{
		{"failed", domain.PaymentFailed, domain.ErrPaymentFailed, services.PollFailed, domain.SessionFailed, domain.EventPaymentFailed},
		{"cancelled", domain.PaymentCancelled, domain.ErrPaymentCancelled, services.PollCancelled, domain.SessionCancelled, domain.EventPaymentCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payments := mocks.NewPaymentAPI(t)
			nav := mocks.NewNavigator(t)
			sessions := mocks.NewSessionRepository(t)
			publisher := mocks.NewEventPublisher(t)

			payments.On("CreateVNPayPayment", mock.Anything, "o1").Return(testIntent(), nil)
			payments.On("GetPaymentStatus", mock.Anything, "p1").Return(domain.PaymentPending, nil).Once()
			payments.On("GetPaymentStatus", mock.Anything, "p1").Return(tt.status, nil).Once()
			sessions.On("CreateSession", mock.Anything, mock.MatchedBy(func(s *domain.PaymentSession) bool {
				return s.Status == domain.SessionOpen && s.PaymentID == "p1" && s.ExpiresAt.After(s.CreatedAt)
			})).Return(nil)
			sessions.On("UpdateStatus", mock.Anything, mock.AnythingOfType("uuid.UUID"), tt.session).Return(nil)
			publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e domain.CheckoutEvent) bool {
				return e.Type == tt.event && e.OrderID == "o1" && e.Attempts == 2
			})).Return(nil)

			poller := services.NewPaymentPoller(payments, nil, nav, fastPollerConfig(100), zaptest.NewLogger(t),
				services.WithSessionRepository(sessions),
				services.WithEventPublisher(publisher),
			)

			err := poller.Run(context.Background(), "o1")

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantState, poller.Snapshot().State)
			payments.AssertNumberOfCalls(t, "GetPaymentStatus", 2)
			payments.AssertNotCalled(t, "CancelPayment", mock.Anything, mock.Anything)
		})
	}
}

func TestPaymentPoller_NavigateAwayCancelsBestEffort(t *testing.T) {
	payments := mocks.NewPaymentAPI(t)
	nav := mocks.NewNavigator(t)
	publisher := mocks.NewEventPublisher(t)

	cfg := fastPollerConfig(100)
	cfg.Interval = time.Hour

	payments.On("CreateVNPayPayment", mock.Anything, "o1").Return(testIntent(), nil)
	payments.On("CancelPayment", mock.Anything, "p1").Return(errors.New("boom")).Once()
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e domain.CheckoutEvent) bool {
		return e.Type == domain.EventPaymentAbandoned
	})).Return(errors.New("broker down"))

	poller := services.NewPaymentPoller(payments, nil, nav, cfg, zaptest.NewLogger(t), services.WithEventPublisher(publisher))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(5 * time.Millisecond)
		cancel()
	}()

	err := poller.Run(ctx, "o1")

	assert.ErrorIs(t, err, domain.ErrAborted)
	assert.Equal(t, services.PollAborted, poller.Snapshot().State)
	payments.AssertNotCalled(t, "GetPaymentStatus", mock.Anything, mock.Anything)
}

func TestPaymentPoller_NoStatusRequestAfterAbort(t *testing.T) {
	payments := mocks.NewPaymentAPI(t)
	nav := mocks.NewNavigator(t)

	var statusCalls atomic.Int32
	payments.On("CreateVNPayPayment", mock.Anything, "o1").Return(testIntent(), nil)
	payments.On("GetPaymentStatus", mock.Anything, "p1").
		Run(func(mock.Arguments) { statusCalls.Add(1) }).
		Return(domain.PaymentPending, nil)
	payments.On("CancelPayment", mock.Anything, "p1").Return(nil).Once()

	poller := services.NewPaymentPoller(payments, nil, nav, fastPollerConfig(100000), nil)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		for statusCalls.Load() < 3 {
			time.Sleep(time.Millisecond)
		}
		cancel()
	}()

	err := poller.Run(ctx, "o1")
	atReturn := statusCalls.Load()
	time.Sleep(20 * time.Millisecond)

	assert.ErrorIs(t, err, domain.ErrAborted)
	assert.GreaterOrEqual(t, atReturn, int32(3))
	assert.Equal(t, atReturn, statusCalls.Load(), "no status request may start after Run returns")
	assert.Equal(t, services.PollAborted, poller.Snapshot().State)
}

func TestPaymentPoller_SecondRunStartsFresh(t *testing.T) {
	payments := mocks.NewPaymentAPI(t)
	nav := mocks.NewNavigator(t)
	sessions := mocks.NewSessionRepository(t)

	second := &domain.PaymentIntent{ID: "p2", OrderID: "o1", Status: domain.PaymentPending}
	payments.On("CreateVNPayPayment", mock.Anything, "o1").Return(testIntent(), nil).Once()
	payments.On("CreateVNPayPayment", mock.Anything, "o1").Return(second, nil).Once()
	payments.On("GetPaymentStatus", mock.Anything, "p1").Return(domain.PaymentPending, nil).Once()
	payments.On("GetPaymentStatus", mock.Anything, "p1").Return(domain.PaymentFailed, nil).Once()
	payments.On("GetPaymentStatus", mock.Anything, "p2").Return(domain.PaymentCancelled, nil).Once()
	sessions.On("CreateSession", mock.Anything, mock.MatchedBy(func(s *domain.PaymentSession) bool {
		return s.PaymentID == "p1"
	})).Return(nil).Once()
	sessions.On("CreateSession", mock.Anything, mock.MatchedBy(func(s *domain.PaymentSession) bool {
		return s.PaymentID == "p2"
	})).Return(errors.New("db down")).Once()
	sessions.On("UpdateStatus", mock.Anything, mock.AnythingOfType("uuid.UUID"), domain.SessionFailed).Return(nil).Once()

	poller := services.NewPaymentPoller(payments, nil, nav, fastPollerConfig(100), zaptest.NewLogger(t),
		services.WithSessionRepository(sessions),
	)

	assert.ErrorIs(t, poller.Run(context.Background(), "o1"), domain.ErrPaymentFailed)
	assert.ErrorIs(t, poller.Run(context.Background(), "o1"), domain.ErrPaymentCancelled)

	sessions.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, domain.SessionCancelled)
	snap := poller.Snapshot()
	assert.Equal(t, services.PollCancelled, snap.State)
	assert.Equal(t, "p2", snap.PaymentID)
	assert.Empty(t, snap.QRCodeURL)
	assert.Equal(t, 1, snap.Attempts)
}

func TestPaymentPoller_ExpiryCause(t *testing.T) {
	payments := mocks.NewPaymentAPI(t)
	nav := mocks.NewNavigator(t)

	cfg := fastPollerConfig(100)
	cfg.Interval = time.Hour

	payments.On("CreateVNPayPayment", mock.Anything, "o1").Return(testIntent(), nil)
	payments.On("CancelPayment", mock.Anything, "p1").Return(nil).Once()

	poller := services.NewPaymentPoller(payments, nil, nav, cfg, nil)

	ctx, cancel := context.WithCancelCause(context.Background())
	go func() {
		time.Sleep(5 * time.Millisecond)
		cancel(domain.ErrOrderExpired)
	}()

	assert.ErrorIs(t, poller.Run(ctx, "o1"), domain.ErrOrderExpired)
}

func TestPaymentPoller_AuthErrorStops(t *testing.T) {
	payments := mocks.NewPaymentAPI(t)
	nav := mocks.NewNavigator(t)

	payments.On("CreateVNPayPayment", mock.Anything, "o1").Return(testIntent(), nil)
	payments.On("GetPaymentStatus", mock.Anything, "p1").
		Return(domain.PaymentStatus(""), &domain.APIError{StatusCode: 401}).Once()

	poller := services.NewPaymentPoller(payments, nil, nav, fastPollerConfig(100), nil)

	err := poller.Run(context.Background(), "o1")

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	payments.AssertNumberOfCalls(t, "GetPaymentStatus", 1)
	payments.AssertNotCalled(t, "CancelPayment", mock.Anything, mock.Anything)
}

func TestPaymentPoller_CreateFailureStaysInitializing(t *testing.T) {
	payments := mocks.NewPaymentAPI(t)
	nav := mocks.NewNavigator(t)

	payments.On("CreateVNPayPayment", mock.Anything, "o1").
		Return(nil, &domain.TransientError{Op: "POST /payments/vnpay/{orderId}", Err: errors.New("timeout")})

	poller := services.NewPaymentPoller(payments, nil, nav, fastPollerConfig(100), nil)

	err := poller.Run(context.Background(), "o1")

	assert.True(t, domain.IsTransient(err))
	snap := poller.Snapshot()
	assert.Equal(t, services.PollInitializing, snap.State)
	assert.NotEmpty(t, snap.LastError)
}
