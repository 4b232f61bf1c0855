package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/srgjo27/ticketing_client/internal/core/domain"
	"github.com/srgjo27/ticketing_client/internal/core/ports"
	"github.com/srgjo27/ticketing_client/internal/platform/metrics"
)

type PollState string

const (
	PollInitializing PollState = "initializing"
	PollPending      PollState = "pending"
	PollPaid         PollState = "paid"
	PollFailed       PollState = "failed"
	PollCancelled    PollState = "cancelled"
	PollTimedOut     PollState = "timed_out"
	PollAborted      PollState = "aborted"
)

type PollerConfig struct {
	Interval      time.Duration
	MaxAttempts   int
	SuccessDelay  time.Duration
	CancelTimeout time.Duration
	SessionTTL    time.Duration
}

func DefaultPollerConfig() PollerConfig {
	return PollerConfig{
		Interval:      3 * time.Second,
		MaxAttempts:   100,
		SuccessDelay:  1500 * time.Millisecond,
		CancelTimeout: 5 * time.Second,
		SessionTTL:    15 * time.Minute,
	}
}

func (c PollerConfig) withDefaults() PollerConfig {
	def := DefaultPollerConfig()
	if c.Interval <= 0 {
		c.Interval = def.Interval
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = def.MaxAttempts
	}
	if c.SuccessDelay < 0 {
		c.SuccessDelay = 0
	}
	if c.CancelTimeout <= 0 {
		c.CancelTimeout = def.CancelTimeout
	}
	if c.SessionTTL <= 0 {
		c.SessionTTL = def.SessionTTL
	}
	return c
}

type PaymentSnapshot struct {
	State     PollState `json:"state"`
	OrderID   string    `json:"orderId"`
	PaymentID string    `json:"paymentId,omitempty"`
	QRCodeURL string    `json:"qrCodeUrl,omitempty"`
	Attempts  int       `json:"attempts"`
	LastError string    `json:"lastError,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type PollerOption func(*PaymentPoller)

func WithSessionRepository(repo ports.SessionRepository) PollerOption {
	return func(p *PaymentPoller) {
		p.sessions = repo
	}
}

func WithEventPublisher(pub ports.EventPublisher) PollerOption {
	return func(p *PaymentPoller) {
		p.events = pub
	}
}

// PaymentPoller drives one VNPay payment from intent creation to a terminal
// state. Status requests are sequential, so at most one is in flight.
type PaymentPoller struct {
	payments ports.PaymentAPI
	orders   ports.OrderAPI
	sessions ports.SessionRepository
	events   ports.EventPublisher
	nav      ports.Navigator
	cfg      PollerConfig
	logger   *zap.Logger

	mu        sync.RWMutex
	snap      PaymentSnapshot
	sessionID uuid.UUID
}

// NewPaymentPoller builds a poller. orders is used to reconfirm a paid status
// and may be nil.
func NewPaymentPoller(payments ports.PaymentAPI, orders ports.OrderAPI, nav ports.Navigator, cfg PollerConfig, logger *zap.Logger, opts ...PollerOption) *PaymentPoller {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &PaymentPoller{
		payments: payments,
		orders:   orders,
		nav:      nav,
		cfg:      cfg.withDefaults(),
		logger:   logger,
		snap:     PaymentSnapshot{State: PollInitializing},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *PaymentPoller) Snapshot() PaymentSnapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snap
}

// Run creates the payment intent for orderID and polls its status until a
// terminal state. It returns nil once the payment is paid and the success
// page has been navigated to. Cancelling ctx aborts the payment; when the
// cancel cause is domain.ErrOrderExpired the reservation is treated as
// expired.
func (p *PaymentPoller) Run(ctx context.Context, orderID string) error {
	ctx, span := otel.Tracer("ticketing-client").Start(ctx, "PaymentPoller.Run")
	defer span.End()
	span.SetAttributes(attribute.String("order.id", orderID))

	err := p.run(ctx, orderID)
	if err != nil {
		span.RecordError(err)
	}
	span.SetAttributes(
		attribute.String("payment.state", string(p.Snapshot().State)),
		attribute.Int("payment.attempts", p.Snapshot().Attempts),
	)
	return err
}

func (p *PaymentPoller) run(ctx context.Context, orderID string) error {
	p.mu.Lock()
	p.snap = PaymentSnapshot{State: PollInitializing, OrderID: orderID, UpdatedAt: time.Now()}
	p.sessionID = uuid.Nil
	p.mu.Unlock()

	intent, err := p.payments.CreateVNPayPayment(ctx, orderID)
	if err != nil {
		if ctx.Err() != nil {
			return p.abortedBeforeIntent(ctx)
		}
		p.update(func(s *PaymentSnapshot) { s.LastError = err.Error() })
		p.logger.Warn("failed to create payment intent",
			zap.String("order_id", orderID),
			zap.Error(err),
		)
		return fmt.Errorf("failed to create payment for order %s: %w", orderID, err)
	}

	p.update(func(s *PaymentSnapshot) {
		s.State = PollPending
		s.PaymentID = intent.ID
		s.QRCodeURL = intent.QRCodeURL
		s.LastError = ""
	})
	p.journalOpen(ctx, intent)
	p.logger.Info("payment intent created",
		zap.String("order_id", orderID),
		zap.String("payment_id", intent.ID),
	)

	return p.poll(ctx, intent)
}

func (p *PaymentPoller) poll(ctx context.Context, intent *domain.PaymentIntent) error {
	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	attempts := 0
	for {
		select {
		case <-ctx.Done():
			return p.abort(ctx, intent, attempts)
		case <-ticker.C:
		}

		attempts++
		status, err := p.payments.GetPaymentStatus(ctx, intent.ID)
		// ticks that arrived while the request was in flight are dropped
		select {
		case <-ticker.C:
		default:
		}
		p.update(func(s *PaymentSnapshot) { s.Attempts = attempts })

		if err != nil {
			if ctx.Err() != nil {
				return p.abort(ctx, intent, attempts)
			}
			metrics.RecordPollAttempt("error")
			p.update(func(s *PaymentSnapshot) { s.LastError = err.Error() })
			if domain.IsAuthError(err) {
				p.logger.Error("payment status polling not authorized",
					zap.String("payment_id", intent.ID),
					zap.Error(err),
				)
				p.finish(ctx, intent, PollAborted, domain.SessionAbandoned, domain.EventPaymentAbandoned, attempts, err.Error())
				return fmt.Errorf("failed to poll payment %s: %w", intent.ID, err)
			}
			p.logger.Warn("payment status request failed, will retry",
				zap.String("payment_id", intent.ID),
				zap.Int("attempt", attempts),
				zap.Error(err),
			)
		} else {
			metrics.RecordPollAttempt(string(status))
			switch status {
			case domain.PaymentPaid:
				return p.succeed(ctx, intent, attempts)
			case domain.PaymentFailed:
				p.finish(ctx, intent, PollFailed, domain.SessionFailed, domain.EventPaymentFailed, attempts, "")
				return domain.ErrPaymentFailed
			case domain.PaymentCancelled:
				p.finish(ctx, intent, PollCancelled, domain.SessionCancelled, domain.EventPaymentCancelled, attempts, "")
				return domain.ErrPaymentCancelled
			}
		}

		if attempts >= p.cfg.MaxAttempts {
			p.logger.Warn("payment status polling gave up",
				zap.String("payment_id", intent.ID),
				zap.Int("attempts", attempts),
			)
			p.cancelPayment(ctx, intent.ID)
			p.finish(ctx, intent, PollTimedOut, domain.SessionTimedOut, domain.EventPaymentTimedOut, attempts, "")
			return domain.ErrPollTimeout
		}
	}
}

// succeed waits SuccessDelay, reconfirms the order when an OrderAPI is
// available and navigates to the success page.
func (p *PaymentPoller) succeed(ctx context.Context, intent *domain.PaymentIntent, attempts int) error {
	p.finish(ctx, intent, PollPaid, domain.SessionPaid, domain.EventPaymentSucceeded, attempts, "")

	if p.cfg.SuccessDelay > 0 {
		timer := time.NewTimer(p.cfg.SuccessDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
		case <-timer.C:
		}
	}

	// The payment is settled even if the user left during the delay; only an
	// expired reservation still gets the success page.
	if ctx.Err() != nil {
		if errors.Is(context.Cause(ctx), domain.ErrOrderExpired) {
			p.nav.Navigate(PaymentSuccessPath(intent.OrderID))
		}
		return nil
	}

	if p.orders != nil {
		order, err := p.orders.GetOrder(ctx, intent.OrderID)
		switch {
		case err != nil:
			p.logger.Warn("could not reconfirm paid order",
				zap.String("order_id", intent.OrderID),
				zap.Error(err),
			)
		case order.Status == domain.OrderFailed || order.Status == domain.OrderCancelled:
			p.logger.Error("payment reported paid but order is closed",
				zap.String("order_id", intent.OrderID),
				zap.String("order_status", string(order.Status)),
			)
			p.update(func(s *PaymentSnapshot) { s.LastError = domain.ErrPaymentConflict.Error() })
			return domain.ErrPaymentConflict
		case order.Status != domain.OrderPaid:
			p.logger.Warn("order not yet settled after payment",
				zap.String("order_id", intent.OrderID),
				zap.String("order_status", string(order.Status)),
			)
		}
	}

	p.nav.Navigate(PaymentSuccessPath(intent.OrderID))
	return nil
}

func (p *PaymentPoller) abort(ctx context.Context, intent *domain.PaymentIntent, attempts int) error {
	p.cancelPayment(ctx, intent.ID)

	if errors.Is(context.Cause(ctx), domain.ErrOrderExpired) {
		p.finish(ctx, intent, PollAborted, domain.SessionCancelled, domain.EventOrderExpired, attempts, "reservation expired")
		return domain.ErrOrderExpired
	}
	p.finish(ctx, intent, PollAborted, domain.SessionAbandoned, domain.EventPaymentAbandoned, attempts, "navigated away")
	return domain.ErrAborted
}

func (p *PaymentPoller) abortedBeforeIntent(ctx context.Context) error {
	p.update(func(s *PaymentSnapshot) { s.State = PollAborted })
	if errors.Is(context.Cause(ctx), domain.ErrOrderExpired) {
		return domain.ErrOrderExpired
	}
	return domain.ErrAborted
}

// cancelPayment asks the backend to cancel the intent. It runs on its own
// short timeout because ctx is usually already cancelled. Failures are only
// logged.
func (p *PaymentPoller) cancelPayment(ctx context.Context, paymentID string) {
	cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.cfg.CancelTimeout)
	defer cancel()

	if err := p.payments.CancelPayment(cctx, paymentID); err != nil {
		p.logger.Warn("failed to cancel payment",
			zap.String("payment_id", paymentID),
			zap.Error(err),
		)
	}
}

func (p *PaymentPoller) finish(ctx context.Context, intent *domain.PaymentIntent, state PollState, session domain.SessionStatus, event domain.CheckoutEventType, attempts int, reason string) {
	p.update(func(s *PaymentSnapshot) {
		s.State = state
		s.Attempts = attempts
	})
	metrics.RecordPaymentOutcome(string(state))

	sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.cfg.CancelTimeout)
	defer cancel()

	p.mu.RLock()
	sessionID := p.sessionID
	p.mu.RUnlock()
	if p.sessions != nil && sessionID != uuid.Nil {
		if err := p.sessions.UpdateStatus(sctx, sessionID, session); err != nil {
			p.logger.Warn("failed to update payment session",
				zap.String("session_id", sessionID.String()),
				zap.Error(err),
			)
		}
	}

	if p.events != nil {
		err := p.events.Publish(sctx, domain.CheckoutEvent{
			Type:      event,
			OrderID:   intent.OrderID,
			PaymentID: intent.ID,
			Attempts:  attempts,
			Reason:    reason,
		})
		if err != nil {
			p.logger.Warn("failed to publish checkout event",
				zap.String("event", string(event)),
				zap.Error(err),
			)
		}
	}

	p.logger.Info("payment session finished",
		zap.String("order_id", intent.OrderID),
		zap.String("payment_id", intent.ID),
		zap.String("state", string(state)),
		zap.Int("attempts", attempts),
	)
}

func (p *PaymentPoller) journalOpen(ctx context.Context, intent *domain.PaymentIntent) {
	if p.sessions == nil {
		return
	}
	now := time.Now()
	session := &domain.PaymentSession{
		ID:        uuid.New(),
		OrderID:   intent.OrderID,
		PaymentID: intent.ID,
		Status:    domain.SessionOpen,
		CreatedAt: now,
		ExpiresAt: now.Add(p.cfg.SessionTTL),
	}
	if err := p.sessions.CreateSession(ctx, session); err != nil {
		p.logger.Warn("failed to journal payment session",
			zap.String("payment_id", intent.ID),
			zap.Error(err),
		)
		return
	}
	p.mu.Lock()
	p.sessionID = session.ID
	p.mu.Unlock()
}

func (p *PaymentPoller) update(fn func(*PaymentSnapshot)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn(&p.snap)
	p.snap.UpdatedAt = time.Now()
}
