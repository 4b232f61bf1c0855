package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/srgjo27/ticketing_client/internal/core/domain"
	"github.com/srgjo27/ticketing_client/internal/core/ports"
)

// CheckoutService implements the order information and recipient steps of a
// checkout, plus the back and expiry exits.
type CheckoutService struct {
	orders         ports.OrderAPI
	payments       ports.PaymentAPI
	nav            ports.Navigator
	logger         *zap.Logger
	courtesyWindow time.Duration
}

func NewCheckoutService(orders ports.OrderAPI, payments ports.PaymentAPI, nav ports.Navigator, logger *zap.Logger) *CheckoutService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CheckoutService{
		orders:         orders,
		payments:       payments,
		nav:            nav,
		logger:         logger,
		courtesyWindow: 5 * time.Second,
	}
}

func (s *CheckoutService) LoadOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	if orderID == "" {
		return nil, domain.NewValidationError("orderId", domain.MsgMissingID)
	}
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order %s: %w", orderID, err)
	}
	return order, nil
}

// SubmitOrderInformation saves the event question answers and moves on to
// the recipient step. On failure the caller stays on the current step.
func (s *CheckoutService) SubmitOrderInformation(ctx context.Context, orderID string, answers json.RawMessage) error {
	if orderID == "" {
		return domain.NewValidationError("orderId", domain.MsgMissingID)
	}
	if len(answers) == 0 {
		answers = json.RawMessage(`{}`)
	}

	if _, err := s.orders.UpdateOrder(ctx, orderID, domain.OrderUpdate{Answers: answers}); err != nil {
		return fmt.Errorf("failed to save order information: %w", err)
	}

	s.nav.Navigate(RecipientInformationPath(orderID))
	return nil
}

// SubmitRecipient validates the recipient locally before any request is made,
// saves it and moves on to the payment step.
func (s *CheckoutService) SubmitRecipient(ctx context.Context, orderID string, recipient domain.Recipient) error {
	if orderID == "" {
		return domain.NewValidationError("orderId", domain.MsgMissingID)
	}
	if err := recipient.Validate(); err != nil {
		return err
	}

	normalized := recipient.Normalized()
	if _, err := s.orders.UpdateOrder(ctx, orderID, domain.OrderUpdate{Recipient: &normalized}); err != nil {
		return fmt.Errorf("failed to save recipient: %w", err)
	}

	s.nav.Navigate(PaymentPath(orderID))
	return nil
}

// Back marks the order failed and returns to ticket selection. The status
// update is a courtesy: its failure is logged and never blocks navigation.
func (s *CheckoutService) Back(ctx context.Context, orderID, eventID string) {
	if orderID != "" {
		cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.courtesyWindow)
		defer cancel()

		if _, err := s.orders.UpdateOrder(cctx, orderID, domain.StatusUpdate(domain.OrderFailed)); err != nil {
			s.logger.Warn("failed to release order on back",
				zap.String("order_id", orderID),
				zap.Error(err),
			)
		}
	}
	s.nav.Navigate(EventTicketsPath(eventID))
}

// Expire leaves the checkout after the reservation ran out. A pending payment
// intent is cancelled best-effort.
func (s *CheckoutService) Expire(ctx context.Context, paymentID string) {
	if paymentID != "" {
		cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.courtesyWindow)
		defer cancel()

		if err := s.payments.CancelPayment(cctx, paymentID); err != nil {
			s.logger.Warn("failed to cancel payment on expiry",
				zap.String("payment_id", paymentID),
				zap.Error(err),
			)
		}
	}
	s.nav.Navigate(HomePath)
}

type CheckoutInput struct {
	Answers   json.RawMessage
	Recipient domain.Recipient
}

// CheckoutSession runs the whole checkout of one order under a single
// reservation countdown.
type CheckoutSession struct {
	checkout *CheckoutService
	poller   *PaymentPoller
	ttl      time.Duration
	opts     []CountdownOption
	logger   *zap.Logger

	mu        sync.RWMutex
	countdown *Countdown
}

func NewCheckoutSession(checkout *CheckoutService, poller *PaymentPoller, ttl time.Duration, logger *zap.Logger, opts ...CountdownOption) *CheckoutSession {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &CheckoutSession{
		checkout: checkout,
		poller:   poller,
		ttl:      ttl,
		opts:     opts,
		logger:   logger,
	}
}

// Countdown returns the running countdown, or nil before Run starts one.
func (cs *CheckoutSession) Countdown() *Countdown {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.countdown
}

func (cs *CheckoutSession) Poller() *PaymentPoller {
	return cs.poller
}

// Run loads the order, submits both information steps and drives the payment.
// The countdown length is the server expiry of the order when present and
// the configured reservation TTL otherwise.
func (cs *CheckoutSession) Run(ctx context.Context, orderID string, in CheckoutInput) error {
	return cs.guarded(ctx, orderID, func(ctx context.Context) error {
		if err := cs.checkout.SubmitOrderInformation(ctx, orderID, in.Answers); err != nil {
			return err
		}
		if err := cs.checkout.SubmitRecipient(ctx, orderID, in.Recipient); err != nil {
			return err
		}
		return cs.poller.Run(ctx, orderID)
	})
}

// Pay runs only the payment step, for an order whose information steps were
// completed earlier.
func (cs *CheckoutSession) Pay(ctx context.Context, orderID string) error {
	return cs.guarded(ctx, orderID, func(ctx context.Context) error {
		return cs.poller.Run(ctx, orderID)
	})
}

// guarded runs steps under the reservation countdown of the order. On expiry
// the steps' context is cancelled with domain.ErrOrderExpired and the client
// returns home.
func (cs *CheckoutSession) guarded(ctx context.Context, orderID string, steps func(context.Context) error) error {
	order, err := cs.checkout.LoadOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if order.Status.IsTerminal() {
		return fmt.Errorf("order %s is already %s", orderID, order.Status)
	}

	d := cs.ttl
	if order.ExpiresAt != nil {
		d = time.Until(*order.ExpiresAt)
	}

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	countdown := NewCountdown(d, func() { cancel(domain.ErrOrderExpired) }, cs.opts...)
	cs.mu.Lock()
	cs.countdown = countdown
	cs.mu.Unlock()

	countdown.Start(ctx)
	defer countdown.Stop()

	cs.logger.Info("checkout started",
		zap.String("order_id", orderID),
		zap.Duration("reservation", d),
	)

	err = steps(ctx)
	if err != nil && errors.Is(context.Cause(ctx), domain.ErrOrderExpired) {
		// a running poller has already cancelled its intent
		cs.checkout.Expire(ctx, "")
		return domain.ErrOrderExpired
	}
	return err
}
