package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/srgjo27/ticketing_client/internal/core/domain"
	"github.com/srgjo27/ticketing_client/internal/core/ports"
	"github.com/srgjo27/ticketing_client/internal/platform/metrics"
)

// SessionSweeper cancels payment intents whose client stopped polling before
// a terminal state, i.e. journal sessions still OPEN past their expiry.
type SessionSweeper struct {
	sessions ports.SessionRepository
	payments ports.PaymentAPI
	interval time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

func NewSessionSweeper(sessions ports.SessionRepository, payments ports.PaymentAPI, interval time.Duration, logger *zap.Logger) *SessionSweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionSweeper{
		sessions: sessions,
		payments: payments,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *SessionSweeper) RunBackgroundCleanup(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("session sweeper started", zap.Duration("interval", s.interval))

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("session sweeper stopped")
			return
		case <-ticker.C:
			if _, err := s.Sweep(ctx); err != nil {
				s.logger.Error("session sweep failed", zap.Error(err))
			}
		}
	}
}

// Sweep processes one batch of expired sessions and returns how many were
// marked SWEPT. A failing payment cancel does not keep a session open.
func (s *SessionSweeper) Sweep(ctx context.Context) (int, error) {
	expired, err := s.sessions.GetExpiredSessions(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("failed to fetch expired sessions: %w", err)
	}
	if len(expired) == 0 {
		return 0, nil
	}

	s.logger.Info("found expired payment sessions", zap.Int("count", len(expired)))

	swept := 0
	for _, session := range expired {
		if session.PaymentID != "" {
			if err := s.payments.CancelPayment(ctx, session.PaymentID); err != nil {
				s.logger.Warn("failed to cancel orphaned payment",
					zap.String("payment_id", session.PaymentID),
					zap.Error(err),
				)
			}
		}

		if err := s.sessions.UpdateStatus(ctx, session.ID, domain.SessionSwept); err != nil {
			s.logger.Error("failed to mark session swept",
				zap.String("session_id", session.ID.String()),
				zap.Error(err),
			)
			continue
		}

		metrics.RecordSessionSwept()
		swept++
		s.logger.Info("payment session swept",
			zap.String("session_id", session.ID.String()),
			zap.String("order_id", session.OrderID),
		)
	}

	return swept, nil
}
