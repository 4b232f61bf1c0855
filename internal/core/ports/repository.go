package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/ticketing_client/internal/core/domain"
)

type SessionRepository interface {
	CreateSession(ctx context.Context, session *domain.PaymentSession) error
	UpdateStatus(ctx context.Context, sessionID uuid.UUID, status domain.SessionStatus) error
	GetExpiredSessions(ctx context.Context, now time.Time) ([]domain.PaymentSession, error)
}
