package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/srgjo27/ticketing_client/internal/core/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS payment_sessions (
	id         UUID PRIMARY KEY,
	order_id   TEXT NOT NULL,
	payment_id TEXT NOT NULL,
	status     TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	expires_at TIMESTAMPTZ NOT NULL,
	closed_at  TIMESTAMPTZ
);
CREATE INDEX IF NOT EXISTS idx_payment_sessions_open ON payment_sessions (expires_at) WHERE status = 'OPEN';
`

const sweepBatchSize = 100

type SessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create payment_sessions: %w", err)
	}
	return nil
}

func (r *SessionRepository) CreateSession(ctx context.Context, session *domain.PaymentSession) error {
	query := `
	INSERT INTO payment_sessions (id, order_id, payment_id, status, created_at, expires_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		session.ID, session.OrderID, session.PaymentID, string(session.Status), session.CreatedAt, session.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to insert payment session: %w", err)
	}

	return nil
}

// UpdateStatus moves a session to status. Any status other than OPEN also
// stamps closed_at.
func (r *SessionRepository) UpdateStatus(ctx context.Context, sessionID uuid.UUID, status domain.SessionStatus) error {
	query := `
	UPDATE payment_sessions
	SET status = $1, closed_at = $2
	WHERE id = $3
	`

	var closedAt *time.Time
	if status != domain.SessionOpen {
		now := time.Now()
		closedAt = &now
	}

	res, err := r.db.ExecContext(ctx, query, string(status), closedAt, sessionID)
	if err != nil {
		return fmt.Errorf("failed to update payment session %s: %w", sessionID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("payment session %s: %w", sessionID, domain.ErrNotFound)
	}

	return nil
}

func (r *SessionRepository) GetExpiredSessions(ctx context.Context, now time.Time) ([]domain.PaymentSession, error) {
	query := `
	SELECT id, order_id, payment_id, status, created_at, expires_at, closed_at
	FROM payment_sessions
	WHERE status = 'OPEN' AND expires_at < $1
	ORDER BY expires_at
	LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, now, sweepBatchSize)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var sessions []domain.PaymentSession
	for rows.Next() {
		var (
			s        domain.PaymentSession
			status   string
			closedAt sql.NullTime
		)
		if err := rows.Scan(&s.ID, &s.OrderID, &s.PaymentID, &status, &s.CreatedAt, &s.ExpiresAt, &closedAt); err != nil {
			return nil, err
		}

		s.Status = domain.SessionStatus(status)
		if closedAt.Valid {
			t := closedAt.Time
			s.ClosedAt = &t
		}
		sessions = append(sessions, s)
	}

	return sessions, rows.Err()
}
