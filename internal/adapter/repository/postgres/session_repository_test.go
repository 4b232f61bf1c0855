package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/ticketing_client/internal/adapter/repository/postgres"
	"github.com/srgjo27/ticketing_client/internal/core/domain"
)

func newRepo(t *testing.T) (*postgres.SessionRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return postgres.NewSessionRepository(db), mock
}

func TestCreateSession(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()
	session := &domain.PaymentSession{
		ID:        uuid.New(),
		OrderID:   "o1",
		PaymentID: "p1",
		Status:    domain.SessionOpen,
		CreatedAt: now,
		ExpiresAt: now.Add(15 * time.Minute),
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO payment_sessions")).
		WithArgs(session.ID, "o1", "p1", "OPEN", session.CreatedAt, session.ExpiresAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.CreateSession(context.Background(), session))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSession_Error(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO payment_sessions")).
		WillReturnError(errors.New("duplicate key"))

	err := repo.CreateSession(context.Background(), &domain.PaymentSession{ID: uuid.New()})
	assert.ErrorContains(t, err, "failed to insert payment session")
}

func TestUpdateStatus(t *testing.T) {
	repo, mock := newRepo(t)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE payment_sessions")).
		WithArgs("SWEPT", sqlmock.AnyArg(), id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE payment_sessions")).
		WithArgs("PAID", sqlmock.AnyArg(), id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.UpdateStatus(context.Background(), id, domain.SessionSwept))

	err := repo.UpdateStatus(context.Background(), id, domain.SessionPaid)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetExpiredSessions(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()
	id := uuid.New()
	closed := now.Add(-time.Minute)

	rows := sqlmock.NewRows([]string{"id", "order_id", "payment_id", "status", "created_at", "expires_at", "closed_at"}).
		AddRow(id.String(), "o1", "p1", "OPEN", now.Add(-20*time.Minute), now.Add(-5*time.Minute), nil).
		AddRow(uuid.New().String(), "o2", "p2", "OPEN", now.Add(-30*time.Minute), now.Add(-15*time.Minute), closed)

	mock.ExpectQuery(regexp.QuoteMeta("FROM payment_sessions")).
		WithArgs(now, 100).
		WillReturnRows(rows)

	sessions, err := repo.GetExpiredSessions(context.Background(), now)

	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, id, sessions[0].ID)
	assert.Equal(t, domain.SessionOpen, sessions[0].Status)
	assert.Nil(t, sessions[0].ClosedAt)
	require.NotNil(t, sessions[1].ClosedAt)
	assert.True(t, closed.Equal(*sessions[1].ClosedAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchema(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS payment_sessions")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
