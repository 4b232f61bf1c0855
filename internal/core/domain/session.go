package domain

import (
	"time"

	"github.com/google/uuid"
)

type SessionStatus string

const (
	SessionOpen      SessionStatus = "OPEN"
	SessionPaid      SessionStatus = "PAID"
	SessionFailed    SessionStatus = "FAILED"
	SessionCancelled SessionStatus = "CANCELLED"
	SessionTimedOut  SessionStatus = "TIMED_OUT"
	SessionAbandoned SessionStatus = "ABANDONED"
	SessionSwept     SessionStatus = "SWEPT"
)

// PaymentSession is the local journal entry of one payment intent. An OPEN
// session past ExpiresAt belongs to a client that never finished polling.
type PaymentSession struct {
	ID        uuid.UUID
	OrderID   string
	PaymentID string
	Status    SessionStatus
	CreatedAt time.Time
	ExpiresAt time.Time
	ClosedAt  *time.Time
}

type CheckoutEventType string

const (
	EventPaymentSucceeded CheckoutEventType = "PaymentSucceeded"
	EventPaymentFailed    CheckoutEventType = "PaymentFailed"
	EventPaymentCancelled CheckoutEventType = "PaymentCancelled"
	EventPaymentTimedOut  CheckoutEventType = "PaymentTimedOut"
	EventPaymentAbandoned CheckoutEventType = "PaymentAbandoned"
	EventOrderExpired     CheckoutEventType = "OrderExpired"
)

type CheckoutEvent struct {
	Type      CheckoutEventType
	OrderID   string
	PaymentID string
	Attempts  int
	Reason    string
}
