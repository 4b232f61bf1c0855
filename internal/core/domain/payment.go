package domain

import (
	"fmt"
	"strings"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPaid      PaymentStatus = "paid"
	PaymentFailed    PaymentStatus = "failed"
	PaymentCancelled PaymentStatus = "cancelled"
)

// NormalizePaymentStatus folds the casing and spelling variants returned by the
// payment endpoints into one of the four canonical statuses.
func NormalizePaymentStatus(raw string) (PaymentStatus, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pending", "processing", "created", "waiting":
		return PaymentPending, nil
	case "paid", "success", "succeeded", "completed":
		return PaymentPaid, nil
	case "failed", "failure", "error":
		return PaymentFailed, nil
	case "cancelled", "canceled", "expired":
		return PaymentCancelled, nil
	}
	return "", fmt.Errorf("unknown payment status %q", raw)
}

func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentPaid || s == PaymentFailed || s == PaymentCancelled
}

type PaymentIntent struct {
	ID        string
	OrderID   string
	Status    PaymentStatus
	QRCodeURL string
}
