package domain

import (
	"encoding/json"
	"strings"
	"time"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "Pending"
	OrderPaid      OrderStatus = "Paid"
	OrderFailed    OrderStatus = "Failed"
	OrderCancelled OrderStatus = "Cancelled"
)

// NormalizeOrderStatus maps any casing of the backend order status onto the
// canonical value. Unknown values are returned as-is with ok=false.
func NormalizeOrderStatus(raw string) (OrderStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pending", "created", "reserved":
		return OrderPending, true
	case "paid", "completed", "success":
		return OrderPaid, true
	case "failed":
		return OrderFailed, true
	case "cancelled", "canceled", "expired":
		return OrderCancelled, true
	}
	return OrderStatus(raw), false
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderPaid || s == OrderFailed || s == OrderCancelled
}

type LineItem struct {
	TicketTypeID   string
	TicketTypeName string
	Quantity       int
	UnitPrice      int64
}

func (i LineItem) Total() int64 {
	return int64(i.Quantity) * i.UnitPrice
}

type Order struct {
	ID          string
	EventID     string
	Status      OrderStatus
	Items       []LineItem
	Subtotal    int64
	Discount    int64
	TotalAmount int64
	Recipient   Recipient
	Answers     json.RawMessage
	ExpiresAt   *time.Time
}

// OrderUpdate is a partial update; nil fields are left untouched by the backend.
type OrderUpdate struct {
	Answers   json.RawMessage
	Recipient *Recipient
	Status    *OrderStatus
}

func StatusUpdate(s OrderStatus) OrderUpdate {
	return OrderUpdate{Status: &s}
}
