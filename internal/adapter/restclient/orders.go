package restclient

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/srgjo27/ticketing_client/internal/core/domain"
)

type lineItemWire struct {
	TicketTypeID        flexString `json:"ticketTypeId"`
	TicketTypeIDSnake   flexString `json:"ticket_type_id"`
	TicketTypeName      string     `json:"ticketTypeName"`
	TicketTypeNameSnake string     `json:"ticket_type_name"`
	Name                string     `json:"name"`
	Quantity            flexInt64  `json:"quantity"`
	UnitPrice           flexInt64  `json:"unitPrice"`
	UnitPriceSnake      flexInt64  `json:"unit_price"`
	Price               flexInt64  `json:"price"`
}

type orderWire struct {
	ID                  flexString      `json:"id"`
	OrderID             flexString      `json:"orderId"`
	EventID             flexString      `json:"eventId"`
	EventIDSnake        flexString      `json:"event_id"`
	Status              string          `json:"status"`
	Items               []lineItemWire  `json:"items"`
	OrderItems          []lineItemWire  `json:"orderItems"`
	Subtotal            flexInt64       `json:"subtotal"`
	SubtotalSnake       flexInt64       `json:"sub_total"`
	Discount            flexInt64       `json:"discount"`
	DiscountAmount      flexInt64       `json:"discountAmount"`
	TotalAmount         flexInt64       `json:"totalAmount"`
	TotalAmountSnake    flexInt64       `json:"total_amount"`
	Total               flexInt64       `json:"total"`
	RecipientName       string          `json:"recipientName"`
	RecipientNameSnake  string          `json:"recipient_name"`
	FullName            string          `json:"fullName"`
	RecipientPhone      string          `json:"recipientPhone"`
	RecipientPhoneSnake string          `json:"recipient_phone"`
	RecipientEmail      string          `json:"recipientEmail"`
	RecipientEmailSnake string          `json:"recipient_email"`
	Answers             json.RawMessage `json:"answers"`
	ExpiresAt           *time.Time      `json:"expiresAt"`
	ExpiresAtSnake      *time.Time      `json:"expires_at"`
}

func (w orderWire) toDomain() (*domain.Order, bool) {
	status, known := domain.NormalizeOrderStatus(w.Status)

	items := w.Items
	if len(items) == 0 {
		items = w.OrderItems
	}
	lines := make([]domain.LineItem, 0, len(items))
	for _, it := range items {
		lines = append(lines, domain.LineItem{
			TicketTypeID:   firstNonEmpty(string(it.TicketTypeID), string(it.TicketTypeIDSnake)),
			TicketTypeName: firstNonEmpty(it.TicketTypeName, it.TicketTypeNameSnake, it.Name),
			Quantity:       int(it.Quantity),
			UnitPrice:      firstNonZero(it.UnitPrice, it.UnitPriceSnake, it.Price),
		})
	}

	order := &domain.Order{
		ID:          firstNonEmpty(string(w.ID), string(w.OrderID)),
		EventID:     firstNonEmpty(string(w.EventID), string(w.EventIDSnake)),
		Status:      status,
		Items:       lines,
		Subtotal:    firstNonZero(w.Subtotal, w.SubtotalSnake),
		Discount:    firstNonZero(w.Discount, w.DiscountAmount),
		TotalAmount: firstNonZero(w.TotalAmount, w.TotalAmountSnake, w.Total),
		Recipient: domain.Recipient{
			FullName: firstNonEmpty(w.RecipientName, w.RecipientNameSnake, w.FullName),
			Phone:    firstNonEmpty(w.RecipientPhone, w.RecipientPhoneSnake),
			Email:    firstNonEmpty(w.RecipientEmail, w.RecipientEmailSnake),
		},
		Answers:   decodeAnswers(w.Answers),
		ExpiresAt: firstTime(w.ExpiresAt, w.ExpiresAtSnake),
	}
	if order.Subtotal == 0 {
		for _, l := range lines {
			order.Subtotal += l.Total()
		}
	}
	if order.TotalAmount == 0 {
		order.TotalAmount = order.Subtotal - order.Discount
	}
	return order, known
}

// decodeAnswers accepts the answers blob either as embedded JSON or as a
// string holding JSON.
func decodeAnswers(raw json.RawMessage) json.RawMessage {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if raw[0] != '"' {
		return raw
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || s == "" {
		return nil
	}
	if json.Valid([]byte(s)) {
		return json.RawMessage(s)
	}
	return raw
}

type orderUpdateWire struct {
	Answers        *string `json:"answers,omitempty"`
	RecipientName  *string `json:"recipientName,omitempty"`
	RecipientPhone *string `json:"recipientPhone,omitempty"`
	RecipientEmail *string `json:"recipientEmail,omitempty"`
	Status         *string `json:"status,omitempty"`
}

func newOrderUpdateWire(u domain.OrderUpdate) orderUpdateWire {
	var w orderUpdateWire
	if u.Answers != nil {
		s := string(u.Answers)
		w.Answers = &s
	}
	if u.Recipient != nil {
		r := u.Recipient.Normalized()
		w.RecipientName = &r.FullName
		w.RecipientPhone = &r.Phone
		w.RecipientEmail = &r.Email
	}
	if u.Status != nil {
		s := string(*u.Status)
		w.Status = &s
	}
	return w
}

func (c *Client) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	var w orderWire
	if err := c.do(ctx, "GET", "/orders/{id}", "/orders/"+url.PathEscape(id), nil, &w); err != nil {
		return nil, err
	}
	return c.orderFromWire(w, id), nil
}

// UpdateOrder sends a partial update. Answers travel as a JSON-encoded string.
// A response without a body yields a nil order.
func (c *Client) UpdateOrder(ctx context.Context, id string, update domain.OrderUpdate) (*domain.Order, error) {
	var w *orderWire
	if err := c.do(ctx, "PATCH", "/orders/{id}", "/orders/"+url.PathEscape(id), newOrderUpdateWire(update), &w); err != nil {
		return nil, err
	}
	if w == nil {
		return nil, nil
	}
	return c.orderFromWire(*w, id), nil
}

func (c *Client) orderFromWire(w orderWire, id string) *domain.Order {
	order, known := w.toDomain()
	if !known {
		c.logger.Warn("unknown order status from backend",
			zap.String("order_id", id),
			zap.String("status", w.Status),
		)
	}
	if order.ID == "" {
		order.ID = id
	}
	return order
}
