package restclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/srgjo27/ticketing_client/internal/core/domain"
)

type wishlistItemWire struct {
	ID                  flexString `json:"id"`
	EventID             flexString `json:"eventId"`
	EventIDSnake        flexString `json:"event_id"`
	EventName           string     `json:"eventName"`
	EventNameSnake      string     `json:"event_name"`
	TicketTypeID        flexString `json:"ticketTypeId"`
	TicketTypeIDSnake   flexString `json:"ticket_type_id"`
	TicketTypeName      string     `json:"ticketTypeName"`
	TicketTypeNameSnake string     `json:"ticket_type_name"`
	Quantity            flexInt64  `json:"quantity"`
	UnitPrice           flexInt64  `json:"unitPrice"`
	UnitPriceSnake      flexInt64  `json:"unit_price"`
	Price               flexInt64  `json:"price"`
	AddedAt             *time.Time `json:"createdAt"`
	AddedAtSnake        *time.Time `json:"created_at"`
}

func (w wishlistItemWire) toDomain() domain.WishlistItem {
	item := domain.WishlistItem{
		ID:             string(w.ID),
		EventID:        firstNonEmpty(string(w.EventID), string(w.EventIDSnake)),
		EventName:      firstNonEmpty(w.EventName, w.EventNameSnake),
		TicketTypeID:   firstNonEmpty(string(w.TicketTypeID), string(w.TicketTypeIDSnake)),
		TicketTypeName: firstNonEmpty(w.TicketTypeName, w.TicketTypeNameSnake),
		Quantity:       int(w.Quantity),
		UnitPrice:      firstNonZero(w.UnitPrice, w.UnitPriceSnake, w.Price),
	}
	if t := firstTime(w.AddedAt, w.AddedAtSnake); t != nil {
		item.AddedAt = *t
	}
	return item
}

// wishlistItems decodes either a bare array or an {"items": [...]} object.
type wishlistItems []wishlistItemWire

func (l *wishlistItems) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		return json.Unmarshal(b, (*[]wishlistItemWire)(l))
	}
	var obj struct {
		Items []wishlistItemWire `json:"items"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	*l = obj.Items
	return nil
}

type newWishlistItemWire struct {
	EventID      string `json:"eventId"`
	TicketTypeID string `json:"ticketTypeId"`
	Quantity     int    `json:"quantity"`
}

type quantityWire struct {
	Quantity int `json:"quantity"`
}

type idsWire struct {
	IDs idList `json:"ids"`
}

type handoffWire struct {
	OrderDraftID      flexString `json:"orderDraftId"`
	OrderDraftIDSnake flexString `json:"order_draft_id"`
	OrderID           flexString `json:"orderId"`
	Next              string     `json:"next"`
	Redirect          string     `json:"redirect"`
}

func (c *Client) ListWishlist(ctx context.Context) ([]domain.WishlistItem, error) {
	var list wishlistItems
	if err := c.do(ctx, "GET", "/wishlist", "/wishlist", nil, &list); err != nil {
		return nil, err
	}
	items := make([]domain.WishlistItem, 0, len(list))
	for _, w := range list {
		items = append(items, w.toDomain())
	}
	return items, nil
}

func (c *Client) AddWishlistItem(ctx context.Context, item domain.NewWishlistItem) (*domain.WishlistItem, error) {
	body := newWishlistItemWire{
		EventID:      item.EventID,
		TicketTypeID: item.TicketTypeID,
		Quantity:     item.Quantity,
	}
	var w wishlistItemWire
	if err := c.do(ctx, "POST", "/wishlist", "/wishlist", body, &w); err != nil {
		return nil, err
	}
	added := w.toDomain()
	if added.EventID == "" {
		added.EventID = item.EventID
	}
	if added.TicketTypeID == "" {
		added.TicketTypeID = item.TicketTypeID
	}
	if added.Quantity == 0 {
		added.Quantity = item.Quantity
	}
	return &added, nil
}

func (c *Client) UpdateWishlistItem(ctx context.Context, id string, quantity int) (*domain.WishlistItem, error) {
	var w wishlistItemWire
	if err := c.do(ctx, "PATCH", "/wishlist/{id}", "/wishlist/"+url.PathEscape(id), quantityWire{Quantity: quantity}, &w); err != nil {
		return nil, err
	}
	updated := w.toDomain()
	if updated.ID == "" {
		updated.ID = id
	}
	if updated.Quantity == 0 {
		updated.Quantity = quantity
	}
	return &updated, nil
}

func (c *Client) RemoveWishlistItem(ctx context.Context, id string) error {
	return c.do(ctx, "DELETE", "/wishlist/{id}", "/wishlist/"+url.PathEscape(id), nil, nil)
}

func (c *Client) BulkRemoveWishlistItems(ctx context.Context, ids []string) error {
	return c.do(ctx, "POST", "/wishlist/bulk-delete", "/wishlist/bulk-delete", idsWire{IDs: ids}, nil)
}

func (c *Client) CheckoutWishlist(ctx context.Context, ids []string) (*domain.CheckoutHandoff, error) {
	var w handoffWire
	if err := c.do(ctx, "POST", "/wishlist/checkout", "/wishlist/checkout", idsWire{IDs: ids}, &w); err != nil {
		return nil, err
	}
	handoff := &domain.CheckoutHandoff{
		OrderDraftID: firstNonEmpty(string(w.OrderDraftID), string(w.OrderDraftIDSnake), string(w.OrderID)),
		Next:         firstNonEmpty(w.Next, w.Redirect),
	}
	if handoff.Next == "" {
		return nil, fmt.Errorf("wishlist checkout: response has no next route")
	}
	return handoff, nil
}
