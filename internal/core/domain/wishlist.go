package domain

import "time"

type WishlistItem struct {
	ID             string
	EventID        string
	EventName      string
	TicketTypeID   string
	TicketTypeName string
	Quantity       int
	UnitPrice      int64
	AddedAt        time.Time
}

type NewWishlistItem struct {
	EventID      string
	TicketTypeID string
	Quantity     int
}

// CheckoutHandoff is the backend's answer to a wishlist checkout: the draft
// order it created and the client route to continue on.
type CheckoutHandoff struct {
	OrderDraftID string
	Next         string
}

type Suggestion struct {
	EventID string
	Title   string
	Reason  string
	Score   float64
}
