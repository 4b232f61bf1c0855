package ports

import (
	"context"

	"github.com/srgjo27/ticketing_client/internal/core/domain"
)

type OrderAPI interface {
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
	UpdateOrder(ctx context.Context, orderID string, update domain.OrderUpdate) (*domain.Order, error)
}

type PaymentAPI interface {
	CreateVNPayPayment(ctx context.Context, orderID string) (*domain.PaymentIntent, error)
	GetPaymentStatus(ctx context.Context, paymentID string) (domain.PaymentStatus, error)
	CancelPayment(ctx context.Context, paymentID string) error
}

type WishlistAPI interface {
	ListWishlist(ctx context.Context) ([]domain.WishlistItem, error)
	AddWishlistItem(ctx context.Context, item domain.NewWishlistItem) (*domain.WishlistItem, error)
	UpdateWishlistItem(ctx context.Context, itemID string, quantity int) (*domain.WishlistItem, error)
	RemoveWishlistItem(ctx context.Context, itemID string) error
	BulkRemoveWishlistItems(ctx context.Context, itemIDs []string) error
	CheckoutWishlist(ctx context.Context, itemIDs []string) (*domain.CheckoutHandoff, error)
}

type SuggestionAPI interface {
	Suggest(ctx context.Context, prompt string, limit int) ([]domain.Suggestion, error)
}
