package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/srgjo27/ticketing_client/internal/core/domain"
	"github.com/srgjo27/ticketing_client/internal/core/ports"
)

// WishlistService keeps a local copy of the wishlist in sync with the API.
// The cache is only updated after the backend accepted a change.
type WishlistService struct {
	api    ports.WishlistAPI
	nav    ports.Navigator
	logger *zap.Logger

	mu    sync.RWMutex
	items map[string]domain.WishlistItem
}

func NewWishlistService(api ports.WishlistAPI, nav ports.Navigator, logger *zap.Logger) *WishlistService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WishlistService{
		api:    api,
		nav:    nav,
		logger: logger,
		items:  make(map[string]domain.WishlistItem),
	}
}

// Refresh replaces the local cache with the backend wishlist.
func (s *WishlistService) Refresh(ctx context.Context) ([]domain.WishlistItem, error) {
	items, err := s.api.ListWishlist(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load wishlist: %w", err)
	}

	s.mu.Lock()
	s.items = make(map[string]domain.WishlistItem, len(items))
	for _, it := range items {
		s.items[it.ID] = it
	}
	s.mu.Unlock()

	return s.Items(), nil
}

// Items returns the cached items ordered by id.
func (s *WishlistService) Items() []domain.WishlistItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.WishlistItem, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *WishlistService) Add(ctx context.Context, item domain.NewWishlistItem) (*domain.WishlistItem, error) {
	ve := &domain.ValidationError{}
	if strings.TrimSpace(item.EventID) == "" {
		ve.Add("eventId", domain.MsgMissingID)
	}
	if strings.TrimSpace(item.TicketTypeID) == "" {
		ve.Add("ticketTypeId", domain.MsgMissingID)
	}
	if item.Quantity < 1 {
		ve.Add("quantity", domain.MsgInvalidQuantity)
	}
	if len(ve.Fields) > 0 {
		return nil, ve
	}

	added, err := s.api.AddWishlistItem(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("failed to add wishlist item: %w", err)
	}
	s.put(*added)
	return added, nil
}

func (s *WishlistService) UpdateQuantity(ctx context.Context, id string, quantity int) (*domain.WishlistItem, error) {
	if id == "" {
		return nil, domain.NewValidationError("id", domain.MsgMissingID)
	}
	if quantity < 1 {
		return nil, domain.NewValidationError("quantity", domain.MsgInvalidQuantity)
	}

	updated, err := s.api.UpdateWishlistItem(ctx, id, quantity)
	if err != nil {
		return nil, fmt.Errorf("failed to update wishlist item %s: %w", id, err)
	}

	s.mu.Lock()
	if cached, ok := s.items[id]; ok {
		cached.Quantity = updated.Quantity
		updated = &cached
	}
	s.items[id] = *updated
	s.mu.Unlock()

	return updated, nil
}

func (s *WishlistService) Remove(ctx context.Context, id string) error {
	if id == "" {
		return domain.NewValidationError("id", domain.MsgMissingID)
	}
	if err := s.api.RemoveWishlistItem(ctx, id); err != nil {
		return fmt.Errorf("failed to remove wishlist item %s: %w", id, err)
	}
	s.drop(id)
	return nil
}

func (s *WishlistService) BulkRemove(ctx context.Context, ids []string) error {
	ids = compactIDs(ids)
	if len(ids) == 0 {
		return domain.NewValidationError("ids", domain.MsgEmptySelection)
	}
	if err := s.api.BulkRemoveWishlistItems(ctx, ids); err != nil {
		return fmt.Errorf("failed to remove wishlist items: %w", err)
	}
	s.drop(ids...)
	return nil
}

// Checkout turns the selected items into a draft order and navigates to
// exactly the route the backend returned.
func (s *WishlistService) Checkout(ctx context.Context, ids []string) (*domain.CheckoutHandoff, error) {
	ids = compactIDs(ids)
	if len(ids) == 0 {
		return nil, domain.NewValidationError("ids", domain.MsgEmptySelection)
	}

	handoff, err := s.api.CheckoutWishlist(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to check out wishlist: %w", err)
	}

	s.logger.Info("wishlist checked out",
		zap.Strings("item_ids", ids),
		zap.String("order_draft_id", handoff.OrderDraftID),
	)
	s.nav.Navigate(handoff.Next)
	return handoff, nil
}

// Total sums quantity times unit price of the selected cached items. Unknown
// ids are ignored.
func (s *WishlistService) Total(ids []string) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total int64
	for _, id := range compactIDs(ids) {
		if it, ok := s.items[id]; ok {
			total += int64(it.Quantity) * it.UnitPrice
		}
	}
	return total
}

func (s *WishlistService) put(item domain.WishlistItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[item.ID] = item
}

func (s *WishlistService) drop(ids ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		delete(s.items, id)
	}
}

// compactIDs trims ids and removes blanks and duplicates, keeping order.
func compactIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
