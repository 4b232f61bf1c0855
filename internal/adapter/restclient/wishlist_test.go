package restclient_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/ticketing_client/internal/core/domain"
)

func TestCheckoutWishlist_Handoff(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/wishlist/checkout", func(w http.ResponseWriter, req *http.Request) {
		body, err := io.ReadAll(req.Body)
		assert.NoError(t, err)
		assert.JSONEq(t, `{"ids":[1,2]}`, string(body))
		_, _ = io.WriteString(w, `{"orderDraftId":"x","next":"/order-information/x"}`)
	})
	client := newTestClient(t, r, "")

	handoff, err := client.CheckoutWishlist(context.Background(), []string{"1", "2"})

	require.NoError(t, err)
	assert.Equal(t, &domain.CheckoutHandoff{OrderDraftID: "x", Next: "/order-information/x"}, handoff)
}

func TestBulkRemove_NonNumericIDsStayStrings(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/wishlist/bulk-delete", func(w http.ResponseWriter, req *http.Request) {
		body, err := io.ReadAll(req.Body)
		assert.NoError(t, err)
		assert.JSONEq(t, `{"ids":["a1","2"]}`, string(body))
		w.WriteHeader(http.StatusNoContent)
	})
	client := newTestClient(t, r, "")

	assert.NoError(t, client.BulkRemoveWishlistItems(context.Background(), []string{"a1", "2"}))
}

func TestListWishlist_ArrayAndItemsShapes(t *testing.T) {
	bodies := []string{
		`[{"id":1,"eventId":"e1","ticketTypeId":"t1","quantity":2,"unitPrice":100}]`,
		`{"data":{"items":[{"id":"1","event_id":"e1","ticket_type_id":"t1","quantity":2,"price":100}]}}`,
	}

	for _, body := range bodies {
		r := chi.NewRouter()
		r.Get("/wishlist", func(w http.ResponseWriter, req *http.Request) {
			_, _ = io.WriteString(w, body)
		})
		client := newTestClient(t, r, "")

		items, err := client.ListWishlist(context.Background())

		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "1", items[0].ID)
		assert.Equal(t, "e1", items[0].EventID)
		assert.Equal(t, "t1", items[0].TicketTypeID)
		assert.Equal(t, 2, items[0].Quantity)
		assert.Equal(t, int64(100), items[0].UnitPrice)
	}
}

func TestWishlistCRUD(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/wishlist", func(w http.ResponseWriter, req *http.Request) {
		var in map[string]any
		assert.NoError(t, json.NewDecoder(req.Body).Decode(&in))
		assert.Equal(t, "e1", in["eventId"])
		assert.Equal(t, float64(3), in["quantity"])
		_, _ = io.WriteString(w, `{"id":"w1"}`)
	})
	r.Patch("/wishlist/{id}", func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "w1", chi.URLParam(req, "id"))
		w.WriteHeader(http.StatusNoContent)
	})
	r.Delete("/wishlist/{id}", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	client := newTestClient(t, r, "")
	ctx := context.Background()

	added, err := client.AddWishlistItem(ctx, domain.NewWishlistItem{EventID: "e1", TicketTypeID: "t1", Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, "w1", added.ID)
	assert.Equal(t, 3, added.Quantity)

	updated, err := client.UpdateWishlistItem(ctx, "w1", 5)
	require.NoError(t, err)
	assert.Equal(t, "w1", updated.ID)
	assert.Equal(t, 5, updated.Quantity)

	assert.NoError(t, client.RemoveWishlistItem(ctx, "w1"))
}

func TestSuggest(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/ai/suggestions", func(w http.ResponseWriter, req *http.Request) {
		var in map[string]any
		assert.NoError(t, json.NewDecoder(req.Body).Decode(&in))
		assert.Equal(t, "jazz this weekend", in["prompt"])
		_, _ = io.WriteString(w, `{"suggestions":[{"event_id":9,"name":"Jazz Night","description":"matches jazz","score":0.9}]}`)
	})
	client := newTestClient(t, r, "")

	got, err := client.Suggest(context.Background(), "jazz this weekend", 5)

	require.NoError(t, err)
	assert.Equal(t, []domain.Suggestion{{EventID: "9", Title: "Jazz Night", Reason: "matches jazz", Score: 0.9}}, got)
}
