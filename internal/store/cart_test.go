package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sweetnest/storefront/internal/api"
	"github.com/sweetnest/storefront/internal/constants"
	"github.com/sweetnest/storefront/internal/models"
)

func mustMoney(t *testing.T, s string) models.Money {
	t.Helper()
	m, err := models.NewMoneyFromString(s)
	if err != nil {
		t.Fatalf("parse money %q: %v", s, err)
	}
	return m
}

func testCartItem(t *testing.T, cakeID, variantID, price string, quantity int) models.CartItem {
	t.Helper()
	return models.CartItem{
		Cake:     models.CakeRef{ID: cakeID, Name: "Cake " + cakeID},
		Quantity: quantity,
		Variant:  models.Variant{ID: variantID, Weight: 1, Unit: "kg", Price: mustMoney(t, price)},
	}
}

func newGuestCartStore(t *testing.T) *CartStore {
	t.Helper()
	return NewCartStore(nil, mustMoney(t, "150.00"), nil)
}

// newServerCartStore backs the store with an httptest server speaking the
// response envelope.
func newServerCartStore(t *testing.T, handler http.Handler) (*CartStore, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := api.NewClient(server.URL, 2)
	return NewCartStore(api.NewCartAPI(client), mustMoney(t, "150.00"), nil), server
}

func writeEnvelope(t *testing.T, w http.ResponseWriter, data interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "data": data}); err != nil {
		t.Errorf("encode envelope: %v", err)
	}
}

func TestAddToCartRejectsQuantityOutOfRange(t *testing.T) {
	s := newGuestCartStore(t)

	for _, quantity := range []int{0, -1, 11} {
		result := s.AddToCart(context.Background(), testCartItem(t, "c1", "v1", "500.00", quantity), false)
		if result.Success {
			t.Fatalf("quantity %d accepted", quantity)
		}
		if result.Message != "Quantity must be between 1 and 10" {
			t.Fatalf("unexpected message %q", result.Message)
		}
	}
	if len(s.Items()) != 0 {
		t.Fatalf("rejected add mutated the cart: %d items", len(s.Items()))
	}
}

func TestAddToCartGuestMergesSameLine(t *testing.T) {
	s := newGuestCartStore(t)

	if result := s.AddToCart(context.Background(), testCartItem(t, "c1", "v1", "500.00", 4), false); !result.Success {
		t.Fatalf("first add failed: %s", result.Message)
	}
	if result := s.AddToCart(context.Background(), testCartItem(t, "c1", "v1", "500.00", 3), false); !result.Success {
		t.Fatalf("merge add failed: %s", result.Message)
	}

	items := s.Items()
	if len(items) != 1 {
		t.Fatalf("expected a single merged line, got %d", len(items))
	}
	if items[0].Quantity != 7 {
		t.Fatalf("expected merged quantity 7, got %d", items[0].Quantity)
	}
	if !items[0].IsLocal() {
		t.Fatalf("guest line should carry a local id, got %q", items[0].ID)
	}

	// a merge that would exceed the cap is rejected without touching the line
	if result := s.AddToCart(context.Background(), testCartItem(t, "c1", "v1", "500.00", 5), false); result.Success {
		t.Fatal("merge beyond the quantity cap accepted")
	}
	if got := s.Items()[0].Quantity; got != 7 {
		t.Fatalf("rejected merge mutated quantity to %d", got)
	}

	// a different variant of the same cake is its own line
	if result := s.AddToCart(context.Background(), testCartItem(t, "c1", "v2", "800.00", 1), false); !result.Success {
		t.Fatalf("different-variant add failed: %s", result.Message)
	}
	if len(s.Items()) != 2 {
		t.Fatalf("expected two lines, got %d", len(s.Items()))
	}
}

func TestCartDerivedTotals(t *testing.T) {
	s := newGuestCartStore(t)
	ctx := context.Background()

	s.AddToCart(ctx, testCartItem(t, "c1", "v1", "500.00", 2), false)
	s.AddToCart(ctx, testCartItem(t, "c2", "v9", "350.50", 1), false)

	if got := s.Subtotal().String(); got != "1350.50" {
		t.Fatalf("subtotal = %s, want 1350.50", got)
	}
	if got := s.Shipping().String(); got != "150.00" {
		t.Fatalf("delivery shipping = %s, want 150.00", got)
	}
	if got := s.Total().String(); got != "1500.50" {
		t.Fatalf("total = %s, want 1500.50", got)
	}
	if got := s.ItemCount(); got != 3 {
		t.Fatalf("item count = %d, want 3", got)
	}

	if result := s.SetDeliveryType(ctx, constants.DeliveryTypePickup, false); !result.Success {
		t.Fatalf("set pickup failed: %s", result.Message)
	}
	if got := s.Shipping().String(); got != "0.00" {
		t.Fatalf("pickup shipping = %s, want 0.00", got)
	}
	if got := s.Total().String(); got != "1350.50" {
		t.Fatalf("pickup total = %s, want 1350.50", got)
	}
}

func TestCartTotalAppliesPromoDiscount(t *testing.T) {
	s := newGuestCartStore(t)
	ctx := context.Background()
	s.AddToCart(ctx, testCartItem(t, "c1", "v1", "1000.00", 1), false)

	s.mu.Lock()
	s.promo = &models.AppliedPromo{Code: "SWEET10", DiscountType: "percentage", DiscountValue: mustMoney(t, "10")}
	s.mu.Unlock()

	// 1000 + 150 shipping - 100 discount
	if got := s.Total().String(); got != "1050.00" {
		t.Fatalf("total with percentage promo = %s, want 1050.00", got)
	}

	s.mu.Lock()
	s.promo = &models.AppliedPromo{Code: "FLAT", DiscountType: "fixed", DiscountValue: mustMoney(t, "2000")}
	s.mu.Unlock()

	// discount is capped at the subtotal
	if got := s.Total().String(); got != "150.00" {
		t.Fatalf("total with oversized fixed promo = %s, want 150.00", got)
	}
}

func TestGuestPromoStoredUnvalidated(t *testing.T) {
	s := newGuestCartStore(t)
	s.AddToCart(context.Background(), testCartItem(t, "c1", "v1", "1000.00", 1), false)

	if result := s.ApplyPromo(context.Background(), "WHATEVER", false); !result.Success {
		t.Fatalf("guest promo rejected: %s", result.Message)
	}
	promo := s.Promo()
	if promo == nil || promo.Code != "WHATEVER" {
		t.Fatalf("unexpected promo %+v", promo)
	}
	if promo.DiscountType != "" {
		t.Fatalf("guest promo should carry no discount details, got %q", promo.DiscountType)
	}
	if got := s.Total().String(); got != "1150.00" {
		t.Fatalf("detail-less promo changed the total to %s", got)
	}
}

func TestApplyPromoServerValidatesAndConfirms(t *testing.T) {
	s, _ := newServerCartStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/cart/promo" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		writeEnvelope(t, w, models.ServerCart{
			Items: []models.CartItem{testCartItem(t, "c1", "v1", "1000.00", 1)},
			Promo: &models.AppliedPromo{Code: "SWEET10", DiscountType: "percentage", DiscountValue: mustMoney(t, "10")},
		})
	}))

	result := s.ApplyPromo(context.Background(), "SWEET10", true)
	if !result.Success {
		t.Fatalf("promo rejected: %s", result.Message)
	}
	if result.Message != "Promo code applied" {
		t.Fatalf("confirmation message not surfaced, got %q", result.Message)
	}
	promo := s.Promo()
	if promo == nil || promo.DiscountType != "percentage" {
		t.Fatalf("server promo details not applied: %+v", promo)
	}
}

func TestAddToCartServerReplacesWholesale(t *testing.T) {
	serverItems := []models.CartItem{
		{ID: "srv-1", Cake: models.CakeRef{ID: "c1"}, Quantity: 2, Variant: models.Variant{ID: "v1", Price: mustMoney(t, "500.00")}},
		{ID: "srv-2", Cake: models.CakeRef{ID: "c9"}, Quantity: 1, Variant: models.Variant{ID: "v9", Price: mustMoney(t, "300.00")}},
	}
	s, _ := newServerCartStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/cart/items" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		writeEnvelope(t, w, models.ServerCart{Items: serverItems})
	}))

	// pre-existing local line that the server response must displace
	s.Restore(CartState{Items: []models.CartItem{testCartItem(t, "old", "v0", "100.00", 1)}})

	result := s.AddToCart(context.Background(), testCartItem(t, "c1", "v1", "500.00", 2), true)
	if !result.Success {
		t.Fatalf("server add failed: %s", result.Message)
	}
	items := s.Items()
	if len(items) != 2 || items[0].ID != "srv-1" || items[1].ID != "srv-2" {
		t.Fatalf("server response did not replace items wholesale: %+v", items)
	}
	if s.Loading() {
		t.Fatal("loading flag left set after the call")
	}
}

func TestAddToCartServerFailureKeepsLocalState(t *testing.T) {
	s, _ := newServerCartStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Cake is sold out"})
	}))

	result := s.AddToCart(context.Background(), testCartItem(t, "c1", "v1", "500.00", 1), true)
	if result.Success {
		t.Fatal("expected failure result")
	}
	if result.Message != "Cake is sold out" {
		t.Fatalf("server message not surfaced, got %q", result.Message)
	}
	if len(s.Items()) != 0 {
		t.Fatalf("failed call mutated items: %+v", s.Items())
	}
}

func TestSyncWithServerProjectsAndDropsLines(t *testing.T) {
	var gotBody struct {
		Items []api.SyncCartItem `json:"items"`
	}
	calls := 0
	s, _ := newServerCartStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.Method != http.MethodPost || r.URL.Path != "/cart/sync" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode sync body: %v", err)
		}
		writeEnvelope(t, w, models.ServerCart{Items: []models.CartItem{
			{ID: "srv-1", Cake: models.CakeRef{ID: "c1"}, Quantity: 2, Variant: models.Variant{ID: "v1"}},
		}})
	}))

	noCake := testCartItem(t, "", "v1", "100.00", 1)
	noVariant := models.CartItem{Cake: models.CakeRef{ID: "c2"}, Quantity: 1}
	s.Restore(CartState{Items: []models.CartItem{
		testCartItem(t, "c1", "v1", "500.00", 2),
		noCake,
		noVariant,
	}})

	if result := s.SyncWithServer(context.Background()); !result.Success {
		t.Fatalf("sync failed: %s", result.Message)
	}
	if len(gotBody.Items) != 1 || gotBody.Items[0].Cake != "c1" {
		t.Fatalf("projection wrong: %+v", gotBody.Items)
	}

	// sync runs once per login transition
	if result := s.SyncWithServer(context.Background()); !result.Success {
		t.Fatalf("repeat sync failed: %s", result.Message)
	}
	if calls != 1 {
		t.Fatalf("expected one server call, got %d", calls)
	}
}

func TestSyncWithServerEmptyGuestCartFetches(t *testing.T) {
	s, _ := newServerCartStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/cart" {
			t.Errorf("expected GET /cart, got %s %s", r.Method, r.URL.Path)
		}
		writeEnvelope(t, w, models.ServerCart{Items: []models.CartItem{
			{ID: "srv-1", Cake: models.CakeRef{ID: "c1"}, Quantity: 1},
		}, DeliveryType: constants.DeliveryTypePickup})
	}))

	if result := s.SyncWithServer(context.Background()); !result.Success {
		t.Fatalf("sync failed: %s", result.Message)
	}
	if len(s.Items()) != 1 {
		t.Fatalf("fetched cart not applied: %+v", s.Items())
	}
	if s.DeliveryType() != constants.DeliveryTypePickup {
		t.Fatalf("delivery type not taken from server, got %q", s.DeliveryType())
	}
}

func TestRemoveFromCartServerFiltersWithoutRefetch(t *testing.T) {
	var requests []string
	s, _ := newServerCartStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.Method+" "+r.URL.Path)
		writeEnvelope(t, w, nil)
	}))
	s.Restore(CartState{Items: []models.CartItem{
		{ID: "srv-1", Cake: models.CakeRef{ID: "c1"}, Quantity: 1},
		{ID: "srv-2", Cake: models.CakeRef{ID: "c2"}, Quantity: 1},
	}})

	if result := s.RemoveFromCart(context.Background(), "srv-1", true); !result.Success {
		t.Fatalf("remove failed: %s", result.Message)
	}
	if len(requests) != 1 || requests[0] != "DELETE /cart/items/srv-1" {
		t.Fatalf("expected a single DELETE, got %v", requests)
	}
	items := s.Items()
	if len(items) != 1 || items[0].ID != "srv-2" {
		t.Fatalf("local filter wrong: %+v", items)
	}
}

func TestCartPersistsSnapshot(t *testing.T) {
	persister := &capturePersister{}
	s := NewCartStore(nil, mustMoney(t, "150.00"), persister)

	s.AddToCart(context.Background(), testCartItem(t, "c1", "v1", "500.00", 2), false)

	state, found := persister.cartState(t, constants.StorageKeyCart)
	if !found {
		t.Fatal("no cart snapshot persisted")
	}
	if len(state.Items) != 1 || state.Items[0].Cake.ID != "c1" {
		t.Fatalf("snapshot items wrong: %+v", state.Items)
	}
	if state.DeliveryType != constants.DeliveryTypeDelivery {
		t.Fatalf("snapshot delivery type %q", state.DeliveryType)
	}
}

// capturePersister records the last snapshot per key, round-tripped through
// JSON the way real persistence would.
type capturePersister struct {
	snapshots map[string][]byte
}

func (p *capturePersister) Persist(key string, snapshot interface{}) {
	if p.snapshots == nil {
		p.snapshots = map[string][]byte{}
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		return
	}
	p.snapshots[key] = data
}

func (p *capturePersister) cartState(t *testing.T, key string) (CartState, bool) {
	t.Helper()
	raw, found := p.snapshots[key]
	if !found {
		return CartState{}, false
	}
	var state CartState
	if err := json.Unmarshal(raw, &state); err != nil {
		t.Fatalf("snapshot not valid JSON: %v", err)
	}
	return state, true
}

func TestNewLocalCartItemID(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	if got := models.NewLocalCartItemID(now); got != "local_1700000000000" {
		t.Fatalf("local id = %q", got)
	}
}
