package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sweetnest/storefront/internal/api"
	"github.com/sweetnest/storefront/internal/constants"
	"github.com/sweetnest/storefront/internal/logger"
	"github.com/sweetnest/storefront/internal/models"

	"github.com/shopspring/decimal"
)

// CartState the whitelisted subset of cart state written to local storage
type CartState struct {
	Items        []models.CartItem `json:"items"`
	DeliveryType string            `json:"deliveryType"`
}

// CartStore owns the shopping cart: line items, delivery selection and promo
// code. Subtotal, shipping and total are derived on every read, never stored.
type CartStore struct {
	mu           sync.Mutex
	items        []models.CartItem
	deliveryType string
	promo        *models.AppliedPromo
	synced       bool
	loading      bool

	shippingFee models.Money
	api         *api.CartAPI
	persister   Persister
	now         func() time.Time
}

// NewCartStore creates the cart store
func NewCartStore(cartAPI *api.CartAPI, shippingFee models.Money, persister Persister) *CartStore {
	return &CartStore{
		deliveryType: constants.DeliveryTypeDelivery,
		shippingFee:  shippingFee,
		api:          cartAPI,
		persister:    persister,
		now:          time.Now,
	}
}

// Restore hydrates the store from a persisted snapshot
func (s *CartStore) Restore(state CartState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = state.Items
	if state.DeliveryType != "" {
		s.deliveryType = state.DeliveryType
	}
}

// AddToCart adds a line. Guest mode merges into an existing line with the
// same cake+variant by summing quantity; server mode replaces the item list
// with the server's response.
func (s *CartStore) AddToCart(ctx context.Context, item models.CartItem, isLoggedIn bool) Result {
	if item.Quantity < constants.CartQuantityMin || item.Quantity > constants.CartQuantityMax {
		return fail(quantityRangeMessage)
	}

	if !isLoggedIn {
		s.mu.Lock()
		for i := range s.items {
			if s.items[i].SameLine(item) {
				merged := s.items[i].Quantity + item.Quantity
				if merged > constants.CartQuantityMax {
					s.mu.Unlock()
					return fail(fmt.Sprintf("You can order at most %d of the same cake", constants.CartQuantityMax))
				}
				s.items[i].Quantity = merged
				s.mu.Unlock()
				s.persist()
				return ok()
			}
		}
		item.ID = models.NewLocalCartItemID(s.now())
		item.AddedAt = s.now()
		s.items = append(s.items, item)
		s.mu.Unlock()
		s.persist()
		return ok()
	}

	s.setLoading(true)
	defer s.setLoading(false)

	cart, err := s.api.AddItem(ctx, api.AddCartItemRequest{
		Cake:          item.Cake.ID,
		Quantity:      item.Quantity,
		Variant:       item.Variant,
		Customization: item.Customization,
	})
	if err != nil {
		return fail(api.Message(err, "Could not add to cart"))
	}
	s.replaceFromServer(cart)
	return ok()
}

// UpdateQuantity changes a line's quantity, rejecting values outside the
// allowed range before any mutation
func (s *CartStore) UpdateQuantity(ctx context.Context, itemID string, quantity int, isLoggedIn bool) Result {
	if quantity < constants.CartQuantityMin || quantity > constants.CartQuantityMax {
		return fail(quantityRangeMessage)
	}

	if !isLoggedIn {
		s.mu.Lock()
		found := false
		for i := range s.items {
			if s.items[i].ID == itemID {
				s.items[i].Quantity = quantity
				found = true
				break
			}
		}
		s.mu.Unlock()
		if !found {
			return fail("Cart item not found")
		}
		s.persist()
		return ok()
	}

	s.setLoading(true)
	defer s.setLoading(false)

	cart, err := s.api.UpdateItem(ctx, itemID, quantity)
	if err != nil {
		return fail(api.Message(err, "Could not update quantity"))
	}
	s.replaceFromServer(cart)
	return ok()
}

// RemoveFromCart deletes a line. Server mode issues the delete then filters
// locally without a refetch, so server and local views can diverge until the
// next FetchCart; that divergence is accepted, not hidden.
func (s *CartStore) RemoveFromCart(ctx context.Context, itemID string, isLoggedIn bool) Result {
	if isLoggedIn {
		s.setLoading(true)
		defer s.setLoading(false)
		if err := s.api.RemoveItem(ctx, itemID); err != nil {
			return fail(api.Message(err, "Could not remove from cart"))
		}
	}

	s.mu.Lock()
	filtered := s.items[:0]
	for _, item := range s.items {
		if item.ID != itemID {
			filtered = append(filtered, item)
		}
	}
	s.items = filtered
	s.mu.Unlock()
	s.persist()
	return ok()
}

// FetchCart replaces items, delivery type and promo wholesale from the
// server's canonical cart. Server mode only.
func (s *CartStore) FetchCart(ctx context.Context) Result {
	s.setLoading(true)
	defer s.setLoading(false)

	cart, err := s.api.Get(ctx)
	if err != nil {
		return fail(api.Message(err, "Could not load cart"))
	}
	s.replaceFromServer(cart)
	return ok()
}

// SyncWithServer merges the guest cart into the server cart, once at the
// login transition. Guest lines missing a resolvable cake id or selected
// variant are dropped from the projection; an empty guest cart falls back to
// a plain fetch.
func (s *CartStore) SyncWithServer(ctx context.Context) Result {
	s.mu.Lock()
	if s.synced {
		s.mu.Unlock()
		return ok()
	}
	projected := make([]api.SyncCartItem, 0, len(s.items))
	for _, item := range s.items {
		if item.Cake.ID == "" {
			logger.Debugw("cart_sync_drop_line", "reason", "missing_cake_id", "item_id", item.ID)
			continue
		}
		if item.Variant.ID == "" && item.Variant.Weight == 0 {
			logger.Debugw("cart_sync_drop_line", "reason", "missing_variant", "item_id", item.ID)
			continue
		}
		projected = append(projected, api.SyncCartItem{
			Cake:          item.Cake.ID,
			Quantity:      item.Quantity,
			Variant:       item.Variant,
			Customization: item.Customization,
		})
	}
	s.mu.Unlock()

	if len(projected) == 0 {
		result := s.FetchCart(ctx)
		if result.Success {
			s.markSynced()
		}
		return result
	}

	s.setLoading(true)
	defer s.setLoading(false)

	cart, err := s.api.Sync(ctx, projected)
	if err != nil {
		return fail(api.Message(err, "Could not sync cart"))
	}
	s.replaceFromServer(cart)
	s.markSynced()
	return ok()
}

// SetDeliveryType switches between home delivery and store pickup
func (s *CartStore) SetDeliveryType(ctx context.Context, deliveryType string, isLoggedIn bool) Result {
	if deliveryType != constants.DeliveryTypeDelivery && deliveryType != constants.DeliveryTypePickup {
		return fail("Unknown delivery type")
	}

	if !isLoggedIn {
		s.mu.Lock()
		s.deliveryType = deliveryType
		s.mu.Unlock()
		s.persist()
		return ok()
	}

	s.setLoading(true)
	defer s.setLoading(false)

	cart, err := s.api.SetDeliveryType(ctx, deliveryType)
	if err != nil {
		return fail(api.Message(err, "Could not update delivery type"))
	}
	s.replaceFromServer(cart)
	return ok()
}

// ApplyPromo attaches a promo code. Guest-mode codes are stored without any
// validation; the server is the authority at order-creation time.
func (s *CartStore) ApplyPromo(ctx context.Context, code string, isLoggedIn bool) Result {
	if code == "" {
		return fail("Enter a promo code")
	}

	if !isLoggedIn {
		s.mu.Lock()
		s.promo = &models.AppliedPromo{Code: code}
		s.mu.Unlock()
		s.persist()
		return ok()
	}

	s.setLoading(true)
	defer s.setLoading(false)

	cart, err := s.api.ApplyPromo(ctx, code)
	if err != nil {
		return fail(api.Message(err, "Could not apply promo code"))
	}
	s.replaceFromServer(cart)
	return okMsg("Promo code applied")
}

// RemovePromo detaches the promo code
func (s *CartStore) RemovePromo(ctx context.Context, isLoggedIn bool) Result {
	if !isLoggedIn {
		s.mu.Lock()
		s.promo = nil
		s.mu.Unlock()
		s.persist()
		return ok()
	}

	s.setLoading(true)
	defer s.setLoading(false)

	cart, err := s.api.RemovePromo(ctx)
	if err != nil {
		return fail(api.Message(err, "Could not remove promo code"))
	}
	s.replaceFromServer(cart)
	return ok()
}

// ClearCart empties the cart, used on logout and after order placement
func (s *CartStore) ClearCart(ctx context.Context, isLoggedIn bool) Result {
	if isLoggedIn {
		s.setLoading(true)
		defer s.setLoading(false)
		if err := s.api.Clear(ctx); err != nil {
			return fail(api.Message(err, "Could not clear cart"))
		}
	}
	s.Reset()
	return ok()
}

// Reset drops all local cart state without touching the server
func (s *CartStore) Reset() {
	s.mu.Lock()
	s.items = nil
	s.promo = nil
	s.deliveryType = constants.DeliveryTypeDelivery
	s.synced = false
	s.mu.Unlock()
	s.persist()
}

// Items returns a copy of the current lines
func (s *CartStore) Items() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]models.CartItem, len(s.items))
	copy(items, s.items)
	return items
}

// DeliveryType returns the current delivery selection
func (s *CartStore) DeliveryType() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deliveryType
}

// Promo returns the applied promo, nil when none
func (s *CartStore) Promo() *models.AppliedPromo {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.promo == nil {
		return nil
	}
	promo := *s.promo
	return &promo
}

// Loading reports whether a network action is in flight
func (s *CartStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Subtotal is the sum of line totals, recomputed on every read
func (s *CartStore) Subtotal() models.Money {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subtotalLocked()
}

// Shipping is the flat fee for home delivery, zero for pickup
func (s *CartStore) Shipping() models.Money {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shippingLocked()
}

// Total is subtotal plus shipping minus the promo discount
func (s *CartStore) Total() models.Money {
	s.mu.Lock()
	defer s.mu.Unlock()
	subtotal := s.subtotalLocked()
	total := subtotal.Decimal.
		Add(s.shippingLocked().Decimal).
		Sub(s.promo.Discount(subtotal).Decimal)
	return models.NewMoneyFromDecimal(total)
}

// ItemCount is the summed quantity across lines
func (s *CartStore) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// IsInCart reports whether any line references the cake
func (s *CartStore) IsInCart(cakeID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if item.Cake.ID == cakeID {
			return true
		}
	}
	return false
}

// FindItem locates the line for a cake+variant combination
func (s *CartStore) FindItem(cakeID string, variant models.Variant) (models.CartItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	probe := models.CartItem{Cake: models.CakeRef{ID: cakeID}, Variant: variant}
	for _, item := range s.items {
		if item.SameLine(probe) {
			return item, true
		}
	}
	return models.CartItem{}, false
}

const quantityRangeMessage = "Quantity must be between 1 and 10"

func (s *CartStore) subtotalLocked() models.Money {
	sum := decimal.Zero
	for _, item := range s.items {
		sum = sum.Add(item.LineTotal().Decimal)
	}
	return models.NewMoneyFromDecimal(sum)
}

func (s *CartStore) shippingLocked() models.Money {
	if s.deliveryType == constants.DeliveryTypePickup {
		return models.Money{}
	}
	return s.shippingFee
}

// replaceFromServer makes the server response the whole truth for items, and
// for delivery type and promo whenever the response carries them
func (s *CartStore) replaceFromServer(cart *models.ServerCart) {
	if cart == nil {
		return
	}
	s.mu.Lock()
	s.items = cart.Items
	if cart.DeliveryType != "" {
		s.deliveryType = cart.DeliveryType
	}
	s.promo = cart.Promo
	s.mu.Unlock()
	s.persist()
}

func (s *CartStore) markSynced() {
	s.mu.Lock()
	s.synced = true
	s.mu.Unlock()
}

func (s *CartStore) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *CartStore) persist() {
	if s.persister == nil {
		return
	}
	s.mu.Lock()
	state := CartState{Items: s.items, DeliveryType: s.deliveryType}
	s.mu.Unlock()
	s.persister.Persist(constants.StorageKeyCart, state)
}
