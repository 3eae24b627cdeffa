package api

import (
	"context"
	"net/url"

	"github.com/sweetnest/storefront/internal/models"
)

// CartAPI wrappers for the /cart resource group
type CartAPI struct {
	client *Client
}

// NewCartAPI creates the cart resource wrapper
func NewCartAPI(client *Client) *CartAPI {
	return &CartAPI{client: client}
}

// AddCartItemRequest the add-item body
type AddCartItemRequest struct {
	Cake          string                 `json:"cake"`
	Quantity      int                    `json:"quantity"`
	Variant       models.Variant         `json:"selectedWeight"`
	Customization map[string]interface{} `json:"customization,omitempty"`
}

// SyncCartItem one guest line projected into the server's merge shape
type SyncCartItem struct {
	Cake          string                 `json:"cake"`
	Quantity      int                    `json:"quantity"`
	Variant       models.Variant         `json:"selectedWeight"`
	Customization map[string]interface{} `json:"customization,omitempty"`
}

// Get fetches the canonical server cart
func (a *CartAPI) Get(ctx context.Context) (*models.ServerCart, error) {
	var cart models.ServerCart
	if err := a.client.Get(ctx, "/cart", &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddItem adds a line and returns the updated server cart
func (a *CartAPI) AddItem(ctx context.Context, req AddCartItemRequest) (*models.ServerCart, error) {
	var cart models.ServerCart
	if err := a.client.Post(ctx, "/cart/items", req, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// UpdateItem changes a line's quantity and returns the updated server cart
func (a *CartAPI) UpdateItem(ctx context.Context, itemID string, quantity int) (*models.ServerCart, error) {
	var cart models.ServerCart
	body := map[string]int{"quantity": quantity}
	if err := a.client.Put(ctx, "/cart/items/"+url.PathEscape(itemID), body, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// RemoveItem deletes a line. Callers filter locally; no refetch happens here.
func (a *CartAPI) RemoveItem(ctx context.Context, itemID string) error {
	return a.client.Delete(ctx, "/cart/items/"+url.PathEscape(itemID), nil)
}

// Clear empties the server cart
func (a *CartAPI) Clear(ctx context.Context) error {
	return a.client.Delete(ctx, "/cart", nil)
}

// SetDeliveryType updates the delivery selection
func (a *CartAPI) SetDeliveryType(ctx context.Context, deliveryType string) (*models.ServerCart, error) {
	var cart models.ServerCart
	body := map[string]string{"deliveryType": deliveryType}
	if err := a.client.Put(ctx, "/cart/delivery-type", body, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// ApplyPromo applies a promo code server-side
func (a *CartAPI) ApplyPromo(ctx context.Context, code string) (*models.ServerCart, error) {
	var cart models.ServerCart
	body := map[string]string{"code": code}
	if err := a.client.Post(ctx, "/cart/promo", body, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// RemovePromo detaches the promo code
func (a *CartAPI) RemovePromo(ctx context.Context) (*models.ServerCart, error) {
	var cart models.ServerCart
	if err := a.client.Delete(ctx, "/cart/promo", &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// Sync merges projected guest lines into the server cart, once per login
func (a *CartAPI) Sync(ctx context.Context, items []SyncCartItem) (*models.ServerCart, error) {
	var cart models.ServerCart
	body := map[string]interface{}{"items": items}
	if err := a.client.Post(ctx, "/cart/sync", body, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}
