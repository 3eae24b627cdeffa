package api

import (
	"context"
	"net/url"

	"github.com/sweetnest/storefront/internal/models"
)

// OrderAPI wrappers for the /orders resource group
type OrderAPI struct {
	client *Client
}

// NewOrderAPI creates the order resource wrapper
func NewOrderAPI(client *Client) *OrderAPI {
	return &OrderAPI{client: client}
}

// GatewayParams server-issued redirect parameters for the payment handoff:
// the gateway URL and the hidden form fields to POST to it
type GatewayParams struct {
	URL    string            `json:"url"`
	Fields map[string]string `json:"fields"`
}

// Create places an order; online-payment orders come back pending payment
func (a *OrderAPI) Create(ctx context.Context, payload models.OrderPayload) (*models.Order, error) {
	var order models.Order
	if err := a.client.Post(ctx, "/orders", payload, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// Get fetches one order by id
func (a *OrderAPI) Get(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	if err := a.client.Get(ctx, "/orders/"+url.PathEscape(orderID), &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// List fetches the signed-in user's orders
func (a *OrderAPI) List(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := a.client.Get(ctx, "/orders", &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Track fetches an order's status by its human-readable number
func (a *OrderAPI) Track(ctx context.Context, orderNumber string) (*models.Order, error) {
	var order models.Order
	if err := a.client.Get(ctx, "/orders/track/"+url.PathEscape(orderNumber), &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// EsewaParams requests the gateway redirect parameters for a pending order
func (a *OrderAPI) EsewaParams(ctx context.Context, orderID string) (*GatewayParams, error) {
	var params GatewayParams
	if err := a.client.Post(ctx, "/orders/"+url.PathEscape(orderID)+"/esewa", nil, &params); err != nil {
		return nil, err
	}
	return &params, nil
}
