package handlers

import (
	"github.com/sweetnest/storefront/internal/http/response"
	"github.com/sweetnest/storefront/internal/models"

	"github.com/gin-gonic/gin"
)

// CartView cart state plus the derived totals the UI renders
type CartView struct {
	Items        []models.CartItem    `json:"items"`
	DeliveryType string               `json:"deliveryType"`
	Promo        *models.AppliedPromo `json:"promo,omitempty"`
	Subtotal     models.Money         `json:"subtotal"`
	Shipping     models.Money         `json:"shipping"`
	Total        models.Money         `json:"total"`
	ItemCount    int                  `json:"itemCount"`
	Loading      bool                 `json:"loading"`
}

func (h *Handler) cartView() CartView {
	return CartView{
		Items:        h.Cart.Items(),
		DeliveryType: h.Cart.DeliveryType(),
		Promo:        h.Cart.Promo(),
		Subtotal:     h.Cart.Subtotal(),
		Shipping:     h.Cart.Shipping(),
		Total:        h.Cart.Total(),
		ItemCount:    h.Cart.ItemCount(),
		Loading:      h.Cart.Loading(),
	}
}

// GetCart returns the current cart view
func (h *Handler) GetCart(c *gin.Context) {
	if h.loggedIn() {
		h.Cart.FetchCart(c.Request.Context())
	}
	response.Success(c, h.cartView())
}

// AddCartItemRequest add-to-cart body from the UI shell
type AddCartItemRequest struct {
	Cake          models.CakeRef         `json:"cake"`
	Quantity      int                    `json:"quantity"`
	Variant       models.Variant         `json:"selectedWeight"`
	Customization map[string]interface{} `json:"customization,omitempty"`
}

// AddCartItem adds a line to the cart
func (h *Handler) AddCartItem(c *gin.Context) {
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid cart item")
		return
	}
	item := models.CartItem{
		Cake:          req.Cake,
		Quantity:      req.Quantity,
		Variant:       req.Variant,
		Customization: req.Customization,
	}
	result := h.Cart.AddToCart(c.Request.Context(), item, h.loggedIn())
	respondResult(c, result, h.cartView())
}

// UpdateCartItemRequest quantity update body
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateCartItem changes a line's quantity
func (h *Handler) UpdateCartItem(c *gin.Context) {
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid quantity")
		return
	}
	result := h.Cart.UpdateQuantity(c.Request.Context(), c.Param("id"), req.Quantity, h.loggedIn())
	respondResult(c, result, h.cartView())
}

// RemoveCartItem removes a line
func (h *Handler) RemoveCartItem(c *gin.Context) {
	result := h.Cart.RemoveFromCart(c.Request.Context(), c.Param("id"), h.loggedIn())
	respondResult(c, result, h.cartView())
}

// ClearCart empties the cart
func (h *Handler) ClearCart(c *gin.Context) {
	result := h.Cart.ClearCart(c.Request.Context(), h.loggedIn())
	respondResult(c, result, h.cartView())
}

// DeliveryTypeRequest delivery type body
type DeliveryTypeRequest struct {
	DeliveryType string `json:"deliveryType"`
}

// SetDeliveryType switches between delivery and pickup
func (h *Handler) SetDeliveryType(c *gin.Context) {
	var req DeliveryTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid delivery type")
		return
	}
	result := h.Cart.SetDeliveryType(c.Request.Context(), req.DeliveryType, h.loggedIn())
	respondResult(c, result, h.cartView())
}

// PromoRequest promo code body
type PromoRequest struct {
	Code string `json:"code"`
}

// ApplyPromo applies a promo code
func (h *Handler) ApplyPromo(c *gin.Context) {
	var req PromoRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Code == "" {
		response.BadRequest(c, "Promo code is required")
		return
	}
	result := h.Cart.ApplyPromo(c.Request.Context(), req.Code, h.loggedIn())
	respondResult(c, result, h.cartView())
}

// RemovePromo drops the applied promo
func (h *Handler) RemovePromo(c *gin.Context) {
	result := h.Cart.RemovePromo(c.Request.Context(), h.loggedIn())
	respondResult(c, result, h.cartView())
}

// SyncCart pushes guest lines to the server after login
func (h *Handler) SyncCart(c *gin.Context) {
	if !h.loggedIn() {
		response.Unauthorized(c, "Sign in to sync your cart")
		return
	}
	result := h.Cart.SyncWithServer(c.Request.Context())
	respondResult(c, result, h.cartView())
}
