package handlers

import (
	"github.com/sweetnest/storefront/internal/http/response"
	"github.com/sweetnest/storefront/internal/models"

	"github.com/gin-gonic/gin"
)

// ListOrders lists the signed-in user's orders
func (h *Handler) ListOrders(c *gin.Context) {
	if !h.loggedIn() {
		response.Unauthorized(c, "Sign in to view your orders")
		return
	}
	orders, err := h.OrderAPI.List(c.Request.Context())
	if err != nil {
		respondUpstreamError(c, err, "Could not load your orders")
		return
	}
	response.Success(c, orders)
}

// GetOrder fetches one order
func (h *Handler) GetOrder(c *gin.Context) {
	if !h.loggedIn() {
		response.Unauthorized(c, "Sign in to view your orders")
		return
	}
	order, err := h.OrderAPI.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondUpstreamError(c, err, "Could not load the order")
		return
	}
	response.Success(c, order)
}

// TrackOrder looks an order up by its public order number, guest-friendly
func (h *Handler) TrackOrder(c *gin.Context) {
	order, err := h.OrderAPI.Track(c.Request.Context(), c.Param("number"))
	if err != nil {
		respondUpstreamError(c, err, "Could not find that order")
		return
	}
	response.Success(c, order)
}

// ListAddresses lists saved addresses
func (h *Handler) ListAddresses(c *gin.Context) {
	if !h.loggedIn() {
		response.Unauthorized(c, "Sign in to manage addresses")
		return
	}
	addresses, err := h.AddressAPI.List(c.Request.Context())
	if err != nil {
		respondUpstreamError(c, err, "Could not load addresses")
		return
	}
	response.Success(c, addresses)
}

// CreateAddress saves a new address
func (h *Handler) CreateAddress(c *gin.Context) {
	if !h.loggedIn() {
		response.Unauthorized(c, "Sign in to manage addresses")
		return
	}
	var address models.Address
	if err := c.ShouldBindJSON(&address); err != nil {
		response.BadRequest(c, "Invalid address")
		return
	}
	created, err := h.AddressAPI.Create(c.Request.Context(), address)
	if err != nil {
		respondUpstreamError(c, err, "Could not save the address")
		return
	}
	response.Success(c, created)
}

// UpdateAddress updates a saved address
func (h *Handler) UpdateAddress(c *gin.Context) {
	if !h.loggedIn() {
		response.Unauthorized(c, "Sign in to manage addresses")
		return
	}
	var address models.Address
	if err := c.ShouldBindJSON(&address); err != nil {
		response.BadRequest(c, "Invalid address")
		return
	}
	address.ID = c.Param("id")
	updated, err := h.AddressAPI.Update(c.Request.Context(), address)
	if err != nil {
		respondUpstreamError(c, err, "Could not update the address")
		return
	}
	response.Success(c, updated)
}

// DeleteAddress removes a saved address
func (h *Handler) DeleteAddress(c *gin.Context) {
	if !h.loggedIn() {
		response.Unauthorized(c, "Sign in to manage addresses")
		return
	}
	if err := h.AddressAPI.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondUpstreamError(c, err, "Could not delete the address")
		return
	}
	response.Success(c, nil)
}

// GetRewards returns the loyalty balance and history
func (h *Handler) GetRewards(c *gin.Context) {
	if !h.loggedIn() {
		response.Unauthorized(c, "Sign in to view rewards")
		return
	}
	account, err := h.RewardAPI.Account(c.Request.Context())
	if err != nil {
		respondUpstreamError(c, err, "Could not load rewards")
		return
	}
	response.Success(c, account)
}
