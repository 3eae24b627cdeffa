package handlers

import (
	"github.com/sweetnest/storefront/internal/http/response"
	"github.com/sweetnest/storefront/internal/models"

	"github.com/gin-gonic/gin"
)

// WishlistView wishlist state for the UI
type WishlistView struct {
	Items   []models.WishlistEntry `json:"items"`
	Count   int                    `json:"count"`
	Loading bool                   `json:"loading"`
}

func (h *Handler) wishlistView() WishlistView {
	return WishlistView{
		Items:   h.Wishlist.Entries(),
		Count:   h.Wishlist.Count(),
		Loading: h.Wishlist.Loading(),
	}
}

// GetWishlist returns the current wishlist
func (h *Handler) GetWishlist(c *gin.Context) {
	if h.loggedIn() {
		h.Wishlist.FetchWishlist(c.Request.Context())
	}
	response.Success(c, h.wishlistView())
}

// WishlistAddRequest add/toggle body; the cake ref carries the snapshot
// shown on the wishlist page without another fetch.
type WishlistAddRequest struct {
	Cake models.CakeRef `json:"cake"`
}

// AddWishlistEntry saves a cake
func (h *Handler) AddWishlistEntry(c *gin.Context) {
	var req WishlistAddRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Cake.ID == "" {
		response.BadRequest(c, "Cake is required")
		return
	}
	result := h.Wishlist.AddToWishlist(c.Request.Context(), req.Cake, h.loggedIn())
	respondResult(c, result, h.wishlistView())
}

// ToggleWishlistEntry saves or removes depending on current membership
func (h *Handler) ToggleWishlistEntry(c *gin.Context) {
	var req WishlistAddRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Cake.ID == "" {
		response.BadRequest(c, "Cake is required")
		return
	}
	result := h.Wishlist.ToggleWishlist(c.Request.Context(), req.Cake, h.loggedIn())
	respondResult(c, result, h.wishlistView())
}

// RemoveWishlistEntry removes a saved cake by cake id
func (h *Handler) RemoveWishlistEntry(c *gin.Context) {
	result := h.Wishlist.RemoveFromWishlist(c.Request.Context(), c.Param("cakeId"), h.loggedIn())
	respondResult(c, result, h.wishlistView())
}

// ClearWishlist removes everything
func (h *Handler) ClearWishlist(c *gin.Context) {
	result := h.Wishlist.ClearWishlist(c.Request.Context(), h.loggedIn())
	respondResult(c, result, h.wishlistView())
}

// ReminderRequest reminder body
type ReminderRequest struct {
	Date string `json:"date"`
	Note string `json:"note"`
}

// SetWishlistReminder sets a celebration reminder on a saved cake
func (h *Handler) SetWishlistReminder(c *gin.Context) {
	var req ReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Date == "" {
		response.BadRequest(c, "Reminder date is required")
		return
	}
	result := h.Wishlist.SetReminder(c.Request.Context(), c.Param("cakeId"), req.Date, req.Note, h.loggedIn())
	respondResult(c, result, h.wishlistView())
}

// SyncWishlist pushes guest saves to the server after login
func (h *Handler) SyncWishlist(c *gin.Context) {
	if !h.loggedIn() {
		response.Unauthorized(c, "Sign in to sync your wishlist")
		return
	}
	result := h.Wishlist.SyncWithServer(c.Request.Context())
	respondResult(c, result, h.wishlistView())
}
