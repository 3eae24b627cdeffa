package handlers

import (
	"github.com/sweetnest/storefront/internal/api"
	"github.com/sweetnest/storefront/internal/http/response"
	"github.com/sweetnest/storefront/internal/logger"
	"github.com/sweetnest/storefront/internal/models"

	"github.com/gin-gonic/gin"
)

// SessionView auth state for the UI
type SessionView struct {
	User            *models.User `json:"user"`
	IsAuthenticated bool         `json:"isAuthenticated"`
	IsAdmin         bool         `json:"isAdmin"`
	Loading         bool         `json:"loading"`
}

func (h *Handler) sessionView() SessionView {
	return SessionView{
		User:            h.Auth.User(),
		IsAuthenticated: h.Auth.IsAuthenticated(),
		IsAdmin:         h.Auth.IsAdmin(),
		Loading:         h.Auth.Loading(),
	}
}

// GetSession returns the current session
func (h *Handler) GetSession(c *gin.Context) {
	response.Success(c, h.sessionView())
}

// LoginRequest login body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login signs in and reconciles guest state with the server
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		response.BadRequest(c, "Email and password are required")
		return
	}
	result := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if !result.Success {
		respondResult(c, result, nil)
		return
	}
	h.syncAfterLogin(c)
	respondResult(c, result, h.sessionView())
}

// Register creates an account and reconciles guest state
func (h *Handler) Register(c *gin.Context) {
	var req api.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid registration details")
		return
	}
	result := h.Auth.Register(c.Request.Context(), req)
	if !result.Success {
		respondResult(c, result, nil)
		return
	}
	h.syncAfterLogin(c)
	respondResult(c, result, h.sessionView())
}

// syncAfterLogin pushes guest cart lines and wishlist saves to the server.
// Sync failures leave local state intact; they never undo the login.
func (h *Handler) syncAfterLogin(c *gin.Context) {
	if result := h.Cart.SyncWithServer(c.Request.Context()); !result.Success {
		logger.Warnw("login_cart_sync_failed", "message", result.Message)
	}
	if result := h.Wishlist.SyncWithServer(c.Request.Context()); !result.Success {
		logger.Warnw("login_wishlist_sync_failed", "message", result.Message)
	}
}

// Logout signs out and drops server-backed state back to guest mode
func (h *Handler) Logout(c *gin.Context) {
	h.Auth.Logout()
	h.Cart.Reset()
	h.Wishlist.Reset()
	response.Success(c, h.sessionView())
}

// UpdateProfile updates the signed-in user's profile
func (h *Handler) UpdateProfile(c *gin.Context) {
	if !h.loggedIn() {
		response.Unauthorized(c, "Sign in to update your profile")
		return
	}
	var partial models.User
	if err := c.ShouldBindJSON(&partial); err != nil {
		response.BadRequest(c, "Invalid profile details")
		return
	}
	updated, err := h.UserAPI.UpdateProfile(c.Request.Context(), partial)
	if err != nil {
		respondUpstreamError(c, err, "Could not update your profile")
		return
	}
	h.Auth.UpdateUser(*updated)
	response.Success(c, h.sessionView())
}

// AvatarRequest avatar update body
type AvatarRequest struct {
	Avatar string `json:"avatar"`
}

// UpdateAvatar points the profile at a new avatar image URL
func (h *Handler) UpdateAvatar(c *gin.Context) {
	if !h.loggedIn() {
		response.Unauthorized(c, "Sign in to update your profile")
		return
	}
	var req AvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Avatar == "" {
		response.BadRequest(c, "Invalid avatar")
		return
	}
	updated, err := h.UserAPI.UpdateAvatar(c.Request.Context(), req.Avatar)
	if err != nil {
		respondUpstreamError(c, err, "Could not update your avatar")
		return
	}
	h.Auth.UpdateUser(*updated)
	response.Success(c, h.sessionView())
}
