package handlers

import (
	"errors"
	"net/http"

	"github.com/sweetnest/storefront/internal/api"
	"github.com/sweetnest/storefront/internal/http/response"
	"github.com/sweetnest/storefront/internal/provider"
	"github.com/sweetnest/storefront/internal/store"

	"github.com/gin-gonic/gin"
)

// Handler local surface handler entry. It exposes store state and actions
// to the UI shell; guest vs server mode is decided per request from the
// auth store, never cached across requests.
type Handler struct {
	*provider.Container
}

// New creates the handler
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

func (h *Handler) loggedIn() bool {
	return h.Auth.IsAuthenticated()
}

// respondResult maps a store action outcome onto the envelope. Failed
// actions are business rejections, not transport errors, so they stay 200
// with success false the way the backend reports them.
func respondResult(c *gin.Context, result store.Result, data interface{}) {
	if !result.Success {
		c.JSON(http.StatusOK, response.Envelope{Success: false, Message: result.Message})
		return
	}
	if result.Message != "" {
		response.SuccessWithMessage(c, result.Message, data)
		return
	}
	response.Success(c, data)
}

// respondUpstreamError maps a backend call failure onto the envelope. An
// expired session becomes the 401 login redirect; everything else is a
// gateway failure.
func respondUpstreamError(c *gin.Context, err error, fallback string) {
	if errors.Is(err, api.ErrUnauthorized) {
		response.Unauthorized(c, api.Message(err, "Your session has expired"))
		return
	}
	response.Upstream(c, api.Message(err, fallback))
}
