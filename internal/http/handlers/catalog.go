package handlers

import (
	"github.com/sweetnest/storefront/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ListCakes lists cakes, passing browse filters through to the backend
func (h *Handler) ListCakes(c *gin.Context) {
	cakes, err := h.Catalog.Cakes(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		respondUpstreamError(c, err, "Could not load cakes")
		return
	}
	response.Success(c, cakes)
}

// GetCake fetches one cake by slug
func (h *Handler) GetCake(c *gin.Context) {
	cake, err := h.Catalog.Cake(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondUpstreamError(c, err, "Could not load the cake")
		return
	}
	response.Success(c, cake)
}

// ListCategories lists catalog categories
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.Catalog.Categories(c.Request.Context())
	if err != nil {
		respondUpstreamError(c, err, "Could not load categories")
		return
	}
	response.Success(c, categories)
}

// ListPromotions lists active promotions
func (h *Handler) ListPromotions(c *gin.Context) {
	promotions, err := h.Catalog.Promotions(c.Request.Context())
	if err != nil {
		respondUpstreamError(c, err, "Could not load promotions")
		return
	}
	response.Success(c, promotions)
}
