package router

import (
	"strings"

	"github.com/sweetnest/storefront/internal/config"
	"github.com/sweetnest/storefront/internal/http/handlers"
	"github.com/sweetnest/storefront/internal/logger"
	"github.com/sweetnest/storefront/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter builds the local surface route table
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	handler := handlers.New(c)

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// The gateway redirects the browser back to this fixed route; it sits
	// outside the API group so the configured path is honored verbatim.
	returnPath := strings.TrimSpace(cfg.Gateway.ReturnPath)
	if returnPath == "" {
		returnPath = "/checkout/return"
	}
	r.GET(returnPath, handler.GatewayReturn)

	apiV1 := r.Group("/api/v1")
	{
		cart := apiV1.Group("/cart")
		{
			cart.GET("", handler.GetCart)
			cart.DELETE("", handler.ClearCart)
			cart.POST("/items", handler.AddCartItem)
			cart.PUT("/items/:id", handler.UpdateCartItem)
			cart.DELETE("/items/:id", handler.RemoveCartItem)
			cart.PUT("/delivery-type", handler.SetDeliveryType)
			cart.POST("/promo", handler.ApplyPromo)
			cart.DELETE("/promo", handler.RemovePromo)
			cart.POST("/sync", handler.SyncCart)
		}

		wishlist := apiV1.Group("/wishlist")
		{
			wishlist.GET("", handler.GetWishlist)
			wishlist.DELETE("", handler.ClearWishlist)
			wishlist.POST("", handler.AddWishlistEntry)
			wishlist.POST("/toggle", handler.ToggleWishlistEntry)
			wishlist.DELETE("/:cakeId", handler.RemoveWishlistEntry)
			wishlist.PUT("/:cakeId/reminder", handler.SetWishlistReminder)
			wishlist.POST("/sync", handler.SyncWishlist)
		}

		checkout := apiV1.Group("/checkout")
		{
			checkout.GET("", handler.GetCheckout)
			checkout.PUT("/shipping", handler.SetShipping)
			checkout.POST("/validate", handler.ValidateShipping)
			checkout.POST("/next", handler.NextStep)
			checkout.POST("/prev", handler.PrevStep)
			checkout.PUT("/payment-method", handler.SetPaymentMethod)
			checkout.POST("/order", handler.PlaceOrder)
			checkout.POST("/reset", handler.ResetCheckout)
		}

		auth := apiV1.Group("/auth")
		{
			auth.GET("/session", handler.GetSession)
			auth.POST("/login", handler.Login)
			auth.POST("/register", handler.Register)
			auth.POST("/logout", handler.Logout)
			auth.PUT("/profile", handler.UpdateProfile)
			auth.PUT("/avatar", handler.UpdateAvatar)
		}

		catalog := apiV1.Group("/catalog")
		{
			catalog.GET("/cakes", handler.ListCakes)
			catalog.GET("/cakes/:slug", handler.GetCake)
			catalog.GET("/categories", handler.ListCategories)
			catalog.GET("/promotions", handler.ListPromotions)
		}

		account := apiV1.Group("/account")
		{
			account.GET("/orders", handler.ListOrders)
			account.GET("/orders/:id", handler.GetOrder)
			account.GET("/orders/track/:number", handler.TrackOrder)
			account.GET("/addresses", handler.ListAddresses)
			account.POST("/addresses", handler.CreateAddress)
			account.PUT("/addresses/:id", handler.UpdateAddress)
			account.DELETE("/addresses/:id", handler.DeleteAddress)
			account.GET("/rewards", handler.GetRewards)
		}
	}

	return r
}
