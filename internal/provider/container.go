package provider

import (
	"github.com/sweetnest/storefront/internal/api"
	"github.com/sweetnest/storefront/internal/cache"
	"github.com/sweetnest/storefront/internal/config"
	"github.com/sweetnest/storefront/internal/constants"
	"github.com/sweetnest/storefront/internal/logger"
	"github.com/sweetnest/storefront/internal/models"
	"github.com/sweetnest/storefront/internal/queue"
	"github.com/sweetnest/storefront/internal/storage"
	"github.com/sweetnest/storefront/internal/store"
)

// Container dependency container. One backend API client and one local
// state store feed the four domain stores; handlers and the worker share
// the same container instance.
type Container struct {
	Config      *config.Config
	Storage     *storage.Store
	QueueClient *queue.Client

	// Backend API
	APIClient   *api.Client
	CartAPI     *api.CartAPI
	WishlistAPI *api.WishlistAPI
	OrderAPI    *api.OrderAPI
	UserAPI     *api.UserAPI
	CatalogAPI  *api.CatalogAPI
	AddressAPI  *api.AddressAPI
	RewardAPI   *api.RewardAPI
	Catalog     *cache.Catalog

	// Domain stores
	Cart     *store.CartStore
	Wishlist *store.WishlistStore
	Checkout *store.CheckoutStore
	Auth     *store.AuthStore
}

// NewContainer builds and hydrates the container
func NewContainer(cfg *config.Config, stateStore *storage.Store) (*Container, error) {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		Storage:     stateStore,
		QueueClient: queueClient,
	}

	c.initAPI()
	if err := c.initStores(); err != nil {
		return nil, err
	}
	c.hydrate()

	return c, nil
}

func (c *Container) initAPI() {
	client := api.NewClient(c.Config.API.BaseURL, c.Config.API.TimeoutSeconds)
	c.APIClient = client
	c.CartAPI = api.NewCartAPI(client)
	c.WishlistAPI = api.NewWishlistAPI(client)
	c.OrderAPI = api.NewOrderAPI(client)
	c.UserAPI = api.NewUserAPI(client)
	c.CatalogAPI = api.NewCatalogAPI(client)
	c.AddressAPI = api.NewAddressAPI(client)
	c.RewardAPI = api.NewRewardAPI(client)
	c.Catalog = cache.NewCatalog(c.CatalogAPI)
}

func (c *Container) initStores() error {
	shippingFee, err := models.NewMoneyFromString(c.Config.Checkout.ShippingFee)
	if err != nil {
		return err
	}
	persister := store.NewStoragePersister(c.Storage)

	c.Cart = store.NewCartStore(c.CartAPI, shippingFee, persister)
	c.Wishlist = store.NewWishlistStore(c.WishlistAPI, persister)
	c.Checkout = store.NewCheckoutStore(persister)
	c.Auth = store.NewAuthStore(c.UserAPI, persister)

	if c.QueueClient != nil {
		c.Wishlist.SetReminderScheduler(c.QueueClient)
	}

	c.APIClient.SetTokenSource(c.Auth.Token)
	c.APIClient.SetUnauthorizedHook(c.onUnauthorized)
	return nil
}

// hydrate restores persisted state into the stores before any request is
// served, then marks auth ready. Missing or corrupt entries start clean.
func (c *Container) hydrate() {
	var authState store.AuthState
	if found, err := c.Storage.Load(constants.StorageKeyAuth, &authState); err == nil && found {
		c.Auth.Restore(authState)
	}
	c.Auth.Initialize()

	var cartState store.CartState
	if found, err := c.Storage.Load(constants.StorageKeyCart, &cartState); err == nil && found {
		c.Cart.Restore(cartState)
	}

	var wishlistState store.WishlistState
	if found, err := c.Storage.Load(constants.StorageKeyWishlist, &wishlistState); err == nil && found {
		c.Wishlist.Restore(wishlistState)
	}

	var checkoutState store.CheckoutState
	if found, err := c.Storage.Load(constants.StorageKeyCheckout, &checkoutState); err == nil && found {
		c.Checkout.Restore(checkoutState)
	}
}

// onUnauthorized is the global 401 hook: the session is gone, so the auth
// store clears and the server-backed stores fall back to guest state.
func (c *Container) onUnauthorized() {
	c.Auth.ForceLogout()
	c.Cart.Reset()
	c.Wishlist.Reset()
}

// Close releases container-held resources
func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.QueueClient != nil {
		if err := c.QueueClient.Close(); err != nil {
			logger.Warnw("provider_close_queue_failed", "error", err)
		}
	}
	return nil
}
