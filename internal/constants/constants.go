package constants

// Delivery type constants
const (
	DeliveryTypeDelivery = "delivery"
	DeliveryTypePickup   = "pickup"
)

// Payment method constants
const (
	PaymentMethodEsewa = "esewa"
	PaymentMethodCOD   = "cod"
)

// Gateway return status constants
const (
	ReturnStatusSuccess = "success"
	ReturnStatusFailed  = "failed"
	ReturnStatusError   = "error"
)

// Checkout step constants
const (
	CheckoutStepShipping     = 1
	CheckoutStepPayment      = 2
	CheckoutStepConfirmation = 3
)

// Cart quantity bounds
const (
	CartQuantityMin = 1
	CartQuantityMax = 10
)

// LocalIDPrefix prefixes client-generated cart line ids used before a server sync
const LocalIDPrefix = "local_"

// Persisted state keys, one per store
const (
	StorageKeyCart     = "sweetnest-cart"
	StorageKeyWishlist = "sweetnest-wishlist"
	StorageKeyCheckout = "checkout-storage"
	StorageKeyAuth     = "auth-storage"
)

// Order status constants
const (
	OrderStatusPendingPayment = "pending_payment"
	OrderStatusConfirmed      = "confirmed"
	OrderStatusPreparing      = "preparing"
	OrderStatusOutForDelivery = "out_for_delivery"
	OrderStatusDelivered      = "delivered"
	OrderStatusCancelled      = "cancelled"
)

// User role constants
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// Queue names
const (
	QueueDefault = "default"
)

// Task type names
const (
	TaskReminderNotify = "reminder:notify"
)
