package models

import "time"

// ShippingInfo the checkout shipping form. Tags drive the field-keyed
// validation in the checkout store.
type ShippingInfo struct {
	Email           string `json:"email" validate:"required,email"`
	FirstName       string `json:"firstName" validate:"required"`
	LastName        string `json:"lastName" validate:"required"`
	Phone           string `json:"phone" validate:"required,min=10"`
	Address         string `json:"address" validate:"required"`
	City            string `json:"city" validate:"required"`
	DeliveryDate    string `json:"deliveryDate" validate:"required"`
	DeliveryTime    string `json:"deliveryTime" validate:"required"`
	SpecialRequests string `json:"specialRequests,omitempty"`
}

// OrderPayloadItem one line of the order-creation body
type OrderPayloadItem struct {
	Cake          string                 `json:"cake"`
	Quantity      int                    `json:"quantity"`
	Variant       Variant                `json:"selectedWeight"`
	Customization map[string]interface{} `json:"customization,omitempty"`
}

// OrderPayload is the exact shape the order-creation endpoint expects. It is
// the seam between client state and the external API contract.
type OrderPayload struct {
	Items         []OrderPayloadItem `json:"items"`
	ShippingInfo  ShippingInfo       `json:"shippingInfo"`
	DeliveryType  string             `json:"deliveryType"`
	PaymentMethod string             `json:"paymentMethod"`
	PromoCode     string             `json:"promoCode,omitempty"`
}

// Order read model returned after creation and by the tracking endpoints
type Order struct {
	ID            string             `json:"_id"`
	OrderNumber   string             `json:"orderNumber"`
	Status        string             `json:"status"`
	Items         []OrderPayloadItem `json:"items,omitempty"`
	ShippingInfo  ShippingInfo       `json:"shippingInfo,omitempty"`
	PaymentMethod string             `json:"paymentMethod,omitempty"`
	Subtotal      Money              `json:"subtotal"`
	ShippingFee   Money              `json:"shippingFee"`
	Discount      Money              `json:"discount"`
	Total         Money              `json:"total"`
	CreatedAt     time.Time          `json:"createdAt,omitempty"`
}

// Address a saved delivery address
type Address struct {
	ID        string `json:"_id,omitempty"`
	Label     string `json:"label,omitempty"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	IsDefault bool   `json:"isDefault,omitempty"`
}

// Promotion a storewide promotion listed on the storefront
type Promotion struct {
	ID            string `json:"_id"`
	Title         string `json:"title"`
	Code          string `json:"code,omitempty"`
	DiscountType  string `json:"discountType,omitempty"`
	DiscountValue Money  `json:"discountValue"`
	ExpiresAt     string `json:"expiresAt,omitempty"`
}

// RewardAccount loyalty points balance and history
type RewardAccount struct {
	Points  int             `json:"points"`
	History []RewardHistory `json:"history,omitempty"`
}

// RewardHistory one loyalty transaction
type RewardHistory struct {
	Points    int       `json:"points"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}
