package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/sweetnest/storefront/internal/constants"

	"github.com/shopspring/decimal"
)

// CartItem one cart line: a cake, its chosen size variant and quantity.
// ID is server-assigned once synced; guest lines carry a generated local id.
type CartItem struct {
	ID            string                 `json:"_id"`
	Cake          CakeRef                `json:"cake"`
	Quantity      int                    `json:"quantity"`
	Variant       Variant                `json:"selectedWeight"`
	Customization map[string]interface{} `json:"customization,omitempty"`
	AddedAt       time.Time              `json:"addedAt"`
}

// NewLocalCartItemID generates a guest-mode line id
func NewLocalCartItemID(now time.Time) string {
	return fmt.Sprintf("%s%d", constants.LocalIDPrefix, now.UnixMilli())
}

// IsLocal reports whether the line has never been confirmed by the server
func (i CartItem) IsLocal() bool {
	return strings.HasPrefix(i.ID, constants.LocalIDPrefix)
}

// SameLine reports whether another line is the same cake+variant combination
func (i CartItem) SameLine(other CartItem) bool {
	return i.Cake.ID == other.Cake.ID && i.Variant.SameAs(other.Variant)
}

// LineTotal returns variant price times quantity
func (i CartItem) LineTotal() Money {
	return NewMoneyFromDecimal(i.Variant.Price.Decimal.Mul(decimal.NewFromInt(int64(i.Quantity))))
}

// AppliedPromo a promo code attached to the cart. Guest-mode codes carry no
// discount details; the server validates them at order creation.
type AppliedPromo struct {
	Code          string `json:"code"`
	DiscountType  string `json:"discountType,omitempty"` // percentage / fixed
	DiscountValue Money  `json:"discountValue"`
}

// Discount computes the promo discount against a subtotal, never exceeding it
func (p *AppliedPromo) Discount(subtotal Money) Money {
	if p == nil {
		return Money{}
	}
	var d decimal.Decimal
	switch p.DiscountType {
	case "percentage":
		d = subtotal.Decimal.Mul(p.DiscountValue.Decimal).Div(decimal.NewFromInt(100))
	case "fixed":
		d = p.DiscountValue.Decimal
	default:
		return Money{}
	}
	if d.GreaterThan(subtotal.Decimal) {
		d = subtotal.Decimal
	}
	return NewMoneyFromDecimal(d)
}

// ServerCart is the canonical cart shape returned by the API
type ServerCart struct {
	Items        []CartItem    `json:"items"`
	DeliveryType string        `json:"deliveryType,omitempty"`
	Promo        *AppliedPromo `json:"promo,omitempty"`
}
