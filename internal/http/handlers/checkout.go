package handlers

import (
	"net/http"

	"github.com/sweetnest/storefront/internal/constants"
	"github.com/sweetnest/storefront/internal/http/response"
	"github.com/sweetnest/storefront/internal/logger"
	"github.com/sweetnest/storefront/internal/models"
	"github.com/sweetnest/storefront/internal/payment/esewa"

	"github.com/gin-gonic/gin"
)

// CheckoutView checkout state for the UI
type CheckoutView struct {
	ShippingData  models.ShippingInfo `json:"shippingData"`
	PaymentMethod string              `json:"paymentMethod"`
	CurrentStep   int                 `json:"currentStep"`
	OrderID       string              `json:"orderId,omitempty"`
	OrderNumber   string              `json:"orderNumber,omitempty"`
	Order         *models.Order       `json:"order,omitempty"`
}

func (h *Handler) checkoutView() CheckoutView {
	orderID, orderNumber, order := h.Checkout.OrderResult()
	return CheckoutView{
		ShippingData:  h.Checkout.Shipping(),
		PaymentMethod: h.Checkout.PaymentMethod(),
		CurrentStep:   h.Checkout.CurrentStep(),
		OrderID:       orderID,
		OrderNumber:   orderNumber,
		Order:         order,
	}
}

// GetCheckout returns checkout state, prefilling empty shipping fields from
// the signed-in user.
func (h *Handler) GetCheckout(c *gin.Context) {
	if h.loggedIn() {
		h.Checkout.PrefillFromUser(h.Auth.User())
	}
	response.Success(c, h.checkoutView())
}

// SetShipping stores the shipping form as typed, valid or not
func (h *Handler) SetShipping(c *gin.Context) {
	var info models.ShippingInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		response.BadRequest(c, "Invalid shipping details")
		return
	}
	h.Checkout.SetShipping(info)
	response.Success(c, h.checkoutView())
}

// ValidateShipping runs shipping validation without side effects
func (h *Handler) ValidateShipping(c *gin.Context) {
	result := h.Checkout.ValidateShipping()
	response.Success(c, result)
}

// NextStep advances the step machine. Leaving the shipping step requires a
// valid shipping form; confirmation is reached only through a placed order.
func (h *Handler) NextStep(c *gin.Context) {
	if h.Checkout.CurrentStep() == constants.CheckoutStepShipping {
		if result := h.Checkout.ValidateShipping(); !result.IsValid {
			response.ErrorWithData(c, http.StatusOK, "Please fix the highlighted fields", gin.H{"errors": result.Errors})
			return
		}
	}
	h.Checkout.NextStep()
	response.Success(c, h.checkoutView())
}

// PrevStep steps back from payment to shipping
func (h *Handler) PrevStep(c *gin.Context) {
	h.Checkout.PrevStep()
	response.Success(c, h.checkoutView())
}

// PaymentMethodRequest payment method body
type PaymentMethodRequest struct {
	Method string `json:"method"`
}

// SetPaymentMethod selects esewa or cod
func (h *Handler) SetPaymentMethod(c *gin.Context) {
	var req PaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid payment method")
		return
	}
	result := h.Checkout.SetPaymentMethod(req.Method)
	respondResult(c, result, h.checkoutView())
}

// PlaceOrder creates the order from cart plus checkout state. Cash orders
// confirm immediately; eSewa orders stay on the payment step until the
// gateway return comes back.
func (h *Handler) PlaceOrder(c *gin.Context) {
	if result := h.Checkout.ValidateShipping(); !result.IsValid {
		response.ErrorWithData(c, http.StatusOK, "Please fix the highlighted fields", gin.H{"errors": result.Errors})
		return
	}
	if h.Cart.ItemCount() == 0 {
		response.BadRequest(c, "Your cart is empty")
		return
	}

	payload := h.Checkout.OrderPayload(h.Cart.Items(), h.Cart.DeliveryType(), h.Cart.Promo())
	order, err := h.OrderAPI.Create(c.Request.Context(), payload)
	if err != nil {
		logger.Warnw("checkout_order_create_failed", "error", err)
		respondUpstreamError(c, err, "Could not place your order")
		return
	}

	if payload.PaymentMethod == constants.PaymentMethodEsewa {
		params, err := h.OrderAPI.EsewaParams(c.Request.Context(), order.ID)
		if err != nil {
			logger.Warnw("checkout_esewa_params_failed", "order_id", order.ID, "error", err)
			respondUpstreamError(c, err, "Could not start the eSewa payment")
			return
		}
		form, err := esewa.BuildForm(esewa.Params{URL: params.URL, Fields: params.Fields})
		if err != nil {
			logger.Warnw("checkout_esewa_form_failed", "order_id", order.ID, "error", err)
			response.Upstream(c, "Could not start the eSewa payment")
			return
		}
		response.Success(c, gin.H{
			"orderId":     order.ID,
			"orderNumber": order.OrderNumber,
			"gatewayForm": form,
		})
		return
	}

	h.Checkout.SetOrderResult(order.ID, order.OrderNumber, order)
	h.Cart.ClearCart(c.Request.Context(), h.loggedIn())
	response.Success(c, h.checkoutView())
}

// GatewayReturn consumes the gateway return redirect exactly once. A replay
// of the same return URL reports nothing and changes nothing.
func (h *Handler) GatewayReturn(c *gin.Context) {
	ret, err := esewa.ParseReturn(c.Request.URL.Query())
	if err != nil {
		logger.Warnw("checkout_return_invalid", "error", err)
		response.BadRequest(c, "Invalid payment return")
		return
	}
	consumed := h.Checkout.ConsumeReturn(ret.Status, ret.OrderID, ret.OrderNumber)
	if consumed && ret.Succeeded() {
		h.Cart.ClearCart(c.Request.Context(), h.loggedIn())
	}
	response.Success(c, gin.H{
		"consumed": consumed,
		"return":   ret,
		"checkout": h.checkoutView(),
	})
}

// ResetCheckout clears checkout state after the confirmation page
func (h *Handler) ResetCheckout(c *gin.Context) {
	h.Checkout.ResetCheckout()
	response.Success(c, h.checkoutView())
}
