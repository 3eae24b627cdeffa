package store

import (
	"testing"

	"github.com/sweetnest/storefront/internal/constants"
	"github.com/sweetnest/storefront/internal/models"
)

func validShipping() models.ShippingInfo {
	return models.ShippingInfo{
		Email:        "maya@example.com",
		FirstName:    "Maya",
		LastName:     "Shrestha",
		Phone:        "9841000000",
		Address:      "12 Lazimpat Road",
		City:         "Kathmandu",
		DeliveryDate: "2026-09-10",
		DeliveryTime: "14:00-16:00",
	}
}

func TestCheckoutStepMachine(t *testing.T) {
	s := NewCheckoutStore(nil)

	if got := s.CurrentStep(); got != constants.CheckoutStepShipping {
		t.Fatalf("initial step %d", got)
	}
	s.NextStep()
	if got := s.CurrentStep(); got != constants.CheckoutStepPayment {
		t.Fatalf("after NextStep, step %d", got)
	}
	// NextStep never reaches confirmation
	s.NextStep()
	if got := s.CurrentStep(); got != constants.CheckoutStepPayment {
		t.Fatalf("NextStep advanced past payment to %d", got)
	}
	s.PrevStep()
	if got := s.CurrentStep(); got != constants.CheckoutStepShipping {
		t.Fatalf("after PrevStep, step %d", got)
	}
	s.PrevStep()
	if got := s.CurrentStep(); got != constants.CheckoutStepShipping {
		t.Fatalf("PrevStep went below shipping to %d", got)
	}
}

func TestSetOrderResultForcesConfirmation(t *testing.T) {
	s := NewCheckoutStore(nil)
	order := &models.Order{ID: "o1", OrderNumber: "SN-1001"}

	s.SetOrderResult("o1", "SN-1001", order)
	if got := s.CurrentStep(); got != constants.CheckoutStepConfirmation {
		t.Fatalf("step %d after SetOrderResult", got)
	}
	// confirmation is terminal for the step buttons
	s.PrevStep()
	if got := s.CurrentStep(); got != constants.CheckoutStepConfirmation {
		t.Fatalf("PrevStep left confirmation to %d", got)
	}
	orderID, orderNumber, gotOrder := s.OrderResult()
	if orderID != "o1" || orderNumber != "SN-1001" || gotOrder == nil {
		t.Fatalf("order result %q %q %v", orderID, orderNumber, gotOrder)
	}
}

func TestRestoreNeverRestoresConfirmation(t *testing.T) {
	s := NewCheckoutStore(nil)
	s.Restore(CheckoutState{CurrentStep: constants.CheckoutStepConfirmation})
	if got := s.CurrentStep(); got != constants.CheckoutStepShipping {
		t.Fatalf("confirmation restored from storage, step %d", got)
	}

	s.Restore(CheckoutState{CurrentStep: constants.CheckoutStepPayment, PaymentMethod: constants.PaymentMethodCOD})
	if got := s.CurrentStep(); got != constants.CheckoutStepPayment {
		t.Fatalf("payment step not restored, step %d", got)
	}
	if got := s.PaymentMethod(); got != constants.PaymentMethodCOD {
		t.Fatalf("payment method not restored, got %q", got)
	}
}

func TestValidateShippingFieldKeys(t *testing.T) {
	s := NewCheckoutStore(nil)

	result := s.ValidateShipping()
	if result.IsValid {
		t.Fatal("empty form validated")
	}
	for _, field := range []string{"email", "firstName", "lastName", "phone", "address", "city", "deliveryDate", "deliveryTime"} {
		if _, found := result.Errors[field]; !found {
			t.Fatalf("missing error for %q in %v", field, result.Errors)
		}
	}

	info := validShipping()
	info.Email = "not-an-email"
	s.SetShipping(info)
	result = s.ValidateShipping()
	if result.Errors["email"] != "Enter a valid email address" {
		t.Fatalf("email message %q", result.Errors["email"])
	}

	info = validShipping()
	info.Phone = "98410"
	s.SetShipping(info)
	result = s.ValidateShipping()
	if result.Errors["phone"] != "Phone number must be at least 10 digits" {
		t.Fatalf("phone message %q", result.Errors["phone"])
	}

	s.SetShipping(validShipping())
	if result := s.ValidateShipping(); !result.IsValid {
		t.Fatalf("valid form rejected: %v", result.Errors)
	}
}

func TestSetPaymentMethod(t *testing.T) {
	s := NewCheckoutStore(nil)
	if result := s.SetPaymentMethod("paypal"); result.Success {
		t.Fatal("unknown payment method accepted")
	}
	if result := s.SetPaymentMethod(constants.PaymentMethodCOD); !result.Success {
		t.Fatalf("cod rejected: %s", result.Message)
	}
	if got := s.PaymentMethod(); got != constants.PaymentMethodCOD {
		t.Fatalf("payment method %q", got)
	}
}

func TestConsumeReturnIsOneShot(t *testing.T) {
	s := NewCheckoutStore(nil)
	s.Restore(CheckoutState{CurrentStep: constants.CheckoutStepPayment})

	if !s.ConsumeReturn(constants.ReturnStatusSuccess, "o1", "SN-1001") {
		t.Fatal("first consume reported false")
	}
	if got := s.CurrentStep(); got != constants.CheckoutStepConfirmation {
		t.Fatalf("success return did not force confirmation, step %d", got)
	}

	if s.ConsumeReturn(constants.ReturnStatusFailed, "o1", "SN-1001") {
		t.Fatal("replayed return consumed again")
	}
	if got := s.CurrentStep(); got != constants.CheckoutStepConfirmation {
		t.Fatalf("replay changed the step to %d", got)
	}
}

func TestConsumeReturnFailureReturnsToPayment(t *testing.T) {
	s := NewCheckoutStore(nil)
	s.Restore(CheckoutState{CurrentStep: constants.CheckoutStepPayment})

	if !s.ConsumeReturn(constants.ReturnStatusFailed, "o1", "SN-1001") {
		t.Fatal("consume reported false")
	}
	if got := s.CurrentStep(); got != constants.CheckoutStepPayment {
		t.Fatalf("failed return left step %d", got)
	}
	if orderID, _, _ := s.OrderResult(); orderID != "" {
		t.Fatalf("failed return recorded an order result %q", orderID)
	}
}

func TestPrefillFromUserFillsOnlyEmptyFields(t *testing.T) {
	s := NewCheckoutStore(nil)
	s.SetShipping(models.ShippingInfo{Email: "typed@example.com"})

	s.PrefillFromUser(&models.User{
		Email:     "profile@example.com",
		FirstName: "Maya",
		Phone:     "9841000000",
		City:      "Pokhara",
	})

	shipping := s.Shipping()
	if shipping.Email != "typed@example.com" {
		t.Fatalf("in-progress email clobbered to %q", shipping.Email)
	}
	if shipping.FirstName != "Maya" || shipping.Phone != "9841000000" || shipping.City != "Pokhara" {
		t.Fatalf("empty fields not prefilled: %+v", shipping)
	}
}

func TestOrderPayloadAssembly(t *testing.T) {
	s := NewCheckoutStore(nil)
	s.SetShipping(validShipping())
	s.SetPaymentMethod(constants.PaymentMethodCOD)

	items := []models.CartItem{
		{ID: "srv-1", Cake: models.CakeRef{ID: "c1"}, Quantity: 2, Variant: models.Variant{ID: "v1"}},
	}
	promo := &models.AppliedPromo{Code: "SWEET10"}
	payload := s.OrderPayload(items, constants.DeliveryTypePickup, promo)

	if len(payload.Items) != 1 || payload.Items[0].Cake != "c1" || payload.Items[0].Quantity != 2 {
		t.Fatalf("payload items %+v", payload.Items)
	}
	if payload.DeliveryType != constants.DeliveryTypePickup {
		t.Fatalf("delivery type %q", payload.DeliveryType)
	}
	if payload.PaymentMethod != constants.PaymentMethodCOD {
		t.Fatalf("payment method %q", payload.PaymentMethod)
	}
	if payload.PromoCode != "SWEET10" {
		t.Fatalf("promo code %q", payload.PromoCode)
	}
	if payload.ShippingInfo.Email != "maya@example.com" {
		t.Fatalf("shipping info %+v", payload.ShippingInfo)
	}
}

func TestResetCheckoutClearsEverything(t *testing.T) {
	s := NewCheckoutStore(nil)
	s.SetShipping(validShipping())
	s.SetPaymentMethod(constants.PaymentMethodCOD)
	s.SetOrderResult("o1", "SN-1001", &models.Order{ID: "o1"})

	s.ResetCheckout()

	if got := s.CurrentStep(); got != constants.CheckoutStepShipping {
		t.Fatalf("step %d after reset", got)
	}
	if s.Shipping() != (models.ShippingInfo{}) {
		t.Fatalf("shipping survived reset: %+v", s.Shipping())
	}
	if got := s.PaymentMethod(); got != constants.PaymentMethodEsewa {
		t.Fatalf("payment method %q after reset", got)
	}
	if orderID, _, _ := s.OrderResult(); orderID != "" {
		t.Fatalf("order result survived reset: %q", orderID)
	}
}
