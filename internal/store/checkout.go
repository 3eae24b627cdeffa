package store

import (
	"reflect"
	"strings"
	"sync"

	"github.com/sweetnest/storefront/internal/constants"
	"github.com/sweetnest/storefront/internal/models"

	"github.com/go-playground/validator/v10"
)

// CheckoutState the whitelisted subset of checkout state written to storage,
// kept across restarts so the gateway redirect round-trip loses nothing
type CheckoutState struct {
	ShippingData  models.ShippingInfo `json:"shippingData"`
	PaymentMethod string              `json:"paymentMethod"`
	CurrentStep   int                 `json:"currentStep"`
}

// ValidationResult field-keyed validation outcome
type ValidationResult struct {
	IsValid bool              `json:"isValid"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// CheckoutStore drives the multi-step checkout: shipping (1) → payment (2) →
// confirmation (3). The progression is strictly forward and non-skippable;
// step 3 is reachable only through SetOrderResult. An external payment
// callback is authoritative over the local step counter: failure returns the
// flow to step 2, success forces step 3.
type CheckoutStore struct {
	mu             sync.Mutex
	step           int
	shipping       models.ShippingInfo
	paymentMethod  string
	orderID        string
	orderNumber    string
	order          *models.Order
	returnConsumed bool

	validate  *validator.Validate
	persister Persister
}

// NewCheckoutStore creates the checkout store
func NewCheckoutStore(persister Persister) *CheckoutStore {
	v := validator.New()
	// key validation errors by the JSON field name the UI layer knows
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &CheckoutStore{
		step:          constants.CheckoutStepShipping,
		paymentMethod: constants.PaymentMethodEsewa,
		validate:      v,
		persister:     persister,
	}
}

// Restore hydrates the store from a persisted snapshot
func (s *CheckoutStore) Restore(state CheckoutState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shipping = state.ShippingData
	if state.PaymentMethod != "" {
		s.paymentMethod = state.PaymentMethod
	}
	switch state.CurrentStep {
	case constants.CheckoutStepShipping, constants.CheckoutStepPayment:
		s.step = state.CurrentStep
	default:
		// step 3 is never restored from storage; it is only reachable
		// through SetOrderResult in the current run
		s.step = constants.CheckoutStepShipping
	}
}

// CurrentStep returns the active step
func (s *CheckoutStore) CurrentStep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// NextStep advances shipping → payment. It never reaches confirmation; only
// SetOrderResult does, so repeat calls from the payment step are no-ops.
func (s *CheckoutStore) NextStep() {
	s.mu.Lock()
	if s.step == constants.CheckoutStepShipping {
		s.step = constants.CheckoutStepPayment
	}
	s.mu.Unlock()
	s.persist()
}

// PrevStep moves back one step, never below shipping
func (s *CheckoutStore) PrevStep() {
	s.mu.Lock()
	if s.step > constants.CheckoutStepShipping && s.step < constants.CheckoutStepConfirmation {
		s.step--
	}
	s.mu.Unlock()
	s.persist()
}

// SetShipping stores the shipping form as entered; validation is separate
func (s *CheckoutStore) SetShipping(info models.ShippingInfo) {
	s.mu.Lock()
	s.shipping = info
	s.mu.Unlock()
	s.persist()
}

// Shipping returns the current shipping form
func (s *CheckoutStore) Shipping() models.ShippingInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shipping
}

// SetPaymentMethod selects esewa or cod
func (s *CheckoutStore) SetPaymentMethod(method string) Result {
	if method != constants.PaymentMethodEsewa && method != constants.PaymentMethodCOD {
		return fail("Unknown payment method")
	}
	s.mu.Lock()
	s.paymentMethod = method
	s.mu.Unlock()
	s.persist()
	return ok()
}

// PaymentMethod returns the selected payment method
func (s *CheckoutStore) PaymentMethod() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paymentMethod
}

// ValidateShipping is a pure check of the shipping form, returning a
// field-keyed message map. No network call.
func (s *CheckoutStore) ValidateShipping() ValidationResult {
	s.mu.Lock()
	shipping := s.shipping
	s.mu.Unlock()

	err := s.validate.Struct(shipping)
	if err == nil {
		return ValidationResult{IsValid: true}
	}

	fieldErrors, okCast := err.(validator.ValidationErrors)
	if !okCast {
		return ValidationResult{IsValid: false, Errors: map[string]string{"form": "Invalid shipping details"}}
	}
	messages := make(map[string]string, len(fieldErrors))
	for _, fe := range fieldErrors {
		messages[fe.Field()] = shippingFieldMessage(fe)
	}
	return ValidationResult{IsValid: false, Errors: messages}
}

// OrderPayload assembles the order-creation body from current checkout state
// and the cart snapshot the caller passes in. This is the seam with the
// external API contract.
func (s *CheckoutStore) OrderPayload(items []models.CartItem, deliveryType string, promo *models.AppliedPromo) models.OrderPayload {
	s.mu.Lock()
	shipping := s.shipping
	method := s.paymentMethod
	s.mu.Unlock()

	payloadItems := make([]models.OrderPayloadItem, 0, len(items))
	for _, item := range items {
		payloadItems = append(payloadItems, models.OrderPayloadItem{
			Cake:          item.Cake.ID,
			Quantity:      item.Quantity,
			Variant:       item.Variant,
			Customization: item.Customization,
		})
	}
	payload := models.OrderPayload{
		Items:         payloadItems,
		ShippingInfo:  shipping,
		DeliveryType:  deliveryType,
		PaymentMethod: method,
	}
	if promo != nil {
		payload.PromoCode = promo.Code
	}
	return payload
}

// SetOrderResult records the created order and forces the confirmation step.
// This is the only legitimate path to step 3.
func (s *CheckoutStore) SetOrderResult(orderID, orderNumber string, order *models.Order) {
	s.mu.Lock()
	s.orderID = orderID
	s.orderNumber = orderNumber
	s.order = order
	s.step = constants.CheckoutStepConfirmation
	s.mu.Unlock()
	s.persist()
}

// OrderResult returns the created order's ids, empty until one exists
func (s *CheckoutStore) OrderResult() (orderID, orderNumber string, order *models.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orderID, s.orderNumber, s.order
}

// PaymentFailed is the out-of-band transition back to the payment step when
// the gateway callback reports failure
func (s *CheckoutStore) PaymentFailed() {
	s.mu.Lock()
	s.step = constants.CheckoutStepPayment
	s.mu.Unlock()
	s.persist()
}

// ConsumeReturn applies a parsed gateway return exactly once per run; repeat
// calls report false and change nothing. The callback's verdict overrides the
// local step counter.
func (s *CheckoutStore) ConsumeReturn(status, orderID, orderNumber string) bool {
	s.mu.Lock()
	if s.returnConsumed {
		s.mu.Unlock()
		return false
	}
	s.returnConsumed = true
	s.mu.Unlock()

	if status == constants.ReturnStatusSuccess {
		s.SetOrderResult(orderID, orderNumber, nil)
	} else {
		s.PaymentFailed()
	}
	return true
}

// PrefillFromUser fills only currently-empty shipping fields from the
// profile, never clobbering an in-progress edit
func (s *CheckoutStore) PrefillFromUser(user *models.User) {
	if user == nil {
		return
	}
	s.mu.Lock()
	if s.shipping.Email == "" {
		s.shipping.Email = user.Email
	}
	if s.shipping.FirstName == "" {
		s.shipping.FirstName = user.FirstName
	}
	if s.shipping.LastName == "" {
		s.shipping.LastName = user.LastName
	}
	if s.shipping.Phone == "" {
		s.shipping.Phone = user.Phone
	}
	if s.shipping.Address == "" {
		s.shipping.Address = user.Address
	}
	if s.shipping.City == "" {
		s.shipping.City = user.City
	}
	s.mu.Unlock()
	s.persist()
}

// ResetCheckout clears the whole flow, used after the confirmation is
// acknowledged or the flow abandoned
func (s *CheckoutStore) ResetCheckout() {
	s.mu.Lock()
	s.step = constants.CheckoutStepShipping
	s.shipping = models.ShippingInfo{}
	s.paymentMethod = constants.PaymentMethodEsewa
	s.orderID = ""
	s.orderNumber = ""
	s.order = nil
	s.returnConsumed = false
	s.mu.Unlock()
	s.persist()
}

func shippingFieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "email":
		if fe.Tag() == "email" {
			return "Enter a valid email address"
		}
		return "Email is required"
	case "firstName":
		return "First name is required"
	case "lastName":
		return "Last name is required"
	case "phone":
		if fe.Tag() == "min" {
			return "Phone number must be at least 10 digits"
		}
		return "Phone number is required"
	case "address":
		return "Address is required"
	case "city":
		return "City is required"
	case "deliveryDate":
		return "Choose a delivery date"
	case "deliveryTime":
		return "Choose a delivery time slot"
	default:
		return "This field is required"
	}
}

func (s *CheckoutStore) persist() {
	if s.persister == nil {
		return
	}
	s.mu.Lock()
	state := CheckoutState{
		ShippingData:  s.shipping,
		PaymentMethod: s.paymentMethod,
		CurrentStep:   s.step,
	}
	s.mu.Unlock()
	s.persister.Persist(constants.StorageKeyCheckout, state)
}
