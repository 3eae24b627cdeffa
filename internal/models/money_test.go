package models

import (
	"encoding/json"
	"testing"
)

func TestMoneyMarshalsAsFixedTwoDecimalString(t *testing.T) {
	m, err := NewMoneyFromString("1350.5")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	out, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `"1350.50"` {
		t.Fatalf("marshal output %s", out)
	}
}

func TestMoneyUnmarshalsStringOrNumber(t *testing.T) {
	var fromString Money
	if err := json.Unmarshal([]byte(`"450.00"`), &fromString); err != nil {
		t.Fatalf("string form: %v", err)
	}
	var fromNumber Money
	if err := json.Unmarshal([]byte(`450`), &fromNumber); err != nil {
		t.Fatalf("number form: %v", err)
	}
	if !fromString.Decimal.Equal(fromNumber.Decimal) {
		t.Fatalf("forms disagree: %s vs %s", fromString, fromNumber)
	}
	if fromString.String() != "450.00" {
		t.Fatalf("string form %s", fromString)
	}
}

func TestAppliedPromoDiscount(t *testing.T) {
	subtotal, _ := NewMoneyFromString("1000.00")

	var nilPromo *AppliedPromo
	if got := nilPromo.Discount(subtotal).String(); got != "0.00" {
		t.Fatalf("nil promo discount %s", got)
	}

	ten, _ := NewMoneyFromString("10")
	percent := &AppliedPromo{Code: "SWEET10", DiscountType: "percentage", DiscountValue: ten}
	if got := percent.Discount(subtotal).String(); got != "100.00" {
		t.Fatalf("percentage discount %s", got)
	}

	huge, _ := NewMoneyFromString("5000.00")
	fixed := &AppliedPromo{Code: "FLAT", DiscountType: "fixed", DiscountValue: huge}
	if got := fixed.Discount(subtotal).String(); got != "1000.00" {
		t.Fatalf("fixed discount not capped: %s", got)
	}

	bare := &AppliedPromo{Code: "GUEST"}
	if got := bare.Discount(subtotal).String(); got != "0.00" {
		t.Fatalf("detail-less promo discount %s", got)
	}
}
