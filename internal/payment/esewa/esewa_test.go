package esewa

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/sweetnest/storefront/internal/constants"
)

func TestBuildFormEmitsSortedAutoSubmitForm(t *testing.T) {
	form, err := BuildForm(Params{
		URL: "https://rc-epay.esewa.com.np/api/epay/main/v2/form",
		Fields: map[string]string{
			"total_amount":     "1150.00",
			"amount":           "1000.00",
			"transaction_uuid": "SN-1001",
		},
	})
	if err != nil {
		t.Fatalf("build form: %v", err)
	}
	if !strings.Contains(form, `action="https://rc-epay.esewa.com.np/api/epay/main/v2/form"`) {
		t.Fatalf("action missing:\n%s", form)
	}
	if !strings.Contains(form, `onload="document.forms[0].submit()"`) {
		t.Fatal("form does not auto-submit")
	}
	amount := strings.Index(form, `name="amount"`)
	total := strings.Index(form, `name="total_amount"`)
	tx := strings.Index(form, `name="transaction_uuid"`)
	if amount == -1 || total == -1 || tx == -1 {
		t.Fatalf("fields missing:\n%s", form)
	}
	if !(amount < total && total < tx) {
		t.Fatal("fields not emitted in sorted order")
	}
}

func TestBuildFormRejectsInvalidParams(t *testing.T) {
	cases := []Params{
		{URL: "", Fields: map[string]string{"a": "1"}},
		{URL: "://bad", Fields: map[string]string{"a": "1"}},
		{URL: "https://example.com", Fields: nil},
	}
	for _, p := range cases {
		if _, err := BuildForm(p); !errors.Is(err, ErrParamsInvalid) {
			t.Fatalf("params %+v: error %v", p, err)
		}
	}
}

func TestParseReturnStatuses(t *testing.T) {
	ret, err := ParseReturn(url.Values{
		"status":      {"SUCCESS"},
		"orderId":     {"o1"},
		"orderNumber": {"SN-1001"},
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if ret.Status != constants.ReturnStatusSuccess || !ret.Succeeded() {
		t.Fatalf("status %q", ret.Status)
	}
	if ret.OrderID != "o1" || ret.OrderNumber != "SN-1001" {
		t.Fatalf("ids %q %q", ret.OrderID, ret.OrderNumber)
	}

	ret, err = ParseReturn(url.Values{"status": {"failed"}, "orderId": {"o1"}, "message": {"Payment declined"}})
	if err != nil {
		t.Fatalf("parse failed status: %v", err)
	}
	if ret.Status != constants.ReturnStatusFailed || ret.Succeeded() {
		t.Fatalf("status %q", ret.Status)
	}
	if ret.Message != "Payment declined" {
		t.Fatalf("message %q", ret.Message)
	}
}

func TestParseReturnNormalizesUnknownStatus(t *testing.T) {
	for _, status := range []string{"", "pending", "whatever"} {
		ret, err := ParseReturn(url.Values{"status": {status}, "orderId": {"o1"}})
		if err != nil {
			t.Fatalf("status %q: %v", status, err)
		}
		if ret.Status != constants.ReturnStatusError {
			t.Fatalf("status %q normalized to %q", status, ret.Status)
		}
	}
}

func TestParseReturnSuccessRequiresOrderID(t *testing.T) {
	if _, err := ParseReturn(url.Values{"status": {"success"}}); !errors.Is(err, ErrReturnInvalid) {
		t.Fatalf("error %v", err)
	}
}
