// Package esewa implements the storefront side of the eSewa handoff: a
// same-window HTML form POST of server-issued hidden fields to the gateway,
// and the parsing of the return redirect. The order is created first
// (pending payment) and the server signs the fields; nothing here touches
// amounts or credentials.
package esewa

import (
	"errors"
	"fmt"
	"html/template"
	"net/url"
	"sort"
	"strings"

	"github.com/sweetnest/storefront/internal/constants"
)

var (
	ErrParamsInvalid = errors.New("esewa params invalid")
	ErrReturnInvalid = errors.New("esewa return invalid")
)

// Params the server-issued redirect parameters
type Params struct {
	URL    string
	Fields map[string]string
}

// Return the parsed gateway return redirect
type Return struct {
	Status      string `json:"status"`
	OrderID     string `json:"orderId"`
	OrderNumber string `json:"orderNumber"`
	Message     string `json:"message,omitempty"`
}

// Succeeded reports whether the gateway confirmed the payment
func (r Return) Succeeded() bool {
	return r.Status == constants.ReturnStatusSuccess
}

// ValidateParams checks the server-issued parameters before building a form
func ValidateParams(p Params) error {
	if strings.TrimSpace(p.URL) == "" {
		return fmt.Errorf("%w: url is required", ErrParamsInvalid)
	}
	if _, err := url.ParseRequestURI(strings.TrimSpace(p.URL)); err != nil {
		return fmt.Errorf("%w: %v", ErrParamsInvalid, err)
	}
	if len(p.Fields) == 0 {
		return fmt.Errorf("%w: no form fields", ErrParamsInvalid)
	}
	return nil
}

var formTemplate = template.Must(template.New("esewa_form").Parse(`<!DOCTYPE html>
<html>
<body onload="document.forms[0].submit()">
<form method="POST" action="{{.Action}}">
{{- range .Fields}}
<input type="hidden" name="{{.Name}}" value="{{.Value}}">
{{- end}}
<noscript><button type="submit">Continue to eSewa</button></noscript>
</form>
</body>
</html>
`))

type formField struct {
	Name  string
	Value string
}

// BuildForm renders the auto-submitting handoff page. Fields are emitted in
// sorted order so the output is deterministic.
func BuildForm(p Params) (string, error) {
	if err := ValidateParams(p); err != nil {
		return "", err
	}
	names := make([]string, 0, len(p.Fields))
	for name := range p.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	fields := make([]formField, 0, len(names))
	for _, name := range names {
		fields = append(fields, formField{Name: name, Value: p.Fields[name]})
	}

	var b strings.Builder
	data := struct {
		Action string
		Fields []formField
	}{Action: strings.TrimSpace(p.URL), Fields: fields}
	if err := formTemplate.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

// ParseReturn maps the return redirect's query parameters. Unknown status
// values are normalized to error so the checkout never advances on them.
func ParseReturn(query url.Values) (Return, error) {
	status := strings.ToLower(strings.TrimSpace(query.Get("status")))
	switch status {
	case constants.ReturnStatusSuccess, constants.ReturnStatusFailed:
	case constants.ReturnStatusError, "":
		status = constants.ReturnStatusError
	default:
		status = constants.ReturnStatusError
	}

	ret := Return{
		Status:      status,
		OrderID:     strings.TrimSpace(query.Get("orderId")),
		OrderNumber: strings.TrimSpace(query.Get("orderNumber")),
		Message:     strings.TrimSpace(query.Get("message")),
	}
	if ret.Status == constants.ReturnStatusSuccess && ret.OrderID == "" {
		return Return{}, fmt.Errorf("%w: success without orderId", ErrReturnInvalid)
	}
	return ret, nil
}
