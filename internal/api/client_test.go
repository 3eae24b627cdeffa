package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDoDecodesEnvelopeAndAttachesHeaders(t *testing.T) {
	var gotAuth, gotRequestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"success":true,"data":{"name":"Red Velvet"}}`)
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, 2)
	client.SetTokenSource(func() string { return "tok-1" })

	var dest struct {
		Name string `json:"name"`
	}
	if err := client.Get(context.Background(), "/cakes/red-velvet", &dest); err != nil {
		t.Fatalf("get: %v", err)
	}
	if dest.Name != "Red Velvet" {
		t.Fatalf("data not decoded: %+v", dest)
	}
	if gotAuth != "Bearer tok-1" {
		t.Fatalf("authorization header %q", gotAuth)
	}
	if gotRequestID == "" {
		t.Fatal("request id header missing")
	}
}

func TestDoNoTokenOmitsAuthorization(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, `{"success":true}`)
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, 2)
	client.SetTokenSource(func() string { return "" })

	if err := client.Get(context.Background(), "/cakes", nil); err != nil {
		t.Fatalf("get: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("empty token still sent as %q", gotAuth)
	}
}

func TestDoEnvelopeFailureBecomesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// HTTP 200 but business failure
		fmt.Fprint(w, `{"success":false,"message":"Promo expired"}`)
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, 2)
	err := client.Post(context.Background(), "/cart/promo", map[string]string{"code": "OLD"}, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type %T", err)
	}
	if apiErr.Message != "Promo expired" {
		t.Fatalf("message %q", apiErr.Message)
	}
	if got := Message(err, "fallback"); got != "Promo expired" {
		t.Fatalf("Message() = %q", got)
	}
}

func TestDoUnauthorizedFiresHookOnce(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, 2)
	fired := 0
	client.SetUnauthorizedHook(func() { fired++ })

	err := client.Get(context.Background(), "/users/profile", nil)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("error %v", err)
	}
	if fired != 1 {
		t.Fatalf("hook fired %d times", fired)
	}
}

func TestMessageFallsBackForTransportErrors(t *testing.T) {
	if got := Message(errors.New("connection refused"), "Could not load cart"); got != "Could not load cart" {
		t.Fatalf("Message() = %q", got)
	}
}
