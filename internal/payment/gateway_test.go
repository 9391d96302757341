package payment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/orders" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "key_id" || pass != "key_secret" {
			t.Errorf("bad basic auth %q/%q", user, pass)
		}

		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		if body["amount"] != float64(5400000) {
			t.Errorf("unexpected amount %v", body["amount"])
		}
		if body["currency"] != "INR" {
			t.Errorf("unexpected currency %v", body["currency"])
		}

		json.NewEncoder(w).Encode(GatewayOrder{
			ID: "order_abc", Amount: 5400000, Currency: "INR", Receipt: body["receipt"].(string), Status: "created",
		})
	}))
	defer srv.Close()

	g := NewHTTPGatewayWithBaseURL(srv.URL, "key_id", "key_secret")
	got, err := g.CreateOrder(context.Background(), 5400000, "INR", "order_1700000000000")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != "order_abc" || got.Amount != 5400000 {
		t.Errorf("unexpected gateway order %+v", got)
	}
}

func TestCreateOrder_RejectedByProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"description":"Authentication failed"}}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	g := NewHTTPGatewayWithBaseURL(srv.URL, "key_id", "wrong")
	_, err := g.CreateOrder(context.Background(), 100, "INR", "r1")
	if !errors.Is(err, ErrGatewayUnavailable) {
		t.Fatalf("expected ErrGatewayUnavailable, got %v", err)
	}
}

func TestCreateOrder_Unreachable(t *testing.T) {
	g := NewHTTPGatewayWithBaseURL("http://127.0.0.1:1", "key_id", "key_secret")
	_, err := g.CreateOrder(context.Background(), 100, "INR", "r1")
	if !errors.Is(err, ErrGatewayUnavailable) {
		t.Fatalf("expected ErrGatewayUnavailable, got %v", err)
	}
}
