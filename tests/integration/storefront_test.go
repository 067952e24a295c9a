//go:build integration

package integration

import (
	"net/http"
	"regexp"
	"testing"
)

var uuidPattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

func TestCart_RequiresSession(t *testing.T) {
	resp := doGet(t, "/api/cart", "")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestCart_RejectsUnknownToken(t *testing.T) {
	resp := doGet(t, "/api/cart", "not-a-real-token")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestCart_Lifecycle(t *testing.T) {
	token := newSession(t)

	// Empty on first read.
	resp := doGet(t, "/api/cart", token)
	cart := decodeJSON[cartResponse](t, resp)
	resp.Body.Close()
	if cart.Count != 0 {
		t.Fatalf("fresh cart count: got %d, want 0", cart.Count)
	}

	// Add the same listing twice; lines merge.
	for range 2 {
		resp = doPost(t, "/api/cart/items", token, map[string]any{"productId": 1})
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("add item: expected 200, got %d", resp.StatusCode)
		}
	}

	resp = doGet(t, "/api/cart", token)
	cart = decodeJSON[cartResponse](t, resp)
	resp.Body.Close()
	if len(cart.Lines) != 1 {
		t.Fatalf("lines: got %d, want 1", len(cart.Lines))
	}
	if cart.Lines[0].Quantity != 2 {
		t.Errorf("quantity: got %d, want 2", cart.Lines[0].Quantity)
	}
	if cart.Total != 2460 {
		t.Errorf("total: got %v, want 2460", cart.Total)
	}

	// Unknown listing is rejected.
	resp = doPost(t, "/api/cart/items", token, map[string]any{"productId": 999})
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("unknown product: expected 422, got %d", resp.StatusCode)
	}

	// Clearing empties the cart.
	resp = doSend(t, http.MethodDelete, "/api/cart", token, nil)
	resp.Body.Close()
	resp = doGet(t, "/api/cart", token)
	cart = decodeJSON[cartResponse](t, resp)
	resp.Body.Close()
	if cart.Count != 0 {
		t.Errorf("cleared cart count: got %d, want 0", cart.Count)
	}
}

func TestCheckout_CardFlow(t *testing.T) {
	token := newSession(t)

	resp := doPost(t, "/api/cart/items", token, map[string]any{"productId": 2})
	resp.Body.Close()

	resp = doPost(t, "/api/checkout/open", token, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("open checkout: expected 200, got %d", resp.StatusCode)
	}

	// A failing Luhn check surfaces as a field error and keeps the cart.
	resp = doPost(t, "/api/checkout/submit", token, map[string]any{
		"method": "card",
		"card": map[string]string{
			"name":   "John Deo",
			"number": "4111 1111 1111 1112",
			"expiry": "01/28",
			"cvv":    "123",
		},
	})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("invalid card: expected 422, got %d", resp.StatusCode)
	}
	errResp := decodeJSON[errorResponse](t, resp)
	resp.Body.Close()
	if errResp.Fields["number"] == "" {
		t.Errorf("expected a field error for number, got %v", errResp.Fields)
	}

	resp = doPost(t, "/api/checkout/submit", token, map[string]any{
		"method": "card",
		"card": map[string]string{
			"name":   "John Deo",
			"number": "4111 1111 1111 1111",
			"expiry": "01/28",
			"cvv":    "123",
		},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("submit: expected 201, got %d", resp.StatusCode)
	}
	placed := decodeJSON[orderResponse](t, resp)
	resp.Body.Close()

	if !uuidPattern.MatchString(placed.ID) {
		t.Errorf("order ID %q is not a valid UUID", placed.ID)
	}
	if placed.Status != "Pending" {
		t.Errorf("status: got %q, want Pending", placed.Status)
	}
	if placed.Total != 1200 {
		t.Errorf("total: got %v, want 1200", placed.Total)
	}

	// The cart is emptied on success.
	resp = doGet(t, "/api/cart", token)
	cart := decodeJSON[cartResponse](t, resp)
	resp.Body.Close()
	if cart.Count != 0 {
		t.Errorf("cart after checkout: got %d items, want 0", cart.Count)
	}

	// The order shows up in history with tracking steps.
	resp = doGet(t, "/api/orders", token)
	orders := decodeJSON[[]orderResponse](t, resp)
	resp.Body.Close()
	if len(orders) != 1 {
		t.Fatalf("orders: got %d, want 1", len(orders))
	}

	resp = doGet(t, "/api/orders/"+placed.ID+"/tracking", token)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("tracking: expected 200, got %d", resp.StatusCode)
	}
	tracking := decodeJSON[struct {
		OrderID string `json:"orderId"`
		Steps   []struct {
			Label  string `json:"label"`
			Status string `json:"status"`
		} `json:"steps"`
	}](t, resp)
	if tracking.OrderID != placed.ID {
		t.Errorf("tracking order ID: got %q, want %q", tracking.OrderID, placed.ID)
	}
	if len(tracking.Steps) == 0 {
		t.Error("tracking has no steps")
	}
}

func TestCheckout_EmptyCart(t *testing.T) {
	token := newSession(t)

	resp := doPost(t, "/api/checkout/open", token, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("open: expected 200, got %d", resp.StatusCode)
	}

	resp = doPost(t, "/api/checkout/submit", token, map[string]any{
		"method": "card",
		"card": map[string]string{
			"name":   "John Deo",
			"number": "4111 1111 1111 1111",
			"expiry": "01/28",
			"cvv":    "123",
		},
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("submit with empty cart: expected 422, got %d", resp.StatusCode)
	}
}

func TestWallet_DepositAndBalance(t *testing.T) {
	token := newSession(t)

	resp := doPost(t, "/api/wallet/deposit", token, map[string]any{
		"amount":      "500.00",
		"description": "Bank transfer",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("deposit: expected 201, got %d", resp.StatusCode)
	}

	resp = doGet(t, "/api/wallet", token)
	wallet := decodeJSON[walletResponse](t, resp)
	resp.Body.Close()
	if wallet.Balance != 500 {
		t.Errorf("balance: got %v, want 500", wallet.Balance)
	}
	if len(wallet.Transactions) != 1 {
		t.Fatalf("transactions: got %d, want 1", len(wallet.Transactions))
	}

	// Non-positive amounts are rejected.
	resp = doPost(t, "/api/wallet/deposit", token, map[string]any{
		"amount": "-1",
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("negative deposit: expected 422, got %d", resp.StatusCode)
	}
}

func TestProfile_Defaults(t *testing.T) {
	token := newSession(t)

	resp := doGet(t, "/api/profile", token)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	profile := decodeJSON[struct {
		Name     string `json:"name"`
		Currency string `json:"currency"`
	}](t, resp)
	if profile.Name == "" {
		t.Error("default profile name is empty")
	}
	if profile.Currency == "" {
		t.Error("default currency is empty")
	}
}
