package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mzansi-market/storefront/internal/api/middleware"
	"github.com/mzansi-market/storefront/internal/core/derive"
	"github.com/mzansi-market/storefront/internal/core/domain"
)

func TestCartHandler_Quote_FreeShipping(t *testing.T) {
	handler := NewCartHandler(seededInventory(t), derive.DefaultShippingPolicy)

	c, rec := newTestContext(http.MethodPost, "/cart/quote",
		`{"items":[{"listingId":"1","quantity":1},{"listingId":"2","quantity":2}]}`)
	if err := handler.Quote(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp quoteResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	want := derive.Summary{Subtotal: 2230, Shipping: 0, Total: 2230, FreeShipping: true, ItemCount: 3}
	if resp.Summary != want {
		t.Fatalf("expected %+v, got %+v", want, resp.Summary)
	}
	if len(resp.Lines) != 2 || resp.Lines[1].UnitPrice != 890 {
		t.Fatalf("unexpected lines: %+v", resp.Lines)
	}
}

func TestCartHandler_Quote_ClampsAndCharges(t *testing.T) {
	handler := NewCartHandler(seededInventory(t), derive.DefaultShippingPolicy)

	// Listing 5 costs 180 with 30 in stock.
	c, rec := newTestContext(http.MethodPost, "/cart/quote",
		`{"items":[{"listingId":"5","quantity":1}]}`)
	if err := handler.Quote(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp quoteResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Summary.Shipping != 50 || resp.Summary.Total != 230 {
		t.Fatalf("expected flat fee below threshold, got %+v", resp.Summary)
	}

	// Repeated ids accumulate: 20 + 20 is clamped to 30.
	c, rec = newTestContext(http.MethodPost, "/cart/quote",
		`{"items":[{"listingId":"5","quantity":20},{"listingId":"5","quantity":20}]}`)
	if err := handler.Quote(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if len(resp.Lines) != 1 || resp.Lines[0].Quantity != 30 {
		t.Fatalf("expected one line clamped to 30, got %+v", resp.Lines)
	}
}

func TestCartHandler_Quote_Empty(t *testing.T) {
	handler := NewCartHandler(seededInventory(t), derive.DefaultShippingPolicy)

	c, rec := newTestContext(http.MethodPost, "/cart/quote", `{"items":[]}`)
	if err := handler.Quote(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp quoteResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Summary != (derive.Summary{}) {
		t.Fatalf("expected zero summary, got %+v", resp.Summary)
	}
}

func TestCartHandler_Quote_Errors(t *testing.T) {
	handler := NewCartHandler(seededInventory(t), derive.DefaultShippingPolicy)

	c, _ := newTestContext(http.MethodPost, "/cart/quote", `{"items":[{"listingId":"nope","quantity":1}]}`)
	if err := handler.Quote(c); !errors.Is(err, domain.ErrListingNotFound) {
		t.Fatalf("expected ErrListingNotFound, got %v", err)
	}

	c, _ = newTestContext(http.MethodPost, "/cart/quote", `{"items":[{"listingId":"1","quantity":0}]}`)
	if err := handler.Quote(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestCartHandler_Quote_SoldOutListing(t *testing.T) {
	inventory := seededInventory(t)
	stock := 0
	soldOut, err := inventory.Add(context.Background(), domain.ListingDraft{
		Title: "Ndebele Clay Pot", Price: 150, Category: "Home Decor", OwnerID: "seller1", StockCount: &stock,
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	handler := NewCartHandler(inventory, derive.DefaultShippingPolicy)

	c, rec := newTestContext(http.MethodPost, "/cart/quote",
		`{"items":[{"listingId":"4","quantity":1},{"listingId":"`+soldOut.ID+`","quantity":1}]}`)
	err = handler.Quote(c)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if !strings.Contains(err.Error(), soldOut.ID+" is out of stock") {
		t.Fatalf("expected out-of-stock message, got %q", err.Error())
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("expected no partial quote, got %s", rec.Body.String())
	}
}

const validCheckout = `{
	"items":[{"listingId":"1","quantity":1},{"listingId":"6","quantity":1}],
	"contact":{"firstName":"Naledi","lastName":"Mokoena","phone":"0821234567"},
	"shippingAddress":{"address":"12 Vilakazi St","city":"Soweto","province":"Gauteng","postalCode":"1804"}
}`

func newCheckoutHandler(t *testing.T) *CartHandler {
	t.Helper()
	handler := NewCartHandler(seededInventory(t), derive.DefaultShippingPolicy)
	handler.newID = func() string { return "order-1" }
	handler.now = func() time.Time { return time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC) }
	return handler
}

func asBuyer(c echo.Context, id, email string) {
	c.Set(middleware.ContextKeyUserID, id)
	c.Set(middleware.ContextKeyEmail, email)
	c.Set(middleware.ContextKeyRole, string(domain.RoleBuyer))
}

func TestCartHandler_Checkout_Confirms(t *testing.T) {
	handler := newCheckoutHandler(t)

	c, rec := newTestContext(http.MethodPost, "/checkout", validCheckout)
	asBuyer(c, "b1", "naledi@example.com")
	if err := handler.Checkout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var order orderConfirmation
	if err := json.Unmarshal(rec.Body.Bytes(), &order); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if order.OrderID != "order-1" || order.Status != "confirmed" || order.BuyerID != "b1" {
		t.Fatalf("unexpected confirmation: %+v", order)
	}
	if !order.PlacedAt.Equal(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected placedAt %v", order.PlacedAt)
	}
	if order.Contact.Email != "naledi@example.com" {
		t.Fatalf("expected email from token, got %q", order.Contact.Email)
	}
	// 450 + 220 = 670 ships free.
	want := derive.Summary{Subtotal: 670, Shipping: 0, Total: 670, FreeShipping: true, ItemCount: 2}
	if order.Summary != want || len(order.Lines) != 2 {
		t.Fatalf("expected %+v over 2 lines, got %+v %+v", want, order.Summary, order.Lines)
	}
	if order.ShippingAddress.Province != "Gauteng" {
		t.Fatalf("unexpected address %+v", order.ShippingAddress)
	}
}

func TestCartHandler_Checkout_ExplicitEmailWins(t *testing.T) {
	handler := newCheckoutHandler(t)
	body := strings.Replace(validCheckout, `"phone":"0821234567"`, `"email":"orders@mokoena.co.za"`, 1)

	c, rec := newTestContext(http.MethodPost, "/checkout", body)
	asBuyer(c, "b1", "naledi@example.com")
	if err := handler.Checkout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var order orderConfirmation
	_ = json.Unmarshal(rec.Body.Bytes(), &order)
	if order.Contact.Email != "orders@mokoena.co.za" {
		t.Fatalf("expected explicit email, got %q", order.Contact.Email)
	}
}

func TestCartHandler_Checkout_Rejects(t *testing.T) {
	cases := map[string]struct {
		from, to string
		want     string
	}{
		"unknown province": {`"province":"Gauteng"`, `"province":"Transvaal"`, "province must be one of"},
		"missing province": {`"province":"Gauteng",`, ``, "province is required"},
		"missing city":     {`"city":"Soweto",`, ``, "city is required"},
		"missing postal":   {`,"postalCode":"1804"`, ``, "postalCode is required"},
		"short postal":     {`"postalCode":"1804"`, `"postalCode":"180"`, "postalCode must be 4 characters long"},
		"letters postal":   {`"postalCode":"1804"`, `"postalCode":"18O4"`, "postalCode must be numeric"},
		"missing name":     {`"firstName":"Naledi",`, ``, "firstName is required"},
		"empty cart": {
			`[{"listingId":"1","quantity":1},{"listingId":"6","quantity":1}]`, `[]`,
			"items must have at least 1",
		},
	}
	handler := newCheckoutHandler(t)
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			body := strings.Replace(validCheckout, tc.from, tc.to, 1)
			c, _ := newTestContext(http.MethodPost, "/checkout", body)
			asBuyer(c, "b1", "naledi@example.com")
			err := handler.Checkout(c)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected %q in %q", tc.want, err.Error())
			}
		})
	}
}

func TestCartHandler_Checkout_NeedsCaller(t *testing.T) {
	handler := newCheckoutHandler(t)

	c, _ := newTestContext(http.MethodPost, "/checkout", validCheckout)
	var he *echo.HTTPError
	if err := handler.Checkout(c); !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}

	c, _ = newTestContext(http.MethodPost, "/checkout", strings.Replace(validCheckout, `"listingId":"6"`, `"listingId":"ghost"`, 1))
	asBuyer(c, "b1", "naledi@example.com")
	if err := handler.Checkout(c); !errors.Is(err, domain.ErrListingNotFound) {
		t.Fatalf("expected ErrListingNotFound, got %v", err)
	}
}
