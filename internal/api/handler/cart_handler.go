package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mzansi-market/storefront/internal/api/middleware"
	"github.com/mzansi-market/storefront/internal/core/derive"
	"github.com/mzansi-market/storefront/internal/core/domain"
	"github.com/mzansi-market/storefront/internal/core/ports"
	"github.com/mzansi-market/storefront/internal/pkg/metrics"
)

// orderConfirmed is the only status a placed order can have; orders are
// confirmed on the spot and not stored.
const orderConfirmed = "confirmed"

// CartHandler prices a cart against the live catalog. Carts are not stored.
type CartHandler struct {
	inventory ports.InventoryService
	shipping  derive.ShippingPolicy
	now       func() time.Time
	newID     func() string
}

func NewCartHandler(inventory ports.InventoryService, shipping derive.ShippingPolicy) *CartHandler {
	return &CartHandler{
		inventory: inventory,
		shipping:  shipping,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
	}
}

// Quote handles POST /cart/quote. Repeated listing ids accumulate into one
// line and every quantity is clamped to the listing's stock.
//
// @Summary      Price a cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        body  body      quoteRequest  true  "Cart items"
// @Success      200   {object}  quoteResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /cart/quote [post]
func (h *CartHandler) Quote(c echo.Context) error {
	var req quoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	cart, err := h.buildCart(c.Request().Context(), req.Items)
	if err != nil {
		return err
	}

	summary := cart.Summary(h.shipping)
	metrics.CartQuotesTotal.WithLabelValues(strconv.FormatBool(summary.FreeShipping)).Inc()

	return c.JSON(http.StatusOK, quoteResponse{Lines: cart.Lines(), Summary: summary})
}

// Checkout handles POST /checkout. It prices the cart like Quote and returns
// a confirmation for the signed-in caller. The contact email defaults to the
// one in the caller's token.
//
// @Summary      Place an order
// @Tags         cart
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      checkoutRequest  true  "Cart items, contact and shipping address"
// @Success      201   {object}  orderConfirmation
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /checkout [post]
func (h *CartHandler) Checkout(c echo.Context) error {
	buyerID, err := ctxSubject(c)
	if err != nil {
		return err
	}

	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.Contact.Email == "" {
		req.Contact.Email, _ = c.Get(middleware.ContextKeyEmail).(string)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	cart, err := h.buildCart(c.Request().Context(), req.Items)
	if err != nil {
		return err
	}

	summary := cart.Summary(h.shipping)
	metrics.OrdersPlacedTotal.WithLabelValues(strconv.FormatBool(summary.FreeShipping)).Inc()

	return c.JSON(http.StatusCreated, orderConfirmation{
		OrderID:         h.newID(),
		Status:          orderConfirmed,
		BuyerID:         buyerID,
		PlacedAt:        h.now(),
		Contact:         req.Contact,
		ShippingAddress: req.ShippingAddress,
		Lines:           cart.Lines(),
		Summary:         summary,
	})
}

// buildCart looks up every item and adds it to a fresh cart. A listing
// with nothing in stock is rejected rather than dropped.
func (h *CartHandler) buildCart(ctx context.Context, items []quoteItem) (*derive.Cart, error) {
	cart := &derive.Cart{}
	for _, item := range items {
		listing, err := h.inventory.GetByID(ctx, item.ListingID)
		if err != nil {
			return nil, err
		}
		if cart.Add(*listing, item.Quantity) == 0 {
			return nil, domain.Invalid("listing %s is out of stock", listing.ID)
		}
	}
	return cart, nil
}
