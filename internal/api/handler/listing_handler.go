package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mzansi-market/storefront/internal/core/derive"
	"github.com/mzansi-market/storefront/internal/core/domain"
	"github.com/mzansi-market/storefront/internal/core/ports"
)

// ListingHandler serves the catalog.
type ListingHandler struct {
	inventory ports.InventoryService
}

func NewListingHandler(inventory ports.InventoryService) *ListingHandler {
	return &ListingHandler{inventory: inventory}
}

// List handles GET /products.
//
// @Summary      Browse the catalog
// @Tags         products
// @Produce      json
// @Param        sellerId  query     string  false  "Only listings owned by this seller"
// @Param        q         query     string  false  "Case-insensitive search over title and description"
// @Param        category  query     string  false  "Category, or all"
// @Param        price     query     string  false  "all, under300, 300to600 or over600"
// @Success      200       {object}  listingsResponse
// @Router       /products [get]
func (h *ListingHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	var (
		listings []domain.Listing
		err      error
	)
	if sellerID := c.QueryParam("sellerId"); sellerID != "" {
		listings, err = h.inventory.ListByOwner(ctx, sellerID)
	} else {
		listings, err = h.inventory.ListAll(ctx)
	}
	if err != nil {
		return err
	}

	items := derive.Filter(listings, derive.Query{
		Search:   c.QueryParam("q"),
		Category: c.QueryParam("category"),
		Price:    derive.PriceBracket(c.QueryParam("price")),
	})
	return c.JSON(http.StatusOK, listingsResponse{Items: items, Total: len(items)})
}

// Categories handles GET /products/categories.
//
// @Summary      Category filter choices
// @Tags         products
// @Produce      json
// @Success      200  {object}  categoriesResponse
// @Router       /products/categories [get]
func (h *ListingHandler) Categories(c echo.Context) error {
	listings, err := h.inventory.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categoriesResponse{Categories: derive.Categories(listings)})
}

// Get handles GET /products/:id.
//
// @Summary      Get a listing
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Listing id"
// @Success      200  {object}  domain.Listing
// @Failure      404  {object}  map[string]string
// @Router       /products/{id} [get]
func (h *ListingHandler) Get(c echo.Context) error {
	listing, err := h.inventory.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listing)
}

// Create handles POST /products. The caller becomes the owner.
//
// @Summary      Create a listing
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createListingRequest  true  "Listing details"
// @Success      201   {object}  domain.Listing
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /products [post]
func (h *ListingHandler) Create(c echo.Context) error {
	ownerID, err := ctxSubject(c)
	if err != nil {
		return err
	}

	var req createListingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	listing, err := h.inventory.Add(c.Request().Context(), req.draft(ownerID))
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderLocation, "/products/"+listing.ID)
	return c.JSON(http.StatusCreated, listing)
}

// Update handles PUT /products/:id.
//
// @Summary      Update a listing
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Listing id"
// @Param        body  body      updateListingRequest  true  "Fields to change"
// @Success      200   {object}  domain.Listing
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /products/{id} [put]
func (h *ListingHandler) Update(c echo.Context) error {
	ownerID, err := ctxSubject(c)
	if err != nil {
		return err
	}

	var req updateListingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	listing, err := h.inventory.UpdateOwned(c.Request().Context(), ownerID, c.Param("id"), req.patch())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listing)
}

// Delete handles DELETE /products/:id.
//
// @Summary      Delete a listing
// @Tags         products
// @Security     BearerAuth
// @Param        id   path  string  true  "Listing id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /products/{id} [delete]
func (h *ListingHandler) Delete(c echo.Context) error {
	ownerID, err := ctxSubject(c)
	if err != nil {
		return err
	}
	if err := h.inventory.RemoveOwned(c.Request().Context(), ownerID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
