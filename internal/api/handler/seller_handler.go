package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mzansi-market/storefront/internal/core/derive"
	"github.com/mzansi-market/storefront/internal/core/ports"
)

type SellerHandler struct {
	inventory ports.InventoryService
}

func NewSellerHandler(inventory ports.InventoryService) *SellerHandler {
	return &SellerHandler{inventory: inventory}
}

// Stats handles GET /sellers/:id/stats.
//
// @Summary      Seller dashboard summary
// @Tags         sellers
// @Produce      json
// @Param        id   path      string  true  "Seller id"
// @Success      200  {object}  derive.SellerStats
// @Router       /sellers/{id}/stats [get]
func (h *SellerHandler) Stats(c echo.Context) error {
	sellerID := c.Param("id")
	listings, err := h.inventory.ListByOwner(c.Request().Context(), sellerID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, derive.ComputeSellerStats(listings, sellerID))
}
