package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mzansi-market/storefront/internal/api/middleware"
)

// ctxSubject returns the identity id injected by the Auth middleware. An
// empty subject means the middleware did not run; reject with 401.
func ctxSubject(c echo.Context) (string, error) {
	sub, _ := c.Get(middleware.ContextKeyUserID).(string)
	if sub == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return sub, nil
}
