package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mzansi-market/storefront/internal/core/domain"
	"github.com/mzansi-market/storefront/internal/core/ports"
)

type AuthHandler struct {
	sessions ports.SessionService
}

func NewAuthHandler(sessions ports.SessionService) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

// Login signs in and makes the identity current.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials and requested role"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	session, err := h.sessions.SignIn(c.Request().Context(), ports.SignInInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, sessionResponse{Token: session.Token, User: session.Identity})
}

// Register creates an identity and makes it current.
//
// @Summary      Register
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	session, err := h.sessions.Register(c.Request().Context(), ports.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		Role:        req.Role,
		DisplayName: req.Name,
		Phone:       req.Phone,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, sessionResponse{Token: session.Token, User: session.Identity})
}

// Logout clears the current identity. Only the signed-in identity may end
// its own session.
//
// @Summary      Sign out
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if _, err := h.callerSession(c); err != nil {
		return err
	}
	if err := h.sessions.SignOut(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Me returns the current identity to the token holder it belongs to.
//
// @Summary      Current identity
// @Tags         auth
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  domain.Identity
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	identity, err := h.callerSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, identity)
}

// callerSession returns the current identity when the token subject owns it.
func (h *AuthHandler) callerSession(c echo.Context) (domain.Identity, error) {
	sub, err := ctxSubject(c)
	if err != nil {
		return domain.Identity{}, err
	}
	identity, ok := h.sessions.Current()
	if !ok {
		return domain.Identity{}, domain.ErrNoSession
	}
	if identity.ID != sub {
		return domain.Identity{}, domain.ErrForbidden
	}
	return identity, nil
}
