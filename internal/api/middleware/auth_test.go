package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

func signToken(t *testing.T, secret string, method jwt.SigningMethod, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func runAuth(t *testing.T, header string) (*httptest.ResponseRecorder, echo.Context, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth("secret")(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, c, called
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	token := signToken(t, "secret", jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "seller-1",
		"email": "thandi@example.com",
		"role":  "seller",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	rec, c, called := runAuth(t, "Bearer "+token)

	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if c.Get(ContextKeyUserID) != "seller-1" {
		t.Fatalf("user_id not set")
	}
	if c.Get(ContextKeyRole) != "seller" {
		t.Fatalf("role not set")
	}
	if c.Get(ContextKeyEmail) != "thandi@example.com" {
		t.Fatalf("email not set")
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	expired := signToken(t, "secret", jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "seller-1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	wrongKey := signToken(t, "other", jwt.SigningMethodHS256, jwt.MapClaims{"sub": "seller-1"})
	wrongAlg := signToken(t, "secret", jwt.SigningMethodHS384, jwt.MapClaims{"sub": "seller-1"})
	noSubject := signToken(t, "secret", jwt.SigningMethodHS256, jwt.MapClaims{"role": "seller"})

	tests := map[string]string{
		"missing header":        "",
		"invalid header format": "Token abc",
		"malformed token":       "Bearer not-a-token",
		"expired token":         "Bearer " + expired,
		"wrong signing key":     "Bearer " + wrongKey,
		"unexpected algorithm":  "Bearer " + wrongAlg,
		"missing subject":       "Bearer " + noSubject,
	}

	for name, header := range tests {
		t.Run(name, func(t *testing.T) {
			rec, _, called := runAuth(t, header)
			if called {
				t.Fatalf("should not reach next")
			}
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}
