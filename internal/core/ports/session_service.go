package ports

import (
	"context"

	"github.com/mzansi-market/storefront/internal/core/domain"
)

// SignInInput is the DTO passed from the transport layer to SessionService.SignIn.
type SignInInput struct {
	Email    string
	Password string
	Role     string
}

// RegisterInput carries the optional profile fields on top of SignInInput.
type RegisterInput struct {
	Email       string
	Password    string
	Role        string
	DisplayName string
	Phone       string
}

// Session is the result of a successful sign-in or registration.
type Session struct {
	Identity domain.Identity
	Token    string
}

// SessionService holds the single current identity of the process.
type SessionService interface {
	SignIn(ctx context.Context, in SignInInput) (*Session, error)
	Register(ctx context.Context, in RegisterInput) (*Session, error)
	SignOut(ctx context.Context) error
	// Current returns the current identity, or false when anonymous.
	Current() (domain.Identity, bool)
}

// Authenticator decides which identity a set of credentials resolves to.
type Authenticator interface {
	// Authenticate resolves an email/password pair for the requested role.
	Authenticate(ctx context.Context, email, password string, role domain.Role) (domain.Identity, error)
	// Enroll records a new identity. The returned identity carries its id.
	Enroll(ctx context.Context, identity domain.Identity, password string) (domain.Identity, error)
}

// TokenIssuer signs bearer tokens for an identity.
type TokenIssuer interface {
	Issue(identity domain.Identity) (string, error)
}
