package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mzansi-market/storefront/internal/core/domain"
	"github.com/mzansi-market/storefront/internal/core/ports"
)

// MockAuthenticator accepts any credentials. Each call fabricates a fresh
// identity whose display name is the local part of the email.
type MockAuthenticator struct{}

func NewMockAuthenticator() *MockAuthenticator {
	return &MockAuthenticator{}
}

func (MockAuthenticator) Authenticate(_ context.Context, email, _ string, role domain.Role) (domain.Identity, error) {
	return domain.Identity{
		ID:          uuid.NewString(),
		Email:       email,
		Role:        role,
		DisplayName: domain.DisplayNameFromEmail(email),
	}, nil
}

// Enroll does not look for an existing account with the same email.
func (MockAuthenticator) Enroll(_ context.Context, identity domain.Identity, _ string) (domain.Identity, error) {
	identity.ID = uuid.NewString()
	return identity, nil
}

// DirectoryAuthenticator checks credentials against registered accounts.
type DirectoryAuthenticator struct {
	accounts ports.AccountRepository
	cost     int
}

// NewDirectoryAuthenticator returns an authenticator over accounts. A cost of
// zero selects bcrypt.DefaultCost.
func NewDirectoryAuthenticator(accounts ports.AccountRepository, cost int) *DirectoryAuthenticator {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &DirectoryAuthenticator{accounts: accounts, cost: cost}
}

// Authenticate ignores the requested role: the role stored with the account
// wins. Unknown emails and wrong passwords are indistinguishable.
func (a *DirectoryAuthenticator) Authenticate(ctx context.Context, email, password string, _ domain.Role) (domain.Identity, error) {
	account, err := a.accounts.FindByEmail(ctx, strings.ToLower(email))
	if errors.Is(err, domain.ErrAccountNotFound) {
		return domain.Identity{}, domain.ErrInvalidCredentials
	}
	if err != nil {
		return domain.Identity{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return domain.Identity{}, domain.ErrInvalidCredentials
	}
	return account.Identity, nil
}

func (a *DirectoryAuthenticator) Enroll(ctx context.Context, identity domain.Identity, password string) (domain.Identity, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.cost)
	if err != nil {
		return domain.Identity{}, err
	}

	identity.ID = uuid.NewString()
	identity.Email = strings.ToLower(identity.Email)
	account := &domain.Account{
		Identity:     identity,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := a.accounts.Create(ctx, account); err != nil {
		return domain.Identity{}, err
	}
	return identity, nil
}
