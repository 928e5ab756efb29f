package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/mzansi-market/storefront/internal/core/domain"
)

type stubAccountRepo struct {
	accounts map[string]*domain.Account
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{accounts: make(map[string]*domain.Account)}
}

func (r *stubAccountRepo) Create(_ context.Context, account *domain.Account) error {
	if _, exists := r.accounts[account.Identity.Email]; exists {
		return domain.ErrEmailTaken
	}
	clone := *account
	r.accounts[account.Identity.Email] = &clone
	return nil
}

func (r *stubAccountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	a, ok := r.accounts[email]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	clone := *a
	return &clone, nil
}

func TestMockAuthenticator_FabricatesIdentity(t *testing.T) {
	auth := NewMockAuthenticator()

	first, err := auth.Authenticate(context.Background(), "zanele@example.com", "anything", domain.RoleSeller)
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	second, _ := auth.Authenticate(context.Background(), "zanele@example.com", "anything", domain.RoleSeller)

	if first.Role != domain.RoleSeller {
		t.Fatalf("expected requested role, got %s", first.Role)
	}
	if first.DisplayName != "zanele" {
		t.Fatalf("expected display name from email, got %q", first.DisplayName)
	}
	if first.ID == "" || first.ID == second.ID {
		t.Fatalf("expected a fresh id per sign-in, got %q and %q", first.ID, second.ID)
	}
}

func TestDirectoryAuthenticator_EnrollHashesPassword(t *testing.T) {
	repo := newStubAccountRepo()
	auth := NewDirectoryAuthenticator(repo, bcrypt.MinCost)

	identity, err := auth.Enroll(context.Background(), domain.Identity{
		Email: "Lerato@Example.com",
		Role:  domain.RoleBuyer,
	}, "pass123")
	if err != nil {
		t.Fatalf("Enroll returned error: %v", err)
	}
	if identity.ID == "" {
		t.Fatalf("expected an id to be assigned")
	}
	if identity.Email != "lerato@example.com" {
		t.Fatalf("expected lower-cased email, got %q", identity.Email)
	}

	stored := repo.accounts["lerato@example.com"]
	if stored == nil {
		t.Fatalf("account not stored")
	}
	if stored.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestDirectoryAuthenticator_EnrollDuplicate(t *testing.T) {
	auth := NewDirectoryAuthenticator(newStubAccountRepo(), bcrypt.MinCost)

	_, _ = auth.Enroll(context.Background(), domain.Identity{Email: "bob@example.com", Role: domain.RoleBuyer}, "pass")
	_, err := auth.Enroll(context.Background(), domain.Identity{Email: "BOB@example.com", Role: domain.RoleSeller}, "pass2")
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestDirectoryAuthenticator_Authenticate(t *testing.T) {
	auth := NewDirectoryAuthenticator(newStubAccountRepo(), bcrypt.MinCost)
	enrolled, err := auth.Enroll(context.Background(), domain.Identity{
		Email: "carol@example.com",
		Role:  domain.RoleSeller,
	}, "s3cret")
	if err != nil {
		t.Fatalf("enroll failed: %v", err)
	}

	// The stored role wins over the requested one.
	got, err := auth.Authenticate(context.Background(), "CAROL@example.com", "s3cret", domain.RoleBuyer)
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if got != enrolled {
		t.Fatalf("expected %+v, got %+v", enrolled, got)
	}
}

func TestDirectoryAuthenticator_Rejects(t *testing.T) {
	auth := NewDirectoryAuthenticator(newStubAccountRepo(), bcrypt.MinCost)
	_, _ = auth.Enroll(context.Background(), domain.Identity{Email: "dave@example.com", Role: domain.RoleBuyer}, "goodpass")

	tests := map[string][2]string{
		"wrong password": {"dave@example.com", "badpass"},
		"unknown email":  {"ghost@example.com", "goodpass"},
	}
	for name, creds := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := auth.Authenticate(context.Background(), creds[0], creds[1], domain.RoleBuyer)
			if err != domain.ErrInvalidCredentials {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}
