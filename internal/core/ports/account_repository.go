package ports

import (
	"context"

	"github.com/mzansi-market/storefront/internal/core/domain"
)

// AccountRepository persists registered accounts for the strict auth mode.
// Emails are stored lower-cased; Create returns domain.ErrEmailTaken for a
// duplicate email and FindByEmail returns domain.ErrAccountNotFound.
type AccountRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	Create(ctx context.Context, account *domain.Account) error
}
