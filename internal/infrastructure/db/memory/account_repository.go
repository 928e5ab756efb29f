package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/mzansi-market/storefront/internal/core/domain"
)

// AccountRepository is an in-memory account directory keyed by lower-cased email.
type AccountRepository struct {
	mu      sync.RWMutex
	byEmail map[string]domain.Account
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{byEmail: make(map[string]domain.Account)}
}

func (r *AccountRepository) Create(_ context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(account.Identity.Email)
	if _, exists := r.byEmail[key]; exists {
		return domain.ErrEmailTaken
	}
	r.byEmail[key] = *account
	return nil
}

func (r *AccountRepository) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return &account, nil
}
