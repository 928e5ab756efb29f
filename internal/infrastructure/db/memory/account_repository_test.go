package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mzansi-market/storefront/internal/core/domain"
)

func TestAccountRepository(t *testing.T) {
	repo := NewAccountRepository()
	ctx := context.Background()

	account := &domain.Account{
		Identity:     domain.Identity{ID: "1", Email: "ayanda@example.com", Role: domain.RoleSeller},
		PasswordHash: "hash",
	}
	require.NoError(t, repo.Create(ctx, account))

	got, err := repo.FindByEmail(ctx, "AYANDA@example.com")
	require.NoError(t, err)
	assert.Equal(t, account, got)

	dup := *account
	dup.Identity.Email = "Ayanda@Example.com"
	assert.ErrorIs(t, repo.Create(ctx, &dup), domain.ErrEmailTaken)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}
