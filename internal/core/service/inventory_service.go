package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mzansi-market/storefront/internal/core/domain"
	"github.com/mzansi-market/storefront/internal/core/ports"
	"github.com/mzansi-market/storefront/internal/pkg/metrics"
)

// maxIDAttempts bounds how many fresh ids Add draws before giving up.
const maxIDAttempts = 5

type InventoryService struct {
	repo  ports.ListingRepository
	log   zerolog.Logger
	now   func() time.Time
	newID func() string
}

func NewInventoryService(repo ports.ListingRepository, logger zerolog.Logger) *InventoryService {
	return &InventoryService{
		repo:  repo,
		log:   logger,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

// Add assigns a fresh id and appends the listing to the catalog. Ids are
// checked against existing keys by the repository; a taken id is redrawn.
func (s *InventoryService) Add(ctx context.Context, draft domain.ListingDraft) (*domain.Listing, error) {
	listing := draft.Listing()
	listing.CreatedAt = s.now()
	listing.UpdatedAt = listing.CreatedAt

	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		listing.ID = s.newID()
		err := s.repo.Insert(ctx, &listing)
		if errors.Is(err, domain.ErrConflict) {
			s.log.Warn().Str("listing_id", listing.ID).Int("attempt", attempt+1).Msg("listing id collision, redrawing")
			continue
		}
		if err != nil {
			s.log.Error().Err(err).Msg("failed to add listing")
			return nil, fmt.Errorf("add listing: %w", err)
		}

		metrics.ListingMutationsTotal.WithLabelValues("add").Inc()
		s.refreshCatalogSize(ctx)
		s.log.Info().Str("listing_id", listing.ID).Str("owner_id", listing.OwnerID).Msg("listing added")
		out := listing.Clone()
		return &out, nil
	}
	return nil, domain.ErrIDCollision
}

// Update merges patch into the listing matching id. An empty patch writes
// nothing and returns the stored listing.
func (s *InventoryService) Update(ctx context.Context, id string, patch domain.ListingPatch) (*domain.Listing, error) {
	if patch.Empty() {
		return s.GetByID(ctx, id)
	}
	updated, err := s.repo.Update(ctx, id, patch, s.now())
	if err != nil {
		return nil, fmt.Errorf("update listing %s: %w", id, err)
	}
	metrics.ListingMutationsTotal.WithLabelValues("update").Inc()
	s.log.Info().Str("listing_id", id).Msg("listing updated")
	return updated, nil
}

// Remove deletes the listing matching id.
func (s *InventoryService) Remove(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("remove listing %s: %w", id, err)
	}
	metrics.ListingMutationsTotal.WithLabelValues("remove").Inc()
	s.refreshCatalogSize(ctx)
	s.log.Info().Str("listing_id", id).Msg("listing removed")
	return nil
}

// UpdateOwned is Update restricted to the listing's owner.
func (s *InventoryService) UpdateOwned(ctx context.Context, ownerID, id string, patch domain.ListingPatch) (*domain.Listing, error) {
	if err := s.checkOwner(ctx, ownerID, id); err != nil {
		return nil, err
	}
	return s.Update(ctx, id, patch)
}

// RemoveOwned is Remove restricted to the listing's owner.
func (s *InventoryService) RemoveOwned(ctx context.Context, ownerID, id string) error {
	if err := s.checkOwner(ctx, ownerID, id); err != nil {
		return err
	}
	return s.Remove(ctx, id)
}

func (s *InventoryService) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	return s.repo.FindByID(ctx, id)
}

// ListByOwner returns the owner's listings in insertion order.
func (s *InventoryService) ListByOwner(ctx context.Context, ownerID string) ([]domain.Listing, error) {
	if ownerID == "" {
		return []domain.Listing{}, nil
	}
	return s.repo.List(ctx, ports.ListingFilter{OwnerID: ownerID})
}

func (s *InventoryService) ListAll(ctx context.Context) ([]domain.Listing, error) {
	return s.repo.List(ctx, ports.ListingFilter{})
}

// Seed inserts listings with their preset ids, skipping ids already present.
// It returns how many were inserted.
func (s *InventoryService) Seed(ctx context.Context, listings []domain.Listing) (int, error) {
	inserted := 0
	for _, l := range listings {
		l := l.Clone()
		if l.CreatedAt.IsZero() {
			l.CreatedAt = s.now()
			l.UpdatedAt = l.CreatedAt
		}
		err := s.repo.Insert(ctx, &l)
		if errors.Is(err, domain.ErrConflict) {
			continue
		}
		if err != nil {
			return inserted, fmt.Errorf("seed listing %s: %w", l.ID, err)
		}
		inserted++
	}
	if inserted > 0 {
		metrics.ListingMutationsTotal.WithLabelValues("seed").Add(float64(inserted))
	}
	s.refreshCatalogSize(ctx)
	return inserted, nil
}

func (s *InventoryService) checkOwner(ctx context.Context, ownerID, id string) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.OwnerID != ownerID {
		s.log.Warn().Str("listing_id", id).Str("caller_id", ownerID).Msg("listing owned by another seller")
		return domain.ErrForbidden
	}
	return nil
}

func (s *InventoryService) refreshCatalogSize(ctx context.Context) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to count catalog")
		return
	}
	metrics.CatalogSize.Set(float64(n))
}
