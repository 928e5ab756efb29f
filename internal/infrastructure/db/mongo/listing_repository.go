package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mzansi-market/storefront/internal/core/domain"
	"github.com/mzansi-market/storefront/internal/core/ports"
)

const (
	collectionListings = "listings"
	collectionCounters = "counters"
	listingSeqCounter  = "listing_seq"
)

// ListingRepository implements ports.ListingRepository using MongoDB. Each
// document carries a seq drawn from the counters collection so that List can
// return listings in insertion order.
type ListingRepository struct {
	col      *mongo.Collection
	counters *mongo.Collection
}

func NewListingRepository(db *mongo.Database) *ListingRepository {
	return &ListingRepository{
		col:      db.Collection(collectionListings),
		counters: db.Collection(collectionCounters),
	}
}

type listingDoc struct {
	domain.Listing `bson:",inline"`
	Seq            int64 `bson:"seq"`
}

// Insert stores l. The _id index rejects taken ids with domain.ErrIDCollision.
func (r *ListingRepository) Insert(ctx context.Context, l *domain.Listing) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	seq, err := r.nextSeq(ctx)
	if err != nil {
		return err
	}

	_, err = r.col.InsertOne(ctx, listingDoc{Listing: *l, Seq: seq})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrIDCollision
		}
		return fmt.Errorf("insert listing: %w", err)
	}
	return nil
}

func (r *ListingRepository) nextSeq(ctx context.Context) (int64, error) {
	var counter struct {
		Value int64 `bson:"value"`
	}
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": listingSeqCounter},
		bson.M{"$inc": bson.M{"value": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("next listing seq: %w", err)
	}
	return counter.Value, nil
}

// Update applies patch with a single $set and returns the stored result.
func (r *ListingRepository) Update(ctx context.Context, id string, patch domain.ListingPatch, at time.Time) (*domain.Listing, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := patchDocument(patch)
	set["updated_at"] = at

	var doc listingDoc
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrListingNotFound
		}
		return nil, fmt.Errorf("update listing: %w", err)
	}
	return &doc.Listing, nil
}

// patchDocument maps the non-nil patch fields to their bson names.
func patchDocument(p domain.ListingPatch) bson.M {
	set := bson.M{}
	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.Price != nil {
		set["price"] = *p.Price
	}
	if p.Category != nil {
		set["category"] = *p.Category
	}
	if p.ImageRef != nil {
		set["image"] = *p.ImageRef
	}
	if p.OriginalPrice != nil {
		set["original_price"] = *p.OriginalPrice
	}
	if p.DiscountPercent != nil {
		set["discount_percent"] = *p.DiscountPercent
	}
	if p.Rating != nil {
		set["rating"] = *p.Rating
	}
	if p.ReviewCount != nil {
		set["review_count"] = *p.ReviewCount
	}
	if p.StockCount != nil {
		set["stock_count"] = *p.StockCount
	}
	if p.BadgeLabel != nil {
		set["badge_label"] = *p.BadgeLabel
	}
	return set
}

func (r *ListingRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

func (r *ListingRepository) FindByID(ctx context.Context, id string) (*domain.Listing, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc listingDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrListingNotFound
		}
		return nil, fmt.Errorf("find listing: %w", err)
	}
	return &doc.Listing, nil
}

func (r *ListingRepository) List(ctx context.Context, filter ports.ListingFilter) ([]domain.Listing, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.OwnerID != "" {
		query["owner_id"] = filter.OwnerID
	}

	cur, err := r.col.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "seq", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	defer cur.Close(ctx)

	out := []domain.Listing{}
	for cur.Next(ctx) {
		var doc listingDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode listing: %w", err)
		}
		out = append(out, doc.Listing)
	}
	return out, cur.Err()
}

func (r *ListingRepository) Count(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count listings: %w", err)
	}
	return int(n), nil
}

// EnsureIndexes creates the indexes List relies on.
func (r *ListingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "seq", Value: 1}}},
		{Keys: bson.D{{Key: "seq", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
