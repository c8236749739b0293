package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	"edumatch/internal/model"
)

type ListingRepo interface {
	Create(ctx context.Context, listing *model.JobListing) error
}

type listingRepo struct {
	collection *mongo.Collection
}

func NewListingRepo(db *mongo.Database) ListingRepo {
	return &listingRepo{
		collection: db.Collection("job_listings"),
	}
}

func (r *listingRepo) Create(ctx context.Context, listing *model.JobListing) error {
	if listing.ID == "" {
		listing.ID = uuid.New().String()
	}
	if listing.Status == "" {
		listing.Status = "OPEN"
	}
	listing.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, listing)
	return err
}
