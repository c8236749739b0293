package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"edumatch/internal/model"
)

type LearnerRepo interface {
	Create(ctx context.Context, learner *model.Learner) error
	GetByID(ctx context.Context, id string) (*model.Learner, error)
	GetByEmail(ctx context.Context, email string) (*model.Learner, error)
	Update(ctx context.Context, learner *model.Learner) error
}

type learnerRepo struct {
	collection *mongo.Collection
}

func NewLearnerRepo(db *mongo.Database) LearnerRepo {
	return &learnerRepo{
		collection: db.Collection("learners"),
	}
}

func (r *learnerRepo) Create(ctx context.Context, learner *model.Learner) error {
	if learner.ID == "" {
		learner.ID = uuid.New().String()
	}
	learner.Normalize()
	now := time.Now()
	learner.CreatedAt = now
	learner.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, learner)
	return err
}

func (r *learnerRepo) GetByID(ctx context.Context, id string) (*model.Learner, error) {
	var learner model.Learner
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&learner)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &learner, nil
}

func (r *learnerRepo) GetByEmail(ctx context.Context, email string) (*model.Learner, error) {
	var learner model.Learner
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&learner)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &learner, nil
}

func (r *learnerRepo) Update(ctx context.Context, learner *model.Learner) error {
	learner.Normalize()
	learner.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": learner.ID}, learner)
	return err
}
