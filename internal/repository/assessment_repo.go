package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"edumatch/internal/model"
)

type AssessmentRepo interface {
	// Create persists a new assessment. The unique index on learnerId
	// enforces the single-assessment-per-learner invariant at the store.
	Create(ctx context.Context, assessment *model.CognitiveAssessment) error
	GetByLearnerID(ctx context.Context, learnerID string) (*model.CognitiveAssessment, error)
}

type assessmentRepo struct {
	collection *mongo.Collection
}

func NewAssessmentRepo(db *mongo.Database) AssessmentRepo {
	coll := db.Collection("assessments")

	// Best effort; duplicate creation is also checked in the service.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, _ = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.M{"learnerId": 1},
		Options: options.Index().SetUnique(true),
	})

	return &assessmentRepo{collection: coll}
}

func (r *assessmentRepo) Create(ctx context.Context, assessment *model.CognitiveAssessment) error {
	if assessment.ID == "" {
		assessment.ID = uuid.New().String()
	}
	if assessment.CreatedAt.IsZero() {
		assessment.CreatedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, assessment)
	return err
}

func (r *assessmentRepo) GetByLearnerID(ctx context.Context, learnerID string) (*model.CognitiveAssessment, error) {
	var assessment model.CognitiveAssessment
	err := r.collection.FindOne(ctx, bson.M{"learnerId": learnerID}).Decode(&assessment)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &assessment, nil
}
