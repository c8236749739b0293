package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"edumatch/internal/model"
)

type TutorRepo interface {
	Create(ctx context.Context, tutor *model.Tutor) error
	GetByID(ctx context.Context, id string) (*model.Tutor, error)
	GetByEmail(ctx context.Context, email string) (*model.Tutor, error)
	Update(ctx context.Context, tutor *model.Tutor) error
	UpdatePedagogy(ctx context.Context, tutorID string, fingerprint *model.PedagogyFingerprint) error

	// ListQualified returns only tutors whose pedagogy fingerprint has all
	// eight traits populated. The filter runs in the query, before any
	// scoring happens.
	ListQualified(ctx context.Context) ([]*model.Tutor, error)
}

type tutorRepo struct {
	collection *mongo.Collection
}

func NewTutorRepo(db *mongo.Database) TutorRepo {
	return &tutorRepo{
		collection: db.Collection("tutors"),
	}
}

func (r *tutorRepo) Create(ctx context.Context, tutor *model.Tutor) error {
	if tutor.ID == "" {
		tutor.ID = uuid.New().String()
	}
	now := time.Now()
	tutor.CreatedAt = now
	tutor.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, tutor)
	return err
}

func (r *tutorRepo) GetByID(ctx context.Context, id string) (*model.Tutor, error) {
	var tutor model.Tutor
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&tutor)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tutor, nil
}

func (r *tutorRepo) GetByEmail(ctx context.Context, email string) (*model.Tutor, error) {
	var tutor model.Tutor
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&tutor)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tutor, nil
}

func (r *tutorRepo) Update(ctx context.Context, tutor *model.Tutor) error {
	tutor.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": tutor.ID}, tutor)
	return err
}

func (r *tutorRepo) UpdatePedagogy(ctx context.Context, tutorID string, fingerprint *model.PedagogyFingerprint) error {
	update := bson.M{"$set": bson.M{
		"pedagogy":  fingerprint,
		"updatedAt": time.Now(),
	}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": tutorID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

var setTraits = []string{"HIGH", "LOW"}

func (r *tutorRepo) ListQualified(ctx context.Context) ([]*model.Tutor, error) {
	filter := bson.M{
		"pedagogy.tcs":   bson.M{"$in": setTraits},
		"pedagogy.tspi":  bson.M{"$in": setTraits},
		"pedagogy.twmls": bson.M{"$in": setTraits},
		"pedagogy.tpo":   bson.M{"$in": setTraits},
		"pedagogy.tecp":  bson.M{"$in": setTraits},
		"pedagogy.tet":   bson.M{"$in": setTraits},
		"pedagogy.tics":  bson.M{"$in": setTraits},
		"pedagogy.trd":   bson.M{"$in": setTraits},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tutors []*model.Tutor
	if err = cursor.All(ctx, &tutors); err != nil {
		return nil, err
	}
	return tutors, nil
}
