package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"edumatch/internal/model"
	"edumatch/internal/repository"
	"edumatch/internal/scoring"
	"edumatch/internal/service"
)

// Seeds one learner with a completed assessment and three tutors spanning the
// compatibility range, for exercising the matching endpoint locally.
func main() {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "edumatch"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(dbName)
	learnerRepo := repository.NewLearnerRepo(db)
	tutorRepo := repository.NewTutorRepo(db)
	assessmentRepo := repository.NewAssessmentRepo(db)

	password, err := service.HashPassword("password123")
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	learner := &model.Learner{
		Name:           "Test Student",
		Email:          "teststudent@example.com",
		Password:       password,
		PrimaryContact: "9999999999",
		GuardianName:   "Test Parent",
		GuardianEmail:  "testparent@example.com",
		EducationLevel: "Grade 10",
		Board:          "CBSE",
		Subjects:       `["Mathematics","Physics","Chemistry"]`,
		Budget:         1000,
		PreferredMode:  model.ModeOnline,
	}
	if err := learnerRepo.Create(ctx, learner); err != nil {
		log.Fatalf("Failed to insert learner: %v", err)
	}

	// A hesitant, error-prone run: slow bands, heavy answer churn, mostly
	// wrong. Scores into low confidence, high anxiety, slow processing.
	sample := model.BehavioralSample{
		Q1: model.RecallQuestion{ReactionBand: 4, HoverBand: 4, AnswerChanges: 3, Correct: false},
		Q2: model.SortingQuestion{CorrectionsBand: 4, IdleBand: 3, TimeBand: 4, Correct: false},
		Q3: model.OrderingQuestion{SwapBand: 3, MisplacementBand: 4, TapBand: 3, TimeBand: 4},
		Q4: model.RecallQuestion{ReactionBand: 3, HoverBand: 4, AnswerChanges: 4, Correct: false},
		Q5: model.RecallQuestion{ReactionBand: 4, HoverBand: 3, AnswerChanges: 3, Correct: true},
	}

	assessment := &model.CognitiveAssessment{
		LearnerID: learner.ID,
		Sample:    sample,
		Profile:   scoring.Score(sample),
	}
	if err := assessmentRepo.Create(ctx, assessment); err != nil {
		log.Fatalf("Failed to insert assessment: %v", err)
	}
	fmt.Printf("Created learner %s (confidence %.1f, anxiety %.1f)\n",
		learner.Email, assessment.Profile.Confidence.Score, assessment.Profile.Anxiety.Score)

	now := time.Now()
	tutors := []*model.Tutor{
		{
			Name:        "Perfect Match Tutor",
			Email:       "tutor1@example.com",
			Subjects:    `["Mathematics","Physics","Algebra"]`,
			LessonPrice: 800,
			Pedagogy: model.PedagogyFingerprint{
				TCS: model.TraitHigh, TSPI: model.TraitHigh, TWMLS: model.TraitHigh,
				TPO: model.TraitHigh, TECP: model.TraitHigh, TET: model.TraitLow,
				TICS: model.TraitHigh, TRD: model.TraitHigh,
				CompletedAt: &now,
			},
		},
		{
			Name:        "Good Match Tutor",
			Email:       "tutor2@example.com",
			Subjects:    `["Mathematics","Chemistry","Science"]`,
			LessonPrice: 600,
			Pedagogy: model.PedagogyFingerprint{
				TCS: model.TraitHigh, TSPI: model.TraitLow, TWMLS: model.TraitHigh,
				TPO: model.TraitHigh, TECP: model.TraitLow, TET: model.TraitLow,
				TICS: model.TraitHigh, TRD: model.TraitLow,
				CompletedAt: &now,
			},
		},
		{
			Name:        "Poor Match Tutor",
			Email:       "tutor3@example.com",
			Subjects:    `["Biology","English","History"]`,
			LessonPrice: 400,
			Pedagogy: model.PedagogyFingerprint{
				TCS: model.TraitLow, TSPI: model.TraitLow, TWMLS: model.TraitLow,
				TPO: model.TraitLow, TECP: model.TraitLow, TET: model.TraitHigh,
				TICS: model.TraitLow, TRD: model.TraitLow,
				CompletedAt: &now,
			},
		},
	}

	for _, t := range tutors {
		t.Password = password
		t.PrimaryContact = "8888888888"
		t.TeachingMode = "Online"
		if err := tutorRepo.Create(ctx, t); err != nil {
			log.Fatalf("Failed to insert tutor %s: %v", t.Name, err)
		}
		fmt.Printf("Created tutor %s (%.0f/hr)\n", t.Name, t.LessonPrice)
	}
}
