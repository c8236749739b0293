package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"edumatch/internal/cache"
	"edumatch/internal/config"
	"edumatch/internal/repository"
	"edumatch/internal/service"
	"edumatch/internal/transport/rest"
)

func main() {
	_ = godotenv.Load()

	log := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := context.Background()

	cfg := config.Load()
	aiConfig := config.DefaultAIConfig()
	if aiConfig.IsEnabled() {
		log.Info().Str("model", aiConfig.Model).Msg("ranking model configured")
	} else {
		log.Warn().Msg("GEMINI_API_KEY not set, matching will use the deterministic fallback")
	}

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal().Err(err).Msg("failed to ping MongoDB")
	}
	log.Info().Msg("connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal().Err(err).Msg("failed to ping Redis")
	}
	log.Info().Msg("connected to Redis")

	// Initialize repositories
	learnerRepo := repository.NewLearnerRepo(db)
	tutorRepo := repository.NewTutorRepo(db)
	assessmentRepo := repository.NewAssessmentRepo(db)
	listingRepo := repository.NewListingRepo(db)

	// Initialize caches
	matchCache := cache.NewMatchCache(rdb, cfg.MatchCacheTTL)

	// Initialize services
	authSvc := service.NewAuthService(learnerRepo, tutorRepo, cfg.JWTSecret)
	crmClient := service.NewCRMClient(log)
	crmSync := service.NewCRMSyncService(crmClient, learnerRepo, tutorRepo, log)
	learnerSvc := service.NewLearnerService(learnerRepo, assessmentRepo, listingRepo, crmSync, log)
	tutorSvc := service.NewTutorService(tutorRepo, crmSync, log)
	ranker := service.NewGeminiRanker(aiConfig, log)
	matchingSvc := service.NewMatchingService(
		learnerRepo, tutorRepo, assessmentRepo,
		matchCache, ranker,
		cfg.PriceCeiling, cfg.MatchTimeBucket, log,
	)

	// Create router with container
	container := &rest.Container{
		AuthService:     authSvc,
		LearnerService:  learnerSvc,
		TutorService:    tutorSvc,
		MatchingService: matchingSvc,
	}

	router := rest.NewRouter(container)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}
