package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"edumatch/internal/service"
	"edumatch/internal/transport/rest/handler"
	"edumatch/internal/transport/rest/middleware"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService     *service.AuthService
	LearnerService  *service.LearnerService
	TutorService    *service.TutorService
	MatchingService *service.MatchingService
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	learnerHandler := handler.NewLearnerHandler(c.LearnerService)
	tutorHandler := handler.NewTutorHandler(c.TutorService)
	matchHandler := handler.NewMatchHandler(c.MatchingService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/learners", learnerHandler.Register).Methods("POST", "OPTIONS")
	v1.HandleFunc("/tutors", tutorHandler.Register).Methods("POST", "OPTIONS")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Learner routes (require learner auth)
	learnerRoutes := v1.NewRoute().Subrouter()
	learnerRoutes.Use(authMW.RequireLearner)

	learnerRoutes.HandleFunc("/learners/me", learnerHandler.GetProfile).Methods("GET", "OPTIONS")
	learnerRoutes.HandleFunc("/learners/assessment", learnerHandler.SubmitAssessment).Methods("POST", "OPTIONS")
	learnerRoutes.HandleFunc("/learners/assessment", learnerHandler.GetAssessment).Methods("GET", "OPTIONS")
	learnerRoutes.HandleFunc("/learners/matches", matchHandler.GetMatches).Methods("GET", "OPTIONS")

	// Tutor routes (require tutor auth)
	tutorRoutes := v1.NewRoute().Subrouter()
	tutorRoutes.Use(authMW.RequireTutor)

	tutorRoutes.HandleFunc("/tutors/me", tutorHandler.GetProfile).Methods("GET", "OPTIONS")
	tutorRoutes.HandleFunc("/tutors/pedagogy", tutorHandler.UpdatePedagogy).Methods("PUT", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
