// cmd/api/main.go
// Main entry point for the dating API
// This file bootstraps all components and starts the server

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/imadgeboyega/nomad-dating/internal/auth"
	"github.com/imadgeboyega/nomad-dating/internal/common/database"
	"github.com/imadgeboyega/nomad-dating/internal/config"
	"github.com/imadgeboyega/nomad-dating/internal/dating"
	"github.com/imadgeboyega/nomad-dating/internal/profile"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	log.Println("========================================")
	log.Println("🚀 Starting Nomad Dating API")
	log.Println("========================================")

	// 1. Load environment variables
	log.Println("📁 Step 1: Loading .env file...")
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  Warning: No .env file found (%v), using environment variables", err)
	} else {
		log.Println("✅ .env file loaded successfully")
	}

	// 2. Load configuration
	log.Println("\n📋 Step 2: Loading configuration...")
	cfg := config.Load()
	log.Printf("✅ Configuration loaded")

	// 3. Validate configuration
	log.Println("\n✔️  Step 3: Validating configuration...")
	if err := cfg.Validate(); err != nil {
		log.Fatal("❌ Configuration validation failed:", err)
	}
	log.Println("✅ Configuration is valid")

	// 4. Connect to the profile store
	log.Printf("\n🗄️  Step 4: Connecting to profile store (%s)...", cfg.ProfileStore)
	profileRepo, closeStore, err := profile.OpenStore(cfg)
	if err != nil {
		log.Fatal("❌ Failed to open profile store:", err)
	}
	defer closeStore()
	log.Println("✅ Profile store ready")

	// 5. Connect to Redis for wizard sessions (optional)
	log.Println("\n📮 Step 5: Connecting to Redis...")
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	var sessions dating.SessionStore
	if cfg.RedisURL != "" {
		redisClient, err := database.NewRedisClientFromURL(cfg.RedisURL)
		if err != nil {
			log.Printf("⚠️  Redis unavailable (%v), keeping wizard sessions in memory", err)
		} else {
			defer redisClient.Close()
			sessions = dating.NewRedisSessionStore(redisClient, cfg.WizardSessionTTL)
			log.Println("✅ Connected to Redis successfully")
		}
	} else {
		log.Println("⚠️  Redis URL not configured, keeping wizard sessions in memory")
	}
	if sessions == nil {
		memorySessions := dating.NewMemorySessionStore(cfg.WizardSessionTTL)
		dating.NewScheduler(memorySessions, time.Minute).Start(ctx)
		sessions = memorySessions
	}

	// 6. Initialize ranking client
	log.Printf("\n🤖 Step 6: Initializing ranking client (%s)...", cfg.RankingProvider)
	if cfg.RankingAPIKey() == "" {
		log.Printf("⚠️  No API key for %s, matches will be empty", cfg.RankingProvider)
	}
	ranker := dating.NewRankingClient(newCompleter(cfg), cfg.RankingTimeout)
	log.Println("✅ Ranking client initialized")

	// 7. Initialize dating system
	log.Println("\n💘 Step 7: Initializing dating system...")
	datingService := dating.NewService(profileRepo, sessions, ranker, dating.DefaultCatalog, dating.Options{
		PoolSize:          cfg.CandidatePoolSize,
		MatchLimit:        cfg.MatchLimit,
		LookupConcurrency: cfg.ProfileLookupConcurrency,
	})
	datingHandler := dating.NewHandler(datingService)
	authMiddleware := auth.NewMiddleware(cfg.JWTSecret)
	log.Println("✅ Dating system initialized")

	// 8. Setup routes
	log.Println("\n🛣️  Step 8: Setting up routes...")
	router := mux.NewRouter()
	router.HandleFunc("/health", healthCheck).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	dating.RegisterRoutes(router, datingHandler, authMiddleware)
	log.Println("   ✅ Dating routes registered")

	profileRouter := chi.NewRouter()
	profile.RegisterRoutes(profileRouter, profile.NewHandler(profileRepo), authMiddleware)
	router.PathPrefix("/api/v1/profile").Handler(profileRouter)
	router.PathPrefix("/api/v1/users").Handler(profileRouter)
	log.Println("   ✅ Profile routes registered")

	router.Use(loggingMiddleware)
	router.Use(corsMiddleware)

	// 9. Create and start HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.RankingTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Println("\n========================================")
		log.Printf("🚀 Server starting on http://localhost%s", srv.Addr)
		log.Printf("🌍 Environment: %s", cfg.Environment)
		log.Println("========================================")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("❌ Failed to start server:", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("\n⚠️  Shutdown signal received...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("❌ Server forced to shutdown:", err)
	}

	log.Println("✅ Server exited gracefully")
}

// newCompleter picks the ranking backend
func newCompleter(cfg *config.Config) dating.Completer {
	if cfg.RankingProvider == "gemini" {
		return dating.NewGeminiCompleter(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.RankingTemperature)
	}
	return dating.NewOpenAICompleter(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, cfg.RankingTemperature)
}
