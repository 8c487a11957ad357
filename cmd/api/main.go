// cmd/api/main.go
// Main entry point for the application
// This file bootstraps all components and starts the server

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/collabhub/collabhub-backend/internal/auth"
	"github.com/collabhub/collabhub-backend/internal/common/database"
	"github.com/collabhub/collabhub-backend/internal/config"
	"github.com/collabhub/collabhub-backend/internal/matching"
	notifications "github.com/collabhub/collabhub-backend/internal/notification"
	"github.com/collabhub/collabhub-backend/internal/opportunity"
	"github.com/collabhub/collabhub-backend/internal/provider"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	log.Println("========================================")
	log.Println("🚀 Starting CollabHub Matching API")
	log.Println("========================================")

	// 1. Load environment variables
	log.Println("📁 Step 1: Loading .env file...")
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  No .env file found (%v), using environment variables", err)
	}

	// 2. Load and validate configuration
	log.Println("📋 Step 2: Loading configuration...")
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("❌ Configuration validation failed: ", err)
	}
	log.Println("✅ Configuration is valid")

	// 3. Connect to PostgreSQL
	log.Println("🗄️  Step 3: Connecting to PostgreSQL...")
	db, err := database.NewPostgresDBFromURL(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("❌ Failed to connect to PostgreSQL: ", err)
	}
	defer db.Close()
	log.Println("✅ Connected to PostgreSQL")

	// 4. Connect to Redis (optional, used for trigger dedup)
	log.Println("📮 Step 4: Connecting to Redis...")
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClientFromURL(cfg.RedisURL)
		if err != nil {
			log.Printf("⚠️  Redis unavailable (%v), continuing without it", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
			log.Println("✅ Connected to Redis")
		}
	} else {
		log.Println("⚠️  Redis URL not configured, skipping")
	}

	// 5. Run database migrations
	log.Println("🔨 Step 5: Running database migrations...")
	if err := database.RunMigrations(db); err != nil {
		log.Fatal("❌ Failed to run migrations: ", err)
	}
	log.Println("✅ Database migrations completed")

	// 6. Auth middleware
	authMiddleware := auth.NewMiddleware(cfg.JWTSecret)

	// 7. Notifications module
	log.Println("🔔 Step 6: Initializing notifications...")

	notificationsRepo := notifications.NewRepository(db)

	var emailProvider notifications.EmailProvider
	switch cfg.EmailProvider {
	case "sendgrid":
		emailProvider, err = notifications.NewSendGridEmailProvider(cfg.SendGridAPIKey, cfg.EmailFrom, cfg.EmailFromName)
		if err != nil {
			log.Fatal("❌ Failed to init SendGrid: ", err)
		}
		log.Println("   ✅ Using SendGrid for emails")
	case "smtp":
		emailProvider, err = notifications.NewSMTPEmailProvider(
			cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword,
			cfg.EmailFrom, cfg.EmailFromName,
		)
		if err != nil {
			log.Fatal("❌ Failed to init SMTP: ", err)
		}
		log.Println("   ✅ Using SMTP for emails")
	default:
		emailProvider = notifications.NewMockEmailProvider()
		log.Println("   ⚠️  Using mock email provider (development mode)")
	}

	var smsProvider notifications.SMSProvider
	switch cfg.SMSProvider {
	case "twilio":
		smsProvider = notifications.NewTwilioSMSProvider(
			cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioPhoneNumber,
		)
		log.Println("   ✅ Using Twilio for SMS")
	default:
		smsProvider = notifications.NewMockSMSProvider()
		log.Println("   ⚠️  Using mock SMS provider (development mode)")
	}

	hub := notifications.NewHub()
	go hub.Run()

	notificationsService := notifications.NewService(notificationsRepo, notifications.Options{
		Email:        emailProvider,
		SMS:          smsProvider,
		Hub:          hub,
		EmailEnabled: cfg.EnableEmailNotifications,
		SMSEnabled:   cfg.EnableSMSNotifications,
	})
	notificationsHandler := notifications.NewHandler(notificationsService)
	log.Println("✅ Notifications initialized")

	// 8. Matching module
	log.Println("🤝 Step 7: Initializing matching engine...")

	matchingRepo := matching.NewPostgresRepository(db)
	engine := matching.NewEngine(matchingRepo, notificationsService)
	finder := matching.NewFinder(matchingRepo, engine, cfg.MatchCandidateLimit)
	matchingService := matching.NewService(matchingRepo, engine, finder, redisClient)
	matchingHandler := matching.NewHandler(matchingService)

	scheduler := matching.NewScheduler(matchingRepo, finder, cfg.MatchSweepInterval)
	log.Println("✅ Matching engine initialized")

	// 9. Provider module
	providerRepo := provider.NewRepository(db)
	providerService := provider.NewService(providerRepo)
	providerHandler := provider.NewHandler(providerService)

	// 10. Opportunity module
	opportunityRepo := opportunity.NewRepository(db)
	opportunityService := opportunity.NewService(opportunityRepo, matchingService)
	opportunityHandler := opportunity.NewHandler(opportunityService)

	// 11. Router
	router := mux.NewRouter()

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods("GET")

	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	matching.RegisterRoutes(router, matchingHandler, authMiddleware)
	opportunity.RegisterRoutes(router, opportunityHandler, authMiddleware)
	provider.RegisterRoutes(router, providerHandler, authMiddleware)
	notifications.RegisterRoutes(router, notificationsHandler, hub, authMiddleware)

	// 12. Background scheduler
	schedulerCtx, stopScheduler := context.WithCancel(context.Background())
	scheduler.Start(schedulerCtx)

	// 13. HTTP server with graceful shutdown
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("🌐 Server listening on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("❌ Server failed: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down...")
	stopScheduler()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal("❌ Forced shutdown: ", err)
	}

	log.Println("✅ Server stopped")
}
