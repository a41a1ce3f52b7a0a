package main

import (
	stdlog "log"
	"net/http"
	"os"
	"time"

	"golang.org/x/time/rate"

	"github.com/DrHac-GH/firstrade-tax-app/src/config"
	"github.com/DrHac-GH/firstrade-tax-app/src/handlers"
	"github.com/DrHac-GH/firstrade-tax-app/src/logger"
	"github.com/DrHac-GH/firstrade-tax-app/src/parsers"
	"github.com/DrHac-GH/firstrade-tax-app/src/security"
	"github.com/DrHac-GH/firstrade-tax-app/src/services"
)

var limiter = rate.NewLimiter(rate.Every(100*time.Millisecond), 30)

func rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			logger.L.Warn("Rate limit exceeded",
				"method", r.Method,
				"path", r.URL.Path,
				"remoteAddr", r.RemoteAddr)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)
	logger.L.Info("Firstrade tax summary server starting...")

	if len(config.Cfg.SessionSecret) < 32 {
		logger.L.Error("SESSION_SECRET configuration invalid. Must be at least 32 bytes.")
		os.Exit(1)
	}

	logger.L.Info("Initializing services and handlers...")
	authService := security.NewAuthService(config.Cfg.SessionSecret, config.Cfg.SessionTTL)
	sessionStore := services.NewSessionStore(config.Cfg.SessionTTL, config.Cfg.SessionCleanup)
	rateService := services.NewRateService(config.Cfg.RateAPIBaseURL, config.Cfg.RateFetchTimeout)
	uploadService := services.NewUploadService(parsers.NewFirstradeParser(), rateService)

	router := handlers.NewRouter(handlers.RouterDeps{
		AuthService:    authService,
		SessionStore:   sessionStore,
		UploadService:  uploadService,
		AllowedOrigins: config.Cfg.AllowedOrigins,
	})

	serverAddr := ":" + config.Cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      rateLimitMiddleware(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.L.Info("Server starting", "address", serverAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.L.Error("Failed to start server", "error", err)
		stdlog.Fatalf("Failed to start server: %v", err)
	} else if err == http.ErrServerClosed {
		logger.L.Info("Server stopped gracefully.")
	}
}
