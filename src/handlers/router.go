package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/DrHac-GH/firstrade-tax-app/src/security"
	"github.com/DrHac-GH/firstrade-tax-app/src/services"
)

// RouterDeps carries everything the route tree needs.
type RouterDeps struct {
	AuthService    *security.AuthService
	SessionStore   *services.SessionStore
	UploadService  services.UploadService
	AllowedOrigins []string
}

// NewRouter builds the HTTP API router.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "If-None-Match"},
		ExposedHeaders:   []string{"ETag", "Content-Disposition"},
		AllowCredentials: true,
	}))

	sessionHandler := NewSessionHandler(deps.AuthService, deps.SessionStore)
	uploadHandler := NewUploadHandler(deps.UploadService)
	ratesHandler := NewRatesHandler(deps.UploadService)
	summaryHandler := NewSummaryHandler(deps.UploadService)
	exportHandler := NewExportHandler(deps.UploadService)

	r.Post("/api/session", sessionHandler.HandleCreateSession)

	r.Group(func(r chi.Router) {
		r.Use(SessionMiddleware(deps.AuthService, deps.SessionStore))
		r.Post("/api/upload", uploadHandler.HandleUpload)
		r.Post("/api/rates/fetch", ratesHandler.HandleFetchRates)
		r.Get("/api/summary", summaryHandler.HandleGetSummary)
		r.Get("/api/years", summaryHandler.HandleGetYears)
		r.Get("/api/export/{category}", exportHandler.HandleExport)
		r.Get("/api/report", exportHandler.HandleGetReport)
	})

	return r
}
