package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/nkapoor/visionvoice/internal/api/handlers"
	"github.com/nkapoor/visionvoice/internal/api/middleware"
	"github.com/nkapoor/visionvoice/internal/assistant"
	"github.com/nkapoor/visionvoice/internal/config"
	"github.com/nkapoor/visionvoice/internal/upload"
)

type Router struct {
	mux      *chi.Mux
	cfg      *config.Config
	delegate assistant.Delegate
	store    *upload.Store
}

func NewRouter(cfg *config.Config, delegate assistant.Delegate, store *upload.Store) *Router {
	return &Router{
		mux:      chi.NewRouter(),
		cfg:      cfg,
		delegate: delegate,
		store:    store,
	}
}

func (rt *Router) Setup() http.Handler {
	r := rt.mux

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         3600,
	}))
	r.Use(httprate.LimitByIP(100, time.Second))

	health := handlers.NewHealthHandler()
	r.Get("/healthz", health.Health)

	assistantH := handlers.NewAssistantHandler(rt.delegate, rt.store, rt.cfg.Upload.MaxBytes, rt.cfg.ExposeErrorDetails)
	voicesH := handlers.NewVoicesHandler(rt.delegate, rt.cfg.ExposeErrorDetails)

	r.Route("/api", func(r chi.Router) {
		r.Post("/transcribe", assistantH.Transcribe)
		r.Post("/upload_image", assistantH.UploadImage)
		r.Post("/generate_response", assistantH.GenerateResponse)
		r.Post("/text_to_speech", assistantH.TextToSpeech)
		r.Post("/process", assistantH.Process)
		r.Get("/audio/{name}", assistantH.Audio)
		r.Get("/voices", voicesH.Voices)
		r.Get("/voices_by_language", voicesH.VoicesByLanguage)
		r.Get("/health", health.Health)
	})

	return r
}
