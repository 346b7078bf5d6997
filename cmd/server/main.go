package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/pflag"

	"github.com/jmalm/sightline/internal/ai"
	"github.com/jmalm/sightline/internal/config"
	"github.com/jmalm/sightline/internal/httpapi"
	"github.com/jmalm/sightline/internal/push"
	"github.com/jmalm/sightline/internal/relay"
	"github.com/jmalm/sightline/internal/session"
	"github.com/jmalm/sightline/internal/store"
)

func main() {
	configPath := pflag.String("config", "", "path to YAML config file")
	addr := pflag.String("addr", "", "listen address (overrides config)")
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	records := store.NewMemory()
	hub := push.NewHub()
	sessions := session.NewCoordinator(records)
	analyzer := ai.NewClient(ai.Options{
		BaseURL:         cfg.AI.BaseURL,
		APIKey:          cfg.AI.APIKey,
		ChatModel:       cfg.AI.ChatModel,
		TranscribeModel: cfg.AI.TranscribeModel,
		Timeout:         time.Duration(cfg.AI.TimeoutSec) * time.Second,
	})
	analyses := relay.New(records, analyzer, hub, sessions, cfg.MaxUploadBytes)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(ExtractUserMiddleware)

	r.Post("/api/navigation/start", startNavigation(sessions, hub))
	r.Get("/api/navigation/active", getActiveSession(records))
	r.Patch("/api/navigation/{id}", updateSession(sessions, hub))
	r.Post("/api/navigation/{id}/progress", recordProgress(sessions, hub))
	r.Post("/api/navigation/instruction", generateInstruction(analyses))
	r.Post("/api/vision/analyze", analyzeVision(analyses, cfg.MaxUploadBytes))
	r.Post("/api/audio/process", processAudio(analyses, cfg.MaxUploadBytes))
	r.Get("/api/navigation/{id}/objects", listObjects(records))
	r.Get("/api/navigation/{id}/audio", listAudioEvents(records))
	r.Get("/api/navigation/{id}/texts", listTexts(records))
	r.Get("/api/events", httpapi.StreamEvents(hub))

	r.Get("/", serveIndex(cfg.StaticDir))
	fs := http.FileServer(http.Dir(cfg.StaticDir))
	r.Handle("/static/*", http.StripPrefix("/static/", fs))

	slog.Info("listening", "addr", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func serveIndex(staticDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, staticDir+"/index.html")
	}
}
