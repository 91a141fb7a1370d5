package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	api "github.com/quizdrill/quizdrill/internal/api/http"
	"github.com/quizdrill/quizdrill/internal/config"
	"github.com/quizdrill/quizdrill/internal/db"
	"github.com/quizdrill/quizdrill/internal/deck"
	"github.com/quizdrill/quizdrill/internal/feedback"
	"github.com/quizdrill/quizdrill/internal/markdown"
	"github.com/quizdrill/quizdrill/internal/quiz"
	"github.com/quizdrill/quizdrill/internal/transcript"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	// --- Deck ---
	d, err := deck.Load(cfg.DeckPath)
	if err != nil {
		log.Fatalf("deck load failed: %v", err)
	}
	if d.Size() == 0 {
		log.Fatalf("deck %s has no cards", cfg.DeckPath)
	}
	log.Printf("loaded %d flashcards from %s", d.Size(), cfg.DeckPath)

	// --- Transcript log ---
	var tlog transcript.Log
	switch cfg.TranscriptDriver {
	case "file":
		fl, err := transcript.NewFileLog(cfg.TranscriptDir)
		if err != nil {
			log.Fatalf("transcript dir: %v", err)
		}
		tlog = fl
	default:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
		cancel()
		if err != nil {
			log.Fatalf("db open failed: %v", err)
		}
		defer dbh.Close()
		tlog = transcript.NewSQLLog(dbh)
	}

	// --- Quiz service ---
	eval := feedback.NewOpenAIEvaluator(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, cfg.FeedbackTimeout)
	store := quiz.NewMemoryStore()
	svc := quiz.NewService(d, tlog, eval, markdown.NewRenderer())
	sessions := api.NewSessionManager(cfg.SessionSecret, store, svc)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api", func(qr chi.Router) {
		qr.Use(sessions.Middleware)
		api.Mount(qr, svc, store)
	})

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("quizdrill listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
