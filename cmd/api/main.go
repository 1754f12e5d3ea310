package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mindwell-labs/mindwell/backend/internal/config"
	"github.com/mindwell-labs/mindwell/backend/internal/handler"
	"github.com/mindwell-labs/mindwell/backend/internal/model/billing"
	"github.com/mindwell-labs/mindwell/backend/internal/service/ai"
	"github.com/mindwell-labs/mindwell/backend/internal/service/speech"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// The ledger is the only state shared across sessions. Created once
	// here and injected everywhere it is needed.
	ledger := billing.NewLedger()

	// Initialize the completion provider client
	var aiSvc *ai.Service
	if cfg.AI.Enabled() {
		aiSvc, err = ai.NewService(ctx, cfg.AI)
		if err != nil {
			log.Printf("warning: failed to initialize completion client: %v", err)
			log.Println("continuing without chat relay - check OPENAI_API_KEY")
		} else {
			log.Printf("completion client initialized, model=%s", aiSvc.Model())
		}
	} else {
		log.Println("OPENAI_API_KEY not set, chat relay disabled")
	}

	// Initialize the audio conversion client
	var speechSvc *speech.Service
	if cfg.Speech.Enabled {
		speechSvc = speech.NewService(cfg.Speech)
		log.Println("speech conversion client initialized")
	} else {
		log.Println("speech credentials not configured, conversion endpoints disabled")
	}

	router := handler.NewRouter(aiSvc, speechSvc, ledger, cfg.AI.Whisper)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Mindwell backend listening on %s", serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
