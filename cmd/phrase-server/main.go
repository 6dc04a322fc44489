package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/roundsnote/api/internal/config"
	"github.com/roundsnote/api/internal/domain/patient"
	"github.com/roundsnote/api/internal/domain/phrase"
	"github.com/roundsnote/api/internal/platform/middleware"
)

// patientContextAdapter adapts the patient repository to the
// phrase.PatientSource interface, avoiding a package cycle between the
// phrase and patient domains.
type patientContextAdapter struct {
	repo patient.Repository
}

func (a *patientContextAdapter) ContextFor(ctx context.Context, patientID uuid.UUID) (phrase.PatientContext, error) {
	rec, err := a.repo.GetByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return phrase.PatientContext(rec.Context()), nil
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "phrase-server",
		Short: "Clinical phrase expansion API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(lintCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the phrase API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func lintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lint <library-file>",
		Short: "Check a phrase library file for authoring problems",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := loadLibrary(args[0])
			if err != nil {
				return err
			}

			problems := 0
			for i := range lib.Phrases {
				p := &lib.Phrases[i]
				findings := phrase.LintPhrase(p)
				if len(findings) == 0 {
					continue
				}
				problems += len(findings)
				fmt.Printf("%s (%s):\n", p.Name, p.Shortcut)
				for _, f := range findings {
					fmt.Printf("  - %s\n", f)
				}
			}

			if problems > 0 {
				return fmt.Errorf("%d problem(s) in %d phrase(s)", problems, len(lib.Phrases))
			}
			fmt.Printf("%d phrase(s) OK\n", len(lib.Phrases))
			return nil
		},
	}
}

// library is the JSON seed file format: a phrase collection plus optional
// patient snapshots for demo/dev use.
type library struct {
	Phrases  []phrase.Phrase  `json:"phrases"`
	Patients []patient.Record `json:"patients,omitempty"`
}

func loadLibrary(path string) (*library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read library file: %w", err)
	}
	var lib library
	if err := json.Unmarshal(data, &lib); err != nil {
		return nil, fmt.Errorf("parse library file: %w", err)
	}
	return &lib, nil
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" || os.Getenv("ENV") == "" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	// Repositories (in-memory; durable stores live outside this service)
	phraseRepo := phrase.NewMemoryRepository()
	patientRepo := patient.NewMemoryRepository()

	ctx := context.Background()
	if cfg.LibraryFile != "" {
		lib, err := loadLibrary(cfg.LibraryFile)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to load phrase library")
		}
		for i := range lib.Phrases {
			if err := phraseRepo.Create(ctx, &lib.Phrases[i]); err != nil {
				logger.Fatal().Err(err).Str("phrase", lib.Phrases[i].Name).Msg("failed to seed phrase")
			}
		}
		for i := range lib.Patients {
			if err := patientRepo.Upsert(ctx, &lib.Patients[i]); err != nil {
				logger.Fatal().Err(err).Str("patient", lib.Patients[i].Name).Msg("failed to seed patient")
			}
		}
		logger.Info().
			Int("phrases", len(lib.Phrases)).
			Int("patients", len(lib.Patients)).
			Str("file", cfg.LibraryFile).
			Msg("phrase library loaded")
	}

	// Services
	patientSvc := patient.NewService(patientRepo)
	phraseSvc := phrase.NewService(phraseRepo, &patientContextAdapter{repo: patientRepo}, logger)

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.BodyLimit(cfg.BodyLimit))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	// API group
	apiV1 := e.Group("/api/v1")

	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	apiV1.Use(middleware.RateLimit(rateLimitCfg))

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})

	// Domain handlers
	phrase.NewHandler(phraseSvc).RegisterRoutes(apiV1)
	patient.NewHandler(patientSvc).RegisterRoutes(apiV1)

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
