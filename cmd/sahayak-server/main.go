package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/divyaanshikaushik/Sahayak/internal/config"
	"github.com/divyaanshikaushik/Sahayak/internal/domain/appointment"
	"github.com/divyaanshikaushik/Sahayak/internal/domain/doctor"
	"github.com/divyaanshikaushik/Sahayak/internal/domain/document"
	"github.com/divyaanshikaushik/Sahayak/internal/domain/patient"
	"github.com/divyaanshikaushik/Sahayak/internal/domain/report"
	"github.com/divyaanshikaushik/Sahayak/internal/platform/ai"
	"github.com/divyaanshikaushik/Sahayak/internal/platform/auth"
	"github.com/divyaanshikaushik/Sahayak/internal/platform/backend"
	"github.com/divyaanshikaushik/Sahayak/internal/platform/middleware"
	"github.com/divyaanshikaushik/Sahayak/internal/platform/pdf"
	"github.com/divyaanshikaushik/Sahayak/internal/session"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sahayak-server",
		Short: "Sahayak practice management API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(checkCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Probe backend connectivity and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			client := backend.NewClient(cfg.BackendURL, cfg.BackendAnonKey)
			gw := backend.NewGateway(client, cfg.GatewayAttempts, cfg.GatewayBaseDelay, logger)

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if !gw.Probe(ctx) {
				fmt.Println("backend unreachable")
				os.Exit(1)
			}
			fmt.Println("backend reachable")
			return nil
		},
	}
}

func newLogger() zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return logger
}

func runServer() error {
	logger := newLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}
	if !cfg.AIEnabled() {
		logger.Warn().Msg("no AI credential configured, assist endpoints will refuse requests")
	}

	// Backend gateway
	client := backend.NewClient(cfg.BackendURL, cfg.BackendAnonKey)
	gw := backend.NewGateway(client, cfg.GatewayAttempts, cfg.GatewayBaseDelay, logger)
	storage := backend.NewStorage(client, cfg.StorageBucket, cfg.MaxUploadSize)

	// AI assist
	limiter := ai.NewLimiter(cfg.AIRateLimit, cfg.AIRateWindow)
	assist := ai.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel, limiter, logger)

	// Services
	doctorSvc := doctor.NewService(doctor.NewRepoREST(gw))
	patientSvc := patient.NewService(patient.NewRepoREST(gw))
	reportSvc := report.NewService(report.NewRepoREST(gw))
	apptSvc := appointment.NewService(appointment.NewRepoREST(gw))
	documentSvc := document.NewService(document.NewRepoREST(gw), storage, assist)

	sessionMgr := session.NewManager(client, doctorSvc, logger)
	sessionMgr.Ready()

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	// Health checks
	e.GET("/healthz", func(c echo.Context) error {
		if !gw.Probe(c.Request().Context()) {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/readyz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
	})

	secret := []byte(cfg.BackendJWTSecret)
	sessionHandler := session.NewHandler(sessionMgr, doctorSvc)

	// Credential endpoints run without a token.
	apiV1 := e.Group("/api/v1")
	sessionHandler.RegisterPublic(apiV1)

	// Token-only endpoints: the principal exists but may not have finished
	// registration yet.
	authed := apiV1.Group("", auth.Required(secret))
	sessionHandler.RegisterAuthenticated(authed)

	callback := e.Group("", auth.Required(secret))
	sessionHandler.RegisterCallback(callback)

	// Everything else needs a resolved professional profile.
	api := authed.Group("", auth.RequireProfile(doctorSvc))
	doctor.NewHandler(doctorSvc).RegisterRoutes(api)
	patient.NewHandler(patientSvc).RegisterRoutes(api)
	report.NewHandler(reportSvc, pdf.NewExporter()).RegisterRoutes(api)
	appointment.NewHandler(apptSvc).RegisterRoutes(api)
	document.NewHandler(documentSvc).RegisterRoutes(api)
	ai.NewHandler(assist).RegisterRoutes(api)

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
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
