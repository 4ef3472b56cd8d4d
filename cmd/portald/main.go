// Package main is the entry point for the portald service.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/openportal/portald/api"
	"github.com/openportal/portald/internal/audit"
	"github.com/openportal/portald/internal/chat"
	"github.com/openportal/portald/internal/config"
	"github.com/openportal/portald/internal/llm"
	"github.com/openportal/portald/internal/markdown"
	"github.com/openportal/portald/internal/server"
	"github.com/openportal/portald/internal/store"
	"github.com/openportal/portald/internal/tools"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Str("service", "portald").Str("version", version).Logger()

	logger := log.With().Str("component", "main").Logger()
	logger.Info().Str("version", version).Str("commit", commit).Str("build_date", buildDate).Msg("starting portald")

	users := store.NewUserFile(filepath.Join(cfg.DataDir, "users.yaml"))
	requests := store.NewVacationRequestFile(filepath.Join(cfg.DataDir, "vacation-requests.yaml"))
	balances := store.NewVacationDaysFile(filepath.Join(cfg.DataDir, "vacation-days.csv"))
	policies := store.NewPolicyFile(filepath.Join(cfg.DataDir, "hr-policies.csv"))

	provider, err := llm.NewClient(llm.ClientConfig{
		BaseURL:     cfg.LLMBaseURL,
		APIKey:      cfg.LLMAPIKey,
		Model:       cfg.LLMModel,
		Temperature: cfg.LLMTemperature,
		MaxTokens:   cfg.LLMMaxTokens,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build model client")
	}

	contract, err := tools.ParseContract(api.ToolsContract)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse tool contract")
	}
	runner, err := tools.NewRunner(contract, log.Logger,
		tools.NewHRPolicyLookup(policies),
		tools.NewPersonalInfoLookup(users, balances),
		tools.NewVacationSubmission(users, requests, log.Logger),
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build tool runner")
	}

	orchestrator := chat.NewOrchestrator(provider, runner, markdown.NewRenderer(), audit.NewLogger(log.Logger), log.Logger)
	srv := server.New(users, requests, orchestrator, cfg, log.Logger, version, commit, buildDate)

	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.ListenAddr).Msg("HTTP server listening")
		if serveErr := httpServer.ListenAndServe(); serveErr != nil && serveErr != http.ErrServerClosed {
			errCh <- serveErr
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info().Str("signal", sig.String()).Msg("received shutdown signal")
	case serveErr := <-errCh:
		logger.Error().Err(serveErr).Msg("HTTP server error")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
	logger.Info().Msg("portald stopped")
}
