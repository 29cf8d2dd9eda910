package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/leadai/readiness/internal/audit"
	"github.com/leadai/readiness/internal/auth"
	"github.com/leadai/readiness/internal/config"
	"github.com/leadai/readiness/internal/enhance"
	"github.com/leadai/readiness/internal/engine"
	"github.com/leadai/readiness/internal/notify"
	"github.com/leadai/readiness/internal/domain"
	"github.com/leadai/readiness/internal/server"
	"github.com/leadai/readiness/internal/store/postgres"
	redisstore "github.com/leadai/readiness/internal/store/redis"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}
}

func run() error {
	bootstrapEmail := flag.String("bootstrap-profile", "", "create a profile for this email, print its API key, and exit")
	bootstrapPlan := flag.String("plan", string(domain.PlanStarter), "plan for -bootstrap-profile (starter, professional, enterprise)")
	flag.Parse()
	// Initialize structured logging from environment.
	logLevel := os.Getenv("LEADAI_LOG_LEVEL")
	level, parseErr := zerolog.ParseLevel(logLevel)
	if parseErr != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	logFormat := os.Getenv("LEADAI_LOG_FORMAT")
	if logFormat == "text" {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}

	ctx := context.Background()

	// Load configuration from environment.
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if cfg.Database.MaxConns < 0 || cfg.Database.MaxConns > math.MaxInt32 {
		return fmt.Errorf("database max_conns %d out of int32 range", cfg.Database.MaxConns)
	}

	// Connect to PostgreSQL and run pending migrations.
	store, err := postgres.New(ctx, cfg.Database.DSN(), int32(cfg.Database.MaxConns)) //nolint:gosec // bounds checked above
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		return err
	}

	// Bootstrap mode: create a profile with a fresh API key and exit.
	// Intended for self-hosted deployments without an external billing system.
	if *bootstrapEmail != "" {
		return bootstrapProfile(ctx, store, *bootstrapEmail, domain.Plan(*bootstrapPlan))
	}

	// Connect to Redis for the audit result cache.
	cache, err := redisstore.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Audit.CacheWindow)
	if err != nil {
		return err
	}
	defer cache.Close()

	// Build the audit pipeline: heuristic engine, optional model enhancement,
	// optional Slack notifications.
	analyzer := engine.NewAnalyzer()
	enhancer := enhance.New(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	notifier := notify.New(cfg.Slack.BotToken, cfg.Slack.Channel)

	if !enhancer.Enabled() {
		log.Warn().Msg("model enhancement disabled, reports use heuristic narratives only")
	}

	audits := audit.New(
		store.Audits(),
		store.Profiles(),
		analyzer,
		enhancer,
		cache,
		notifier,
		cfg.Audit.CacheWindow,
	)

	// Graceful shutdown on SIGINT / SIGTERM.
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Create HTTP server with all routes wired.
	srv := server.New(ctx, cfg, store, audits)

	// Start server in background goroutine.
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("starting server")
		if startErr := srv.Start(ctx); startErr != nil {
			log.Error().Err(startErr).Msg("server error")
		}
	}()

	// Block until shutdown signal.
	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
		return shutdownErr
	}

	log.Info().Msg("stopped")
	return nil
}

func bootstrapProfile(ctx context.Context, store *postgres.Store, email string, plan domain.Plan) error {
	switch plan {
	case domain.PlanStarter, domain.PlanProfessional, domain.PlanEnterprise:
	default:
		return fmt.Errorf("unknown plan %q", plan)
	}

	key, err := auth.GenerateAPIKey()
	if err != nil {
		return err
	}

	credits := plan.MonthlyLimit()
	if plan.Unlimited() {
		credits = 1000
	}

	now := time.Now()
	p := &domain.Profile{
		ID:           uuid.New(),
		Email:        email,
		Plan:         plan,
		AuditCredits: credits,
		APIKeyPrefix: key.Prefix,
		APIKeyHash:   key.Hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := store.Profiles().Create(ctx, p); err != nil {
		return err
	}

	// The raw key is printed exactly once; only its hash is stored.
	fmt.Printf("profile %s created on plan %s with %d credits\nAPI key: %s\n", p.ID, plan, credits, key.Raw)
	return nil
}
