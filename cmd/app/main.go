package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/osse101/DowntimeForge/docs"
	"github.com/osse101/DowntimeForge/internal/bootstrap"
	"github.com/osse101/DowntimeForge/internal/concurrency"
	"github.com/osse101/DowntimeForge/internal/config"
	"github.com/osse101/DowntimeForge/internal/crafting"
	"github.com/osse101/DowntimeForge/internal/dice"
	"github.com/osse101/DowntimeForge/internal/handler"
	"github.com/osse101/DowntimeForge/internal/research"
	"github.com/osse101/DowntimeForge/internal/server"
)

// @title DowntimeForge API
// @version 1.0
// @description Downtime crafting, tool competency and recipe research for tabletop characters.
// @BasePath /
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()

	warnings, err := cfg.ValidateWithWarnings()
	if err != nil {
		return err
	}
	for _, w := range warnings {
		slog.Warn(bootstrap.LogMsgConfigWarning, "warning", w)
	}
	// ldflags win over the VERSION variable
	if handler.Version == config.DefaultVersion {
		handler.Version = cfg.Version
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := bootstrap.ConnectDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer dbPool.Close()

	repos := bootstrap.InitializeRepositories(dbPool)
	if _, err := bootstrap.SyncRecipes(ctx, cfg, repos.Catalog); err != nil {
		return err
	}

	eventBus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		return err
	}
	discordSession, err := bootstrap.RegisterEventHandlers(cfg, eventBus)
	if err != nil {
		return err
	}

	// Crafting and research share the character locks and the proficiency cache
	locks := concurrency.NewLockManager()
	proficiency := crafting.NewProficiencyTable(repos.Crafting, cfg.ProficiencyCacheTTL)
	roller := dice.NewRandomRoller()

	craftingService := crafting.NewService(repos.Crafting, roller, publisher, locks, proficiency, crafting.Config{
		TxMaxRetries:        cfg.TxMaxRetries,
		ProficiencyCacheTTL: cfg.ProficiencyCacheTTL,
		RecipeCacheTTL:      cfg.ProficiencyCacheTTL,
	})
	researchService := research.NewService(repos.Research, roller, publisher, locks, proficiency, cfg.TxMaxRetries)

	srv := server.NewServer(cfg.Port, cfg.TrustedProxies, dbPool, craftingService, researchService)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		if err != nil {
			slog.Error("Server failed", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), bootstrap.ShutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		ResilientPublisher: publisher,
		DiscordSession:     discordSession,
	})
	return nil
}
