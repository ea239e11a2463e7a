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
	"time"

	"github.com/icplearn/backend/internal/ai"
	"github.com/icplearn/backend/internal/api"
	"github.com/icplearn/backend/internal/arena"
	"github.com/icplearn/backend/internal/assessment"
	"github.com/icplearn/backend/internal/config"
	"github.com/icplearn/backend/internal/course"
	"github.com/icplearn/backend/internal/events"
	"github.com/icplearn/backend/internal/nft"
	"github.com/icplearn/backend/internal/reward"
	"github.com/icplearn/backend/internal/skill"
	"github.com/icplearn/backend/internal/stake"
	"github.com/icplearn/backend/internal/store"
	"github.com/icplearn/backend/internal/user"
)

// collections enumerates every record collection the services keep, in the
// order snapshots drain and replay them.
var collections = []string{
	user.Collection,
	course.Collection,
	course.ProgressCollection,
	skill.Collection,
	skill.UserSkillsCollection,
	assessment.Collection,
	assessment.ResultsCollection,
	stake.Collection,
	nft.GenesisCollection,
	nft.SkillCollection,
	reward.Collection,
	arena.Collection,
	arena.BattlesCollection,
	arena.RewardsCollection,
	ai.PromptsCollection,
	ai.ResponsesCollection,
	ai.AgentsCollection,
}

func main() {
	if err := run(); err != nil {
		slog.Error("daemon error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	setupLogging(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	kv, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer kv.Close()

	// The memory backend keeps its state through snapshot files written on
	// shutdown and replayed on the next start.
	if cfg.StoreBackend == "memory" && cfg.SnapshotPath != "" {
		snap, err := store.ReadSnapshotFile(cfg.SnapshotPath)
		if err != nil {
			return fmt.Errorf("read snapshot: %w", err)
		}
		if err := store.Replay(ctx, kv, snap); err != nil {
			return fmt.Errorf("replay snapshot: %w", err)
		}
		slog.Info("snapshot replayed", "path", cfg.SnapshotPath, "collections", len(snap))
	}

	var publisher events.Publisher
	if cfg.EventsEnabled {
		mq, err := events.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			return fmt.Errorf("connect rabbitmq: %w", err)
		}
		defer mq.Close()
		publisher = mq
	}

	app := api.NewApp(api.AppConfig{
		Config:    cfg,
		Store:     kv,
		Publisher: publisher,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      api.NewRouter(app),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", srv.Addr, "backend", cfg.StoreBackend)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}

	if cfg.StoreBackend == "memory" && cfg.SnapshotPath != "" {
		snap, err := store.Backup(shutdownCtx, kv, collections...)
		if err != nil {
			return fmt.Errorf("backup store: %w", err)
		}
		if err := snap.WriteFile(cfg.SnapshotPath); err != nil {
			return fmt.Errorf("write snapshot: %w", err)
		}
		slog.Info("snapshot written", "path", cfg.SnapshotPath)
	}

	slog.Info("daemon stopped")
	return nil
}

func setupLogging(cfg *config.Config) {
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

func openStore(ctx context.Context, cfg *config.Config) (store.KV, error) {
	limits := store.Limits{
		MaxKeySize:   cfg.MaxKeySize,
		MaxValueSize: cfg.MaxValueSize,
	}

	switch cfg.StoreBackend {
	case "sqlite":
		return store.OpenSQLite(cfg.SQLitePath, limits)
	case "postgres":
		return store.OpenPostgres(ctx, cfg.PostgresURL, limits)
	default:
		return store.NewMemory(limits), nil
	}
}
