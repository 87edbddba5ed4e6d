package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/TaffarelJr/OnionSeed.Data-sub000/example/shared/core"
	"github.com/TaffarelJr/OnionSeed.Data-sub000/example/shared/shell/config"
	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository"
	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository/async"
	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository/memoryengine"
	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository/mirror"
	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository/recovery"
	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository/sqliteengine"
)

func main() {
	cfg, err := config.ParseDemoConfig()
	if err != nil {
		log.Fatalf("Failed to parse configuration: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Level()}))

	repo, cleanup, err := composeRepository(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to compose repository: %v", err)
	}
	defer cleanup()

	// Seed the initial book stock before generating load
	loadGen := NewLoadGenerator(repo, cfg)
	if err := loadGen.Seed(ctx); err != nil {
		log.Fatalf("Failed to seed initial books: %v", err)
	}

	// Start load generation in a goroutine
	errChan := make(chan error, 1)
	go func() {
		if err := loadGen.Start(ctx); err != nil {
			errChan <- err
		}
	}()

	log.Printf("Repository load generator started")
	log.Printf("Configuration: rate=%d req/s, initial_books=%d, write_weight=%d%%, mirror_mode=%s, codec=%s, workers=%d",
		cfg.Rate, cfg.InitialBooks, cfg.WriteWeight, cfg.MirrorMode, cfg.Codec, cfg.Workers)
	log.Printf("Press Ctrl+C to stop...")

	// Wait for shutdown signal or error
	select {
	case sig := <-sigChan:
		log.Printf("Received signal %v, initiating graceful shutdown...", sig)
		cancel()
	case err := <-errChan:
		log.Printf("Error occurred: %v", err)
		cancel()
	}

	// Give some time for graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := loadGen.Stop(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
}

// composeRepository assembles the repository stack the load generator runs
// against: a SQLite store mirrored onto an in-memory store, wrapped with
// lookup-miss recovery, driven through the asynchronous dispatcher and
// adapted back to the blocking contract.
func composeRepository(
	ctx context.Context,
	cfg config.DemoConfig,
	logger *slog.Logger,
) (repository.Repository[string, core.Book], func(), error) {

	entityCodec, err := cfg.EntityCodec()
	if err != nil {
		return nil, nil, err
	}

	mode, err := cfg.Mode()
	if err != nil {
		return nil, nil, err
	}

	primary, err := sqliteengine.Open[string, core.Book](
		cfg.SQLitePath,
		sqliteengine.WithTableName(cfg.TableName),
		sqliteengine.WithLogger(logger),
		sqliteengine.WithCodec(entityCodec),
	)
	if err != nil {
		return nil, nil, err
	}

	if err := primary.CreateSchema(ctx); err != nil {
		_ = primary.Close()
		return nil, nil, err
	}

	tap := memoryengine.NewStore[string, core.Book]()

	mirrored, err := mirror.NewRepository[string, core.Book](
		primary,
		tap,
		mirror.WithLogger(logger),
		mirror.WithMode(mode),
	)
	if err != nil {
		_ = primary.Close()
		return nil, nil, err
	}

	// Random probes hit absent books on purpose; recover those misses to
	// documented defaults instead of reporting them as load errors.
	recovered, err := recovery.NewRepository[string, core.Book](
		mirrored,
		repository.ErrEntityNotFound,
		func(error) bool { return true },
	)
	if err != nil {
		_ = primary.Close()
		return nil, nil, err
	}

	dispatcher, err := async.NewDispatcher(async.WithWorkers(cfg.Workers))
	if err != nil {
		_ = primary.Close()
		return nil, nil, err
	}

	asyncRepo, err := async.NewRepository[string, core.Book](recovered, dispatcher)
	if err != nil {
		dispatcher.Close()
		_ = primary.Close()
		return nil, nil, err
	}

	facade, err := async.NewBlockingRepository[string, core.Book](asyncRepo)
	if err != nil {
		dispatcher.Close()
		_ = primary.Close()
		return nil, nil, err
	}

	cleanup := func() {
		dispatcher.Close()
		if err := primary.Close(); err != nil {
			log.Printf("Error closing SQLite store: %v", err)
		}
	}

	return facade, cleanup, nil
}
