package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blugelabs/bluge"
	"github.com/mama165/sdk-go/logs"

	"procdesk/errors"
	"procdesk/internal"
	"procdesk/repositories"
	"procdesk/services"
	"procdesk/storage"
)

// Exit codes to provide meaningful status to the operating system or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	// The main function acts as a thin wrapper.
	// Its only responsibility is to call run() and handle the OS exit code.
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "procdesk terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run opens the store, applies migrations, rebuilds the search index and
// keeps the debug inspector up until a stop signal arrives. Centralizing
// errors here means every defer (store close, index close) executes before
// the process exits.
func run() (int, error) {
	// 1. Configuration & Logger
	config, err := loadConfig()
	if err != nil {
		return exitConfig, err
	}
	logger := logs.GetLoggerFromString(config.LogLevel)

	// 2. Store (badger with memory fallback) + schema migration
	store, err := storage.Open(config.BadgerFilepath, logger)
	if err != nil {
		return exitRuntime, fmt.Errorf("store opening failed: %w", err)
	}
	defer func() {
		logger.Info("Closing store...")
		_ = store.Close()
	}()
	if store.Degraded() {
		logger.Warn("Running on the in-memory fallback, data will not survive this process")
	}

	// 3. Full-text index
	blugeWriter, err := bluge.OpenWriter(bluge.DefaultConfig(config.BlugeFilepath))
	if err != nil {
		return exitRuntime, fmt.Errorf("failed to open bluge writer: %w", err)
	}
	defer func() {
		logger.Info("Closing Bluge...")
		_ = blugeWriter.Close()
	}()

	// 4. Rebuild the search index from the store. The index is derived
	// data; rebuilding at startup keeps it honest after a fallback run or
	// an unclean stop.
	processRepository := repositories.NewProcessRepository(store, logger)
	searchService := services.NewSearchService(blugeWriter, logger)

	docs, err := processRepository.GetAll()
	if err != nil {
		return exitRuntime, fmt.Errorf("reindex scan failed: %w", err)
	}
	for _, doc := range docs {
		if err := searchService.Index(doc); err != nil {
			logger.Warn("reindex failed for document", "id", doc.ID, "error", err)
		}
	}
	logger.Info("Search index rebuilt", "documents", len(docs))

	// 5. Reviewer authentication. An optional bootstrap account makes a
	// fresh deployment usable without a separate provisioning step.
	userRepository := repositories.NewUserRepository(store)
	authService := services.NewAuthService(userRepository, config.AuthTokenDuration)
	if config.BootstrapReviewerEmail != "" {
		_, err := authService.Register(config.BootstrapReviewerEmail, config.BootstrapReviewerPassword)
		switch {
		case stderrors.Is(err, errors.ErrUserAlreadyExists):
			logger.Info("Bootstrap reviewer already present", "email", config.BootstrapReviewerEmail)
		case err != nil:
			return exitRuntime, fmt.Errorf("bootstrap reviewer registration failed: %w", err)
		default:
			logger.Info("Bootstrap reviewer registered", "email", config.BootstrapReviewerEmail)
		}
	}

	// 6. Debug inspector
	if config.DebugPort != 0 {
		endpoint := "/inspect"
		logger.Info("Debug store inspector available",
			"url", fmt.Sprintf("http://localhost:%d%s", config.DebugPort, endpoint))
		internal.StartDebugServer(store, searchService, config.SearchLimit, config.DebugPort, endpoint, logger)
	}

	// 7. Wait for a stop signal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("procdesk started", "at", time.Now().UTC(), "degraded", store.Degraded())
	<-ctx.Done()

	logger.Info("Shutdown signal received, stopping cleanly")
	return exitOK, nil
}
