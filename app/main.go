package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pressfeed/pressfeed/app/api"
	"github.com/pressfeed/pressfeed/app/cfg"
	"github.com/pressfeed/pressfeed/app/content"
	"github.com/pressfeed/pressfeed/app/database"
	"github.com/pressfeed/pressfeed/app/feed"
	"github.com/pressfeed/pressfeed/app/tasks"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting Pressfeed server", "version", appCfg.Version)

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "path", appCfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "path", appCfg.DBPath, "migration_version", version, "dirty", dirty)

	articleRepo := database.NewArticleRepository(db)
	tagRepo := database.NewTagRepository(db)
	likeRepo := database.NewLikeRepository(db)

	importer := content.NewImporter(appCfg.ContentDir, articleRepo, tagRepo, likeRepo)
	imported, err := importer.Run()
	if err != nil {
		slog.Error("Failed to import content", "dir", appCfg.ContentDir, "error", err)
		os.Exit(1)
	}
	slog.Info("Content imported", "dir", appCfg.ContentDir, "articles", imported)

	builder := feed.NewBuilder(articleRepo, likeRepo)
	sessions := api.NewSessions(builder)

	scheduler := tasks.NewScheduler(importer, sessions)
	scheduler.Start()
	defer scheduler.Stop()

	handler := api.NewHandler(articleRepo, tagRepo, likeRepo, builder, sessions)
	server := api.NewServer(handler)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	// Scheduler is stopped via defer
	slog.Info("Shutdown complete")
}
