package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/darkonteams/tourneybot/internal/config"
	"github.com/darkonteams/tourneybot/internal/database"
	server "github.com/darkonteams/tourneybot/internal/http"
	"github.com/darkonteams/tourneybot/internal/inngest"
	"github.com/darkonteams/tourneybot/internal/lichess"
	"github.com/darkonteams/tourneybot/internal/metrics"
	"github.com/darkonteams/tourneybot/internal/notifier/slack"
	"github.com/darkonteams/tourneybot/internal/poller"
	"github.com/darkonteams/tourneybot/internal/pubsub"
	"github.com/darkonteams/tourneybot/internal/tourney"
	"github.com/inngest/inngestgo"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	store := tourney.New(db)
	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	lichessClient := lichess.NewClient(cfg.Lichess.Token)
	notifier := slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)
	pubsubClient := pubsub.New(cfg.ProjectID)
	defer pubsubClient.Close()
	pollerSvc := poller.New(store, lichessClient, pubsubClient, metricsSvc, cfg.Lichess.Creator)

	options := inngestgo.ClientOpts{
		AppID:      cfg.Inngest.AppID,
		SigningKey: &cfg.Inngest.SigningKey,
		EventKey:   &cfg.Inngest.EventKey,
		Dev:        &cfg.Inngest.Dev,
	}
	inngestProvider, err := inngestgo.NewClient(options)
	if err != nil {
		log.Fatalf("Failed to initialize inngest: %s", err)
	}
	inngestClient := inngest.New(inngestProvider, pollerSvc)

	s := server.NewServer(
		store,
		metricsSvc,
		metricsHandler,
		cfg,
		lichessClient,
		notifier,
		pollerSvc,
		pubsubClient,
		inngestClient,
	)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		// Create a context with a timeout for the shutdown.
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Attempt to gracefully shut down the server.
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
