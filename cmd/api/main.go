package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"example.com/fitlog/internal/api"
	"example.com/fitlog/internal/bootstrap"
	"example.com/fitlog/internal/config"
	"example.com/fitlog/internal/domain"
	"example.com/fitlog/internal/persistence"
	httptransport "example.com/fitlog/internal/transport/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	cfg.InitLogger(os.Stderr)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("failed to open store")
	}
	defer closeStore()

	writer := persistence.NewWriter(persistence.NewAdapter(store), cfg.SaveQueueSize)
	go writer.Start(ctx)

	tracker := domain.NewTracker(writer)
	tracker.Load(ctx)
	log.Info().Int("activities", tracker.Len()).Str("driver", cfg.StoreDriver).Msg("activity log loaded")

	handler := api.NewHandler(tracker)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	mux.Handle("/metrics", promhttp.Handler())

	server := httptransport.NewServer(httptransport.ServerConfig{
		Address: cfg.HTTPAddress,
	}, httptransport.RequestLogger(log.Logger, mux))

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info().Str("address", cfg.HTTPAddress).Msg("fitlog api listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-shutdownCh

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}

	// Flush queued snapshots before the store is closed.
	writer.Close()
	cancel()
}
