package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"SliceScope/internal/collector"
	"SliceScope/internal/config"
	"SliceScope/internal/exporter"
	"SliceScope/internal/kpi"
	"SliceScope/internal/model"
	"SliceScope/internal/notification"
	"SliceScope/internal/query"
)

var (
	configPath = kingpin.Flag("config", "Path to the configuration file.").Default("configs/config.yaml").String()
	logLevel   = kingpin.Flag("log", "Log verbosity level (debug, info, warning, error).").String()
)

func main() {
	kingpin.Parse()

	// 1. Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}

	lvl, err := cfg.LogLevel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	log := zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()

	log.Info().Str("backend_url", cfg.Backend.URL).Msg("backend configured")
	log.Info().Str("time_range", cfg.Collector.TimeRange).Msg("query window configured")
	log.Info().Int("update_period", cfg.Collector.UpdatePeriod).Msg("update period configured")

	// 2. Wire the collection pipeline
	client := query.NewClient(cfg.Backend.URL, cfg.QueryTimeoutDuration(), log)
	builder := query.NewBuilder(cfg.Collector.TimeRange)
	deriver := kpi.NewDeriver(client, builder, log)
	exp := exporter.New(log)

	var notifier model.Notifier
	if cfg.NATS.Enabled {
		notifier, err = notification.NewNATSNotifier(cfg.NATS, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create NATS notifier")
		}
		defer notifier.Close()
	}

	coll := collector.New(deriver, exp, notifier, cfg.UpdateInterval(), log)

	// 3. Start the scrape endpoint
	r := mux.NewRouter()
	r.Handle("/metrics", exp.Handler()).Methods("GET")
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	}).Methods("GET")

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Exporter.Port),
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("scrape endpoint starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("scrape endpoint failed")
		}
	}()

	// 4. Start the collector
	coll.Start()

	// 5. Wait for a shutdown signal for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Info().Msg("shutdown signal received, stopping collector...")
	coll.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("scrape endpoint forced to shut down")
	}
	log.Info().Msg("shutdown complete")
}
