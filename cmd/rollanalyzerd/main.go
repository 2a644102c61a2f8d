package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"github.com/lmittmann/tint"

	"github.com/rekreate/rollanalyzer/internal/analyzer"
	"github.com/rekreate/rollanalyzer/internal/classifier"
	"github.com/rekreate/rollanalyzer/internal/config"
	"github.com/rekreate/rollanalyzer/internal/web"
)

func main() {
	ctx := context.Background()

	// Configure logger
	logger := slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: "15:04:05",
		}),
	)
	slog.SetDefault(logger)

	configPath := flag.String("config", "config.yaml", "path to config file")
	addr := flag.String("addr", "", "listen address (overrides config)")
	flag.Parse()

	conf, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *addr != "" {
		conf.Server.Addr = *addr
	}

	// Initialize agent
	visionAgent, err := classifier.NewAgent(ctx, logger, classifier.Config{
		BaseURL: conf.Model.BaseURL,
		Port:    conf.Model.Port,
		Model:   conf.Model.ID,
	})
	if err != nil {
		log.Fatalf("Failed to initialize vision agent: %v", err)
	}

	processor := analyzer.NewProcessor(classifier.New(visionAgent), logger, conf.Analyze.Workers)
	api := web.NewAPI(processor, conf, logger)

	srv := &http.Server{
		Addr:    conf.Server.Addr,
		Handler: api.Router(),
	}

	go func() {
		logger.Info("listening", "addr", conf.Server.Addr, "model", conf.Model.ID)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	stopCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-stopCtx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "err", err)
	}
	logger.Info("stopped")
}
