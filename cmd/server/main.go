// Package main is the entry point for the poolcost HTTP server.
package main

import (
	"context"
	stderrors "errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"poolcost/api"
	"poolcost/core/engine"
	"poolcost/core/pricing"
	"poolcost/db"
	"poolcost/internal/config"
	"poolcost/internal/logging"
)

var version = "1.0.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := flag.String("config", "", "config file (HCL or JSON)")
	addr := flag.String("addr", "", "listen address (overrides server.addr)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	config.Set(cfg)
	if err := logging.Initialize(cfg.LogConfig()); err != nil {
		return err
	}
	defer logging.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := db.Open(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	provider := pricing.NewProvider(store, cfg.CachePolicy())
	eng := engine.New(provider, engine.Config{UseTableDiscounts: cfg.Engine.UseTableDiscounts})

	read, write := cfg.Timeouts()
	srv := api.NewServer(eng, version).HTTPServer(cfg.Server.Addr, read, write)

	errc := make(chan error, 1)
	go func() {
		logging.Info("poolcost server listening",
			zap.String("addr", cfg.Server.Addr),
			zap.String("store", cfg.Store.Driver),
			zap.String("version", version))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logging.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	stats := provider.CacheStats()
	logging.Info("server stopped", zap.Any("cache", stats))
	return nil
}
