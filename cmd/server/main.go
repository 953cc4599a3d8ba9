// Package main is the entry point for the porte-calc HTTP server.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"porte-calc/adapters/storage"
	"porte-calc/api"
	"porte-calc/internal/config"
	"porte-calc/internal/logging"
)

const version = "0.1.0"

func main() {
	var (
		cfgFile = flag.String("config", "", "config file path")
		addr    = flag.String("addr", ":8080", "listen address")
	)
	flag.Parse()

	if *cfgFile != "" {
		cfg, err := config.Load(*cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}
	cfg := config.Get()

	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
	defer logging.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := storage.New(ctx, cfg.Storage.Backend, cfg.Storage.DatabaseURL)
	if err != nil {
		logging.Error("storage initialization failed", zap.Error(err))
		os.Exit(1)
	}
	defer store.Close()

	srv := &http.Server{
		Addr:              *addr,
		Handler:           api.NewServer(version, store).Router(),
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	logging.Info("server listening",
		zap.String("addr", *addr),
		zap.String("storage", cfg.Storage.Backend))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logging.Error("server error", zap.Error(err))
		os.Exit(1)
	}
}
