package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/nikolayk812/cart-manager/internal/catalogue"
	"github.com/nikolayk812/cart-manager/internal/config"
	carthttp "github.com/nikolayk812/cart-manager/internal/http"
	"github.com/nikolayk812/cart-manager/internal/logger"
	"github.com/nikolayk812/cart-manager/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "cart-manager: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:      cfg.Logger.Level,
		Encoding:   cfg.Logger.Encoding,
		TimeFormat: cfg.Logger.TimeFormat,
	})
	if err != nil {
		return fmt.Errorf("logger.New: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	carts, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("openStore: %w", err)
	}
	defer closeStore()

	catalogueClient, err := catalogue.New(catalogue.Config{
		BaseURL:        cfg.Catalogue.BaseURL,
		Timeout:        cfg.Catalogue.Timeout,
		BreakerTimeout: cfg.Catalogue.BreakerTimeout,
		MaxFailures:    cfg.Catalogue.MaxFailures,
	}, nil, log.With("component", "catalogue"))
	if err != nil {
		return fmt.Errorf("catalogue.New: %w", err)
	}

	manager := service.NewCartManager(carts, catalogueClient, log.With("component", "cart_manager"))
	handler := carthttp.NewCartHandler(manager, cfg.HTTP.RequestTimeout, log)

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      carthttp.NewRouter(handler, log.With("component", "http")),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Infof("cart-manager (%s) listening on %s, store %s", cfg.Env, cfg.HTTP.Addr, cfg.Store.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("srv.ListenAndServe: %w", err)
	case <-ctx.Done():
	}

	log.Infof("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("srv.Shutdown: %w", err)
	}

	return nil
}
