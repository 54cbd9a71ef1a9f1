// Package main, kushauth servisinin giriş noktasıdır.
//
// Bu dosyanın görevi: CLI + Dependency Injection "wire-up":
//  1. Config'i yükle, logger'ı kur
//  2. Database'i aç, migration'ları uygula
//  3. Repository'leri oluştur
//  4. Service'leri oluştur (repository'ler + hasher + token service)
//  5. Handler'ları oluştur
//  6. HTTP router'ı kur, middleware'ları bağla, CORS
//  7. HTTP Server'ı başlat, graceful shutdown
//
// Global değişken YOK: her şey runServe içinde oluşturulup birbirine bağlanıyor.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/akinalp/kushauth/config"
	"github.com/akinalp/kushauth/pkg/logger"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var log = logrus.WithField("component", "main")

func main() {
	if err := execute(context.Background(), newRootCommand(), os.Args[1:]); err != nil {
		os.Exit(1)
	}
}

// execute, komutu çalıştırır. Root'ta SilenceErrors açık: komut hatası
// cobra tarafından yazılmaz, tek yerde burada loglanır.
func execute(ctx context.Context, root *cobra.Command, args []string) error {
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		log.WithError(err).Error("command failed")
		return err
	}
	return nil
}

// newRootCommand, "kushauth" root komutu. Alt komut verilmezse serve çalışır.
func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "kushauth",
		Short:         "Credential authentication service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	root.AddCommand(newServeCommand(), newMigrateCommand())
	return root
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := openDatabase(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			defer db.Close()

			log.WithField("driver", db.Driver).Info("migrations up to date")
			return nil
		},
	}
}

// loadConfig, config'i yükler ve logger'ı config'e göre kurar.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if _, err := logger.Setup(cfg.Log.Level, cfg.Log.Format); err != nil {
		return nil, fmt.Errorf("failed to configure logger: %w", err)
	}

	return cfg, nil
}

func runServe(ctx context.Context) error {
	started := time.Now()

	// ─── 1. Config ───
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log.WithField("port", cfg.Server.Port).Info("config loaded")

	// ─── 2. Database ───
	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	// ─── 3. Repository Layer ───
	repos := initRepositories(db)

	// ─── 4. Service Layer ───
	svcs, err := initServices(repos, cfg)
	if err != nil {
		return err
	}

	// ─── 5. Rate limiter ───
	limiter, closeLimiter, err := initLimiter(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeLimiter()

	// ─── 6. Handler + Router ───
	h := initHandlers(svcs, started)
	handler := initRoutes(h, svcs, limiter, cfg)

	// ─── 7. HTTP Server ───
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ─── Graceful Shutdown ───
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	serveErr := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.Server.Addr()).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-done:
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}
	log.Info("shutting down...")

	// Yeni request kabul etmeyi durdurur, mevcut request'lerin bitmesini bekler (5sn timeout).
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}

	log.Info("server stopped gracefully")
	return nil
}
