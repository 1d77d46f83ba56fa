package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Rakhulsr/go-catalog/app/cmd"
	"github.com/Rakhulsr/go-catalog/app/configs"
	"github.com/Rakhulsr/go-catalog/app/routes"
	"github.com/Rakhulsr/go-catalog/app/services/storage"
	"github.com/Rakhulsr/go-catalog/app/utils/logger"
	"github.com/Rakhulsr/go-catalog/app/utils/renderer"
	"github.com/Rakhulsr/go-catalog/app/utils/sessions"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	env := configs.LoadEnv()

	logger.Init("go-catalog", env.IsDevelopment())
	logger.SetLevel(env.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if len(os.Args) > 1 {
		if err := cmd.RunCli(ctx, env, os.Args); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Command failed")
		}
		return
	}

	logger.Logger.Info().
		Str("environment", env.AppEnv).
		Str("db_driver", env.DBDriver).
		Str("storage_driver", env.StorageDriver).
		Msg("Starting catalog service")

	db, err := configs.OpenConnection(env)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	assets, err := storage.New(ctx, storage.Config{
		Driver:    env.StorageDriver,
		MediaRoot: env.MediaRoot,
		MediaURL:  env.MediaURL,
		S3Bucket:  env.S3Bucket,
		S3Region:  env.S3Region,
	})
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize asset store")
	}

	keys, err := configs.LoadSessionKeys(env)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to load session keys, run `generate-keys`")
	}
	csrfKey, err := configs.CSRFKey(env)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to load CSRF key")
	}

	secure := !env.IsDevelopment()
	sessionStore := sessions.NewCookieSessionStore(secure, keys.AuthKey, keys.EncKey)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(sqlDB, env.DBName),
	)

	deps := routes.Deps{
		DB:           db,
		Render:       renderer.New(renderer.Options{Directory: env.TemplateDir, IsDevelopment: env.IsDevelopment(), Assets: assets}),
		Assets:       assets,
		SessionStore: sessionStore,
		CSRFKey:      csrfKey,
		Secure:       secure,
		StaticDir:    env.StaticDir,
		Registry:     registry,
	}
	if env.StorageDriver == "" || env.StorageDriver == "local" {
		deps.MediaRoot = env.MediaRoot
		deps.MediaURL = env.MediaURL
	}

	server := &http.Server{
		Addr:              env.Port,
		Handler:           routes.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Logger.Info().Str("addr", server.Addr).Msg("HTTP server started")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	<-ctx.Done()
	logger.Logger.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error().Err(err).Msg("Graceful shutdown failed")
	}
}
