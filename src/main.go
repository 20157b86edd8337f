package main

import (
	"centsible-server/src/api"
	"centsible-server/src/config"
	"centsible-server/src/db"
	"context"
	"log"
	"net/http"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	cfg := config.Load()

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Connect to database
	pool, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	defer pool.Close()

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		logger.Fatal("database migration failed", zap.Error(err))
	}

	if err := db.InitCache(); err != nil {
		logger.Fatal("cache initialization failed", zap.Error(err))
	}

	// Router
	router := api.NewRouter(pool, logger, cfg)

	logger.Info("api server running",
		zap.String("port", cfg.Port),
		zap.Bool("demo_mode", cfg.DemoMode),
		zap.Bool("require_invite", cfg.RequireInvite))
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}
