package main

import (
	"context"
	"fmt"
	"log"

	"go.uber.org/zap"

	"zen/internal/auth"
	"zen/internal/config"
	"zen/internal/db"
	"zen/internal/handler"
	"zen/internal/router"
	"zen/internal/service"
	"zen/internal/store"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	st, err := openStore(context.Background(), cfg)
	if err != nil {
		logger.Fatal("open store", zap.String("backend", cfg.StoreBackend), zap.Error(err))
	}
	defer st.Close()

	gateway := auth.NewGateway(st, cfg.JWTSecret, cfg.TokenTTL)
	configService := service.NewConfigService(st, logger)
	sessionService := service.NewSessionService(st, logger)

	authHandler := handler.NewAuthHandler(gateway)
	configHandler := handler.NewConfigHandler(configService)
	sessionHandler := handler.NewSessionHandler(sessionService)

	engine := router.New(gateway, authHandler, configHandler, sessionHandler, cfg.CORSOrigins, logger)

	logger.Info("zen server listening",
		zap.String("port", cfg.Port),
		zap.String("store", cfg.StoreBackend),
	)
	if err := engine.Run(":" + cfg.Port); err != nil {
		logger.Fatal("run server", zap.Error(err))
	}
}

func openStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	switch cfg.StoreBackend {
	case "memory":
		return store.NewMemory(), nil
	case "file":
		return store.NewFile(cfg.StorePath)
	case "sqlite":
		database, err := db.OpenSQLite(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		if err := db.RunMigrations(database, cfg.MigrationsDir); err != nil {
			_ = database.Close()
			return nil, err
		}
		return store.NewSQLite(database), nil
	case "dynamo":
		return store.NewDynamo(ctx, cfg.DynamoTable)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
