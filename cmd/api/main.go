package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/plateful/recipebook/config"
	"github.com/plateful/recipebook/internal/api"
	"github.com/plateful/recipebook/internal/database"
	"github.com/plateful/recipebook/internal/logger"
	"github.com/plateful/recipebook/internal/router"
	"github.com/plateful/recipebook/internal/server"
	"github.com/plateful/recipebook/internal/service"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	// A local .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	zlog, closeLog := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer closeLog()

	db, err := database.New(cfg)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := database.RunMigrations(db, cfg.DB.MigrationsDir); err != nil {
		zlog.Fatal("failed to run migrations", zap.Error(err))
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		zlog.Fatal("failed to connect to redis", zap.Error(err))
	}
	if redisClient == nil {
		zlog.Info("redis not configured, write rate limiting disabled")
	}

	recipes := service.NewRecipeService(db, zlog)
	recipeHandler := api.NewRecipeHandler(recipes, zlog)
	engine := router.Setup(recipeHandler, redisClient, cfg.Server.CORSOrigins, zlog)

	srv := server.New(cfg, engine, zlog)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			zlog.Fatal("server error", zap.Error(err))
		}
	case sig := <-quit:
		zlog.Info("received signal, shutting down", zap.String("signal", sig.String()))
	}

	if err := srv.Shutdown(context.Background()); err != nil {
		zlog.Error("server shutdown error", zap.Error(err))
	}
	zlog.Info("server stopped")
}
