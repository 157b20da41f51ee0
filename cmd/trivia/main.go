package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"trivia-coffee-backend/internal/config"
	"trivia-coffee-backend/internal/database"
	"trivia-coffee-backend/internal/logger"
	"trivia-coffee-backend/internal/observability"
	"trivia-coffee-backend/internal/server"
	"trivia-coffee-backend/internal/services"

	"github.com/gin-gonic/gin"
)

// @title           Trivia API
// @version         1.0
// @description     Trivia questions, categories and quiz play
// @host            localhost:5000
// @BasePath        /

func main() {
	cfg := config.Load("5000")

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	if cfg.LogMode == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing := observability.InitTracing(ctx, log, cfg, "trivia")
	defer func() { _ = shutdownTracing(context.Background()) }()

	db, err := database.Connect(cfg, log)
	if err != nil {
		log.Fatal("database connect failed", "error", err)
	}
	if err := database.MigrateTrivia(db); err != nil {
		log.Fatal("migration failed", "error", err)
	}
	if cfg.SeedCategories {
		if err := database.SeedCategories(db); err != nil {
			log.Fatal("category seed failed", "error", err)
		}
	}

	r := server.NewTriviaRouter(services.NewTriviaService(db), log)
	if err := server.Run(ctx, ":"+cfg.ServerPort, r, log); err != nil {
		log.Fatal("server stopped", "error", err)
	}
}
