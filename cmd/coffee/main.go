package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"trivia-coffee-backend/internal/config"
	"trivia-coffee-backend/internal/database"
	"trivia-coffee-backend/internal/logger"
	"trivia-coffee-backend/internal/observability"
	"trivia-coffee-backend/internal/server"
	"trivia-coffee-backend/internal/services"

	"github.com/gin-gonic/gin"
)

// @title           Coffee Shop API
// @version         1.0
// @description     Drink menu with role-gated management
// @host            localhost:5001
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter "Bearer {token}"

var allScopes = []string{"get:drinks-detail", "post:drinks", "patch:drinks", "delete:drinks"}

func main() {
	var issueFor string
	var scopes string
	var ttl time.Duration
	flag.StringVar(&issueFor, "issue-token", "", "print a signed dev token for this subject and exit (needs AUTH_HS256_SECRET)")
	flag.StringVar(&scopes, "scopes", strings.Join(allScopes, ","), "comma-separated permissions for -issue-token")
	flag.DurationVar(&ttl, "ttl", 24*time.Hour, "lifetime of the issued token")
	flag.Parse()

	cfg := config.Load("5001")

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	tokens, err := services.NewTokenService(services.TokenConfig{
		Issuer:       cfg.AuthIssuer,
		Audience:     cfg.AuthAudience,
		HS256Secret:  cfg.AuthHS256Secret,
		RSAPublicKey: cfg.AuthRSAPublicKey,
	})
	if err != nil {
		log.Fatal("token service init failed", "error", err)
	}

	if issueFor != "" {
		raw, err := tokens.Issue(issueFor, splitScopes(scopes), ttl)
		if err != nil {
			log.Fatal("issue token failed", "error", err)
		}
		fmt.Println(raw)
		return
	}

	if cfg.LogMode == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing := observability.InitTracing(ctx, log, cfg, "coffee")
	defer func() { _ = shutdownTracing(context.Background()) }()

	db, err := database.Connect(cfg, log)
	if err != nil {
		log.Fatal("database connect failed", "error", err)
	}
	if err := database.MigrateCoffee(db, cfg.ResetDrinks); err != nil {
		log.Fatal("migration failed", "error", err)
	}

	r := server.NewCoffeeRouter(services.NewDrinkService(db), tokens, log)
	if err := server.Run(ctx, ":"+cfg.ServerPort, r, log); err != nil {
		log.Fatal("server stopped", "error", err)
	}
}

func splitScopes(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
