package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/munihub/civic-portal/internal/config"
	"github.com/munihub/civic-portal/internal/database"
	"github.com/munihub/civic-portal/internal/handler"
	"github.com/munihub/civic-portal/internal/middleware"
	"github.com/munihub/civic-portal/internal/queue"
	qp "github.com/munihub/civic-portal/internal/queue_publisher"
	"github.com/munihub/civic-portal/internal/repository"
	"github.com/munihub/civic-portal/internal/router"
	"github.com/munihub/civic-portal/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: without it the limiter and response cache are
	// disabled and the portal keeps serving.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; rate limiting and response cache disabled")
	}

	// Repositories and services.
	runner := repository.NewRunner(db)
	items := repository.NewItemRepo(db)
	regs := repository.NewRegistrationRepo(db)
	intents := repository.NewIntentRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	ledger := service.NewCapacityLedger(regs)
	registrations := service.NewRegistrationService(runner, items, regs, ledger, qp.PublishRegistrationConfirmed)
	lifecycle := service.NewLifecycleService(runner, items, regs, qp.PublishItemCancelled)
	highlight := service.NewHighlightEnforcer(runner, items)
	content := service.NewContentService(runner, items, ledger)
	intentCounter := service.NewIntentCounter(items, intents)

	// Background consumers turn broker events into notification logs.
	go func() {
		if err := queue.StartRegistrationConsumer(); err != nil {
			log.Printf("registration consumer stopped: %v", err)
		}
	}()
	go func() {
		if err := queue.StartCancellationConsumer(); err != nil {
			log.Printf("cancellation consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true

	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	e.Use(limiter)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens), cfg.JWTSecret)
	router.RegisterPublic(e, handler.NewPublicHandler(content, intentCounter), cache)
	router.RegisterCitizen(e, handler.NewRegistrationHandler(registrations), handler.NewIntentHandler(intentCounter), cfg.JWTSecret)
	router.RegisterAdmin(e, handler.NewAdminItemHandler(content, lifecycle, highlight), cfg.JWTSecret)

	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
