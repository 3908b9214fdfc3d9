package main // Entry point package

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/streamvault/panel-api/internal/cache"
	"github.com/streamvault/panel-api/internal/config"
	"github.com/streamvault/panel-api/internal/database"
	"github.com/streamvault/panel-api/internal/handler"
	"github.com/streamvault/panel-api/internal/queue"
	"github.com/streamvault/panel-api/internal/repository"
	"github.com/streamvault/panel-api/internal/router"
	queue_publisher "github.com/streamvault/panel-api/internal/service"
	"github.com/streamvault/panel-api/internal/xtream"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	cacheCfg := config.LoadCacheConfig()
	rlCfg := config.LoadRateLimitConfig()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis only backs the rate limiter; nil means the limiter passes
	// everything through.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, rate limiting disabled")
	}

	// One cache instance for the whole process, torn down with it.
	memCache := cache.New(cacheCfg.MaxSize)

	admins := repository.NewAdminRepo(db)
	providers := repository.NewProviderRepo(db)
	users := repository.NewUserRepo(db)
	profiles := repository.NewProfileRepo(db)
	tokens := repository.NewTokenRepo(db)
	avatars := repository.NewAvatarRepo(db)
	highlights := repository.NewHighlightRepo(db)

	xtreamClient := xtream.NewClient(time.Duration(cfg.XtreamTimeoutSec) * time.Second)

	authHandler := handler.NewAuthHandler(cfg, admins, providers, users, profiles, tokens,
		xtreamClient, queue_publisher.PublishLogin)
	providerHandler := handler.NewProviderHandler(providers, memCache, cacheCfg)
	avatarHandler := handler.NewAvatarHandler(avatars, memCache, cacheCfg)
	highlightHandler := handler.NewHighlightHandler(highlights, memCache, cacheCfg)
	meHandler := handler.NewMeHandler(admins, providers, users)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, rlCfg, rdb)
	router.RegisterPublic(e, providerHandler, avatarHandler)
	router.RegisterProtected(e, meHandler, highlightHandler, cfg.JWTSecret)

	// Background consumer feeding logs/access.log from login events.
	go func() {
		if err := queue.StartLoginConsumer(); err != nil {
			log.Printf("login consumer stopped: %v", err)
		}
	}()

	// Opportunistic cache pruning; correctness never depends on it.
	go func() {
		for range time.Tick(5 * time.Minute) {
			memCache.Prune()
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
