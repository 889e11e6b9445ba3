package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskmate/web-services/handlers"
	"github.com/taskmate/web-services/internal/backend"
	"github.com/taskmate/web-services/internal/config"
	"github.com/taskmate/web-services/internal/database"
	"github.com/taskmate/web-services/internal/drafts"
	"github.com/taskmate/web-services/internal/session"
	"github.com/taskmate/web-services/internal/storage"
	"github.com/taskmate/web-services/pkg/logger"
	"github.com/taskmate/web-services/pkg/metrics"
	"github.com/taskmate/web-services/pkg/middleware"
)

var startTime = time.Now()

// Admin console service. Serves the operator panel and holds the single
// console session; the marketing site runs as a separate binary (cmd/site).
func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: backend=%s mongo=%v redis=%v minio=%v",
		cfg.Backend.BaseURL, cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.MinIO.Endpoint != "")

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	ctx := context.Background()

	// Redis is optional: when reachable it backs the session store and the
	// login rate limiter for multi-replica deployments.
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warnf("redis unreachable (%s:%s), continuing without it: %v", cfg.Redis.Host, cfg.Redis.Port, err)
			redisClient = nil
		} else {
			logger.Infof("connected to redis at %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	// MongoDB is optional too; retry with backoff to tolerate startup races.
	var mongoClient *mongo.Client
	if cfg.MongoDB.URI != "" {
		const maxAttempts = 5
		backoff := time.Second
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			mongoClient, err = database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
			if err == nil {
				break
			}
			logger.Warnf("attempt %d/%d: mongodb connect failed: %v", attempt, maxAttempts, err)
			if attempt < maxAttempts {
				time.Sleep(backoff)
				backoff *= 2
			}
		}
		if mongoClient != nil {
			defer func() { _ = mongoClient.Disconnect(ctx) }()
		}
	}

	// Session store preference: Redis, then Mongo, then the local file.
	var store session.Store
	switch {
	case redisClient != nil:
		store = session.NewRedisStore(redisClient, "panel:session")
		logger.Infof("session store: redis")
	case mongoClient != nil:
		col := mongoClient.Database(cfg.MongoDB.Database).Collection("panel_sessions")
		store = session.NewMongoStore(col)
		logger.Infof("session store: mongodb")
	default:
		store = session.NewFileStore(cfg.Session.StorePath)
		logger.Infof("session store: file (%s)", cfg.Session.StorePath)
	}

	api := backend.New(cfg.Backend.BaseURL, cfg.Backend.Timeout)
	mgr := session.NewManager(session.ManagerOptions{
		API:        api,
		Store:      store,
		Production: cfg.IsProduction(),
		DevTTL:     cfg.Session.DevTTL,
		DevSecret:  cfg.Session.DevSecret,
	})
	api.WithTokenSource(mgr)
	mgr.Rehydrate()

	// Drafts: Mongo-backed when available so they survive restarts.
	var draftRepo drafts.Repository
	if mongoClient != nil {
		draftRepo = drafts.NewMongoRepo(mongoClient.Database(cfg.MongoDB.Database).Collection("blog_drafts"))
	} else {
		draftRepo = drafts.NewMemoryRepo()
	}

	var images *storage.ImageStore
	if cfg.MinIO.Endpoint != "" {
		images, err = storage.NewImageStore(&cfg.MinIO)
		if err != nil {
			logger.Warnf("image store unavailable, blog covers disabled: %v", err)
			images = nil
		}
	}

	var loginLimiter gin.HandlerFunc
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			loginLimiter = middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win)
		} else {
			loginLimiter = middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		}
	}

	console := handlers.NewConsole(mgr, api, draftRepo, images, cfg.IsProduction())
	console.Register(r, loginLimiter)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})
	r.GET("/ready", func(c *gin.Context) {
		deps := gin.H{
			"redis": redisClient != nil || cfg.Redis.Host == "",
			"mongo": mongoClient != nil || cfg.MongoDB.URI == "",
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": deps, "uptime": time.Since(startTime).String()})
	})

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("starting admin console on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
