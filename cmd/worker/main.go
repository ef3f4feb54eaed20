package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	identitymysql "github.com/wyfcoding/atlasvision/internal/identity/infrastructure/persistence/mysql"
	inventoryapp "github.com/wyfcoding/atlasvision/internal/inventory/application"
	inventorymysql "github.com/wyfcoding/atlasvision/internal/inventory/infrastructure/persistence/mysql"
	scanapp "github.com/wyfcoding/atlasvision/internal/scan/application"
	"github.com/wyfcoding/atlasvision/internal/scan/infrastructure/client"
	"github.com/wyfcoding/atlasvision/internal/scan/infrastructure/persistence"
	scanmysql "github.com/wyfcoding/atlasvision/internal/scan/infrastructure/persistence/mysql"
	scanredis "github.com/wyfcoding/atlasvision/internal/scan/infrastructure/persistence/redis"
	"github.com/wyfcoding/atlasvision/internal/scan/infrastructure/storage"
	scanconsumer "github.com/wyfcoding/atlasvision/internal/scan/interfaces/consumer"
	"github.com/wyfcoding/atlasvision/pkg/cache"
	"github.com/wyfcoding/atlasvision/pkg/config"
	"github.com/wyfcoding/atlasvision/pkg/database"
	"github.com/wyfcoding/atlasvision/pkg/logging"
	"github.com/wyfcoding/atlasvision/pkg/messagequeue"
	"github.com/wyfcoding/atlasvision/pkg/metrics"
	"github.com/wyfcoding/atlasvision/pkg/middleware"
	"golang.org/x/sync/errgroup"
)

var configPath = flag.String("config", "configs/worker/config.toml", "config file path")

func main() {
	flag.Parse()

	// 1. Config
	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	// 2. Logger
	if err := logging.Init(logging.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		Output:     cfg.Logger.Output,
		FilePath:   cfg.Logger.FilePath,
		MaxSize:    cfg.Logger.MaxSize,
		MaxBackups: cfg.Logger.MaxBackups,
		MaxAge:     cfg.Logger.MaxAge,
		Compress:   cfg.Logger.Compress,
		WithCaller: cfg.Logger.WithCaller,
	}); err != nil {
		panic(fmt.Sprintf("failed to init logging: %v", err))
	}

	// 3. Metrics
	m := metrics.New(cfg.ServiceName)
	if err := m.Register(); err != nil {
		slog.Error("failed to register metrics", "error", err)
		os.Exit(1)
	}
	if cfg.Metrics.Enabled {
		if err := metrics.StartHTTPServer(cfg.Metrics.Port, cfg.Metrics.Path); err != nil {
			slog.Error("failed to start metrics server", "error", err)
			os.Exit(1)
		}
	}

	// 4. Database
	db, err := database.Init(database.Config{
		Driver:             cfg.Database.Driver,
		DSN:                cfg.Database.DSN,
		MaxOpenConns:       cfg.Database.MaxOpenConns,
		MaxIdleConns:       cfg.Database.MaxIdleConns,
		ConnMaxLifetime:    cfg.Database.ConnMaxLifetime,
		LogEnabled:         cfg.Database.LogEnabled,
		SlowQueryThreshold: cfg.Database.SlowQueryThreshold,
	})
	if err != nil {
		slog.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Auto Migrate
	if cfg.Environment == "dev" {
		if err := db.AutoMigrate(
			&scanmysql.ScanModel{},
			&inventorymysql.ProductModel{},
			&inventorymysql.PriceHistoryModel{},
			&inventorymysql.AlertModel{},
			&identitymysql.ShopModel{},
			&identitymysql.UserModel{},
		); err != nil {
			slog.Error("failed to migrate database", "error", err)
		}
	}

	// 5. Redis
	redisCache, err := cache.New(cache.Config{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		MaxPoolSize:  cfg.Redis.MaxPoolSize,
		ConnTimeout:  cfg.Redis.ConnTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		slog.Error("failed to connect redis", "error", err)
		os.Exit(1)
	}
	defer redisCache.Close()

	// 6. Object storage
	store, err := storage.New(context.Background(), storage.Config{
		Driver:          cfg.Storage.Driver,
		Bucket:          cfg.Storage.Bucket,
		Region:          cfg.Storage.Region,
		Endpoint:        cfg.Storage.Endpoint,
		ForcePathStyle:  cfg.Storage.ForcePathStyle,
		AccessKeyID:     cfg.Storage.AccessKeyID,
		SecretAccessKey: cfg.Storage.SecretAccessKey,
		RootDir:         cfg.Storage.RootDir,
	})
	if err != nil {
		slog.Error("failed to init object storage", "error", err)
		os.Exit(1)
	}

	// 7. Repository & Application
	scanMySQLRepo := scanmysql.NewScanRepository(db.DB)
	scanRedisRepo := scanredis.NewScanRedisRepository(redisCache, time.Duration(cfg.Redis.ScanCacheTTL)*time.Second)
	scanRepo := persistence.NewCompositeScanRepository(scanMySQLRepo, scanRedisRepo)

	inventoryRepo := inventorymysql.NewInventoryRepository(db.DB)

	provider := client.NewInferenceClient(client.Config{
		BaseURL: cfg.Inference.BaseURL,
		APIKey:  cfg.Inference.APIKey,
		Timeout: time.Duration(cfg.Inference.Timeout) * time.Second,
	})

	reconciler := inventoryapp.NewReconcileService(inventoryRepo, m, cfg.Pipeline.PriceAlertThreshold)
	processor := scanapp.NewScanProcessor(scanRepo, store, provider, reconciler, m, cfg.Inference.VQAQuestion)

	// 8. Kafka consumer
	consumer, err := messagequeue.NewConsumer(messagequeue.Config{
		Brokers:        cfg.Kafka.Brokers,
		GroupID:        cfg.Kafka.GroupID,
		SessionTimeout: cfg.Kafka.SessionTimeout,
	}, cfg.Kafka.ScanTopic)
	if err != nil {
		slog.Error("failed to create kafka consumer", "error", err)
		os.Exit(1)
	}

	eventHandler := scanconsumer.NewScanEventHandler(processor, cfg.Kafka.ScanTopic, logging.Get())

	// 9. HTTP Support for Probes
	gin.SetMode(gin.ReleaseMode)
	if cfg.Environment == "dev" {
		gin.SetMode(gin.DebugMode)
	}
	r := gin.New()
	r.Use(middleware.GinRecoveryMiddleware())

	sys := r.Group("/sys")
	{
		sys.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":  "UP",
				"service": cfg.ServiceName,
				"version": cfg.Version,
			})
		})
		sys.GET("/ready", func(c *gin.Context) {
			if err := db.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "NOT_READY", "error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, gin.H{"status": "READY"})
		})
	}

	// 10. Start
	g, ctx := errgroup.WithContext(context.Background())

	g.Go(func() error {
		slog.Info("scan consumer starting", "topic", cfg.Kafka.ScanTopic, "group_id", cfg.Kafka.GroupID)
		for {
			msg, err := consumer.ReadMessage(ctx)
			if err != nil {
				// 消费者关闭或上下文取消时结束循环
				if ctx.Err() != nil || errors.Is(err, io.EOF) {
					return nil
				}
				slog.Error("failed to read kafka message", "error", err)
				continue
			}
			if err := eventHandler.Handle(ctx, msg); err != nil {
				slog.Error("failed to handle scan event",
					"topic", msg.Topic,
					"key", msg.Key,
					"error", err,
				)
			}
		}
	})

	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: r,
	}

	g.Go(func() error {
		slog.Info("HTTP server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	// Graceful Shutdown
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-quit:
			slog.Info("shutting down worker...")
		case <-ctx.Done():
			slog.Info("context cancelled, shutting down...")
		}
		if err := consumer.Close(); err != nil {
			slog.Error("failed to close kafka consumer", "error", err)
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("worker exited with error", "error", err)
	}
}
