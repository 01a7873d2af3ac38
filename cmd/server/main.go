package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/gin-blog/config"
	_ "github.com/d60-Lab/gin-blog/docs"
	"github.com/d60-Lab/gin-blog/internal/api/handler"
	"github.com/d60-Lab/gin-blog/internal/api/router"
	"github.com/d60-Lab/gin-blog/internal/notify"
	"github.com/d60-Lab/gin-blog/internal/repository"
	"github.com/d60-Lab/gin-blog/internal/service"
	"github.com/d60-Lab/gin-blog/pkg/database"
	"github.com/d60-Lab/gin-blog/pkg/logger"
	"github.com/d60-Lab/gin-blog/pkg/password"
	"github.com/d60-Lab/gin-blog/pkg/tracing"
)

// @title           Gin Blog API
// @version         1.0
// @description     博文发布服务：注册登录、博文增删改查、新帖实时通知
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Encoding); err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
	logger.Info("server stopped")
}

func run(ctx context.Context, cfg *config.Config) error {
	gin.SetMode(cfg.Server.Mode)

	sentryEnabled := cfg.Sentry.DSN != ""
	if sentryEnabled {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
		}); err != nil {
			return fmt.Errorf("init sentry: %w", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	shutdownTracing, err := tracing.Init(ctx, cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			logger.Warn("tracing shutdown", zap.Error(err))
		}
	}()

	db, err := database.InitDB(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Warn("close database", zap.Error(err))
		}
	}()

	broker, closeBroker, err := newBroker(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeBroker()

	dispatcher := notify.NewDispatcher(broker, cfg.Notifier.QueueSize, cfg.Notifier.PublishTimeout)
	stopDispatcher := dispatcher.Start(cfg.Notifier.Workers)

	uowf := repository.NewUnitOfWorkFactory(db)
	hasher := password.NewHasher(0)
	tokens := service.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expire)
	authService := service.NewAuthService(uowf, hasher, tokens)
	postService := service.NewPostService(uowf, dispatcher)

	if cfg.Seed.Enabled {
		seeded, err := service.SeedPosts(ctx, uowf, hasher)
		if err != nil {
			return fmt.Errorf("seed posts: %w", err)
		}
		if seeded {
			logger.Info("seeded initial post")
		}
	}

	ping := func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
	h := handler.NewHandler(authService, postService, broker, ping)
	engine := router.Setup(h, tokens, router.Options{
		ServiceName:    cfg.Tracing.ServiceName,
		RequestTimeout: cfg.Server.RequestTimeout,
		AuthRPS:        cfg.RateLimit.AuthRPS,
		AuthBurst:      cfg.RateLimit.AuthBurst,
		Tracing:        cfg.Tracing.Enabled,
		Sentry:         sentryEnabled,
		Swagger:        cfg.Server.Mode != gin.ReleaseMode,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	srv.RegisterOnShutdown(h.Close)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down server")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("server shutdown", zap.Error(err))
	}
	// 先停服务器再排空通知队列，保证已提交的新帖都能投递
	if err := stopDispatcher(shutdownCtx); err != nil {
		logger.Warn("notifier drain", zap.Error(err))
	}
	st := dispatcher.Stats()
	logger.Info("notifier stopped",
		zap.Int64("delivered", st.Delivered),
		zap.Int64("dropped", st.Dropped),
		zap.Int64("failed", st.Failed),
	)
	return nil
}

// newBroker 按配置选择进程内或 Redis 广播
func newBroker(ctx context.Context, cfg *config.Config) (notify.Broker, func(), error) {
	if cfg.Notifier.Broker != "redis" {
		return notify.NewHub(cfg.Notifier.QueueSize), func() {}, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("ping redis: %w", err)
	}
	closeFn := func() {
		if err := client.Close(); err != nil {
			logger.Warn("close redis", zap.Error(err))
		}
	}
	return notify.NewRedisBroker(client, cfg.Redis.Channel), closeFn, nil
}
