package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/gin-blog/config"
	"github.com/d60-Lab/gin-blog/internal/notify"
	"github.com/d60-Lab/gin-blog/pkg/logger"
)

const (
	minBackoff = 500 * time.Millisecond
	maxBackoff = 30 * time.Second
)

// 订阅 Redis 新帖频道并打印事件，断线后指数退避重连
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

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer client.Close()

	broker := notify.NewRedisBroker(client, cfg.Redis.Channel)
	listen(ctx, broker)
	logger.Info("listener stopped")
}

// newBackOff 指数退避，间隔上限 maxBackoff
func newBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = minBackoff
	b.MaxInterval = maxBackoff
	return b
}

func listen(ctx context.Context, broker notify.Broker) {
	b := newBackOff()
	for ctx.Err() == nil {
		events, err := broker.Subscribe(ctx)
		if err != nil {
			wait := b.NextBackOff()
			logger.Warn("subscribe failed, retrying", zap.Error(err), zap.Duration("backoff", wait))
			select {
			case <-ctx.Done():
				return
			case <-time.After(wait):
			}
			continue
		}

		logger.Info("listening for new posts")
		b.Reset()
		for ev := range events {
			logger.Info("post created",
				zap.String("id", ev.PostID),
				zap.String("title", ev.Title),
				zap.String("content", ev.Content),
				zap.Time("created_at", ev.CreatedAt),
			)
		}
	}
}
