package handler

import (
	"context"
	"sync"
	"time"

	"github.com/d60-Lab/gin-blog/internal/notify"
	"github.com/d60-Lab/gin-blog/internal/service"
)

// Pinger 健康检查依赖
type Pinger func(ctx context.Context) error

// Handler 聚合所有 HTTP 处理器
type Handler struct {
	authService service.AuthService
	postService service.PostService
	broker      notify.Broker
	ping        Pinger
	heartbeat   time.Duration

	closing   chan struct{}
	closeOnce sync.Once
}

func NewHandler(authService service.AuthService, postService service.PostService, broker notify.Broker, ping Pinger) *Handler {
	return &Handler{
		authService: authService,
		postService: postService,
		broker:      broker,
		ping:        ping,
		heartbeat:   25 * time.Second,
		closing:     make(chan struct{}),
	}
}

// Close 结束所有 SSE 长连接，配合 http.Server.RegisterOnShutdown 使用
func (h *Handler) Close() {
	h.closeOnce.Do(func() { close(h.closing) })
}
