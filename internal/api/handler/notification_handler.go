package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/gin-blog/pkg/logger"
	"github.com/d60-Lab/gin-blog/pkg/outcome"
)

const sseEventName = "ReceiveNotification"

// StreamNotifications 以 SSE 推送新帖通知
// @Summary 订阅新帖通知（SSE）
// @Tags 通知
// @Produce text/event-stream
// @Success 200 {object} notify.Event
// @Failure 503 {object} outcome.Notification
// @Router /api/v1/notifications/stream [get]
func (h *Handler) StreamNotifications(c *gin.Context) {
	ctx := c.Request.Context()
	events, err := h.broker.Subscribe(ctx)
	if err != nil {
		logger.Warn("subscribe notifications failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, outcome.Notification{
			Code:        outcome.Code(http.StatusServiceUnavailable),
			Description: "Notifications unavailable.",
		})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	heartbeat := time.NewTicker(h.heartbeat)
	defer heartbeat.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-h.closing:
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			c.SSEvent(sseEventName, ev)
			c.Writer.Flush()
		case <-heartbeat.C:
			c.SSEvent("ping", time.Now().Unix())
			c.Writer.Flush()
		}
	}
}

// Health 存活检查
// @Summary 健康检查
// @Tags 系统
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *Handler) Health(c *gin.Context) {
	if h.ping != nil {
		if err := h.ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
