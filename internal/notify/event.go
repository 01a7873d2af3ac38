// Package notify 把新帖通知从工作流解耦出去：
// 工作流只投递值类型的 Event，订阅者连接由 Broker 管理。
package notify

import (
	"context"
	"time"

	"github.com/d60-Lab/gin-blog/internal/model"
)

const EventPostCreated = "post_created"

// Event 新帖事件
type Event struct {
	Type      string    `json:"type"`
	PostID    string    `json:"post_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func PostCreated(p *model.Post) Event {
	return Event{
		Type:      EventPostCreated,
		PostID:    p.ID,
		Title:     p.Title,
		Content:   p.Content,
		CreatedAt: p.CreatedAt,
	}
}

// Broker 向当前所有订阅者广播；不保证送达，不持久化
type Broker interface {
	Publish(ctx context.Context, ev Event) error
	// Subscribe 返回的通道在 ctx 结束后关闭
	Subscribe(ctx context.Context) (<-chan Event, error)
}
