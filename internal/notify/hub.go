package notify

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/d60-Lab/gin-blog/pkg/logger"
)

// Hub 进程内广播，单实例部署使用
type Hub struct {
	mu     sync.RWMutex
	subs   map[chan Event]struct{}
	buffer int
}

func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = 16
	}
	return &Hub{subs: make(map[chan Event]struct{}), buffer: buffer}
}

// Publish 非阻塞：慢订阅者丢消息
func (h *Hub) Publish(_ context.Context, ev Event) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs {
		select {
		case ch <- ev:
		default:
			logger.Debug("hub subscriber lagging, drop event", zap.String("post", ev.PostID))
		}
	}
	return nil
}

func (h *Hub) Subscribe(ctx context.Context) (<-chan Event, error) {
	ch := make(chan Event, h.buffer)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.mu.Lock()
		delete(h.subs, ch)
		h.mu.Unlock()
		close(ch)
	}()
	return ch, nil
}

// Subscribers 当前订阅数（采样值）
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
