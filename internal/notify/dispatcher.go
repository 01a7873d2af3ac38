package notify

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/d60-Lab/gin-blog/internal/model"
	"github.com/d60-Lab/gin-blog/pkg/logger"
)

// Dispatcher 本地异步投递：入队不阻塞调用方，worker 负责发布到 Broker
type Dispatcher struct {
	broker  Broker
	ch      chan Event
	timeout time.Duration

	delivered atomic.Int64
	dropped   atomic.Int64
	failed    atomic.Int64
}

func NewDispatcher(broker Broker, queueSize int, publishTimeout time.Duration) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 1024
	}
	if publishTimeout <= 0 {
		publishTimeout = 3 * time.Second
	}
	return &Dispatcher{broker: broker, ch: make(chan Event, queueSize), timeout: publishTimeout}
}

// Start 启动若干 worker；返回的停止函数会先排空队列
func (d *Dispatcher) Start(workers int) func(context.Context) error {
	if workers <= 0 {
		workers = 2
	}
	stopCh := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case ev := <-d.ch:
					d.deliver(ev)
				case <-stopCh:
					for {
						select {
						case ev := <-d.ch:
							d.deliver(ev)
						default:
							return
						}
					}
				}
			}
		}()
	}

	var once sync.Once
	return func(ctx context.Context) error {
		once.Do(func() { close(stopCh) })
		done := make(chan struct{})
		go func() { wg.Wait(); close(done) }()
		select {
		case <-done:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (d *Dispatcher) deliver(ev Event) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()
	if err := d.broker.Publish(ctx, ev); err != nil {
		d.failed.Add(1)
		logger.Warn("publish notification failed", zap.String("post", ev.PostID), zap.Error(err))
		return
	}
	d.delivered.Add(1)
}

// Enqueue 队列满时丢弃并记录
func (d *Dispatcher) Enqueue(ev Event) {
	select {
	case d.ch <- ev:
	default:
		d.dropped.Add(1)
		logger.Warn("notifier queue full, drop event", zap.String("post", ev.PostID))
	}
}

// NotifyNewPost 广播新帖标题与正文，不等待结果
func (d *Dispatcher) NotifyNewPost(post *model.Post) {
	d.Enqueue(PostCreated(post))
}

// Stats 投递计数快照
type Stats struct {
	Delivered int64
	Dropped   int64
	Failed    int64
	Queued    int
}

func (d *Dispatcher) Stats() Stats {
	return Stats{
		Delivered: d.delivered.Load(),
		Dropped:   d.dropped.Load(),
		Failed:    d.failed.Load(),
		Queued:    len(d.ch),
	}
}
