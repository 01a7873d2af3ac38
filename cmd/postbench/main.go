package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/d60-Lab/gin-blog/config"
	"github.com/d60-Lab/gin-blog/internal/notify"
	"github.com/d60-Lab/gin-blog/internal/repository"
	"github.com/d60-Lab/gin-blog/internal/service"
	"github.com/d60-Lab/gin-blog/pkg/database"
	"github.com/d60-Lab/gin-blog/pkg/password"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func envInt(key string, def int) int {
	if s := os.Getenv(key); s != "" {
		if v, e := strconv.Atoi(s); e == nil && v > 0 {
			return v
		}
	}
	return def
}

func pct(vs []time.Duration, p float64) time.Duration {
	if len(vs) == 0 {
		return 0
	}
	xs := append([]time.Duration(nil), vs...)
	sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
	k := int(math.Ceil(p*float64(len(xs)))) - 1
	if k < 0 {
		k = 0
	}
	if k >= len(xs) {
		k = len(xs) - 1
	}
	return xs[k]
}

func avg(vs []time.Duration) time.Duration {
	if len(vs) == 0 {
		return 0
	}
	var sum time.Duration
	for _, d := range vs {
		sum += d
	}
	return sum / time.Duration(len(vs))
}

// 压测发帖事务耗时、通知到达耗时与全量列表读取耗时
func main() {
	cfg := must(config.Load())
	db := must(database.InitDB(cfg))
	defer database.Close(db)

	POSTS := envInt("POSTS", 200)
	WORKERS := envInt("WORKERS", cfg.Notifier.Workers)
	READS := envInt("READS", 50)

	hub := notify.NewHub(POSTS)
	dispatcher := notify.NewDispatcher(hub, POSTS, cfg.Notifier.PublishTimeout)
	stop := dispatcher.Start(WORKERS)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := must(hub.Subscribe(ctx))

	uowf := repository.NewUnitOfWorkFactory(db)
	tokens := service.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expire)
	auth := service.NewAuthService(uowf, password.NewHasher(0), tokens)
	posts := service.NewPostService(uowf, dispatcher)

	username := "bench-" + uuid.NewString()[:8]
	if res := auth.Register(ctx, service.RegisterInput{Name: "bench", Username: username, Password: "bench"}); !res.IsValid() {
		panic(fmt.Sprint(res.Outcome().Notifications()))
	}
	token, ok := auth.Login(ctx, service.LoginInput{Username: username, Password: "bench"}).Value()
	if !ok {
		panic("login failed")
	}
	claims := must(tokens.Parse(token))

	sent := make(map[string]time.Time, POSTS)
	writes := make([]time.Duration, 0, POSTS)
	for i := 0; i < POSTS; i++ {
		st := time.Now()
		res := posts.Create(ctx, service.CreatePostInput{
			Title:   fmt.Sprintf("bench %d", i),
			Content: "hello",
			UserID:  claims.UserID(),
		})
		post, ok := res.Value()
		if !ok {
			panic(fmt.Sprint(res.Outcome().Notifications()))
		}
		writes = append(writes, time.Since(st))
		sent[post.ID] = st
	}

	land := make([]time.Duration, 0, POSTS)
	timeout := time.After(time.Minute)
collect:
	for len(land) < POSTS {
		select {
		case ev := <-events:
			if st, ok := sent[ev.PostID]; ok {
				land = append(land, time.Since(st))
			}
		case <-timeout:
			fmt.Printf("timeout while waiting for notifications: got=%d want=%d\n", len(land), POSTS)
			break collect
		}
	}
	_ = stop(context.Background())

	reads := make([]time.Duration, 0, READS)
	var rows int
	for i := 0; i < READS; i++ {
		st := time.Now()
		views, ok := posts.GetAll(ctx).Value()
		if !ok {
			panic("list posts failed")
		}
		reads = append(reads, time.Since(st))
		rows = len(views)
	}

	st := dispatcher.Stats()
	fmt.Printf("POSTS=%d WORKERS=%d READS=%d\n", POSTS, WORKERS, READS)
	fmt.Printf("Create tx latency: avg=%v p95=%v p99=%v\n", avg(writes), pct(writes, 0.95), pct(writes, 0.99))
	fmt.Printf("Notification landing: samples=%d avg=%v p95=%v p99=%v dropped=%d failed=%d\n",
		len(land), avg(land), pct(land, 0.95), pct(land, 0.99), st.Dropped, st.Failed)
	fmt.Printf("List all (rows=%d): avg=%v p95=%v p99=%v\n", rows, avg(reads), pct(reads, 0.95), pct(reads, 0.99))
}
