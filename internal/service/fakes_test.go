package service

import (
	"context"
	"sort"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/d60-Lab/gin-blog/internal/model"
	"github.com/d60-Lab/gin-blog/internal/repository"
)

// memStore 内存版存储，暂存的变更在 Commit 时才生效
type memStore struct {
	mu    sync.Mutex
	users map[string]model.User
	posts map[string]model.Post

	errLookup error
	errAdd    error
	errCommit error

	commits   int
	mutations int
}

func newMemStore() *memStore {
	return &memStore{users: map[string]model.User{}, posts: map[string]model.Post{}}
}

func (s *memStore) Begin() repository.UnitOfWork { return &memUoW{s: s} }

func (s *memStore) postCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.posts)
}

func (s *memStore) usersNamed(username string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, u := range s.users {
		if u.Username == username {
			n++
		}
	}
	return n
}

type memUoW struct {
	s       *memStore
	pending []func()
}

func (u *memUoW) Users() repository.UserRepository { return memUsers{u} }
func (u *memUoW) Posts() repository.PostRepository { return memPosts{u} }

func (u *memUoW) stage(fn func()) error {
	if u.s.errAdd != nil {
		return u.s.errAdd
	}
	u.pending = append(u.pending, fn)
	return nil
}

func (u *memUoW) Commit(context.Context) error {
	if u.s.errCommit != nil {
		u.pending = nil
		return u.s.errCommit
	}
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	for _, fn := range u.pending {
		fn()
		u.s.mutations++
	}
	u.pending = nil
	u.s.commits++
	return nil
}

func (u *memUoW) Rollback() error {
	u.pending = nil
	return nil
}

type memUsers struct{ u *memUoW }

func (r memUsers) GetByID(_ context.Context, id string) (*model.User, error) {
	r.u.s.mu.Lock()
	defer r.u.s.mu.Unlock()
	if r.u.s.errLookup != nil {
		return nil, r.u.s.errLookup
	}
	if v, ok := r.u.s.users[id]; ok {
		return &v, nil
	}
	return nil, nil
}

func (r memUsers) GetByUsername(_ context.Context, username string) (*model.User, error) {
	r.u.s.mu.Lock()
	defer r.u.s.mu.Unlock()
	if r.u.s.errLookup != nil {
		return nil, r.u.s.errLookup
	}
	for _, v := range r.u.s.users {
		if v.Username == username {
			v := v
			return &v, nil
		}
	}
	return nil, nil
}

func (r memUsers) Add(_ context.Context, user *model.User) error {
	cp := *user
	return r.u.stage(func() { r.u.s.users[cp.ID] = cp })
}

type memPosts struct{ u *memUoW }

func (r memPosts) Add(_ context.Context, post *model.Post) error {
	cp := *post
	return r.u.stage(func() { r.u.s.posts[cp.ID] = cp })
}

func (r memPosts) GetByID(_ context.Context, id string) (*model.Post, error) {
	r.u.s.mu.Lock()
	defer r.u.s.mu.Unlock()
	if r.u.s.errLookup != nil {
		return nil, r.u.s.errLookup
	}
	if v, ok := r.u.s.posts[id]; ok {
		return &v, nil
	}
	return nil, nil
}

func (r memPosts) List(context.Context) ([]*model.Post, error) {
	r.u.s.mu.Lock()
	defer r.u.s.mu.Unlock()
	if r.u.s.errLookup != nil {
		return nil, r.u.s.errLookup
	}
	out := make([]*model.Post, 0, len(r.u.s.posts))
	for _, p := range r.u.s.posts {
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r memPosts) Update(_ context.Context, post *model.Post) error {
	cp := *post
	return r.u.stage(func() {
		old := r.u.s.posts[cp.ID]
		old.Title, old.Content = cp.Title, cp.Content
		r.u.s.posts[cp.ID] = old
	})
}

func (r memPosts) Delete(_ context.Context, post *model.Post) error {
	id := post.ID
	return r.u.stage(func() { delete(r.u.s.posts, id) })
}

func (r memPosts) Count(context.Context) (int64, error) {
	r.u.s.mu.Lock()
	defer r.u.s.mu.Unlock()
	return int64(len(r.u.s.posts)), nil
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) NotifyNewPost(post *model.Post) { m.Called(post) }
