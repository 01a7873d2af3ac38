package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/d60-Lab/gin-blog/internal/model"
	"github.com/d60-Lab/gin-blog/internal/repository"
	"github.com/d60-Lab/gin-blog/pkg/outcome"
)

const msgPostNotFound = "Post not found."

// Notifier 新帖广播；尽力而为，调用方不等待也不关心结果
type Notifier interface {
	NotifyNewPost(post *model.Post)
}

type CreatePostInput struct {
	Title   string
	Content string
	UserID  string
}

type UpdatePostInput struct {
	ID      string
	Title   string
	Content string
}

// PostView 读接口返回的博文视图
type PostView struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewPostView(p *model.Post) PostView {
	return PostView{ID: p.ID, Title: p.Title, Content: p.Content, CreatedAt: p.CreatedAt}
}

// PostService 博文工作流
type PostService interface {
	Create(ctx context.Context, in CreatePostInput) outcome.Result[*model.Post]
	Update(ctx context.Context, in UpdatePostInput) outcome.Result[*model.Post]
	Delete(ctx context.Context, id string) outcome.Outcome
	// GetByID 找不到时结果仍然有效，值为 nil
	GetByID(ctx context.Context, id string) outcome.Result[*PostView]
	GetAll(ctx context.Context) outcome.Result[[]PostView]
}

type postService struct {
	uow      repository.UnitOfWorkFactory
	notifier Notifier
	now      func() time.Time
}

func NewPostService(uow repository.UnitOfWorkFactory, notifier Notifier) PostService {
	return &postService{uow: uow, notifier: notifier, now: time.Now}
}

func (s *postService) Create(ctx context.Context, in CreatePostInput) outcome.Result[*model.Post] {
	// 先在内存中构造，失败时也能带回尝试写入的实体
	post := &model.Post{
		ID:        uuid.NewString(),
		Title:     in.Title,
		Content:   in.Content,
		UserID:    in.UserID,
		CreatedAt: s.now(),
	}

	uow := s.uow.Begin()
	defer uow.Rollback()

	if err := uow.Posts().Add(ctx, post); err != nil {
		return outcome.Failed(outcome.Internal(err), post)
	}
	if err := uow.Commit(ctx); err != nil {
		return outcome.Failed(outcome.Internal(err), post)
	}

	// 只在提交成功后通知
	if s.notifier != nil {
		s.notifier.NotifyNewPost(post)
	}
	return outcome.Ok(post)
}

func (s *postService) Update(ctx context.Context, in UpdatePostInput) outcome.Result[*model.Post] {
	uow := s.uow.Begin()
	defer uow.Rollback()

	post, err := uow.Posts().GetByID(ctx, in.ID)
	if err != nil {
		return outcome.Failed[*model.Post](outcome.Internal(err), nil)
	}
	if post == nil {
		return outcome.Failed[*model.Post](outcome.Fail(outcome.CodeNotFound, msgPostNotFound), nil)
	}

	post.Update(in.Title, in.Content)
	if err := uow.Posts().Update(ctx, post); err != nil {
		return outcome.Failed(outcome.Internal(err), post)
	}
	if err := uow.Commit(ctx); err != nil {
		return outcome.Failed(outcome.Internal(err), post)
	}
	return outcome.Ok(post)
}

func (s *postService) Delete(ctx context.Context, id string) outcome.Outcome {
	uow := s.uow.Begin()
	defer uow.Rollback()

	post, err := uow.Posts().GetByID(ctx, id)
	if err != nil {
		return outcome.Internal(err)
	}
	if post == nil {
		return outcome.Fail(outcome.CodeNotFound, msgPostNotFound)
	}

	if err := uow.Posts().Delete(ctx, post); err != nil {
		return outcome.Internal(err)
	}
	if err := uow.Commit(ctx); err != nil {
		return outcome.Internal(err)
	}
	return outcome.Valid()
}

func (s *postService) GetByID(ctx context.Context, id string) outcome.Result[*PostView] {
	post, err := s.uow.Begin().Posts().GetByID(ctx, id)
	if err != nil {
		return outcome.Failed[*PostView](outcome.Internal(err), nil)
	}
	if post == nil {
		return outcome.Ok[*PostView](nil)
	}
	view := NewPostView(post)
	return outcome.Ok(&view)
}

func (s *postService) GetAll(ctx context.Context) outcome.Result[[]PostView] {
	posts, err := s.uow.Begin().Posts().List(ctx)
	if err != nil {
		return outcome.Failed[[]PostView](outcome.Internal(err), nil)
	}
	views := make([]PostView, 0, len(posts))
	for _, p := range posts {
		views = append(views, NewPostView(p))
	}
	return outcome.Ok(views)
}
