package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/d60-Lab/gin-blog/internal/model"
)

// PostRepository 博文存储
type PostRepository interface {
	Add(ctx context.Context, post *model.Post) error
	// GetByID 查询不到时返回 (nil, nil)
	GetByID(ctx context.Context, id string) (*model.Post, error)
	// List 按创建时间升序，时间相同按 id
	List(ctx context.Context) ([]*model.Post, error)
	Update(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, post *model.Post) error
	Count(ctx context.Context) (int64, error)
}

type postRepository struct{ s session }

func (r *postRepository) Add(ctx context.Context, post *model.Post) error {
	tx, err := r.s.writer(ctx)
	if err != nil {
		return err
	}
	if err := tx.Create(post).Error; err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*model.Post, error) {
	var p model.Post
	err := r.s.reader(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	return &p, nil
}

func (r *postRepository) List(ctx context.Context) ([]*model.Post, error) {
	posts := make([]*model.Post, 0)
	err := r.s.reader(ctx).
		Order("created_at ASC").
		Order("id ASC").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// Update 只写 title/content，user_id 不参与更新
func (r *postRepository) Update(ctx context.Context, post *model.Post) error {
	tx, err := r.s.writer(ctx)
	if err != nil {
		return err
	}
	post.UpdatedAt = time.Now()
	err = tx.Model(&model.Post{}).
		Where("id = ?", post.ID).
		Updates(map[string]any{
			"title":      post.Title,
			"content":    post.Content,
			"updated_at": post.UpdatedAt,
		}).Error
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	return nil
}

func (r *postRepository) Delete(ctx context.Context, post *model.Post) error {
	tx, err := r.s.writer(ctx)
	if err != nil {
		return err
	}
	if err := tx.Where("id = ?", post.ID).Delete(&model.Post{}).Error; err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

func (r *postRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.s.reader(ctx).Model(&model.Post{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return n, nil
}
