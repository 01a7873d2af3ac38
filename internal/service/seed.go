package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/d60-Lab/gin-blog/internal/model"
	"github.com/d60-Lab/gin-blog/internal/repository"
)

const seedUsername = "blog-seed"

// SeedPosts 博文表为空时写入一篇示例博文，归属一个无法登录的种子用户
func SeedPosts(ctx context.Context, uowf repository.UnitOfWorkFactory, hasher PasswordHasher) (bool, error) {
	uow := uowf.Begin()
	defer uow.Rollback()

	n, err := uow.Posts().Count(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	owner, err := uow.Users().GetByUsername(ctx, seedUsername)
	if err != nil {
		return false, err
	}
	if owner == nil {
		hash, err := hasher.Hash(uuid.NewString())
		if err != nil {
			return false, err
		}
		owner = &model.User{ID: uuid.NewString(), Name: "Seed", Username: seedUsername, PasswordHash: hash}
		if err := uow.Users().Add(ctx, owner); err != nil {
			return false, err
		}
	}

	post := &model.Post{
		ID:      uuid.NewString(),
		Title:   "Post test 1",
		Content: "Post test description 1",
		UserID:  owner.ID,
	}
	if err := uow.Posts().Add(ctx, post); err != nil {
		return false, err
	}
	if err := uow.Commit(ctx); err != nil {
		return false, fmt.Errorf("seed posts: %w", err)
	}
	return true, nil
}
