package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/d60-Lab/gin-blog/internal/model"
)

// ErrDuplicateUsername 用户名唯一约束冲突
var ErrDuplicateUsername = errors.New("username already taken")

// UserRepository 用户凭据存储；查询不到时返回 (nil, nil)
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	Add(ctx context.Context, user *model.User) error
}

type userRepository struct{ s session }

func (r *userRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	err := r.s.reader(ctx).Where("id = ?", id).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	err := r.s.reader(ctx).Where("username = ?", username).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return &u, nil
}

func (r *userRepository) Add(ctx context.Context, user *model.User) error {
	tx, err := r.s.writer(ctx)
	if err != nil {
		return err
	}
	if err := tx.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateUsername
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}
