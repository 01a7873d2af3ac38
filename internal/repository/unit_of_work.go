package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// UnitOfWork 一次工作流调用内共享的会话：
// 写操作暂存在事务中，只有 Commit 之后才持久化。
type UnitOfWork interface {
	Users() UserRepository
	Posts() PostRepository
	Commit(ctx context.Context) error
	// Rollback 丢弃未提交的变更；没有待提交变更时为空操作
	Rollback() error
}

// UnitOfWorkFactory 为每次请求开启新的 UnitOfWork
type UnitOfWorkFactory interface {
	Begin() UnitOfWork
}

// session 仓储访问数据库的入口
type session interface {
	reader(ctx context.Context) *gorm.DB
	writer(ctx context.Context) (*gorm.DB, error)
}

type unitOfWorkFactory struct{ db *gorm.DB }

func NewUnitOfWorkFactory(db *gorm.DB) UnitOfWorkFactory { return &unitOfWorkFactory{db: db} }

func (f *unitOfWorkFactory) Begin() UnitOfWork {
	u := &gormUnitOfWork{db: f.db}
	u.users = &userRepository{s: u}
	u.posts = &postRepository{s: u}
	return u
}

type gormUnitOfWork struct {
	db    *gorm.DB
	tx    *gorm.DB
	users *userRepository
	posts *postRepository
}

func (u *gormUnitOfWork) Users() UserRepository { return u.users }
func (u *gormUnitOfWork) Posts() PostRepository { return u.posts }

// 有未提交事务时读也走事务，保证读到自己的写入
func (u *gormUnitOfWork) reader(ctx context.Context) *gorm.DB {
	if u.tx != nil {
		return u.tx.WithContext(ctx)
	}
	return u.db.WithContext(ctx)
}

func (u *gormUnitOfWork) writer(ctx context.Context) (*gorm.DB, error) {
	if u.tx == nil {
		tx := u.db.WithContext(ctx).Begin()
		if tx.Error != nil {
			return nil, fmt.Errorf("begin transaction: %w", tx.Error)
		}
		u.tx = tx
	}
	return u.tx.WithContext(ctx), nil
}

func (u *gormUnitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	tx := u.tx
	u.tx = nil
	if err := tx.WithContext(ctx).Commit().Error; err != nil {
		_ = tx.Rollback().Error
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (u *gormUnitOfWork) Rollback() error {
	if u.tx == nil {
		return nil
	}
	tx := u.tx
	u.tx = nil
	return tx.Rollback().Error
}
