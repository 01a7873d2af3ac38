package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/d60-Lab/gin-blog/internal/model"
)

func setupDB(tb testing.TB) *gorm.DB {
	tb.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		tb.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("sql db: %v", err)
	}
	// :memory: 每个连接是独立的库
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&model.User{}, &model.Post{}); err != nil {
		tb.Fatalf("migrate: %v", err)
	}
	tb.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func newPost(title string, at time.Time) *model.Post {
	return &model.Post{ID: uuid.NewString(), Title: title, Content: title + " content", UserID: "u1", CreatedAt: at}
}

func TestUserRepository_AddAndLookup(t *testing.T) {
	ctx := context.Background()
	f := NewUnitOfWorkFactory(setupDB(t))

	uow := f.Begin()
	u := &model.User{ID: uuid.NewString(), Name: "Alice", Username: "alice", PasswordHash: "hash"}
	require.NoError(t, uow.Users().Add(ctx, u))
	require.NoError(t, uow.Commit(ctx))

	read := f.Begin()
	got, err := read.Users().GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "Alice", got.Name)

	byID, err := read.Users().GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "alice", byID.Username)

	missing, err := read.Users().GetByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepository_UsernameUnique(t *testing.T) {
	ctx := context.Background()
	f := NewUnitOfWorkFactory(setupDB(t))

	uow := f.Begin()
	require.NoError(t, uow.Users().Add(ctx, &model.User{ID: uuid.NewString(), Name: "A", Username: "dup", PasswordHash: "h"}))
	require.NoError(t, uow.Commit(ctx))

	uow = f.Begin()
	err := uow.Users().Add(ctx, &model.User{ID: uuid.NewString(), Name: "B", Username: "dup", PasswordHash: "h"})
	assert.ErrorIs(t, err, ErrDuplicateUsername)
	require.NoError(t, uow.Rollback())
}

func TestPostRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	f := NewUnitOfWorkFactory(setupDB(t))

	p := newPost("first", time.Now())
	uow := f.Begin()
	require.NoError(t, uow.Posts().Add(ctx, p))
	require.NoError(t, uow.Commit(ctx))

	uow = f.Begin()
	got, err := uow.Posts().GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "first", got.Title)

	got.Update("changed", "changed content")
	got.UserID = "someone-else"
	require.NoError(t, uow.Posts().Update(ctx, got))
	require.NoError(t, uow.Commit(ctx))

	uow = f.Begin()
	reread, err := uow.Posts().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "changed", reread.Title)
	assert.Equal(t, "changed content", reread.Content)
	assert.Equal(t, "u1", reread.UserID, "owner is never updated")

	require.NoError(t, uow.Posts().Delete(ctx, reread))
	require.NoError(t, uow.Commit(ctx))

	uow = f.Begin()
	gone, err := uow.Posts().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestPostRepository_ListOrderedByCreation(t *testing.T) {
	ctx := context.Background()
	f := NewUnitOfWorkFactory(setupDB(t))

	base := time.Now().Add(-time.Hour)
	uow := f.Begin()
	for i := 3; i >= 1; i-- {
		require.NoError(t, uow.Posts().Add(ctx, newPost(fmt.Sprintf("p%d", i), base.Add(time.Duration(i)*time.Minute))))
	}
	require.NoError(t, uow.Commit(ctx))

	posts, err := f.Begin().Posts().List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, []string{"p1", "p2", "p3"}, []string{posts[0].Title, posts[1].Title, posts[2].Title})

	n, err := f.Begin().Posts().Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
}

func TestPostRepository_ListEmpty(t *testing.T) {
	posts, err := NewUnitOfWorkFactory(setupDB(t)).Begin().Posts().List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)
}

func TestUnitOfWork_RollbackDiscardsStaged(t *testing.T) {
	ctx := context.Background()
	f := NewUnitOfWorkFactory(setupDB(t))

	uow := f.Begin()
	p := newPost("staged", time.Now())
	require.NoError(t, uow.Posts().Add(ctx, p))

	// 同一会话内可读到暂存的写入
	seen, err := uow.Posts().GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, seen)

	require.NoError(t, uow.Rollback())

	n, err := f.Begin().Posts().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestUnitOfWork_CommitWithoutChanges(t *testing.T) {
	uow := NewUnitOfWorkFactory(setupDB(t)).Begin()
	assert.NoError(t, uow.Commit(context.Background()))
	assert.NoError(t, uow.Rollback())
}

func TestUnitOfWork_CommitAfterCloseFails(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	f := NewUnitOfWorkFactory(db)

	uow := f.Begin()
	require.NoError(t, uow.Posts().Add(ctx, newPost("x", time.Now())))
	require.NoError(t, uow.Rollback())

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	uow = f.Begin()
	err = uow.Posts().Add(ctx, newPost("y", time.Now()))
	require.Error(t, err)
	assert.False(t, errors.Is(err, gorm.ErrRecordNotFound))
}
