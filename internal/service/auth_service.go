package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/d60-Lab/gin-blog/internal/model"
	"github.com/d60-Lab/gin-blog/internal/repository"
	"github.com/d60-Lab/gin-blog/pkg/outcome"
)

const (
	msgUserExists         = "User already exists."
	msgInvalidCredentials = "Invalid credentials."
)

type RegisterInput struct {
	Name     string
	Username string
	Password string
}

type LoginInput struct {
	Username string
	Password string
}

// PasswordHasher 单向哈希；Verify 不匹配时返回 false, nil
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(hash, plain string) (bool, error)
}

// AuthService 注册与登录，成功时返回令牌
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) outcome.Result[string]
	Login(ctx context.Context, in LoginInput) outcome.Result[string]
}

type authService struct {
	uow    repository.UnitOfWorkFactory
	hasher PasswordHasher
	tokens TokenIssuer
}

func NewAuthService(uow repository.UnitOfWorkFactory, hasher PasswordHasher, tokens TokenIssuer) AuthService {
	return &authService{uow: uow, hasher: hasher, tokens: tokens}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) outcome.Result[string] {
	uow := s.uow.Begin()
	defer uow.Rollback()

	existing, err := uow.Users().GetByUsername(ctx, in.Username)
	if err != nil {
		return outcome.Failed(outcome.Internal(err), "")
	}
	if existing != nil {
		return outcome.Failed(outcome.Fail(outcome.CodeConflict, msgUserExists), "")
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return outcome.Failed(outcome.Internal(err), "")
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Username:     in.Username,
		PasswordHash: hash,
	}
	if err := uow.Users().Add(ctx, user); err != nil {
		// 并发注册同名用户时由唯一索引兜底
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return outcome.Failed(outcome.Fail(outcome.CodeConflict, msgUserExists), "")
		}
		return outcome.Failed(outcome.Internal(err), "")
	}
	if err := uow.Commit(ctx); err != nil {
		return outcome.Failed(outcome.Internal(err), "")
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return outcome.Failed(outcome.Internal(err), "")
	}
	return outcome.Ok(token)
}

func (s *authService) Login(ctx context.Context, in LoginInput) outcome.Result[string] {
	uow := s.uow.Begin()
	defer uow.Rollback()

	user, err := uow.Users().GetByUsername(ctx, in.Username)
	if err != nil {
		return outcome.Failed(outcome.Internal(err), "")
	}
	if user == nil {
		return outcome.Failed(outcome.Fail(outcome.CodeUnauthorized, msgInvalidCredentials), "")
	}

	ok, err := s.hasher.Verify(user.PasswordHash, in.Password)
	if err != nil {
		return outcome.Failed(outcome.Internal(err), "")
	}
	if !ok {
		return outcome.Failed(outcome.Fail(outcome.CodeUnauthorized, msgInvalidCredentials), "")
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return outcome.Failed(outcome.Internal(err), "")
	}
	return outcome.Ok(token)
}
