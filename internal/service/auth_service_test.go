package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/d60-Lab/gin-blog/pkg/outcome"
	"github.com/d60-Lab/gin-blog/pkg/password"
)

func newAuth(store *memStore) (AuthService, TokenIssuer) {
	tokens := NewTokenIssuer("test-secret", "gin-blog", time.Hour)
	return NewAuthService(store, password.NewHasher(bcrypt.MinCost), tokens), tokens
}

func TestRegister_IssuesTokenForNewUser(t *testing.T) {
	store := newMemStore()
	auth, tokens := newAuth(store)

	res := auth.Register(context.Background(), RegisterInput{Name: "Alice", Username: "alice", Password: "pw"})
	token, ok := res.Value()
	require.True(t, ok)
	require.NotEmpty(t, token)

	claims, err := tokens.Parse(token)
	require.NoError(t, err)

	user, err := store.Begin().Users().GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, user.ID, claims.UserID())
	assert.NotEqual(t, "pw", user.PasswordHash)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	store := newMemStore()
	auth, _ := newAuth(store)
	ctx := context.Background()

	require.True(t, auth.Register(ctx, RegisterInput{Name: "A", Username: "dup", Password: "pw"}).IsValid())

	res := auth.Register(ctx, RegisterInput{Name: "B", Username: "dup", Password: "other"})
	assert.False(t, res.IsValid())
	token, _ := res.Value()
	assert.Empty(t, token)
	require.Len(t, res.Outcome().Notifications(), 1)
	assert.Equal(t, outcome.Notification{Code: outcome.CodeConflict, Description: "User already exists."}, res.Outcome().Notifications()[0])
	assert.Equal(t, 1, store.usersNamed("dup"))
}

func TestRegister_StoreFailureIsInternal(t *testing.T) {
	store := newMemStore()
	store.errCommit = errors.New("connection reset")
	auth, _ := newAuth(store)

	res := auth.Register(context.Background(), RegisterInput{Name: "A", Username: "a", Password: "pw"})
	require.False(t, res.IsValid())
	assert.Equal(t, []outcome.Notification{{Code: outcome.CodeInternal, Description: "connection reset"}}, res.Outcome().Notifications())
	assert.Empty(t, res.Attempted())
	assert.Equal(t, 0, store.usersNamed("a"))
}

func TestLogin(t *testing.T) {
	store := newMemStore()
	auth, tokens := newAuth(store)
	ctx := context.Background()
	require.True(t, auth.Register(ctx, RegisterInput{Name: "Bob", Username: "bob", Password: "correct"}).IsValid())

	t.Run("correct credentials", func(t *testing.T) {
		res := auth.Login(ctx, LoginInput{Username: "bob", Password: "correct"})
		token, ok := res.Value()
		require.True(t, ok)
		claims, err := tokens.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, "bob", claims.Username)
	})

	bad := []LoginInput{
		{Username: "bob", Password: "wrong"},
		{Username: "nobody", Password: "correct"},
	}
	for _, in := range bad {
		t.Run("rejects "+in.Username+"/"+in.Password, func(t *testing.T) {
			res := auth.Login(ctx, in)
			require.False(t, res.IsValid())
			assert.Empty(t, res.Attempted())
			assert.Equal(t, []outcome.Notification{{Code: outcome.CodeUnauthorized, Description: "Invalid credentials."}}, res.Outcome().Notifications())
		})
	}
}

func TestLogin_LookupFailureIsInternal(t *testing.T) {
	store := newMemStore()
	store.errLookup = errors.New("db unavailable")
	auth, _ := newAuth(store)

	res := auth.Login(context.Background(), LoginInput{Username: "x", Password: "y"})
	require.False(t, res.IsValid())
	assert.True(t, res.Outcome().Has(outcome.CodeInternal))
}
