package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tasktrail/backend/internal/auth"
	"golang.org/x/crypto/bcrypt"
)

func newUserService(t *testing.T) (*UserService, *fakeUserRepo, *fakeTaskRepo) {
	t.Helper()
	hasher, err := auth.NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	userRepo, taskRepo := newFakeRepos()
	return NewUserService(userRepo, hasher, tokens, time.Second), userRepo, taskRepo
}

func registerAna(t *testing.T, s *UserService) int64 {
	t.Helper()
	user, err := s.Register(context.Background(), RegisterInput{
		FullName: "Ana",
		Age:      20,
		Email:    "ana@x.com",
		Password: "longenough1",
	})
	require.NoError(t, err)
	return user.ID
}

func TestUserService_Register(t *testing.T) {
	t.Parallel()

	s, _, _ := newUserService(t)

	user, err := s.Register(context.Background(), RegisterInput{
		FullName: "Ana",
		Age:      20,
		Email:    "ana@x.com",
		Password: "longenough1",
	})
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "longenough1", user.PasswordHash)
	assert.NotEmpty(t, user.PasswordHash)
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	t.Parallel()

	s, _, _ := newUserService(t)
	registerAna(t, s)

	_, err := s.Register(context.Background(), RegisterInput{
		FullName: "Other Ana",
		Age:      30,
		Email:    "ana@x.com",
		Password: "different99",
	})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestUserService_Login(t *testing.T) {
	t.Parallel()

	s, userRepo, _ := newUserService(t)
	id := registerAna(t, s)

	// Unknown email and wrong password must be the same error.
	_, err := s.Login(context.Background(), LoginInput{Email: "nobody@x.com", Password: "longenough1"})
	require.ErrorIs(t, err, ErrInvalidCreds)

	_, err = s.Login(context.Background(), LoginInput{Email: "ana@x.com", Password: "wrongpass99"})
	require.ErrorIs(t, err, ErrInvalidCreds)

	token, err := s.Login(context.Background(), LoginInput{Email: "ana@x.com", Password: "longenough1"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := auth.NewTokenManager("test-secret", time.Hour).Verify(token)
	require.NoError(t, err)
	assert.Equal(t, id, subject)

	stored, err := userRepo.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, stored.Token)
	assert.Equal(t, token, *stored.Token)
}

func TestUserService_Logout_Idempotent(t *testing.T) {
	t.Parallel()

	s, userRepo, _ := newUserService(t)
	id := registerAna(t, s)

	_, err := s.Login(context.Background(), LoginInput{Email: "ana@x.com", Password: "longenough1"})
	require.NoError(t, err)

	require.NoError(t, s.Logout(context.Background(), id))

	stored, err := userRepo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, stored.Token)

	// Second logout is not an error.
	require.NoError(t, s.Logout(context.Background(), id))
}

func TestUserService_Update_Partial(t *testing.T) {
	t.Parallel()

	s, _, _ := newUserService(t)
	id := registerAna(t, s)

	newName := "Ana Lovric"
	updated, err := s.Update(context.Background(), id, id, UpdateUserInput{FullName: &newName})
	require.NoError(t, err)

	assert.Equal(t, "Ana Lovric", updated.FullName)
	assert.Equal(t, 20, updated.Age)
	assert.Equal(t, "ana@x.com", updated.Email)
}

func TestUserService_Update_RehashesPassword(t *testing.T) {
	t.Parallel()

	s, _, _ := newUserService(t)
	id := registerAna(t, s)

	before, err := s.GetByID(context.Background(), id)
	require.NoError(t, err)

	newPassword := "evenlonger99"
	updated, err := s.Update(context.Background(), id, id, UpdateUserInput{Password: &newPassword})
	require.NoError(t, err)

	assert.NotEqual(t, before.PasswordHash, updated.PasswordHash)
	assert.NotEqual(t, newPassword, updated.PasswordHash)

	_, err = s.Login(context.Background(), LoginInput{Email: "ana@x.com", Password: "evenlonger99"})
	require.NoError(t, err)
}

func TestUserService_Update_Forbidden(t *testing.T) {
	t.Parallel()

	s, _, _ := newUserService(t)
	id := registerAna(t, s)

	newName := "Mallory"
	_, err := s.Update(context.Background(), id+100, id, UpdateUserInput{FullName: &newName})
	require.ErrorIs(t, err, ErrForbidden)
}

func TestUserService_Delete_CascadesTasks(t *testing.T) {
	t.Parallel()

	s, _, taskRepo := newUserService(t)
	id := registerAna(t, s)

	tasks := NewTaskService(taskRepo, nil, time.Second)
	for i := 0; i < 3; i++ {
		_, err := tasks.Create(context.Background(), id, CreateTaskInput{Description: "chore", Owner: id})
		require.NoError(t, err)
	}

	require.NoError(t, s.Delete(context.Background(), id, id))

	remaining, err := taskRepo.ListByOwner(context.Background(), id)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	_, err = s.GetByID(context.Background(), id)
	require.ErrorIs(t, err, ErrUserNotFound)

	// Second delete reports not found, it does not crash.
	require.ErrorIs(t, s.Delete(context.Background(), id, id), ErrUserNotFound)
}

func TestUserService_Delete_Forbidden(t *testing.T) {
	t.Parallel()

	s, _, _ := newUserService(t)
	id := registerAna(t, s)

	require.ErrorIs(t, s.Delete(context.Background(), id+1, id), ErrForbidden)
}
