package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tasktrail/backend/internal/auth"
	"github.com/tasktrail/backend/internal/domain"
	"github.com/tasktrail/backend/internal/repository"
)

var (
	ErrEmailTaken   = errors.New("email already taken")
	ErrInvalidCreds = errors.New("invalid email or password")
	ErrUserNotFound = errors.New("user not found")
	ErrForbidden    = errors.New("action not allowed for this user")
	ErrTimeout      = errors.New("persistence timeout")
)

type UserService struct {
	userRepo repository.UserRepository
	hasher   *auth.PasswordHasher
	tokens   *auth.TokenManager
	timeout  time.Duration
}

func NewUserService(userRepo repository.UserRepository, hasher *auth.PasswordHasher, tokens *auth.TokenManager, timeout time.Duration) *UserService {
	return &UserService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		timeout:  timeout,
	}
}

type RegisterInput struct {
	FullName string `json:"fullName"`
	Age      int    `json:"age"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserInput carries a partial update: nil fields are left unchanged.
type UpdateUserInput struct {
	FullName *string `json:"fullName"`
	Age      *int    `json:"age"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

func (s *UserService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	email := strings.TrimSpace(input.Email)

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, mapPersistenceErr(err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		FullName:     strings.TrimSpace(input.FullName),
		Age:          input.Age,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// The unique constraint can still fire if two registrations race.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, mapPersistenceErr(fmt.Errorf("creating user: %w", err))
	}

	return user, nil
}

// Login verifies credentials and mints a token that becomes the user's only
// live session. An unknown email and a wrong password are indistinguishable
// to the caller.
func (s *UserService) Login(ctx context.Context, input LoginInput) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(input.Email))
	if err != nil {
		return "", mapPersistenceErr(err)
	}
	if user == nil {
		return "", ErrInvalidCreds
	}

	if !s.hasher.Verify(input.Password, user.PasswordHash) {
		return "", ErrInvalidCreds
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("generating token: %w", err)
	}

	if err := s.userRepo.UpdateToken(ctx, user.ID, &token); err != nil {
		return "", mapPersistenceErr(fmt.Errorf("storing token: %w", err))
	}

	return token, nil
}

// Logout clears the stored session token. Logging out twice is not an error.
func (s *UserService) Logout(ctx context.Context, userID int64) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	err := s.userRepo.UpdateToken(ctx, userID, nil)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	return mapPersistenceErr(err)
}

func (s *UserService) GetAll(ctx context.Context) ([]domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, mapPersistenceErr(err)
	}
	return users, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapPersistenceErr(err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Update applies a partial update to the requester's own account. A new
// password is re-hashed; a new email is re-checked for uniqueness.
func (s *UserService) Update(ctx context.Context, requesterID, id int64, input UpdateUserInput) (*domain.User, error) {
	if requesterID != id {
		return nil, ErrForbidden
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapPersistenceErr(err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if input.FullName != nil {
		user.FullName = strings.TrimSpace(*input.FullName)
	}
	if input.Age != nil {
		user.Age = *input.Age
	}
	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		existing, err := s.userRepo.GetByEmail(ctx, email)
		if err != nil {
			return nil, mapPersistenceErr(err)
		}
		if existing != nil && existing.ID != user.ID {
			return nil, ErrEmailTaken
		}
		user.Email = email
	}
	if input.Password != nil {
		hash, err := s.hasher.Hash(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}
		user.PasswordHash = hash
	}
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, mapPersistenceErr(fmt.Errorf("updating user: %w", err))
	}

	return user, nil
}

// Delete removes the requester's own account and every task it owns,
// atomically.
func (s *UserService) Delete(ctx context.Context, requesterID, id int64) error {
	if requesterID != id {
		return ErrForbidden
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	err := s.userRepo.DeleteWithTasks(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	return mapPersistenceErr(err)
}

// mapPersistenceErr surfaces a store deadline as ErrTimeout; everything else
// passes through untouched.
func mapPersistenceErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return err
}
