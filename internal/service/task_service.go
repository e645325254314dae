package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tasktrail/backend/internal/domain"
	"github.com/tasktrail/backend/internal/repository"
)

var (
	ErrTaskNotFound  = errors.New("task not found")
	ErrOwnerNotFound = errors.New("task owner does not exist")
)

// TaskNotifier pushes task lifecycle events to connected clients. The ws
// hub implements it; a nil notifier disables push.
type TaskNotifier interface {
	TaskCreated(task *domain.Task)
	TaskUpdated(task *domain.Task)
	TaskDeleted(ownerID, taskID int64)
}

type TaskService struct {
	taskRepo repository.TaskRepository
	notifier TaskNotifier
	timeout  time.Duration
}

func NewTaskService(taskRepo repository.TaskRepository, notifier TaskNotifier, timeout time.Duration) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		notifier: notifier,
		timeout:  timeout,
	}
}

type CreateTaskInput struct {
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	Owner       int64  `json:"owner"`
}

// UpdateTaskInput carries a full-record overwrite: every field replaces the
// stored value, omitted fields included.
type UpdateTaskInput struct {
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	Owner       int64  `json:"owner"`
}

// Create stores a task owned by the requester. A body that names somebody
// else as owner is rejected rather than silently honored.
func (s *TaskService) Create(ctx context.Context, requesterID int64, input CreateTaskInput) (*domain.Task, error) {
	if input.Owner != requesterID {
		return nil, ErrForbidden
	}
	return s.create(ctx, requesterID, input.Description, input.Completed)
}

// CreateForUser stores a task for the user named in the route path. The
// path value is authoritative; any owner in the body is ignored.
func (s *TaskService) CreateForUser(ctx context.Context, requesterID, pathUserID int64, description string, completed bool) (*domain.Task, error) {
	if pathUserID != requesterID {
		return nil, ErrForbidden
	}
	return s.create(ctx, pathUserID, description, completed)
}

func (s *TaskService) create(ctx context.Context, ownerID int64, description string, completed bool) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	now := time.Now()
	task := &domain.Task{
		Description: description,
		Completed:   completed,
		Owner:       ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		if errors.Is(err, repository.ErrForeignKey) {
			return nil, ErrOwnerNotFound
		}
		return nil, mapPersistenceErr(fmt.Errorf("creating task: %w", err))
	}

	if s.notifier != nil {
		s.notifier.TaskCreated(task)
	}
	return task, nil
}

// List returns the requester's own tasks.
func (s *TaskService) List(ctx context.Context, requesterID int64) ([]domain.Task, error) {
	return s.ListByOwner(ctx, requesterID, requesterID)
}

func (s *TaskService) ListByOwner(ctx context.Context, requesterID, ownerID int64) ([]domain.Task, error) {
	if ownerID != requesterID {
		return nil, ErrForbidden
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	tasks, err := s.taskRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, mapPersistenceErr(err)
	}
	return tasks, nil
}

func (s *TaskService) Get(ctx context.Context, requesterID, id int64) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return s.getOwned(ctx, requesterID, id)
}

// Update replaces every field of the task with the request's contents.
// Unlike user updates there is no partial merge: an omitted completed flag
// resets the task to not completed.
func (s *TaskService) Update(ctx context.Context, requesterID, id int64, input UpdateTaskInput) (*domain.Task, error) {
	if input.Owner != requesterID {
		return nil, ErrForbidden
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	task, err := s.getOwned(ctx, requesterID, id)
	if err != nil {
		return nil, err
	}

	task.Description = input.Description
	task.Completed = input.Completed
	task.Owner = input.Owner
	task.UpdatedAt = time.Now()

	if err := s.taskRepo.Update(ctx, task); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		if errors.Is(err, repository.ErrForeignKey) {
			return nil, ErrOwnerNotFound
		}
		return nil, mapPersistenceErr(fmt.Errorf("updating task: %w", err))
	}

	if s.notifier != nil {
		s.notifier.TaskUpdated(task)
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, requesterID, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	task, err := s.getOwned(ctx, requesterID, id)
	if err != nil {
		return err
	}

	if err := s.taskRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTaskNotFound
		}
		return mapPersistenceErr(fmt.Errorf("deleting task: %w", err))
	}

	if s.notifier != nil {
		s.notifier.TaskDeleted(task.Owner, task.ID)
	}
	return nil
}

// getOwned loads the task and rejects requesters who do not own it.
func (s *TaskService) getOwned(ctx context.Context, requesterID, id int64) (*domain.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapPersistenceErr(err)
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}
	if task.Owner != requesterID {
		return nil, ErrForbidden
	}
	return task, nil
}
