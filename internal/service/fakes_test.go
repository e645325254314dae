package service

import (
	"context"
	"sync"

	"github.com/tasktrail/backend/internal/domain"
	"github.com/tasktrail/backend/internal/repository"
)

// In-memory repository fakes backing the service tests.

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]domain.User
	tasks  *fakeTaskRepo
}

type fakeTaskRepo struct {
	mu     sync.Mutex
	nextID int64
	tasks  map[int64]domain.Task
	users  *fakeUserRepo
}

func newFakeRepos() (*fakeUserRepo, *fakeTaskRepo) {
	ur := &fakeUserRepo{users: make(map[int64]domain.User)}
	tr := &fakeTaskRepo{tasks: make(map[int64]domain.Task)}
	ur.tasks = tr
	tr.users = ur
	return ur, tr
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	r.nextID++
	user.ID = r.nextID
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetAll(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var users []domain.User
	for _, u := range r.users {
		users = append(users, u)
	}
	return users, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) UpdateToken(_ context.Context, id int64, token *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Token = token
	r.users[id] = u
	return nil
}

func (r *fakeUserRepo) DeleteWithTasks(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	r.tasks.mu.Lock()
	for tid, t := range r.tasks.tasks {
		if t.Owner == id {
			delete(r.tasks.tasks, tid)
		}
	}
	r.tasks.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *fakeTaskRepo) Create(_ context.Context, task *domain.Task) error {
	if r.users != nil {
		owner, _ := r.users.GetByID(context.Background(), task.Owner)
		if owner == nil {
			return repository.ErrForeignKey
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	task.ID = r.nextID
	r.tasks[task.ID] = *task
	return nil
}

func (r *fakeTaskRepo) GetByID(_ context.Context, id int64) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tasks[id]; ok {
		return &t, nil
	}
	return nil, nil
}

func (r *fakeTaskRepo) ListByOwner(_ context.Context, ownerID int64) ([]domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var tasks []domain.Task
	for _, t := range r.tasks {
		if t.Owner == ownerID {
			tasks = append(tasks, t)
		}
	}
	return tasks, nil
}

func (r *fakeTaskRepo) Update(_ context.Context, task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[task.ID]; !ok {
		return repository.ErrNotFound
	}
	r.tasks[task.ID] = *task
	return nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.tasks, id)
	return nil
}

// fakeNotifier records events for assertions.
type fakeNotifier struct {
	mu      sync.Mutex
	created []int64
	updated []int64
	deleted []int64
}

func (n *fakeNotifier) TaskCreated(task *domain.Task) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.created = append(n.created, task.ID)
}

func (n *fakeNotifier) TaskUpdated(task *domain.Task) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.updated = append(n.updated, task.ID)
}

func (n *fakeNotifier) TaskDeleted(_, taskID int64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.deleted = append(n.deleted, taskID)
}
